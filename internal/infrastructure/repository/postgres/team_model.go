package postgres

import (
	"time"
)

type teamTableModel struct {
	ID        int64      `db:"id"`
	PublicID  string     `db:"public_id"`
	APIRef    string     `db:"api_ref"`
	Name      string     `db:"name"`
	Short     string     `db:"short"`
	CrestURL  string     `db:"crest_url"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

type teamInsertModel struct {
	PublicID string `db:"public_id"`
	APIRef   string `db:"api_ref"`
	Name     string `db:"name"`
	Short    string `db:"short"`
	CrestURL string `db:"crest_url"`
}
