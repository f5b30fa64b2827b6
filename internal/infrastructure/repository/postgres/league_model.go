package postgres

import (
	"time"
)

type leagueTableModel struct {
	ID        int64      `db:"id"`
	PublicID  string     `db:"public_id"`
	APIRef    string     `db:"api_ref"`
	Name      string     `db:"name"`
	Country   string     `db:"country"`
	LogoURL   string     `db:"logo_url"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

type leagueInsertModel struct {
	PublicID string `db:"public_id"`
	APIRef   string `db:"api_ref"`
	Name     string `db:"name"`
	Country  string `db:"country"`
	LogoURL  string `db:"logo_url"`
}
