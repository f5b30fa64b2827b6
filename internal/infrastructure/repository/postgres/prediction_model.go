package postgres

import (
	"time"
)

type predictionTableModel struct {
	ID         int64     `db:"id"`
	PublicID   string    `db:"public_id"`
	UserID     string    `db:"user_public_id"`
	MatchID    string    `db:"match_public_id"`
	HomeGoals  int       `db:"home_goals"`
	AwayGoals  int       `db:"away_goals"`
	Analysis   string    `db:"analysis"`
	Confidence float64   `db:"confidence"`
	Correct    *bool     `db:"correct"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

type predictionInsertModel struct {
	PublicID   string  `db:"public_id"`
	UserID     string  `db:"user_public_id"`
	MatchID    string  `db:"match_public_id"`
	HomeGoals  int     `db:"home_goals"`
	AwayGoals  int     `db:"away_goals"`
	Analysis   string  `db:"analysis"`
	Confidence float64 `db:"confidence"`
}
