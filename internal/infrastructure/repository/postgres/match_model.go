package postgres

import (
	"time"
)

type matchTableModel struct {
	ID         int64      `db:"id"`
	PublicID   string     `db:"public_id"`
	APIRef     string     `db:"api_ref"`
	LeagueID   string     `db:"league_public_id"`
	HomeTeamID string     `db:"home_team_public_id"`
	AwayTeamID string     `db:"away_team_public_id"`
	KickoffAt  time.Time  `db:"kickoff_at"`
	HomeGoals  int        `db:"home_goals"`
	AwayGoals  int        `db:"away_goals"`
	Status     string     `db:"status"`
	CreatedAt  time.Time  `db:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at"`
	DeletedAt  *time.Time `db:"deleted_at"`
}

type matchInsertModel struct {
	PublicID   string    `db:"public_id"`
	APIRef     string    `db:"api_ref"`
	LeagueID   string    `db:"league_public_id"`
	HomeTeamID string    `db:"home_team_public_id"`
	AwayTeamID string    `db:"away_team_public_id"`
	KickoffAt  time.Time `db:"kickoff_at"`
	HomeGoals  int       `db:"home_goals"`
	AwayGoals  int       `db:"away_goals"`
	Status     string    `db:"status"`
}
