package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/Nicolasff12/PrediccionFutbol/internal/infrastructure/repository/memory"
)

// BootstrapSeed loads the demo dataset into an empty database. Databases
// that already hold leagues are left untouched.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM leagues WHERE deleted_at IS NULL`); err != nil {
		return fmt.Errorf("count leagues for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, l := range memory.SeedLeagues() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO leagues (public_id, api_ref, name, country, logo_url)
VALUES (:public_id, :api_ref, :name, :country, :logo_url)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id": l.ID,
			"api_ref":   l.APIRef,
			"name":      l.Name,
			"country":   l.Country,
			"logo_url":  l.LogoURL,
		})
		if err != nil {
			return fmt.Errorf("bind seed league %s query: %w", l.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed league %s: %w", l.ID, err)
		}
	}

	for _, t := range memory.SeedTeams() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO teams (public_id, api_ref, name, short, crest_url)
VALUES (:public_id, :api_ref, :name, :short, :crest_url)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id": t.ID,
			"api_ref":   t.APIRef,
			"name":      t.Name,
			"short":     t.Short,
			"crest_url": t.CrestURL,
		})
		if err != nil {
			return fmt.Errorf("bind seed team %s query: %w", t.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed team %s: %w", t.ID, err)
		}
	}

	for _, m := range memory.SeedMatches(time.Now().UTC()) {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO matches (public_id, api_ref, league_public_id, home_team_public_id, away_team_public_id, kickoff_at, home_goals, away_goals, status)
VALUES (:public_id, :api_ref, :league_public_id, :home_team_public_id, :away_team_public_id, :kickoff_at, :home_goals, :away_goals, :status)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id":           m.ID,
			"api_ref":             m.APIRef,
			"league_public_id":    m.LeagueID,
			"home_team_public_id": m.HomeTeamID,
			"away_team_public_id": m.AwayTeamID,
			"kickoff_at":          m.KickoffAt.UTC(),
			"home_goals":          m.HomeGoals,
			"away_goals":          m.AwayGoals,
			"status":              m.Status,
		})
		if err != nil {
			return fmt.Errorf("bind seed match %s query: %w", m.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed match %s: %w", m.ID, err)
		}
	}

	for _, u := range memory.SeedUsers() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO users (public_id, username, email)
VALUES (:public_id, :username, :email)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id": u.ID,
			"username":  u.Username,
			"email":     u.Email,
		})
		if err != nil {
			return fmt.Errorf("bind seed user %s query: %w", u.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed user %s: %w", u.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}
	return nil
}
