package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/Nicolasff12/PrediccionFutbol/internal/domain/match"
	qb "github.com/Nicolasff12/PrediccionFutbol/internal/platform/querybuilder"
)

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) GetByID(ctx context.Context, matchID string) (match.Match, bool, error) {
	return r.getOne(ctx, qb.Eq("public_id", matchID))
}

func (r *MatchRepository) GetByAPIRef(ctx context.Context, apiRef string) (match.Match, bool, error) {
	if apiRef == "" {
		return match.Match{}, false, nil
	}
	return r.getOne(ctx, qb.Eq("api_ref", apiRef))
}

func (r *MatchRepository) GetByNaturalKey(ctx context.Context, leagueID, homeTeamID, awayTeamID string, kickoffAt time.Time) (match.Match, bool, error) {
	return r.getOne(ctx,
		qb.Eq("league_public_id", leagueID),
		qb.Eq("home_team_public_id", homeTeamID),
		qb.Eq("away_team_public_id", awayTeamID),
		qb.Eq("kickoff_at", kickoffAt.UTC()),
	)
}

func (r *MatchRepository) getOne(ctx context.Context, conditions ...qb.Condition) (match.Match, bool, error) {
	conditions = append(conditions, qb.IsNull("deleted_at"))
	query, args, err := qb.Select("*").From("matches").
		Where(conditions...).
		ToSQL()
	if err != nil {
		return match.Match{}, false, fmt.Errorf("build get match query: %w", err)
	}

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("get match: %w", err)
	}

	return matchFromRow(row), true, nil
}

func (r *MatchRepository) ListByLeague(ctx context.Context, leagueID string) ([]match.Match, error) {
	return r.list(ctx, qb.Eq("league_public_id", leagueID))
}

func (r *MatchRepository) ListByTeam(ctx context.Context, teamID, leagueID string) ([]match.Match, error) {
	conditions := []qb.Condition{
		qb.Expr("(home_team_public_id = ? OR away_team_public_id = ?)", teamID, teamID),
	}
	if leagueID != "" {
		conditions = append(conditions, qb.Eq("league_public_id", leagueID))
	}
	return r.list(ctx, conditions...)
}

func (r *MatchRepository) ListByKickoffRange(ctx context.Context, leagueID string, from, to time.Time) ([]match.Match, error) {
	conditions := []qb.Condition{
		qb.Expr("kickoff_at >= ?", from.UTC()),
		qb.Expr("kickoff_at < ?", to.UTC()),
	}
	if leagueID != "" {
		conditions = append(conditions, qb.Eq("league_public_id", leagueID))
	}
	return r.list(ctx, conditions...)
}

func (r *MatchRepository) list(ctx context.Context, conditions ...qb.Condition) ([]match.Match, error) {
	conditions = append(conditions, qb.IsNull("deleted_at"))
	query, args, err := qb.Select("*").From("matches").
		Where(conditions...).
		OrderBy("kickoff_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select matches query: %w", err)
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select matches: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchFromRow(row))
	}

	return out, nil
}

func (r *MatchRepository) Upsert(ctx context.Context, item match.Match) (match.Match, error) {
	insertModel := matchInsertModel{
		PublicID:   item.ID,
		APIRef:     item.APIRef,
		LeagueID:   item.LeagueID,
		HomeTeamID: item.HomeTeamID,
		AwayTeamID: item.AwayTeamID,
		KickoffAt:  item.KickoffAt.UTC(),
		HomeGoals:  item.HomeGoals,
		AwayGoals:  item.AwayGoals,
		Status:     match.NormalizeStatus(item.Status),
	}
	query, args, err := qb.InsertModel("matches", insertModel, `ON CONFLICT (public_id)
DO UPDATE SET
    api_ref = EXCLUDED.api_ref,
    league_public_id = EXCLUDED.league_public_id,
    home_team_public_id = EXCLUDED.home_team_public_id,
    away_team_public_id = EXCLUDED.away_team_public_id,
    kickoff_at = EXCLUDED.kickoff_at,
    home_goals = EXCLUDED.home_goals,
    away_goals = EXCLUDED.away_goals,
    status = EXCLUDED.status,
    updated_at = NOW(),
    deleted_at = NULL`)
	if err != nil {
		return match.Match{}, fmt.Errorf("build upsert match query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return match.Match{}, fmt.Errorf("upsert match %s: %w", item.ID, err)
	}

	return item, nil
}

func matchFromRow(row matchTableModel) match.Match {
	return match.Match{
		ID:         row.PublicID,
		APIRef:     row.APIRef,
		LeagueID:   row.LeagueID,
		HomeTeamID: row.HomeTeamID,
		AwayTeamID: row.AwayTeamID,
		KickoffAt:  row.KickoffAt.UTC(),
		HomeGoals:  row.HomeGoals,
		AwayGoals:  row.AwayGoals,
		Status:     row.Status,
		UpdatedAt:  row.UpdatedAt,
	}
}
