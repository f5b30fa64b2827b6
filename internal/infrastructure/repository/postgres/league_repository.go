package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/Nicolasff12/PrediccionFutbol/internal/domain/league"
	qb "github.com/Nicolasff12/PrediccionFutbol/internal/platform/querybuilder"
)

type LeagueRepository struct {
	db *sqlx.DB
}

func NewLeagueRepository(db *sqlx.DB) *LeagueRepository {
	return &LeagueRepository{db: db}
}

func (r *LeagueRepository) List(ctx context.Context) ([]league.League, error) {
	query, args, err := qb.Select("*").From("leagues").
		Where(qb.IsNull("deleted_at")).
		OrderBy("name", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select leagues query: %w", err)
	}

	var rows []leagueTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select leagues: %w", err)
	}

	out := make([]league.League, 0, len(rows))
	for _, row := range rows {
		out = append(out, leagueFromRow(row))
	}

	return out, nil
}

func (r *LeagueRepository) GetByID(ctx context.Context, leagueID string) (league.League, bool, error) {
	return r.getOne(ctx, qb.Eq("public_id", leagueID))
}

func (r *LeagueRepository) GetByAPIRef(ctx context.Context, apiRef string) (league.League, bool, error) {
	if apiRef == "" {
		return league.League{}, false, nil
	}
	return r.getOne(ctx, qb.Eq("api_ref", apiRef))
}

func (r *LeagueRepository) getOne(ctx context.Context, cond qb.Condition) (league.League, bool, error) {
	query, args, err := qb.Select("*").From("leagues").
		Where(cond, qb.IsNull("deleted_at")).
		ToSQL()
	if err != nil {
		return league.League{}, false, fmt.Errorf("build get league query: %w", err)
	}

	var row leagueTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return league.League{}, false, nil
		}
		return league.League{}, false, fmt.Errorf("get league: %w", err)
	}

	return leagueFromRow(row), true, nil
}

func (r *LeagueRepository) Upsert(ctx context.Context, item league.League) (league.League, error) {
	insertModel := leagueInsertModel{
		PublicID: item.ID,
		APIRef:   item.APIRef,
		Name:     item.Name,
		Country:  item.Country,
		LogoURL:  item.LogoURL,
	}
	query, args, err := qb.InsertModel("leagues", insertModel, `ON CONFLICT (public_id)
DO UPDATE SET
    api_ref = EXCLUDED.api_ref,
    name = EXCLUDED.name,
    country = EXCLUDED.country,
    logo_url = EXCLUDED.logo_url,
    updated_at = NOW(),
    deleted_at = NULL`)
	if err != nil {
		return league.League{}, fmt.Errorf("build upsert league query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return league.League{}, fmt.Errorf("upsert league %s: %w", item.ID, err)
	}

	return item, nil
}

func leagueFromRow(row leagueTableModel) league.League {
	return league.League{
		ID:      row.PublicID,
		APIRef:  row.APIRef,
		Name:    row.Name,
		Country: row.Country,
		LogoURL: row.LogoURL,
	}
}
