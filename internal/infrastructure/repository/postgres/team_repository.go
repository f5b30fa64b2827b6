package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/Nicolasff12/PrediccionFutbol/internal/domain/team"
	qb "github.com/Nicolasff12/PrediccionFutbol/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	query, args, err := qb.Select("*").From("teams").
		Where(qb.IsNull("deleted_at")).
		OrderBy("name", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select teams query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select teams: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, teamFromRow(row))
	}

	return out, nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (team.Team, bool, error) {
	return r.getOne(ctx, qb.Eq("public_id", teamID))
}

func (r *TeamRepository) GetByAPIRef(ctx context.Context, apiRef string) (team.Team, bool, error) {
	if apiRef == "" {
		return team.Team{}, false, nil
	}
	return r.getOne(ctx, qb.Eq("api_ref", apiRef))
}

func (r *TeamRepository) getOne(ctx context.Context, cond qb.Condition) (team.Team, bool, error) {
	query, args, err := qb.Select("*").From("teams").
		Where(cond, qb.IsNull("deleted_at")).
		ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build get team query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("get team: %w", err)
	}

	return teamFromRow(row), true, nil
}

func (r *TeamRepository) Upsert(ctx context.Context, item team.Team) (team.Team, error) {
	insertModel := teamInsertModel{
		PublicID: item.ID,
		APIRef:   item.APIRef,
		Name:     item.Name,
		Short:    item.Short,
		CrestURL: item.CrestURL,
	}
	query, args, err := qb.InsertModel("teams", insertModel, `ON CONFLICT (public_id)
DO UPDATE SET
    api_ref = EXCLUDED.api_ref,
    name = EXCLUDED.name,
    short = EXCLUDED.short,
    crest_url = EXCLUDED.crest_url,
    updated_at = NOW(),
    deleted_at = NULL`)
	if err != nil {
		return team.Team{}, fmt.Errorf("build upsert team query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return team.Team{}, fmt.Errorf("upsert team %s: %w", item.ID, err)
	}

	return item, nil
}

func teamFromRow(row teamTableModel) team.Team {
	return team.Team{
		ID:       row.PublicID,
		APIRef:   row.APIRef,
		Name:     row.Name,
		Short:    row.Short,
		CrestURL: row.CrestURL,
	}
}
