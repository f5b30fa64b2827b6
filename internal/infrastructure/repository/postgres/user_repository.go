package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/Nicolasff12/PrediccionFutbol/internal/domain/user"
	qb "github.com/Nicolasff12/PrediccionFutbol/internal/platform/querybuilder"
)

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(ctx context.Context, userID string) (user.User, bool, error) {
	query, args, err := qb.Select("*").From("users").
		Where(
			qb.Eq("public_id", userID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return user.User{}, false, fmt.Errorf("build get user query: %w", err)
	}

	var row userTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return user.User{}, false, nil
		}
		return user.User{}, false, fmt.Errorf("get user: %w", err)
	}

	return user.User{
		ID:       row.PublicID,
		Username: row.Username,
		Email:    row.Email,
	}, true, nil
}

func (r *UserRepository) Upsert(ctx context.Context, item user.User) (user.User, error) {
	insertModel := userInsertModel{
		PublicID: item.ID,
		Username: item.Username,
		Email:    item.Email,
	}
	query, args, err := qb.InsertModel("users", insertModel, `ON CONFLICT (public_id)
DO UPDATE SET
    username = EXCLUDED.username,
    email = EXCLUDED.email,
    updated_at = NOW(),
    deleted_at = NULL`)
	if err != nil {
		return user.User{}, fmt.Errorf("build upsert user query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return user.User{}, fmt.Errorf("upsert user %s: %w", item.ID, err)
	}

	return item, nil
}
