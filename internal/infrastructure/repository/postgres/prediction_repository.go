package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/Nicolasff12/PrediccionFutbol/internal/domain/prediction"
	qb "github.com/Nicolasff12/PrediccionFutbol/internal/platform/querybuilder"
)

type PredictionRepository struct {
	db *sqlx.DB
}

func NewPredictionRepository(db *sqlx.DB) *PredictionRepository {
	return &PredictionRepository{db: db}
}

func (r *PredictionRepository) GetByUserAndMatch(ctx context.Context, userID, matchID string) (prediction.Prediction, bool, error) {
	query, args, err := qb.Select("*").From("predictions").
		Where(
			qb.Eq("user_public_id", userID),
			qb.Eq("match_public_id", matchID),
		).
		ToSQL()
	if err != nil {
		return prediction.Prediction{}, false, fmt.Errorf("build get prediction query: %w", err)
	}

	var row predictionTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return prediction.Prediction{}, false, nil
		}
		return prediction.Prediction{}, false, fmt.Errorf("get prediction: %w", err)
	}

	return predictionFromRow(row), true, nil
}

func (r *PredictionRepository) ListByUser(ctx context.Context, userID string, limit int) ([]prediction.Prediction, error) {
	builder := qb.Select("*").From("predictions").
		Where(qb.Eq("user_public_id", userID)).
		OrderBy("created_at DESC", "id DESC")
	if limit > 0 {
		builder = builder.Limit(limit)
	}
	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list predictions by user query: %w", err)
	}

	var rows []predictionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list predictions by user: %w", err)
	}

	out := make([]prediction.Prediction, 0, len(rows))
	for _, row := range rows {
		out = append(out, predictionFromRow(row))
	}

	return out, nil
}

func (r *PredictionRepository) ListUnverified(ctx context.Context) ([]prediction.Prediction, error) {
	query, args, err := qb.Select("*").From("predictions").
		Where(qb.IsNull("correct")).
		OrderBy("created_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list unverified predictions query: %w", err)
	}

	var rows []predictionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list unverified predictions: %w", err)
	}

	out := make([]prediction.Prediction, 0, len(rows))
	for _, row := range rows {
		out = append(out, predictionFromRow(row))
	}

	return out, nil
}

func (r *PredictionRepository) Upsert(ctx context.Context, item prediction.Prediction) (prediction.Prediction, error) {
	insertModel := predictionInsertModel{
		PublicID:   item.ID,
		UserID:     item.UserID,
		MatchID:    item.MatchID,
		HomeGoals:  item.HomeGoals,
		AwayGoals:  item.AwayGoals,
		Analysis:   item.Analysis,
		Confidence: item.Confidence,
	}
	// A fresh forecast goes back to pending verification.
	query, args, err := qb.InsertModel("predictions", insertModel, `ON CONFLICT (user_public_id, match_public_id)
DO UPDATE SET
    home_goals = EXCLUDED.home_goals,
    away_goals = EXCLUDED.away_goals,
    analysis = EXCLUDED.analysis,
    confidence = EXCLUDED.confidence,
    correct = NULL,
    updated_at = NOW()`)
	if err != nil {
		return prediction.Prediction{}, fmt.Errorf("build upsert prediction query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return prediction.Prediction{}, fmt.Errorf("upsert prediction user=%s match=%s: %w", item.UserID, item.MatchID, err)
	}

	return item, nil
}

func (r *PredictionRepository) SetCorrect(ctx context.Context, predictionID string, correct bool) error {
	query, args, err := qb.Update("predictions").
		Set("correct", correct).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("public_id", predictionID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build set prediction correct query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("set prediction %s correct: %w", predictionID, err)
	}

	return nil
}

func predictionFromRow(row predictionTableModel) prediction.Prediction {
	return prediction.Prediction{
		ID:         row.PublicID,
		UserID:     row.UserID,
		MatchID:    row.MatchID,
		HomeGoals:  row.HomeGoals,
		AwayGoals:  row.AwayGoals,
		Analysis:   row.Analysis,
		Confidence: row.Confidence,
		Correct:    row.Correct,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}
}
