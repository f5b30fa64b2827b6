package prediction

import "context"

// Repository describes prediction persistence needs from use cases.
type Repository interface {
	GetByUserAndMatch(ctx context.Context, userID, matchID string) (Prediction, bool, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]Prediction, error)
	ListUnverified(ctx context.Context) ([]Prediction, error)
	// Upsert writes the row keyed by (user, match), overwriting any
	// previous forecast for the same pair.
	Upsert(ctx context.Context, item Prediction) (Prediction, error)
	SetCorrect(ctx context.Context, predictionID string, correct bool) error
}
