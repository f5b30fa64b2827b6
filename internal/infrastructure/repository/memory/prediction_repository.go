package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/Nicolasff12/PrediccionFutbol/internal/domain/prediction"
)

type PredictionRepository struct {
	mu     sync.RWMutex
	items  map[string]prediction.Prediction
	orders []string
}

func NewPredictionRepository(predictions []prediction.Prediction) *PredictionRepository {
	items := make(map[string]prediction.Prediction, len(predictions))
	orders := make([]string, 0, len(predictions))

	for _, p := range predictions {
		items[p.ID] = p
		orders = append(orders, p.ID)
	}

	return &PredictionRepository{
		items:  items,
		orders: orders,
	}
}

func (r *PredictionRepository) GetByUserAndMatch(_ context.Context, userID, matchID string) (prediction.Prediction, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.orders {
		p := r.items[id]
		if p.UserID == userID && p.MatchID == matchID {
			return p, true, nil
		}
	}

	return prediction.Prediction{}, false, nil
}

func (r *PredictionRepository) ListByUser(_ context.Context, userID string, limit int) ([]prediction.Prediction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]prediction.Prediction, 0, len(r.orders))
	for _, id := range r.orders {
		if r.items[id].UserID == userID {
			out = append(out, r.items[id])
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}

	return out, nil
}

func (r *PredictionRepository) ListUnverified(_ context.Context) ([]prediction.Prediction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]prediction.Prediction, 0, len(r.orders))
	for _, id := range r.orders {
		if r.items[id].Correct == nil {
			out = append(out, r.items[id])
		}
	}

	return out, nil
}

func (r *PredictionRepository) Upsert(_ context.Context, item prediction.Prediction) (prediction.Prediction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range r.orders {
		existing := r.items[id]
		if existing.UserID == item.UserID && existing.MatchID == item.MatchID && existing.ID != item.ID {
			// One row per (user, match); the replacement keeps the original slot.
			item.ID = existing.ID
			break
		}
	}
	if _, ok := r.items[item.ID]; !ok {
		r.orders = append(r.orders, item.ID)
	}
	r.items[item.ID] = item

	return item, nil
}

func (r *PredictionRepository) SetCorrect(_ context.Context, predictionID string, correct bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.items[predictionID]
	if !ok {
		return nil
	}
	value := correct
	p.Correct = &value
	r.items[predictionID] = p

	return nil
}
