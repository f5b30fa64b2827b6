package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Nicolasff12/PrediccionFutbol/internal/domain/match"
)

type MatchRepository struct {
	mu     sync.RWMutex
	items  map[string]match.Match
	orders []string
}

func NewMatchRepository(matches []match.Match) *MatchRepository {
	items := make(map[string]match.Match, len(matches))
	orders := make([]string, 0, len(matches))

	for _, m := range matches {
		items[m.ID] = m
		orders = append(orders, m.ID)
	}

	return &MatchRepository{
		items:  items,
		orders: orders,
	}
}

func (r *MatchRepository) GetByID(_ context.Context, matchID string) (match.Match, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.items[matchID]
	if !ok {
		return match.Match{}, false, nil
	}

	return m, true, nil
}

func (r *MatchRepository) GetByAPIRef(_ context.Context, apiRef string) (match.Match, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if apiRef == "" {
		return match.Match{}, false, nil
	}
	for _, id := range r.orders {
		if r.items[id].APIRef == apiRef {
			return r.items[id], true, nil
		}
	}

	return match.Match{}, false, nil
}

func (r *MatchRepository) GetByNaturalKey(_ context.Context, leagueID, homeTeamID, awayTeamID string, kickoffAt time.Time) (match.Match, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.orders {
		m := r.items[id]
		if m.LeagueID == leagueID && m.HomeTeamID == homeTeamID && m.AwayTeamID == awayTeamID && m.KickoffAt.Equal(kickoffAt) {
			return m, true, nil
		}
	}

	return match.Match{}, false, nil
}

func (r *MatchRepository) ListByLeague(_ context.Context, leagueID string) ([]match.Match, error) {
	return r.list(func(m match.Match) bool {
		return m.LeagueID == leagueID
	}), nil
}

func (r *MatchRepository) ListByTeam(_ context.Context, teamID, leagueID string) ([]match.Match, error) {
	return r.list(func(m match.Match) bool {
		if leagueID != "" && m.LeagueID != leagueID {
			return false
		}
		return m.Involves(teamID)
	}), nil
}

func (r *MatchRepository) ListByKickoffRange(_ context.Context, leagueID string, from, to time.Time) ([]match.Match, error) {
	return r.list(func(m match.Match) bool {
		if leagueID != "" && m.LeagueID != leagueID {
			return false
		}
		return !m.KickoffAt.Before(from) && m.KickoffAt.Before(to)
	}), nil
}

func (r *MatchRepository) list(keep func(match.Match) bool) []match.Match {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Match, 0, len(r.orders))
	for _, id := range r.orders {
		if keep(r.items[id]) {
			out = append(out, r.items[id])
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].KickoffAt.Equal(out[j].KickoffAt) {
			return out[i].KickoffAt.Before(out[j].KickoffAt)
		}
		return out[i].ID < out[j].ID
	})

	return out
}

func (r *MatchRepository) Upsert(_ context.Context, item match.Match) (match.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[item.ID]; !ok {
		r.orders = append(r.orders, item.ID)
	}
	r.items[item.ID] = item

	return item, nil
}
