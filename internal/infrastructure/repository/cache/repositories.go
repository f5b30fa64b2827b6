package cache

import (
	"context"
	"time"

	"github.com/Nicolasff12/PrediccionFutbol/internal/domain/league"
	"github.com/Nicolasff12/PrediccionFutbol/internal/domain/match"
	"github.com/Nicolasff12/PrediccionFutbol/internal/domain/team"
	basecache "github.com/Nicolasff12/PrediccionFutbol/internal/platform/cache"
)

// Read-through decorators over the persistent repositories. Writes go
// straight through and drop every key of the touched entity, so readers
// never observe a stale row longer than one in-flight request.

type LeagueRepository struct {
	next  league.Repository
	cache *basecache.Store
}

func NewLeagueRepository(next league.Repository, cache *basecache.Store) *LeagueRepository {
	return &LeagueRepository{next: next, cache: cache}
}

func (r *LeagueRepository) List(ctx context.Context) ([]league.League, error) {
	v, err := r.cache.GetOrLoad(ctx, "league:list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]league.League(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]league.League)
	return append([]league.League(nil), items...), nil
}

func (r *LeagueRepository) GetByID(ctx context.Context, leagueID string) (league.League, bool, error) {
	key := "league:id:" + leagueID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, leagueID)
		if err != nil {
			return nil, err
		}
		return cachedLeague{value: item, exists: exists}, nil
	})
	if err != nil {
		return league.League{}, false, err
	}

	cached, _ := v.(cachedLeague)
	return cached.value, cached.exists, nil
}

func (r *LeagueRepository) GetByAPIRef(ctx context.Context, apiRef string) (league.League, bool, error) {
	key := "league:ref:" + apiRef
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByAPIRef(ctx, apiRef)
		if err != nil {
			return nil, err
		}
		return cachedLeague{value: item, exists: exists}, nil
	})
	if err != nil {
		return league.League{}, false, err
	}

	cached, _ := v.(cachedLeague)
	return cached.value, cached.exists, nil
}

func (r *LeagueRepository) Upsert(ctx context.Context, item league.League) (league.League, error) {
	saved, err := r.next.Upsert(ctx, item)
	if err != nil {
		return league.League{}, err
	}
	r.cache.DeletePrefix(ctx, "league:")
	return saved, nil
}

type cachedLeague struct {
	value  league.League
	exists bool
}

type TeamRepository struct {
	next  team.Repository
	cache *basecache.Store
}

func NewTeamRepository(next team.Repository, cache *basecache.Store) *TeamRepository {
	return &TeamRepository{next: next, cache: cache}
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	v, err := r.cache.GetOrLoad(ctx, "team:list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]team.Team(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]team.Team)
	return append([]team.Team(nil), items...), nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (team.Team, bool, error) {
	key := "team:id:" + teamID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, teamID)
		if err != nil {
			return nil, err
		}
		return cachedTeam{value: item, exists: exists}, nil
	})
	if err != nil {
		return team.Team{}, false, err
	}

	cached, _ := v.(cachedTeam)
	return cached.value, cached.exists, nil
}

func (r *TeamRepository) GetByAPIRef(ctx context.Context, apiRef string) (team.Team, bool, error) {
	key := "team:ref:" + apiRef
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByAPIRef(ctx, apiRef)
		if err != nil {
			return nil, err
		}
		return cachedTeam{value: item, exists: exists}, nil
	})
	if err != nil {
		return team.Team{}, false, err
	}

	cached, _ := v.(cachedTeam)
	return cached.value, cached.exists, nil
}

func (r *TeamRepository) Upsert(ctx context.Context, item team.Team) (team.Team, error) {
	saved, err := r.next.Upsert(ctx, item)
	if err != nil {
		return team.Team{}, err
	}
	r.cache.DeletePrefix(ctx, "team:")
	return saved, nil
}

type cachedTeam struct {
	value  team.Team
	exists bool
}

type MatchRepository struct {
	next  match.Repository
	cache *basecache.Store
}

func NewMatchRepository(next match.Repository, cache *basecache.Store) *MatchRepository {
	return &MatchRepository{next: next, cache: cache}
}

func (r *MatchRepository) GetByID(ctx context.Context, matchID string) (match.Match, bool, error) {
	key := "match:id:" + matchID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, matchID)
		if err != nil {
			return nil, err
		}
		return cachedMatch{value: item, exists: exists}, nil
	})
	if err != nil {
		return match.Match{}, false, err
	}

	cached, _ := v.(cachedMatch)
	return cached.value, cached.exists, nil
}

// GetByAPIRef and GetByNaturalKey resolve identity during sync writes, so
// they always read the backing store.
func (r *MatchRepository) GetByAPIRef(ctx context.Context, apiRef string) (match.Match, bool, error) {
	return r.next.GetByAPIRef(ctx, apiRef)
}

func (r *MatchRepository) GetByNaturalKey(ctx context.Context, leagueID, homeTeamID, awayTeamID string, kickoffAt time.Time) (match.Match, bool, error) {
	return r.next.GetByNaturalKey(ctx, leagueID, homeTeamID, awayTeamID, kickoffAt)
}

func (r *MatchRepository) ListByLeague(ctx context.Context, leagueID string) ([]match.Match, error) {
	key := "match:league:" + leagueID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListByLeague(ctx, leagueID)
		if err != nil {
			return nil, err
		}
		return append([]match.Match(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]match.Match)
	return append([]match.Match(nil), items...), nil
}

func (r *MatchRepository) ListByTeam(ctx context.Context, teamID, leagueID string) ([]match.Match, error) {
	key := "match:team:" + teamID + ":" + leagueID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListByTeam(ctx, teamID, leagueID)
		if err != nil {
			return nil, err
		}
		return append([]match.Match(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]match.Match)
	return append([]match.Match(nil), items...), nil
}

// ListByKickoffRange keys would churn with every request window, so the
// call is not cached.
func (r *MatchRepository) ListByKickoffRange(ctx context.Context, leagueID string, from, to time.Time) ([]match.Match, error) {
	return r.next.ListByKickoffRange(ctx, leagueID, from, to)
}

func (r *MatchRepository) Upsert(ctx context.Context, item match.Match) (match.Match, error) {
	saved, err := r.next.Upsert(ctx, item)
	if err != nil {
		return match.Match{}, err
	}
	r.cache.DeletePrefix(ctx, "match:")
	return saved, nil
}

type cachedMatch struct {
	value  match.Match
	exists bool
}
