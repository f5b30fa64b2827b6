package match

import (
	"context"
	"time"
)

// Repository describes match persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, matchID string) (Match, bool, error)
	GetByAPIRef(ctx context.Context, apiRef string) (Match, bool, error)
	// GetByNaturalKey resolves a match without a provider reference.
	GetByNaturalKey(ctx context.Context, leagueID, homeTeamID, awayTeamID string, kickoffAt time.Time) (Match, bool, error)
	ListByLeague(ctx context.Context, leagueID string) ([]Match, error)
	ListByTeam(ctx context.Context, teamID, leagueID string) ([]Match, error)
	ListByKickoffRange(ctx context.Context, leagueID string, from, to time.Time) ([]Match, error)
	Upsert(ctx context.Context, item Match) (Match, error)
}
