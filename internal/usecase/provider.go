package usecase

import (
	"context"
	"time"
)

// SportDataProvider is the read-only boundary to the external football data
// source. Implementations never return errors: transport failures and empty
// result sets are indistinguishable, and callers fall back to local data.
type SportDataProvider interface {
	LeaguesByCountry(ctx context.Context, country string) []ProviderLeague
	TeamsByLeague(ctx context.Context, leagueRef string) []ProviderTeam
	MatchesByLeague(ctx context.Context, leagueRef string, from, to time.Time) []ProviderMatch
	RecentMatchesByTeam(ctx context.Context, teamRef string, limit int) []ProviderMatch
	StandingsByLeague(ctx context.Context, leagueRef string) []ProviderStanding
	TopScorersByLeague(ctx context.Context, leagueRef string, limit int) []ProviderScorer
	PlayersByTeam(ctx context.Context, teamRef string) []ProviderPlayer
}

// GenerativeModel is the boundary to the external language model used for
// free-text match analysis.
type GenerativeModel interface {
	Configured() bool
	Generate(ctx context.Context, prompt string) (string, error)
}

type ProviderLeague struct {
	APIRef  string
	Name    string
	Country string
	LogoURL string
}

type ProviderTeam struct {
	APIRef   string
	Name     string
	Short    string
	CrestURL string
}

type ProviderMatch struct {
	APIRef      string
	HomeTeamRef string
	AwayTeamRef string
	HomeName    string
	AwayName    string
	HomeGoals   int
	AwayGoals   int
	Status      string
	KickoffAt   time.Time
}

type ProviderStanding struct {
	TeamRef        string
	TeamName       string
	Position       int
	Played         int
	Won            int
	Draw           int
	Lost           int
	GoalsFor       int
	GoalsAgainst   int
	GoalDifference int
	Points         int
}

type ProviderScorer struct {
	PlayerRef  string
	PlayerName string
	TeamRef    string
	TeamName   string
	Goals      int
}

type ProviderPlayer struct {
	APIRef   string
	Name     string
	Position string
	Number   int
}
