package usecase

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/Nicolasff12/PrediccionFutbol/internal/domain/league"
	"github.com/Nicolasff12/PrediccionFutbol/internal/domain/match"
	"github.com/Nicolasff12/PrediccionFutbol/internal/domain/team"
	"github.com/Nicolasff12/PrediccionFutbol/internal/platform/cache"
	"github.com/Nicolasff12/PrediccionFutbol/internal/platform/logging"
)

// FormNoData is returned when a team has no finished matches to derive
// form from.
const FormNoData = "N/A"

const DefaultFormLength = 5

// VenueStats is the home-only or away-only slice of a team's record.
type VenueStats struct {
	Played       int
	Wins         int
	Draws        int
	Losses       int
	GoalsFor     int
	GoalsAgainst int
	AvgFor       float64
	AvgAgainst   float64
}

// TeamStats aggregates a team's finished matches, overall and per venue.
type TeamStats struct {
	TeamID         string
	Played         int
	Wins           int
	Draws          int
	Losses         int
	GoalsFor       int
	GoalsAgainst   int
	GoalDifference int
	AvgFor         float64
	AvgAgainst     float64
	WinPercentage  float64
	DrawPercentage float64
	LossPercentage float64
	Points         int
	Home           VenueStats
	Away           VenueStats
}

// StandingRow is one ranked line of a league table.
type StandingRow struct {
	Position       int
	TeamID         string
	TeamName       string
	Played         int
	Won            int
	Draw           int
	Lost           int
	GoalsFor       int
	GoalsAgainst   int
	GoalDifference int
	Points         int
}

// LeagueSummary carries the dashboard's headline counts.
type LeagueSummary struct {
	TotalMatches    int
	FinishedMatches int
	UpcomingMatches int
	LiveMatches     int
}

type StatsService struct {
	teamRepo   team.Repository
	leagueRepo league.Repository
	matchRepo  match.Repository
	provider   SportDataProvider
	store      *cache.Store
	logger     *logging.Logger
}

// NewStatsService builds the statistics engine. provider and store may be
// nil; the service then computes everything from local data.
func NewStatsService(
	teamRepo team.Repository,
	leagueRepo league.Repository,
	matchRepo match.Repository,
	provider SportDataProvider,
	store *cache.Store,
	logger *logging.Logger,
) *StatsService {
	if logger == nil {
		logger = logging.Default()
	}
	return &StatsService{
		teamRepo:   teamRepo,
		leagueRepo: leagueRepo,
		matchRepo:  matchRepo,
		provider:   provider,
		store:      store,
		logger:     logger,
	}
}

// TeamStatistics aggregates all finished matches for a team, optionally
// restricted to one league. Averages are 0 when no matches were played.
func (s *StatsService) TeamStatistics(ctx context.Context, teamID, leagueID string) (TeamStats, error) {
	ctx, span := startUsecaseSpan(ctx, "StatsService.TeamStatistics")
	defer span.End()

	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return TeamStats{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	_, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return TeamStats{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return TeamStats{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}

	items, err := s.matchRepo.ListByTeam(ctx, teamID, strings.TrimSpace(leagueID))
	if err != nil {
		return TeamStats{}, fmt.Errorf("list team matches: %w", err)
	}

	return ComputeTeamStats(teamID, items), nil
}

// ComputeTeamStats folds finished matches into a TeamStats. It is the pure
// core of TeamStatistics and is shared with the standings fallback.
func ComputeTeamStats(teamID string, items []match.Match) TeamStats {
	stats := TeamStats{TeamID: teamID}
	for _, item := range items {
		if !item.IsFinished() || !item.Involves(teamID) {
			continue
		}

		var scored, conceded int
		var venue *VenueStats
		if item.HomeTeamID == teamID {
			scored, conceded = item.HomeGoals, item.AwayGoals
			venue = &stats.Home
		} else {
			scored, conceded = item.AwayGoals, item.HomeGoals
			venue = &stats.Away
		}

		stats.Played++
		stats.GoalsFor += scored
		stats.GoalsAgainst += conceded
		venue.Played++
		venue.GoalsFor += scored
		venue.GoalsAgainst += conceded

		switch {
		case scored > conceded:
			stats.Wins++
			venue.Wins++
		case scored == conceded:
			stats.Draws++
			venue.Draws++
		default:
			stats.Losses++
			venue.Losses++
		}
	}

	stats.GoalDifference = stats.GoalsFor - stats.GoalsAgainst
	stats.Points = 3*stats.Wins + stats.Draws
	if stats.Played > 0 {
		stats.AvgFor = round2(float64(stats.GoalsFor) / float64(stats.Played))
		stats.AvgAgainst = round2(float64(stats.GoalsAgainst) / float64(stats.Played))
		stats.WinPercentage = round2(100 * float64(stats.Wins) / float64(stats.Played))
		stats.DrawPercentage = round2(100 * float64(stats.Draws) / float64(stats.Played))
		stats.LossPercentage = round2(100 * float64(stats.Losses) / float64(stats.Played))
	}
	finalizeVenue(&stats.Home)
	finalizeVenue(&stats.Away)
	return stats
}

func finalizeVenue(venue *VenueStats) {
	if venue.Played == 0 {
		return
	}
	venue.AvgFor = round2(float64(venue.GoalsFor) / float64(venue.Played))
	venue.AvgAgainst = round2(float64(venue.GoalsAgainst) / float64(venue.Played))
}

// TeamForm returns up to n results as a most-recent-first W/D/L string,
// or FormNoData when the team has no finished matches.
func (s *StatsService) TeamForm(ctx context.Context, teamID, leagueID string, n int) (string, error) {
	ctx, span := startUsecaseSpan(ctx, "StatsService.TeamForm")
	defer span.End()

	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return "", fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}
	if n <= 0 {
		n = DefaultFormLength
	}

	items, err := s.matchRepo.ListByTeam(ctx, teamID, strings.TrimSpace(leagueID))
	if err != nil {
		return "", fmt.Errorf("list team matches: %w", err)
	}

	return ComputeTeamForm(teamID, items, n), nil
}

// ComputeTeamForm derives the W/D/L sequence from finished matches,
// newest kickoff first.
func ComputeTeamForm(teamID string, items []match.Match, n int) string {
	finished := make([]match.Match, 0, len(items))
	for _, item := range items {
		if item.IsFinished() && item.Involves(teamID) {
			finished = append(finished, item)
		}
	}
	if len(finished) == 0 {
		return FormNoData
	}

	sort.SliceStable(finished, func(i, j int) bool {
		return finished[i].KickoffAt.After(finished[j].KickoffAt)
	})
	if len(finished) > n {
		finished = finished[:n]
	}

	var builder strings.Builder
	for _, item := range finished {
		var scored, conceded int
		if item.HomeTeamID == teamID {
			scored, conceded = item.HomeGoals, item.AwayGoals
		} else {
			scored, conceded = item.AwayGoals, item.HomeGoals
		}
		switch {
		case scored > conceded:
			builder.WriteByte('W')
		case scored == conceded:
			builder.WriteByte('D')
		default:
			builder.WriteByte('L')
		}
	}
	return builder.String()
}

// Standings returns the league table, preferring the provider's own rows
// (and ordering) and falling back to a locally computed table when the
// provider yields nothing.
func (s *StatsService) Standings(ctx context.Context, leagueID string) ([]StandingRow, error) {
	ctx, span := startUsecaseSpan(ctx, "StatsService.Standings")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return nil, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	item, exists, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("get league: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
	}

	if remote := s.providerStandings(ctx, item); len(remote) > 0 {
		return remote, nil
	}
	return s.localStandings(ctx, leagueID)
}

// providerStandings fetches the remote table through the TTL cache and
// resolves provider team refs against local teams. Provider order wins.
func (s *StatsService) providerStandings(ctx context.Context, item league.League) []StandingRow {
	if s.provider == nil || item.APIRef == "" {
		return nil
	}

	loader := func(ctx context.Context) (any, error) {
		return s.provider.StandingsByLeague(ctx, item.APIRef), nil
	}

	var raw any
	var err error
	if s.store != nil {
		raw, err = s.store.GetOrLoad(ctx, "standings:"+item.APIRef, loader)
	} else {
		raw, err = loader(ctx)
	}
	if err != nil {
		s.logger.WarnContext(ctx, "load provider standings failed", "league_id", item.ID, "error", err)
		return nil
	}
	rows, ok := raw.([]ProviderStanding)
	if !ok || len(rows) == 0 {
		return nil
	}

	out := make([]StandingRow, 0, len(rows))
	for idx, row := range rows {
		mapped := StandingRow{
			Position:       row.Position,
			TeamName:       row.TeamName,
			Played:         row.Played,
			Won:            row.Won,
			Draw:           row.Draw,
			Lost:           row.Lost,
			GoalsFor:       row.GoalsFor,
			GoalsAgainst:   row.GoalsAgainst,
			GoalDifference: row.GoalDifference,
			Points:         row.Points,
		}
		if mapped.Position == 0 {
			mapped.Position = idx + 1
		}
		if row.TeamRef != "" {
			if local, found, lookupErr := s.teamRepo.GetByAPIRef(ctx, row.TeamRef); lookupErr == nil && found {
				mapped.TeamID = local.ID
				if mapped.TeamName == "" {
					mapped.TeamName = local.Name
				}
			}
		}
		out = append(out, mapped)
	}
	return out
}

// localStandings ranks every team with at least one finished match by
// (points, goal difference, goals for) descending, team id ascending as
// the final deterministic tie-break.
func (s *StatsService) localStandings(ctx context.Context, leagueID string) ([]StandingRow, error) {
	items, err := s.matchRepo.ListByLeague(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("list league matches: %w", err)
	}

	byTeam := make(map[string][]match.Match)
	for _, item := range items {
		if !item.IsFinished() {
			continue
		}
		byTeam[item.HomeTeamID] = append(byTeam[item.HomeTeamID], item)
		byTeam[item.AwayTeamID] = append(byTeam[item.AwayTeamID], item)
	}

	rows := make([]StandingRow, 0, len(byTeam))
	for teamID, teamMatches := range byTeam {
		stats := ComputeTeamStats(teamID, teamMatches)
		if stats.Played == 0 {
			continue
		}
		row := StandingRow{
			TeamID:         teamID,
			Played:         stats.Played,
			Won:            stats.Wins,
			Draw:           stats.Draws,
			Lost:           stats.Losses,
			GoalsFor:       stats.GoalsFor,
			GoalsAgainst:   stats.GoalsAgainst,
			GoalDifference: stats.GoalDifference,
			Points:         stats.Points,
		}
		if item, found, lookupErr := s.teamRepo.GetByID(ctx, teamID); lookupErr == nil && found {
			row.TeamName = item.Name
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Points != rows[j].Points {
			return rows[i].Points > rows[j].Points
		}
		if rows[i].GoalDifference != rows[j].GoalDifference {
			return rows[i].GoalDifference > rows[j].GoalDifference
		}
		if rows[i].GoalsFor != rows[j].GoalsFor {
			return rows[i].GoalsFor > rows[j].GoalsFor
		}
		return rows[i].TeamID < rows[j].TeamID
	})
	for idx := range rows {
		rows[idx].Position = idx + 1
	}
	return rows, nil
}

// HeadToHead lists the last limit finished meetings between two teams,
// newest first.
func (s *StatsService) HeadToHead(ctx context.Context, teamAID, teamBID, leagueID string, limit int) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "StatsService.HeadToHead")
	defer span.End()

	teamAID = strings.TrimSpace(teamAID)
	teamBID = strings.TrimSpace(teamBID)
	if teamAID == "" || teamBID == "" {
		return nil, fmt.Errorf("%w: both team ids are required", ErrInvalidInput)
	}
	if limit <= 0 {
		limit = DefaultFormLength
	}

	items, err := s.matchRepo.ListByTeam(ctx, teamAID, strings.TrimSpace(leagueID))
	if err != nil {
		return nil, fmt.Errorf("list team matches: %w", err)
	}

	meetings := make([]match.Match, 0, limit)
	for _, item := range items {
		if item.IsFinished() && item.Involves(teamBID) {
			meetings = append(meetings, item)
		}
	}
	sort.SliceStable(meetings, func(i, j int) bool {
		return meetings[i].KickoffAt.After(meetings[j].KickoffAt)
	})
	if len(meetings) > limit {
		meetings = meetings[:limit]
	}
	return meetings, nil
}

// LeagueSummaryByID counts the league's matches per lifecycle bucket.
func (s *StatsService) LeagueSummaryByID(ctx context.Context, leagueID string) (LeagueSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "StatsService.LeagueSummaryByID")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return LeagueSummary{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	items, err := s.matchRepo.ListByLeague(ctx, leagueID)
	if err != nil {
		return LeagueSummary{}, fmt.Errorf("list league matches: %w", err)
	}

	summary := LeagueSummary{TotalMatches: len(items)}
	for _, item := range items {
		switch match.NormalizeStatus(item.Status) {
		case match.StatusFinished:
			summary.FinishedMatches++
		case match.StatusLive:
			summary.LiveMatches++
		case match.StatusScheduled:
			summary.UpcomingMatches++
		}
	}
	return summary, nil
}

// TopScorers proxies the provider's scorer list; empty on any failure.
func (s *StatsService) TopScorers(ctx context.Context, leagueID string, limit int) ([]ProviderScorer, error) {
	ctx, span := startUsecaseSpan(ctx, "StatsService.TopScorers")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return nil, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}
	item, exists, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("get league: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
	}
	if s.provider == nil || item.APIRef == "" {
		return nil, nil
	}

	loader := func(ctx context.Context) (any, error) {
		return s.provider.TopScorersByLeague(ctx, item.APIRef, limit), nil
	}

	var raw any
	if s.store != nil {
		raw, err = s.store.GetOrLoad(ctx, fmt.Sprintf("topscorers:%s:%d", item.APIRef, limit), loader)
	} else {
		raw, err = loader(ctx)
	}
	if err != nil {
		s.logger.WarnContext(ctx, "load provider top scorers failed", "league_id", leagueID, "error", err)
		return nil, nil
	}
	rows, _ := raw.([]ProviderScorer)
	return rows, nil
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
