package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Nicolasff12/PrediccionFutbol/internal/domain/league"
	"github.com/Nicolasff12/PrediccionFutbol/internal/domain/match"
	"github.com/Nicolasff12/PrediccionFutbol/internal/domain/team"
	"github.com/Nicolasff12/PrediccionFutbol/internal/platform/logging"
)

const DefaultMatchListLimit = 10

// MatchDetail bundles a match with its resolved teams and league for
// display purposes.
type MatchDetail struct {
	Match    match.Match
	HomeTeam team.Team
	AwayTeam team.Team
	League   league.League
}

type MatchService struct {
	matchRepo  match.Repository
	teamRepo   team.Repository
	leagueRepo league.Repository
	logger     *logging.Logger
}

func NewMatchService(
	matchRepo match.Repository,
	teamRepo team.Repository,
	leagueRepo league.Repository,
	logger *logging.Logger,
) *MatchService {
	if logger == nil {
		logger = logging.Default()
	}
	return &MatchService{
		matchRepo:  matchRepo,
		teamRepo:   teamRepo,
		leagueRepo: leagueRepo,
		logger:     logger,
	}
}

func (s *MatchService) GetDetail(ctx context.Context, matchID string) (MatchDetail, error) {
	ctx, span := startUsecaseSpan(ctx, "MatchService.GetDetail")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return MatchDetail{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	item, exists, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return MatchDetail{}, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return MatchDetail{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}

	return s.hydrate(ctx, item), nil
}

// ListUpcoming returns scheduled or live matches kicking off from now on,
// soonest first.
func (s *MatchService) ListUpcoming(ctx context.Context, leagueID string, limit int) ([]MatchDetail, error) {
	ctx, span := startUsecaseSpan(ctx, "MatchService.ListUpcoming")
	defer span.End()

	items, err := s.listLeague(ctx, leagueID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	filtered := make([]match.Match, 0, len(items))
	for _, item := range items {
		status := match.NormalizeStatus(item.Status)
		if (status == match.StatusScheduled || status == match.StatusLive) && !item.KickoffAt.Before(now) {
			filtered = append(filtered, item)
		}
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].KickoffAt.Before(filtered[j].KickoffAt)
	})
	return s.hydrateAll(ctx, clipMatches(filtered, limit)), nil
}

// ListRecent returns finished matches, newest first.
func (s *MatchService) ListRecent(ctx context.Context, leagueID string, limit int) ([]MatchDetail, error) {
	ctx, span := startUsecaseSpan(ctx, "MatchService.ListRecent")
	defer span.End()

	items, err := s.listLeague(ctx, leagueID)
	if err != nil {
		return nil, err
	}

	filtered := make([]match.Match, 0, len(items))
	for _, item := range items {
		if item.IsFinished() {
			filtered = append(filtered, item)
		}
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].KickoffAt.After(filtered[j].KickoffAt)
	})
	return s.hydrateAll(ctx, clipMatches(filtered, limit)), nil
}

// ListToday returns every match kicking off today (UTC), earliest first.
func (s *MatchService) ListToday(ctx context.Context, leagueID string) ([]MatchDetail, error) {
	ctx, span := startUsecaseSpan(ctx, "MatchService.ListToday")
	defer span.End()

	items, err := s.listLeague(ctx, leagueID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24 * time.Hour)

	filtered := make([]match.Match, 0, len(items))
	for _, item := range items {
		if !item.KickoffAt.Before(dayStart) && item.KickoffAt.Before(dayEnd) {
			filtered = append(filtered, item)
		}
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].KickoffAt.Before(filtered[j].KickoffAt)
	})
	return s.hydrateAll(ctx, filtered), nil
}

func (s *MatchService) listLeague(ctx context.Context, leagueID string) ([]match.Match, error) {
	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return nil, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	_, exists, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("get league: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
	}

	items, err := s.matchRepo.ListByLeague(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("list league matches: %w", err)
	}
	return items, nil
}

func (s *MatchService) hydrateAll(ctx context.Context, items []match.Match) []MatchDetail {
	out := make([]MatchDetail, 0, len(items))
	for _, item := range items {
		out = append(out, s.hydrate(ctx, item))
	}
	return out
}

// hydrate resolves display references best-effort; a missing team or
// league leaves the field zero-valued rather than failing the listing.
func (s *MatchService) hydrate(ctx context.Context, item match.Match) MatchDetail {
	detail := MatchDetail{Match: item}
	if home, found, err := s.teamRepo.GetByID(ctx, item.HomeTeamID); err == nil && found {
		detail.HomeTeam = home
	}
	if away, found, err := s.teamRepo.GetByID(ctx, item.AwayTeamID); err == nil && found {
		detail.AwayTeam = away
	}
	if row, found, err := s.leagueRepo.GetByID(ctx, item.LeagueID); err == nil && found {
		detail.League = row
	}
	return detail
}

func clipMatches(items []match.Match, limit int) []match.Match {
	if limit <= 0 {
		limit = DefaultMatchListLimit
	}
	if len(items) > limit {
		return items[:limit]
	}
	return items
}
