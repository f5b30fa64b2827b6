package usecase

import (
	"context"
	"fmt"

	"github.com/Nicolasff12/PrediccionFutbol/internal/domain/league"
	"github.com/Nicolasff12/PrediccionFutbol/internal/platform/logging"
)

const dashboardStandingsLimit = 10

// HomeView is the landing payload: near-term fixtures, latest results
// and the current table for one league.
type HomeView struct {
	League    league.League
	Upcoming  []MatchDetail
	Recent    []MatchDetail
	Standings []StandingRow
	Summary   LeagueSummary
}

type DashboardService struct {
	leagueRepo league.Repository
	matches    *MatchService
	stats      *StatsService
	logger     *logging.Logger
}

func NewDashboardService(
	leagueRepo league.Repository,
	matches *MatchService,
	stats *StatsService,
	logger *logging.Logger,
) *DashboardService {
	if logger == nil {
		logger = logging.Default()
	}
	return &DashboardService{
		leagueRepo: leagueRepo,
		matches:    matches,
		stats:      stats,
		logger:     logger,
	}
}

// Home builds the landing view for the given league, or for the first
// stored league when leagueID is empty. Standings and match lists
// degrade to empty slices on partial failures.
func (s *DashboardService) Home(ctx context.Context, leagueID string) (HomeView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DashboardService.Home")
	defer span.End()

	item, err := s.resolveLeague(ctx, leagueID)
	if err != nil {
		return HomeView{}, err
	}

	view := HomeView{League: item}

	if upcoming, err := s.matches.ListUpcoming(ctx, item.ID, DefaultMatchListLimit); err != nil {
		s.logger.WarnContext(ctx, "dashboard upcoming matches failed", "league_id", item.ID, "error", err)
	} else {
		view.Upcoming = upcoming
	}

	if recent, err := s.matches.ListRecent(ctx, item.ID, DefaultMatchListLimit); err != nil {
		s.logger.WarnContext(ctx, "dashboard recent matches failed", "league_id", item.ID, "error", err)
	} else {
		view.Recent = recent
	}

	if standings, err := s.stats.Standings(ctx, item.ID); err != nil {
		s.logger.WarnContext(ctx, "dashboard standings failed", "league_id", item.ID, "error", err)
	} else {
		if len(standings) > dashboardStandingsLimit {
			standings = standings[:dashboardStandingsLimit]
		}
		view.Standings = standings
	}

	if summary, err := s.stats.LeagueSummaryByID(ctx, item.ID); err != nil {
		s.logger.WarnContext(ctx, "dashboard league summary failed", "league_id", item.ID, "error", err)
	} else {
		view.Summary = summary
	}

	return view, nil
}

func (s *DashboardService) resolveLeague(ctx context.Context, leagueID string) (league.League, error) {
	if leagueID != "" {
		item, found, err := s.leagueRepo.GetByID(ctx, leagueID)
		if err != nil {
			return league.League{}, fmt.Errorf("get league %s: %w", leagueID, err)
		}
		if !found {
			return league.League{}, fmt.Errorf("%w: league %s", ErrNotFound, leagueID)
		}
		return item, nil
	}

	leagues, err := s.leagueRepo.List(ctx)
	if err != nil {
		return league.League{}, fmt.Errorf("list leagues: %w", err)
	}
	if len(leagues) == 0 {
		return league.League{}, fmt.Errorf("%w: no leagues stored", ErrNotFound)
	}
	return leagues[0], nil
}
