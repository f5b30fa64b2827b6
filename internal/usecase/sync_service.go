package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Nicolasff12/PrediccionFutbol/internal/domain/league"
	"github.com/Nicolasff12/PrediccionFutbol/internal/domain/match"
	"github.com/Nicolasff12/PrediccionFutbol/internal/domain/team"
	"github.com/Nicolasff12/PrediccionFutbol/internal/platform/id"
	"github.com/Nicolasff12/PrediccionFutbol/internal/platform/logging"
)

const DefaultSyncHorizon = 30 * 24 * time.Hour

// SyncReport summarizes one reconciliation run.
type SyncReport struct {
	LeagueID       string
	TeamsCreated   int
	TeamsUpdated   int
	MatchesCreated int
	MatchesUpdated int
	MatchesSkipped int
}

type SyncService struct {
	provider   SportDataProvider
	leagueRepo league.Repository
	teamRepo   team.Repository
	matchRepo  match.Repository
	idgen      id.Generator
	horizon    time.Duration
	logger     *logging.Logger
}

func NewSyncService(
	provider SportDataProvider,
	leagueRepo league.Repository,
	teamRepo team.Repository,
	matchRepo match.Repository,
	idgen id.Generator,
	horizon time.Duration,
	logger *logging.Logger,
) *SyncService {
	if logger == nil {
		logger = logging.Default()
	}
	if horizon <= 0 {
		horizon = DefaultSyncHorizon
	}
	return &SyncService{
		provider:   provider,
		leagueRepo: leagueRepo,
		teamRepo:   teamRepo,
		matchRepo:  matchRepo,
		idgen:      idgen,
		horizon:    horizon,
		logger:     logger,
	}
}

// SyncLeague reconciles one competition: league row, team rows, and the
// matches kicking off inside the horizon. A second run over identical
// provider data changes nothing. Provider failures surface as empty
// fetches, never as errors; repository failures abort the run, and writes
// already committed stay (the next successful run converges).
func (s *SyncService) SyncLeague(ctx context.Context, country, leagueRef string) (SyncReport, error) {
	ctx, span := startUsecaseSpan(ctx, "SyncService.SyncLeague")
	defer span.End()

	leagueRef = strings.TrimSpace(leagueRef)
	if leagueRef == "" {
		return SyncReport{}, fmt.Errorf("%w: league ref is required", ErrInvalidInput)
	}
	if s.provider == nil {
		return SyncReport{}, fmt.Errorf("%w: sport data provider is not configured", ErrDependencyUnavailable)
	}

	item, err := s.resolveLeague(ctx, country, leagueRef)
	if err != nil {
		return SyncReport{}, err
	}
	report := SyncReport{LeagueID: item.ID}

	teamByRef, err := s.syncTeams(ctx, leagueRef, &report)
	if err != nil {
		return report, err
	}

	now := time.Now().UTC()
	providerMatches := s.provider.MatchesByLeague(ctx, leagueRef, now, now.Add(s.horizon))
	for _, row := range providerMatches {
		if err := s.upsertMatch(ctx, item, teamByRef, row, &report); err != nil {
			return report, err
		}
	}

	s.logger.InfoContext(ctx, "league sync finished",
		"league_id", item.ID,
		"teams_created", report.TeamsCreated,
		"teams_updated", report.TeamsUpdated,
		"matches_created", report.MatchesCreated,
		"matches_updated", report.MatchesUpdated,
		"matches_skipped", report.MatchesSkipped,
	)
	return report, nil
}

// resolveLeague finds the league by provider ref, enriching it from the
// provider's country listing when available. Existing non-empty fields
// are never overwritten.
func (s *SyncService) resolveLeague(ctx context.Context, country, leagueRef string) (league.League, error) {
	existing, found, err := s.leagueRepo.GetByAPIRef(ctx, leagueRef)
	if err != nil {
		return league.League{}, fmt.Errorf("get league by api ref: %w", err)
	}

	var remote ProviderLeague
	for _, row := range s.provider.LeaguesByCountry(ctx, country) {
		if row.APIRef == leagueRef {
			remote = row
			break
		}
	}

	if !found {
		newID, idErr := s.idgen.NewID()
		if idErr != nil {
			return league.League{}, fmt.Errorf("generate league id: %w", idErr)
		}
		existing = league.League{
			ID:      newID,
			APIRef:  leagueRef,
			Name:    firstFilled(remote.Name, "League "+leagueRef),
			Country: firstFilled(remote.Country, strings.TrimSpace(country)),
			LogoURL: remote.LogoURL,
		}
		saved, saveErr := s.leagueRepo.Upsert(ctx, existing)
		if saveErr != nil {
			return league.League{}, fmt.Errorf("create league: %w", saveErr)
		}
		return saved, nil
	}

	updated := existing
	updated.Name = firstFilled(existing.Name, remote.Name)
	updated.Country = firstFilled(existing.Country, remote.Country)
	updated.LogoURL = firstFilled(existing.LogoURL, remote.LogoURL)
	if updated == existing {
		return existing, nil
	}
	saved, saveErr := s.leagueRepo.Upsert(ctx, updated)
	if saveErr != nil {
		return league.League{}, fmt.Errorf("update league: %w", saveErr)
	}
	return saved, nil
}

// syncTeams upserts every provider team and returns the ref -> team map
// used to resolve match participants in the same run.
func (s *SyncService) syncTeams(ctx context.Context, leagueRef string, report *SyncReport) (map[string]team.Team, error) {
	teamByRef := make(map[string]team.Team)
	for _, row := range s.provider.TeamsByLeague(ctx, leagueRef) {
		saved, created, err := s.upsertTeam(ctx, row)
		if err != nil {
			return nil, err
		}
		teamByRef[row.APIRef] = saved
		if created {
			report.TeamsCreated++
		} else {
			report.TeamsUpdated++
		}
	}
	return teamByRef, nil
}

func (s *SyncService) upsertTeam(ctx context.Context, row ProviderTeam) (team.Team, bool, error) {
	existing, found, err := s.teamRepo.GetByAPIRef(ctx, row.APIRef)
	if err != nil {
		return team.Team{}, false, fmt.Errorf("get team by api ref: %w", err)
	}

	if !found {
		newID, idErr := s.idgen.NewID()
		if idErr != nil {
			return team.Team{}, false, fmt.Errorf("generate team id: %w", idErr)
		}
		candidate := team.Team{
			ID:       newID,
			APIRef:   row.APIRef,
			Name:     firstFilled(row.Name, "Team "+row.APIRef),
			Short:    row.Short,
			CrestURL: row.CrestURL,
		}
		saved, saveErr := s.teamRepo.Upsert(ctx, candidate)
		if saveErr != nil {
			return team.Team{}, false, fmt.Errorf("create team: %w", saveErr)
		}
		return saved, true, nil
	}

	// Fill only currently-empty fields so manual corrections survive syncs.
	updated := existing
	updated.Name = firstFilled(existing.Name, row.Name)
	updated.Short = firstFilled(existing.Short, row.Short)
	updated.CrestURL = firstFilled(existing.CrestURL, row.CrestURL)
	if updated == existing {
		return existing, false, nil
	}
	saved, saveErr := s.teamRepo.Upsert(ctx, updated)
	if saveErr != nil {
		return team.Team{}, false, fmt.Errorf("update team: %w", saveErr)
	}
	return saved, false, nil
}

func (s *SyncService) upsertMatch(ctx context.Context, item league.League, teamByRef map[string]team.Team, row ProviderMatch, report *SyncReport) error {
	home, homeOK := teamByRef[row.HomeTeamRef]
	away, awayOK := teamByRef[row.AwayTeamRef]
	if !homeOK || !awayOK || home.ID == away.ID {
		report.MatchesSkipped++
		s.logger.WarnContext(ctx, "skip match with unresolvable teams",
			"league_id", item.ID,
			"home_ref", row.HomeTeamRef,
			"away_ref", row.AwayTeamRef,
		)
		return nil
	}
	if row.KickoffAt.IsZero() {
		report.MatchesSkipped++
		return nil
	}

	existing, found, err := s.lookupMatch(ctx, item.ID, home.ID, away.ID, row)
	if err != nil {
		return err
	}

	candidate := existing
	if !found {
		newID, idErr := s.idgen.NewID()
		if idErr != nil {
			return fmt.Errorf("generate match id: %w", idErr)
		}
		candidate = match.Match{ID: newID}
	}
	candidate.APIRef = firstFilled(existing.APIRef, row.APIRef)
	candidate.LeagueID = item.ID
	candidate.HomeTeamID = home.ID
	candidate.AwayTeamID = away.ID
	candidate.KickoffAt = row.KickoffAt
	candidate.HomeGoals = row.HomeGoals
	candidate.AwayGoals = row.AwayGoals
	candidate.Status = match.NormalizeStatus(row.Status)

	if found && matchUnchanged(existing, candidate) {
		return nil
	}
	candidate.UpdatedAt = time.Now().UTC()
	if _, err := s.matchRepo.Upsert(ctx, candidate); err != nil {
		return fmt.Errorf("upsert match: %w", err)
	}
	if found {
		report.MatchesUpdated++
	} else {
		report.MatchesCreated++
	}
	return nil
}

// lookupMatch prefers the provider reference and falls back to the
// natural (league, home, away, kickoff) key when the provider omits ids.
func (s *SyncService) lookupMatch(ctx context.Context, leagueID, homeID, awayID string, row ProviderMatch) (match.Match, bool, error) {
	if row.APIRef != "" {
		existing, found, err := s.matchRepo.GetByAPIRef(ctx, row.APIRef)
		if err != nil {
			return match.Match{}, false, fmt.Errorf("get match by api ref: %w", err)
		}
		if found {
			return existing, true, nil
		}
	}
	existing, found, err := s.matchRepo.GetByNaturalKey(ctx, leagueID, homeID, awayID, row.KickoffAt)
	if err != nil {
		return match.Match{}, false, fmt.Errorf("get match by natural key: %w", err)
	}
	return existing, found, nil
}

func matchUnchanged(existing, candidate match.Match) bool {
	return existing.APIRef == candidate.APIRef &&
		existing.LeagueID == candidate.LeagueID &&
		existing.HomeTeamID == candidate.HomeTeamID &&
		existing.AwayTeamID == candidate.AwayTeamID &&
		existing.KickoffAt.Equal(candidate.KickoffAt) &&
		existing.HomeGoals == candidate.HomeGoals &&
		existing.AwayGoals == candidate.AwayGoals &&
		existing.Status == candidate.Status
}

func firstFilled(values ...string) string {
	for _, item := range values {
		if strings.TrimSpace(item) != "" {
			return strings.TrimSpace(item)
		}
	}
	return ""
}
