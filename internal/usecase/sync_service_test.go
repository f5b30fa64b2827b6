package usecase

import (
	"testing"
	"time"

	"github.com/Nicolasff12/PrediccionFutbol/internal/domain/team"
	"github.com/Nicolasff12/PrediccionFutbol/internal/infrastructure/repository/memory"
	"github.com/Nicolasff12/PrediccionFutbol/internal/platform/logging"
)

func newSyncFixture(provider SportDataProvider) (*SyncService, *memory.LeagueRepository, *memory.TeamRepository, *memory.MatchRepository) {
	leagueRepo := memory.NewLeagueRepository(nil)
	teamRepo := memory.NewTeamRepository(nil)
	matchRepo := memory.NewMatchRepository(nil)

	service := NewSyncService(
		provider,
		leagueRepo,
		teamRepo,
		matchRepo,
		&seqIDGenerator{prefix: "sync"},
		DefaultSyncHorizon,
		logging.NewNop(),
	)
	return service, leagueRepo, teamRepo, matchRepo
}

func TestSyncService_SyncLeague_CreateThenIdempotent(t *testing.T) {
	kickoff := time.Now().UTC().Add(72 * time.Hour).Truncate(time.Second)
	provider := &stubProvider{
		leagues: []ProviderLeague{
			{APIRef: "laliga-2026", Name: "LaLiga", Country: "spain", LogoURL: "https://img/laliga.png"},
		},
		teams: []ProviderTeam{
			{APIRef: "real-madrid", Name: "Real Madrid", Short: "RMA"},
			{APIRef: "fc-barcelona", Name: "FC Barcelona", Short: "FCB"},
		},
		matches: []ProviderMatch{
			{APIRef: "match-1", HomeTeamRef: "real-madrid", AwayTeamRef: "fc-barcelona", Status: "ns", KickoffAt: kickoff},
		},
	}
	service, leagueRepo, _, matchRepo := newSyncFixture(provider)

	first, err := service.SyncLeague(t.Context(), "spain", "laliga-2026")
	if err != nil {
		t.Fatalf("first sync failed: %v", err)
	}
	if first.TeamsCreated != 2 || first.TeamsUpdated != 0 {
		t.Fatalf("first run teams: got %+v", first)
	}
	if first.MatchesCreated != 1 || first.MatchesUpdated != 0 || first.MatchesSkipped != 0 {
		t.Fatalf("first run matches: got %+v", first)
	}

	created, found, err := leagueRepo.GetByAPIRef(t.Context(), "laliga-2026")
	if err != nil || !found {
		t.Fatalf("league not stored: found=%t err=%v", found, err)
	}
	if created.Name != "LaLiga" || created.Country != "spain" {
		t.Fatalf("league fields: got %+v", created)
	}

	second, err := service.SyncLeague(t.Context(), "spain", "laliga-2026")
	if err != nil {
		t.Fatalf("second sync failed: %v", err)
	}
	if second.TeamsCreated != 0 || second.TeamsUpdated != 0 ||
		second.MatchesCreated != 0 || second.MatchesUpdated != 0 {
		t.Fatalf("second run over identical data must be a no-op: got %+v", second)
	}

	stored, err := matchRepo.ListByLeague(t.Context(), created.ID)
	if err != nil {
		t.Fatalf("list matches failed: %v", err)
	}
	if len(stored) != 1 {
		t.Fatalf("stored matches: got=%d want=1", len(stored))
	}
	if stored[0].Status != "NS" {
		t.Fatalf("status must be normalized, got %q", stored[0].Status)
	}
}

func TestSyncService_SyncLeague_ScoreUpdateTouchesOnlyThatMatch(t *testing.T) {
	kickoff := time.Now().UTC().Add(-24 * time.Hour).Truncate(time.Second)
	provider := &stubProvider{
		teams: []ProviderTeam{
			{APIRef: "real-madrid", Name: "Real Madrid"},
			{APIRef: "sevilla-fc", Name: "Sevilla FC"},
		},
		matches: []ProviderMatch{
			{APIRef: "match-1", HomeTeamRef: "real-madrid", AwayTeamRef: "sevilla-fc", Status: "LIVE", KickoffAt: kickoff},
		},
	}
	service, _, _, _ := newSyncFixture(provider)

	if _, err := service.SyncLeague(t.Context(), "spain", "laliga-2026"); err != nil {
		t.Fatalf("initial sync failed: %v", err)
	}

	provider.matches[0].Status = "FT"
	provider.matches[0].HomeGoals = 2
	provider.matches[0].AwayGoals = 1

	report, err := service.SyncLeague(t.Context(), "spain", "laliga-2026")
	if err != nil {
		t.Fatalf("resync failed: %v", err)
	}
	if report.MatchesUpdated != 1 || report.MatchesCreated != 0 {
		t.Fatalf("score change must update in place: got %+v", report)
	}
}

func TestSyncService_SyncLeague_PreservesManualEdits(t *testing.T) {
	provider := &stubProvider{
		teams: []ProviderTeam{
			{APIRef: "real-madrid", Name: "Provider Name", Short: "PRV", CrestURL: "https://img/rma.png"},
		},
	}
	service, _, teamRepo, _ := newSyncFixture(provider)

	// The team already exists with a curated name and no crest.
	existing := team.Team{ID: "team-1", APIRef: "real-madrid", Name: "Real Madrid CF"}
	if _, err := teamRepo.Upsert(t.Context(), existing); err != nil {
		t.Fatalf("seed team failed: %v", err)
	}

	report, err := service.SyncLeague(t.Context(), "spain", "laliga-2026")
	if err != nil {
		t.Fatalf("sync failed: %v", err)
	}
	if report.TeamsUpdated != 1 {
		t.Fatalf("crest fill counts as an update: got %+v", report)
	}

	saved, found, err := teamRepo.GetByAPIRef(t.Context(), "real-madrid")
	if err != nil || !found {
		t.Fatalf("team lookup failed: found=%t err=%v", found, err)
	}
	if saved.ID != "team-1" {
		t.Fatalf("identity must survive the sync: got %s", saved.ID)
	}
	if saved.Name != "Real Madrid CF" {
		t.Fatalf("curated name must survive: got %q", saved.Name)
	}
	if saved.CrestURL != "https://img/rma.png" {
		t.Fatalf("empty crest must be filled: got %q", saved.CrestURL)
	}
}

func TestSyncService_SyncLeague_SkipsUnresolvableMatches(t *testing.T) {
	kickoff := time.Now().UTC().Add(24 * time.Hour)
	provider := &stubProvider{
		teams: []ProviderTeam{
			{APIRef: "real-madrid", Name: "Real Madrid"},
		},
		matches: []ProviderMatch{
			{APIRef: "m-ghost", HomeTeamRef: "real-madrid", AwayTeamRef: "ghost-team", KickoffAt: kickoff},
			{APIRef: "m-self", HomeTeamRef: "real-madrid", AwayTeamRef: "real-madrid", KickoffAt: kickoff},
		},
	}
	service, _, _, matchRepo := newSyncFixture(provider)

	report, err := service.SyncLeague(t.Context(), "spain", "laliga-2026")
	if err != nil {
		t.Fatalf("sync failed: %v", err)
	}
	if report.MatchesSkipped != 2 || report.MatchesCreated != 0 {
		t.Fatalf("unresolvable matches must be skipped: got %+v", report)
	}

	stored, err := matchRepo.ListByLeague(t.Context(), report.LeagueID)
	if err != nil {
		t.Fatalf("list matches failed: %v", err)
	}
	if len(stored) != 0 {
		t.Fatalf("no match rows expected, got %d", len(stored))
	}
}

func TestSyncService_SyncLeague_NoProvider(t *testing.T) {
	service, _, _, _ := newSyncFixture(nil)

	if _, err := service.SyncLeague(t.Context(), "spain", "laliga-2026"); err == nil {
		t.Fatal("expected error without a provider")
	}
}

func TestSyncService_SyncLeagues_FanOut(t *testing.T) {
	kickoff := time.Now().UTC().Add(48 * time.Hour)
	provider := &stubProvider{
		teams: []ProviderTeam{
			{APIRef: "team-a", Name: "Team A"},
			{APIRef: "team-b", Name: "Team B"},
		},
		matches: []ProviderMatch{
			{APIRef: "m-1", HomeTeamRef: "team-a", AwayTeamRef: "team-b", KickoffAt: kickoff},
		},
	}
	service, _, _, _ := newSyncFixture(provider)

	result, err := service.SyncLeagues(t.Context(), MultiSyncInput{
		Country:    "spain",
		LeagueRefs: []string{"laliga-2026", "copa-del-rey", "laliga-2026"},
		MaxWorkers: 2,
	})
	if err != nil {
		t.Fatalf("multi sync failed: %v", err)
	}

	if result.LeagueCount != 2 {
		t.Fatalf("duplicate refs must collapse: got=%d want=2", result.LeagueCount)
	}
	if result.SuccessCount != 2 || result.FailedCount != 0 {
		t.Fatalf("result counters: got %+v", result)
	}
	if len(result.Leagues) != 2 {
		t.Fatalf("per-league items: got=%d want=2", len(result.Leagues))
	}
	for _, item := range result.Leagues {
		if item.Status != "success" {
			t.Fatalf("league %s: got status %q", item.LeagueRef, item.Status)
		}
	}
}
