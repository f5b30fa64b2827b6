package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/Nicolasff12/PrediccionFutbol/internal/infrastructure/repository/memory"
	"github.com/Nicolasff12/PrediccionFutbol/internal/platform/logging"
)

type seqIDGenerator struct {
	prefix string
	next   int
}

func (g *seqIDGenerator) NewID() (string, error) {
	g.next++
	return fmt.Sprintf("%s-%03d", g.prefix, g.next), nil
}

type stubModel struct {
	response string
	err      error
	calls    int
}

func (m *stubModel) Configured() bool {
	return true
}

func (m *stubModel) Generate(context.Context, string) (string, error) {
	m.calls++
	return m.response, m.err
}

func newPredictionService(t *testing.T, model GenerativeModel) (*PredictionService, *memory.UserRepository) {
	t.Helper()
	now := time.Now().UTC()
	leagueRepo := memory.NewLeagueRepository(memory.SeedLeagues())
	teamRepo := memory.NewTeamRepository(memory.SeedTeams())
	matchRepo := memory.NewMatchRepository(memory.SeedMatches(now))
	predictionRepo := memory.NewPredictionRepository(nil)
	userRepo := memory.NewUserRepository(memory.SeedUsers())

	stats := NewStatsService(teamRepo, leagueRepo, matchRepo, nil, nil, logging.NewNop())
	service := NewPredictionService(
		matchRepo,
		teamRepo,
		leagueRepo,
		predictionRepo,
		userRepo,
		stats,
		model,
		&seqIDGenerator{prefix: "pred"},
		logging.NewNop(),
	)
	return service, userRepo
}

func TestPredictionService_CreateManualPrediction_Overwrites(t *testing.T) {
	service, _ := newPredictionService(t, nil)

	first, err := service.CreateManualPrediction(t.Context(), memory.UserIDDemo, "esp-m5", 2, 1)
	if err != nil {
		t.Fatalf("first prediction failed: %v", err)
	}
	second, err := service.CreateManualPrediction(t.Context(), memory.UserIDDemo, "esp-m5", 0, 3)
	if err != nil {
		t.Fatalf("second prediction failed: %v", err)
	}

	if second.ID != first.ID {
		t.Fatalf("overwrite must keep the row id: first=%s second=%s", first.ID, second.ID)
	}
	if second.HomeGoals != 0 || second.AwayGoals != 3 {
		t.Fatalf("second values must win: got %d-%d", second.HomeGoals, second.AwayGoals)
	}

	items, err := service.ListByUser(t.Context(), memory.UserIDDemo, 0)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("one row per (user, match): got %d rows", len(items))
	}
	if items[0].Confidence != 0 || items[0].Analysis != "" {
		t.Fatalf("manual predictions carry no confidence or analysis: %+v", items[0])
	}
}

func TestPredictionService_CreateManualPrediction_ProvisionsUser(t *testing.T) {
	service, userRepo := newPredictionService(t, nil)

	if _, exists, err := userRepo.GetByID(t.Context(), "visitor-7"); err != nil || exists {
		t.Fatalf("fixture user must start unknown: exists=%v err=%v", exists, err)
	}

	if _, err := service.CreateManualPrediction(t.Context(), "visitor-7", "esp-m5", 1, 0); err != nil {
		t.Fatalf("prediction failed: %v", err)
	}

	provisioned, exists, err := userRepo.GetByID(t.Context(), "visitor-7")
	if err != nil || !exists {
		t.Fatalf("first prediction must provision the user: exists=%v err=%v", exists, err)
	}
	if provisioned.Username != "visitor-7" {
		t.Fatalf("provisioned username: got=%q", provisioned.Username)
	}

	// A seeded user keeps its curated row.
	if _, err := service.CreateManualPrediction(t.Context(), memory.UserIDDemo, "esp-m5", 1, 0); err != nil {
		t.Fatalf("prediction failed: %v", err)
	}
	seeded, exists, err := userRepo.GetByID(t.Context(), memory.UserIDDemo)
	if err != nil || !exists {
		t.Fatalf("seeded user lookup: exists=%v err=%v", exists, err)
	}
	if seeded.Username != "demo" {
		t.Fatalf("seeded row must survive untouched: got=%q", seeded.Username)
	}
}

func TestPredictionService_CreateManualPrediction_UnknownMatch(t *testing.T) {
	service, _ := newPredictionService(t, nil)

	_, err := service.CreateManualPrediction(t.Context(), memory.UserIDDemo, "missing", 1, 0)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPredictionService_CreateAIPrediction_ClampsModelOutput(t *testing.T) {
	model := &stubModel{response: `{"goles_local": 15, "goles_visitante": -2, "analisis": "Goleada historica.", "confianza": 150}`}
	service, _ := newPredictionService(t, model)

	got, err := service.CreateAIPrediction(t.Context(), memory.UserIDDemo, "esp-m5")
	if err != nil {
		t.Fatalf("ai prediction failed: %v", err)
	}

	if model.calls != 1 {
		t.Fatalf("model calls: got=%d want=1", model.calls)
	}
	if got.HomeGoals != 10 {
		t.Fatalf("home goals must clamp to 10, got %d", got.HomeGoals)
	}
	if got.AwayGoals != 0 {
		t.Fatalf("away goals must clamp to 0, got %d", got.AwayGoals)
	}
	if got.Confidence != 100 {
		t.Fatalf("confidence must clamp to 100, got %v", got.Confidence)
	}
	if got.Analysis != "Goleada historica." {
		t.Fatalf("analysis: got=%q", got.Analysis)
	}
}

func TestPredictionService_CreateAIPrediction_ModelFailureStoresDefault(t *testing.T) {
	model := &stubModel{err: errors.New("upstream timeout")}
	service, _ := newPredictionService(t, model)

	got, err := service.CreateAIPrediction(t.Context(), memory.UserIDDemo, "esp-m5")
	if err != nil {
		t.Fatalf("ai prediction failed: %v", err)
	}

	if got.HomeGoals != 1 || got.AwayGoals != 1 {
		t.Fatalf("default forecast is 1-1, got %d-%d", got.HomeGoals, got.AwayGoals)
	}
	if got.Analysis != FallbackAnalysis {
		t.Fatalf("analysis: got=%q", got.Analysis)
	}
	if got.Confidence != 50.0 {
		t.Fatalf("confidence: got=%v want=50", got.Confidence)
	}
}

func TestPredictionService_VerifyPending(t *testing.T) {
	service, _ := newPredictionService(t, nil)

	// esp-m1 finished 2-0. One exact hit, one miss, one on an
	// unfinished match that must stay pending.
	if _, err := service.CreateManualPrediction(t.Context(), memory.UserIDDemo, "esp-m1", 2, 0); err != nil {
		t.Fatalf("prediction on finished match failed: %v", err)
	}
	if _, err := service.CreateManualPrediction(t.Context(), "other-user", "esp-m1", 1, 1); err != nil {
		t.Fatalf("second prediction failed: %v", err)
	}
	if _, err := service.CreateManualPrediction(t.Context(), memory.UserIDDemo, "esp-m5", 2, 2); err != nil {
		t.Fatalf("prediction on upcoming match failed: %v", err)
	}

	processed, err := service.VerifyPending(t.Context())
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if processed != 2 {
		t.Fatalf("processed: got=%d want=2", processed)
	}

	demoStats, err := service.StatsByUser(t.Context(), memory.UserIDDemo)
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if demoStats.Total != 2 || demoStats.Correct != 1 || demoStats.Pending != 1 {
		t.Fatalf("demo stats: got %+v", demoStats)
	}
	if demoStats.Accuracy != 100 {
		t.Fatalf("accuracy over verified rows only: got=%v want=100", demoStats.Accuracy)
	}

	otherStats, err := service.StatsByUser(t.Context(), "other-user")
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if otherStats.Incorrect != 1 || otherStats.Accuracy != 0 {
		t.Fatalf("other stats: got %+v", otherStats)
	}

	// A second pass finds nothing left to verify.
	processed, err = service.VerifyPending(t.Context())
	if err != nil {
		t.Fatalf("second verify failed: %v", err)
	}
	if processed != 0 {
		t.Fatalf("second pass processed: got=%d want=0", processed)
	}
}

func TestPredictionService_BuildMatchContext(t *testing.T) {
	service, _ := newPredictionService(t, nil)

	matchCtx, err := service.BuildMatchContext(t.Context(), "esp-m5")
	if err != nil {
		t.Fatalf("build context failed: %v", err)
	}

	if matchCtx.HomeTeam.ID == "" || matchCtx.AwayTeam.ID == "" {
		t.Fatalf("teams must resolve: %+v", matchCtx)
	}
	if matchCtx.League.ID != memory.LeagueIDLaLiga {
		t.Fatalf("league: got=%s", matchCtx.League.ID)
	}
	if matchCtx.HomeForm == "" || matchCtx.AwayForm == "" {
		t.Fatal("forms must be populated")
	}
	if matchCtx.HomeStats.Played == 0 {
		t.Fatalf("home side has seeded history: %+v", matchCtx.HomeStats)
	}
}
