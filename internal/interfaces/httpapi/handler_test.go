package httpapi

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/Nicolasff12/PrediccionFutbol/internal/infrastructure/repository/memory"
	"github.com/Nicolasff12/PrediccionFutbol/internal/platform/id"
	"github.com/Nicolasff12/PrediccionFutbol/internal/platform/logging"
	"github.com/Nicolasff12/PrediccionFutbol/internal/usecase"
)

const testInternalJobToken = "job-token"

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	now := time.Now().UTC()
	leagueRepo := memory.NewLeagueRepository(memory.SeedLeagues())
	teamRepo := memory.NewTeamRepository(memory.SeedTeams())
	matchRepo := memory.NewMatchRepository(memory.SeedMatches(now))
	predictionRepo := memory.NewPredictionRepository(nil)
	userRepo := memory.NewUserRepository(memory.SeedUsers())

	appLogger := logging.NewNop()
	matchSvc := usecase.NewMatchService(matchRepo, teamRepo, leagueRepo, appLogger)
	statsSvc := usecase.NewStatsService(teamRepo, leagueRepo, matchRepo, nil, nil, appLogger)
	predictionSvc := usecase.NewPredictionService(
		matchRepo, teamRepo, leagueRepo, predictionRepo, userRepo,
		statsSvc, nil, id.NewRandomGenerator(), appLogger,
	)
	syncSvc := usecase.NewSyncService(
		nil, leagueRepo, teamRepo, matchRepo,
		id.NewRandomGenerator(), 0, appLogger,
	)
	dashboardSvc := usecase.NewDashboardService(leagueRepo, matchSvc, statsSvc, appLogger)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewHandler(dashboardSvc, matchSvc, statsSvc, predictionSvc, syncSvc, leagueRepo, logger)
	return NewRouter(handler, logger, nil, testInternalJobToken)
}

func doRequest(t *testing.T, router http.Handler, method, target, body string, headers map[string]string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var envelope map[string]any
	if rec.Body.Len() > 0 {
		if err := sonic.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
			t.Fatalf("unmarshal response body: %v (%s)", err, rec.Body.String())
		}
	}
	return rec, envelope
}

func dataObject(t *testing.T, envelope map[string]any) map[string]any {
	t.Helper()
	data, ok := envelope["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected data object, got %v", envelope)
	}
	return data
}

func errorObject(t *testing.T, envelope map[string]any) map[string]any {
	t.Helper()
	errObj, ok := envelope["error"].(map[string]any)
	if !ok {
		t.Fatalf("expected error object, got %v", envelope)
	}
	return errObj
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(t)

	rec, envelope := doRequest(t, router, http.MethodGet, "/healthz", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got=%d want=200", rec.Code)
	}
	if got, _ := envelope["apiVersion"].(string); got != "2.0" {
		t.Fatalf("apiVersion: got=%v", envelope["apiVersion"])
	}
	if got, _ := dataObject(t, envelope)["status"].(string); got != "ok" {
		t.Fatalf("health payload: got=%v", envelope)
	}
}

func TestGetMatch(t *testing.T) {
	router := newTestRouter(t)

	rec, envelope := doRequest(t, router, http.MethodGet, "/v1/matches/esp-m1", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got=%d want=200 (%v)", rec.Code, envelope)
	}
	data := dataObject(t, envelope)
	if data["id"] != "esp-m1" {
		t.Fatalf("match id: got=%v", data["id"])
	}
	home, _ := data["homeTeam"].(map[string]any)
	if home["name"] != "Real Madrid" {
		t.Fatalf("home team must hydrate: got=%v", data["homeTeam"])
	}
}

func TestGetMatch_NotFound(t *testing.T) {
	router := newTestRouter(t)

	rec, envelope := doRequest(t, router, http.MethodGet, "/v1/matches/missing", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status: got=%d want=404", rec.Code)
	}
	errObj := errorObject(t, envelope)
	if got, _ := errObj["status"].(string); got != "NOT_FOUND" {
		t.Fatalf("error status: got=%v", errObj["status"])
	}
	if got, _ := errObj["code"].(float64); got != 404 {
		t.Fatalf("error code: got=%v", errObj["code"])
	}
}

func TestListLeagueMatches_Windows(t *testing.T) {
	router := newTestRouter(t)

	rec, envelope := doRequest(t, router, http.MethodGet, "/v1/leagues/esp-laliga/matches?window=upcoming", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("upcoming status: got=%d (%v)", rec.Code, envelope)
	}
	items, ok := envelope["data"].([]any)
	if !ok || len(items) != 2 {
		t.Fatalf("upcoming items: got=%v", envelope["data"])
	}

	rec, envelope = doRequest(t, router, http.MethodGet, "/v1/leagues/esp-laliga/matches?window=bogus", "", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bogus window status: got=%d want=400", rec.Code)
	}
	if got, _ := errorObject(t, envelope)["status"].(string); got != "INVALID_ARGUMENT" {
		t.Fatalf("error status: got=%v", got)
	}
}

func TestGetMatchComparison(t *testing.T) {
	router := newTestRouter(t)

	rec, envelope := doRequest(t, router, http.MethodGet, "/v1/matches/esp-m5/comparison", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got=%d (%v)", rec.Code, envelope)
	}

	data := dataObject(t, envelope)
	probs, ok := data["probabilities"].(map[string]any)
	if !ok {
		t.Fatalf("probabilities missing: %v", data)
	}
	sum := probs["home"].(float64) + probs["draw"].(float64) + probs["away"].(float64)
	if sum < 99.9 || sum > 100.1 {
		t.Fatalf("probabilities must sum to 100: got=%v", probs)
	}
}

func TestCreateManualPrediction(t *testing.T) {
	router := newTestRouter(t)

	rec, envelope := doRequest(t, router, http.MethodPost, "/v1/matches/esp-m5/predictions",
		`{"home_goals": 2, "away_goals": 1}`,
		map[string]string{"X-User-ID": "user-9"},
	)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status: got=%d want=201 (%v)", rec.Code, envelope)
	}
	data := dataObject(t, envelope)
	if data["userId"] != "user-9" {
		t.Fatalf("user id from header: got=%v", data["userId"])
	}
	if data["homeGoals"].(float64) != 2 || data["awayGoals"].(float64) != 1 {
		t.Fatalf("scoreline: got=%v", data)
	}
	if data["correct"] != nil {
		t.Fatalf("fresh prediction must be unverified: got=%v", data["correct"])
	}
}

func TestCreateManualPrediction_DefaultsUser(t *testing.T) {
	router := newTestRouter(t)

	rec, envelope := doRequest(t, router, http.MethodPost, "/v1/matches/esp-m5/predictions",
		`{"home_goals": 1, "away_goals": 1}`, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status: got=%d want=201 (%v)", rec.Code, envelope)
	}
	if got := dataObject(t, envelope)["userId"]; got != "demo-user" {
		t.Fatalf("missing header must fall back to the demo user: got=%v", got)
	}
}

func TestCreateManualPrediction_Validation(t *testing.T) {
	router := newTestRouter(t)

	cases := []string{
		`{"home_goals": 99, "away_goals": 1}`,
		`{"home_goals": -1, "away_goals": 1}`,
		`not json`,
	}
	for _, body := range cases {
		rec, _ := doRequest(t, router, http.MethodPost, "/v1/matches/esp-m5/predictions", body, nil)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %q: got=%d want=400", body, rec.Code)
		}
	}
}

func TestUserPredictionRoutes(t *testing.T) {
	router := newTestRouter(t)
	headers := map[string]string{"X-User-ID": "user-9"}

	if rec, envelope := doRequest(t, router, http.MethodPost, "/v1/matches/esp-m1/predictions",
		`{"home_goals": 2, "away_goals": 0}`, headers); rec.Code != http.StatusCreated {
		t.Fatalf("create status: got=%d (%v)", rec.Code, envelope)
	}

	rec, envelope := doRequest(t, router, http.MethodGet, "/v1/users/me/predictions", "", headers)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status: got=%d (%v)", rec.Code, envelope)
	}
	items, ok := envelope["data"].([]any)
	if !ok || len(items) != 1 {
		t.Fatalf("list items: got=%v", envelope["data"])
	}

	rec, envelope = doRequest(t, router, http.MethodGet, "/v1/users/me/predictions/stats", "", headers)
	if rec.Code != http.StatusOK {
		t.Fatalf("stats status: got=%d (%v)", rec.Code, envelope)
	}
	stats := dataObject(t, envelope)
	if stats["total"].(float64) != 1 || stats["pending"].(float64) != 1 {
		t.Fatalf("stats payload: got=%v", stats)
	}
}

func TestInternalRoutes_TokenChecks(t *testing.T) {
	router := newTestRouter(t)

	rec, _ := doRequest(t, router, http.MethodPost, "/v1/internal/predictions/verify", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("missing token: got=%d want=401", rec.Code)
	}

	rec, _ = doRequest(t, router, http.MethodPost, "/v1/internal/predictions/verify", "",
		map[string]string{"X-Internal-Job-Token": "wrong"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("wrong token: got=%d want=401", rec.Code)
	}

	rec, envelope := doRequest(t, router, http.MethodPost, "/v1/internal/predictions/verify", "",
		map[string]string{"X-Internal-Job-Token": testInternalJobToken})
	if rec.Code != http.StatusOK {
		t.Fatalf("valid token: got=%d (%v)", rec.Code, envelope)
	}
	if got := dataObject(t, envelope)["verified"].(float64); got != 0 {
		t.Fatalf("verified count: got=%v", got)
	}
}

func TestInternalRoutes_Unconfigured(t *testing.T) {
	now := time.Now().UTC()
	leagueRepo := memory.NewLeagueRepository(memory.SeedLeagues())
	teamRepo := memory.NewTeamRepository(memory.SeedTeams())
	matchRepo := memory.NewMatchRepository(memory.SeedMatches(now))
	predictionRepo := memory.NewPredictionRepository(nil)
	userRepo := memory.NewUserRepository(memory.SeedUsers())

	appLogger := logging.NewNop()
	matchSvc := usecase.NewMatchService(matchRepo, teamRepo, leagueRepo, appLogger)
	statsSvc := usecase.NewStatsService(teamRepo, leagueRepo, matchRepo, nil, nil, appLogger)
	predictionSvc := usecase.NewPredictionService(
		matchRepo, teamRepo, leagueRepo, predictionRepo, userRepo,
		statsSvc, nil, id.NewRandomGenerator(), appLogger,
	)
	syncSvc := usecase.NewSyncService(nil, leagueRepo, teamRepo, matchRepo, id.NewRandomGenerator(), 0, appLogger)
	dashboardSvc := usecase.NewDashboardService(leagueRepo, matchSvc, statsSvc, appLogger)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewHandler(dashboardSvc, matchSvc, statsSvc, predictionSvc, syncSvc, leagueRepo, logger)
	router := NewRouter(handler, logger, nil, "")

	rec, _ := doRequest(t, router, http.MethodPost, "/v1/internal/predictions/verify", "",
		map[string]string{"X-Internal-Job-Token": "anything"})
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("unconfigured token: got=%d want=503", rec.Code)
	}
}

func TestHome(t *testing.T) {
	router := newTestRouter(t)

	rec, envelope := doRequest(t, router, http.MethodGet, "/v1/home", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got=%d (%v)", rec.Code, envelope)
	}
	data := dataObject(t, envelope)
	leagueObj, _ := data["league"].(map[string]any)
	if leagueObj["id"] != memory.LeagueIDLaLiga {
		t.Fatalf("default league: got=%v", data["league"])
	}
	if _, ok := data["standings"].([]any); !ok {
		t.Fatalf("standings missing: %v", data)
	}
}

func TestListLeagues(t *testing.T) {
	router := newTestRouter(t)

	rec, envelope := doRequest(t, router, http.MethodGet, "/v1/leagues", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got=%d (%v)", rec.Code, envelope)
	}
	items, ok := envelope["data"].([]any)
	if !ok || len(items) != 2 {
		t.Fatalf("league count: got=%v", envelope["data"])
	}
}
