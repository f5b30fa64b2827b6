package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/Nicolasff12/PrediccionFutbol/internal/domain/league"
	"github.com/Nicolasff12/PrediccionFutbol/internal/usecase"
)

type Handler struct {
	dashboardService  *usecase.DashboardService
	matchService      *usecase.MatchService
	statsService      *usecase.StatsService
	predictionService *usecase.PredictionService
	syncService       *usecase.SyncService
	leagueLister      LeagueLister
	logger            *slog.Logger
	validator         *validator.Validate
}

// LeagueLister is the small read surface the league index route needs.
// league.Repository satisfies it.
type LeagueLister interface {
	List(ctx context.Context) ([]league.League, error)
}

func NewHandler(
	dashboardService *usecase.DashboardService,
	matchService *usecase.MatchService,
	statsService *usecase.StatsService,
	predictionService *usecase.PredictionService,
	syncService *usecase.SyncService,
	leagueLister LeagueLister,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		dashboardService:  dashboardService,
		matchService:      matchService,
		statsService:      statsService,
		predictionService: predictionService,
		syncService:       syncService,
		leagueLister:      leagueLister,
		logger:            logger,
		validator:         validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Home")
	defer span.End()

	leagueID := strings.TrimSpace(r.URL.Query().Get("league_id"))
	view, err := h.dashboardService.Home(ctx, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "home view failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, homeViewToDTO(ctx, view))
}

func (h *Handler) ListLeagues(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLeagues")
	defer span.End()

	leagues, err := h.leagueLister.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list leagues failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]leagueDTO, 0, len(leagues))
	for _, l := range leagues {
		items = append(items, leagueToDTO(ctx, l))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}
