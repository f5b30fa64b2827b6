package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/Nicolasff12/PrediccionFutbol/internal/usecase"
)

type manualPredictionRequest struct {
	HomeGoals int `json:"home_goals" validate:"gte=0,lte=10"`
	AwayGoals int `json:"away_goals" validate:"gte=0,lte=10"`
}

func (h *Handler) CreateAIPrediction(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateAIPrediction")
	defer span.End()

	userID, ok := userIDFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: missing user identity", usecase.ErrUnauthorized))
		return
	}

	matchID := strings.TrimSpace(r.PathValue("matchID"))
	item, err := h.predictionService.CreateAIPrediction(ctx, userID, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "create ai prediction failed", "match_id", matchID, "user_id", userID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, predictionToDTO(item))
}

func (h *Handler) CreateManualPrediction(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateManualPrediction")
	defer span.End()

	userID, ok := userIDFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: missing user identity", usecase.ErrUnauthorized))
		return
	}

	var payload manualPredictionRequest
	decoder := jsoniter.NewDecoder(r.Body)
	if err := decoder.Decode(&payload); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid request body", usecase.ErrInvalidInput))
		return
	}
	if err := h.validator.Struct(payload); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: %s", usecase.ErrInvalidInput, err.Error()))
		return
	}

	matchID := strings.TrimSpace(r.PathValue("matchID"))
	item, err := h.predictionService.CreateManualPrediction(ctx, userID, matchID, payload.HomeGoals, payload.AwayGoals)
	if err != nil {
		h.logger.WarnContext(ctx, "create manual prediction failed", "match_id", matchID, "user_id", userID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, predictionToDTO(item))
}

func (h *Handler) ListMyPredictions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMyPredictions")
	defer span.End()

	userID, ok := userIDFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: missing user identity", usecase.ErrUnauthorized))
		return
	}

	limit := 0
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			writeError(ctx, w, fmt.Errorf("%w: limit must be positive integer", usecase.ErrInvalidInput))
			return
		}
		limit = v
	}

	items, err := h.predictionService.ListByUser(ctx, userID, limit)
	if err != nil {
		h.logger.WarnContext(ctx, "list predictions failed", "user_id", userID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]predictionDTO, 0, len(items))
	for _, item := range items {
		out = append(out, predictionToDTO(item))
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetMyPredictionStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMyPredictionStats")
	defer span.End()

	userID, ok := userIDFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: missing user identity", usecase.ErrUnauthorized))
		return
	}

	stats, err := h.predictionService.StatsByUser(ctx, userID)
	if err != nil {
		h.logger.WarnContext(ctx, "prediction stats failed", "user_id", userID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, predictionStatsDTO{
		Total:     stats.Total,
		Correct:   stats.Correct,
		Incorrect: stats.Incorrect,
		Pending:   stats.Pending,
		Accuracy:  stats.Accuracy,
	})
}
