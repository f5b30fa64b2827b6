package httpapi

import (
	"fmt"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/Nicolasff12/PrediccionFutbol/internal/usecase"
)

type leagueSyncRequest struct {
	Country    string   `json:"country"`
	LeagueRefs []string `json:"league_refs" validate:"required,min=1"`
	MaxWorkers int      `json:"max_workers" validate:"gte=0"`
}

func (h *Handler) RunLeagueSync(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunLeagueSync")
	defer span.End()

	var payload leagueSyncRequest
	decoder := jsoniter.NewDecoder(r.Body)
	if err := decoder.Decode(&payload); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid request body", usecase.ErrInvalidInput))
		return
	}
	if err := h.validator.Struct(payload); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: %s", usecase.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.syncService.SyncLeagues(ctx, usecase.MultiSyncInput{
		Country:    payload.Country,
		LeagueRefs: payload.LeagueRefs,
		MaxWorkers: payload.MaxWorkers,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "league sync failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) RunPredictionVerify(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunPredictionVerify")
	defer span.End()

	verified, err := h.predictionService.VerifyPending(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "prediction verification failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]int{"verified": verified})
}
