package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/Nicolasff12/PrediccionFutbol/internal/usecase"
)

func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatch")
	defer span.End()

	matchID := strings.TrimSpace(r.PathValue("matchID"))
	detail, err := h.matchService.GetDetail(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "get match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchDetailToDTO(ctx, detail))
}

func (h *Handler) ListLeagueMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLeagueMatches")
	defer span.End()

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	window := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("window")))

	var (
		items []usecase.MatchDetail
		err   error
	)
	switch window {
	case "", "upcoming":
		items, err = h.matchService.ListUpcoming(ctx, leagueID, usecase.DefaultMatchListLimit)
	case "recent":
		items, err = h.matchService.ListRecent(ctx, leagueID, usecase.DefaultMatchListLimit)
	case "today":
		items, err = h.matchService.ListToday(ctx, leagueID)
	default:
		writeError(ctx, w, fmt.Errorf("%w: window must be upcoming, recent or today", usecase.ErrInvalidInput))
		return
	}
	if err != nil {
		h.logger.WarnContext(ctx, "list league matches failed", "league_id", leagueID, "window", window, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchDetailsToDTO(ctx, items))
}

func (h *Handler) GetMatchComparison(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatchComparison")
	defer span.End()

	matchID := strings.TrimSpace(r.PathValue("matchID"))
	matchCtx, err := h.predictionService.BuildMatchContext(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "build match comparison failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	probabilities := usecase.OutcomeProbabilities(matchCtx.HomeStats, matchCtx.AwayStats, matchCtx.HomeForm, matchCtx.AwayForm)

	headToHead := make([]matchDTO, 0, len(matchCtx.HeadToHead))
	for _, item := range matchCtx.HeadToHead {
		detail := usecase.MatchDetail{Match: item, League: matchCtx.League}
		if item.HomeTeamID == matchCtx.HomeTeam.ID {
			detail.HomeTeam, detail.AwayTeam = matchCtx.HomeTeam, matchCtx.AwayTeam
		} else {
			detail.HomeTeam, detail.AwayTeam = matchCtx.AwayTeam, matchCtx.HomeTeam
		}
		headToHead = append(headToHead, matchDetailToDTO(ctx, detail))
	}

	writeSuccess(ctx, w, http.StatusOK, comparisonDTO{
		Match: matchDetailToDTO(ctx, usecase.MatchDetail{
			Match:    matchCtx.Match,
			HomeTeam: matchCtx.HomeTeam,
			AwayTeam: matchCtx.AwayTeam,
			League:   matchCtx.League,
		}),
		HomeStats:  teamStatsToDTO(matchCtx.HomeStats),
		AwayStats:  teamStatsToDTO(matchCtx.AwayStats),
		HomeForm:   matchCtx.HomeForm,
		AwayForm:   matchCtx.AwayForm,
		HeadToHead: headToHead,
		Standings:  standingsToDTO(matchCtx.Standings),
		Probabilities: probabilitiesDTO{
			Home: probabilities.Home,
			Draw: probabilities.Draw,
			Away: probabilities.Away,
		},
	})
}

func (h *Handler) ListLeagueStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLeagueStandings")
	defer span.End()

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	standings, err := h.statsService.Standings(ctx, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "list standings failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, standingsToDTO(standings))
}

func (h *Handler) ListLeagueTopScorers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLeagueTopScorers")
	defer span.End()

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	scorers, err := h.statsService.TopScorers(ctx, leagueID, 10)
	if err != nil {
		h.logger.WarnContext(ctx, "list top scorers failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]topScorerDTO, 0, len(scorers))
	for _, s := range scorers {
		items = append(items, topScorerDTO{
			PlayerName: s.PlayerName,
			TeamName:   s.TeamName,
			Goals:      s.Goals,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}
