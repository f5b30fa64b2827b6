package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicDomainRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/home", handler.Home)
	mux.HandleFunc("GET /v1/leagues", handler.ListLeagues)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/standings", handler.ListLeagueStandings)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/matches", handler.ListLeagueMatches)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/topscorers", handler.ListLeagueTopScorers)
	mux.HandleFunc("GET /v1/matches/{matchID}", handler.GetMatch)
	mux.HandleFunc("GET /v1/matches/{matchID}/comparison", handler.GetMatchComparison)
}

func registerUserRoutes(mux *http.ServeMux, handler *Handler) {
	mux.Handle("POST /v1/matches/{matchID}/predictions/ai", ResolveUser(http.HandlerFunc(handler.CreateAIPrediction)))
	mux.Handle("POST /v1/matches/{matchID}/predictions", ResolveUser(http.HandlerFunc(handler.CreateManualPrediction)))
	mux.Handle("GET /v1/users/me/predictions", ResolveUser(http.HandlerFunc(handler.ListMyPredictions)))
	mux.Handle("GET /v1/users/me/predictions/stats", ResolveUser(http.HandlerFunc(handler.GetMyPredictionStats)))
}

func registerInternalRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/sync/leagues", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunLeagueSync)))
	mux.Handle("POST /v1/internal/predictions/verify", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunPredictionVerify)))
}
