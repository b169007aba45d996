package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerPlayerRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/players", handler.CreatePlayer)
	mux.HandleFunc("GET /v1/players", handler.ListPlayers)
}

func registerSeriesRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/series", handler.CreateSeries)
	mux.HandleFunc("GET /v1/series", handler.ListSeries)
	mux.HandleFunc("GET /v1/series/overview", handler.GetSeriesOverview)
	mux.HandleFunc("GET /v1/series/{seriesID}", handler.GetSeries)
	mux.HandleFunc("GET /v1/series/{seriesID}/rankings", handler.GetSeriesRanking)
}

func registerTournamentRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/tournaments", handler.CreateTournament)
	mux.HandleFunc("GET /v1/tournaments", handler.ListTournaments)
	mux.HandleFunc("GET /v1/tournaments/{tournamentID}", handler.GetTournament)
	mux.HandleFunc("DELETE /v1/tournaments/{tournamentID}", handler.AbandonTournament)
	mux.HandleFunc("GET /v1/tournaments/{tournamentID}/standings", handler.GetGroupStandings)
	mux.HandleFunc("GET /v1/tournaments/{tournamentID}/bracket", handler.GetBracket)
	mux.HandleFunc("GET /v1/tournaments/{tournamentID}/summary", handler.GetSummary)
	mux.HandleFunc("GET /v1/tournaments/{tournamentID}/points", handler.GetTournamentPoints)
	mux.HandleFunc("PUT /v1/tournaments/{tournamentID}/matches/{matchID}/result", handler.RecordResult)
	mux.HandleFunc("POST /v1/tournaments/{tournamentID}/knockout", handler.StartKnockout)
	mux.HandleFunc("POST /v1/tournaments/{tournamentID}/finalize", handler.FinalizeTournament)
}

func registerRankingRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/rankings", handler.ListRankings)
	mux.HandleFunc("GET /v1/rankings/export", handler.ExportRankingsCSV)
	mux.HandleFunc("POST /v1/rankings/rebuild", handler.RebuildRankings)
	mux.HandleFunc("GET /v1/rankings/{playerID}", handler.GetPlayerRanking)
}
