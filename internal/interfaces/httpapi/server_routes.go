package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerDomainRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/clubs", handler.ListClubs)
	mux.HandleFunc("GET /v1/players", handler.ListPlayers)
	mux.HandleFunc("GET /v1/players/{playerID}/analysis", handler.GetPlayerAnalysis)
	mux.HandleFunc("GET /v1/watchlist", handler.ListWatchlist)
	mux.HandleFunc("POST /v1/watchlist", handler.SaveWatchlistEntry)
	mux.HandleFunc("DELETE /v1/watchlist/{entryID}", handler.RemoveWatchlistEntry)
}
