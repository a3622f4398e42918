package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/lock-window", handler.GetLockWindow)
	mux.HandleFunc("GET /v1/winners", handler.GetWinners)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/picks", RequireAuth(verifier, http.HandlerFunc(handler.GetMyPicks)))
	mux.Handle("PUT /v1/picks", RequireAuth(verifier, http.HandlerFunc(handler.SaveMyPicks)))
	mux.Handle("GET /v1/ledger", RequireAuth(verifier, http.HandlerFunc(handler.GetMyLedger)))
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/admin/settle", RequireAuth(verifier, RequireAdmin(http.HandlerFunc(handler.SettleSlate))))
	mux.Handle("PUT /v1/admin/results/team", RequireAuth(verifier, RequireAdmin(http.HandlerFunc(handler.SaveTeamResult))))
	mux.Handle("PUT /v1/admin/results/players", RequireAuth(verifier, RequireAdmin(http.HandlerFunc(handler.SavePlayerResults))))
	mux.Handle("PUT /v1/admin/results/highlights", RequireAuth(verifier, RequireAdmin(http.HandlerFunc(handler.SaveHighlightResults))))
	mux.Handle("POST /v1/admin/sync/rosters", RequireAuth(verifier, RequireAdmin(http.HandlerFunc(handler.SyncRosters))))
	mux.Handle("POST /v1/admin/sync/games", RequireAuth(verifier, RequireAdmin(http.HandlerFunc(handler.SyncGames))))
}
