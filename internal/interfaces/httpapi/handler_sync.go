package httpapi

import "net/http"

func (h *Handler) SyncRosters(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SyncRosters")
	defer span.End()

	summary, err := h.rosterSyncService.SyncRosters(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "roster sync failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]int{
		"teams":   summary.Teams,
		"players": summary.Players,
	})
}

func (h *Handler) SyncGames(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SyncGames")
	defer span.End()

	slateDate, err := h.slateDateParam(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	summary, err := h.rosterSyncService.SyncGames(ctx, slateDate)
	if err != nil {
		h.logger.ErrorContext(ctx, "game sync failed", "slate_date", slateDate, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{
		"pickDate": slateDate,
		"games":    summary.Games,
	})
}
