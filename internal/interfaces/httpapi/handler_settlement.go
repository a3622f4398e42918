package httpapi

import (
	"net/http"
	"strconv"

	"github.com/nbanima/pickslate/internal/domain/settlement"
)

type userOutcomeDTO struct {
	Delta      int `json:"delta"`
	BasePoints int `json:"basePoints"`
	Multiplier int `json:"multiplier"`
	Hits       struct {
		Teams      int `json:"teams"`
		Players    int `json:"players"`
		Highlights int `json:"highlights"`
		Total      int `json:"total"`
	} `json:"hits"`
}

type settlementResultDTO struct {
	Date        string                    `json:"date"`
	Processed   int                       `json:"processed"`
	Settlements map[string]userOutcomeDTO `json:"settlements"`
}

func settlementResultToDTO(out settlement.Result) settlementResultDTO {
	dto := settlementResultDTO{
		Date:        out.Date,
		Processed:   out.Processed,
		Settlements: make(map[string]userOutcomeDTO, len(out.Settlements)),
	}
	for userID, outcome := range out.Settlements {
		item := userOutcomeDTO{
			Delta:      outcome.Delta,
			BasePoints: outcome.BasePoints,
			Multiplier: outcome.Multiplier,
		}
		item.Hits.Teams = outcome.Hits.Teams
		item.Hits.Players = outcome.Hits.Players
		item.Hits.Highlights = outcome.Hits.Highlights
		item.Hits.Total = outcome.Hits.Total
		dto.Settlements[userID] = item
	}
	return dto
}

func (h *Handler) SettleSlate(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SettleSlate")
	defer span.End()

	slateDate, err := h.slateDateParam(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	out, err := h.settlementService.Settle(ctx, slateDate)
	if err != nil {
		h.logger.ErrorContext(ctx, "settle slate failed", "slate_date", slateDate, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, settlementResultToDTO(out))
}

func (h *Handler) GetMyLedger(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMyLedger")
	defer span.End()

	userID, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, parseErr := strconv.Atoi(raw)
		if parseErr == nil && parsed > 0 {
			limit = parsed
		}
	}

	summary, err := h.ledgerService.Summary(ctx, userID, limit)
	if err != nil {
		h.logger.WarnContext(ctx, "ledger summary failed", "user_id", userID, "error", err)
		writeError(ctx, w, err)
		return
	}

	entries := make([]map[string]any, 0, len(summary.Entries))
	for _, item := range summary.Entries {
		entries = append(entries, map[string]any{
			"id":           item.ID,
			"delta":        item.Delta,
			"balanceAfter": item.BalanceAfter,
			"reason":       item.Reason,
			"createdAt":    item.CreatedAt,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{
		"userId":  summary.UserID,
		"balance": summary.Balance,
		"entries": entries,
	})
}
