package httpapi

import (
	"net/http"

	"github.com/nbanima/pickslate/internal/usecase"
)

type teamResultRequest struct {
	PickDate     string `json:"pickDate" validate:"required"`
	GameID       string `json:"gameId" validate:"required"`
	WinnerTeamID string `json:"winnerTeamId" validate:"required"`
}

type playerResultsRequest struct {
	PickDate string         `json:"pickDate" validate:"required"`
	GameID   string         `json:"gameId" validate:"required"`
	Category string         `json:"category" validate:"required"`
	Players  []playerRefDTO `json:"players" validate:"min=1"`
}

type highlightResultsRequest struct {
	PickDate   string             `json:"pickDate" validate:"required"`
	Highlights []highlightPickDTO `json:"highlights" validate:"min=1,dive"`
}

func (h *Handler) SaveTeamResult(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SaveTeamResult")
	defer span.End()

	var req teamResultRequest
	if err := h.decodeAndValidate(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	out, err := h.resultsService.SaveTeamResult(ctx, req.PickDate, usecase.TeamResultInput{
		GameID:       req.GameID,
		WinnerTeamID: req.WinnerTeamID,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "save team result failed", "slate_date", req.PickDate, "game_id", req.GameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, settlementResultToDTO(out))
}

func (h *Handler) SavePlayerResults(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SavePlayerResults")
	defer span.End()

	var req playerResultsRequest
	if err := h.decodeAndValidate(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	input := usecase.PlayerResultsInput{
		GameID:   req.GameID,
		Category: req.Category,
	}
	for _, item := range req.Players {
		input.Players = append(input.Players, item.toInput())
	}

	out, err := h.resultsService.SavePlayerResults(ctx, req.PickDate, input)
	if err != nil {
		h.logger.WarnContext(ctx, "save player results failed", "slate_date", req.PickDate, "game_id", req.GameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, settlementResultToDTO(out))
}

func (h *Handler) SaveHighlightResults(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SaveHighlightResults")
	defer span.End()

	var req highlightResultsRequest
	if err := h.decodeAndValidate(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	inputs := make([]usecase.HighlightResultInput, 0, len(req.Highlights))
	for _, item := range req.Highlights {
		inputs = append(inputs, usecase.HighlightResultInput{
			Player: item.Player.toInput(),
			Rank:   item.Rank,
		})
	}

	out, err := h.resultsService.SaveHighlightResults(ctx, req.PickDate, inputs)
	if err != nil {
		h.logger.WarnContext(ctx, "save highlight results failed", "slate_date", req.PickDate, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, settlementResultToDTO(out))
}

func (h *Handler) GetWinners(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetWinners")
	defer span.End()

	slateDate, err := h.slateDateParam(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	winners, err := h.resultsService.GetWinners(ctx, slateDate)
	if err != nil {
		h.logger.WarnContext(ctx, "get winners failed", "slate_date", slateDate, "error", err)
		writeError(ctx, w, err)
		return
	}

	teams := make([]map[string]any, 0, len(winners.Teams))
	for _, item := range winners.Teams {
		teams = append(teams, map[string]any{
			"gameId":       item.GameID,
			"winnerTeamId": item.WinnerTeamID,
		})
	}
	players := make([]map[string]any, 0, len(winners.Players))
	for _, item := range winners.Players {
		players = append(players, map[string]any{
			"gameId":   item.GameID,
			"category": string(item.Category),
			"player": playerRefDTO{
				PlayerID:    item.Player.RawID,
				ProviderID:  item.Player.ProviderID,
				DisplayName: item.Player.DisplayName,
			},
		})
	}
	highlights := make([]map[string]any, 0, len(winners.Highlights))
	for _, item := range winners.Highlights {
		highlights = append(highlights, map[string]any{
			"rank": item.Rank,
			"player": playerRefDTO{
				PlayerID:    item.Player.RawID,
				ProviderID:  item.Player.ProviderID,
				DisplayName: item.Player.DisplayName,
			},
		})
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{
		"pickDate":   winners.SlateDate,
		"teams":      teams,
		"players":    players,
		"highlights": highlights,
	})
}
