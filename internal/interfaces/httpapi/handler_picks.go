package httpapi

import (
	"net/http"
	"time"

	"github.com/nbanima/pickslate/internal/domain/pick"
	"github.com/nbanima/pickslate/internal/usecase"
)

type playerRefDTO struct {
	PlayerID    string `json:"playerId,omitempty"`
	ProviderID  string `json:"providerId,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
}

func (dto playerRefDTO) toInput() usecase.PlayerRefInput {
	return usecase.PlayerRefInput{
		PlayerID:    dto.PlayerID,
		ProviderID:  dto.ProviderID,
		DisplayName: dto.DisplayName,
	}
}

type teamPickDTO struct {
	GameID string `json:"gameId" validate:"required"`
	TeamID string `json:"teamId" validate:"required"`
}

type playerPickDTO struct {
	GameID   string       `json:"gameId" validate:"required"`
	Category string       `json:"category" validate:"required"`
	Player   playerRefDTO `json:"player"`
}

type highlightPickDTO struct {
	Player playerRefDTO `json:"player"`
	Rank   int          `json:"rank" validate:"required,min=1,max=10"`
}

type savePicksRequest struct {
	PickDate   string             `json:"pickDate" validate:"required"`
	Teams      []teamPickDTO      `json:"teams" validate:"dive"`
	Players    []playerPickDTO    `json:"players" validate:"dive"`
	Highlights []highlightPickDTO `json:"highlights" validate:"dive"`
}

type pickBundleDTO struct {
	SlateDate  string             `json:"pickDate"`
	Teams      []teamPickDTO      `json:"teams"`
	Players    []playerPickDTO    `json:"players"`
	Highlights []highlightPickDTO `json:"highlights"`
	UpdatedAt  *time.Time         `json:"updatedAt,omitempty"`
}

func bundleToDTO(slateDate string, bundle pick.Bundle) pickBundleDTO {
	out := pickBundleDTO{
		SlateDate:  slateDate,
		Teams:      make([]teamPickDTO, 0, len(bundle.Teams)),
		Players:    make([]playerPickDTO, 0, len(bundle.Players)),
		Highlights: make([]highlightPickDTO, 0, len(bundle.Highlights)),
	}

	var latest time.Time
	for _, item := range bundle.Teams {
		out.Teams = append(out.Teams, teamPickDTO{GameID: item.GameID, TeamID: item.SelectedTeamID})
		if item.UpdatedAt.After(latest) {
			latest = item.UpdatedAt
		}
	}
	for _, item := range bundle.Players {
		out.Players = append(out.Players, playerPickDTO{
			GameID:   item.GameID,
			Category: string(item.Category),
			Player: playerRefDTO{
				PlayerID:    item.Player.RawID,
				ProviderID:  item.Player.ProviderID,
				DisplayName: item.Player.DisplayName,
			},
		})
		if item.UpdatedAt.After(latest) {
			latest = item.UpdatedAt
		}
	}
	for _, item := range bundle.Highlights {
		out.Highlights = append(out.Highlights, highlightPickDTO{
			Player: playerRefDTO{
				PlayerID:    item.Player.RawID,
				ProviderID:  item.Player.ProviderID,
				DisplayName: item.Player.DisplayName,
			},
			Rank: item.Rank,
		})
		if item.UpdatedAt.After(latest) {
			latest = item.UpdatedAt
		}
	}
	if !latest.IsZero() {
		out.UpdatedAt = &latest
	}
	return out
}

func (h *Handler) GetMyPicks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMyPicks")
	defer span.End()

	userID, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	slateDate, err := h.slateDateParam(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	bundle, err := h.picksService.GetPicks(ctx, userID, slateDate)
	if err != nil {
		h.logger.WarnContext(ctx, "get picks failed", "user_id", userID, "slate_date", slateDate, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, bundleToDTO(slateDate, bundle))
}

func (h *Handler) SaveMyPicks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SaveMyPicks")
	defer span.End()

	userID, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req savePicksRequest
	if err := h.decodeAndValidate(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	input := usecase.SavePicksInput{
		UserID:    userID,
		SlateDate: req.PickDate,
	}
	for _, item := range req.Teams {
		input.Teams = append(input.Teams, usecase.TeamPickInput{GameID: item.GameID, TeamID: item.TeamID})
	}
	for _, item := range req.Players {
		input.Players = append(input.Players, usecase.PlayerPickInput{
			GameID:   item.GameID,
			Category: item.Category,
			Player:   item.Player.toInput(),
		})
	}
	for _, item := range req.Highlights {
		input.Highlights = append(input.Highlights, usecase.HighlightPickInput{
			Player: item.Player.toInput(),
			Rank:   item.Rank,
		})
	}

	principal, _ := principalFromContext(ctx)
	bundle, err := h.picksService.SavePicks(ctx, input, principal.IsAdmin())
	if err != nil {
		h.logger.WarnContext(ctx, "save picks failed", "user_id", userID, "slate_date", req.PickDate, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, bundleToDTO(req.PickDate, bundle))
}

func (h *Handler) GetLockWindow(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLockWindow")
	defer span.End()

	slateDate, err := h.slateDateParam(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	status, err := h.lockWindowService.Status(ctx, slateDate)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{
		"pickDate": status.SlateDate,
		"state":    string(status.State),
		"locksAt":  status.LocksAt,
	})
}
