package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/nbanima/pickslate/internal/domain/slate"
	"github.com/nbanima/pickslate/internal/platform/logging"
	"github.com/nbanima/pickslate/internal/usecase"
)

type Handler struct {
	picksService      *usecase.PicksService
	resultsService    *usecase.ResultsService
	settlementService *usecase.SettlementService
	lockWindowService *usecase.LockWindowService
	ledgerService     *usecase.LedgerService
	rosterSyncService *usecase.RosterSyncService
	logger            *logging.Logger
	validator         *validator.Validate
	now               func() time.Time
}

func NewHandler(
	picksService *usecase.PicksService,
	resultsService *usecase.ResultsService,
	settlementService *usecase.SettlementService,
	lockWindowService *usecase.LockWindowService,
	ledgerService *usecase.LedgerService,
	rosterSyncService *usecase.RosterSyncService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		picksService:      picksService,
		resultsService:    resultsService,
		settlementService: settlementService,
		lockWindowService: lockWindowService,
		ledgerService:     ledgerService,
		rosterSyncService: rosterSyncService,
		logger:            logger,
		validator:         validator.New(),
		now:               time.Now,
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

// decodeAndValidate parses the request body into target and runs the
// struct validator over it.
func (h *Handler) decodeAndValidate(ctx context.Context, r *http.Request, target any) error {
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(target); err != nil {
		return fmt.Errorf("%w: malformed request body: %v", usecase.ErrInvalidInput, err)
	}
	if err := h.validator.StructCtx(ctx, target); err != nil {
		return fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

// slateDateParam reads ?date=YYYY-MM-DD, defaulting to today's Eastern
// slate when absent.
func (h *Handler) slateDateParam(r *http.Request) (string, error) {
	value := r.URL.Query().Get("date")
	if value == "" {
		today, err := slate.ToSlateID(h.now())
		if err != nil {
			return "", fmt.Errorf("%w: resolve current slate date: %v", usecase.ErrInvalidInput, err)
		}
		return today, nil
	}
	if err := slate.Validate(value); err != nil {
		return "", fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}
	return value, nil
}

func requirePrincipal(ctx context.Context) (string, error) {
	principal, ok := principalFromContext(ctx)
	if !ok || principal.UserID == "" {
		return "", fmt.Errorf("%w: missing principal", usecase.ErrUnauthorized)
	}
	return principal.UserID, nil
}
