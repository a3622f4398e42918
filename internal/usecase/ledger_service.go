package usecase

import (
	"context"
	"fmt"

	"github.com/nbanima/pickslate/internal/domain/ledger"
	"github.com/nbanima/pickslate/internal/domain/user"
)

const defaultLedgerPageSize = 50

// LedgerSummary is one user's balance plus their most recent ledger rows.
type LedgerSummary struct {
	UserID  string
	Balance int
	Entries []ledger.Entry
}

// LedgerService reads the points ledger. All writes go through settlement.
type LedgerService struct {
	ledgerRepo ledger.Repository
	userRepo   user.Repository
}

func NewLedgerService(ledgerRepo ledger.Repository, userRepo user.Repository) *LedgerService {
	return &LedgerService{ledgerRepo: ledgerRepo, userRepo: userRepo}
}

// Summary returns the stored balance and recent entries for one user.
func (s *LedgerService) Summary(ctx context.Context, userID string, limit int) (LedgerSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LedgerService.Summary")
	defer span.End()

	if userID == "" {
		return LedgerSummary{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if limit <= 0 {
		limit = defaultLedgerPageSize
	}

	stored, found, err := s.userRepo.Get(ctx, userID)
	if err != nil {
		return LedgerSummary{}, fmt.Errorf("get user for ledger summary: %w", err)
	}
	if !found {
		return LedgerSummary{}, fmt.Errorf("%w: user %s", ErrNotFound, userID)
	}

	entries, err := s.ledgerRepo.ListByUser(ctx, userID, limit)
	if err != nil {
		return LedgerSummary{}, fmt.Errorf("list ledger entries: %w", err)
	}

	return LedgerSummary{
		UserID:  userID,
		Balance: stored.PointsBalance,
		Entries: entries,
	}, nil
}
