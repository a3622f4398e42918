package memory

import (
	"context"

	"github.com/nbanima/pickslate/internal/domain/ledger"
	"github.com/nbanima/pickslate/internal/domain/settlement"
)

// SettlementRepository mirrors the transactional replace against the
// in-memory user and ledger stores. It is not atomic across the two maps,
// which is fine for tests.
type SettlementRepository struct {
	users  *UserRepository
	ledger *LedgerRepository
}

func NewSettlementRepository(users *UserRepository, ledgerRepo *LedgerRepository) *SettlementRepository {
	return &SettlementRepository{users: users, ledger: ledgerRepo}
}

func (r *SettlementRepository) ReplaceSlateSettlement(_ context.Context, reason string, balances []settlement.BalanceUpdate, entries []ledger.Entry) error {
	for _, update := range balances {
		r.users.setBalance(update.UserID, update.NewBalance)
	}
	r.ledger.replaceByReason(reason, entries)
	return nil
}
