package settlement

import "github.com/nbanima/pickslate/internal/domain/scoring"

// UserOutcome is one user's evaluated settlement for a slate. Every
// affected user appears in the result, including those whose delta is zero
// and therefore left no ledger row.
type UserOutcome struct {
	Delta      int
	BasePoints int
	Multiplier int
	Hits       scoring.Hits
}

// Result summarizes one settlement run. Processed counts ledger rows
// written, not users evaluated.
type Result struct {
	Date        string
	Processed   int
	Settlements map[string]UserOutcome
}

// BalanceUpdate sets a user's balance to an absolute value computed by the
// reconciler.
type BalanceUpdate struct {
	UserID     string
	NewBalance int
}
