package ledger

import "time"

// Entry is one balance-affecting event. The ledger is append-only except
// for settlement reruns, which replace every row sharing a reason in one
// shot; the reason string is the idempotency key.
type Entry struct {
	ID           int64
	UserID       string
	Delta        int
	BalanceAfter int
	Reason       string
	CreatedAt    time.Time
}

// SettlementReason is the reason key under which a slate's settlement
// entries are filed and later found for replacement.
func SettlementReason(slateDate string) string {
	return "settlement:" + slateDate
}
