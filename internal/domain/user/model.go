package user

import "time"

const RoleAdmin = "admin"

// User owns the running points balance. The balance is eventually
// consistent with the sum of ledger deltas; settlement reconciles it.
type User struct {
	ID            string
	Email         string
	Role          string
	PointsBalance int
	UpdatedAt     time.Time
}

// Principal is the authenticated caller attached to a request context.
type Principal struct {
	UserID string
	Email  string
	Role   string
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}
