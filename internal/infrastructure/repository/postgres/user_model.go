package postgres

import (
	"time"

	"github.com/nbanima/pickslate/internal/domain/user"
)

type userTableModel struct {
	ID            string    `db:"id"`
	Email         string    `db:"email"`
	Role          string    `db:"role"`
	PointsBalance int       `db:"points_balance"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

func userFromRow(row userTableModel) user.User {
	return user.User{
		ID:            row.ID,
		Email:         row.Email,
		Role:          row.Role,
		PointsBalance: row.PointsBalance,
		UpdatedAt:     row.UpdatedAt.UTC(),
	}
}
