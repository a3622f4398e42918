package player

import (
	"strings"
	"time"

	"github.com/nbanima/pickslate/internal/domain/identity"
)

// Player is one NBA player row from a provider roster sync.
type Player struct {
	ID               string
	Provider         string
	ProviderPlayerID string
	FirstName        string
	LastName         string
	TeamID           string
	UpdatedAt        time.Time
}

// DisplayName joins the name parts the way providers print them.
func (p Player) DisplayName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// Reference builds the identity reference used for pick/result matching.
func (p Player) Reference() identity.PlayerReference {
	return identity.PlayerReference{
		RawID:       p.ID,
		ProviderID:  p.ProviderPlayerID,
		DisplayName: p.DisplayName(),
	}
}
