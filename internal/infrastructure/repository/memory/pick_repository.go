package memory

import (
	"context"
	"sync"

	"github.com/nbanima/pickslate/internal/domain/pick"
)

type PickRepository struct {
	mu         sync.RWMutex
	teams      map[string][]pick.Team
	players    map[string][]pick.Player
	highlights map[string][]pick.Highlight
}

func NewPickRepository() *PickRepository {
	return &PickRepository{
		teams:      make(map[string][]pick.Team),
		players:    make(map[string][]pick.Player),
		highlights: make(map[string][]pick.Highlight),
	}
}

func (r *PickRepository) ListTeamPicksBySlate(_ context.Context, slateDate string) ([]pick.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []pick.Team
	for key, items := range r.teams {
		if keySlate(key) != slateDate {
			continue
		}
		out = append(out, items...)
	}
	return out, nil
}

func (r *PickRepository) ListPlayerPicksBySlate(_ context.Context, slateDate string) ([]pick.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []pick.Player
	for key, items := range r.players {
		if keySlate(key) != slateDate {
			continue
		}
		out = append(out, items...)
	}
	return out, nil
}

func (r *PickRepository) ListHighlightPicksBySlate(_ context.Context, slateDate string) ([]pick.Highlight, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []pick.Highlight
	for key, items := range r.highlights {
		if keySlate(key) != slateDate {
			continue
		}
		out = append(out, items...)
	}
	return out, nil
}

func (r *PickRepository) GetBundleByUserAndSlate(_ context.Context, userID, slateDate string) (pick.Bundle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	key := pickKey(userID, slateDate)
	return pick.Bundle{
		Teams:      append([]pick.Team(nil), r.teams[key]...),
		Players:    append([]pick.Player(nil), r.players[key]...),
		Highlights: append([]pick.Highlight(nil), r.highlights[key]...),
	}, nil
}

func (r *PickRepository) ReplaceTeamPicks(_ context.Context, userID, slateDate string, picks []pick.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.teams[pickKey(userID, slateDate)] = append([]pick.Team(nil), picks...)
	return nil
}

func (r *PickRepository) ReplacePlayerPicks(_ context.Context, userID, slateDate string, picks []pick.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.players[pickKey(userID, slateDate)] = append([]pick.Player(nil), picks...)
	return nil
}

func (r *PickRepository) ReplaceHighlightPicks(_ context.Context, userID, slateDate string, picks []pick.Highlight) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.highlights[pickKey(userID, slateDate)] = append([]pick.Highlight(nil), picks...)
	return nil
}

func pickKey(userID, slateDate string) string {
	return userID + "::" + slateDate
}

func keySlate(key string) string {
	for i := 0; i+1 < len(key); i++ {
		if key[i] == ':' && key[i+1] == ':' {
			return key[i+2:]
		}
	}
	return ""
}
