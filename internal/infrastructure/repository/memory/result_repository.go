package memory

import (
	"context"
	"sync"

	"github.com/nbanima/pickslate/internal/domain/result"
)

type ResultRepository struct {
	mu         sync.RWMutex
	teams      map[string]result.Team
	players    map[string][]result.Player
	highlights map[string][]result.Highlight
}

func NewResultRepository() *ResultRepository {
	return &ResultRepository{
		teams:      make(map[string]result.Team),
		players:    make(map[string][]result.Player),
		highlights: make(map[string][]result.Highlight),
	}
}

func (r *ResultRepository) ListTeamResultsByGames(_ context.Context, gameIDs []string) ([]result.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]result.Team, 0, len(gameIDs))
	for _, id := range gameIDs {
		if item, ok := r.teams[id]; ok {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *ResultRepository) ListPlayerResultsByGames(_ context.Context, gameIDs []string) ([]result.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []result.Player
	for _, id := range gameIDs {
		out = append(out, r.players[id]...)
	}
	return out, nil
}

func (r *ResultRepository) ListHighlightResultsBySlate(_ context.Context, slateDate string) ([]result.Highlight, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]result.Highlight(nil), r.highlights[slateDate]...), nil
}

func (r *ResultRepository) UpsertTeamResult(_ context.Context, item result.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.teams[item.GameID] = item
	return nil
}

func (r *ResultRepository) ReplacePlayerResults(_ context.Context, gameID string, category string, items []result.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := make([]result.Player, 0, len(r.players[gameID]))
	for _, existing := range r.players[gameID] {
		if string(existing.Category) != category {
			kept = append(kept, existing)
		}
	}
	r.players[gameID] = append(kept, items...)
	return nil
}

func (r *ResultRepository) ReplaceHighlightResults(_ context.Context, slateDate string, items []result.Highlight) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.highlights[slateDate] = append([]result.Highlight(nil), items...)
	return nil
}
