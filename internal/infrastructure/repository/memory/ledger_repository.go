package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/nbanima/pickslate/internal/domain/ledger"
)

type LedgerRepository struct {
	mu     sync.RWMutex
	items  []ledger.Entry
	nextID int64
}

func NewLedgerRepository() *LedgerRepository {
	return &LedgerRepository{nextID: 1}
}

func (r *LedgerRepository) ListByReason(_ context.Context, reason string) ([]ledger.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []ledger.Entry
	for _, item := range r.items {
		if item.Reason == reason {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *LedgerRepository) ListByUser(_ context.Context, userID string, limit int) ([]ledger.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []ledger.Entry
	for _, item := range r.items {
		if item.UserID == userID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *LedgerRepository) replaceByReason(reason string, entries []ledger.Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := make([]ledger.Entry, 0, len(r.items))
	for _, item := range r.items {
		if item.Reason != reason {
			kept = append(kept, item)
		}
	}
	for _, entry := range entries {
		entry.ID = r.nextID
		r.nextID++
		kept = append(kept, entry)
	}
	r.items = kept
}
