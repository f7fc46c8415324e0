// Package history lazily loads and caches the user's past interactions.
package history

import (
	"context"
	"sync"

	"github.com/doeshing/modelscout/internal/domain"
	"github.com/doeshing/modelscout/internal/ports"
)

// Cache holds the fetched history list and its visibility.
type Cache struct {
	client ports.HistoryClient
	logger ports.Logger

	mu         sync.Mutex
	entries    []domain.HistoryEntry
	visible    bool
	generation uint64
}

// NewCache builds an empty, hidden cache.
func NewCache(client ports.HistoryClient, logger ports.Logger) *Cache {
	return &Cache{client: client, logger: logger}
}

// Toggle flips visibility when entries are loaded. Otherwise it fetches; on
// success the entries are stored and shown, on failure nothing changes.
func (c *Cache) Toggle(ctx context.Context, session domain.Session) domain.HistoryView {
	c.mu.Lock()
	if len(c.entries) > 0 {
		c.visible = !c.visible
		view := c.viewLocked()
		c.mu.Unlock()
		return view
	}
	gen := c.generation
	c.mu.Unlock()

	entries, err := c.client.History(ctx, session)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.logger.Warn("history fetch failed", map[string]interface{}{
			"user_id": session.UserID,
			"error":   err.Error(),
		})
		return c.viewLocked()
	}
	if gen != c.generation {
		c.logger.Debug("history response discarded", map[string]interface{}{"reason": domain.ErrStale.Error()})
		return c.viewLocked()
	}
	c.entries = entries
	c.visible = true
	return c.viewLocked()
}

// Invalidate drops the stored list so the next Toggle refetches. Visibility is kept.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = nil
	c.generation++
}

// View returns a copy of the current state.
func (c *Cache) View() domain.HistoryView {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewLocked()
}

func (c *Cache) viewLocked() domain.HistoryView {
	return domain.HistoryView{
		Visible: c.visible,
		Entries: append([]domain.HistoryEntry(nil), c.entries...),
	}
}

var _ ports.HistoryInvalidator = (*Cache)(nil)
