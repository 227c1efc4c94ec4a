package remotesync

import (
	"context"
	"fmt"
	"sync"

	"news_reconciler/internal/domain"
)

// LabelCache maps label names to labels. It is owned by one Reconciler and
// dropped whenever a committed reload reports new labels.
type LabelCache struct {
	store  LabelStore
	mu     sync.RWMutex
	labels map[string]*domain.Label
}

func NewLabelCache(store LabelStore) *LabelCache {
	return &LabelCache{store: store}
}

// Snapshot returns a copy of the name to label map, loading it on first use.
func (c *LabelCache) Snapshot(ctx context.Context) (map[string]*domain.Label, error) {
	c.mu.RLock()
	labels := c.labels
	c.mu.RUnlock()

	if labels == nil {
		loaded, err := c.store.LoadLabels(ctx)
		if err != nil {
			return nil, fmt.Errorf("load labels: %w", err)
		}
		labels = make(map[string]*domain.Label, len(loaded))
		for _, l := range loaded {
			labels[l.Name] = l
		}
		c.mu.Lock()
		c.labels = labels
		c.mu.Unlock()
	}

	out := make(map[string]*domain.Label, len(labels))
	for k, v := range labels {
		out[k] = v
	}
	return out, nil
}

func (c *LabelCache) Invalidate() {
	c.mu.Lock()
	c.labels = nil
	c.mu.Unlock()
}

// OnEvents drops the cache when labels were added.
func (c *LabelCache) OnEvents(events []domain.Event) {
	for _, e := range events {
		if e.Type == domain.EventLabelAdded {
			c.Invalidate()
			return
		}
	}
}

// Lookup returns the label named name, or domain.ErrNotFound.
func (c *LabelCache) Lookup(ctx context.Context, name string) (*domain.Label, error) {
	labels, err := c.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	l, ok := labels[name]
	if !ok {
		return nil, fmt.Errorf("label %q: %w", name, domain.ErrNotFound)
	}
	return l, nil
}
