package remotesync

import (
	"context"
	"errors"
	"sync"

	"news_reconciler/internal/domain"
)

type fakeLabelStore struct {
	labels  []*domain.Label
	deleted []string
	loads   int
}

func (f *fakeLabelStore) LoadLabels(ctx context.Context) ([]*domain.Label, error) {
	f.loads++
	return f.labels, nil
}

func (f *fakeLabelStore) DeletedLabelNames(ctx context.Context) ([]string, error) {
	return f.deleted, nil
}

type fakeSyncItemStore struct {
	mu    sync.Mutex
	items map[string]*domain.SyncItem
}

func newFakeSyncItemStore(items ...*domain.SyncItem) *fakeSyncItemStore {
	s := &fakeSyncItemStore{items: make(map[string]*domain.SyncItem)}
	for _, item := range items {
		s.items[item.ID] = item
	}
	return s
}

func (f *fakeSyncItemStore) LoadUncommitted(ctx context.Context) (map[string]*domain.SyncItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]*domain.SyncItem, len(f.items))
	for id, item := range f.items {
		copied := *item
		out[id] = &copied
	}
	return out, nil
}

func (f *fakeSyncItemStore) SaveUncommitted(ctx context.Context, items []*domain.SyncItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, item := range items {
		copied := *item
		f.items[item.ID] = &copied
	}
	return nil
}

func (f *fakeSyncItemStore) DeleteUncommitted(ctx context.Context, ids []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, id := range ids {
		delete(f.items, id)
	}
	return nil
}

type fakeTransport struct {
	reject  map[string]bool
	fail    bool
	batches [][]string
}

func (f *fakeTransport) SendBatch(ctx context.Context, items []*domain.SyncItem) (domain.SyncStatus, error) {
	if f.fail {
		return domain.SyncStatus{}, errors.New("connection refused")
	}
	status := domain.SyncStatus{Errors: make(map[string]error)}
	var ids []string
	for _, item := range items {
		ids = append(ids, item.ID)
		if f.reject[item.ID] {
			status.Errors[item.ID] = errors.New("rejected")
			continue
		}
		status.Applied++
	}
	f.batches = append(f.batches, ids)
	return status, nil
}
