package remotesync

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"news_reconciler/internal/domain"
)

// SyncItemStore persists deltas sent to, but not yet confirmed by, the sync service.
type SyncItemStore interface {
	LoadUncommitted(ctx context.Context) (map[string]*domain.SyncItem, error)
	SaveUncommitted(ctx context.Context, items []*domain.SyncItem) error
	DeleteUncommitted(ctx context.Context, ids []string) error
}

// Transport sends a batch of deltas. Status.Applied counts the items of this
// batch the service accepted; failures are reported per item in Status.Errors.
type Transport interface {
	SendBatch(ctx context.Context, items []*domain.SyncItem) (domain.SyncStatus, error)
}

// Outbox queues local deltas and flushes them to the sync service.
type Outbox struct {
	store     SyncItemStore
	transport Transport
	batchSize int
	logger    *slog.Logger

	mu sync.Mutex
}

func NewOutbox(store SyncItemStore, transport Transport, batchSize int, logger *slog.Logger) *Outbox {
	if batchSize < 1 {
		batchSize = 50
	}
	return &Outbox{
		store:     store,
		transport: transport,
		batchSize: batchSize,
		logger:    logger,
	}
}

// Queue merges items into the uncommitted set. Later deltas for the same news
// override earlier ones field by field.
func (o *Outbox) Queue(ctx context.Context, items ...*domain.SyncItem) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	pending, err := o.store.LoadUncommitted(ctx)
	if err != nil {
		return fmt.Errorf("load uncommitted: %w", err)
	}

	var changed []*domain.SyncItem
	for _, item := range items {
		if item.IsEmpty() {
			continue
		}
		if existing, ok := pending[item.ID]; ok {
			existing.Merge(item)
			changed = append(changed, existing)
			continue
		}
		copied := *item
		pending[item.ID] = &copied
		changed = append(changed, &copied)
	}
	if len(changed) == 0 {
		return nil
	}

	if err := o.store.SaveUncommitted(ctx, changed); err != nil {
		return fmt.Errorf("save uncommitted: %w", err)
	}
	return nil
}

// Flush sends every uncommitted delta in batches. Items the service accepted
// are removed; rejected ones stay queued for the next flush. The returned
// status sums Applied over all batches, counts every item sent in Total and
// carries the per-item errors.
func (o *Outbox) Flush(ctx context.Context) (domain.SyncStatus, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	status := domain.SyncStatus{Errors: make(map[string]error)}

	pending, err := o.store.LoadUncommitted(ctx)
	if err != nil {
		return status, fmt.Errorf("load uncommitted: %w", err)
	}
	if len(pending) == 0 {
		return status, nil
	}

	ids := make([]string, 0, len(pending))
	for id := range pending {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	for start := 0; start < len(ids); start += o.batchSize {
		if err := ctx.Err(); err != nil {
			return status, err
		}

		end := min(start+o.batchSize, len(ids))
		batch := make([]*domain.SyncItem, 0, end-start)
		for _, id := range ids[start:end] {
			batch = append(batch, pending[id])
		}

		batchStatus, err := o.transport.SendBatch(ctx, batch)
		if err != nil {
			return status, fmt.Errorf("send batch: %w", err)
		}

		var applied []string
		for _, item := range batch {
			if itemErr, failed := batchStatus.Errors[item.ID]; failed {
				status.Errors[item.ID] = itemErr
				o.logger.Warn("sync item rejected", "id", item.ID, "error", itemErr)
				continue
			}
			applied = append(applied, item.ID)
		}

		if len(applied) > 0 {
			if err := o.store.DeleteUncommitted(ctx, applied); err != nil {
				return status, fmt.Errorf("delete committed items: %w", err)
			}
		}

		status.Applied += len(applied)
		status.Total += len(batch)
	}

	o.logger.Info("sync flush completed",
		"applied", status.Applied,
		"total", status.Total,
		"failed", len(status.Errors),
	)

	return status, nil
}
