package remotesync

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"news_reconciler/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestOutbox_QueueMergesDeltas(t *testing.T) {
	ctx := context.Background()
	store := newFakeSyncItemStore()
	outbox := NewOutbox(store, &fakeTransport{}, 10, testLogger())

	first := &domain.SyncItem{ID: "a"}
	first.MarkRead()
	first.AddLabel("Foo")
	require.NoError(t, outbox.Queue(ctx, first))

	second := &domain.SyncItem{ID: "a"}
	second.MarkUnread()
	second.RemoveLabel("Foo")
	second.AddLabel("Bar")
	require.NoError(t, outbox.Queue(ctx, second, &domain.SyncItem{ID: "empty"}))

	pending, err := store.LoadUncommitted(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	item := pending["a"]
	assert.True(t, item.MarkedUnread)
	assert.False(t, item.MarkedRead)
	assert.Equal(t, []string{"Bar"}, item.AddedLabels)
	assert.Equal(t, []string{"Foo"}, item.RemovedLabels)
}

func TestOutbox_FlushIsPerItem(t *testing.T) {
	ctx := context.Background()
	items := make([]*domain.SyncItem, 0, 5)
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		item := &domain.SyncItem{ID: id}
		item.MarkRead()
		items = append(items, item)
	}
	store := newFakeSyncItemStore(items...)
	transport := &fakeTransport{reject: map[string]bool{"c": true}}
	outbox := NewOutbox(store, transport, 2, testLogger())

	status, err := outbox.Flush(ctx)
	require.NoError(t, err)

	assert.Equal(t, [][]string{{"a", "b"}, {"c", "d"}, {"e"}}, transport.batches)
	assert.Equal(t, 4, status.Applied, "applied is summed over every batch")
	assert.Equal(t, 5, status.Total)
	assert.Len(t, status.Errors, 1)
	assert.Contains(t, status.Errors, "c")

	pending, err := store.LoadUncommitted(ctx)
	require.NoError(t, err)
	assert.Len(t, pending, 1)
	assert.Contains(t, pending, "c")
}

func TestOutbox_FlushTransportErrorKeepsItems(t *testing.T) {
	ctx := context.Background()
	item := &domain.SyncItem{ID: "a"}
	item.Star()
	store := newFakeSyncItemStore(item)
	outbox := NewOutbox(store, &fakeTransport{fail: true}, 10, testLogger())

	_, err := outbox.Flush(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "send batch")

	pending, err := store.LoadUncommitted(ctx)
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}

func TestOutbox_FlushEmpty(t *testing.T) {
	transport := &fakeTransport{}
	outbox := NewOutbox(newFakeSyncItemStore(), transport, 10, testLogger())

	status, err := outbox.Flush(context.Background())
	require.NoError(t, err)
	assert.Zero(t, status.Total)
	assert.Empty(t, transport.batches)
}
