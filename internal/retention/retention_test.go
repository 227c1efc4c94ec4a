package retention

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"news_reconciler/internal/domain"
)

var now = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

func newEnforcer() *Enforcer {
	e := NewEnforcer(slog.New(slog.NewTextHandler(io.Discard, nil)))
	e.now = func() time.Time { return now }
	return e
}

// unreadFeed builds a feed of n persisted unread news, news i published i hours before now.
func unreadFeed(n int) *domain.Feed {
	f := &domain.Feed{Link: "https://example.com/feed"}
	for i := 0; i < n; i++ {
		f.News = append(f.News, &domain.News{
			ID:          int64(i + 1),
			GUID:        time.Duration(i).String(),
			PublishDate: now.Add(-time.Duration(i) * time.Hour),
			State:       domain.StateUnread,
		})
	}
	return f
}

func TestEnforce_CountKeepsMostRecent(t *testing.T) {
	feed := unreadFeed(800)
	newest := append([]*domain.News(nil), feed.News[:5]...)
	result := domain.NewMergeResult(feed)

	deleted := newEnforcer().Enforce(result, domain.RetentionPreference{
		DeleteByCount: true,
		MaxCount:      5,
	})

	require.Len(t, deleted, 795)
	assert.Len(t, result.Deleted, 795)
	assert.ElementsMatch(t, newest, feed.News)
	for _, n := range deleted {
		assert.True(t, n.PublishDate.Before(newest[4].PublishDate))
	}
}

func TestEnforce_NeverDeleteUnread(t *testing.T) {
	feed := unreadFeed(10)
	result := domain.NewMergeResult(feed)

	deleted := newEnforcer().Enforce(result, domain.RetentionPreference{
		DeleteByCount:     true,
		MaxCount:          5,
		NeverDeleteUnread: true,
	})

	assert.Empty(t, deleted)
	assert.Len(t, feed.News, 10)
}

func TestEnforce_AgeAndRead(t *testing.T) {
	feed := unreadFeed(0)
	old := &domain.News{ID: 1, GUID: "old", PublishDate: now.AddDate(0, 0, -40), State: domain.StateUnread}
	read := &domain.News{ID: 2, GUID: "read", PublishDate: now, State: domain.StateRead}
	fresh := &domain.News{ID: 3, GUID: "fresh", PublishDate: now, State: domain.StateUnread}
	undated := &domain.News{ID: 4, GUID: "undated", ReceiveDate: now.AddDate(0, 0, -31), State: domain.StateNew}
	feed.News = []*domain.News{old, read, fresh, undated}
	result := domain.NewMergeResult(feed)

	deleted := newEnforcer().Enforce(result, domain.RetentionPreference{
		DeleteByAge: true,
		MaxAgeDays:  30,
		DeleteRead:  true,
	})

	assert.ElementsMatch(t, []*domain.News{old, read, undated}, deleted)
	assert.Equal(t, []*domain.News{fresh}, feed.News)
}

func TestEnforce_Exceptions(t *testing.T) {
	label := &domain.Label{ID: 1, Name: "Keep"}
	labeled := &domain.News{ID: 1, GUID: "l", State: domain.StateRead, Labels: []*domain.Label{label}}
	flagged := &domain.News{ID: 2, GUID: "f", State: domain.StateRead, Flagged: true}
	plain := &domain.News{ID: 3, GUID: "p", State: domain.StateRead}
	hidden := &domain.News{ID: 4, GUID: "h", State: domain.StateHidden}
	feed := &domain.Feed{News: []*domain.News{labeled, flagged, plain, hidden}}
	result := domain.NewMergeResult(feed)

	deleted := newEnforcer().Enforce(result, domain.RetentionPreference{
		DeleteRead:         true,
		NeverDeleteLabeled: true,
	})

	assert.Equal(t, []*domain.News{plain}, deleted)
	assert.Contains(t, feed.News, hidden)
}

func TestEnforce_NewItemsDroppedNotDeleted(t *testing.T) {
	persisted := &domain.News{ID: 1, GUID: "p", PublishDate: now, State: domain.StateUnread}
	feed := &domain.Feed{News: []*domain.News{persisted}}
	result := domain.NewMergeResult(feed)
	added := &domain.News{GUID: "n", PublishDate: now.Add(-time.Hour), State: domain.StateNew}
	result.Add(added)
	result.Update(persisted)

	deleted := newEnforcer().Enforce(result, domain.RetentionPreference{DeleteByCount: true, MaxCount: 1})

	assert.Equal(t, []*domain.News{added}, deleted)
	assert.Empty(t, result.Added)
	assert.Empty(t, result.Deleted)
	assert.Equal(t, []*domain.News{persisted}, result.Updated)
}

func TestEnforce_DeduplicatesAgainstStaged(t *testing.T) {
	feed := unreadFeed(3)
	result := domain.NewMergeResult(feed)
	staged := feed.News[2]
	result.Delete(staged)

	deleted := newEnforcer().Enforce(result, domain.RetentionPreference{DeleteByCount: true, MaxCount: 1})

	assert.Len(t, deleted, 1)
	assert.Len(t, result.Deleted, 2)
}

func TestEnforce_Disabled(t *testing.T) {
	feed := unreadFeed(3)
	assert.Nil(t, newEnforcer().Enforce(domain.NewMergeResult(feed), domain.RetentionPreference{}))
}
