package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyncItem_LaterDeltaWins(t *testing.T) {
	item := &SyncItem{ID: "a"}
	item.MarkRead()
	item.Star()
	item.AddLabel("Foo")

	later := &SyncItem{ID: "a"}
	later.MarkUnread()
	later.RemoveLabel("Foo")
	later.AddLabel("Bar")

	item.Merge(later)

	assert.True(t, item.MarkedUnread)
	assert.False(t, item.MarkedRead)
	assert.True(t, item.Starred, "fields the later delta does not mention are kept")
	assert.Equal(t, []string{"Bar"}, item.AddedLabels)
	assert.Equal(t, []string{"Foo"}, item.RemovedLabels)
}

func TestSyncItem_LabelChangesAreIdempotent(t *testing.T) {
	item := &SyncItem{ID: "a"}
	item.AddLabel("Foo")
	item.AddLabel("Foo")
	assert.Equal(t, []string{"Foo"}, item.AddedLabels)

	item.RemoveLabel("Foo")
	item.RemoveLabel("Foo")
	assert.Empty(t, item.AddedLabels)
	assert.Equal(t, []string{"Foo"}, item.RemovedLabels)
	assert.False(t, item.IsEmpty())

	assert.True(t, (&SyncItem{ID: "b"}).IsEmpty())
}

func TestMergeResult_DeleteKeepsSetsDisjoint(t *testing.T) {
	persisted := &News{ID: 1, GUID: "a"}
	fresh := &News{GUID: "b"}
	feed := &Feed{News: []*News{persisted}}
	r := NewMergeResult(feed)

	r.Add(fresh)
	r.Update(persisted)
	require.Equal(t, []*News{persisted}, r.Updated)

	assert.True(t, r.Delete(persisted))
	assert.False(t, r.Delete(persisted))
	assert.Empty(t, r.Updated)
	assert.Equal(t, []*News{persisted}, r.Deleted)

	r.Update(persisted)
	assert.Empty(t, r.Updated, "a deleted news is never staged again")

	assert.True(t, r.Delete(fresh))
	assert.Empty(t, r.Added)
	assert.Len(t, r.Deleted, 1)
	assert.Empty(t, feed.News)
}

func TestMergeResult_TouchPromotedByUpdate(t *testing.T) {
	n := &News{ID: 7}
	r := NewMergeResult(&Feed{News: []*News{n}})

	r.Touch(n)
	r.Touch(n)
	require.Len(t, r.Touched, 1)
	assert.True(t, r.IsEmpty(), "touched news alone write nothing")

	r.Update(n)
	assert.Empty(t, r.Touched)
	assert.Equal(t, []*News{n}, r.Updated)

	r.Touch(n)
	assert.Empty(t, r.Touched)
	assert.False(t, r.IsEmpty())
}

func TestMergeResult_DropIgnoresPersisted(t *testing.T) {
	persisted := &News{ID: 3}
	fresh := &News{GUID: "x"}
	feed := &Feed{News: []*News{persisted}}
	r := NewMergeResult(feed)
	r.Add(fresh)

	r.Drop(persisted)
	r.Drop(fresh)

	assert.Empty(t, r.Added)
	assert.Equal(t, []*News{persisted}, feed.News)
}

func TestState_RoundTrip(t *testing.T) {
	for _, s := range []State{StateNew, StateUnread, StateUpdated, StateRead, StateHidden} {
		parsed, err := ParseState(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}
	_, err := ParseState("bogus")
	assert.Error(t, err)

	assert.True(t, StateUpdated.Unread())
	assert.False(t, StateRead.Unread())
	assert.False(t, StateHidden.Visible())
}

func TestNews_CloneDropsIDAndTransientProperties(t *testing.T) {
	label := &Label{ID: 1, Name: "Foo"}
	n := &News{ID: 9, GUID: "g", Labels: []*Label{label}}
	n.SetProperty(PropRemoteRead, true)
	n.SetProperty("custom", "kept")

	c := n.Clone()

	assert.Zero(t, c.ID)
	assert.Equal(t, map[string]any{"custom": "kept"}, c.Properties)
	assert.Same(t, label, c.Labels[0])
	assert.True(t, n.HasSyncMarkers())
	assert.False(t, c.HasSyncMarkers())

	n.ClearTransientProperties()
	assert.Equal(t, map[string]any{"custom": "kept"}, n.Properties)
}
