package domain

import "slices"

// MergeResult is the change-set computed by one reload. It is committed exactly once.
type MergeResult struct {
	Feed        *Feed
	FeedChanged bool

	// Added holds news seen for the first time. They carry no ID until commit.
	Added []*News
	// Updated holds persisted news whose fields or state changed.
	Updated []*News
	// Deleted holds persisted news to remove.
	Deleted []*News
	// Touched holds persisted news that carry sync markers but no field change.
	// They are written only if applying the markers changes them.
	Touched []*News

	// Labels created while resolving remote label names.
	Labels []*Label
}

func NewMergeResult(feed *Feed) *MergeResult {
	return &MergeResult{Feed: feed}
}

// Add stages n as a new item of the feed.
func (r *MergeResult) Add(n *News) {
	r.Added = append(r.Added, n)
	r.Feed.News = append(r.Feed.News, n)
}

// Update stages a persisted news for writing. A deleted item is never re-staged.
func (r *MergeResult) Update(n *News) {
	if n.ID == 0 || slices.Contains(r.Deleted, n) || slices.Contains(r.Updated, n) {
		return
	}
	r.Touched = remove(r.Touched, n)
	r.Updated = append(r.Updated, n)
}

// Touch marks a persisted news as a candidate for a sync-only update.
func (r *MergeResult) Touch(n *News) {
	if slices.Contains(r.Touched, n) || slices.Contains(r.Updated, n) {
		return
	}
	r.Touched = append(r.Touched, n)
}

// Delete stages n for deletion, keeping the delete-set disjoint from the upsert-set.
// An unpersisted item is simply dropped from the change-set and the feed.
// Delete reports whether n was newly staged.
func (r *MergeResult) Delete(n *News) bool {
	r.Feed.Remove(n)
	if n.ID == 0 {
		before := len(r.Added)
		r.Added = remove(r.Added, n)
		return len(r.Added) != before
	}
	if slices.Contains(r.Deleted, n) {
		return false
	}
	r.Updated = remove(r.Updated, n)
	r.Touched = remove(r.Touched, n)
	r.Deleted = append(r.Deleted, n)
	return true
}

// Drop removes an unpersisted news that must not be written, e.g. one a filter hid.
func (r *MergeResult) Drop(n *News) {
	if n.ID != 0 {
		return
	}
	r.Added = remove(r.Added, n)
	r.Feed.Remove(n)
}

// IsEmpty reports whether committing the result would write nothing.
func (r *MergeResult) IsEmpty() bool {
	return !r.FeedChanged && len(r.Added) == 0 && len(r.Updated) == 0 &&
		len(r.Deleted) == 0 && len(r.Labels) == 0
}

func remove(list []*News, n *News) []*News {
	return slices.DeleteFunc(list, func(c *News) bool { return c == n })
}
