// Package remotesync reconciles local read, starred and label state with a
// remote synchronization service.
package remotesync

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"news_reconciler/internal/domain"
)

type LabelStore interface {
	LoadLabels(ctx context.Context) ([]*domain.Label, error)
	// DeletedLabelNames lists labels the user deleted locally. Remote names in
	// this set are never recreated.
	DeletedLabelNames(ctx context.Context) ([]string, error)
}

const defaultLabelColor = "#1e90ff"

type Reconciler struct {
	labels *LabelCache
	store  LabelStore
	logger *slog.Logger
}

func NewReconciler(store LabelStore, cache *LabelCache, logger *slog.Logger) *Reconciler {
	return &Reconciler{
		labels: cache,
		store:  store,
		logger: logger,
	}
}

// PreMerge attaches uncommitted local deltas to the incoming news they cover.
// It returns how many news were marked.
func (r *Reconciler) PreMerge(incoming *domain.Feed, uncommitted map[string]*domain.SyncItem) int {
	if len(uncommitted) == 0 {
		return 0
	}
	marked := 0
	for _, n := range incoming.News {
		item, ok := uncommitted[n.Identity()]
		if !ok {
			continue
		}
		pending := *item
		n.SetProperty(domain.PropPendingSync, &pending)
		marked++
	}
	return marked
}

// PostMerge resolves remote labels, applies remote markers and then pending
// local deltas on the news of result, and clears the consumed markers.
// Touched news are promoted to updates only when they actually changed.
func (r *Reconciler) PostMerge(ctx context.Context, result *domain.MergeResult) error {
	known, err := r.labels.Snapshot(ctx)
	if err != nil {
		return err
	}
	deleted, err := r.store.DeletedLabelNames(ctx)
	if err != nil {
		return fmt.Errorf("load deleted labels: %w", err)
	}

	res := &resolver{
		known:   known,
		ignored: make(map[string]struct{}, len(deleted)),
		result:  result,
	}
	for _, name := range deleted {
		res.ignored[name] = struct{}{}
	}
	for _, l := range result.Labels {
		res.known[l.Name] = l
	}

	for _, n := range result.Added {
		r.fixup(n, res)
	}
	for _, n := range result.Updated {
		r.fixup(n, res)
	}
	for _, n := range slices.Clone(result.Touched) {
		if r.fixup(n, res) {
			result.Update(n)
		}
	}
	result.Touched = nil

	if len(res.created) > 0 {
		r.logger.Info("created labels from sync", "labels", res.created)
	}
	return nil
}

func (r *Reconciler) fixup(n *domain.News, res *resolver) bool {
	before := snapshot(n)

	// Remote labels only add. Removals arrive as explicit deltas.
	if v, ok := n.Property(domain.PropRemoteLabels); ok {
		for _, name := range domain.StringList(v) {
			if l := res.resolve(name); l != nil {
				n.AddLabel(l)
			}
		}
	}

	if read, _ := n.Properties[domain.PropRemoteRead].(bool); read && n.State.Visible() {
		n.State = domain.StateRead
	}
	if unread, _ := n.Properties[domain.PropRemoteUnread].(bool); unread && (n.State == domain.StateRead || n.State == domain.StateNew) {
		n.State = domain.StateUnread
	}
	if starred, ok := n.Properties[domain.PropRemoteStarred].(bool); ok {
		n.Flagged = starred
	}

	if pending, ok := n.Properties[domain.PropPendingSync].(*domain.SyncItem); ok {
		ApplyDelta(n, pending, res.resolve)
	}

	n.ClearTransientProperties()
	return !before.equal(snapshot(n))
}

type resolver struct {
	known   map[string]*domain.Label
	ignored map[string]struct{}
	result  *domain.MergeResult
	created []string
}

func (res *resolver) resolve(name string) *domain.Label {
	if name == "" {
		return nil
	}
	if _, skip := res.ignored[name]; skip {
		return nil
	}
	if l, ok := res.known[name]; ok {
		return l
	}
	l := &domain.Label{Name: name, Color: defaultLabelColor, Order: len(res.known)}
	res.known[name] = l
	res.result.Labels = append(res.result.Labels, l)
	res.created = append(res.created, name)
	return l
}

// ToSyncItem snapshots the current state of n as a delta that, applied
// remotely, reproduces it. Callers adjust the returned item to describe a change.
func ToSyncItem(n *domain.News) *domain.SyncItem {
	item := &domain.SyncItem{
		ID:       n.Identity(),
		StreamID: n.FeedLink,
	}
	if n.State == domain.StateRead {
		item.MarkRead()
	} else if n.State.Unread() {
		item.MarkUnread()
	}
	if n.Flagged {
		item.Star()
	} else {
		item.Unstar()
	}
	for _, name := range n.LabelNames() {
		item.AddLabel(name)
	}
	return item
}

// ApplyDelta applies item to n and reports whether n changed. Fields the
// delta does not mention keep their local value.
func ApplyDelta(n *domain.News, item *domain.SyncItem, resolve func(string) *domain.Label) bool {
	before := snapshot(n)

	switch {
	case item.MarkedRead && n.State.Visible():
		n.State = domain.StateRead
	case item.MarkedUnread && n.State == domain.StateRead:
		n.State = domain.StateUnread
	}
	switch {
	case item.Starred:
		n.Flagged = true
	case item.Unstarred:
		n.Flagged = false
	}
	for _, name := range item.AddedLabels {
		if l := resolve(name); l != nil {
			n.AddLabel(l)
		}
	}
	for _, name := range item.RemovedLabels {
		n.RemoveLabel(name)
	}

	return !before.equal(snapshot(n))
}

type newsState struct {
	state   domain.State
	flagged bool
	labels  []string
}

func snapshot(n *domain.News) newsState {
	labels := n.LabelNames()
	slices.Sort(labels)
	return newsState{state: n.State, flagged: n.Flagged, labels: labels}
}

func (s newsState) equal(o newsState) bool {
	return s.state == o.state && s.flagged == o.flagged && slices.Equal(s.labels, o.labels)
}
