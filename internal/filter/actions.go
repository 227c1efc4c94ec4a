package filter

import (
	"context"
	"errors"
	"fmt"

	"news_reconciler/internal/domain"
)

// Action is one capability a filter can trigger. Run applies it to news;
// news that another item takes the place of are recorded in replacements.
type Action interface {
	Run(ctx context.Context, news []*domain.News, replacements map[*domain.News]*domain.News, data string) error
	// Structural reports whether the action removes or relocates news. Structural
	// actions run after all others of the same filter.
	Structural() bool
}

// Action identifiers of the built-in registry.
const (
	ActionLabel      = "label"
	ActionMarkRead   = "mark_read"
	ActionMarkUnread = "mark_unread"
	ActionMarkSticky = "mark_sticky"
	ActionDelete     = "delete"
	ActionMove       = "move"
)

type LabelLookup interface {
	Lookup(ctx context.Context, name string) (*domain.Label, error)
}

// Registry maps action identifiers to actions. It is filled once at startup.
type Registry struct {
	actions map[string]Action
}

func NewRegistry() *Registry {
	return &Registry{actions: make(map[string]Action)}
}

// DefaultRegistry returns a registry holding the built-in actions.
func DefaultRegistry(labels LabelLookup) *Registry {
	r := NewRegistry()
	r.Register(ActionLabel, labelAction{labels: labels})
	r.Register(ActionMarkRead, stateAction{state: domain.StateRead})
	r.Register(ActionMarkUnread, stateAction{state: domain.StateUnread})
	r.Register(ActionMarkSticky, stickyAction{})
	r.Register(ActionDelete, deleteAction{})
	r.Register(ActionMove, moveAction{})
	return r
}

func (r *Registry) Register(id string, action Action) {
	r.actions[id] = action
}

func (r *Registry) Lookup(id string) (Action, bool) {
	a, ok := r.actions[id]
	return a, ok
}

type labelAction struct {
	labels LabelLookup
}

func (a labelAction) Structural() bool { return false }

func (a labelAction) Run(ctx context.Context, news []*domain.News, _ map[*domain.News]*domain.News, data string) error {
	label, err := a.labels.Lookup(ctx, data)
	if err != nil {
		return fmt.Errorf("resolve label: %w", err)
	}
	for _, n := range news {
		n.AddLabel(label)
	}
	return nil
}

type stateAction struct {
	state domain.State
}

func (a stateAction) Structural() bool { return false }

func (a stateAction) Run(_ context.Context, news []*domain.News, _ map[*domain.News]*domain.News, _ string) error {
	for _, n := range news {
		if n.State.Visible() {
			n.State = a.state
		}
	}
	return nil
}

type stickyAction struct{}

func (stickyAction) Structural() bool { return false }

func (stickyAction) Run(_ context.Context, news []*domain.News, _ map[*domain.News]*domain.News, _ string) error {
	for _, n := range news {
		n.Flagged = true
	}
	return nil
}

type deleteAction struct{}

func (deleteAction) Structural() bool { return true }

func (deleteAction) Run(_ context.Context, news []*domain.News, _ map[*domain.News]*domain.News, _ string) error {
	for _, n := range news {
		n.State = domain.StateHidden
	}
	return nil
}

// moveAction re-homes news to the feed whose link is given as data.
type moveAction struct{}

func (moveAction) Structural() bool { return true }

func (moveAction) Run(_ context.Context, news []*domain.News, replacements map[*domain.News]*domain.News, data string) error {
	if data == "" {
		return errors.New("move: missing target feed")
	}
	for _, n := range news {
		if n.FeedLink == data || !n.State.Visible() {
			continue
		}
		moved := n.Clone()
		moved.FeedLink = data
		replacements[n] = moved
		n.State = domain.StateHidden
	}
	return nil
}
