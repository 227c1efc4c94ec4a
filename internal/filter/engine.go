// Package filter applies user-defined search filters to newly received news.
package filter

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"news_reconciler/internal/domain"
	"news_reconciler/internal/search"
)

type FilterStore interface {
	LoadFilters(ctx context.Context) ([]*domain.SearchFilter, error)
}

// Index is the ephemeral full-text index built over the candidate news.
type Index interface {
	Add(pos int, n *domain.News)
	Query(s *domain.Search) ([]int, error)
}

type Engine struct {
	filters  FilterStore
	registry *Registry
	newIndex func() Index
	logger   *slog.Logger
}

func NewEngine(filters FilterStore, registry *Registry, logger *slog.Logger) *Engine {
	return &Engine{
		filters:  filters,
		registry: registry,
		newIndex: func() Index { return search.NewIndex() },
		logger:   logger,
	}
}

// Result is the outcome of one Apply.
type Result struct {
	Filtered bool
	// Claimed holds the news some filter matched and ran its actions on.
	Claimed []*domain.News
	// Replacements maps news moved elsewhere to the copy that replaces them.
	Replacements map[*domain.News]*domain.News
}

// Apply runs the enabled filters, in ascending order, against news of the
// feed at feedLink. Each news is claimed by the first filter matching it.
// Filter-applied notifications are queued on events.
func (e *Engine) Apply(ctx context.Context, news []*domain.News, feedLink string, events *domain.EventBuffer) (*Result, error) {
	result := &Result{Replacements: make(map[*domain.News]*domain.News)}
	if len(news) == 0 {
		return result, nil
	}

	filters, err := e.enabledFilters(ctx, feedLink)
	if err != nil {
		return nil, err
	}
	if len(filters) == 0 {
		return result, nil
	}

	var ix Index
	for _, f := range filters {
		if !f.Unconditional() {
			ix = e.newIndex()
			for pos, n := range news {
				ix.Add(pos, n)
			}
			break
		}
	}

	claimed := make([]bool, len(news))
	for _, f := range filters {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		if f.Unconditional() {
			var matches []*domain.News
			for pos, n := range news {
				if !claimed[pos] {
					claimed[pos] = true
					matches = append(matches, n)
				}
			}
			e.run(ctx, f, matches, feedLink, result, events)
			break
		}

		positions, err := ix.Query(f.Search)
		if err != nil {
			e.logger.Warn("filter search failed",
				"filter", f.Name,
				"filter_id", f.ID,
				"error", err,
			)
			continue
		}

		var matches []*domain.News
		for _, pos := range positions {
			if pos < 0 || pos >= len(news) || claimed[pos] {
				continue
			}
			claimed[pos] = true
			matches = append(matches, news[pos])
		}
		e.run(ctx, f, matches, feedLink, result, events)
	}

	return result, nil
}

// enabledFilters returns the filters to consider for feedLink in order. When the
// first one matches everything it is the only one that can run.
func (e *Engine) enabledFilters(ctx context.Context, feedLink string) ([]*domain.SearchFilter, error) {
	all, err := e.filters.LoadFilters(ctx)
	if err != nil {
		return nil, fmt.Errorf("load filters: %w", err)
	}

	var enabled []*domain.SearchFilter
	for _, f := range all {
		if f.Enabled {
			enabled = append(enabled, f)
		}
	}
	sort.SliceStable(enabled, func(i, j int) bool {
		return enabled[i].Order < enabled[j].Order
	})

	if len(enabled) > 0 && enabled[0].Unconditional() {
		return enabled[:1], nil
	}

	scoped := enabled[:0]
	for _, f := range enabled {
		if f.Unconditional() || f.Search.InScope(feedLink) {
			scoped = append(scoped, f)
		}
	}
	return scoped, nil
}

func (e *Engine) run(ctx context.Context, f *domain.SearchFilter, matches []*domain.News, feedLink string, result *Result, events *domain.EventBuffer) {
	if len(matches) == 0 {
		return
	}

	actions := append([]domain.FilterAction(nil), f.Actions...)
	sort.SliceStable(actions, func(i, j int) bool {
		return !e.structural(actions[i]) && e.structural(actions[j])
	})

	for _, fa := range actions {
		action, ok := e.registry.Lookup(fa.ActionID)
		if !ok {
			e.logger.Warn("unknown filter action",
				"filter", f.Name,
				"action", fa.ActionID,
			)
			continue
		}
		if err := action.Run(ctx, matches, result.Replacements, fa.Data); err != nil {
			e.logger.Warn("filter action failed",
				"filter", f.Name,
				"action", fa.ActionID,
				"error", err,
			)
		}
	}

	result.Filtered = true
	result.Claimed = append(result.Claimed, matches...)
	events.Add(domain.Event{
		Type:      domain.EventFilterApplied,
		FeedLink:  feedLink,
		FilterID:  f.ID,
		Count:     len(matches),
		Timestamp: time.Now().UTC(),
	})
	e.logger.Debug("filter applied", "filter", f.Name, "news", len(matches))
}

func (e *Engine) structural(fa domain.FilterAction) bool {
	action, ok := e.registry.Lookup(fa.ActionID)
	return ok && action.Structural()
}
