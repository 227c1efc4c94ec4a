// Package merge reconciles a freshly parsed feed against its persisted state.
package merge

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"news_reconciler/internal/domain"
)

// Engine computes the change-set between a persisted feed and an incoming one.
type Engine struct {
	logger *slog.Logger
	now    func() time.Time
}

func NewEngine(logger *slog.Logger) *Engine {
	return &Engine{
		logger: logger,
		now:    time.Now,
	}
}

// Merge folds incoming into persisted and returns what has to be written.
// Persisted news missing from incoming are left alone; removing them is the
// job of retention. Unchanged items produce no write.
func (e *Engine) Merge(persisted, incoming *domain.Feed) *domain.MergeResult {
	result := domain.NewMergeResult(persisted)
	result.FeedChanged = mergeFeedFields(persisted, incoming)

	index := make(map[string]*domain.News, len(persisted.News))
	for _, n := range persisted.News {
		if id := n.Identity(); id != "" {
			index[id] = n
		}
	}

	seen := make(map[string]struct{}, len(incoming.News))
	now := e.now().UTC()

	for _, in := range incoming.News {
		id := in.Identity()
		if id == "" {
			e.logger.Warn("dropping news without guid or link",
				"feed", persisted.Link,
				"title", in.Title,
			)
			continue
		}
		if _, dup := seen[id]; dup {
			e.logger.Debug("dropping duplicate news in incoming feed",
				"feed", persisted.Link,
				"identity", id,
			)
			continue
		}
		seen[id] = struct{}{}

		existing, ok := index[id]
		if !ok {
			in.ID = 0
			in.FeedLink = persisted.Link
			in.State = domain.StateNew
			if in.ReceiveDate.IsZero() {
				in.ReceiveDate = now
			}
			result.Add(in)
			index[id] = in
			continue
		}

		changed, err := differs(existing, in)
		if err != nil {
			e.logger.Warn("comparing news failed, treating as changed",
				"feed", persisted.Link,
				"identity", id,
				"error", err,
			)
			changed = true
		}

		switch {
		case changed:
			applyFields(existing, in)
			copyTransient(existing, in)
			existing.State = domain.StateUpdated
			result.Update(existing)
		case in.HasSyncMarkers() && existing.State.Visible():
			copyTransient(existing, in)
			result.Touch(existing)
		}
	}

	return result
}

// CopyProperties copies the feed-level custom properties of persisted onto incoming.
func CopyProperties(persisted, incoming *domain.Feed) {
	if len(persisted.Properties) == 0 {
		return
	}
	if incoming.Properties == nil {
		incoming.Properties = make(map[string]any, len(persisted.Properties))
	}
	for k, v := range persisted.Properties {
		if _, ok := incoming.Properties[k]; !ok {
			incoming.Properties[k] = v
		}
	}
}

func mergeFeedFields(persisted, incoming *domain.Feed) bool {
	changed := false
	set := func(dst *string, src string) {
		if src != "" && *dst != src {
			*dst = src
			changed = true
		}
	}
	set(&persisted.Title, incoming.Title)
	set(&persisted.Description, incoming.Description)
	set(&persisted.HomePage, incoming.HomePage)
	if !incoming.PublishDate.IsZero() && !sameTime(persisted.PublishDate, incoming.PublishDate) {
		persisted.PublishDate = incoming.PublishDate
		changed = true
	}
	return changed
}

// differs compares the mutable fields of a persisted news and its incoming version.
func differs(existing, in *domain.News) (bool, error) {
	if raw, ok := in.Property(domain.PropMalformedDate); ok {
		return true, fmt.Errorf("malformed date %v", raw)
	}

	if existing.Title != in.Title || existing.Description != in.Description || existing.Author != in.Author {
		return true, nil
	}

	same, err := sameLink(existing.Link, in.Link)
	if err != nil || !same {
		return true, err
	}

	if !sameTime(existing.PublishDate, in.PublishDate) || !sameTime(existing.ModifiedDate, in.ModifiedDate) {
		return true, nil
	}

	if len(existing.Attachments) != len(in.Attachments) {
		return true, nil
	}
	for i := range existing.Attachments {
		a, b := existing.Attachments[i], in.Attachments[i]
		if a.Type != b.Type || a.Length != b.Length {
			return true, nil
		}
		same, err := sameLink(a.Link, b.Link)
		if err != nil {
			return true, fmt.Errorf("attachment %d: %w", i, err)
		}
		if !same {
			return true, nil
		}
	}

	if len(existing.Categories) != len(in.Categories) {
		return true, nil
	}
	for i := range existing.Categories {
		if existing.Categories[i] != in.Categories[i] {
			return true, nil
		}
	}

	return false, nil
}

func applyFields(existing, in *domain.News) {
	existing.Title = in.Title
	existing.Description = in.Description
	existing.Author = in.Author
	existing.Link = in.Link
	existing.PublishDate = in.PublishDate
	existing.ModifiedDate = in.ModifiedDate
	existing.Attachments = in.Attachments
	existing.Categories = in.Categories
}

func copyTransient(existing, in *domain.News) {
	for k, v := range in.Properties {
		if domain.IsTransientProperty(k) {
			existing.SetProperty(k, v)
		}
	}
}

func sameLink(a, b string) (bool, error) {
	if a == b {
		return true, nil
	}
	na, err := normalizeLink(a)
	if err != nil {
		return false, err
	}
	nb, err := normalizeLink(b)
	if err != nil {
		return false, err
	}
	return na == nb, nil
}

func normalizeLink(link string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(link))
	if err != nil {
		return "", fmt.Errorf("parse link: %w", err)
	}
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	return u.String(), nil
}

// sameTime compares at the precision the store keeps.
func sameTime(a, b time.Time) bool {
	return a.Truncate(time.Microsecond).Equal(b.Truncate(time.Microsecond))
}
