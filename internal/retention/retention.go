// Package retention deletes news exceeding the configured count, age and read limits.
package retention

import (
	"log/slog"
	"sort"
	"time"

	"news_reconciler/internal/domain"
)

type Enforcer struct {
	logger *slog.Logger
	now    func() time.Time
}

func NewEnforcer(logger *slog.Logger) *Enforcer {
	return &Enforcer{
		logger: logger,
		now:    time.Now,
	}
}

// Enforce stages the news of result.Feed that the preference no longer keeps
// into the result's delete-set and returns them. Unread news (when
// NeverDeleteUnread), labeled news (when NeverDeleteLabeled) and flagged news
// are always kept.
func (e *Enforcer) Enforce(result *domain.MergeResult, pref domain.RetentionPreference) []*domain.News {
	if !pref.Enabled() {
		return nil
	}

	visible := result.Feed.Visible()
	candidates := make(map[*domain.News]struct{})

	if pref.DeleteByCount && len(visible) > pref.MaxCount {
		sorted := append([]*domain.News(nil), visible...)
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].SortDate().After(sorted[j].SortDate())
		})
		for _, n := range sorted[max(pref.MaxCount, 0):] {
			candidates[n] = struct{}{}
		}
	}

	if pref.DeleteByAge {
		cutoff := e.now().AddDate(0, 0, -pref.MaxAgeDays)
		for _, n := range visible {
			if n.SortDate().Before(cutoff) {
				candidates[n] = struct{}{}
			}
		}
	}

	if pref.DeleteRead {
		for _, n := range visible {
			if n.State == domain.StateRead {
				candidates[n] = struct{}{}
			}
		}
	}

	var deleted []*domain.News
	for _, n := range visible {
		if _, ok := candidates[n]; !ok || keep(n, pref) {
			continue
		}
		if result.Delete(n) {
			deleted = append(deleted, n)
		}
	}

	if len(deleted) > 0 {
		e.logger.Debug("retention staged deletions",
			"feed", result.Feed.Link,
			"count", len(deleted),
		)
	}

	return deleted
}

func keep(n *domain.News, pref domain.RetentionPreference) bool {
	if n.Flagged {
		return true
	}
	if pref.NeverDeleteUnread && n.State.Unread() {
		return true
	}
	if pref.NeverDeleteLabeled && len(n.Labels) > 0 {
		return true
	}
	return false
}
