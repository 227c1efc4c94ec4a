package domain

import "slices"

// SyncItem is a transmittable delta describing local read, starred and label
// changes of one news item. It is keyed by the news identity.
type SyncItem struct {
	ID            string   `json:"id"`
	StreamID      string   `json:"stream_id"`
	MarkedRead    bool     `json:"marked_read,omitempty"`
	MarkedUnread  bool     `json:"marked_unread,omitempty"`
	Starred       bool     `json:"starred,omitempty"`
	Unstarred     bool     `json:"unstarred,omitempty"`
	AddedLabels   []string `json:"added_labels,omitempty"`
	RemovedLabels []string `json:"removed_labels,omitempty"`
}

func (s *SyncItem) MarkRead() {
	s.MarkedRead = true
	s.MarkedUnread = false
}

func (s *SyncItem) MarkUnread() {
	s.MarkedUnread = true
	s.MarkedRead = false
}

func (s *SyncItem) Star() {
	s.Starred = true
	s.Unstarred = false
}

func (s *SyncItem) Unstar() {
	s.Unstarred = true
	s.Starred = false
}

// AddLabel is idempotent and cancels a pending removal of the same label.
func (s *SyncItem) AddLabel(name string) {
	s.RemovedLabels = without(s.RemovedLabels, name)
	if !slices.Contains(s.AddedLabels, name) {
		s.AddedLabels = append(s.AddedLabels, name)
	}
}

// RemoveLabel is idempotent and cancels a pending addition of the same label.
func (s *SyncItem) RemoveLabel(name string) {
	s.AddedLabels = without(s.AddedLabels, name)
	if !slices.Contains(s.RemovedLabels, name) {
		s.RemovedLabels = append(s.RemovedLabels, name)
	}
}

// Merge folds a later delta for the same item into s. Fields the later delta
// mentions replace the earlier ones.
func (s *SyncItem) Merge(later *SyncItem) {
	if later.MarkedRead {
		s.MarkRead()
	}
	if later.MarkedUnread {
		s.MarkUnread()
	}
	if later.Starred {
		s.Star()
	}
	if later.Unstarred {
		s.Unstar()
	}
	for _, name := range later.AddedLabels {
		s.AddLabel(name)
	}
	for _, name := range later.RemovedLabels {
		s.RemoveLabel(name)
	}
}

// IsEmpty reports whether the delta carries no change at all.
func (s *SyncItem) IsEmpty() bool {
	return !s.MarkedRead && !s.MarkedUnread && !s.Starred && !s.Unstarred &&
		len(s.AddedLabels) == 0 && len(s.RemovedLabels) == 0
}

func without(list []string, name string) []string {
	return slices.DeleteFunc(list, func(s string) bool { return s == name })
}

// SyncStatus is the outcome of sending one batch to the sync service.
type SyncStatus struct {
	Applied int
	Total   int
	Errors  map[string]error // keyed by SyncItem.ID
}
