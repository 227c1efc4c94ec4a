package domain

import (
	"strings"
	"time"
)

// Feed is the durable state of one subscription, keyed by its link.
type Feed struct {
	ID          int64
	Link        string
	Title       string
	Description string
	HomePage    string
	PublishDate time.Time
	News        []*News
	Properties  map[string]any
}

// Visible returns the news of the feed that are not HIDDEN.
func (f *Feed) Visible() []*News {
	var visible []*News
	for _, n := range f.News {
		if n.State.Visible() {
			visible = append(visible, n)
		}
	}
	return visible
}

// Remove drops n from the feed's news collection.
func (f *Feed) Remove(n *News) {
	for i, candidate := range f.News {
		if candidate == n {
			f.News = append(f.News[:i], f.News[i+1:]...)
			return
		}
	}
}

type Attachment struct {
	Link   string `json:"link"`
	Type   string `json:"type,omitempty"`
	Length int64  `json:"length,omitempty"`
}

type Category struct {
	Name   string `json:"name"`
	Domain string `json:"domain,omitempty"`
}

// News is a single item of a feed.
type News struct {
	ID           int64 // 0 until the item has been persisted
	FeedLink     string
	GUID         string
	Link         string
	Title        string
	Description  string
	Author       string
	PublishDate  time.Time
	ModifiedDate time.Time
	ReceiveDate  time.Time
	Attachments  []Attachment
	Categories   []Category
	State        State
	Flagged      bool
	Labels       []*Label
	Properties   map[string]any
}

// Identity is the guid of the news, or its link when the feed supplies no guid.
func (n *News) Identity() string {
	if n.GUID != "" {
		return n.GUID
	}
	return n.Link
}

// SortDate is the publish date, falling back to the receive date.
func (n *News) SortDate() time.Time {
	if !n.PublishDate.IsZero() {
		return n.PublishDate
	}
	return n.ReceiveDate
}

func (n *News) HasLabel(name string) bool {
	for _, l := range n.Labels {
		if l.Name == name {
			return true
		}
	}
	return false
}

// AddLabel adds l unless a label with the same name is already present.
func (n *News) AddLabel(l *Label) bool {
	if n.HasLabel(l.Name) {
		return false
	}
	n.Labels = append(n.Labels, l)
	return true
}

func (n *News) RemoveLabel(name string) bool {
	for i, l := range n.Labels {
		if l.Name == name {
			n.Labels = append(n.Labels[:i], n.Labels[i+1:]...)
			return true
		}
	}
	return false
}

func (n *News) LabelNames() []string {
	names := make([]string, 0, len(n.Labels))
	for _, l := range n.Labels {
		names = append(names, l.Name)
	}
	return names
}

func (n *News) Property(key string) (any, bool) {
	if n.Properties == nil {
		return nil, false
	}
	v, ok := n.Properties[key]
	return v, ok
}

func (n *News) SetProperty(key string, value any) {
	if n.Properties == nil {
		n.Properties = make(map[string]any)
	}
	n.Properties[key] = value
}

// ClearTransientProperties removes merge and sync markers so they are never reapplied.
func (n *News) ClearTransientProperties() {
	for key := range n.Properties {
		if IsTransientProperty(key) {
			delete(n.Properties, key)
		}
	}
	if len(n.Properties) == 0 {
		n.Properties = nil
	}
}

// HasSyncMarkers reports whether the news carries remote or pending sync markers.
func (n *News) HasSyncMarkers() bool {
	for key := range n.Properties {
		if strings.HasPrefix(key, remotePrefix) || strings.HasPrefix(key, pendingPrefix) {
			return true
		}
	}
	return false
}

// Clone returns a copy of n without ID. Labels are shared references.
func (n *News) Clone() *News {
	c := *n
	c.ID = 0
	c.Attachments = append([]Attachment(nil), n.Attachments...)
	c.Categories = append([]Category(nil), n.Categories...)
	c.Labels = append([]*Label(nil), n.Labels...)
	c.Properties = nil
	for k, v := range n.Properties {
		if !IsTransientProperty(k) {
			c.SetProperty(k, v)
		}
	}
	return &c
}

// Label is referenced, not owned, by news. Names are globally unique.
type Label struct {
	ID    int64  `db:"id"`
	Name  string `db:"name"`
	Color string `db:"color"`
	Order int    `db:"sort_order"`
}
