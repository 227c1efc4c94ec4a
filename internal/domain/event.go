package domain

import "time"

type EventType string

const (
	EventNewsAdded     EventType = "news_added"
	EventNewsUpdated   EventType = "news_updated"
	EventNewsDeleted   EventType = "news_deleted"
	EventFeedUpdated   EventType = "feed_updated"
	EventLabelAdded    EventType = "label_added"
	EventFilterApplied EventType = "filter_applied"
)

// Event describes one committed entity change or filter application.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	FeedLink  string    `json:"feed_link,omitempty"`
	NewsID    int64     `json:"news_id,omitempty"`
	Identity  string    `json:"identity,omitempty"`
	LabelName string    `json:"label_name,omitempty"`
	FilterID  int64     `json:"filter_id,omitempty"`
	Count     int       `json:"count,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// EventBuffer queues events until the reload that produced them has committed.
type EventBuffer struct {
	events []Event
}

func (b *EventBuffer) Add(e Event) {
	b.events = append(b.events, e)
}

func (b *EventBuffer) Events() []Event {
	return b.events
}

func (b *EventBuffer) Len() int {
	return len(b.events)
}
