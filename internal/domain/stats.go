package domain

import "time"

// ReloadStats holds statistics about one reload.
type ReloadStats struct {
	FeedLink    string
	Fetched     int
	New         int
	Updated     int
	Deleted     int
	Filtered    bool
	NotModified bool
	Cancelled   bool
	Duration    time.Duration
}
