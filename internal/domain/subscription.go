package domain

import "time"

// Subscription is a feed the user follows.
type Subscription struct {
	FeedLink    string    `db:"feed_link"`
	Title       string    `db:"title"`
	SyncEnabled bool      `db:"sync_enabled"`
	LastError   *string   `db:"last_error"`
	LastSuccess time.Time `db:"last_success"`
}

// ConditionalGetInfo carries the opaque HTTP validators of the last fetch.
type ConditionalGetInfo struct {
	Link            string `db:"feed_link"`
	IfModifiedSince string `db:"if_modified_since"`
	IfNoneMatch     string `db:"if_none_match"`
}

// IsEmpty reports whether there is nothing worth sending or storing.
func (c *ConditionalGetInfo) IsEmpty() bool {
	return c == nil || (c.IfModifiedSince == "" && c.IfNoneMatch == "")
}

// FetchResult is a parsed feed together with the validators of the response
// and the link it was finally served from, after redirects.
type FetchResult struct {
	Feed           *Feed
	ConditionalGet *ConditionalGetInfo
	FinalLink      string
}
