package domain

import "strings"

const (
	remotePrefix  = "remote."
	pendingPrefix = "pending."
	sourcePrefix  = "source."
)

// Markers deposited on incoming news by the sync transport and the fetcher.
const (
	PropRemoteRead    = remotePrefix + "read"    // bool
	PropRemoteUnread  = remotePrefix + "unread"  // bool
	PropRemoteStarred = remotePrefix + "starred" // bool, false means unstarred
	PropRemoteLabels  = remotePrefix + "labels"  // []string

	// PropPendingSync holds the *SyncItem of a local edit not yet confirmed remotely.
	PropPendingSync = pendingPrefix + "sync"

	// PropMalformedDate holds a raw date string the fetcher could not parse.
	PropMalformedDate = sourcePrefix + "malformed_date"
)

// IsTransientProperty reports whether key is a marker that must not be persisted.
func IsTransientProperty(key string) bool {
	return strings.HasPrefix(key, remotePrefix) ||
		strings.HasPrefix(key, pendingPrefix) ||
		strings.HasPrefix(key, sourcePrefix)
}

// StringList reads a []string marker. Values decoded from JSON arrive as []any.
func StringList(v any) []string {
	switch list := v.(type) {
	case []string:
		return list
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
