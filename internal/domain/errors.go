package domain

import "errors"

// ErrNotFound is returned by stores when an entity does not exist.
var ErrNotFound = errors.New("not found")

// ErrNotModified is returned by fetchers when the feed has not changed since
// the conditional-GET validators were issued.
var ErrNotModified = errors.New("not modified")

// ErrAuthRequired is returned by fetchers when the feed needs credentials.
var ErrAuthRequired = errors.New("authentication required")
