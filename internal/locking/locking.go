// Package locking holds the locks that keep readers from observing a
// half-committed reload.
package locking

import (
	"slices"
	"sync"
)

// CommitLock serializes the commit phase of reloads. Merge and filter work
// runs outside it; readers that need a consistent view take the read side.
type CommitLock struct {
	mu sync.RWMutex
}

func (l *CommitLock) Lock()    { l.mu.Lock() }
func (l *CommitLock) Unlock()  { l.mu.Unlock() }
func (l *CommitLock) RLock()   { l.mu.RLock() }
func (l *CommitLock) RUnlock() { l.mu.RUnlock() }

// View runs fn while no commit is in progress.
func (l *CommitLock) View(fn func() error) error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return fn()
}

type entry struct {
	mu   sync.RWMutex
	refs int
}

// NewsLocks is a table of per-news locks keyed by news ID. Entries exist only
// while someone holds or waits for them.
type NewsLocks struct {
	mu      sync.Mutex
	entries map[int64]*entry
}

func NewNewsLocks() *NewsLocks {
	return &NewsLocks{entries: make(map[int64]*entry)}
}

func (t *NewsLocks) acquire(id int64) *entry {
	t.mu.Lock()
	defer t.mu.Unlock()
	e, ok := t.entries[id]
	if !ok {
		e = &entry{}
		t.entries[id] = e
	}
	e.refs++
	return e
}

func (t *NewsLocks) release(id int64) *entry {
	t.mu.Lock()
	defer t.mu.Unlock()
	e := t.entries[id]
	e.refs--
	if e.refs == 0 {
		delete(t.entries, id)
	}
	return e
}

// LockAll takes the exclusive lock of every id in ascending order and returns
// the function releasing them. Zero ids are ignored.
func (t *NewsLocks) LockAll(ids []int64) (unlock func()) {
	sorted := sortedIDs(ids)
	for _, id := range sorted {
		t.acquire(id).mu.Lock()
	}
	return func() {
		for i := len(sorted) - 1; i >= 0; i-- {
			t.release(sorted[i]).mu.Unlock()
		}
	}
}

// RLock takes the shared lock of one news and returns its release function.
func (t *NewsLocks) RLock(id int64) (unlock func()) {
	t.acquire(id).mu.RLock()
	return func() {
		t.release(id).mu.RUnlock()
	}
}

// Held returns the number of ids currently locked or awaited.
func (t *NewsLocks) Held() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}

func sortedIDs(ids []int64) []int64 {
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id != 0 {
			out = append(out, id)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}
