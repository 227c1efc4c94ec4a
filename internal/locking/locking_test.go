package locking

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewsLocks_ReleaseRemovesEntries(t *testing.T) {
	locks := NewNewsLocks()

	unlock := locks.LockAll([]int64{3, 1, 3, 0, 2})
	assert.Equal(t, 3, locks.Held())

	unlock()
	assert.Zero(t, locks.Held())
}

func TestNewsLocks_ReaderWaitsForWriter(t *testing.T) {
	locks := NewNewsLocks()
	unlock := locks.LockAll([]int64{7})

	acquired := make(chan struct{})
	go func() {
		release := locks.RLock(7)
		close(acquired)
		release()
	}()

	select {
	case <-acquired:
		t.Fatal("reader acquired a news lock held by a commit")
	case <-time.After(50 * time.Millisecond):
	}

	unlock()

	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("reader never acquired the lock")
	}
}

func TestNewsLocks_ConcurrentOverlappingCommits(t *testing.T) {
	locks := NewNewsLocks()
	var wg sync.WaitGroup
	counter := 0

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ids := []int64{1, 2, 3}
			if i%2 == 0 {
				ids = []int64{3, 2, 1}
			}
			unlock := locks.LockAll(ids)
			counter++
			unlock()
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 20, counter)
	assert.Zero(t, locks.Held())
}

func TestCommitLock_ViewBlocksDuringCommit(t *testing.T) {
	var lock CommitLock
	lock.Lock()

	done := make(chan struct{})
	go func() {
		_ = lock.View(func() error { return nil })
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("view ran during commit")
	case <-time.After(50 * time.Millisecond):
	}

	lock.Unlock()
	<-done
}
