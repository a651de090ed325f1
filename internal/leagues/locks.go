package leagues

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/semaphore"
)

type scopeKind string

const (
	scopeDivision scopeKind = "division"
	scopeCup      scopeKind = "cup"
)

// Scope identifies the unit that fixture and standings writes are
// serialized on. Cup groups share their cup's scope.
type Scope struct {
	kind scopeKind
	id   int64
}

func DivisionScope(divisionID int64) Scope {
	return Scope{kind: scopeDivision, id: divisionID}
}

func CupScope(cupID int64) Scope {
	return Scope{kind: scopeCup, id: cupID}
}

func (s Scope) String() string {
	return fmt.Sprintf("%s:%d", s.kind, s.id)
}

type scopeEntry struct {
	sem  *semaphore.Weighted
	refs int
}

// ScopeLocks hands out one exclusive lock per scope. Entries are dropped once
// no caller holds or waits on them.
type ScopeLocks struct {
	mu      sync.Mutex
	entries map[Scope]*scopeEntry
}

func NewScopeLocks() *ScopeLocks {
	return &ScopeLocks{entries: make(map[Scope]*scopeEntry)}
}

// Lock blocks until scope is free or ctx is done. The returned func releases
// the lock and must be called exactly once.
func (l *ScopeLocks) Lock(ctx context.Context, scope Scope) (func(), error) {
	l.mu.Lock()
	entry, ok := l.entries[scope]
	if !ok {
		entry = &scopeEntry{sem: semaphore.NewWeighted(1)}
		l.entries[scope] = entry
	}
	entry.refs++
	l.mu.Unlock()

	if err := entry.sem.Acquire(ctx, 1); err != nil {
		l.unref(scope, entry)
		return nil, fmt.Errorf("lock %s: %w", scope, err)
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			entry.sem.Release(1)
			l.unref(scope, entry)
		})
	}, nil
}

func (l *ScopeLocks) unref(scope Scope, entry *scopeEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	entry.refs--
	if entry.refs == 0 && l.entries[scope] == entry {
		delete(l.entries, scope)
	}
}

func (l *ScopeLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
