package leagues

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestScopeLocksSerializeSameScope(t *testing.T) {
	locks := NewScopeLocks()
	scope := DivisionScope(1)

	var active, maxActive int32
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release, err := locks.Lock(context.Background(), scope)
			if err != nil {
				t.Errorf("lock: %v", err)
				return
			}
			n := atomic.AddInt32(&active, 1)
			for {
				prev := atomic.LoadInt32(&maxActive)
				if n <= prev || atomic.CompareAndSwapInt32(&maxActive, prev, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&active, -1)
			release()
		}()
	}
	wg.Wait()

	if maxActive != 1 {
		t.Fatalf("expected at most one holder, saw %d", maxActive)
	}
	if size := locks.size(); size != 0 {
		t.Fatalf("expected lock entries to be released, got %d", size)
	}
}

func TestScopeLocksIndependentScopes(t *testing.T) {
	locks := NewScopeLocks()
	releaseDivision, err := locks.Lock(context.Background(), DivisionScope(1))
	if err != nil {
		t.Fatalf("lock division: %v", err)
	}
	defer releaseDivision()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	releaseCup, err := locks.Lock(ctx, CupScope(1))
	if err != nil {
		t.Fatalf("expected cup scope to be free while division is held: %v", err)
	}
	releaseCup()
}

func TestScopeLocksHonorsContext(t *testing.T) {
	locks := NewScopeLocks()
	release, err := locks.Lock(context.Background(), CupScope(3))
	if err != nil {
		t.Fatalf("lock: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := locks.Lock(ctx, CupScope(3)); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}

	release()
	release()
	if size := locks.size(); size != 0 {
		t.Fatalf("expected no entries after release, got %d", size)
	}
}

func TestScopeString(t *testing.T) {
	if got := DivisionScope(12).String(); got != "division:12" {
		t.Fatalf("unexpected scope string %q", got)
	}
	if got := CupScope(4).String(); got != "cup:4" {
		t.Fatalf("unexpected scope string %q", got)
	}
}
