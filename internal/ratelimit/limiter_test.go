package ratelimit

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

type mockClock struct {
	mu  sync.Mutex
	now time.Time
}

func newMockClock() *mockClock {
	return &mockClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *mockClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *mockClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestLimiter(clock *mockClock) *Limiter {
	return New(&Config{
		LoginMaxAttempts:   3,
		LoginLockout:       15 * time.Minute,
		LoginMaxIPPerHour:  10,
		SubmitCooldown:     2 * time.Minute,
		SubmitMaxIPPerHour: 3,
		Clock:              clock,
	})
}

func TestCheckLogin_Lockout(t *testing.T) {
	clock := newMockClock()
	limiter := newTestLimiter(clock)
	defer limiter.Close()

	identifier := "admin@example.com"
	ip := "203.0.113.9"

	for i := 0; i < 2; i++ {
		if result := limiter.CheckLogin(identifier, ip); !result.Allowed {
			t.Fatalf("attempt %d should be allowed, got %s", i+1, result.Reason)
		}
		if limiter.RecordLoginFailure(identifier, ip) {
			t.Fatalf("attempt %d should not trigger lockout", i+1)
		}
	}
	if !limiter.RecordLoginFailure(identifier, ip) {
		t.Fatal("third failure should trigger lockout")
	}

	result := limiter.CheckLogin(identifier, ip)
	if result.Allowed {
		t.Fatal("expected lockout after max failures")
	}
	if result.Reason != "lockout" {
		t.Fatalf("expected reason 'lockout', got %q", result.Reason)
	}

	clock.Advance(16 * time.Minute)
	if result := limiter.CheckLogin(identifier, ip); !result.Allowed {
		t.Fatalf("expected lockout to expire, got %s", result.Reason)
	}
}

func TestCheckLogin_ResetOnSuccess(t *testing.T) {
	clock := newMockClock()
	limiter := newTestLimiter(clock)
	defer limiter.Close()

	identifier := "Official@Example.com"
	limiter.RecordLoginFailure(identifier, "203.0.113.1")
	limiter.RecordLoginFailure(identifier, "203.0.113.1")
	limiter.ResetLogin("official@example.com")

	if limiter.RecordLoginFailure(identifier, "203.0.113.1") {
		t.Fatal("expected counter to restart after reset")
	}
}

func TestCheckLogin_IPLimit(t *testing.T) {
	clock := newMockClock()
	limiter := newTestLimiter(clock)
	defer limiter.Close()

	ip := "198.51.100.7"
	for i := 0; i < 10; i++ {
		limiter.RecordLoginFailure(fmt.Sprintf("user%d@example.com", i), ip)
	}

	result := limiter.CheckLogin("fresh@example.com", ip)
	if result.Allowed {
		t.Fatal("expected IP limit to block a new identifier")
	}
	if result.Reason != "ip_hourly_limit" {
		t.Fatalf("expected reason 'ip_hourly_limit', got %q", result.Reason)
	}
}

func TestCheckSubmit_Cooldown(t *testing.T) {
	clock := newMockClock()
	limiter := newTestLimiter(clock)
	defer limiter.Close()

	identifier := "sponsor@example.com"
	ip := "203.0.113.20"

	if result := limiter.CheckSubmit(identifier, ip); !result.Allowed {
		t.Fatalf("first submission should be allowed, got %s", result.Reason)
	}
	limiter.RecordSubmit(identifier, ip)

	clock.Advance(30 * time.Second)
	result := limiter.CheckSubmit("SPONSOR@example.com", ip)
	if result.Allowed {
		t.Fatal("expected cooldown to apply regardless of case")
	}
	if result.Reason != "cooldown" {
		t.Fatalf("expected reason 'cooldown', got %q", result.Reason)
	}

	clock.Advance(2 * time.Minute)
	if result := limiter.CheckSubmit(identifier, ip); !result.Allowed {
		t.Fatalf("expected cooldown to expire, got %s", result.Reason)
	}
}

func TestCheckSubmit_IPLimit(t *testing.T) {
	clock := newMockClock()
	limiter := newTestLimiter(clock)
	defer limiter.Close()

	ip := "203.0.113.21"
	for i := 0; i < 3; i++ {
		limiter.RecordSubmit(fmt.Sprintf("company%d@example.com", i), ip)
	}
	if result := limiter.CheckSubmit("another@example.com", ip); result.Allowed {
		t.Fatal("expected IP hourly limit")
	}

	clock.Advance(time.Hour)
	if result := limiter.CheckSubmit("another@example.com", ip); !result.Allowed {
		t.Fatalf("expected window to reset, got %s", result.Reason)
	}
}

func TestSanitizeIdentifier(t *testing.T) {
	tests := map[string]string{
		"keeper@rovers.example":    "ke***@rovers.example",
		"  Coach@Rovers.Example  ": "co***@rovers.example",
		"ab@rovers.example":        "***@rovers.example",
		"+447911123456":            "***3456",
		"4155550132":               "***0132",
		"123":                      "***",
		"":                         "***",
	}
	for input, want := range tests {
		if got := SanitizeIdentifier(input); got != want {
			t.Errorf("SanitizeIdentifier(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestCleanupDropsIdleWindows(t *testing.T) {
	clock := newMockClock()
	limiter := newTestLimiter(clock)
	defer limiter.Close()

	limiter.RecordSubmit("sponsor@example.com", "203.0.113.30")
	limiter.RecordLoginFailure("ref@example.com", "203.0.113.31")

	clock.Advance(70 * time.Minute)
	limiter.cleanup()

	limiter.mu.RLock()
	defer limiter.mu.RUnlock()
	if len(limiter.submitByID) != 0 || len(limiter.submitByIP) != 0 || len(limiter.loginByIP) != 0 {
		t.Fatal("expected hourly windows to be pruned")
	}
	if len(limiter.loginByID) != 1 {
		t.Fatal("expected login failures to outlive the hourly windows until lockout plus an hour")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.LoginMaxAttempts != 5 {
		t.Errorf("LoginMaxAttempts = %d, want 5", cfg.LoginMaxAttempts)
	}
	if cfg.LoginLockout != 15*time.Minute {
		t.Errorf("LoginLockout = %v, want 15m", cfg.LoginLockout)
	}
	if cfg.SubmitCooldown != 2*time.Minute {
		t.Errorf("SubmitCooldown = %v, want 2m", cfg.SubmitCooldown)
	}
}

func TestLimiter_Close(t *testing.T) {
	limiter := New(nil)

	limiter.CheckLogin("test@example.com", "1.2.3.4")

	done := make(chan struct{})
	go func() {
		limiter.Close()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(1 * time.Second):
		t.Error("Close() should not hang")
	}
}

func TestConcurrentAccess(t *testing.T) {
	clock := newMockClock()
	limiter := New(&Config{
		LoginMaxAttempts:   1000,
		LoginLockout:       5 * time.Minute,
		LoginMaxIPPerHour:  100000,
		SubmitCooldown:     time.Millisecond,
		SubmitMaxIPPerHour: 100000,
		Clock:              clock,
	})
	defer limiter.Close()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(3)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if limiter.CheckLogin("user@example.com", "192.168.1.1").Allowed {
					limiter.RecordLoginFailure("user@example.com", "192.168.1.1")
				}
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if limiter.CheckSubmit("form@example.com", "192.168.1.2").Allowed {
					limiter.RecordSubmit("form@example.com", "192.168.1.2")
				}
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				limiter.ResetLogin("user@example.com")
			}
		}()
	}
	wg.Wait()
}

func TestCheckDoesNotConsumeQuota(t *testing.T) {
	clock := newMockClock()
	limiter := newTestLimiter(clock)
	defer limiter.Close()

	for i := 0; i < 10; i++ {
		if result := limiter.CheckLogin("test@example.com", "192.168.1.1"); !result.Allowed {
			t.Fatalf("check %d should be allowed without prior failures", i+1)
		}
	}
}
