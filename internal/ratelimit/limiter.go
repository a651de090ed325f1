// Package ratelimit throttles login attempts and public form submissions.
package ratelimit

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	ipWindow        = time.Hour
	cleanupInterval = 5 * time.Minute
)

// Clock lets tests control time.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

type Config struct {
	LoginMaxAttempts  int           // failures per identifier before lockout
	LoginLockout      time.Duration // lockout length once the limit is hit
	LoginMaxIPPerHour int

	SubmitCooldown     time.Duration // minimum gap between submissions per identifier
	SubmitMaxIPPerHour int

	Clock Clock // nil means wall time
}

func DefaultConfig() *Config {
	return &Config{
		LoginMaxAttempts:   5,
		LoginLockout:       15 * time.Minute,
		LoginMaxIPPerHour:  30,
		SubmitCooldown:     2 * time.Minute,
		SubmitMaxIPPerHour: 10,
	}
}

// LimitResult is the outcome of a check. Reason is a short machine-readable
// tag for logs.
type LimitResult struct {
	Allowed    bool
	RetryAfter time.Duration
	Reason     string
}

func allowed() LimitResult { return LimitResult{Allowed: true} }

func denied(reason string, retryAfter time.Duration) LimitResult {
	return LimitResult{RetryAfter: retryAfter, Reason: reason}
}

// window counts events since start. locked is set when a login lockout begins.
type window struct {
	count  int
	start  time.Time
	last   time.Time
	locked time.Time
}

func (w *window) hourlyLimitHit(now time.Time, max int) (time.Duration, bool) {
	if w == nil {
		return 0, false
	}
	age := now.Sub(w.start)
	if age < ipWindow && w.count >= max {
		return ipWindow - age, true
	}
	return 0, false
}

// bucket maps hashed keys to windows. Callers hold Limiter.mu.
type bucket map[string]*window

// bump adds one event to the hourly window at key, starting a new window
// when the old one has aged out.
func (b bucket) bump(key string, now time.Time) {
	w := b[key]
	if w == nil || now.Sub(w.start) >= ipWindow {
		b[key] = &window{count: 1, start: now, last: now}
		return
	}
	w.count++
	w.last = now
}

func (b bucket) prune(now time.Time, maxIdle time.Duration) {
	for key, w := range b {
		if now.Sub(w.last) > maxIdle {
			delete(b, key)
		}
	}
}

// Limiter keeps all state in memory; counters reset on restart.
type Limiter struct {
	cfg   Config
	clock Clock

	mu          sync.RWMutex
	loginByID   bucket
	loginByIP   bucket
	submitByID  bucket
	submitByIP  bucket
	stop        context.CancelFunc
	stopped     context.Context
	cleanupOnce sync.Once
	cleanupWg   sync.WaitGroup
}

func New(cfg *Config) *Limiter {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	clock := cfg.Clock
	if clock == nil {
		clock = realClock{}
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Limiter{
		cfg:        *cfg,
		clock:      clock,
		loginByID:  bucket{},
		loginByIP:  bucket{},
		submitByID: bucket{},
		submitByIP: bucket{},
		stop:       cancel,
		stopped:    ctx,
	}
}

// Close stops the background sweeper and waits for it to exit.
func (l *Limiter) Close() {
	l.stop()
	l.cleanupWg.Wait()
}

// CheckLogin reports whether a login attempt may proceed. It records
// nothing; call RecordLoginFailure when the credentials are rejected.
func (l *Limiter) CheckLogin(identifier, ip string) LimitResult {
	l.startCleanup()
	now := l.clock.Now()
	idKey, ipKey := loginKeys(identifier, ip)

	l.mu.RLock()
	defer l.mu.RUnlock()

	if w := l.loginByID[idKey]; w != nil {
		if !w.locked.IsZero() {
			if elapsed := now.Sub(w.locked); elapsed < l.cfg.LoginLockout {
				return denied("lockout", l.cfg.LoginLockout-elapsed)
			}
		} else if w.count >= l.cfg.LoginMaxAttempts {
			return denied("max_attempts", l.cfg.LoginLockout)
		}
	}
	if retry, hit := l.loginByIP[ipKey].hourlyLimitHit(now, l.cfg.LoginMaxIPPerHour); hit {
		return denied("ip_hourly_limit", retry)
	}
	return allowed()
}

// RecordLoginFailure counts a rejected login and reports whether it started
// a lockout.
func (l *Limiter) RecordLoginFailure(identifier, ip string) (lockedOut bool) {
	now := l.clock.Now()
	idKey, ipKey := loginKeys(identifier, ip)

	l.mu.Lock()
	defer l.mu.Unlock()

	w := l.loginByID[idKey]
	if w == nil || (!w.locked.IsZero() && now.Sub(w.locked) >= l.cfg.LoginLockout) {
		w = &window{start: now}
		l.loginByID[idKey] = w
	}
	w.count++
	w.last = now
	if w.count >= l.cfg.LoginMaxAttempts && w.locked.IsZero() {
		w.locked = now
		lockedOut = true
	}

	l.loginByIP.bump(ipKey, now)
	return lockedOut
}

// ResetLogin forgets failures for identifier after a successful login.
func (l *Limiter) ResetLogin(identifier string) {
	idKey, _ := loginKeys(identifier, "")
	l.mu.Lock()
	delete(l.loginByID, idKey)
	l.mu.Unlock()
}

func (l *Limiter) CheckSubmit(identifier, ip string) LimitResult {
	l.startCleanup()
	now := l.clock.Now()
	idKey, ipKey := submitKeys(identifier, ip)

	l.mu.RLock()
	defer l.mu.RUnlock()

	if w := l.submitByID[idKey]; w != nil {
		if elapsed := now.Sub(w.last); elapsed < l.cfg.SubmitCooldown {
			return denied("cooldown", l.cfg.SubmitCooldown-elapsed)
		}
	}
	if retry, hit := l.submitByIP[ipKey].hourlyLimitHit(now, l.cfg.SubmitMaxIPPerHour); hit {
		return denied("ip_hourly_limit", retry)
	}
	return allowed()
}

// RecordSubmit counts an accepted submission against both the identifier
// and the IP.
func (l *Limiter) RecordSubmit(identifier, ip string) {
	now := l.clock.Now()
	idKey, ipKey := submitKeys(identifier, ip)

	l.mu.Lock()
	defer l.mu.Unlock()

	l.submitByID.bump(idKey, now)
	l.submitByIP.bump(ipKey, now)
}

func loginKeys(identifier, ip string) (string, string) {
	return hashKey("login:id:", normalizeIdentifier(identifier)), hashKey("login:ip:", ip)
}

func submitKeys(identifier, ip string) (string, string) {
	return hashKey("submit:id:", normalizeIdentifier(identifier)), hashKey("submit:ip:", ip)
}

// hashKey keeps raw emails and IPs out of memory dumps.
func hashKey(prefix, value string) string {
	sum := sha256.Sum256([]byte(value))
	return prefix + hex.EncodeToString(sum[:8])
}

func normalizeIdentifier(identifier string) string {
	return strings.ToLower(strings.TrimSpace(identifier))
}

func (l *Limiter) startCleanup() {
	l.cleanupOnce.Do(func() {
		l.cleanupWg.Add(1)
		go func() {
			defer l.cleanupWg.Done()
			ticker := time.NewTicker(cleanupInterval)
			defer ticker.Stop()
			for {
				select {
				case <-l.stopped.Done():
					return
				case <-ticker.C:
					l.cleanup()
				}
			}
		}()
	})
}

func (l *Limiter) cleanup() {
	now := l.clock.Now()
	l.mu.Lock()
	defer l.mu.Unlock()

	l.loginByID.prune(now, l.cfg.LoginLockout+ipWindow)
	l.loginByIP.prune(now, ipWindow)
	l.submitByID.prune(now, ipWindow)
	l.submitByIP.prune(now, ipWindow)
}

// SanitizeIdentifier masks an email or phone for logging.
func SanitizeIdentifier(identifier string) string {
	identifier = normalizeIdentifier(identifier)
	if local, domain, ok := strings.Cut(identifier, "@"); ok {
		if len(local) > 2 {
			return local[:2] + "***@" + domain
		}
		return "***@" + domain
	}
	if len(identifier) >= 4 {
		return "***" + identifier[len(identifier)-4:]
	}
	return "***"
}

func LogRateLimitExceeded(limitType, identifier, ip, reason string) {
	log.Warn().
		Str("event", "rate_limit_exceeded").
		Str("type", limitType).
		Str("identifier", SanitizeIdentifier(identifier)).
		Str("ip", ip).
		Str("reason", reason).
		Msg("Rate limit exceeded")
}
