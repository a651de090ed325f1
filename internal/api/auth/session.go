package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/Fixturely/internal/api/authz"
	dbgen "github.com/codr1/Fixturely/internal/db/generated"
)

const (
	sessionCookieName      = "fixturely_session"
	authSessionTTL         = 8 * time.Hour
	sessionTokenBytes      = 32
	sessionCleanupInterval = 15 * time.Minute
	SessionTypeLocal       = "local"
	SessionTypeClerk       = "clerk"
	userStatusActive       = "active"
)

type sessionRecord struct {
	UserID      int64
	SessionType string
	ExpiresAt   time.Time
}

var (
	sessionMu sync.RWMutex
	// In-memory sessions do not survive a restart.
	sessionStore       = make(map[string]sessionRecord)
	sessionCleanupOnce sync.Once

	signingKeyOnce sync.Once
	signingKey     []byte
)

func isSecureCookie() bool {
	return appConfig == nil || appConfig.App.Environment != "development"
}

// CreateSession stores a new session for userID and sets the signed cookie.
// Existing sessions for the user are dropped.
func CreateSession(w http.ResponseWriter, userID int64, sessionType string) error {
	if w == nil {
		return errors.New("session requires response writer")
	}

	startSessionCleanup()
	clearExistingSessionsForUser(userID)

	token, err := newSessionToken()
	if err != nil {
		return err
	}

	expiresAt := time.Now().Add(authSessionTTL)
	sessionMu.Lock()
	sessionStore[token] = sessionRecord{
		UserID:      userID,
		SessionType: sessionType,
		ExpiresAt:   expiresAt,
	}
	sessionMu.Unlock()

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token + "." + signToken(token),
		Path:     "/",
		HttpOnly: true,
		Secure:   isSecureCookie(),
		SameSite: http.SameSiteLaxMode,
		Expires:  expiresAt,
		MaxAge:   int(authSessionTTL.Seconds()),
	})

	return nil
}

func ClearSession(w http.ResponseWriter, r *http.Request) {
	if r != nil {
		if token, ok := sessionTokenFromRequest(r); ok {
			deleteSession(token)
		}
	}
	ClearSessionCookie(w)
}

func ClearSessionCookie(w http.ResponseWriter) {
	if w == nil {
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   isSecureCookie(),
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
	})
}

// UserFromRequest resolves the caller from the session cookie. It returns nil
// without error for anonymous requests.
func UserFromRequest(w http.ResponseWriter, r *http.Request) (*authz.AuthUser, error) {
	return userFromSessionToken(w, r)
}

func userFromSessionToken(w http.ResponseWriter, r *http.Request) (*authz.AuthUser, error) {
	if r == nil {
		return nil, nil
	}

	startSessionCleanup()

	if _, err := r.Cookie(sessionCookieName); errors.Is(err, http.ErrNoCookie) {
		return nil, nil
	}

	token, ok := sessionTokenFromRequest(r)
	if !ok {
		ClearSessionCookie(w)
		return nil, nil
	}

	session, ok := getSession(token)
	if !ok {
		ClearSessionCookie(w)
		return nil, nil
	}

	if queries == nil {
		ClearSessionCookie(w)
		return nil, errors.New("auth queries not initialized")
	}

	user, err := queries.GetUserByID(r.Context(), session.UserID)
	if err != nil {
		deleteSession(token)
		ClearSessionCookie(w)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if user.Status != userStatusActive {
		deleteSession(token)
		ClearSessionCookie(w)
		return nil, nil
	}

	return toAuthUser(user, session.SessionType), nil
}

func toAuthUser(user dbgen.User, sessionType string) *authz.AuthUser {
	return &authz.AuthUser{
		ID:              user.ID,
		Email:           user.Email,
		FullName:        user.FullName,
		Role:            user.Role,
		SessionType:     sessionType,
		ManagedLeagueID: nullInt64Ptr(user.ManagedLeagueID),
		ManagedCupID:    nullInt64Ptr(user.ManagedCupID),
		ManagedTeamID:   nullInt64Ptr(user.ManagedTeamID),
	}
}

func nullInt64Ptr(value sql.NullInt64) *int64 {
	if !value.Valid {
		return nil
	}
	v := value.Int64
	return &v
}

// sessionTokenFromRequest returns the token when the cookie signature checks out.
func sessionTokenFromRequest(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return "", false
	}
	token, signature, ok := strings.Cut(cookie.Value, ".")
	if !ok || token == "" {
		return "", false
	}
	if !hmac.Equal([]byte(signature), []byte(signToken(token))) {
		return "", false
	}
	return token, true
}

func signToken(token string) string {
	mac := hmac.New(sha256.New, sessionSigningKey())
	_, _ = mac.Write([]byte(token))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// sessionSigningKey uses APP_SECRET_KEY when configured and a random
// per-process key otherwise.
func sessionSigningKey() []byte {
	if appConfig != nil && appConfig.App.SecretKey != "" {
		return []byte(appConfig.App.SecretKey)
	}
	signingKeyOnce.Do(func() {
		signingKey = make([]byte, sessionTokenBytes)
		if _, err := rand.Read(signingKey); err != nil {
			panic("session signing key: " + err.Error())
		}
		log.Warn().Msg("APP_SECRET_KEY not set; using an ephemeral session signing key")
	})
	return signingKey
}

func newSessionToken() (string, error) {
	token := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(token); err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(token), nil
}

func startSessionCleanup() {
	sessionCleanupOnce.Do(func() {
		go func() {
			ticker := time.NewTicker(sessionCleanupInterval)
			defer ticker.Stop()
			for range ticker.C {
				pruneExpiredSessions()
			}
		}()
	})
}

func pruneExpiredSessions() {
	now := time.Now()
	sessionMu.Lock()
	for token, session := range sessionStore {
		if session.ExpiresAt.Before(now) {
			delete(sessionStore, token)
		}
	}
	sessionMu.Unlock()
}

func clearExistingSessionsForUser(userID int64) {
	sessionMu.Lock()
	for token, session := range sessionStore {
		if session.UserID == userID {
			delete(sessionStore, token)
		}
	}
	sessionMu.Unlock()
}

func getSession(token string) (sessionRecord, bool) {
	sessionMu.RLock()
	session, ok := sessionStore[token]
	sessionMu.RUnlock()
	if !ok {
		return sessionRecord{}, false
	}

	if session.ExpiresAt.Before(time.Now()) {
		deleteSession(token)
		return sessionRecord{}, false
	}

	return session, true
}

func deleteSession(token string) {
	sessionMu.Lock()
	delete(sessionStore, token)
	sessionMu.Unlock()
}
