package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/codr1/Fixturely/internal/config"
)

func withTestConfig(t *testing.T) {
	t.Helper()
	prevConfig := appConfig
	appConfig = &config.Config{}
	appConfig.App.SecretKey = "test-secret"
	t.Cleanup(func() {
		appConfig = prevConfig
	})
}

func TestSessionTokenFromRequestRejectsTamperedSignature(t *testing.T) {
	withTestConfig(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "token." + signToken("other")})
	if _, ok := sessionTokenFromRequest(req); ok {
		t.Fatal("expected tampered cookie to be rejected")
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "token." + signToken("token")})
	token, ok := sessionTokenFromRequest(req)
	if !ok || token != "token" {
		t.Fatalf("expected valid cookie, got %q %v", token, ok)
	}
}

func TestCreateSessionReplacesExistingSessions(t *testing.T) {
	withTestConfig(t)

	first := httptest.NewRecorder()
	if err := CreateSession(first, 77, SessionTypeLocal); err != nil {
		t.Fatalf("create session: %v", err)
	}
	second := httptest.NewRecorder()
	if err := CreateSession(second, 77, SessionTypeLocal); err != nil {
		t.Fatalf("create session: %v", err)
	}

	count := 0
	sessionMu.RLock()
	for _, session := range sessionStore {
		if session.UserID == 77 {
			count++
		}
	}
	sessionMu.RUnlock()
	if count != 1 {
		t.Fatalf("expected one session for the user, got %d", count)
	}
	clearExistingSessionsForUser(77)
}

func TestGetSessionDropsExpired(t *testing.T) {
	sessionMu.Lock()
	sessionStore["expired-token"] = sessionRecord{UserID: 5, ExpiresAt: time.Now().Add(-time.Minute)}
	sessionMu.Unlock()

	if _, ok := getSession("expired-token"); ok {
		t.Fatal("expected expired session to be rejected")
	}
	sessionMu.RLock()
	_, still := sessionStore["expired-token"]
	sessionMu.RUnlock()
	if still {
		t.Fatal("expected expired session to be deleted")
	}
}

func TestUserFromRequestWithoutCookie(t *testing.T) {
	user, err := UserFromRequest(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	if err != nil || user != nil {
		t.Fatalf("expected anonymous request, got %+v %v", user, err)
	}
}
