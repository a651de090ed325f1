package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/codr1/Fixturely/internal/api/authz"
	"github.com/codr1/Fixturely/internal/cognito"
	"github.com/codr1/Fixturely/internal/config"
	"github.com/codr1/Fixturely/internal/db"
	"github.com/codr1/Fixturely/internal/testutil"
)

type fakeProvisioner struct {
	created  []cognito.NewUser
	disabled []string
	enabled  []string
	err      error
}

func (p *fakeProvisioner) CreateUser(ctx context.Context, user cognito.NewUser) error {
	if p.err != nil {
		return p.err
	}
	p.created = append(p.created, user)
	return nil
}

func (p *fakeProvisioner) DisableUser(ctx context.Context, email string) error {
	p.disabled = append(p.disabled, email)
	return nil
}

func (p *fakeProvisioner) EnableUser(ctx context.Context, email string) error {
	p.enabled = append(p.enabled, email)
	return nil
}

func setupAuthTest(t *testing.T, p UserProvisioner) *db.DB {
	t.Helper()

	database := testutil.NewTestDB(t)

	prevConfig := appConfig
	prevQueries := queries
	prevLimiter := limiter
	prevProvisioner := provisioner
	t.Cleanup(func() {
		if limiter != nil && limiter != prevLimiter {
			limiter.Close()
		}
		appConfig = prevConfig
		queries = prevQueries
		limiter = prevLimiter
		provisioner = prevProvisioner
	})

	cfg := &config.Config{}
	cfg.App.Environment = "development"
	cfg.App.SecretKey = "test-secret-key"
	InitHandlers(database.Queries, cfg, p)

	hash, err := HashPassword("correct-horse")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	_, err = database.ExecContext(context.Background(),
		`INSERT INTO users (id, email, password_hash, full_name, phone, role, status)
		 VALUES (1, 'admin@example.com', ?, 'Site Admin', '+12125551234', 'admin', 'active')`,
		hash,
	)
	if err != nil {
		t.Fatalf("insert admin: %v", err)
	}
	_, err = database.ExecContext(context.Background(),
		`INSERT INTO users (id, email, password_hash, full_name, role, status)
		 VALUES (2, 'disabled@example.com', ?, 'Disabled Ref', 'match_official', 'disabled')`,
		hash,
	)
	if err != nil {
		t.Fatalf("insert disabled user: %v", err)
	}

	return database
}

func loginRequestForm(identifier, password string) *http.Request {
	form := url.Values{}
	form.Set("identifier", identifier)
	form.Set("password", password)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.RemoteAddr = "203.0.113.5:1234"
	return req
}

func adminContext(r *http.Request) *http.Request {
	return r.WithContext(authz.ContextWithUser(r.Context(), &authz.AuthUser{ID: 1, Role: authz.RoleAdmin}))
}

func TestLoginCreatesSession(t *testing.T) {
	setupAuthTest(t, nil)

	recorder := httptest.NewRecorder()
	HandleLogin(recorder, loginRequestForm("Admin@Example.com", "correct-horse"))
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", recorder.Code, recorder.Body.String())
	}

	var cookie *http.Cookie
	for _, c := range recorder.Result().Cookies() {
		if c.Name == sessionCookieName {
			cookie = c
		}
	}
	if cookie == nil || cookie.Value == "" {
		t.Fatal("expected session cookie")
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.AddCookie(cookie)
	user, err := UserFromRequest(httptest.NewRecorder(), req)
	if err != nil {
		t.Fatalf("user from request: %v", err)
	}
	if user == nil || user.ID != 1 || user.Role != authz.RoleAdmin {
		t.Fatalf("unexpected session user %+v", user)
	}
	if user.SessionType != SessionTypeLocal {
		t.Fatalf("expected local session, got %q", user.SessionType)
	}
}

func TestLoginByPhone(t *testing.T) {
	setupAuthTest(t, nil)

	recorder := httptest.NewRecorder()
	HandleLogin(recorder, loginRequestForm("(212) 555-1234", "correct-horse"))
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	setupAuthTest(t, nil)

	tests := []struct {
		name       string
		identifier string
		password   string
	}{
		{name: "wrong password", identifier: "admin@example.com", password: "nope"},
		{name: "unknown user", identifier: "ghost@example.com", password: "correct-horse"},
		{name: "disabled user", identifier: "disabled@example.com", password: "correct-horse"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			HandleLogin(recorder, loginRequestForm(tt.identifier, tt.password))
			if recorder.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", recorder.Code)
			}
		})
	}
}

func TestLoginLocksOutAfterRepeatedFailures(t *testing.T) {
	setupAuthTest(t, nil)

	for i := 0; i < 5; i++ {
		recorder := httptest.NewRecorder()
		HandleLogin(recorder, loginRequestForm("admin@example.com", "wrong"))
		if recorder.Code != http.StatusUnauthorized {
			t.Fatalf("attempt %d: expected 401, got %d", i+1, recorder.Code)
		}
	}

	recorder := httptest.NewRecorder()
	HandleLogin(recorder, loginRequestForm("admin@example.com", "correct-horse"))
	if recorder.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after lockout, got %d", recorder.Code)
	}
	if recorder.Header().Get("Retry-After") == "" {
		t.Fatal("expected Retry-After header")
	}
}

func TestCreateUserRequiresAdmin(t *testing.T) {
	setupAuthTest(t, nil)

	body := `{"email":"ref@example.com","fullName":"Ref","role":"match_official"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/users", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(authz.ContextWithUser(req.Context(), &authz.AuthUser{ID: 9, Role: authz.RoleLeagueAdmin}))

	recorder := httptest.NewRecorder()
	HandleCreateUser(recorder, req)
	if recorder.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", recorder.Code)
	}
}

func TestCreateUserProvisionsIdentity(t *testing.T) {
	p := &fakeProvisioner{}
	database := setupAuthTest(t, p)
	if _, err := database.ExecContext(context.Background(), "INSERT INTO leagues (id, name) VALUES (5, 'Premier')"); err != nil {
		t.Fatalf("insert league: %v", err)
	}

	body := `{"email":"LeagueBoss@example.com","fullName":"League Boss","phone":"555-123-4567","role":"league_admin","password":"long-enough-pass","managedLeagueId":5,"managedCupId":3}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/users", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	HandleCreateUser(recorder, adminContext(req))

	if recorder.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", recorder.Code, recorder.Body.String())
	}
	var resp userResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Email != "leagueboss@example.com" || resp.Phone != "+15551234567" {
		t.Fatalf("unexpected normalized fields %+v", resp)
	}
	if resp.ManagedLeagueID == nil || *resp.ManagedLeagueID != 5 || resp.ManagedCupID != nil {
		t.Fatalf("expected only league scope, got %+v", resp)
	}
	if len(p.created) != 1 || p.created[0].Role != authz.RoleLeagueAdmin {
		t.Fatalf("expected identity to be provisioned, got %+v", p.created)
	}
}

func TestCreateUserRollsBackOnProvisionFailure(t *testing.T) {
	p := &fakeProvisioner{err: errors.New("pool unavailable")}
	database := setupAuthTest(t, p)

	body := `{"email":"ref@example.com","fullName":"Ref","role":"match_official"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/users", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	HandleCreateUser(recorder, adminContext(req))

	if recorder.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", recorder.Code)
	}
	if _, err := database.Queries.GetUserByEmail(context.Background(), "ref@example.com"); err == nil {
		t.Fatal("expected local user to be removed")
	}
}

func TestCreateUserValidation(t *testing.T) {
	setupAuthTest(t, nil)

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{name: "bad email", body: `{"email":"nope","fullName":"X","role":"admin"}`, status: http.StatusBadRequest},
		{name: "bad role", body: `{"email":"x@example.com","fullName":"X","role":"owner"}`, status: http.StatusBadRequest},
		{name: "missing scope", body: `{"email":"x@example.com","fullName":"X","role":"cup_admin"}`, status: http.StatusBadRequest},
		{name: "short password", body: `{"email":"x@example.com","fullName":"X","role":"admin","password":"short"}`, status: http.StatusBadRequest},
		{name: "unknown team", body: `{"email":"x@example.com","fullName":"X","role":"team_manager","managedTeamId":99}`, status: http.StatusNotFound},
		{name: "duplicate email", body: `{"email":"admin@example.com","fullName":"X","role":"admin"}`, status: http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/users", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			recorder := httptest.NewRecorder()
			HandleCreateUser(recorder, adminContext(req))
			if recorder.Code != tt.status {
				t.Fatalf("expected %d, got %d: %s", tt.status, recorder.Code, recorder.Body.String())
			}
		})
	}
}

func TestUpdateUserStatusSyncsIdentity(t *testing.T) {
	p := &fakeProvisioner{}
	setupAuthTest(t, p)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/admin/users/2/status", strings.NewReader(`{"status":"active"}`))
	req.Header.Set("Content-Type", "application/json")
	req.SetPathValue("id", "2")
	recorder := httptest.NewRecorder()
	HandleUpdateUserStatus(recorder, adminContext(req))

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}
	if len(p.enabled) != 1 || p.enabled[0] != "disabled@example.com" {
		t.Fatalf("expected identity to be enabled, got %v", p.enabled)
	}

	req = httptest.NewRequest(http.MethodPut, "/api/v1/admin/users/1/status", strings.NewReader(`{"status":"disabled"}`))
	req.Header.Set("Content-Type", "application/json")
	req.SetPathValue("id", "1")
	recorder = httptest.NewRecorder()
	HandleUpdateUserStatus(recorder, adminContext(req))
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected self-disable to be rejected, got %d", recorder.Code)
	}
}
