//go:build integration
// +build integration

package authz_test

// NOTE: Tests cannot use t.Parallel() due to shared package state.

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/codr1/Fixturely/internal/api/authz"
	"github.com/codr1/Fixturely/internal/api/leagues"
	"github.com/codr1/Fixturely/internal/db"
	"github.com/codr1/Fixturely/internal/testutil"
)

func setupAuthzIntegrationTest(t *testing.T) *db.DB {
	t.Helper()

	database := testutil.NewTestDB(t)

	testutil.MustExec(t, database,
		`INSERT INTO leagues (id, name, season) VALUES (1, 'North League', '2026')`,
		`INSERT INTO leagues (id, name, season) VALUES (2, 'South League', '2026')`,
	)

	leagues.InitHandlers(database, nil, nil)

	return database
}

func TestLeagueAccessIntegration(t *testing.T) {
	setupAuthzIntegrationTest(t)

	cases := []struct {
		name       string
		user       *authz.AuthUser
		leagueID   int64
		wantStatus int
	}{
		{
			name:       "league admin managing league allowed",
			user:       &authz.AuthUser{ID: 1, Role: authz.RoleLeagueAdmin, ManagedLeagueID: int64Ptr(1)},
			leagueID:   1,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "league admin of another league forbidden",
			user:       &authz.AuthUser{ID: 2, Role: authz.RoleLeagueAdmin, ManagedLeagueID: int64Ptr(1)},
			leagueID:   2,
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "team manager forbidden",
			user:       &authz.AuthUser{ID: 3, Role: authz.RoleTeamManager, ManagedTeamID: int64Ptr(7)},
			leagueID:   1,
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "admin allowed everywhere",
			user:       &authz.AuthUser{ID: 4, Role: authz.RoleAdmin},
			leagueID:   2,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "unauthenticated rejected",
			user:       nil,
			leagueID:   1,
			wantStatus: http.StatusUnauthorized,
		},
	}

	for i, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			body := fmt.Sprintf(`{"name":"Division %d","level":1}`, i)
			req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/v1/leagues/%d/divisions", tc.leagueID), strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			req.SetPathValue("id", fmt.Sprint(tc.leagueID))
			if tc.user != nil {
				req = req.WithContext(authz.ContextWithUser(req.Context(), tc.user))
			}
			recorder := httptest.NewRecorder()
			leagues.HandleDivisionCreate(recorder, req)
			if recorder.Code != tc.wantStatus {
				t.Fatalf("status: got %d want %d (body %q)", recorder.Code, tc.wantStatus, recorder.Body.String())
			}
		})
	}
}

func int64Ptr(value int64) *int64 {
	return &value
}
