//go:build smoke

package smoke

import (
	"encoding/json"
	"net/http"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/codr1/Fixturely/internal/db"
	"github.com/codr1/Fixturely/internal/testutil"
)

func seedLeagueDB(t *testing.T, dbPath string) {
	t.Helper()

	database, err := db.New(dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer database.Close()

	testutil.MustExec(t, database,
		`INSERT INTO leagues (id, name, season) VALUES (1, 'Sunday League', '2026')`,
		`INSERT INTO divisions (id, league_id, name, level) VALUES (1, 1, 'Premier', 1)`,
		`INSERT INTO teams (division_id, name, short_name) VALUES (1, 'Rovers', 'ROV'), (1, 'United', 'UTD')`,
	)
}

func TestPublicLeagueEndpointsSmoke(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "db", "smoke.db")
	seedLeagueDB(t, dbPath)
	proc := startServer(t, dbPath)

	client := &http.Client{Timeout: 2 * time.Second}

	resp, err := client.Get(proc.baseURL + "/api/v1/leagues")
	if err != nil {
		t.Fatalf("list leagues: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list leagues status: got %d want %d", resp.StatusCode, http.StatusOK)
	}
	var payload struct {
		Leagues []struct {
			ID   int64  `json:"id"`
			Name string `json:"name"`
		} `json:"leagues"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode leagues: %v", err)
	}
	if len(payload.Leagues) != 1 || payload.Leagues[0].Name != "Sunday League" {
		t.Fatalf("unexpected leagues payload: %+v", payload.Leagues)
	}

	searchResp, err := client.Get(proc.baseURL + "/api/v1/search?q=rov")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	defer searchResp.Body.Close()
	if searchResp.StatusCode != http.StatusOK {
		t.Fatalf("search status: got %d want %d", searchResp.StatusCode, http.StatusOK)
	}

	dashResp, err := client.Get(proc.baseURL + "/api/v1/dashboard")
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	defer dashResp.Body.Close()
	if dashResp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("anonymous dashboard status: got %d want %d", dashResp.StatusCode, http.StatusUnauthorized)
	}

	req, err := http.NewRequest(http.MethodPost, proc.baseURL+"/api/v1/leagues", strings.NewReader(`{"name":"Nope"}`))
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	createResp, err := client.Do(req)
	if err != nil {
		t.Fatalf("create league: %v", err)
	}
	defer createResp.Body.Close()
	if createResp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("anonymous create status: got %d want %d", createResp.StatusCode, http.StatusUnauthorized)
	}
}
