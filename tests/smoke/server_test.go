//go:build smoke

package smoke

import (
	"bytes"
	"database/sql"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/codr1/Fixturely/internal/testutil"
)

// serverProcess is a built cmd/server running against a temp config.
type serverProcess struct {
	baseURL string
	stdout  bytes.Buffer
	stderr  bytes.Buffer
	done    chan struct{}
	waitErr error
}

func startServer(t *testing.T, dbPath string) *serverProcess {
	t.Helper()

	repoRoot := findRepoRoot(t)
	tempDir := t.TempDir()

	binPath := filepath.Join(tempDir, "fixturely-server")
	buildCmd := exec.Command("go", "build", "-o", binPath, "./cmd/server")
	buildCmd.Dir = repoRoot
	buildOutput, err := buildCmd.CombinedOutput()
	if err != nil {
		t.Fatalf("failed to build server: %v\n%s", err, buildOutput)
	}

	port := reservePort(t)
	configPath := filepath.Join(tempDir, "app.yaml")
	configBody := fmt.Sprintf(`app:
  name: "Fixturely"
  environment: "development"
  port: %d
  base_url: "http://localhost:%d"

database:
  driver: "sqlite"
  filename: "%s"

standings:
  refresh_schedule: "*/5 * * * *"

features:
  enable_live: true
  enable_scheduler: false
  enable_debug: true
`, port, port, filepath.ToSlash(dbPath))

	if err := os.WriteFile(configPath, []byte(configBody), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	proc := &serverProcess{
		baseURL: fmt.Sprintf("http://localhost:%d", port),
		done:    make(chan struct{}),
	}
	cmd := exec.Command(binPath, "-config", configPath)
	cmd.Dir = tempDir
	cmd.Env = append(os.Environ(), "APP_SECRET_KEY=test-secret-key-for-smoke-tests-only")
	cmd.Stdout = &proc.stdout
	cmd.Stderr = &proc.stderr

	if err := cmd.Start(); err != nil {
		t.Fatalf("failed to start server: %v", err)
	}
	go func() {
		proc.waitErr = cmd.Wait()
		close(proc.done)
	}()

	t.Cleanup(func() {
		if cmd.Process == nil {
			return
		}
		_ = cmd.Process.Signal(os.Interrupt)
		select {
		case <-proc.done:
			return
		case <-time.After(5 * time.Second):
		}
		_ = cmd.Process.Kill()
		select {
		case <-proc.done:
		case <-time.After(5 * time.Second):
			t.Logf("server process did not exit after kill")
		}
	})

	proc.waitHealthy(t)
	return proc
}

func (p *serverProcess) waitHealthy(t *testing.T) {
	t.Helper()

	client := &http.Client{Timeout: 500 * time.Millisecond}
	deadline := time.Now().Add(10 * time.Second)

	for {
		select {
		case <-p.done:
			t.Fatalf("server exited before health check: %v\nstdout:\n%s\nstderr:\n%s", p.waitErr, p.stdout.String(), p.stderr.String())
		default:
		}

		resp, err := client.Get(p.baseURL + "/health")
		if err == nil {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}

		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for health check\nstdout:\n%s\nstderr:\n%s", p.stdout.String(), p.stderr.String())
		}

		time.Sleep(100 * time.Millisecond)
	}
}

func TestServerStartup(t *testing.T) {
	proc := startServer(t, filepath.Join(t.TempDir(), "db", "smoke.db"))

	select {
	case <-proc.done:
		t.Fatalf("server exited unexpectedly: %v\nstdout:\n%s\nstderr:\n%s", proc.waitErr, proc.stdout.String(), proc.stderr.String())
	default:
	}
}

func reservePort(t *testing.T) int {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to reserve port: %v", err)
	}
	defer listener.Close()

	return listener.Addr().(*net.TCPAddr).Port
}

func findRepoRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}

	for i := 0; i < 6; i++ {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	t.Fatal("failed to locate repo root with go.mod")
	return ""
}

func TestMigrationsApplied(t *testing.T) {
	db := testutil.NewTestDB(t)

	expectedTables := []string{
		"leagues",
		"divisions",
		"teams",
		"cups",
		"users",
		"players",
		"matches",
		"match_events",
		"division_standings",
		"cup_groups",
		"cup_teams",
		"cup_players",
		"cup_matches",
		"cup_group_standings",
		"transfers",
		"announcements",
		"sponsorships",
	}

	for _, table := range expectedTables {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name = ?",
			table,
		).Scan(&name)
		if err == sql.ErrNoRows {
			t.Fatalf("missing expected table %q after migrations", table)
		}
		if err != nil {
			t.Fatalf("query table %q existence: %v", table, err)
		}
	}
}

func TestForeignKeyIntegrity(t *testing.T) {
	db := testutil.NewTestDB(t)

	var foreignKeysEnabled int
	if err := db.QueryRow("PRAGMA foreign_keys;").Scan(&foreignKeysEnabled); err != nil {
		t.Fatalf("query foreign_keys pragma: %v", err)
	}
	if foreignKeysEnabled != 1 {
		t.Fatalf("expected foreign_keys pragma enabled, got %d", foreignKeysEnabled)
	}

	_, err := db.Exec(`INSERT INTO divisions (league_id, name) VALUES (9999, 'Orphan Division')`)
	if err == nil {
		t.Fatal("expected foreign key constraint failure for invalid league_id")
	}
}
