package live

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func startLiveServer(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()

	h := NewHub()
	prevHub := hub
	InitHandlers(h)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /ws/matches/{id}", HandleMatchSocket)
	mux.HandleFunc("GET /ws/divisions/{id}", HandleDivisionSocket)
	server := httptest.NewServer(mux)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = h.Run(ctx)
		close(done)
	}()

	t.Cleanup(func() {
		server.Close()
		cancel()
		<-done
		hub = prevHub
	})
	return h, server
}

func dial(t *testing.T, server *httptest.Server, path string) *websocket.Conn {
	t.Helper()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + path
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", path, err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func waitForRoomSize(t *testing.T, h *Hub, room string, want int) {
	t.Helper()

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if h.RoomSize(room) == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("expected %d clients in %s, got %d", want, room, h.RoomSize(room))
}

func TestBroadcastReachesOnlyRoomMembers(t *testing.T) {
	h, server := startLiveServer(t)

	matchConn := dial(t, server, "/ws/matches/7")
	divisionConn := dial(t, server, "/ws/divisions/3")
	waitForRoomSize(t, h, MatchRoom(7), 1)
	waitForRoomSize(t, h, DivisionRoom(3), 1)

	Publish(MatchRoom(7), MessageMatchUpdated, map[string]any{"homeScore": 2, "awayScore": 1})

	_ = matchConn.SetReadDeadline(time.Now().Add(time.Second))
	_, data, err := matchConn.ReadMessage()
	if err != nil {
		t.Fatalf("read message: %v", err)
	}
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("decode message: %v", err)
	}
	if msg.Type != MessageMatchUpdated || msg.Room != "match:7" {
		t.Fatalf("unexpected message %+v", msg)
	}

	_ = divisionConn.SetReadDeadline(time.Now().Add(100 * time.Millisecond))
	if _, _, err := divisionConn.ReadMessage(); err == nil {
		t.Fatal("expected division client to receive nothing")
	}
}

func TestClientLeavesRoomOnClose(t *testing.T) {
	h, server := startLiveServer(t)

	conn := dial(t, server, "/ws/matches/9")
	waitForRoomSize(t, h, MatchRoom(9), 1)

	_ = conn.Close()
	waitForRoomSize(t, h, MatchRoom(9), 0)
}

func TestBroadcastOnNilHubIsNoop(t *testing.T) {
	var h *Hub
	h.Broadcast(MatchRoom(1), MessageMatchUpdated, nil)
}

func TestSameOrigin(t *testing.T) {
	tests := []struct {
		origin string
		want   bool
	}{
		{origin: "", want: true},
		{origin: "http://example.com", want: true},
		{origin: "https://evil.test", want: false},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "http://example.com/ws/matches/1", nil)
		if tt.origin != "" {
			req.Header.Set("Origin", tt.origin)
		}
		if got := sameOrigin(req); got != tt.want {
			t.Fatalf("origin %q: expected %v, got %v", tt.origin, tt.want, got)
		}
	}
}

func TestHandlersRejectBadIDs(t *testing.T) {
	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ws/matches/abc", nil)
	req.SetPathValue("id", "abc")
	HandleMatchSocket(recorder, req)
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", recorder.Code)
	}
}
