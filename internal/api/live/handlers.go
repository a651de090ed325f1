package live

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/codr1/Fixturely/internal/api/apiutil"
)

var (
	hub      *Hub
	upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     sameOrigin,
	}
)

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(h *Hub) {
	hub = h
}

// Publish broadcasts on the shared hub. It is a no-op when live updates are disabled.
func Publish(room, messageType string, payload any) {
	hub.Broadcast(room, messageType, payload)
}

// GET /ws/matches/{id}
func HandleMatchSocket(w http.ResponseWriter, r *http.Request) {
	matchID, err := apiutil.PathID(r, "id")
	if err != nil {
		http.Error(w, "Invalid match ID", http.StatusBadRequest)
		return
	}
	serveRoom(w, r, MatchRoom(matchID))
}

// GET /ws/divisions/{id}
func HandleDivisionSocket(w http.ResponseWriter, r *http.Request) {
	divisionID, err := apiutil.PathID(r, "id")
	if err != nil {
		http.Error(w, "Invalid division ID", http.StatusBadRequest)
		return
	}
	serveRoom(w, r, DivisionRoom(divisionID))
}

// GET /ws/cups/{id}
func HandleCupSocket(w http.ResponseWriter, r *http.Request) {
	cupID, err := apiutil.PathID(r, "id")
	if err != nil {
		http.Error(w, "Invalid cup ID", http.StatusBadRequest)
		return
	}
	serveRoom(w, r, CupRoom(cupID))
}

func serveRoom(w http.ResponseWriter, r *http.Request, room string) {
	logger := log.Ctx(r.Context())

	if hub == nil {
		http.Error(w, "Live updates are disabled", http.StatusServiceUnavailable)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied to the client.
		logger.Warn().Err(err).Str("room", room).Msg("Failed to upgrade live connection")
		return
	}

	c, ok := hub.register(conn, room)
	if !ok {
		_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
		_ = conn.Close()
		return
	}

	go c.writePump()
	go c.readPump()
}

// sameOrigin accepts requests without an Origin header and those whose
// origin host matches the request host.
func sameOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	parsed, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return strings.EqualFold(parsed.Host, r.Host)
}
