package handler

import (
	"log/slog"
	"net/http"
	"strings"

	gorillaws "github.com/gorilla/websocket"

	"go-tms-api/internal/middleware"
	"go-tms-api/internal/websocket"
)

// EventsHandler upgrades authenticated requests to a websocket that streams
// entity change events.
type EventsHandler struct {
	hub      *websocket.Hub
	upgrader gorillaws.Upgrader
}

func NewEventsHandler(hub *websocket.Hub, allowedOrigins []string) *EventsHandler {
	return &EventsHandler{
		hub: hub,
		upgrader: gorillaws.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
	}
}

func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.PrincipalFromContext(r)

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		slog.Warn("websocket upgrade failed", "error", err)
		return
	}

	userID := ""
	if principal != nil {
		userID = principal.UserID
	}

	websocket.NewClient(h.hub, conn, userID).Serve(r.Context())
}

// originChecker accepts requests without an Origin header (non-browser
// clients) and browser requests from an allowed origin.
func originChecker(allowed []string) func(r *http.Request) bool {
	set := make(map[string]struct{}, len(allowed))
	wildcard := len(allowed) == 0
	for _, origin := range allowed {
		if origin == "*" {
			wildcard = true
		}
		set[strings.ToLower(strings.TrimSuffix(origin, "/"))] = struct{}{}
	}

	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || wildcard {
			return true
		}
		_, ok := set[strings.ToLower(origin)]
		return ok
	}
}
