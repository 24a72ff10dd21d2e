package realtime

import (
	"context"
	"encoding/json/v2"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

const (
	// writeWait bounds how long a single frame write may take.
	writeWait = 10 * time.Second
	// pongWait is how long we wait for any client traffic before
	// treating the connection as dead.
	pongWait = 60 * time.Second
	// pingPeriod must be shorter than pongWait so pings arrive in time.
	pingPeriod = (pongWait * 9) / 10
)

// WishlistFinder resolves a public wishlist ID to its topic. Returning
// an error rejects the connection before the upgrade.
type WishlistFinder interface {
	WishlistExists(ctx context.Context, publicID string) (bool, error)
}

// Handler upgrades GET /ws/wishlists/{publicId} to a websocket and
// streams wishlist updates until the client goes away.
type Handler struct {
	registry *Registry
	finder   WishlistFinder
	logger   *slog.Logger
	upgrader websocket.Upgrader
}

// NewHandler creates a websocket handler. Connections are accepted
// only from the configured origins; an empty list allows all origins,
// which is intended for development.
func NewHandler(registry *Registry, finder WishlistFinder, logger *slog.Logger, allowedOrigins []string) *Handler {
	return &Handler{
		registry: registry,
		finder:   finder,
		logger:   logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				if len(allowedOrigins) == 0 {
					return true
				}
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				return slices.Contains(allowedOrigins, origin)
			},
		},
	}
}

// ServeHTTP handles the subscriber socket lifecycle.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	publicID := chi.URLParam(r, "publicId")
	if publicID == "" {
		http.Error(w, "missing wishlist id", http.StatusBadRequest)
		return
	}

	exists, err := h.finder.WishlistExists(r.Context(), publicID)
	if err != nil {
		h.logger.Error("wishlist lookup failed",
			slog.String("public_id", publicID),
			slog.String("error", err.Error()))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if !exists {
		http.Error(w, "wishlist not found", http.StatusNotFound)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the error response.
		h.logger.Warn("websocket upgrade failed", slog.String("error", err.Error()))
		return
	}

	sub, err := h.registry.Subscribe(publicID)
	if err != nil {
		h.logger.Error("failed to register subscriber", slog.String("error", err.Error()))
		conn.Close()
		return
	}

	connLogger := h.logger.With(
		slog.String("subscriber_id", sub.ID),
		slog.String("topic", publicID))
	connLogger.Debug("websocket subscriber connected")

	// The read loop owns the connection teardown. It discards inbound
	// frames (clients only listen) but keeps the read deadline fresh
	// so dead peers are detected.
	go h.readLoop(conn, sub, connLogger)

	h.writeLoop(conn, sub, connLogger)
}

func (h *Handler) readLoop(conn *websocket.Conn, sub *Subscriber, logger *slog.Logger) {
	defer h.registry.Unsubscribe(sub)

	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Debug("subscriber read error", slog.String("error", err.Error()))
			}
			return
		}
	}
}

func (h *Handler) writeLoop(conn *websocket.Conn, sub *Subscriber, logger *slog.Logger) {
	pingTicker := time.NewTicker(pingPeriod)
	defer func() {
		pingTicker.Stop()
		conn.Close()
	}()

	for {
		select {
		case msg, ok := <-sub.Messages:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Registry closed the channel (unsubscribe or shutdown).
				_ = conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}

			payload, err := json.Marshal(msg)
			if err != nil {
				logger.Error("failed to encode broadcast", slog.String("error", err.Error()))
				continue
			}
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				logger.Debug("subscriber write failed", slog.String("error", err.Error()))
				return
			}

		case <-pingTicker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
