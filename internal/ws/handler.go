package ws

import (
	"context"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"go.uber.org/zap"

	"github.com/HerbHall/pitstop/internal/auth"
	"github.com/HerbHall/pitstop/internal/insight"
	"github.com/HerbHall/pitstop/pkg/analytics"
	"github.com/HerbHall/pitstop/pkg/plugin"
)

// Authorizer reports whether a role holds a permission. *auth.Service
// satisfies it.
type Authorizer interface {
	Authorized(ctx context.Context, role auth.Role, permission string) (bool, error)
}

// Handler serves the alert stream.
type Handler struct {
	hub         *Hub
	tokens      *auth.TokenService
	authz       Authorizer
	logger      *zap.Logger
	unsubscribe func()
	now         func() time.Time
}

// NewHandler creates the stream handler and subscribes it to alert events.
func NewHandler(tokens *auth.TokenService, authz Authorizer, bus plugin.Subscriber, logger *zap.Logger) *Handler {
	h := &Handler{
		hub:    NewHub(logger),
		tokens: tokens,
		authz:  authz,
		logger: logger,
		now:    time.Now,
	}
	if bus != nil {
		h.unsubscribe = bus.Subscribe(insight.TopicAlertRaised, h.onAlert)
	}
	return h
}

// RegisterRoutes registers the WebSocket route.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/ws/alerts", h.handleAlertStream)
}

// Close detaches the handler from the event bus.
func (h *Handler) Close() {
	if h.unsubscribe != nil {
		h.unsubscribe()
	}
}

// Hub exposes the client registry.
func (h *Handler) Hub() *Hub {
	return h.hub
}

func (h *Handler) onAlert(_ context.Context, event plugin.Event) {
	alert, ok := event.Payload.(analytics.Alert)
	if !ok {
		return
	}
	h.hub.Broadcast(Message{
		Type:      MessageAlertRaised,
		Timestamp: event.Timestamp,
		Data:      AlertData{Alert: alert},
	})
}

// handleAlertStream authenticates from the token query parameter, since
// browsers cannot set headers on WebSocket requests, then streams alerts.
func (h *Handler) handleAlertStream(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		http.Error(w, "missing token parameter", http.StatusUnauthorized)
		return
	}
	claims, err := h.tokens.ValidateAccessToken(token)
	if err != nil {
		http.Error(w, "invalid or expired token", http.StatusUnauthorized)
		return
	}
	ok, err := h.authz.Authorized(r.Context(), claims.Role, insight.PermissionView)
	if err != nil {
		h.logger.Error("permission lookup failed", zap.Error(err))
		http.Error(w, "authorization failed", http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		// The token, not the origin, authenticates the stream.
		InsecureSkipVerify: true,
	})
	if err != nil {
		h.logger.Error("websocket accept failed", zap.Error(err))
		return
	}

	client := newClient(conn, claims.UserID, h.logger)
	client.send <- Message{
		Type:      MessageHello,
		Timestamp: h.now(),
		Data:      HelloData{Username: claims.Username, Role: string(claims.Role)},
	}
	h.hub.Register(client)

	ctx := r.Context()
	done := make(chan struct{})
	go func() {
		client.writePump(ctx)
		close(done)
	}()

	client.readPump(ctx)

	h.hub.Unregister(client)
	conn.Close(websocket.StatusNormalClosure, "")
	<-done
}
