package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/rafabene/mediafeed-backend/internal/domain/ports"
	"github.com/rafabene/mediafeed-backend/internal/infrastructure/events"
)

// FeedStreamHandler entrega eventos do feed por websocket
type FeedStreamHandler struct {
	hub      *events.Hub
	upgrader websocket.Upgrader
	logger   ports.Logger
}

// NewFeedStreamHandler cria o handler; allowedOrigins segue o formato de CORS_ALLOWED_ORIGINS
func NewFeedStreamHandler(hub *events.Hub, allowedOrigins string, logger ports.Logger) *FeedStreamHandler {
	return &FeedStreamHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
		logger: logger,
	}
}

func originChecker(allowedOrigins string) func(r *http.Request) bool {
	allowed := make(map[string]struct{})
	for _, o := range strings.Split(allowedOrigins, ",") {
		o = strings.TrimSpace(o)
		if o == "*" {
			return func(*http.Request) bool { return true }
		}
		if o != "" {
			allowed[o] = struct{}{}
		}
	}

	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := allowed[origin]
		return ok
	}
}

// Stream godoc
// @Summary      Feed ao vivo (websocket)
// @Description  Envia {"type":"post.created","post":{...}} e {"type":"post.deleted","post_id":"..."}
// @Tags         posts
// @Param        access_token  query  string  false  "Token de acesso para clientes sem header Authorization"
// @Success      101
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /feed/ws [get]
func (h *FeedStreamHandler) Stream(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade já respondeu ao cliente
		h.logger.Debug("websocket upgrade failed", "error", err)
		return
	}

	h.hub.Serve(c.Request.Context(), conn)
}
