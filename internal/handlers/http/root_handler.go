package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Root godoc
// @Summary      Saudação
// @Tags         root
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       / [get]
func Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"Hello": "World"})
}

// ReadinessCheck verifica uma dependência externa
type ReadinessCheck func(ctx context.Context) error

// HealthHandler expõe liveness e readiness
type HealthHandler struct {
	env   string
	ready ReadinessCheck
}

// NewHealthHandler cria um novo HealthHandler
func NewHealthHandler(env string, ready ReadinessCheck) *HealthHandler {
	return &HealthHandler{env: env, ready: ready}
}

// Health responde enquanto o processo estiver de pé
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"env":    h.env,
	})
}

// Ready verifica o banco antes de aceitar tráfego
func (h *HealthHandler) Ready(c *gin.Context) {
	if h.ready != nil {
		if err := h.ready(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unavailable",
				"error":  err.Error(),
			})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
