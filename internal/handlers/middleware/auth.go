package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/mediafeed-backend/internal/domain/entities"
	domainerrors "github.com/rafabene/mediafeed-backend/internal/domain/errors"
	"github.com/rafabene/mediafeed-backend/internal/domain/ports"
	"github.com/rafabene/mediafeed-backend/internal/handlers/dto"
)

// CurrentUserContextKey guarda o usuário autenticado no contexto do Gin
const CurrentUserContextKey = "current_user"

// Authenticator resolve o usuário dono de um token de acesso
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*entities.User, error)
}

// AuthMiddleware protege rotas com tokens Bearer
type AuthMiddleware struct {
	authenticator Authenticator
	enabled       bool
	logger        ports.Logger
}

// NewAuthMiddleware cria o middleware; com enabled=false todas as rotas ficam abertas
func NewAuthMiddleware(authenticator Authenticator, enabled bool, logger ports.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		authenticator: authenticator,
		enabled:       enabled,
		logger:        logger,
	}
}

// RequireAuth exige um usuário ativo e o coloca no contexto
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !m.enabled {
			c.Next()
			return
		}

		token := bearerToken(c)
		if token == "" {
			unauthorized(c)
			return
		}

		user, err := m.authenticator.Authenticate(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, domainerrors.ErrUnauthorized) {
				unauthorized(c)
				return
			}
			m.logger.Error("failed to authenticate request", "error", err)
			dto.AbortWithProblem(c, dto.InternalErrorResponseI18n(c))
			return
		}

		c.Set(CurrentUserContextKey, user)
		c.Next()
	}
}

// RequireSuperuser deve vir depois de RequireAuth
func (m *AuthMiddleware) RequireSuperuser() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			unauthorized(c)
			return
		}
		if !user.CanManageUsers() {
			dto.AbortWithProblem(c, dto.ForbiddenErrorResponseI18n(c))
			return
		}
		c.Next()
	}
}

// CurrentUser retorna o usuário autenticado ou nil
func CurrentUser(c *gin.Context) *entities.User {
	value, ok := c.Get(CurrentUserContextKey)
	if !ok {
		return nil
	}
	user, _ := value.(*entities.User)
	return user
}

// bearerToken lê o header Authorization ou, para websockets, o parâmetro access_token
func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if scheme, token, ok := strings.Cut(header, " "); ok && strings.EqualFold(scheme, "Bearer") {
		return strings.TrimSpace(token)
	}
	return c.Query("access_token")
}

func unauthorized(c *gin.Context) {
	c.Header("WWW-Authenticate", "Bearer")
	dto.AbortWithProblem(c, dto.UnauthorizedErrorResponseI18n(c))
}
