package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/mediafeed-backend/internal/domain/ports"
	"github.com/rafabene/mediafeed-backend/internal/handlers/dto"
	"github.com/rafabene/mediafeed-backend/internal/services"
)

// AuthHandler expõe registro, login e os fluxos de reset e verificação
type AuthHandler struct {
	authService *services.AuthService
	logger      ports.Logger
}

// NewAuthHandler cria um novo AuthHandler
func NewAuthHandler(authService *services.AuthService, logger ports.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// Register godoc
// @Summary      Cadastra um usuário
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      dto.RegisterRequest  true  "Credenciais"
// @Success      201  {object}  dto.UserResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.authService.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}

// Login godoc
// @Summary      Emite um token de acesso
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        username  formData  string  true  "Email"
// @Param        password  formData  string  true  "Senha"
// @Success      200  {object}  dto.TokenResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /auth/jwt/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var form dto.LoginForm
	if err := c.ShouldBind(&form); err != nil {
		respondBindError(c, err)
		return
	}

	token, err := h.authService.Login(c.Request.Context(), form.Username, form.Password)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.TokenResponse{AccessToken: token, TokenType: "bearer"})
}

// Logout godoc
// @Summary      Encerra a sessão (tokens JWT expiram sozinhos)
// @Tags         auth
// @Success      204
// @Failure      401  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /auth/jwt/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// ForgotPassword godoc
// @Summary      Gera um token de reset de senha
// @Tags         auth
// @Accept       json
// @Param        request  body  dto.EmailRequest  true  "Email"
// @Success      202
// @Router       /auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req dto.EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if _, err := h.authService.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.Status(http.StatusAccepted)
}

// ResetPassword godoc
// @Summary      Troca a senha com um token de reset
// @Tags         auth
// @Accept       json
// @Param        request  body  dto.ResetPasswordRequest  true  "Token e nova senha"
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.authService.ResetPassword(c.Request.Context(), req.Token, req.Password); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.Status(http.StatusOK)
}

// RequestVerifyToken godoc
// @Summary      Gera um token de verificação de email
// @Tags         auth
// @Accept       json
// @Param        request  body  dto.EmailRequest  true  "Email"
// @Success      202
// @Router       /auth/request-verify-token [post]
func (h *AuthHandler) RequestVerifyToken(c *gin.Context) {
	var req dto.EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if _, err := h.authService.RequestVerify(c.Request.Context(), req.Email); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.Status(http.StatusAccepted)
}

// Verify godoc
// @Summary      Confirma o email com um token de verificação
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      dto.VerifyRequest  true  "Token"
// @Success      200  {object}  dto.UserResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /auth/verify [post]
func (h *AuthHandler) Verify(c *gin.Context) {
	var req dto.VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.authService.Verify(c.Request.Context(), req.Token)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}
