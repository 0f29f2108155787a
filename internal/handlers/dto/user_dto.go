package dto

import (
	"github.com/rafabene/mediafeed-backend/internal/domain/entities"
	"github.com/rafabene/mediafeed-backend/internal/services"
)

// RegisterRequest representa a requisição de cadastro
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=3,max=72"`
}

// LoginForm é o formulário OAuth2 password usado no login
type LoginForm struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// TokenResponse é a resposta do login
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// EmailRequest é usado por forgot-password e request-verify-token
type EmailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest troca a senha com um token de reset
type ResetPasswordRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required,min=3,max=72"`
}

// VerifyRequest confirma o email com um token de verificação
type VerifyRequest struct {
	Token string `json:"token" binding:"required"`
}

// UpdateMeRequest representa a atualização do próprio usuário
type UpdateMeRequest struct {
	Email    *string `json:"email" binding:"omitempty,email"`
	Password *string `json:"password" binding:"omitempty,min=3,max=72"`
}

// UpdateUserRequest representa a atualização administrativa de um usuário
type UpdateUserRequest struct {
	Email       *string `json:"email" binding:"omitempty,email"`
	Password    *string `json:"password" binding:"omitempty,min=3,max=72"`
	IsActive    *bool   `json:"is_active"`
	IsSuperuser *bool   `json:"is_superuser"`
	IsVerified  *bool   `json:"is_verified"`
}

// ToInput converte a requisição para o input do serviço
func (r UpdateMeRequest) ToInput() services.UpdateUserInput {
	return services.UpdateUserInput{Email: r.Email, Password: r.Password}
}

// ToInput converte a requisição para o input do serviço
func (r UpdateUserRequest) ToInput() services.UpdateUserInput {
	return services.UpdateUserInput{
		Email:       r.Email,
		Password:    r.Password,
		IsActive:    r.IsActive,
		IsSuperuser: r.IsSuperuser,
		IsVerified:  r.IsVerified,
	}
}

// UserResponse representa a resposta de um usuário
type UserResponse struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	IsActive    bool   `json:"is_active"`
	IsSuperuser bool   `json:"is_superuser"`
	IsVerified  bool   `json:"is_verified"`
}

// ToUserResponse converte uma entidade User para UserResponse
func ToUserResponse(user *entities.User) UserResponse {
	return UserResponse{
		ID:          user.ID,
		Email:       user.Email.String(),
		IsActive:    user.IsActive,
		IsSuperuser: user.IsSuperuser,
		IsVerified:  user.IsVerified,
	}
}
