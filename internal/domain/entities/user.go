package entities

import (
	"errors"
	"time"

	"github.com/rafabene/mediafeed-backend/internal/domain/valueobjects"
)

var (
	ErrInvalidUserData = errors.New("invalid user data")
)

// User representa uma conta autenticável
type User struct {
	ID             string
	Email          valueobjects.Email
	HashedPassword string
	IsActive       bool
	IsSuperuser    bool
	IsVerified     bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewUser cria um usuário ativo e não verificado
func NewUser(email valueobjects.Email, hashedPassword string) *User {
	now := time.Now().UTC()
	return &User{
		Email:          email,
		HashedPassword: hashedPassword,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// CanAuthenticate verifica se o usuário pode obter tokens
func (u *User) CanAuthenticate() bool {
	return u.IsActive
}

// CanManageUsers verifica se o usuário pode administrar outras contas
func (u *User) CanManageUsers() bool {
	return u.IsActive && u.IsSuperuser
}

// MarkVerified marca o e-mail como verificado
func (u *User) MarkVerified() {
	u.IsVerified = true
	u.UpdatedAt = time.Now().UTC()
}

// Validate valida regras de negócio da entidade User
func (u *User) Validate() error {
	if u.Email.IsZero() {
		return errors.New("email is required")
	}

	if u.HashedPassword == "" {
		return errors.New("password is required")
	}

	return nil
}
