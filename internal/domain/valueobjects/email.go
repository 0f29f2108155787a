package valueobjects

import (
	"regexp"
	"strings"

	domainerrors "github.com/rafabene/mediafeed-backend/internal/domain/errors"
)

const (
	maxEmailLength     = 254
	maxLocalPartLength = 64
)

var emailPattern = regexp.MustCompile(`^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}$`)

// ErrInvalidEmail é o mesmo código de erro usado pelas respostas HTTP
var ErrInvalidEmail = domainerrors.ErrInvalidEmail

// Email é o identificador de login de um usuário, sempre normalizado em minúsculas
type Email struct {
	value string
}

// NewEmail cria um novo Email validado
func NewEmail(email string) (Email, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	if !isValidEmail(email) {
		return Email{}, ErrInvalidEmail
	}

	return Email{value: email}, nil
}

// String retorna o valor do email
func (e Email) String() string {
	return e.value
}

// Equals compara dois emails já normalizados
func (e Email) Equals(other Email) bool {
	return e.value == other.value
}

// IsZero indica um Email não inicializado
func (e Email) IsZero() bool {
	return e.value == ""
}

func isValidEmail(email string) bool {
	if len(email) < 3 || len(email) > maxEmailLength {
		return false
	}

	local, _, found := strings.Cut(email, "@")
	if !found || len(local) > maxLocalPartLength {
		return false
	}

	return emailPattern.MatchString(email)
}
