package errors

import "errors"

// Business errors
// Nota: Estes são códigos de erro (message IDs para i18n).
// As traduções estão em internal/infrastructure/i18n/locales/*.json
var (
	ErrUserNotFound       = errors.New("error.user_not_found")
	ErrEmailAlreadyExists = errors.New("error.email_already_exists")
	ErrInvalidCredentials = errors.New("error.invalid_credentials")
	ErrInactiveUser       = errors.New("error.inactive_user")
	ErrUnauthorized       = errors.New("error.unauthorized")
	ErrForbidden          = errors.New("error.forbidden")
	ErrBadToken           = errors.New("error.bad_token")
	ErrAlreadyVerified    = errors.New("error.already_verified")

	ErrPostNotFound  = errors.New("error.post_not_found")
	ErrInvalidPostID = errors.New("error.invalid_post_id")
	ErrNotPostOwner  = errors.New("error.not_post_owner")
	ErrUploadFailed  = errors.New("error.upload_failed")
	ErrFileTooLarge  = errors.New("error.file_too_large")
	ErrFileRequired  = errors.New("error.file_required")
)

// Domain errors
var (
	ErrInvalidEmail    = errors.New("error.invalid_email")
	ErrInvalidPassword = errors.New("error.invalid_password")
	ErrInvalidUserID   = errors.New("error.invalid_user_id")
)

// ProblemType define tipos de problemas (URIs RFC 7807)
// Nota: O domínio base vem de configuração (API_BASE_URL)
//
//nolint:misspell
const (
	ProblemTypeValidation      = "/problems/validation-error"
	ProblemTypeNotFound        = "/problems/not-found"
	ProblemTypeConflict        = "/problems/conflict"
	ProblemTypeUnauthorized    = "/problems/unauthorized"
	ProblemTypeForbidden       = "/problems/forbidden"
	ProblemTypeInternal        = "/problems/internal-error"
	ProblemTypeBadRequest      = "/problems/bad-request"
	ProblemTypeTooLarge        = "/problems/payload-too-large"
	ProblemTypeUpstreamFailure = "/problems/upstream-failure"
)

// DomainError representa um erro de domínio com contexto adicional
type DomainError struct {
	Type    string
	Title   string
	Message string
	Kind    error // sentinel de negócio, comparável com errors.Is
	Err     error
}

// Wrap anexa uma causa a um erro de negócio sem perder a identidade do sentinel
func Wrap(kind error, cause error) *DomainError {
	return &DomainError{
		Message: kind.Error(),
		Kind:    kind,
		Err:     cause,
	}
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

func (e *DomainError) Is(target error) bool {
	return e.Kind != nil && target == e.Kind
}
