package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainerrors "github.com/rafabene/mediafeed-backend/internal/domain/errors"
	"github.com/rafabene/mediafeed-backend/internal/domain/ports"
	"github.com/rafabene/mediafeed-backend/internal/handlers/dto"
)

type problemMapping struct {
	kind        error
	status      int
	problemType string
	titleKey    string
}

// problemMappings associa erros de negócio a respostas RFC 7807; a ordem importa
var problemMappings = []problemMapping{
	{domainerrors.ErrInvalidPostID, http.StatusBadRequest, domainerrors.ProblemTypeBadRequest, "error.bad_request.title"},
	{domainerrors.ErrInvalidUserID, http.StatusBadRequest, domainerrors.ProblemTypeBadRequest, "error.bad_request.title"},
	{domainerrors.ErrInvalidEmail, http.StatusBadRequest, domainerrors.ProblemTypeValidation, "error.validation.title"},
	{domainerrors.ErrInvalidPassword, http.StatusBadRequest, domainerrors.ProblemTypeValidation, "error.validation.title"},
	{domainerrors.ErrFileRequired, http.StatusBadRequest, domainerrors.ProblemTypeValidation, "error.validation.title"},
	{domainerrors.ErrEmailAlreadyExists, http.StatusBadRequest, domainerrors.ProblemTypeConflict, "error.conflict.title"},
	{domainerrors.ErrInvalidCredentials, http.StatusBadRequest, domainerrors.ProblemTypeBadRequest, "error.bad_request.title"},
	{domainerrors.ErrInactiveUser, http.StatusBadRequest, domainerrors.ProblemTypeBadRequest, "error.bad_request.title"},
	{domainerrors.ErrBadToken, http.StatusBadRequest, domainerrors.ProblemTypeBadRequest, "error.bad_request.title"},
	{domainerrors.ErrAlreadyVerified, http.StatusBadRequest, domainerrors.ProblemTypeBadRequest, "error.bad_request.title"},
	{domainerrors.ErrUnauthorized, http.StatusUnauthorized, domainerrors.ProblemTypeUnauthorized, "error.unauthorized.title"},
	{domainerrors.ErrForbidden, http.StatusForbidden, domainerrors.ProblemTypeForbidden, "error.forbidden.title"},
	{domainerrors.ErrNotPostOwner, http.StatusForbidden, domainerrors.ProblemTypeForbidden, "error.forbidden.title"},
	{domainerrors.ErrPostNotFound, http.StatusNotFound, domainerrors.ProblemTypeNotFound, "error.not_found.title"},
	{domainerrors.ErrUserNotFound, http.StatusNotFound, domainerrors.ProblemTypeNotFound, "error.not_found.title"},
	{domainerrors.ErrFileTooLarge, http.StatusRequestEntityTooLarge, domainerrors.ProblemTypeTooLarge, "error.too_large.title"},
	{domainerrors.ErrUploadFailed, http.StatusInternalServerError, domainerrors.ProblemTypeUpstreamFailure, "error.upstream.title"},
}

// respondError converte um erro em problem+json; erros desconhecidos viram 500
func respondError(c *gin.Context, logger ports.Logger, err error, params ...map[string]interface{}) {
	_ = c.Error(err)

	for _, m := range problemMappings {
		if !errors.Is(err, m.kind) {
			continue
		}
		if m.status >= http.StatusInternalServerError {
			logger.Error("request failed", "path", c.Request.URL.Path, "error", err)
		}
		if m.status == http.StatusUnauthorized {
			c.Header("WWW-Authenticate", "Bearer")
		}
		dto.AbortWithProblem(c, dto.NewErrorResponseI18n(c, m.problemType, m.titleKey, m.kind.Error(), m.status, params...))
		return
	}

	logger.Error("unexpected error", "path", c.Request.URL.Path, "error", err)
	dto.AbortWithProblem(c, dto.InternalErrorResponseI18n(c))
}

// respondBindError responde a falhas de binding com os erros por campo
func respondBindError(c *gin.Context, err error) {
	_ = c.Error(err).SetType(gin.ErrorTypeBind)
	dto.AbortWithProblem(c, dto.ValidationErrorResponseI18n(c, "error.invalid_request", dto.ValidationErrorsFrom(c, err)))
}
