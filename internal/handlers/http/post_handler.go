package http

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	domainerrors "github.com/rafabene/mediafeed-backend/internal/domain/errors"
	"github.com/rafabene/mediafeed-backend/internal/domain/ports"
	"github.com/rafabene/mediafeed-backend/internal/handlers/dto"
	"github.com/rafabene/mediafeed-backend/internal/handlers/middleware"
	"github.com/rafabene/mediafeed-backend/internal/services"
)

// folga para os cabeçalhos multipart e o campo caption
const multipartOverhead = 1 << 20

// PostHandler lida com upload, feed e remoção de posts
type PostHandler struct {
	postService *services.PostService
	maxBytes    int64
	logger      ports.Logger
}

// NewPostHandler cria um novo PostHandler
func NewPostHandler(postService *services.PostService, maxBytes int64, logger ports.Logger) *PostHandler {
	return &PostHandler{
		postService: postService,
		maxBytes:    maxBytes,
		logger:      logger,
	}
}

// Upload godoc
// @Summary      Envia um arquivo e cria um post
// @Tags         posts
// @Accept       multipart/form-data
// @Produce      json
// @Param        file     formData  file    true   "Arquivo"
// @Param        caption  formData  string  false  "Legenda"
// @Success      200  {object}  dto.PostResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      413  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /upload [post]
func (h *PostHandler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes+multipartOverhead)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		if isBodyTooLarge(err) {
			h.tooLarge(c)
			return
		}
		dto.AbortWithProblem(c, dto.ValidationErrorResponseI18n(c, "error.file_required", []dto.ValidationError{{
			Field:   "file",
			Message: dto.T(c, "validation.required", map[string]interface{}{"Field": "file"}),
			Tag:     "required",
		}}))
		return
	}
	if fileHeader.Size > h.maxBytes {
		h.tooLarge(c)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	post, err := h.postService.Upload(c.Request.Context(), services.UploadInput{
		Principal:   middleware.CurrentUser(c),
		Caption:     c.PostForm("caption"),
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Content:     content,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPostResponse(post))
}

func (h *PostHandler) tooLarge(c *gin.Context) {
	respondError(c, h.logger, domainerrors.ErrFileTooLarge, map[string]interface{}{"Limit": h.maxBytes})
}

func isBodyTooLarge(err error) bool {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return true
	}
	// multipart nem sempre preserva o erro original
	return strings.Contains(err.Error(), "request body too large")
}

// Feed godoc
// @Summary      Lista todos os posts, mais recentes primeiro
// @Tags         posts
// @Produce      json
// @Success      200  {array}   dto.FeedEntry
// @Failure      401  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /feed [get]
func (h *PostHandler) Feed(c *gin.Context) {
	items, err := h.postService.Feed(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToFeedEntries(items, h.postService.AuthEnabled()))
}

// Delete godoc
// @Summary      Remove um post
// @Tags         posts
// @Produce      json
// @Param        id   path      string  true  "ID do post (UUID)"
// @Success      200  {object}  dto.DetailResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /posts/{id} [delete]
func (h *PostHandler) Delete(c *gin.Context) {
	if err := h.postService.Delete(c.Request.Context(), c.Param("id"), middleware.CurrentUser(c)); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.DetailResponse{Detail: dto.T(c, "post.deleted")})
}
