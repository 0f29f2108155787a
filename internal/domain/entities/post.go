package entities

import (
	"errors"
	"strings"
	"time"
)

// FileType classifica a mídia de um post
type FileType string

const (
	FileTypePhoto FileType = "photo"
	FileTypeVideo FileType = "video"
	FileTypeFile  FileType = "file"
)

// ClassifyFileType deriva o FileType do content type declarado no upload
func ClassifyFileType(contentType string) FileType {
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return FileTypePhoto
	case strings.HasPrefix(contentType, "video/"):
		return FileTypeVideo
	default:
		return FileTypeFile
	}
}

// IsValid verifica se o tipo pertence ao conjunto conhecido
func (t FileType) IsValid() bool {
	return t == FileTypePhoto || t == FileTypeVideo || t == FileTypeFile
}

// Post representa uma mídia publicada e seus metadados
type Post struct {
	ID        string
	UserID    *string // nil quando a autenticação está desabilitada
	Caption   string
	URL       string
	FileType  FileType
	FileName  string
	CreatedAt time.Time
}

// IsOwnedBy verifica se o post pertence ao usuário
func (p *Post) IsOwnedBy(userID string) bool {
	return p.UserID != nil && *p.UserID == userID
}

// Validate valida regras de negócio da entidade Post
func (p *Post) Validate() error {
	if p.URL == "" {
		return errors.New("url is required")
	}

	if p.FileName == "" {
		return errors.New("file name is required")
	}

	if !p.FileType.IsValid() {
		return errors.New("invalid file type")
	}

	return nil
}
