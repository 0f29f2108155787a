package dto

import (
	"time"

	"github.com/rafabene/mediafeed-backend/internal/domain/entities"
	"github.com/rafabene/mediafeed-backend/internal/services"
)

// PostResponse representa um post persistido
type PostResponse struct {
	ID        string    `json:"id"`
	UserID    *string   `json:"user_id"`
	Caption   string    `json:"caption"`
	URL       string    `json:"url"`
	FileType  string    `json:"file_type"`
	FileName  string    `json:"file_name"`
	CreatedAt time.Time `json:"created_at"`
}

// FeedEntry é um item do feed; is_owner e email só aparecem com autenticação
type FeedEntry struct {
	PostResponse
	IsOwner *bool   `json:"is_owner,omitempty"`
	Email   *string `json:"email,omitempty"`
}

// ToPostResponse converte uma entidade Post para PostResponse
func ToPostResponse(post *entities.Post) PostResponse {
	return PostResponse{
		ID:        post.ID,
		UserID:    post.UserID,
		Caption:   post.Caption,
		URL:       post.URL,
		FileType:  string(post.FileType),
		FileName:  post.FileName,
		CreatedAt: post.CreatedAt,
	}
}

// ToFeedEntries converte os itens do feed; withViewer inclui is_owner e email
func ToFeedEntries(items []services.FeedItem, withViewer bool) []FeedEntry {
	entries := make([]FeedEntry, len(items))
	for i, item := range items {
		entries[i] = FeedEntry{PostResponse: ToPostResponse(item.Post)}
		if withViewer {
			isOwner := item.IsOwner
			email := item.Email
			entries[i].IsOwner = &isOwner
			entries[i].Email = &email
		}
	}
	return entries
}
