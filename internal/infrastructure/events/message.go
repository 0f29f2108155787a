package events

import (
	"encoding/json"
	"time"

	"github.com/rafabene/mediafeed-backend/internal/domain/ports"
)

// PostPayload é a representação de um post enviada aos clientes do feed ao vivo
type PostPayload struct {
	ID        string    `json:"id"`
	UserID    *string   `json:"user_id"`
	Caption   string    `json:"caption"`
	URL       string    `json:"url"`
	FileType  string    `json:"file_type"`
	FileName  string    `json:"file_name"`
	CreatedAt time.Time `json:"created_at"`
}

// Message é o formato JSON trafegado no websocket e no canal Redis
type Message struct {
	Type   ports.FeedEventType `json:"type"`
	Post   *PostPayload        `json:"post,omitempty"`
	PostID string              `json:"post_id,omitempty"`
}

// Encode serializa um evento do feed
func Encode(event ports.FeedEvent) ([]byte, error) {
	msg := Message{Type: event.Type, PostID: event.PostID}
	if event.Post != nil {
		msg.Post = &PostPayload{
			ID:        event.Post.ID,
			UserID:    event.Post.UserID,
			Caption:   event.Post.Caption,
			URL:       event.Post.URL,
			FileType:  string(event.Post.FileType),
			FileName:  event.Post.FileName,
			CreatedAt: event.Post.CreatedAt,
		}
		if msg.PostID == "" {
			msg.PostID = event.Post.ID
		}
	}
	return json.Marshal(msg)
}
