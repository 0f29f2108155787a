package ports

import (
	"context"

	"github.com/rafabene/mediafeed-backend/internal/domain/entities"
)

// FeedEventType identifica mudanças no feed
type FeedEventType string

const (
	FeedEventPostCreated FeedEventType = "post.created"
	FeedEventPostDeleted FeedEventType = "post.deleted"
)

// FeedEvent é publicado quando um post entra ou sai do feed
type FeedEvent struct {
	Type   FeedEventType
	Post   *entities.Post
	PostID string
}

// EventPublisher distribui eventos do feed para clientes conectados
type EventPublisher interface {
	Publish(ctx context.Context, event FeedEvent) error
}
