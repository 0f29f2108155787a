package repositories

import (
	"context"

	"github.com/rafabene/mediafeed-backend/internal/domain/entities"
)

// PostRepository define a interface para persistência de posts
type PostRepository interface {
	Create(ctx context.Context, post *entities.Post) error
	FindByID(ctx context.Context, id string) (*entities.Post, error)
	// ListFeed retorna todos os posts, mais recentes primeiro (empate desfeito pelo id)
	ListFeed(ctx context.Context) ([]*entities.Post, error)
	// Delete retorna false quando nenhuma linha foi removida
	Delete(ctx context.Context, id string) (bool, error)
}
