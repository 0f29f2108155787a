package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rafabene/mediafeed-backend/internal/domain/entities"
	"github.com/rafabene/mediafeed-backend/internal/domain/repositories"
)

// PostRepository implementa repositories.PostRepository
type PostRepository struct {
	db *gorm.DB
}

// NewPostRepository cria um novo PostRepository
func NewPostRepository(db *gorm.DB) repositories.PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) Create(ctx context.Context, post *entities.Post) error {
	if post.ID == "" {
		post.ID = uuid.NewString()
	}
	model := r.toModel(post)

	db := sessionFrom(ctx, r.db)
	if err := db.Create(model).Error; err != nil {
		return err
	}

	post.CreatedAt = model.CreatedAt
	return nil
}

func (r *PostRepository) FindByID(ctx context.Context, id string) (*entities.Post, error) {
	var model PostModel

	db := sessionFrom(ctx, r.db)
	if err := db.Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.toEntity(&model), nil
}

func (r *PostRepository) ListFeed(ctx context.Context) ([]*entities.Post, error) {
	var models []*PostModel

	db := sessionFrom(ctx, r.db)
	if err := db.Order("created_at DESC").Order("id DESC").Find(&models).Error; err != nil {
		return nil, err
	}

	posts := make([]*entities.Post, 0, len(models))
	for _, model := range models {
		posts = append(posts, r.toEntity(model))
	}
	return posts, nil
}

func (r *PostRepository) Delete(ctx context.Context, id string) (bool, error) {
	db := sessionFrom(ctx, r.db)
	result := db.Where("id = ?", id).Delete(&PostModel{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Conversores
func (r *PostRepository) toModel(post *entities.Post) *PostModel {
	return &PostModel{
		ID:        post.ID,
		UserID:    post.UserID,
		Caption:   post.Caption,
		URL:       post.URL,
		FileType:  string(post.FileType),
		FileName:  post.FileName,
		CreatedAt: post.CreatedAt,
	}
}

func (r *PostRepository) toEntity(model *PostModel) *entities.Post {
	return &entities.Post{
		ID:        model.ID,
		UserID:    model.UserID,
		Caption:   model.Caption,
		URL:       model.URL,
		FileType:  entities.FileType(model.FileType),
		FileName:  model.FileName,
		CreatedAt: model.CreatedAt.UTC(),
	}
}
