package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rafabene/mediafeed-backend/internal/domain/entities"
	"github.com/rafabene/mediafeed-backend/internal/domain/errors"
	"github.com/rafabene/mediafeed-backend/internal/domain/ports"
	"github.com/rafabene/mediafeed-backend/internal/domain/repositories"
	"github.com/rafabene/mediafeed-backend/internal/infrastructure/metrics"
)

// PostServiceConfig parametriza o comportamento do PostService
type PostServiceConfig struct {
	AuthEnabled  bool
	UploadFolder string
}

// PostService contém a lógica de negócio de upload, feed e remoção de posts
type PostService struct {
	postRepo  repositories.PostRepository
	uow       ports.UnitOfWork
	gateway   ports.UploadGateway
	publisher ports.EventPublisher
	logger    ports.Logger
	cfg       PostServiceConfig
	now       func() time.Time
}

// NewPostService cria um novo PostService
func NewPostService(
	postRepo repositories.PostRepository,
	uow ports.UnitOfWork,
	gateway ports.UploadGateway,
	publisher ports.EventPublisher,
	logger ports.Logger,
	cfg PostServiceConfig,
) *PostService {
	return &PostService{
		postRepo:  postRepo,
		uow:       uow,
		gateway:   gateway,
		publisher: publisher,
		logger:    logger,
		cfg:       cfg,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// AuthEnabled indica se as operações exigem um usuário autenticado
func (s *PostService) AuthEnabled() bool {
	return s.cfg.AuthEnabled
}

// UploadInput representa os dados de um upload
type UploadInput struct {
	Principal   *entities.User
	Caption     string
	FileName    string
	ContentType string
	Content     []byte
}

// Upload envia o arquivo ao storage e persiste o post correspondente
func (s *PostService) Upload(ctx context.Context, input UploadInput) (*entities.Post, error) {
	if s.cfg.AuthEnabled && input.Principal == nil {
		return nil, errors.ErrUnauthorized
	}
	if input.FileName == "" {
		return nil, errors.ErrFileRequired
	}

	log := s.logger.With("file_name", input.FileName, "size", len(input.Content))

	result, err := s.gateway.Upload(ctx, ports.UploadRequest{
		Content:     input.Content,
		FileName:    input.FileName,
		ContentType: input.ContentType,
		Folder:      s.cfg.UploadFolder,
	})
	if err != nil {
		metrics.UploadFailuresTotal.WithLabelValues("gateway_error").Inc()
		log.Error("upload gateway failed", "error", err)
		return nil, errors.Wrap(errors.ErrUploadFailed, err)
	}
	if result == nil {
		result = &ports.UploadResult{}
	}

	post := &entities.Post{
		Caption:   input.Caption,
		URL:       result.URL,
		FileType:  entities.ClassifyFileType(input.ContentType),
		FileName:  input.FileName,
		CreatedAt: s.now(),
	}
	if s.cfg.AuthEnabled {
		ownerID := input.Principal.ID
		post.UserID = &ownerID
	}
	// um gateway que não devolve URL conta como falha de upload
	if err := post.Validate(); err != nil {
		metrics.UploadFailuresTotal.WithLabelValues("invalid_post").Inc()
		log.Error("upload produced an invalid post", "error", err, "file_id", result.FileID)
		s.removeOrphan(ctx, log, result.FileID)
		return nil, errors.Wrap(errors.ErrUploadFailed, err)
	}

	err = s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		return s.postRepo.Create(txCtx, post)
	})
	if err != nil {
		metrics.UploadFailuresTotal.WithLabelValues("persist_failed").Inc()
		log.Error("failed to persist post", "error", err, "file_id", result.FileID)
		s.removeOrphan(ctx, log, result.FileID)
		return nil, fmt.Errorf("persist post: %w", err)
	}

	metrics.PostsCreatedTotal.WithLabelValues(string(post.FileType)).Inc()
	metrics.UploadedBytes.Observe(float64(len(input.Content)))
	log.Info("post created", "post_id", post.ID, "file_type", post.FileType)

	s.publish(ctx, ports.FeedEvent{Type: ports.FeedEventPostCreated, Post: post})

	return post, nil
}

// removeOrphan remove do storage um objeto cujo post não foi persistido
func (s *PostService) removeOrphan(ctx context.Context, log ports.Logger, fileID string) {
	if fileID == "" {
		return
	}
	// o contexto da requisição pode já ter sido cancelado
	cleanupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()

	if err := s.gateway.Delete(cleanupCtx, fileID); err != nil {
		log.Error("failed to remove orphaned upload", "file_id", fileID, "error", err)
		return
	}
	log.Info("orphaned upload removed", "file_id", fileID)
}

// FeedItem é um post do feed com a visão do usuário que o consulta
type FeedItem struct {
	Post    *entities.Post
	IsOwner bool
	// Email é o do usuário que consulta o feed, não o do autor do post
	Email string
}

// Feed lista todos os posts, mais recentes primeiro
func (s *PostService) Feed(ctx context.Context, principal *entities.User) ([]FeedItem, error) {
	if s.cfg.AuthEnabled && principal == nil {
		return nil, errors.ErrUnauthorized
	}

	posts, err := s.postRepo.ListFeed(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]FeedItem, len(posts))
	for i, post := range posts {
		items[i] = FeedItem{Post: post}
		if s.cfg.AuthEnabled {
			items[i].IsOwner = post.IsOwnedBy(principal.ID)
			items[i].Email = principal.Email.String()
		}
	}
	return items, nil
}

// Delete remove um post; com autenticação, apenas o dono pode removê-lo
func (s *PostService) Delete(ctx context.Context, rawID string, principal *entities.User) error {
	if s.cfg.AuthEnabled && principal == nil {
		return errors.ErrUnauthorized
	}

	parsed, err := uuid.Parse(rawID)
	if err != nil {
		return errors.ErrInvalidPostID
	}
	id := parsed.String()

	err = s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		post, err := s.postRepo.FindByID(txCtx, id)
		if err != nil {
			return err
		}
		if post == nil {
			return errors.ErrPostNotFound
		}

		if s.cfg.AuthEnabled && !post.IsOwnedBy(principal.ID) {
			return errors.ErrNotPostOwner
		}

		deleted, err := s.postRepo.Delete(txCtx, id)
		if err != nil {
			return err
		}
		if !deleted {
			// removido por outra requisição entre a busca e o delete
			return errors.ErrPostNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}

	metrics.PostsDeletedTotal.Inc()
	s.logger.Info("post deleted", "post_id", id)

	s.publish(ctx, ports.FeedEvent{Type: ports.FeedEventPostDeleted, PostID: id})

	return nil
}

func (s *PostService) publish(ctx context.Context, event ports.FeedEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish feed event", "type", event.Type, "error", err)
	}
}
