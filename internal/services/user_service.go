package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/rafabene/mediafeed-backend/internal/domain/entities"
	"github.com/rafabene/mediafeed-backend/internal/domain/errors"
	"github.com/rafabene/mediafeed-backend/internal/domain/ports"
	"github.com/rafabene/mediafeed-backend/internal/domain/repositories"
	"github.com/rafabene/mediafeed-backend/internal/domain/valueobjects"
)

// UserService contém a lógica de negócio para usuários
type UserService struct {
	userRepo repositories.UserRepository
	uow      ports.UnitOfWork
	hasher   ports.PasswordHasher
	logger   ports.Logger
}

// NewUserService cria um novo UserService
func NewUserService(
	userRepo repositories.UserRepository,
	uow ports.UnitOfWork,
	hasher ports.PasswordHasher,
	logger ports.Logger,
) *UserService {
	return &UserService{
		userRepo: userRepo,
		uow:      uow,
		hasher:   hasher,
		logger:   logger,
	}
}

// UpdateUserInput representa uma atualização parcial; campos nil não mudam
type UpdateUserInput struct {
	Email       *string
	Password    *string
	IsActive    *bool
	IsSuperuser *bool
	IsVerified  *bool
}

// GetUser busca um usuário por ID
func (s *UserService) GetUser(ctx context.Context, id string) (*entities.User, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, errors.ErrInvalidUserID
	}

	user, err := s.userRepo.FindByID(ctx, parsed.String())
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.ErrUserNotFound
	}
	return user, nil
}

// UpdateMe atualiza o próprio usuário; flags administrativas são ignoradas
func (s *UserService) UpdateMe(ctx context.Context, current *entities.User, input UpdateUserInput) (*entities.User, error) {
	input.IsActive, input.IsSuperuser, input.IsVerified = nil, nil, nil
	return s.update(ctx, current.ID, input)
}

// UpdateUser atualiza qualquer usuário, incluindo flags administrativas
func (s *UserService) UpdateUser(ctx context.Context, id string, input UpdateUserInput) (*entities.User, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, errors.ErrInvalidUserID
	}
	return s.update(ctx, parsed.String(), input)
}

func (s *UserService) update(ctx context.Context, id string, input UpdateUserInput) (*entities.User, error) {
	var updated *entities.User

	err := s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		user, err := s.userRepo.FindByID(txCtx, id)
		if err != nil {
			return err
		}
		if user == nil {
			return errors.ErrUserNotFound
		}

		if input.Email != nil {
			email, err := valueobjects.NewEmail(*input.Email)
			if err != nil {
				return errors.ErrInvalidEmail
			}
			if !email.Equals(user.Email) {
				existing, err := s.userRepo.FindByEmail(txCtx, email.String())
				if err != nil {
					return err
				}
				if existing != nil && existing.ID != user.ID {
					return errors.ErrEmailAlreadyExists
				}
				// novo email precisa ser verificado de novo
				user.Email = email
				user.IsVerified = false
			}
		}

		if input.Password != nil {
			if err := validatePassword(*input.Password); err != nil {
				return err
			}
			hashed, err := s.hasher.Hash(*input.Password)
			if err != nil {
				return err
			}
			user.HashedPassword = hashed
		}

		if input.IsActive != nil {
			user.IsActive = *input.IsActive
		}
		if input.IsSuperuser != nil {
			user.IsSuperuser = *input.IsSuperuser
		}
		if input.IsVerified != nil {
			user.IsVerified = *input.IsVerified
		}

		user.UpdatedAt = time.Now().UTC()
		if err := s.userRepo.Update(txCtx, user); err != nil {
			return err
		}
		updated = user
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user updated", "user_id", updated.ID)
	return updated, nil
}

// DeleteUser remove um usuário e, em cascata, seus posts
func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return errors.ErrInvalidUserID
	}

	err = s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		user, err := s.userRepo.FindByID(txCtx, parsed.String())
		if err != nil {
			return err
		}
		if user == nil {
			return errors.ErrUserNotFound
		}
		return s.userRepo.Delete(txCtx, user.ID)
	})
	if err != nil {
		return err
	}

	s.logger.Info("user deleted", "user_id", parsed.String())
	return nil
}
