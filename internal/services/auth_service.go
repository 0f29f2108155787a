package services

import (
	"context"
	"unicode/utf8"

	"github.com/rafabene/mediafeed-backend/internal/domain/entities"
	"github.com/rafabene/mediafeed-backend/internal/domain/errors"
	"github.com/rafabene/mediafeed-backend/internal/domain/ports"
	"github.com/rafabene/mediafeed-backend/internal/domain/repositories"
	"github.com/rafabene/mediafeed-backend/internal/domain/valueobjects"
)

const (
	minPasswordLength = 3
	// bcrypt rejeita senhas com mais de 72 bytes
	maxPasswordBytes = 72
)

// AuthService cuida de registro, login e dos fluxos de reset e verificação
type AuthService struct {
	userRepo repositories.UserRepository
	uow      ports.UnitOfWork
	hasher   ports.PasswordHasher
	tokens   ports.TokenIssuer
	logger   ports.Logger
}

// NewAuthService cria um novo AuthService
func NewAuthService(
	userRepo repositories.UserRepository,
	uow ports.UnitOfWork,
	hasher ports.PasswordHasher,
	tokens ports.TokenIssuer,
	logger ports.Logger,
) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		uow:      uow,
		hasher:   hasher,
		tokens:   tokens,
		logger:   logger,
	}
}

func validatePassword(password string) error {
	if utf8.RuneCountInString(password) < minPasswordLength || len(password) > maxPasswordBytes {
		return errors.ErrInvalidPassword
	}
	return nil
}

// Register cria um usuário ativo e ainda não verificado
func (s *AuthService) Register(ctx context.Context, rawEmail, password string) (*entities.User, error) {
	email, err := valueobjects.NewEmail(rawEmail)
	if err != nil {
		return nil, errors.ErrInvalidEmail
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}
	user := entities.NewUser(email, hashed)
	if err := user.Validate(); err != nil {
		return nil, err
	}

	err = s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		existing, err := s.userRepo.FindByEmail(txCtx, email.String())
		if err != nil {
			return err
		}
		if existing != nil {
			return errors.ErrEmailAlreadyExists
		}
		return s.userRepo.Create(txCtx, user)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user registered", "user_id", user.ID)
	return user, nil
}

// Login valida as credenciais e emite um token de acesso
func (s *AuthService) Login(ctx context.Context, rawEmail, password string) (string, error) {
	user, err := s.userRepo.FindByEmail(ctx, rawEmail)
	if err != nil {
		return "", err
	}
	if user == nil || !s.hasher.Compare(user.HashedPassword, password) {
		return "", errors.ErrInvalidCredentials
	}
	if !user.CanAuthenticate() {
		return "", errors.ErrInactiveUser
	}

	token, err := s.tokens.Issue(ports.TokenClaims{Subject: user.ID, Purpose: ports.TokenPurposeAccess})
	if err != nil {
		return "", err
	}

	s.logger.Info("user logged in", "user_id", user.ID)
	return token, nil
}

// Authenticate resolve o usuário dono de um token de acesso
func (s *AuthService) Authenticate(ctx context.Context, token string) (*entities.User, error) {
	claims, err := s.tokens.Parse(ports.TokenPurposeAccess, token)
	if err != nil {
		return nil, errors.ErrUnauthorized
	}

	user, err := s.userRepo.FindByID(ctx, claims.Subject)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.CanAuthenticate() {
		return nil, errors.ErrUnauthorized
	}
	return user, nil
}

// ForgotPassword emite um token de reset. Emails desconhecidos não geram erro
// para não revelar quais contas existem; nesse caso o token retornado é vazio.
func (s *AuthService) ForgotPassword(ctx context.Context, rawEmail string) (string, error) {
	user, err := s.userRepo.FindByEmail(ctx, rawEmail)
	if err != nil {
		return "", err
	}
	if user == nil || !user.IsActive {
		return "", nil
	}

	token, err := s.tokens.Issue(ports.TokenClaims{
		Subject:     user.ID,
		Purpose:     ports.TokenPurposeReset,
		Fingerprint: s.hasher.Fingerprint(user.HashedPassword),
	})
	if err != nil {
		return "", err
	}

	// sem envio de email: o token fica disponível apenas no log
	s.logger.Info("reset password token generated", "user_id", user.ID, "token", token)
	return token, nil
}

// ResetPassword troca a senha usando um token de reset ainda não utilizado
func (s *AuthService) ResetPassword(ctx context.Context, token, password string) error {
	claims, err := s.tokens.Parse(ports.TokenPurposeReset, token)
	if err != nil {
		return errors.ErrBadToken
	}
	if err := validatePassword(password); err != nil {
		return err
	}

	return s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		user, err := s.userRepo.FindByID(txCtx, claims.Subject)
		if err != nil {
			return err
		}
		if user == nil || !user.IsActive {
			return errors.ErrBadToken
		}
		if s.hasher.Fingerprint(user.HashedPassword) != claims.Fingerprint {
			return errors.ErrBadToken
		}

		hashed, err := s.hasher.Hash(password)
		if err != nil {
			return err
		}
		user.HashedPassword = hashed
		if err := s.userRepo.Update(txCtx, user); err != nil {
			return err
		}

		s.logger.Info("user password reset", "user_id", user.ID)
		return nil
	})
}

// RequestVerify emite um token de verificação para contas ativas não verificadas
func (s *AuthService) RequestVerify(ctx context.Context, rawEmail string) (string, error) {
	user, err := s.userRepo.FindByEmail(ctx, rawEmail)
	if err != nil {
		return "", err
	}
	if user == nil || !user.IsActive || user.IsVerified {
		return "", nil
	}

	token, err := s.tokens.Issue(ports.TokenClaims{
		Subject: user.ID,
		Purpose: ports.TokenPurposeVerify,
		Email:   user.Email.String(),
	})
	if err != nil {
		return "", err
	}

	s.logger.Info("verification token generated", "user_id", user.ID, "token", token)
	return token, nil
}

// Verify marca o usuário do token como verificado
func (s *AuthService) Verify(ctx context.Context, token string) (*entities.User, error) {
	claims, err := s.tokens.Parse(ports.TokenPurposeVerify, token)
	if err != nil {
		return nil, errors.ErrBadToken
	}

	var verified *entities.User
	err = s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		user, err := s.userRepo.FindByID(txCtx, claims.Subject)
		if err != nil {
			return err
		}
		// o email pode ter mudado depois da emissão do token
		if user == nil || user.Email.String() != claims.Email {
			return errors.ErrBadToken
		}
		if user.IsVerified {
			return errors.ErrAlreadyVerified
		}

		user.MarkVerified()
		if err := s.userRepo.Update(txCtx, user); err != nil {
			return err
		}
		verified = user
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user verified", "user_id", verified.ID)
	return verified, nil
}
