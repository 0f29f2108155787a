package services

import (
	"context"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	"github.com/rafabene/mediafeed-backend/internal/domain/errors"
	"github.com/rafabene/mediafeed-backend/internal/domain/ports"
	"github.com/rafabene/mediafeed-backend/internal/infrastructure/auth"
	"github.com/rafabene/mediafeed-backend/internal/infrastructure/logging"
)

var _ = Describe("AuthService", func() {
	var (
		ctx     context.Context
		users   *memoryUserRepo
		tokens  *auth.JWTIssuer
		service *AuthService
	)

	BeforeEach(func() {
		ctx = context.Background()
		users = newMemoryUserRepo()
		tokens = auth.NewJWTIssuer("test-secret", time.Hour, time.Hour, time.Hour)
		service = NewAuthService(users, passthroughUoW{}, auth.NewBcryptHasher(bcrypt.MinCost), tokens, logging.NewNopLogger())
	})

	Describe("Register", func() {
		It("creates an active unverified user", func() {
			user, err := service.Register(ctx, "Alice@Example.com", "secret")
			Expect(err).NotTo(HaveOccurred())
			Expect(user.ID).NotTo(BeEmpty())
			Expect(user.Email.String()).To(Equal("alice@example.com"))
			Expect(user.IsActive).To(BeTrue())
			Expect(user.IsSuperuser).To(BeFalse())
			Expect(user.IsVerified).To(BeFalse())
			Expect(user.HashedPassword).NotTo(Equal("secret"))
		})

		It("rejects duplicated emails", func() {
			_, err := service.Register(ctx, "alice@example.com", "secret")
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Register(ctx, "ALICE@example.com", "other")
			Expect(err).To(MatchError(errors.ErrEmailAlreadyExists))
		})

		It("validates email and password", func() {
			_, err := service.Register(ctx, "not-an-email", "secret")
			Expect(err).To(MatchError(errors.ErrInvalidEmail))

			_, err = service.Register(ctx, "alice@example.com", "ab")
			Expect(err).To(MatchError(errors.ErrInvalidPassword))
		})

		It("rejects passwords longer than 72 bytes even when short in characters", func() {
			_, err := service.Register(ctx, "alice@example.com", strings.Repeat("é", 40))
			Expect(err).To(MatchError(errors.ErrInvalidPassword))

			_, err = service.Register(ctx, "alice@example.com", strings.Repeat("é", 36))
			Expect(err).NotTo(HaveOccurred())
		})
	})

	Describe("Login and Authenticate", func() {
		BeforeEach(func() {
			_, err := service.Register(ctx, "alice@example.com", "secret")
			Expect(err).NotTo(HaveOccurred())
		})

		It("issues a token that resolves back to the user", func() {
			token, err := service.Login(ctx, "alice@example.com", "secret")
			Expect(err).NotTo(HaveOccurred())

			user, err := service.Authenticate(ctx, token)
			Expect(err).NotTo(HaveOccurred())
			Expect(user.Email.String()).To(Equal("alice@example.com"))
		})

		It("rejects wrong passwords and unknown users", func() {
			_, err := service.Login(ctx, "alice@example.com", "wrong")
			Expect(err).To(MatchError(errors.ErrInvalidCredentials))

			_, err = service.Login(ctx, "nobody@example.com", "secret")
			Expect(err).To(MatchError(errors.ErrInvalidCredentials))
		})

		It("rejects inactive users", func() {
			user, _ := users.FindByEmail(ctx, "alice@example.com")
			user.IsActive = false
			Expect(users.Update(ctx, user)).To(Succeed())

			_, err := service.Login(ctx, "alice@example.com", "secret")
			Expect(err).To(MatchError(errors.ErrInactiveUser))
		})

		It("rejects tokens of another purpose", func() {
			user, _ := users.FindByEmail(ctx, "alice@example.com")
			verifyToken, err := tokens.Issue(ports.TokenClaims{Subject: user.ID, Purpose: ports.TokenPurposeVerify})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Authenticate(ctx, verifyToken)
			Expect(err).To(MatchError(errors.ErrUnauthorized))
		})

		It("rejects tokens of deleted users", func() {
			token, err := service.Login(ctx, "alice@example.com", "secret")
			Expect(err).NotTo(HaveOccurred())

			user, _ := users.FindByEmail(ctx, "alice@example.com")
			Expect(users.Delete(ctx, user.ID)).To(Succeed())

			_, err = service.Authenticate(ctx, token)
			Expect(err).To(MatchError(errors.ErrUnauthorized))
		})
	})

	Describe("password reset", func() {
		BeforeEach(func() {
			_, err := service.Register(ctx, "alice@example.com", "secret")
			Expect(err).NotTo(HaveOccurred())
		})

		It("changes the password once", func() {
			token, err := service.ForgotPassword(ctx, "alice@example.com")
			Expect(err).NotTo(HaveOccurred())
			Expect(token).NotTo(BeEmpty())

			Expect(service.ResetPassword(ctx, token, "new-secret")).To(Succeed())

			_, err = service.Login(ctx, "alice@example.com", "new-secret")
			Expect(err).NotTo(HaveOccurred())

			Expect(service.ResetPassword(ctx, token, "again")).To(MatchError(errors.ErrBadToken))
		})

		It("does not reveal unknown emails", func() {
			token, err := service.ForgotPassword(ctx, "nobody@example.com")
			Expect(err).NotTo(HaveOccurred())
			Expect(token).To(BeEmpty())
		})

		It("rejects garbage tokens", func() {
			Expect(service.ResetPassword(ctx, "garbage", "new-secret")).To(MatchError(errors.ErrBadToken))
		})
	})

	Describe("verification", func() {
		BeforeEach(func() {
			_, err := service.Register(ctx, "alice@example.com", "secret")
			Expect(err).NotTo(HaveOccurred())
		})

		It("verifies the user once", func() {
			token, err := service.RequestVerify(ctx, "alice@example.com")
			Expect(err).NotTo(HaveOccurred())
			Expect(token).NotTo(BeEmpty())

			user, err := service.Verify(ctx, token)
			Expect(err).NotTo(HaveOccurred())
			Expect(user.IsVerified).To(BeTrue())

			_, err = service.Verify(ctx, token)
			Expect(err).To(MatchError(errors.ErrAlreadyVerified))
		})

		It("does not issue tokens for verified users", func() {
			token, _ := service.RequestVerify(ctx, "alice@example.com")
			_, err := service.Verify(ctx, token)
			Expect(err).NotTo(HaveOccurred())

			again, err := service.RequestVerify(ctx, "alice@example.com")
			Expect(err).NotTo(HaveOccurred())
			Expect(again).To(BeEmpty())
		})

		It("rejects tokens issued for a previous email", func() {
			token, _ := service.RequestVerify(ctx, "alice@example.com")

			user, _ := users.FindByEmail(ctx, "alice@example.com")
			newEmail := "alice2@example.com"
			userService := NewUserService(users, passthroughUoW{}, auth.NewBcryptHasher(bcrypt.MinCost), logging.NewNopLogger())
			_, err := userService.UpdateMe(ctx, user, UpdateUserInput{Email: &newEmail})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Verify(ctx, token)
			Expect(err).To(MatchError(errors.ErrBadToken))
		})
	})
})
