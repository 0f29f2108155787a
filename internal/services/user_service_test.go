package services

import (
	"context"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	"github.com/rafabene/mediafeed-backend/internal/domain/entities"
	"github.com/rafabene/mediafeed-backend/internal/domain/errors"
	"github.com/rafabene/mediafeed-backend/internal/infrastructure/auth"
	"github.com/rafabene/mediafeed-backend/internal/infrastructure/logging"
)

var _ = Describe("UserService", func() {
	var (
		ctx     context.Context
		users   *memoryUserRepo
		hasher  *auth.BcryptHasher
		service *UserService
		alice   *entities.User
	)

	BeforeEach(func() {
		ctx = context.Background()
		users = newMemoryUserRepo()
		hasher = auth.NewBcryptHasher(bcrypt.MinCost)
		service = NewUserService(users, passthroughUoW{}, hasher, logging.NewNopLogger())

		alice = newPrincipal("alice@example.com")
		alice.IsVerified = true
		Expect(users.Create(ctx, alice)).To(Succeed())
	})

	Describe("GetUser", func() {
		It("finds an existing user", func() {
			user, err := service.GetUser(ctx, alice.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(user.Email.String()).To(Equal("alice@example.com"))
		})

		It("maps missing and malformed ids", func() {
			_, err := service.GetUser(ctx, uuid.NewString())
			Expect(err).To(MatchError(errors.ErrUserNotFound))

			_, err = service.GetUser(ctx, "42")
			Expect(err).To(MatchError(errors.ErrInvalidUserID))
		})
	})

	Describe("UpdateMe", func() {
		It("changes the password", func() {
			password := "new-secret"
			user, err := service.UpdateMe(ctx, alice, UpdateUserInput{Password: &password})
			Expect(err).NotTo(HaveOccurred())
			Expect(hasher.Compare(user.HashedPassword, password)).To(BeTrue())
		})

		It("resets verification when the email changes", func() {
			email := "alice.new@example.com"
			user, err := service.UpdateMe(ctx, alice, UpdateUserInput{Email: &email})
			Expect(err).NotTo(HaveOccurred())
			Expect(user.Email.String()).To(Equal(email))
			Expect(user.IsVerified).To(BeFalse())
		})

		It("rejects an email owned by someone else", func() {
			bob := newPrincipal("bob@example.com")
			Expect(users.Create(ctx, bob)).To(Succeed())

			email := "bob@example.com"
			_, err := service.UpdateMe(ctx, alice, UpdateUserInput{Email: &email})
			Expect(err).To(MatchError(errors.ErrEmailAlreadyExists))
		})

		It("ignores administrative flags", func() {
			yes := true
			user, err := service.UpdateMe(ctx, alice, UpdateUserInput{IsSuperuser: &yes})
			Expect(err).NotTo(HaveOccurred())
			Expect(user.IsSuperuser).To(BeFalse())
		})
	})

	Describe("administration", func() {
		It("updates flags", func() {
			no, yes := false, true
			user, err := service.UpdateUser(ctx, alice.ID, UpdateUserInput{IsActive: &no, IsSuperuser: &yes})
			Expect(err).NotTo(HaveOccurred())
			Expect(user.IsActive).To(BeFalse())
			Expect(user.IsSuperuser).To(BeTrue())
		})

		It("deletes users", func() {
			Expect(service.DeleteUser(ctx, alice.ID)).To(Succeed())
			Expect(service.DeleteUser(ctx, alice.ID)).To(MatchError(errors.ErrUserNotFound))
		})

		It("returns not found for unknown users", func() {
			yes := true
			_, err := service.UpdateUser(ctx, uuid.NewString(), UpdateUserInput{IsVerified: &yes})
			Expect(err).To(MatchError(errors.ErrUserNotFound))
		})
	})
})
