package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rafabene/mediafeed-backend/internal/domain/entities"
	"github.com/rafabene/mediafeed-backend/internal/domain/errors"
	"github.com/rafabene/mediafeed-backend/internal/domain/ports"
	"github.com/rafabene/mediafeed-backend/internal/domain/valueobjects"
	"github.com/rafabene/mediafeed-backend/internal/infrastructure/logging"
)

func newPrincipal(email string) *entities.User {
	addr, err := valueobjects.NewEmail(email)
	Expect(err).NotTo(HaveOccurred())
	user := entities.NewUser(addr, "hash")
	user.ID = uuid.NewString()
	return user
}

var _ = Describe("PostService", func() {
	var (
		ctx       context.Context
		repo      *memoryPostRepo
		gateway   *fakeGateway
		publisher *recordingPublisher
		service   *PostService
		alice     *entities.User
		bob       *entities.User
		clock     time.Time
	)

	build := func(authEnabled bool) {
		service = NewPostService(repo, passthroughUoW{}, gateway, publisher, logging.NewNopLogger(), PostServiceConfig{
			AuthEnabled:  authEnabled,
			UploadFolder: "media_uploads/",
		})
		service.now = func() time.Time {
			clock = clock.Add(time.Second)
			return clock
		}
	}

	upload := func(principal *entities.User, caption, name, contentType string) *entities.Post {
		post, err := service.Upload(ctx, UploadInput{
			Principal:   principal,
			Caption:     caption,
			FileName:    name,
			ContentType: contentType,
			Content:     []byte("payload"),
		})
		Expect(err).NotTo(HaveOccurred())
		return post
	}

	BeforeEach(func() {
		ctx = context.Background()
		repo = newMemoryPostRepo()
		gateway = &fakeGateway{url: "https://cdn.example.com/media_uploads/a.png"}
		publisher = &recordingPublisher{}
		alice = newPrincipal("alice@example.com")
		bob = newPrincipal("bob@example.com")
		clock = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		build(true)
	})

	Describe("Upload", func() {
		It("persists a photo post owned by the principal", func() {
			post := upload(alice, "hello", "a.png", "image/png")

			Expect(post.ID).NotTo(BeEmpty())
			Expect(post.Caption).To(Equal("hello"))
			Expect(post.FileType).To(Equal(entities.FileTypePhoto))
			Expect(post.FileName).To(Equal("a.png"))
			Expect(post.URL).To(Equal(gateway.url))
			Expect(post.UserID).NotTo(BeNil())
			Expect(*post.UserID).To(Equal(alice.ID))

			Expect(gateway.uploads).To(HaveLen(1))
			Expect(gateway.uploads[0].Folder).To(Equal("media_uploads/"))
			Expect(gateway.uploads[0].ContentType).To(Equal("image/png"))
			Expect(gateway.uploads[0].Content).To(Equal([]byte("payload")))
		})

		DescribeTable("classifies the file type from the content type",
			func(contentType string, expected entities.FileType) {
				post := upload(alice, "", "clip", contentType)
				Expect(post.FileType).To(Equal(expected))
			},
			Entry("image", "image/jpeg", entities.FileTypePhoto),
			Entry("video", "video/mp4", entities.FileTypeVideo),
			Entry("pdf", "application/pdf", entities.FileTypeFile),
			Entry("empty", "", entities.FileTypeFile),
		)

		It("publishes a post.created event", func() {
			post := upload(alice, "hello", "a.png", "image/png")

			Expect(publisher.events).To(HaveLen(1))
			Expect(publisher.events[0].Type).To(Equal(ports.FeedEventPostCreated))
			Expect(publisher.events[0].Post.ID).To(Equal(post.ID))
		})

		It("ignores publisher failures", func() {
			publisher.err = errBoom

			_, err := service.Upload(ctx, UploadInput{Principal: alice, FileName: "a.png", ContentType: "image/png"})
			Expect(err).NotTo(HaveOccurred())
		})

		It("requires a principal when auth is enabled", func() {
			_, err := service.Upload(ctx, UploadInput{FileName: "a.png"})
			Expect(err).To(MatchError(errors.ErrUnauthorized))
			Expect(gateway.uploads).To(BeEmpty())
		})

		It("requires a file name", func() {
			_, err := service.Upload(ctx, UploadInput{Principal: alice})
			Expect(err).To(MatchError(errors.ErrFileRequired))
		})

		It("fails without persisting when the gateway errors", func() {
			gateway.uploadErr = errBoom

			_, err := service.Upload(ctx, UploadInput{Principal: alice, FileName: "a.png", ContentType: "image/png"})
			Expect(err).To(MatchError(errors.ErrUploadFailed))
			Expect(repo.posts).To(BeEmpty())
			Expect(publisher.events).To(BeEmpty())
		})

		It("fails without persisting when the gateway returns no url", func() {
			gateway.url = ""

			_, err := service.Upload(ctx, UploadInput{Principal: alice, FileName: "a.png", ContentType: "image/png"})
			Expect(err).To(MatchError(errors.ErrUploadFailed))
			Expect(repo.posts).To(BeEmpty())
			Expect(publisher.events).To(BeEmpty())
			Expect(gateway.deleted).To(ConsistOf("media_uploads/a.png"))
		})

		It("removes the uploaded object when the insert fails", func() {
			repo.createErr = errBoom

			_, err := service.Upload(ctx, UploadInput{Principal: alice, FileName: "a.png", ContentType: "image/png"})
			Expect(err).To(MatchError(errBoom))
			Expect(gateway.deleted).To(ConsistOf("media_uploads/a.png"))
			Expect(publisher.events).To(BeEmpty())
		})

		It("stores posts without owner when auth is disabled", func() {
			build(false)

			post := upload(nil, "", "doc.pdf", "application/pdf")
			Expect(post.UserID).To(BeNil())
		})
	})

	Describe("Feed", func() {
		It("lists posts newest first", func() {
			first := upload(alice, "1", "a.png", "image/png")
			second := upload(bob, "2", "b.png", "image/png")
			third := upload(alice, "3", "c.mp4", "video/mp4")

			items, err := service.Feed(ctx, alice)
			Expect(err).NotTo(HaveOccurred())
			Expect(items).To(HaveLen(3))
			Expect(items[0].Post.ID).To(Equal(third.ID))
			Expect(items[1].Post.ID).To(Equal(second.ID))
			Expect(items[2].Post.ID).To(Equal(first.ID))
		})

		It("flags ownership and carries the requester email", func() {
			upload(bob, "", "b.png", "image/png")
			upload(alice, "", "a.png", "image/png")

			items, err := service.Feed(ctx, alice)
			Expect(err).NotTo(HaveOccurred())
			Expect(items[0].IsOwner).To(BeTrue())
			Expect(items[1].IsOwner).To(BeFalse())
			for _, item := range items {
				Expect(item.Email).To(Equal("alice@example.com"))
			}
		})

		It("returns the round-tripped entry", func() {
			upload(alice, "hello", "a.png", "image/png")

			items, err := service.Feed(ctx, alice)
			Expect(err).NotTo(HaveOccurred())
			Expect(items).To(HaveLen(1))
			Expect(items[0].Post.Caption).To(Equal("hello"))
			Expect(items[0].Post.FileName).To(Equal("a.png"))
			Expect(items[0].Post.FileType).To(Equal(entities.FileTypePhoto))
		})

		It("requires a principal when auth is enabled", func() {
			_, err := service.Feed(ctx, nil)
			Expect(err).To(MatchError(errors.ErrUnauthorized))
		})

		It("omits ownership when auth is disabled", func() {
			build(false)
			upload(nil, "", "a.png", "image/png")

			items, err := service.Feed(ctx, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(items).To(HaveLen(1))
			Expect(items[0].IsOwner).To(BeFalse())
			Expect(items[0].Email).To(BeEmpty())
		})
	})

	Describe("Delete", func() {
		It("removes the owner's post and publishes post.deleted", func() {
			post := upload(alice, "", "a.png", "image/png")

			Expect(service.Delete(ctx, post.ID, alice)).To(Succeed())

			items, err := service.Feed(ctx, alice)
			Expect(err).NotTo(HaveOccurred())
			Expect(items).To(BeEmpty())

			last := publisher.events[len(publisher.events)-1]
			Expect(last.Type).To(Equal(ports.FeedEventPostDeleted))
			Expect(last.PostID).To(Equal(post.ID))
		})

		It("rejects malformed ids", func() {
			Expect(service.Delete(ctx, "not-a-uuid", alice)).To(MatchError(errors.ErrInvalidPostID))
		})

		It("returns not found for unknown ids", func() {
			Expect(service.Delete(ctx, uuid.NewString(), alice)).To(MatchError(errors.ErrPostNotFound))
		})

		It("forbids deleting someone else's post", func() {
			post := upload(bob, "", "b.png", "image/png")

			Expect(service.Delete(ctx, post.ID, alice)).To(MatchError(errors.ErrNotPostOwner))
			Expect(repo.posts).To(HaveKey(post.ID))
		})

		It("returns not found when a concurrent delete wins", func() {
			post := upload(alice, "", "a.png", "image/png")
			repo.deleteMisses = true

			Expect(service.Delete(ctx, post.ID, alice)).To(MatchError(errors.ErrPostNotFound))
		})

		It("lets anyone delete when auth is disabled", func() {
			build(false)
			post := upload(nil, "", "a.png", "image/png")

			Expect(service.Delete(ctx, post.ID, nil)).To(Succeed())
			Expect(service.Delete(ctx, post.ID, nil)).To(MatchError(errors.ErrPostNotFound))
		})
	})
})
