package services

import (
	"context"
	stderrors "errors"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/rafabene/mediafeed-backend/internal/domain/entities"
	"github.com/rafabene/mediafeed-backend/internal/domain/errors"
	"github.com/rafabene/mediafeed-backend/internal/domain/ports"
)

// memoryPostRepo guarda posts em memória
type memoryPostRepo struct {
	mu        sync.Mutex
	posts     map[string]*entities.Post
	createErr error
	// deleteMisses simula outra requisição removendo o post antes do delete
	deleteMisses bool
}

func newMemoryPostRepo() *memoryPostRepo {
	return &memoryPostRepo{posts: make(map[string]*entities.Post)}
}

func (r *memoryPostRepo) Create(_ context.Context, post *entities.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	if post.ID == "" {
		post.ID = uuid.NewString()
	}
	cp := *post
	r.posts[post.ID] = &cp
	return nil
}

func (r *memoryPostRepo) FindByID(_ context.Context, id string) (*entities.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	post, ok := r.posts[id]
	if !ok {
		return nil, nil
	}
	cp := *post
	return &cp, nil
}

func (r *memoryPostRepo) ListFeed(_ context.Context) ([]*entities.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entities.Post, 0, len(r.posts))
	for _, p := range r.posts {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *memoryPostRepo) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.deleteMisses {
		delete(r.posts, id)
		return false, nil
	}
	if _, ok := r.posts[id]; !ok {
		return false, nil
	}
	delete(r.posts, id)
	return true, nil
}

// memoryUserRepo guarda usuários em memória
type memoryUserRepo struct {
	mu    sync.Mutex
	users map[string]*entities.User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: make(map[string]*entities.User)}
}

func (r *memoryUserRepo) Create(_ context.Context, user *entities.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return errors.ErrEmailAlreadyExists
		}
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *memoryUserRepo) FindByID(_ context.Context, id string) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *memoryUserRepo) FindByEmail(_ context.Context, email string) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range r.users {
		if u.Email.String() == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memoryUserRepo) Update(_ context.Context, user *entities.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return errors.ErrUserNotFound
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *memoryUserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

// passthroughUoW executa a função sem transação real
type passthroughUoW struct{}

func (passthroughUoW) Begin(ctx context.Context) (context.Context, error) { return ctx, nil }
func (passthroughUoW) Commit(context.Context) error                       { return nil }
func (passthroughUoW) Rollback(context.Context) error                     { return nil }
func (passthroughUoW) WithTransaction(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

// fakeGateway registra uploads e remoções
type fakeGateway struct {
	uploads   []ports.UploadRequest
	deleted   []string
	url       string
	uploadErr error
	deleteErr error
}

func (g *fakeGateway) Upload(_ context.Context, req ports.UploadRequest) (*ports.UploadResult, error) {
	g.uploads = append(g.uploads, req)
	if g.uploadErr != nil {
		return nil, g.uploadErr
	}
	return &ports.UploadResult{FileID: req.Folder + req.FileName, URL: g.url}, nil
}

func (g *fakeGateway) Delete(_ context.Context, fileID string) error {
	g.deleted = append(g.deleted, fileID)
	return g.deleteErr
}

// recordingPublisher guarda os eventos publicados
type recordingPublisher struct {
	events []ports.FeedEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event ports.FeedEvent) error {
	p.events = append(p.events, event)
	return p.err
}

var errBoom = stderrors.New("boom")
