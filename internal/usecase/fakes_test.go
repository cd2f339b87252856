package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"gamebrain/internal/domain/entity"
	"gamebrain/internal/domain/repository"
	"gamebrain/internal/infrastructure/firebase"
	"gamebrain/pkg/errors"
)

// In-memory gateway fakes. Cursors are the id of the last returned
// guide, which keeps them opaque to the session under test.

type fakeGuideRepo struct {
	mu         sync.Mutex
	guides     []*entity.Guide
	increments map[string]int
	failList   bool
	failIncr   bool
	failRecent bool
}

func newFakeGuideRepo(guides ...*entity.Guide) *fakeGuideRepo {
	return &fakeGuideRepo{guides: guides, increments: make(map[string]int)}
}

func (r *fakeGuideRepo) byGameNewestFirst(gameID string) []*entity.Guide {
	var out []*entity.Guide
	for _, g := range r.guides {
		if g.GameID == gameID {
			out = append(out, g)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (r *fakeGuideRepo) ListByGame(ctx context.Context, gameID string, pageSize int, after repository.Cursor) ([]*entity.Guide, repository.Cursor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failList {
		return nil, nil, errors.Internal("gateway unavailable", nil)
	}

	ordered := r.byGameNewestFirst(gameID)

	start := 0
	if after != nil {
		lastID := after.(string)
		for i, g := range ordered {
			if g.ID == lastID {
				start = i + 1
				break
			}
		}
	}

	end := start + pageSize
	if end > len(ordered) {
		end = len(ordered)
	}
	if start >= len(ordered) {
		return nil, nil, nil
	}

	// Hand out copies: the session's loaded list is a local cache, not
	// a view into the remote store.
	batch := make([]*entity.Guide, 0, end-start)
	for _, g := range ordered[start:end] {
		c := *g
		batch = append(batch, &c)
	}
	return batch, repository.Cursor(batch[len(batch)-1].ID), nil
}

func (r *fakeGuideRepo) Create(ctx context.Context, guide *entity.Guide) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if guide.ID == "" {
		guide.ID = fmt.Sprintf("new%d", len(r.guides)+1)
	}
	c := *guide
	r.guides = append(r.guides, &c)
	return nil
}

func (r *fakeGuideRepo) GetByID(ctx context.Context, id string) (*entity.Guide, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, g := range r.guides {
		if g.ID == id {
			return g, nil
		}
	}
	return nil, errors.NotFound("Guide", nil)
}

func (r *fakeGuideRepo) IncrementLikes(ctx context.Context, id string, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failIncr {
		return errors.Internal("gateway unavailable", nil)
	}
	r.increments[id] += delta
	for _, g := range r.guides {
		if g.ID == id {
			g.LikesCount += delta
			return nil
		}
	}
	return errors.NotFound("Guide", nil)
}

func (r *fakeGuideRepo) ListRecent(ctx context.Context, limit int) ([]*entity.Guide, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failRecent {
		return nil, errors.Internal("gateway unavailable", nil)
	}
	ordered := make([]*entity.Guide, len(r.guides))
	copy(ordered, r.guides)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].CreatedAt.After(ordered[j].CreatedAt)
	})
	if len(ordered) > limit {
		ordered = ordered[:limit]
	}
	return ordered, nil
}

func (r *fakeGuideRepo) CountByAuthor(ctx context.Context, authorID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, g := range r.guides {
		if g.AuthorID == authorID {
			n++
		}
	}
	return n, nil
}

type fakeGameRepo struct {
	games map[string]*entity.Game
}

func newFakeGameRepo(games ...*entity.Game) *fakeGameRepo {
	m := make(map[string]*entity.Game, len(games))
	for _, g := range games {
		m[g.ID] = g
	}
	return &fakeGameRepo{games: m}
}

func (r *fakeGameRepo) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	if g, ok := r.games[id]; ok {
		return g, nil
	}
	return nil, errors.NotFound("Game", nil)
}

func (r *fakeGameRepo) List(ctx context.Context) ([]*entity.Game, error) {
	out := make([]*entity.Game, 0, len(r.games))
	for _, g := range r.games {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type fakeFavoriteRepo struct {
	mu      sync.Mutex
	nextID  int
	rows    []*entity.Favorite
	creates int
	deletes int
}

func newFakeFavoriteRepo() *fakeFavoriteRepo {
	return &fakeFavoriteRepo{}
}

func (r *fakeFavoriteRepo) seed(userID, guideID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	r.rows = append(r.rows, &entity.Favorite{
		ID:      fmt.Sprintf("fav%d", r.nextID),
		UserID:  userID,
		GuideID: guideID,
	})
}

func (r *fakeFavoriteRepo) ListGuideIDsByUser(ctx context.Context, userID string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []string
	for _, f := range r.rows {
		if f.UserID == userID {
			ids = append(ids, f.GuideID)
		}
	}
	return ids, nil
}

func (r *fakeFavoriteRepo) FindByUserAndGuide(ctx context.Context, userID, guideID string) ([]*entity.Favorite, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Favorite
	for _, f := range r.rows {
		if f.UserID == userID && f.GuideID == guideID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *fakeFavoriteRepo) Create(ctx context.Context, userID, guideID string) (*entity.Favorite, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	r.creates++
	fav := &entity.Favorite{
		ID:        fmt.Sprintf("fav%d", r.nextID),
		UserID:    userID,
		GuideID:   guideID,
		CreatedAt: time.Now(),
	}
	r.rows = append(r.rows, fav)
	return fav, nil
}

func (r *fakeFavoriteRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, f := range r.rows {
		if f.ID == id {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			r.deletes++
			return nil
		}
	}
	return errors.NotFound("Favorite", nil)
}

func (r *fakeFavoriteRepo) ListByUser(ctx context.Context, userID string, limit int) ([]*entity.Favorite, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Favorite
	for _, f := range r.rows {
		if f.UserID == userID {
			out = append(out, f)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeFavoriteRepo) CountByUser(ctx context.Context, userID string) (int64, error) {
	ids, _ := r.ListGuideIDsByUser(ctx, userID)
	return int64(len(ids)), nil
}

type fakeBuildRepo struct {
	builds []*entity.Build
}

func (r *fakeBuildRepo) ListByUser(ctx context.Context, userID string, limit int) ([]*entity.Build, error) {
	var out []*entity.Build
	for _, b := range r.builds {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeBuildRepo) CountByUser(ctx context.Context, userID string) (int64, error) {
	out, _ := r.ListByUser(ctx, userID, 0)
	return int64(len(out)), nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	m := make(map[string]*entity.User, len(users))
	for _, u := range users {
		m[u.ID] = u
	}
	return &fakeUserRepo{users: m}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, errors.NotFound("User", nil)
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, errors.NotFound("User", nil)
}

type fakeAuthClient struct {
	mu      sync.Mutex
	nextUID int
	byEmail map[string]string // email -> password
	uids    map[string]string // email -> uid
}

func newFakeAuthClient() *fakeAuthClient {
	return &fakeAuthClient{byEmail: make(map[string]string), uids: make(map[string]string)}
}

func (f *fakeAuthClient) CreateUser(ctx context.Context, email, password, displayName string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextUID++
	uid := fmt.Sprintf("uid%d", f.nextUID)
	f.byEmail[email] = password
	f.uids[email] = uid
	return uid, nil
}

func (f *fakeAuthClient) VerifyToken(ctx context.Context, token string) (string, error) {
	return token, nil
}

func (f *fakeAuthClient) SignInWithEmailPassword(email, password string) (string, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.byEmail[email]
	if !ok {
		return "", "", &firebase.AuthError{Code: "EMAIL_NOT_FOUND"}
	}
	if stored != password {
		return "", "", &firebase.AuthError{Code: "INVALID_PASSWORD"}
	}
	return "token-" + f.uids[email], f.uids[email], nil
}

func (f *fakeAuthClient) DeleteUser(ctx context.Context, uid string) error {
	return nil
}
