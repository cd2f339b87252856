package usecase

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"gamebrain/internal/domain/repository"
	"gamebrain/internal/ui/loading"
	"gamebrain/internal/ui/notify"
	"gamebrain/pkg/errors"
)

// BrowseManager owns the active browse sessions, one per open game
// page. Each session is the exclusive owner of its cursor and loaded
// list; the manager only creates, finds and closes them.
type BrowseManager struct {
	guideRepo    repository.GuideRepository
	gameRepo     repository.GameRepository
	favoriteRepo repository.FavoriteRepository
	userRepo     repository.UserRepository
	notifier     *notify.Notifier
	loader       *loading.Indicator
	authState    AuthStateStream

	mu       sync.Mutex
	sessions map[string]*BrowseSession
}

func NewBrowseManager(
	guideRepo repository.GuideRepository,
	gameRepo repository.GameRepository,
	favoriteRepo repository.FavoriteRepository,
	userRepo repository.UserRepository,
	notifier *notify.Notifier,
	loader *loading.Indicator,
	authState AuthStateStream,
) *BrowseManager {
	return &BrowseManager{
		guideRepo:    guideRepo,
		gameRepo:     gameRepo,
		favoriteRepo: favoriteRepo,
		userRepo:     userRepo,
		notifier:     notifier,
		loader:       loader,
		authState:    authState,
		sessions:     make(map[string]*BrowseSession),
	}
}

// Open creates a session for a game page, subscribes it to the auth
// stream and loads game metadata plus the first page of guides.
func (m *BrowseManager) Open(ctx context.Context, gameID string) (*BrowseSession, error) {
	if gameID == "" {
		return nil, errors.BadRequest("Game id is required", nil)
	}

	session := newBrowseSession(
		uuid.NewString(),
		gameID,
		m.guideRepo,
		m.gameRepo,
		m.favoriteRepo,
		m.userRepo,
		m.notifier,
		m.loader,
	)

	if m.authState != nil {
		session.unsubscribe = m.authState.OnAuthStateChanged(func(uid string) {
			session.SetUser(context.Background(), uid)
		})
	}

	if err := session.Initialize(ctx); err != nil {
		session.Close()
		return nil, err
	}

	m.mu.Lock()
	m.sessions[session.ID()] = session
	m.mu.Unlock()

	return session, nil
}

func (m *BrowseManager) Get(id string) (*BrowseSession, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, ok := m.sessions[id]
	return session, ok
}

func (m *BrowseManager) Close(id string) {
	m.mu.Lock()
	session, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if ok {
		session.Close()
	}
}
