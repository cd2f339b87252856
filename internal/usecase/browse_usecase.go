package usecase

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"gamebrain/internal/domain/entity"
	"gamebrain/internal/domain/repository"
	"gamebrain/internal/ui/loading"
	"gamebrain/internal/ui/notify"
	"gamebrain/pkg/errors"
	"gamebrain/pkg/logger"
	"gamebrain/pkg/utils"
)

const (
	// PageSize is the number of guides fetched per page.
	PageSize = 9

	// SearchDebounce is the quiet period before a keystroke burst is
	// applied as a filter.
	SearchDebounce = 300 * time.Millisecond
)

type SortCriterion string

const (
	SortNewest SortCriterion = "newest"
	SortOldest SortCriterion = "oldest"
	SortLikes  SortCriterion = "likes"
)

// GuideItem is one loaded guide plus the per-session view state merged
// into it at render time.
type GuideItem struct {
	Guide      *entity.Guide `json:"guide"`
	IsFavorite bool          `json:"is_favorite"`
	Liked      bool          `json:"liked"`
}

// BrowseSession is the per-game page context: the authenticated user
// (nullable), the user's favorite set, the guides loaded so far and the
// pagination cursor all live here instead of in ambient state, so
// several sessions can coexist and be tested in isolation.
//
// Search and sort operate on the guides loaded so far only; they never
// touch the gateway, so their correctness is scoped to the loaded list.
// The gateway ordering is fixed (createdAt descending), which keeps the
// cursor valid across search and sort changes.
type BrowseSession struct {
	id string

	guideRepo    repository.GuideRepository
	gameRepo     repository.GameRepository
	favoriteRepo repository.FavoriteRepository
	userRepo     repository.UserRepository
	notifier     *notify.Notifier
	loader       *loading.Indicator
	debouncer    *utils.Debouncer

	mu        sync.Mutex
	gameID    string
	game      *entity.Game
	uid       string
	profile   *entity.User
	favorites map[string]struct{}
	liked     map[string]struct{}
	guides    []*entity.Guide
	cursor    repository.Cursor
	hasMore   bool
	keyword   string
	sortBy    SortCriterion

	unsubscribe func()
}

func newBrowseSession(
	id, gameID string,
	guideRepo repository.GuideRepository,
	gameRepo repository.GameRepository,
	favoriteRepo repository.FavoriteRepository,
	userRepo repository.UserRepository,
	notifier *notify.Notifier,
	loader *loading.Indicator,
) *BrowseSession {
	return &BrowseSession{
		id:           id,
		gameID:       gameID,
		guideRepo:    guideRepo,
		gameRepo:     gameRepo,
		favoriteRepo: favoriteRepo,
		userRepo:     userRepo,
		notifier:     notifier,
		loader:       loader,
		debouncer:    utils.NewDebouncer(SearchDebounce),
		favorites:    make(map[string]struct{}),
		liked:        make(map[string]struct{}),
		sortBy:       SortNewest,
	}
}

func (s *BrowseSession) ID() string {
	return s.id
}

// Initialize loads the game metadata and the first page of guides.
func (s *BrowseSession) Initialize(ctx context.Context) error {
	s.loader.Acquire()
	defer s.loader.Release()

	game, err := s.gameRepo.GetByID(ctx, s.gameID)
	if err != nil {
		if errors.Is(err, "NOT_FOUND") {
			s.notifier.Notify("Game not found.", notify.Error, 0)
		} else {
			s.notifier.Notify("Could not load the game.", notify.Error, 0)
		}
		return err
	}

	s.mu.Lock()
	s.game = game
	s.mu.Unlock()

	_, err = s.LoadPage(ctx, true)
	return err
}

func (s *BrowseSession) Game() *entity.Game {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game
}

// SetUser is re-entrant: it runs on every auth state transition, not
// just the first one, and reloads the favorite set each time so a new
// sign-in starts from a fresh snapshot. The session like set survives
// auth changes; it belongs to the page, not the user.
func (s *BrowseSession) SetUser(ctx context.Context, uid string) {
	if uid == "" {
		s.mu.Lock()
		s.uid = ""
		s.profile = nil
		s.favorites = make(map[string]struct{})
		s.mu.Unlock()
		return
	}

	ids, err := s.favoriteRepo.ListGuideIDsByUser(ctx, uid)
	if err != nil {
		logger.Warn("browse: failed to load favorites for %s: %v", uid, err)
		ids = nil
	}

	favorites := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		favorites[id] = struct{}{}
	}

	profile, err := s.userRepo.GetByID(ctx, uid)
	if err != nil {
		logger.Warn("browse: failed to load profile for %s: %v", uid, err)
		profile = nil
	}

	s.mu.Lock()
	s.uid = uid
	s.profile = profile
	s.favorites = favorites
	s.mu.Unlock()
}

// CanCreate reports whether the guide-creation control is shown.
func (s *BrowseSession) CanCreate() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.uid != ""
}

func (s *BrowseSession) HasMore() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasMore
}

// LoadPage fetches the next page of guides for the game, newest first.
// With reset it drops the loaded list and the cursor and starts from
// the first page; otherwise it continues after the stored cursor.
func (s *BrowseSession) LoadPage(ctx context.Context, reset bool) ([]GuideItem, error) {
	s.loader.Acquire()
	defer s.loader.Release()

	s.mu.Lock()
	if reset {
		s.guides = nil
		s.cursor = nil
		s.hasMore = false
	}
	cursor := s.cursor
	s.mu.Unlock()

	batch, next, err := s.guideRepo.ListByGame(ctx, s.gameID, PageSize, cursor)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if next != nil {
		s.cursor = next
	}
	// A short page is the end-of-list signal; the store exposes no
	// total count.
	s.hasMore = len(batch) == PageSize
	s.guides = append(s.guides, batch...)

	return s.visibleLocked(), nil
}

// ToggleFavorite flips the favorite state for a guide. Toggling off
// deletes every matching row, not just one, so duplicates left behind
// by a toggle race are cleaned up in passing.
func (s *BrowseSession) ToggleFavorite(ctx context.Context, guideID string) (bool, error) {
	s.mu.Lock()
	uid := s.uid
	s.mu.Unlock()

	if uid == "" {
		s.notifier.Notify("Sign in to add favorites.", notify.Warning, 0)
		return false, errors.Unauthenticated("Sign in to add favorites", nil)
	}

	existing, err := s.favoriteRepo.FindByUserAndGuide(ctx, uid, guideID)
	if err != nil {
		s.notifier.Notify("Could not update favorites.", notify.Error, 0)
		return false, err
	}

	if len(existing) == 0 {
		// Optimistic: the star flips before the write settles. It is
		// not rolled back on failure; the next favorites reload
		// resyncs it.
		s.mu.Lock()
		s.favorites[guideID] = struct{}{}
		s.mu.Unlock()

		if _, err := s.favoriteRepo.Create(ctx, uid, guideID); err != nil {
			s.notifier.Notify("Could not update favorites.", notify.Error, 0)
			return true, err
		}

		s.notifier.Notify("Added to favorites!", notify.Success, 0)
		return true, nil
	}

	s.mu.Lock()
	delete(s.favorites, guideID)
	s.mu.Unlock()

	for _, fav := range existing {
		if err := s.favoriteRepo.Delete(ctx, fav.ID); err != nil {
			s.notifier.Notify("Could not update favorites.", notify.Error, 0)
			return false, err
		}
	}

	s.notifier.Notify("Removed from favorites.", notify.Info, 0)
	return false, nil
}

// Like increments the guide's like counter through an atomic relative
// update at the gateway. A session allows one like per guide; the dedup
// set is never persisted, so a reload allows liking again.
func (s *BrowseSession) Like(ctx context.Context, guideID string) (int, error) {
	s.mu.Lock()
	uid := s.uid
	_, already := s.liked[guideID]
	s.mu.Unlock()

	if uid == "" {
		s.notifier.Notify("Sign in to like guides.", notify.Warning, 0)
		return 0, errors.Unauthenticated("Sign in to like guides", nil)
	}
	if already {
		s.notifier.Notify("You already liked this guide!", notify.Warning, 0)
		return 0, errors.Conflict("Guide already liked this session")
	}

	// Optimistic: mark and bump the displayed count before the write
	// settles; not rolled back on failure.
	s.mu.Lock()
	s.liked[guideID] = struct{}{}
	count := 0
	for _, g := range s.guides {
		if g.ID == guideID {
			g.LikesCount++
			count = g.LikesCount
			break
		}
	}
	s.mu.Unlock()

	if err := s.guideRepo.IncrementLikes(ctx, guideID, 1); err != nil {
		s.notifier.Notify("Could not like the guide.", notify.Error, 0)
		return count, err
	}

	s.notifier.Notify("Guide liked!", notify.Success, 0)
	return count, nil
}

// CreateGuide publishes a new guide for the session's game and
// prepends it to the loaded list, where it would appear after a
// newest-first reload anyway.
func (s *BrowseSession) CreateGuide(ctx context.Context, title, content string) (*entity.Guide, error) {
	s.mu.Lock()
	uid := s.uid
	profile := s.profile
	s.mu.Unlock()

	if uid == "" {
		s.notifier.Notify("Sign in to publish guides.", notify.Warning, 0)
		return nil, errors.Unauthenticated("Sign in to publish guides", nil)
	}

	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if title == "" || content == "" {
		return nil, errors.BadRequest("Title and content are required", nil)
	}

	guide := &entity.Guide{
		Title:     title,
		Content:   content,
		GameID:    s.gameID,
		AuthorID:  uid,
		CreatedAt: time.Now(),
	}
	if profile != nil {
		guide.AuthorName = profile.Username
		guide.AuthorVerified = profile.Verified
	}

	if err := s.guideRepo.Create(ctx, guide); err != nil {
		s.notifier.Notify("Could not publish the guide.", notify.Error, 0)
		return nil, err
	}

	s.mu.Lock()
	s.guides = append([]*entity.Guide{guide}, s.guides...)
	s.mu.Unlock()

	s.notifier.Notify("Guide published!", notify.Success, 0)
	return guide, nil
}

// SearchNow applies a keyword filter over the loaded guides and
// returns the filtered view. A blank keyword restores the full list.
func (s *BrowseSession) SearchNow(keyword string) []GuideItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keyword = keyword
	return s.visibleLocked()
}

// Search is the debounced variant used for keystroke events: only the
// last keyword of a burst is applied, after a quiet period.
func (s *BrowseSession) Search(keyword string, render func([]GuideItem)) {
	s.debouncer.Do(func() {
		items := s.SearchNow(keyword)
		if render != nil {
			render(items)
		}
	})
}

// SetSort changes the sort criterion and returns the re-sorted view.
// Unknown criteria fall back to newest-first.
func (s *BrowseSession) SetSort(criterion SortCriterion) []GuideItem {
	switch criterion {
	case SortLikes, SortOldest, SortNewest:
	default:
		criterion = SortNewest
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sortBy = criterion
	return s.visibleLocked()
}

// Visible returns the loaded guides under the current keyword and sort,
// with favorite and liked state merged in from the session's sets.
func (s *BrowseSession) Visible() []GuideItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visibleLocked()
}

func (s *BrowseSession) visibleLocked() []GuideItem {
	filtered := make([]*entity.Guide, 0, len(s.guides))
	for _, g := range s.guides {
		if utils.MatchesKeyword(s.keyword, g.Title, g.Content) {
			filtered = append(filtered, g)
		}
	}

	switch s.sortBy {
	case SortLikes:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].LikesCount > filtered[j].LikesCount
		})
	case SortOldest:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].CreatedAt.Before(filtered[j].CreatedAt)
		})
	default:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
		})
	}

	items := make([]GuideItem, len(filtered))
	for i, g := range filtered {
		_, fav := s.favorites[g.ID]
		_, liked := s.liked[g.ID]
		items[i] = GuideItem{Guide: g, IsFavorite: fav, Liked: liked}
	}
	return items
}

// Close detaches the session from the auth stream and cancels any
// pending debounced search.
func (s *BrowseSession) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
	s.debouncer.Stop()
}
