package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gamebrain/internal/domain/entity"
	"gamebrain/internal/infrastructure/firebase"
	"gamebrain/internal/ui/loading"
	"gamebrain/internal/ui/notify"
	"gamebrain/pkg/errors"
)

var testBase = time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)

func seedGuides(n int, gameID string) []*entity.Guide {
	guides := make([]*entity.Guide, n)
	for i := 0; i < n; i++ {
		guides[i] = &entity.Guide{
			ID:         fmt.Sprintf("g%d", i+1),
			Title:      fmt.Sprintf("Guide %d", i+1),
			Content:    fmt.Sprintf("content for guide %d", i+1),
			AuthorName: "ren",
			GameID:     gameID,
			LikesCount: i % 5,
			CreatedAt:  testBase.Add(-time.Duration(i) * time.Hour),
		}
	}
	return guides
}

type browseEnv struct {
	guideRepo *fakeGuideRepo
	gameRepo  *fakeGameRepo
	favRepo   *fakeFavoriteRepo
	userRepo  *fakeUserRepo
	notifier  *notify.Notifier
	hub       *firebase.AuthStateHub
	manager   *BrowseManager
}

func newBrowseEnv(t *testing.T, guides []*entity.Guide) *browseEnv {
	t.Helper()

	env := &browseEnv{
		guideRepo: newFakeGuideRepo(guides...),
		gameRepo: newFakeGameRepo(&entity.Game{
			ID:          "game1",
			Name:        "Hollow Depths",
			Description: "A punishing platformer.",
		}),
		favRepo: newFakeFavoriteRepo(),
		userRepo: newFakeUserRepo(&entity.User{
			ID:       "u1",
			Username: "ren",
			Verified: true,
		}),
		notifier: notify.NewNotifier(),
		hub:      firebase.NewAuthStateHub(),
	}
	env.hub.SetSignedOut()

	env.manager = NewBrowseManager(
		env.guideRepo,
		env.gameRepo,
		env.favRepo,
		env.userRepo,
		env.notifier,
		loading.NewIndicator(),
		env.hub,
	)
	return env
}

func lastToast(t *testing.T, n *notify.Notifier) notify.Toast {
	t.Helper()
	active := n.Active()
	require.NotEmpty(t, active)
	return active[len(active)-1]
}

func TestOpenLoadsGameAndFirstPage(t *testing.T) {
	env := newBrowseEnv(t, seedGuides(12, "game1"))

	session, err := env.manager.Open(context.Background(), "game1")
	require.NoError(t, err)

	assert.Equal(t, "Hollow Depths", session.Game().Name)
	assert.Len(t, session.Visible(), PageSize)
	assert.True(t, session.HasMore())

	// Signed-out visitor: no stars, no creation control.
	for _, item := range session.Visible() {
		assert.False(t, item.IsFavorite)
	}
	assert.False(t, session.CanCreate())
}

func TestOpenRejectsMissingGameID(t *testing.T) {
	env := newBrowseEnv(t, nil)

	_, err := env.manager.Open(context.Background(), "")
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestOpenUnknownGame(t *testing.T) {
	env := newBrowseEnv(t, nil)

	_, err := env.manager.Open(context.Background(), "nope")
	require.True(t, errors.Is(err, "NOT_FOUND"))
	assert.Equal(t, notify.Error, lastToast(t, env.notifier).Kind)
}

func TestPaginationSecondPageStrictlyOlder(t *testing.T) {
	env := newBrowseEnv(t, seedGuides(12, "game1"))

	session, err := env.manager.Open(context.Background(), "game1")
	require.NoError(t, err)

	first := session.Visible()
	require.Len(t, first, PageSize)
	oldestOfFirst := first[len(first)-1].Guide.CreatedAt

	_, err = session.LoadPage(context.Background(), false)
	require.NoError(t, err)

	all := session.Visible()
	require.Len(t, all, 12)
	for _, item := range all[PageSize:] {
		assert.True(t, item.Guide.CreatedAt.Before(oldestOfFirst),
			"second page item %s must be older than the whole first page", item.Guide.ID)
	}

	// 12 guides: the second page has 3 items, so the end of the list
	// has been reached and the load-more control hides.
	assert.False(t, session.HasMore())
}

func TestLoadPageResetClearsListAndCursor(t *testing.T) {
	env := newBrowseEnv(t, seedGuides(12, "game1"))

	session, err := env.manager.Open(context.Background(), "game1")
	require.NoError(t, err)
	_, err = session.LoadPage(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, session.Visible(), 12)

	items, err := session.LoadPage(context.Background(), true)
	require.NoError(t, err)
	assert.Len(t, items, PageSize)
	assert.Equal(t, "g1", items[0].Guide.ID, "reset restarts from the newest guide")
}

func TestEmptyFirstPage(t *testing.T) {
	env := newBrowseEnv(t, nil)

	session, err := env.manager.Open(context.Background(), "game1")
	require.NoError(t, err)

	assert.Empty(t, session.Visible())
	assert.False(t, session.HasMore())
}

func TestLoadPageGatewayFailure(t *testing.T) {
	env := newBrowseEnv(t, seedGuides(3, "game1"))

	session, err := env.manager.Open(context.Background(), "game1")
	require.NoError(t, err)

	env.guideRepo.failList = true
	_, err = session.LoadPage(context.Background(), false)
	assert.Error(t, err)
}

func TestSearchEmptyKeywordReturnsLoadedListUnfiltered(t *testing.T) {
	env := newBrowseEnv(t, seedGuides(9, "game1"))

	session, err := env.manager.Open(context.Background(), "game1")
	require.NoError(t, err)

	loaded := session.Visible()

	for _, kw := range []string{"", "   ", "\t"} {
		items := session.SearchNow(kw)
		require.Len(t, items, len(loaded))
		for i := range items {
			assert.Equal(t, loaded[i].Guide.ID, items[i].Guide.ID)
		}
	}
}

func TestSearchFiltersTitleAndContentCaseInsensitive(t *testing.T) {
	guides := seedGuides(5, "game1")
	guides[1].Title = "Secret BOSS strategies"
	guides[3].Content = "how to cheese the boss fight"
	env := newBrowseEnv(t, guides)

	session, err := env.manager.Open(context.Background(), "game1")
	require.NoError(t, err)

	items := session.SearchNow("boss")
	require.Len(t, items, 2)
	assert.Equal(t, "g2", items[0].Guide.ID)
	assert.Equal(t, "g4", items[1].Guide.ID)
}

func TestSearchDebounceAppliesLastKeyword(t *testing.T) {
	guides := seedGuides(5, "game1")
	guides[0].Title = "dragon farming"
	env := newBrowseEnv(t, guides)

	session, err := env.manager.Open(context.Background(), "game1")
	require.NoError(t, err)

	results := make(chan []GuideItem, 4)
	for _, kw := range []string{"d", "dr", "dra", "dragon"} {
		session.Search(kw, func(items []GuideItem) { results <- items })
	}

	select {
	case items := <-results:
		require.Len(t, items, 1)
		assert.Equal(t, "g1", items[0].Guide.ID)
	case <-time.After(2 * time.Second):
		t.Fatal("debounced search never fired")
	}

	// Only the last keyword of the burst fired.
	select {
	case <-results:
		t.Fatal("debounce let an intermediate keyword through")
	case <-time.After(SearchDebounce * 2):
	}
}

func TestSortOrdering(t *testing.T) {
	guides := seedGuides(9, "game1")
	env := newBrowseEnv(t, guides)

	session, err := env.manager.Open(context.Background(), "game1")
	require.NoError(t, err)

	byLikes := session.SetSort(SortLikes)
	for i := 1; i < len(byLikes); i++ {
		assert.GreaterOrEqual(t, byLikes[i-1].Guide.LikesCount, byLikes[i].Guide.LikesCount)
	}

	oldest := session.SetSort(SortOldest)
	for i := 1; i < len(oldest); i++ {
		assert.False(t, oldest[i].Guide.CreatedAt.Before(oldest[i-1].Guide.CreatedAt))
	}

	newest := session.SetSort(SortNewest)
	for i := 1; i < len(newest); i++ {
		assert.False(t, newest[i].Guide.CreatedAt.After(newest[i-1].Guide.CreatedAt))
	}

	fallback := session.SetSort(SortCriterion("bogus"))
	assert.Equal(t, newest[0].Guide.ID, fallback[0].Guide.ID)
}

func TestToggleFavoriteRequiresSignIn(t *testing.T) {
	env := newBrowseEnv(t, seedGuides(3, "game1"))

	session, err := env.manager.Open(context.Background(), "game1")
	require.NoError(t, err)

	_, err = session.ToggleFavorite(context.Background(), "g1")
	require.True(t, errors.Is(err, "UNAUTHENTICATED"))
	assert.Equal(t, notify.Warning, lastToast(t, env.notifier).Kind)
	assert.Zero(t, env.favRepo.creates)
}

func TestToggleFavoriteRoundTrip(t *testing.T) {
	env := newBrowseEnv(t, seedGuides(3, "game1"))

	session, err := env.manager.Open(context.Background(), "game1")
	require.NoError(t, err)
	env.hub.SetSignedIn("u1")

	nowFav, err := session.ToggleFavorite(context.Background(), "g1")
	require.NoError(t, err)
	assert.True(t, nowFav)

	rows, _ := env.favRepo.FindByUserAndGuide(context.Background(), "u1", "g1")
	assert.Len(t, rows, 1)
	assert.True(t, session.Visible()[0].IsFavorite)

	nowFav, err = session.ToggleFavorite(context.Background(), "g1")
	require.NoError(t, err)
	assert.False(t, nowFav)

	rows, _ = env.favRepo.FindByUserAndGuide(context.Background(), "u1", "g1")
	assert.Empty(t, rows)
	assert.False(t, session.Visible()[0].IsFavorite)
}

func TestToggleFavoriteCleansUpDuplicateRows(t *testing.T) {
	env := newBrowseEnv(t, seedGuides(3, "game1"))

	// Duplicates left behind by an earlier toggle race.
	env.favRepo.seed("u1", "g2")
	env.favRepo.seed("u1", "g2")
	env.favRepo.seed("u1", "g2")

	session, err := env.manager.Open(context.Background(), "game1")
	require.NoError(t, err)
	env.hub.SetSignedIn("u1")

	nowFav, err := session.ToggleFavorite(context.Background(), "g2")
	require.NoError(t, err)
	assert.False(t, nowFav)

	rows, _ := env.favRepo.FindByUserAndGuide(context.Background(), "u1", "g2")
	assert.Empty(t, rows, "toggle off removes every duplicate row")
}

func TestSignedInUserSeesPriorFavorites(t *testing.T) {
	env := newBrowseEnv(t, seedGuides(5, "game1"))
	env.favRepo.seed("u1", "g2")
	env.favRepo.seed("u1", "g4")

	session, err := env.manager.Open(context.Background(), "game1")
	require.NoError(t, err)
	env.hub.SetSignedIn("u1")

	starred := map[string]bool{}
	for _, item := range session.Visible() {
		starred[item.Guide.ID] = item.IsFavorite
	}
	assert.True(t, starred["g2"])
	assert.True(t, starred["g4"])
	assert.False(t, starred["g1"])
	assert.True(t, session.CanCreate())

	// Toggling a third guide creates exactly one row and leaves the
	// two existing stars alone.
	_, err = session.ToggleFavorite(context.Background(), "g5")
	require.NoError(t, err)
	assert.Equal(t, 1, env.favRepo.creates)

	for _, item := range session.Visible() {
		switch item.Guide.ID {
		case "g2", "g4", "g5":
			assert.True(t, item.IsFavorite, item.Guide.ID)
		default:
			assert.False(t, item.IsFavorite, item.Guide.ID)
		}
	}
}

func TestSignOutClearsFavoriteSet(t *testing.T) {
	env := newBrowseEnv(t, seedGuides(3, "game1"))
	env.favRepo.seed("u1", "g1")

	session, err := env.manager.Open(context.Background(), "game1")
	require.NoError(t, err)

	env.hub.SetSignedIn("u1")
	assert.True(t, session.Visible()[0].IsFavorite)

	env.hub.SetSignedOut()
	assert.False(t, session.Visible()[0].IsFavorite)
	assert.False(t, session.CanCreate())
}

func TestLikeOncePerSession(t *testing.T) {
	env := newBrowseEnv(t, seedGuides(3, "game1"))

	session, err := env.manager.Open(context.Background(), "game1")
	require.NoError(t, err)
	env.hub.SetSignedIn("u1")

	before := session.Visible()[0].Guide.LikesCount

	count, err := session.Like(context.Background(), "g1")
	require.NoError(t, err)
	assert.Equal(t, before+1, count, "displayed count bumps by exactly one")
	assert.Equal(t, 1, env.guideRepo.increments["g1"])
	assert.True(t, session.Visible()[0].Liked)

	_, err = session.Like(context.Background(), "g1")
	require.True(t, errors.Is(err, "CONFLICT"))
	assert.Equal(t, notify.Warning, lastToast(t, env.notifier).Kind)
	assert.Equal(t, 1, env.guideRepo.increments["g1"], "no second gateway write")
}

func TestLikeRequiresSignIn(t *testing.T) {
	env := newBrowseEnv(t, seedGuides(1, "game1"))

	session, err := env.manager.Open(context.Background(), "game1")
	require.NoError(t, err)

	_, err = session.Like(context.Background(), "g1")
	require.True(t, errors.Is(err, "UNAUTHENTICATED"))
	assert.Zero(t, env.guideRepo.increments["g1"])
}

func TestLikeFailureKeepsOptimisticState(t *testing.T) {
	env := newBrowseEnv(t, seedGuides(1, "game1"))

	session, err := env.manager.Open(context.Background(), "game1")
	require.NoError(t, err)
	env.hub.SetSignedIn("u1")

	env.guideRepo.failIncr = true
	_, err = session.Like(context.Background(), "g1")
	require.Error(t, err)

	// The optimistic bump and the session dedup mark survive the
	// failed write; they resync on the next reset load.
	assert.True(t, session.Visible()[0].Liked)
	assert.Equal(t, notify.Error, lastToast(t, env.notifier).Kind)
}

func TestManagerGetAndClose(t *testing.T) {
	env := newBrowseEnv(t, seedGuides(1, "game1"))

	session, err := env.manager.Open(context.Background(), "game1")
	require.NoError(t, err)

	found, ok := env.manager.Get(session.ID())
	require.True(t, ok)
	assert.Same(t, session, found)

	env.manager.Close(session.ID())
	_, ok = env.manager.Get(session.ID())
	assert.False(t, ok)

	// A closed session no longer follows auth transitions.
	env.favRepo.seed("u1", "g1")
	env.hub.SetSignedIn("u1")
	assert.False(t, session.Visible()[0].IsFavorite)
}

func TestCreateGuideRequiresSignIn(t *testing.T) {
	env := newBrowseEnv(t, seedGuides(1, "game1"))

	session, err := env.manager.Open(context.Background(), "game1")
	require.NoError(t, err)

	_, err = session.CreateGuide(context.Background(), "New guide", "body")
	require.True(t, errors.Is(err, "UNAUTHENTICATED"))
	assert.Equal(t, notify.Warning, lastToast(t, env.notifier).Kind)
}

func TestCreateGuidePrependsAndCarriesAuthor(t *testing.T) {
	env := newBrowseEnv(t, seedGuides(3, "game1"))

	session, err := env.manager.Open(context.Background(), "game1")
	require.NoError(t, err)
	env.hub.SetSignedIn("u1")

	guide, err := session.CreateGuide(context.Background(), "  Parry timings  ", "frame data")
	require.NoError(t, err)

	assert.NotEmpty(t, guide.ID)
	assert.Equal(t, "Parry timings", guide.Title)
	assert.Equal(t, "u1", guide.AuthorID)
	assert.Equal(t, "ren", guide.AuthorName)
	assert.True(t, guide.AuthorVerified)

	items := session.Visible()
	require.Len(t, items, 4)
	assert.Equal(t, guide.ID, items[0].Guide.ID)

	stored, err := env.guideRepo.GetByID(context.Background(), guide.ID)
	require.NoError(t, err)
	assert.Equal(t, "Parry timings", stored.Title)
}

func TestCreateGuideRejectsBlankInput(t *testing.T) {
	env := newBrowseEnv(t, nil)

	session, err := env.manager.Open(context.Background(), "game1")
	require.NoError(t, err)
	env.hub.SetSignedIn("u1")

	_, err = session.CreateGuide(context.Background(), "   ", "body")
	assert.True(t, errors.Is(err, "BAD_REQUEST"))

	_, err = session.CreateGuide(context.Background(), "Title", "")
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}
