package usecase

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"gamebrain/internal/domain/repository"
	"gamebrain/internal/ui/view"
	"gamebrain/pkg/logger"
)

const (
	recentGuidesLimit = 6
	myBuildsLimit     = 20
	myFavoritesLimit  = 6
)

type DashboardUseCase struct {
	guideRepo    repository.GuideRepository
	gameRepo     repository.GameRepository
	buildRepo    repository.BuildRepository
	favoriteRepo repository.FavoriteRepository
	userRepo     repository.UserRepository
}

func NewDashboardUseCase(
	guideRepo repository.GuideRepository,
	gameRepo repository.GameRepository,
	buildRepo repository.BuildRepository,
	favoriteRepo repository.FavoriteRepository,
	userRepo repository.UserRepository,
) *DashboardUseCase {
	return &DashboardUseCase{
		guideRepo:    guideRepo,
		gameRepo:     gameRepo,
		buildRepo:    buildRepo,
		favoriteRepo: favoriteRepo,
		userRepo:     userRepo,
	}
}

type DashboardStats struct {
	Guides    int64 `json:"guides"`
	Builds    int64 `json:"builds"`
	Favorites int64 `json:"favorites"`
}

type DashboardView struct {
	Username     string           `json:"username"`
	Role         string           `json:"role"`
	RecentGuides []view.GuideCard `json:"recent_guides"`
	MyBuilds     []view.BuildCard `json:"my_builds"`
	MyFavorites  []view.GuideCard `json:"my_favorites"`
	Stats        DashboardStats   `json:"stats"`
}

// Overview assembles the dashboard sections. The sections are fetched
// concurrently and joined before rendering; one failing section fails
// the whole view.
func (uc *DashboardUseCase) Overview(ctx context.Context, uid string) (*DashboardView, error) {
	user, err := uc.userRepo.GetByID(ctx, uid)
	if err != nil {
		return nil, err
	}

	out := &DashboardView{
		Username: user.Username,
		Role:     user.Role,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		cards, err := uc.recentGuides(ctx, uid)
		if err != nil {
			return err
		}
		out.RecentGuides = cards
		return nil
	})

	g.Go(func() error {
		cards, err := uc.myBuilds(ctx, uid)
		if err != nil {
			return err
		}
		out.MyBuilds = cards
		return nil
	})

	g.Go(func() error {
		cards, err := uc.myFavorites(ctx, uid)
		if err != nil {
			return err
		}
		out.MyFavorites = cards
		return nil
	})

	g.Go(func() error {
		stats, err := uc.stats(ctx, uid)
		if err != nil {
			return err
		}
		out.Stats = stats
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

func (uc *DashboardUseCase) recentGuides(ctx context.Context, uid string) ([]view.GuideCard, error) {
	guides, err := uc.guideRepo.ListRecent(ctx, recentGuidesLimit)
	if err != nil {
		return nil, err
	}

	favIDs, err := uc.favoriteRepo.ListGuideIDsByUser(ctx, uid)
	if err != nil {
		return nil, err
	}
	favorites := make(map[string]struct{}, len(favIDs))
	for _, id := range favIDs {
		favorites[id] = struct{}{}
	}

	gameNames, err := uc.gameNames(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	cards := make([]view.GuideCard, 0, len(guides))
	for _, g := range guides {
		_, fav := favorites[g.ID]
		card := view.NewGuideCard(g, fav, false, now)
		card.GameName = gameNames[g.GameID]
		cards = append(cards, card)
	}
	return cards, nil
}

func (uc *DashboardUseCase) myBuilds(ctx context.Context, uid string) ([]view.BuildCard, error) {
	builds, err := uc.buildRepo.ListByUser(ctx, uid, myBuildsLimit)
	if err != nil {
		return nil, err
	}

	gameNames, err := uc.gameNames(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	cards := make([]view.BuildCard, 0, len(builds))
	for _, b := range builds {
		cards = append(cards, view.NewBuildCard(b, gameNames[b.GameID], now))
	}
	return cards, nil
}

func (uc *DashboardUseCase) myFavorites(ctx context.Context, uid string) ([]view.GuideCard, error) {
	favorites, err := uc.favoriteRepo.ListByUser(ctx, uid, myFavoritesLimit)
	if err != nil {
		return nil, err
	}

	gameNames, err := uc.gameNames(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	cards := make([]view.GuideCard, 0, len(favorites))
	for _, fav := range favorites {
		guide, err := uc.guideRepo.GetByID(ctx, fav.GuideID)
		if err != nil {
			// A favorite can point at a guide deleted since; skip it.
			logger.Debug("dashboard: favorite %s points at missing guide %s", fav.ID, fav.GuideID)
			continue
		}
		card := view.NewGuideCard(guide, true, false, now)
		card.GameName = gameNames[guide.GameID]
		cards = append(cards, card)
	}
	return cards, nil
}

func (uc *DashboardUseCase) stats(ctx context.Context, uid string) (DashboardStats, error) {
	var stats DashboardStats

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := uc.guideRepo.CountByAuthor(ctx, uid)
		stats.Guides = n
		return err
	})
	g.Go(func() error {
		n, err := uc.buildRepo.CountByUser(ctx, uid)
		stats.Builds = n
		return err
	})
	g.Go(func() error {
		n, err := uc.favoriteRepo.CountByUser(ctx, uid)
		stats.Favorites = n
		return err
	})

	if err := g.Wait(); err != nil {
		return DashboardStats{}, err
	}
	return stats, nil
}

func (uc *DashboardUseCase) gameNames(ctx context.Context) (map[string]string, error) {
	games, err := uc.gameRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	names := make(map[string]string, len(games))
	for _, g := range games {
		names[g.ID] = g.Name
	}
	return names, nil
}
