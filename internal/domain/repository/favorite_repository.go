package repository

import (
	"context"

	"gamebrain/internal/domain/entity"
)

type FavoriteRepository interface {
	// ListGuideIDsByUser returns the ids of all guides the user has
	// favorited, for membership checks against rendered lists.
	ListGuideIDsByUser(ctx context.Context, userID string) ([]string, error)

	// FindByUserAndGuide returns every favorite row for the pair.
	// Duplicates can exist after a toggle race; callers decide how to
	// clean them up.
	FindByUserAndGuide(ctx context.Context, userID, guideID string) ([]*entity.Favorite, error)

	Create(ctx context.Context, userID, guideID string) (*entity.Favorite, error)
	Delete(ctx context.Context, id string) error
	ListByUser(ctx context.Context, userID string, limit int) ([]*entity.Favorite, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
}
