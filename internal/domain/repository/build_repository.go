package repository

import (
	"context"

	"gamebrain/internal/domain/entity"
)

type BuildRepository interface {
	ListByUser(ctx context.Context, userID string, limit int) ([]*entity.Build, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
}
