package repository

import (
	"context"

	"gamebrain/internal/domain/entity"
)

type GameRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	List(ctx context.Context) ([]*entity.Game, error)
}
