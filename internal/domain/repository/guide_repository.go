package repository

import (
	"context"

	"gamebrain/internal/domain/entity"
)

// Cursor is an opaque pagination token referencing the last item of a
// previously fetched page. It is only valid for the exact filter and
// ordering combination that produced it.
type Cursor interface{}

type GuideRepository interface {
	// ListByGame returns up to pageSize guides for a game, newest
	// first, starting just after the given cursor. A nil cursor means
	// the first page. The returned cursor points at the last item of
	// the batch and is nil when the batch is empty.
	ListByGame(ctx context.Context, gameID string, pageSize int, after Cursor) ([]*entity.Guide, Cursor, error)

	GetByID(ctx context.Context, id string) (*entity.Guide, error)

	Create(ctx context.Context, guide *entity.Guide) error

	// IncrementLikes applies a relative, atomic increment to the
	// guide's like counter. Implementations must not read the current
	// value and write it back.
	IncrementLikes(ctx context.Context, id string, delta int) error

	ListRecent(ctx context.Context, limit int) ([]*entity.Guide, error)
	CountByAuthor(ctx context.Context, authorID string) (int64, error)
}
