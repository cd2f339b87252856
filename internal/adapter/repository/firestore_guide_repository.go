package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"gamebrain/internal/domain/entity"
	"gamebrain/internal/domain/repository"
	"gamebrain/pkg/errors"
)

type firestoreGuideRepository struct {
	client *firestore.Client
}

func NewFirestoreGuideRepository(client *firestore.Client) repository.GuideRepository {
	return &firestoreGuideRepository{
		client: client,
	}
}

func (r *firestoreGuideRepository) ListByGame(ctx context.Context, gameID string, pageSize int, after repository.Cursor) ([]*entity.Guide, repository.Cursor, error) {
	query := r.client.Collection("guides").
		Where("gameId", "==", gameID).
		OrderBy("createdAt", firestore.Desc).
		Limit(pageSize)

	if after != nil {
		snap, ok := after.(*firestore.DocumentSnapshot)
		if !ok {
			return nil, nil, errors.BadRequest("Invalid pagination cursor", nil)
		}
		query = query.StartAfter(snap)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	var guides []*entity.Guide
	var lastDoc *firestore.DocumentSnapshot

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, nil, errors.Internal("Failed to iterate guides", err)
		}

		var guide entity.Guide
		if err := doc.DataTo(&guide); err != nil {
			return nil, nil, errors.Internal("Failed to parse guide data", err)
		}
		guide.ID = doc.Ref.ID
		guides = append(guides, &guide)
		lastDoc = doc
	}

	if lastDoc == nil {
		return guides, nil, nil
	}
	return guides, lastDoc, nil
}

func (r *firestoreGuideRepository) Create(ctx context.Context, guide *entity.Guide) error {
	if guide.ID == "" {
		doc := r.client.Collection("guides").NewDoc()
		guide.ID = doc.ID
	}

	if guide.CreatedAt.IsZero() {
		guide.CreatedAt = time.Now()
	}

	_, err := r.client.Collection("guides").Doc(guide.ID).Set(ctx, guide)
	if err != nil {
		return errors.Internal("Failed to create guide", err)
	}

	return nil
}

func (r *firestoreGuideRepository) GetByID(ctx context.Context, id string) (*entity.Guide, error) {
	doc, err := r.client.Collection("guides").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Guide", err)
		}
		return nil, errors.Internal("Failed to get guide", err)
	}

	var guide entity.Guide
	if err := doc.DataTo(&guide); err != nil {
		return nil, errors.Internal("Failed to parse guide data", err)
	}
	guide.ID = doc.Ref.ID

	return &guide, nil
}

func (r *firestoreGuideRepository) IncrementLikes(ctx context.Context, id string, delta int) error {
	// Relative update so concurrent likers never clobber each other.
	_, err := r.client.Collection("guides").Doc(id).Update(ctx, []firestore.Update{
		{Path: "likesCount", Value: firestore.Increment(delta)},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Guide", err)
		}
		return errors.Internal("Failed to increment guide likes", err)
	}

	return nil
}

func (r *firestoreGuideRepository) ListRecent(ctx context.Context, limit int) ([]*entity.Guide, error) {
	iter := r.client.Collection("guides").
		OrderBy("createdAt", firestore.Desc).
		Limit(limit).
		Documents(ctx)
	defer iter.Stop()

	var guides []*entity.Guide
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate recent guides", err)
		}

		var guide entity.Guide
		if err := doc.DataTo(&guide); err != nil {
			return nil, errors.Internal("Failed to parse guide data", err)
		}
		guide.ID = doc.Ref.ID
		guides = append(guides, &guide)
	}

	return guides, nil
}

func (r *firestoreGuideRepository) CountByAuthor(ctx context.Context, authorID string) (int64, error) {
	docs, err := r.client.Collection("guides").
		Where("authorId", "==", authorID).
		Documents(ctx).GetAll()
	if err != nil {
		return 0, errors.Internal("Failed to count guides", err)
	}

	return int64(len(docs)), nil
}
