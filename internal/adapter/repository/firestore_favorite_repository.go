package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"gamebrain/internal/domain/entity"
	"gamebrain/internal/domain/repository"
	"gamebrain/pkg/errors"
)

type firestoreFavoriteRepository struct {
	client *firestore.Client
}

func NewFirestoreFavoriteRepository(client *firestore.Client) repository.FavoriteRepository {
	return &firestoreFavoriteRepository{
		client: client,
	}
}

func (r *firestoreFavoriteRepository) ListGuideIDsByUser(ctx context.Context, userID string) ([]string, error) {
	docs, err := r.client.Collection("favorites").
		Where("userId", "==", userID).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Internal("Failed to load favorites", err)
	}

	guideIDs := make([]string, 0, len(docs))
	for _, doc := range docs {
		var fav entity.Favorite
		if err := doc.DataTo(&fav); err != nil {
			continue
		}
		guideIDs = append(guideIDs, fav.GuideID)
	}

	return guideIDs, nil
}

func (r *firestoreFavoriteRepository) FindByUserAndGuide(ctx context.Context, userID, guideID string) ([]*entity.Favorite, error) {
	docs, err := r.client.Collection("favorites").
		Where("userId", "==", userID).
		Where("guideId", "==", guideID).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Internal("Failed to query favorites", err)
	}

	favorites := make([]*entity.Favorite, 0, len(docs))
	for _, doc := range docs {
		var fav entity.Favorite
		if err := doc.DataTo(&fav); err != nil {
			return nil, errors.Internal("Failed to parse favorite data", err)
		}
		fav.ID = doc.Ref.ID
		favorites = append(favorites, &fav)
	}

	return favorites, nil
}

func (r *firestoreFavoriteRepository) Create(ctx context.Context, userID, guideID string) (*entity.Favorite, error) {
	doc := r.client.Collection("favorites").NewDoc()

	// createdAt is assigned by the store, not the client clock.
	_, err := doc.Set(ctx, map[string]interface{}{
		"userId":    userID,
		"guideId":   guideID,
		"createdAt": firestore.ServerTimestamp,
	})
	if err != nil {
		return nil, errors.Internal("Failed to create favorite", err)
	}

	return &entity.Favorite{
		ID:        doc.ID,
		UserID:    userID,
		GuideID:   guideID,
		CreatedAt: time.Now(),
	}, nil
}

func (r *firestoreFavoriteRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection("favorites").Doc(id).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to delete favorite", err)
	}

	return nil
}

func (r *firestoreFavoriteRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*entity.Favorite, error) {
	query := r.client.Collection("favorites").Where("userId", "==", userID)
	if limit > 0 {
		query = query.Limit(limit)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	var favorites []*entity.Favorite
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate favorites", err)
		}

		var fav entity.Favorite
		if err := doc.DataTo(&fav); err != nil {
			return nil, errors.Internal("Failed to parse favorite data", err)
		}
		fav.ID = doc.Ref.ID
		favorites = append(favorites, &fav)
	}

	return favorites, nil
}

func (r *firestoreFavoriteRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	docs, err := r.client.Collection("favorites").
		Where("userId", "==", userID).
		Documents(ctx).GetAll()
	if err != nil {
		return 0, errors.Internal("Failed to count favorites", err)
	}

	return int64(len(docs)), nil
}
