package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"gamebrain/internal/domain/entity"
	"gamebrain/internal/domain/repository"
	"gamebrain/pkg/errors"
)

type firestoreBuildRepository struct {
	client *firestore.Client
}

func NewFirestoreBuildRepository(client *firestore.Client) repository.BuildRepository {
	return &firestoreBuildRepository{
		client: client,
	}
}

func (r *firestoreBuildRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*entity.Build, error) {
	query := r.client.Collection("builds").Where("userId", "==", userID)
	if limit > 0 {
		query = query.Limit(limit)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	var builds []*entity.Build
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate builds", err)
		}

		var build entity.Build
		if err := doc.DataTo(&build); err != nil {
			return nil, errors.Internal("Failed to parse build data", err)
		}
		build.ID = doc.Ref.ID
		builds = append(builds, &build)
	}

	return builds, nil
}

func (r *firestoreBuildRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	docs, err := r.client.Collection("builds").
		Where("userId", "==", userID).
		Documents(ctx).GetAll()
	if err != nil {
		return 0, errors.Internal("Failed to count builds", err)
	}

	return int64(len(docs)), nil
}
