package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"gamebrain/internal/domain/entity"
	"gamebrain/internal/domain/repository"
	"gamebrain/pkg/errors"
)

type firestoreGameRepository struct {
	client *firestore.Client
}

func NewFirestoreGameRepository(client *firestore.Client) repository.GameRepository {
	return &firestoreGameRepository{
		client: client,
	}
}

func (r *firestoreGameRepository) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	doc, err := r.client.Collection("games").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Game", err)
		}
		return nil, errors.Internal("Failed to get game", err)
	}

	var game entity.Game
	if err := doc.DataTo(&game); err != nil {
		return nil, errors.Internal("Failed to parse game data", err)
	}
	game.ID = doc.Ref.ID

	return &game, nil
}

func (r *firestoreGameRepository) List(ctx context.Context) ([]*entity.Game, error) {
	iter := r.client.Collection("games").OrderBy("name", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	var games []*entity.Game
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate games", err)
		}

		var game entity.Game
		if err := doc.DataTo(&game); err != nil {
			return nil, errors.Internal("Failed to parse game data", err)
		}
		game.ID = doc.Ref.ID
		games = append(games, &game)
	}

	return games, nil
}
