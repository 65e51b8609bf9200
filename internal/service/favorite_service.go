package service

import (
	"context"

	"bibliotec/internal/db"
	"bibliotec/internal/entities"
	"bibliotec/internal/repository"
)

type FavoriteService struct {
	favorites repository.FavoriteRepository
}

func NewFavoriteService(favorites repository.FavoriteRepository) *FavoriteService {
	return &FavoriteService{favorites: favorites}
}

// Toggle flips the favorite relation and reports the resulting state so
// the client can sync its UI.
func (s *FavoriteService) Toggle(ctx context.Context, userID, bookID int) (*entities.ToggleFavoriteResponse, error) {
	exists, err := s.favorites.Exists(ctx, userID, bookID)
	if err != nil {
		return nil, err
	}

	if exists {
		if err := s.favorites.Remove(ctx, userID, bookID); err != nil {
			return nil, err
		}
		return &entities.ToggleFavoriteResponse{
			Message:    "Livro removido dos favoritos.",
			IsFavorite: false,
		}, nil
	}

	if err := s.favorites.Add(ctx, userID, bookID); err != nil {
		return nil, err
	}
	return &entities.ToggleFavoriteResponse{
		Message:    "Livro adicionado aos favoritos!",
		IsFavorite: true,
	}, nil
}

func (s *FavoriteService) ListBooks(ctx context.Context, userID int) ([]db.Book, error) {
	return s.favorites.ListBooks(ctx, userID)
}
