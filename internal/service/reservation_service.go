package service

import (
	"context"

	"go.uber.org/zap"

	"bibliotec/internal/db"
	"bibliotec/internal/entities"
	"bibliotec/internal/repository"
)

type ReservationService struct {
	reservations repository.ReservationRepository
	books        repository.BookRepository
	users        repository.UserRepository
	notifier     *Notifier
	log          *zap.Logger
}

func NewReservationService(
	reservations repository.ReservationRepository,
	books repository.BookRepository,
	users repository.UserRepository,
	notifier *Notifier,
	log *zap.Logger,
) *ReservationService {
	return &ReservationService{
		reservations: reservations,
		books:        books,
		users:        users,
		notifier:     notifier,
		log:          log,
	}
}

func (s *ReservationService) List(ctx context.Context, userID int) ([]entities.ReservationResponse, error) {
	rows, err := s.reservations.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]entities.ReservationResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, entities.ReservationResponse{
			ID:          r.ID,
			BookID:      r.BookID,
			Title:       r.Title,
			Author:      r.Author,
			Category:    r.Category,
			ReserveDate: r.ReserveDate,
			Status:      r.Status,
		})
	}
	return out, nil
}

// Create reserves a book for the user. Limit, duplicate and availability
// checks run atomically in the repository; notifications go out
// asynchronously after commit.
func (s *ReservationService) Create(ctx context.Context, userID, bookID int) (*entities.CreateReservationResponse, error) {
	id, err := s.reservations.Create(ctx, userID, bookID)
	if err != nil {
		return nil, err
	}

	s.notifyAsync(ctx, userID, bookID, s.notifier.ReservationCreated)

	return &entities.CreateReservationResponse{
		Message:       "Livro reservado com sucesso!",
		ReservationID: id,
	}, nil
}

func (s *ReservationService) Cancel(ctx context.Context, userID, reservationID int) error {
	bookID, err := s.reservations.Cancel(ctx, userID, reservationID)
	if err != nil {
		return err
	}

	s.notifyAsync(ctx, userID, bookID, s.notifier.ReservationCancelled)
	return nil
}

func (s *ReservationService) notifyAsync(ctx context.Context, userID, bookID int, notify func(*db.User, *db.Book)) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		s.log.Warn("notification skipped: user lookup failed",
			zap.Int("userID", userID), zap.Error(err))
		return
	}
	book, err := s.books.GetByID(ctx, bookID)
	if err != nil {
		s.log.Warn("notification skipped: book lookup failed",
			zap.Int("bookID", bookID), zap.Error(err))
		return
	}
	go notify(user, book)
}
