package api

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"bibliotec/internal/auth"
	"bibliotec/internal/db"
	apperrors "bibliotec/internal/errors"
	"bibliotec/internal/repository"
	"bibliotec/internal/service"
)

// memStore is an in-memory double for all repositories, implementing the
// same contracts the Postgres implementations honor.
type memStore struct {
	mu           sync.Mutex
	users        map[int]*db.User
	books        map[int]*db.Book
	favorites    map[[2]int]bool
	reservations map[int]*db.Reservation
	nextUserID   int
	nextResID    int
	clock        time.Time
}

var (
	_ repository.UserRepository        = (*memStore)(nil)
	_ repository.FavoriteRepository    = (*memStore)(nil)
	_ repository.BookRepository        = bookRepoAdapter{}
	_ repository.ReservationRepository = reservationRepoAdapter{}
)

func newMemStore() *memStore {
	return &memStore{
		users:        map[int]*db.User{},
		books:        map[int]*db.Book{},
		favorites:    map[[2]int]bool{},
		reservations: map[int]*db.Reservation{},
		clock:        time.Now(),
	}
}

func (s *memStore) addBook(b db.Book) {
	s.books[b.ID] = &b
}

func (s *memStore) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

func (s *memStore) Create(_ context.Context, u *db.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == u.Email {
			return apperrors.ErrEmailTaken
		}
	}
	s.nextUserID++
	u.ID = s.nextUserID
	u.CreatedAt = s.tick()
	cpy := *u
	s.users[u.ID] = &cpy
	return nil
}

func (s *memStore) GetByEmail(_ context.Context, email string) (*db.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			cpy := *u
			return &cpy, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (s *memStore) GetByID(_ context.Context, id int) (*db.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	cpy := *u
	return &cpy, nil
}

func (s *memStore) UpdateProfile(_ context.Context, id int, name string, phone *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	u.Name = name
	u.Phone = phone
	return nil
}

func (s *memStore) Delete(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return apperrors.ErrNotFound
	}
	for resID, res := range s.reservations {
		if res.UserID != id {
			continue
		}
		if res.Status == db.StatusReserved || res.Status == db.StatusPickedUp {
			s.books[res.BookID].AvailableCopies++
		}
		delete(s.reservations, resID)
	}
	for key := range s.favorites {
		if key[0] == id {
			delete(s.favorites, key)
		}
	}
	delete(s.users, id)
	return nil
}

func (s *memStore) List(_ context.Context, search, category string) ([]db.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	needle := strings.ToLower(search)
	out := []db.Book{}
	for _, b := range s.books {
		if needle != "" &&
			!strings.Contains(strings.ToLower(b.Title), needle) &&
			!strings.Contains(strings.ToLower(b.Author), needle) &&
			!strings.Contains(strings.ToLower(b.Category), needle) {
			continue
		}
		if category != "" && category != "all" && b.Category != category {
			continue
		}
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

func (s *memStore) GetBookByID(ctx context.Context, id int) (*db.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.books[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	cpy := *b
	return &cpy, nil
}

func (s *memStore) Exists(_ context.Context, userID, bookID int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.favorites[[2]int{userID, bookID}], nil
}

func (s *memStore) Add(_ context.Context, userID, bookID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.books[bookID]; !ok {
		return apperrors.ErrNotFound
	}
	s.favorites[[2]int{userID, bookID}] = true
	return nil
}

func (s *memStore) Remove(_ context.Context, userID, bookID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.favorites, [2]int{userID, bookID})
	return nil
}

func (s *memStore) ListBooks(_ context.Context, userID int) ([]db.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []db.Book{}
	for key, ok := range s.favorites {
		if ok && key[0] == userID {
			out = append(out, *s.books[key[1]])
		}
	}
	return out, nil
}

func (s *memStore) ListForUser(_ context.Context, userID int) ([]db.UserReservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []db.UserReservation{}
	for _, res := range s.reservations {
		if res.UserID != userID {
			continue
		}
		b := s.books[res.BookID]
		out = append(out, db.UserReservation{
			Reservation: *res,
			Title:       b.Title,
			Author:      b.Author,
			Category:    b.Category,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ReserveDate.After(out[j].ReserveDate)
	})
	return out, nil
}

func (s *memStore) CreateReservation(_ context.Context, userID, bookID int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	active := 0
	for _, res := range s.reservations {
		if res.UserID != userID {
			continue
		}
		if res.Status == db.StatusReserved || res.Status == db.StatusPickedUp {
			active++
			if res.BookID == bookID {
				return 0, apperrors.ErrAlreadyReserved
			}
		}
	}
	if active >= repository.MaxActiveReservations {
		return 0, apperrors.ErrReservationLimit
	}
	b, ok := s.books[bookID]
	if !ok || b.AvailableCopies <= 0 {
		return 0, apperrors.ErrUnavailable
	}
	b.AvailableCopies--
	s.nextResID++
	s.reservations[s.nextResID] = &db.Reservation{
		ID:          s.nextResID,
		UserID:      userID,
		BookID:      bookID,
		ReserveDate: s.tick(),
		Status:      db.StatusReserved,
	}
	return s.nextResID, nil
}

func (s *memStore) Cancel(_ context.Context, userID, reservationID int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res, ok := s.reservations[reservationID]
	if !ok || res.UserID != userID ||
		(res.Status != db.StatusReserved && res.Status != db.StatusPickedUp) {
		return 0, apperrors.ErrNotFound
	}
	res.Status = db.StatusCancelled
	s.books[res.BookID].AvailableCopies++
	return res.BookID, nil
}

func (s *memStore) ExpireUnclaimed(_ context.Context, before time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, res := range s.reservations {
		if res.Status == db.StatusReserved && res.ReserveDate.Before(before) {
			res.Status = db.StatusCancelled
			s.books[res.BookID].AvailableCopies++
			n++
		}
	}
	return n, nil
}

// newTestRouter wires handlers and middleware exactly as the server does,
// over the in-memory store.
func newTestRouter(store *memStore) (*mux.Router, *auth.TokenManager) {
	log := zap.NewNop()
	tokens := auth.NewTokenManager([]byte("test-secret"))

	books := bookRepoAdapter{store}
	notifier := service.NewNotifier(log)
	authHandler := NewAuthHandler(service.NewAuthService(store, tokens))
	bookHandler := NewBookHandler(service.NewCatalogService(books))
	favoriteHandler := NewFavoriteHandler(service.NewFavoriteService(store))
	reservationHandler := NewReservationHandler(service.NewReservationService(
		reservationRepoAdapter{store}, books, store, notifier, log))
	profileHandler := NewProfileHandler(service.NewProfileService(store))

	r := mux.NewRouter()
	r.HandleFunc("/api/register", authHandler.Register).Methods("POST")
	r.HandleFunc("/api/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/api/books", bookHandler.List).Methods("GET")
	r.HandleFunc("/api/books/{id}", bookHandler.Get).Methods("GET")

	protected := r.PathPrefix("/api").Subrouter()
	protected.Use(auth.Middleware(tokens))
	protected.HandleFunc("/favorites", favoriteHandler.List).Methods("GET")
	protected.HandleFunc("/favorites/{bookId}", favoriteHandler.Toggle).Methods("POST")
	protected.HandleFunc("/reservations", reservationHandler.List).Methods("GET")
	protected.HandleFunc("/reservations/{bookId}", reservationHandler.Create).Methods("POST")
	protected.HandleFunc("/reservations/{id}", reservationHandler.Cancel).Methods("DELETE")
	protected.HandleFunc("/profile", profileHandler.Get).Methods("GET")
	protected.HandleFunc("/profile", profileHandler.Update).Methods("PUT")
	protected.HandleFunc("/profile", profileHandler.Delete).Methods("DELETE")

	return r, tokens
}

// Adapters resolve the method-name clashes between the repository
// interfaces sharing one memStore.
type bookRepoAdapter struct{ s *memStore }

func (a bookRepoAdapter) List(ctx context.Context, search, category string) ([]db.Book, error) {
	return a.s.List(ctx, search, category)
}

func (a bookRepoAdapter) GetByID(ctx context.Context, id int) (*db.Book, error) {
	return a.s.GetBookByID(ctx, id)
}

type reservationRepoAdapter struct{ s *memStore }

func (a reservationRepoAdapter) ListForUser(ctx context.Context, userID int) ([]db.UserReservation, error) {
	return a.s.ListForUser(ctx, userID)
}

func (a reservationRepoAdapter) Create(ctx context.Context, userID, bookID int) (int, error) {
	return a.s.CreateReservation(ctx, userID, bookID)
}

func (a reservationRepoAdapter) Cancel(ctx context.Context, userID, reservationID int) (int, error) {
	return a.s.Cancel(ctx, userID, reservationID)
}

func (a reservationRepoAdapter) ExpireUnclaimed(ctx context.Context, before time.Time) (int, error) {
	return a.s.ExpireUnclaimed(ctx, before)
}
