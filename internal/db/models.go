package db

import "time"

// Reservation statuses. Only reserved and picked_up count against the
// user's active limit and the book's available copies.
const (
	StatusReserved  = "reserved"
	StatusPickedUp  = "picked_up"
	StatusReturned  = "returned"
	StatusCancelled = "cancelled"
)

type User struct {
	ID           int
	Name         string
	Email        string
	PasswordHash string
	Phone        *string
	CreatedAt    time.Time
}

type Book struct {
	ID              int    `json:"id"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	Category        string `json:"category"`
	TotalCopies     int    `json:"total_copies"`
	AvailableCopies int    `json:"available_copies"`
}

type Reservation struct {
	ID          int
	UserID      int
	BookID      int
	ReserveDate time.Time
	Status      string
}

// UserReservation is a reservation row joined with the book fields the
// listing endpoint returns.
type UserReservation struct {
	Reservation
	Title    string
	Author   string
	Category string
}
