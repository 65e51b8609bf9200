package entities

import "time"

type ReservationResponse struct {
	ID          int       `json:"id"`
	BookID      int       `json:"book_id"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	Category    string    `json:"category"`
	ReserveDate time.Time `json:"reserve_date"`
	Status      string    `json:"status"`
}

type CreateReservationResponse struct {
	Message       string `json:"message"`
	ReservationID int    `json:"reservationId"`
}
