package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"bibliotec/internal/auth"
	apperrors "bibliotec/internal/errors"
	"bibliotec/internal/service"
)

type ReservationHandler struct {
	Service *service.ReservationService
}

func NewReservationHandler(svc *service.ReservationService) *ReservationHandler {
	return &ReservationHandler{Service: svc}
}

func (h *ReservationHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		respondError(w, apperrors.NewHTTPError(http.StatusUnauthorized, "Acesso negado."))
		return
	}
	reservations, err := h.Service.List(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, reservations)
}

func (h *ReservationHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		respondError(w, apperrors.NewHTTPError(http.StatusUnauthorized, "Acesso negado."))
		return
	}
	bookID, err := strconv.Atoi(mux.Vars(r)["bookId"])
	if err != nil {
		respondError(w, apperrors.ErrUnavailable)
		return
	}
	resp, err := h.Service.Create(r.Context(), userID, bookID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, resp)
}

func (h *ReservationHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		respondError(w, apperrors.NewHTTPError(http.StatusUnauthorized, "Acesso negado."))
		return
	}
	reservationID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		respondNotFound(w, "Reserva não encontrada.")
		return
	}
	if err := h.Service.Cancel(r.Context(), userID, reservationID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			respondNotFound(w, "Reserva não encontrada.")
			return
		}
		respondError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "Reserva cancelada com sucesso!")
}
