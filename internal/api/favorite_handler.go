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

type FavoriteHandler struct {
	Service *service.FavoriteService
}

func NewFavoriteHandler(svc *service.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{Service: svc}
}

func (h *FavoriteHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		respondError(w, apperrors.NewHTTPError(http.StatusUnauthorized, "Acesso negado."))
		return
	}
	books, err := h.Service.ListBooks(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, books)
}

func (h *FavoriteHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		respondError(w, apperrors.NewHTTPError(http.StatusUnauthorized, "Acesso negado."))
		return
	}
	bookID, err := strconv.Atoi(mux.Vars(r)["bookId"])
	if err != nil {
		respondNotFound(w, "Livro não encontrado.")
		return
	}
	resp, err := h.Service.Toggle(r.Context(), userID, bookID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			respondNotFound(w, "Livro não encontrado.")
			return
		}
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}
