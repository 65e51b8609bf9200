package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	apperrors "bibliotec/internal/errors"
	"bibliotec/internal/service"
)

type BookHandler struct {
	Service *service.CatalogService
}

func NewBookHandler(svc *service.CatalogService) *BookHandler {
	return &BookHandler{Service: svc}
}

func (h *BookHandler) List(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")
	category := r.URL.Query().Get("category")

	books, err := h.Service.ListBooks(r.Context(), search, category)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, books)
}

func (h *BookHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		respondNotFound(w, "Livro não encontrado.")
		return
	}
	book, err := h.Service.GetBook(r.Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			respondNotFound(w, "Livro não encontrado.")
			return
		}
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, book)
}
