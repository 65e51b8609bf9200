package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"bibliotec/internal/auth"
	"bibliotec/internal/entities"
	apperrors "bibliotec/internal/errors"
	"bibliotec/internal/service"
)

type ProfileHandler struct {
	Service *service.ProfileService
}

func NewProfileHandler(svc *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{Service: svc}
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		respondError(w, apperrors.NewHTTPError(http.StatusUnauthorized, "Acesso negado."))
		return
	}
	profile, err := h.Service.Get(r.Context(), userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			respondNotFound(w, "Usuário não encontrado.")
			return
		}
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, profile)
}

func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		respondError(w, apperrors.NewHTTPError(http.StatusUnauthorized, "Acesso negado."))
		return
	}
	var req entities.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "Requisição inválida.")
		return
	}
	if err := h.Service.Update(r.Context(), userID, req); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			respondNotFound(w, "Usuário não encontrado.")
			return
		}
		respondError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "Perfil atualizado com sucesso!")
}

func (h *ProfileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		respondError(w, apperrors.NewHTTPError(http.StatusUnauthorized, "Acesso negado."))
		return
	}
	if err := h.Service.Delete(r.Context(), userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			respondNotFound(w, "Usuário não encontrado.")
			return
		}
		respondError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "Conta excluída com sucesso!")
}
