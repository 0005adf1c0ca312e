package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"partyhub/internal/party/models"
	"partyhub/pkg/platform/httputil"
)

func (h *Handler) handleCreateIndividual(w http.ResponseWriter, r *http.Request) {
	payload, ok := h.decodePayload(w, r)
	if !ok {
		return
	}
	ind, err := h.service.CreateIndividual(r.Context(), payload)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, ind)
}

func (h *Handler) handleListIndividuals(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.ListIndividuals(r.Context(), parseFilter(r.URL.Query(), models.KindIndividual))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, newListResponse(page))
}

func (h *Handler) handleGetIndividual(w http.ResponseWriter, r *http.Request) {
	ind, err := h.service.GetIndividual(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ind)
}

func (h *Handler) handleUpdateIndividual(w http.ResponseWriter, r *http.Request) {
	payload, ok := h.decodePayload(w, r)
	if !ok {
		return
	}
	ind, err := h.service.UpdateIndividual(r.Context(), chi.URLParam(r, "id"), payload)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ind)
}

func (h *Handler) handleDeleteIndividual(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteIndividual(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
