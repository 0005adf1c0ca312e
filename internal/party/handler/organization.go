package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"partyhub/internal/party/models"
	"partyhub/pkg/platform/httputil"
)

func (h *Handler) handleCreateOrganization(w http.ResponseWriter, r *http.Request) {
	payload, ok := h.decodePayload(w, r)
	if !ok {
		return
	}
	org, err := h.service.CreateOrganization(r.Context(), payload)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, org)
}

func (h *Handler) handleListOrganizations(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.ListOrganizations(r.Context(), parseFilter(r.URL.Query(), models.KindOrganization))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, newListResponse(page))
}

func (h *Handler) handleGetOrganization(w http.ResponseWriter, r *http.Request) {
	org, err := h.service.GetOrganization(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, org)
}

func (h *Handler) handleUpdateOrganization(w http.ResponseWriter, r *http.Request) {
	payload, ok := h.decodePayload(w, r)
	if !ok {
		return
	}
	org, err := h.service.UpdateOrganization(r.Context(), chi.URLParam(r, "id"), payload)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, org)
}

func (h *Handler) handleDeleteOrganization(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteOrganization(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
