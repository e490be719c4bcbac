package store

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/oab26/medusa-colabship/internal/apperror"
	"github.com/oab26/medusa-colabship/internal/modules/auth"
)

// Handler exposes store HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(router *chi.Mux, authn func(http.Handler) http.Handler) {
	router.Post("/admin/stores", h.provisionStore)
	router.Group(func(r chi.Router) {
		r.Use(authn)
		r.Use(auth.RequireActorType(ActorTypeUser))
		r.Get("/admin/stores/{id}", h.getStore)
	})
}

func (h *Handler) provisionStore(w http.ResponseWriter, r *http.Request) {
	var input ProvisionStoreInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, apperror.Wrap(apperror.Validation, "decode request", err))
		return
	}

	result, err := h.service.ProvisionStore(r.Context(), input)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusCreated, result)
}

func (h *Handler) getStore(w http.ResponseWriter, r *http.Request) {
	st, err := h.service.GetStore(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, st)
}

func respond(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, err error) {
	kind := apperror.KindOf(err)
	var code int
	switch kind {
	case apperror.Validation:
		code = http.StatusBadRequest
	case apperror.Duplicate:
		code = http.StatusConflict
	case apperror.Reference, apperror.CredentialPolicy:
		code = http.StatusUnprocessableEntity
	case apperror.NotFound:
		code = http.StatusNotFound
	case apperror.Unavailable:
		code = http.StatusServiceUnavailable
	default:
		code = http.StatusInternalServerError
	}
	respond(w, code, map[string]string{"kind": string(kind), "error": err.Error()})
}
