package marketplace

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/oab26/medusa-colabship/internal/apperror"
	"github.com/oab26/medusa-colabship/internal/modules/auth"
)

// Handler exposes marketplace HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

// RegisterRoutes mounts the vendor routes. POST /vendors is open (vendor
// self-signup); everything under /vendors/me requires a vendor actor.
func (h *Handler) RegisterRoutes(router *chi.Mux, authn func(http.Handler) http.Handler) {
	router.Post("/vendors", h.provisionVendor)
	router.Group(func(r chi.Router) {
		r.Use(authn)
		r.Use(auth.RequireActorType(ActorTypeVendor))
		r.Get("/vendors/me", h.getCurrentVendor)
	})
}

func (h *Handler) provisionVendor(w http.ResponseWriter, r *http.Request) {
	var input ProvisionVendorInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, apperror.Wrap(apperror.Validation, "decode request", err))
		return
	}

	result, err := h.service.ProvisionVendor(r.Context(), input)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusCreated, result)
}

func (h *Handler) getCurrentVendor(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFromContext(r.Context())

	admin, err := h.service.GetVendorAdmin(r.Context(), actor.ID)
	if err != nil {
		respondError(w, err)
		return
	}
	vendor, err := h.service.GetVendor(r.Context(), admin.VendorID.String())
	if err != nil {
		respondError(w, err)
		return
	}

	respond(w, http.StatusOK, map[string]any{
		"vendor_admin": admin,
		"vendor":       vendor,
	})
}

func respond(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, err error) {
	kind := apperror.KindOf(err)
	respond(w, statusForKind(kind), map[string]string{
		"kind":  string(kind),
		"error": err.Error(),
	})
}

func statusForKind(kind apperror.Kind) int {
	switch kind {
	case apperror.Validation:
		return http.StatusBadRequest
	case apperror.Duplicate:
		return http.StatusConflict
	case apperror.Reference, apperror.CredentialPolicy:
		return http.StatusUnprocessableEntity
	case apperror.NotFound:
		return http.StatusNotFound
	case apperror.Unavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
