package catalog

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/oab26/medusa-colabship/internal/apperror"
	"github.com/oab26/medusa-colabship/internal/modules/auth"
)

// Handler exposes catalog HTTP endpoints.
type Handler struct {
	service Service
	// resolveVendor maps the authenticated vendor-admin actor to its vendor id.
	resolveVendor func(r *http.Request) (string, error)
}

func NewHandler(service Service, resolveVendor func(r *http.Request) (string, error)) *Handler {
	return &Handler{service: service, resolveVendor: resolveVendor}
}

func (h *Handler) RegisterRoutes(router *chi.Mux, authn func(http.Handler) http.Handler) {
	router.Route("/products", func(r chi.Router) {
		r.Get("/", h.listProducts)
		r.Post("/", h.createProduct)
		r.Get("/{id}", h.getProduct)
	})
	router.Group(func(r chi.Router) {
		r.Use(authn)
		r.Use(auth.RequireActorType("vendor"))
		r.Get("/vendors/me/products", h.listVendorProducts)
		r.Post("/vendors/me/products/{product_id}", h.claimProduct)
		r.Delete("/vendors/me/products/{product_id}", h.releaseProduct)
	})
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	activeOnly := r.URL.Query().Get("active") != "false"
	products, err := h.service.ListProducts(r.Context(), category, activeOnly)
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, products)
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	p, err := h.service.CreateProduct(r.Context(), req)
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusCreated, p)
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, p)
}

func (h *Handler) listVendorProducts(w http.ResponseWriter, r *http.Request) {
	vendorID, err := h.resolveVendor(r)
	if err != nil {
		respondErr(w, err)
		return
	}
	products, err := h.service.ListVendorProducts(r.Context(), vendorID)
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, products)
}

func (h *Handler) claimProduct(w http.ResponseWriter, r *http.Request) {
	vendorID, err := h.resolveVendor(r)
	if err != nil {
		respondErr(w, err)
		return
	}
	if err := h.service.AssignProductToVendor(r.Context(), vendorID, chi.URLParam(r, "product_id")); err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusNoContent, nil)
}

func (h *Handler) releaseProduct(w http.ResponseWriter, r *http.Request) {
	vendorID, err := h.resolveVendor(r)
	if err != nil {
		respondErr(w, err)
		return
	}
	if err := h.service.UnassignProductFromVendor(r.Context(), vendorID, chi.URLParam(r, "product_id")); err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusNoContent, nil)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		json.NewEncoder(w).Encode(body)
	}
}

func respondErr(w http.ResponseWriter, err error) {
	var status int
	switch apperror.KindOf(err) {
	case apperror.Validation:
		status = http.StatusBadRequest
	case apperror.Duplicate:
		status = http.StatusConflict
	case apperror.Reference, apperror.NotFound:
		status = http.StatusNotFound
	case apperror.Unavailable:
		status = http.StatusServiceUnavailable
	default:
		status = http.StatusInternalServerError
	}
	respond(w, status, map[string]string{"error": err.Error()})
}
