// AngelaMos | 2026
// handler.go

package customer

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/weclaim/weclaim-api/internal/core"
	"github.com/weclaim/weclaim-api/internal/middleware"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: core.NewValidator(),
	}
}

// RegisterRoutes mounts /users. nested, when set, is mounted at
// /users/{id}/insurances.
func (h *Handler) RegisterRoutes(r chi.Router, nested func(chi.Router)) {
	r.Route("/users", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/search", h.Search)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)

		if nested != nil {
			r.Route("/{id}/insurances", nested)
		}
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	customers, err := h.service.List(r.Context())
	if err != nil {
		core.InternalServerError(w, r, err)
		return
	}

	core.OK(w, CustomerListResponse{Users: ToCustomerResponseList(customers)})
}

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	matches, err := h.service.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		core.InternalServerError(w, r, err)
		return
	}

	core.OK(w, SearchResponse{Users: matches})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	customer, err := h.service.Create(
		r.Context(),
		middleware.GetUserID(r.Context()),
		req,
	)
	if err != nil {
		core.WriteError(w, r, err, "User")
		return
	}

	core.Created(w, CustomerEnvelope{User: ToCustomerResponse(customer)})
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := core.URLParamID(r, "id")
	if err != nil {
		core.JSONError(w, err)
		return
	}

	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	customer, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		core.WriteError(w, r, err, "User")
		return
	}

	core.OK(w, CustomerEnvelope{User: ToCustomerResponse(customer)})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := core.URLParamID(r, "id")
	if err != nil {
		core.JSONError(w, err)
		return
	}

	role := middleware.GetUserRole(r.Context())
	if err := h.service.Delete(r.Context(), role, id); err != nil {
		core.WriteError(w, r, err, "User")
		return
	}

	core.Success(w)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request) (CustomerRequest, bool) {
	var req CustomerRequest
	if err := core.DecodeJSON(w, r, &req); err != nil {
		core.JSONError(w, err)
		return req, false
	}

	req.Normalize()
	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return req, false
	}

	if err := req.Check(); err != nil {
		core.JSONError(w, err)
		return req, false
	}

	return req, true
}
