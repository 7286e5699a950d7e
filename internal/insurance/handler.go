// AngelaMos | 2026
// handler.go

package insurance

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/weclaim/weclaim-api/internal/core"
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

// RegisterRoutes expects to be mounted below /users/{id}/insurances.
// nested, when set, is mounted at /{insuranceId}/nominees.
func (h *Handler) RegisterRoutes(r chi.Router, nested func(chi.Router)) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Put("/{insuranceId}", h.Update)
	r.Delete("/{insuranceId}", h.Delete)

	if nested != nil {
		r.Route("/{insuranceId}/nominees", nested)
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := core.URLParamID(r, "id")
	if err != nil {
		core.JSONError(w, err)
		return
	}

	resp, err := h.service.ListForCustomer(r.Context(), userID)
	if err != nil {
		core.WriteError(w, r, err, "User")
		return
	}

	core.OK(w, resp)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := core.URLParamID(r, "id")
	if err != nil {
		core.JSONError(w, err)
		return
	}

	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	insurance, err := h.service.Create(r.Context(), userID, req)
	if err != nil {
		core.WriteError(w, r, err, "User")
		return
	}

	core.Created(w, CreatedEnvelope{
		Success:   true,
		Insurance: ToInsuranceResponse(insurance),
	})
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	userID, err := core.URLParamID(r, "id")
	if err != nil {
		core.JSONError(w, err)
		return
	}

	id, err := core.URLParamID(r, "insuranceId")
	if err != nil {
		core.JSONError(w, err)
		return
	}

	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	insurance, err := h.service.Update(r.Context(), userID, id, req)
	if err != nil {
		core.WriteError(w, r, err, "Insurance")
		return
	}

	core.OK(w, InsuranceEnvelope{Insurance: ToInsuranceResponse(insurance)})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, err := core.URLParamID(r, "id")
	if err != nil {
		core.JSONError(w, err)
		return
	}

	id, err := core.URLParamID(r, "insuranceId")
	if err != nil {
		core.JSONError(w, err)
		return
	}

	if err := h.service.Delete(r.Context(), userID, id); err != nil {
		core.WriteError(w, r, err, "Insurance")
		return
	}

	core.Success(w)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request) (InsuranceRequest, bool) {
	var req InsuranceRequest
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
