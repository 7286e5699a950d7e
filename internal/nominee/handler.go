// AngelaMos | 2026
// handler.go

package nominee

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

// RegisterRoutes expects to be mounted below
// /users/{id}/insurances/{insuranceId}/nominees.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/", h.Create)
	r.Put("/{nomineeId}", h.Update)
	r.Delete("/{nomineeId}", h.Delete)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID, insuranceID, err := parentIDs(r)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	nominee, err := h.service.Create(r.Context(), userID, insuranceID, req)
	if err != nil {
		core.WriteError(w, r, err, "Insurance")
		return
	}

	core.Created(w, NomineeEnvelope{Nominee: ToNomineeResponse(nominee)})
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	userID, insuranceID, err := parentIDs(r)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	id, err := core.URLParamID(r, "nomineeId")
	if err != nil {
		core.JSONError(w, err)
		return
	}

	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	nominee, err := h.service.Update(r.Context(), userID, insuranceID, id, req)
	if err != nil {
		core.WriteError(w, r, err, "Nominee")
		return
	}

	core.OK(w, NomineeEnvelope{Nominee: ToNomineeResponse(nominee)})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, insuranceID, err := parentIDs(r)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	id, err := core.URLParamID(r, "nomineeId")
	if err != nil {
		core.JSONError(w, err)
		return
	}

	if err := h.service.Delete(r.Context(), userID, insuranceID, id); err != nil {
		core.WriteError(w, r, err, "Nominee")
		return
	}

	core.Success(w)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request) (NomineeRequest, bool) {
	var req NomineeRequest
	if err := core.DecodeJSON(w, r, &req); err != nil {
		core.JSONError(w, err)
		return req, false
	}

	req.Normalize()
	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return req, false
	}

	return req, true
}

func parentIDs(r *http.Request) (int64, int64, error) {
	userID, err := core.URLParamID(r, "id")
	if err != nil {
		return 0, 0, err
	}

	insuranceID, err := core.URLParamID(r, "insuranceId")
	if err != nil {
		return 0, 0, err
	}

	return userID, insuranceID, nil
}
