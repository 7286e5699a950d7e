// AngelaMos | 2026
// handler.go

package systemuser

import (
	"errors"
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

// RegisterRoutes mounts system user management. The router is expected to
// already carry the session authenticator.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/system-users", func(r chi.Router) {
		r.Use(middleware.RequireAdmin)

		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Put("/{id}", h.Update)
		r.Patch("/{id}", h.UpdateStatus)
		r.Delete("/{id}", h.Delete)
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.List(r.Context())
	if err != nil {
		core.InternalServerError(w, r, err)
		return
	}

	core.OK(w, SystemUserListResponse{Users: ToSystemUserResponseList(users)})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateSystemUserRequest
	if err := core.DecodeJSON(w, r, &req); err != nil {
		core.JSONError(w, err)
		return
	}

	req.Normalize()
	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	user, err := h.service.Create(r.Context(), actorFrom(r), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	core.Created(w, SystemUserEnvelope{User: ToSystemUserResponse(user)})
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := core.URLParamID(r, "id")
	if err != nil {
		core.JSONError(w, err)
		return
	}

	var req UpdateSystemUserRequest
	if err := core.DecodeJSON(w, r, &req); err != nil {
		core.JSONError(w, err)
		return
	}

	req.Normalize()
	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	user, err := h.service.Update(r.Context(), actorFrom(r), id, req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	core.OK(w, SystemUserEnvelope{User: ToSystemUserResponse(user)})
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := core.URLParamID(r, "id")
	if err != nil {
		core.JSONError(w, err)
		return
	}

	var req UpdateStatusRequest
	if err := core.DecodeJSON(w, r, &req); err != nil {
		core.JSONError(w, err)
		return
	}

	req.Normalize()
	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	status, ok := req.Target()
	if !ok {
		core.BadRequest(w, "Provide exactly one of active or status")
		return
	}

	user, err := h.service.SetStatus(r.Context(), actorFrom(r), id, status)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	core.OK(w, SystemUserEnvelope{User: ToSystemUserResponse(user)})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := core.URLParamID(r, "id")
	if err != nil {
		core.JSONError(w, err)
		return
	}

	if err := h.service.Delete(r.Context(), actorFrom(r), id); err != nil {
		h.writeError(w, r, err)
		return
	}

	core.Success(w)
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, core.ErrDuplicateKey):
		core.JSONError(w, core.DuplicateError("email"))
	case errors.Is(err, ErrHasCustomers):
		core.JSONError(w, core.NewAppError(
			err,
			"System user still owns customers",
			http.StatusConflict,
			core.CodeDuplicate,
		))
	case errors.Is(err, core.ErrForbidden) && !core.IsAppError(err):
		core.Forbidden(w, "Only a super admin can manage super admin accounts")
	default:
		core.WriteError(w, r, err, "System user")
	}
}

func actorFrom(r *http.Request) Actor {
	return Actor{
		ID:   middleware.GetUserID(r.Context()),
		Role: middleware.GetUserRole(r.Context()),
	}
}
