// Copyright (c) 2026 ClaimPoint. All rights reserved.

package staff

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/claimpoint/claimpoint/internal/platform/middleware"
	requestutil "github.com/claimpoint/claimpoint/internal/platform/request"
	"github.com/claimpoint/claimpoint/internal/platform/respond"
	"github.com/claimpoint/claimpoint/internal/platform/sec"
	"github.com/claimpoint/claimpoint/internal/platform/validate"
	"github.com/claimpoint/claimpoint/internal/users/auth"
)

// Handler implements the ADMIN-only staff administration endpoints.
type Handler struct {
	staffService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{staffService: service}
}

// Routes returns a [chi.Router] with staff administration routes.
//
// # Endpoints
//   - POST / : Enrolls a new staff member (ADMIN only).
//   - GET  / : Lists staff accounts (ADMIN only).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(sec.RoleAdmin))
		r.Post("/", handler.addStaff)
		r.Get("/", handler.listStaff)
	})

	return router
}

type addStaffRequest struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
}

/*
AddStaff enrolls a new staff member.

POST /api/v1/staff

Request:
  - Body: addStaffRequest (Email, FullName, Phone)

Response:
  - 201: {message, user}: Created staff account
  - 403: ErrForbidden: Caller is not an ADMIN
  - 409: ErrConflict: Email already registered
*/
func (handler *Handler) addStaff(writer http.ResponseWriter, request *http.Request) {
	var input addStaffRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(auth.FieldEmail, input.Email).
		Email(auth.FieldEmail, input.Email).
		Required(auth.FieldFullName, input.FullName).
		MinLen(auth.FieldFullName, input.FullName, 2).
		Required(auth.FieldPhone, input.Phone).
		Phone(auth.FieldPhone, input.Phone)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.staffService.AddStaff(request.Context(), AddStaffInput{
		Email:    input.Email,
		FullName: input.FullName,
		Phone:    input.Phone,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, map[string]any{
		auth.FieldMessage: "Staff member added successfully",
		auth.FieldUser:    user,
	})
}

/*
ListStaff returns all staff accounts.

GET /api/v1/staff

Response:
  - 200: []User: Staff accounts, newest first
  - 403: ErrForbidden: Caller is not an ADMIN
*/
func (handler *Handler) listStaff(writer http.ResponseWriter, request *http.Request) {
	users, err := handler.staffService.ListStaff(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, users)
}
