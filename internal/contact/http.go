// Copyright (c) 2026 ClaimPoint. All rights reserved.

// HTTP delivery layer for the contact form.
package contact

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/claimpoint/claimpoint/internal/platform/request"
	"github.com/claimpoint/claimpoint/internal/platform/respond"
	"github.com/claimpoint/claimpoint/internal/platform/validate"
)

// Handler implements the contact form HTTP endpoint.
type Handler struct {
	contactService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{contactService: service}
}

// Routes returns a [chi.Router] configured with the contact route.
//
// # Endpoints
//   - POST / : Submits a contact message (public).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Post("/", handler.submit)
	return router
}

type submitRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

/*
Submit accepts a contact form submission.

POST /api/v1/contact

Request:
  - Body: submitRequest (Name, Email, Subject, Body)

Response:
  - 201: Message: Stored submission with its reference ID
  - 400: ErrInvalidJSON: Bad input or validation failure
*/
func (handler *Handler) submit(writer http.ResponseWriter, request *http.Request) {
	var input submitRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).
		MaxLen(FieldName, input.Name, 120).
		Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldSubject, input.Subject).
		MaxLen(FieldSubject, input.Subject, 200).
		Required(FieldBody, input.Body).
		MaxLen(FieldBody, input.Body, 5000)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	message, err := handler.contactService.Submit(request.Context(), SubmitInput{
		Name:    input.Name,
		Email:   input.Email,
		Subject: input.Subject,
		Body:    input.Body,
	})

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, message)
}
