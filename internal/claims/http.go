// Copyright (c) 2026 ClaimPoint. All rights reserved.

/*
HTTP delivery layer for ownership claims.

All claim endpoints require an authenticated USER; staff and administrators
manage items directly and do not file claims.
*/
package claims

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/claimpoint/claimpoint/internal/platform/middleware"
	requestutil "github.com/claimpoint/claimpoint/internal/platform/request"
	"github.com/claimpoint/claimpoint/internal/platform/respond"
	"github.com/claimpoint/claimpoint/internal/platform/sec"
	"github.com/claimpoint/claimpoint/internal/platform/validate"
)

// Handler implements claim HTTP endpoints.
type Handler struct {
	claimService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{claimService: service}
}

// Routes returns a [chi.Router] configured with claim routes.
//
// # Endpoints
//   - POST /     : Submits a claim on an item (user).
//   - GET  /mine : Lists the caller's claims (user).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Use(middleware.RequireAuth)
	router.Use(middleware.RequireRole(sec.RoleUser))

	router.Post("/", handler.submit)
	router.Get("/mine", handler.listMine)

	return router
}

// # Request Payloads

type submitRequest struct {
	ItemID string `json:"item_id"`
	Proof  string `json:"proof"`
}

/*
Submit files an ownership claim on a catalogued item.

POST /api/v1/claims

Request:
  - Body: submitRequest (ItemID, Proof)

Response:
  - 201: Claim: Created claim
  - 404: ErrNotFound: Unknown item
  - 409: ErrConflict: Item unavailable or already claimed by this user
*/
func (handler *Handler) submit(writer http.ResponseWriter, request *http.Request) {
	var input submitRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldItemID, input.ItemID).
		UUID(FieldItemID, input.ItemID).
		Required(FieldProof, input.Proof).
		MinLen(FieldProof, input.Proof, 10).
		MaxLen(FieldProof, input.Proof, 2000)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	claim, err := handler.claimService.Submit(request.Context(), userID, input.ItemID, input.Proof)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, claim)
}

/*
ListMine returns the caller's claims, newest first.

GET /api/v1/claims/mine

Response:
  - 200: []Claim: The caller's claims
*/
func (handler *Handler) listMine(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	claims, err := handler.claimService.ListMine(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, claims)
}
