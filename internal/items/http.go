// Copyright (c) 2026 ClaimPoint. All rights reserved.

/*
HTTP delivery layer for the found-item catalogue.

# Architecture

Browsing and searching are public so visitors can check for their lost
property before registering. Recording and status changes are restricted to
counter staff and administrators.
*/
package items

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/claimpoint/claimpoint/internal/platform/middleware"
	requestutil "github.com/claimpoint/claimpoint/internal/platform/request"
	"github.com/claimpoint/claimpoint/internal/platform/respond"
	"github.com/claimpoint/claimpoint/internal/platform/sec"
	"github.com/claimpoint/claimpoint/internal/platform/validate"
)

// Handler implements catalogue HTTP endpoints.
type Handler struct {
	itemService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{itemService: service}
}

// Routes returns a [chi.Router] configured with catalogue routes.
//
// # Endpoints
//   - GET  /             : Lists the full catalogue (public).
//   - GET  /search       : Free-text search (public).
//   - GET  /{id}         : Returns a single item (public).
//   - POST /             : Records a new item (staff, admin).
//   - POST /{id}/claimed : Marks an item as handed over (staff, admin).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public endpoints
	router.Get("/", handler.list)
	router.Get("/search", handler.search)
	router.Get("/{id}", handler.get)

	// Staff endpoints
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Use(middleware.AnyRole(sec.RoleStaff, sec.RoleAdmin))
		r.Post("/", handler.record)
		r.Post("/{id}/claimed", handler.markClaimed)
	})

	return router
}

// # Request Payloads

type recordRequest struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Location    string    `json:"location"`
	FoundAt     time.Time `json:"found_at"`
}

/*
Record registers a newly recovered item.

POST /api/v1/items

Request:
  - Body: recordRequest (Name, Description, Category, Location, FoundAt)

Response:
  - 201: Item: Created catalogue entry
  - 400: ErrInvalidJSON: Bad input or validation failure
  - 403: ErrForbidden: Caller is not staff
*/
func (handler *Handler) record(writer http.ResponseWriter, request *http.Request) {
	var input recordRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).
		MaxLen(FieldName, input.Name, 120).
		MaxLen(FieldDescription, input.Description, 2000).
		Required(FieldCategory, input.Category).
		OneOf(FieldCategory, input.Category, Categories...).
		Required(FieldLocation, input.Location).
		MaxLen(FieldLocation, input.Location, 200)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	item, err := handler.itemService.Record(request.Context(), RecordInput{
		Name:        input.Name,
		Description: input.Description,
		Category:    input.Category,
		Location:    input.Location,
		FoundAt:     input.FoundAt,
		RecordedBy:  claims.UserID,
	})

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, item)
}

/*
List returns the full catalogue.

GET /api/v1/items

Response:
  - 200: []Item: Catalogue entries, newest first
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	items, err := handler.itemService.List(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, items)
}

/*
Search runs a free-text search over the catalogue.

GET /api/v1/items/search?q=term

Response:
  - 200: []Item: Matching entries, newest first
*/
func (handler *Handler) search(writer http.ResponseWriter, request *http.Request) {
	query := request.URL.Query().Get(FieldQuery)

	items, err := handler.itemService.Search(request.Context(), query)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, items)
}

/*
Get returns a single catalogue entry.

GET /api/v1/items/{id}

Response:
  - 200: Item: Hydrated entry
  - 404: ErrNotFound: Unknown ID
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.Param(request, "id")

	validator := &validate.Validator{}
	validator.UUID("id", id)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	item, err := handler.itemService.Get(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, item)
}

/*
MarkClaimed records the hand-over of an item to its owner.

POST /api/v1/items/{id}/claimed

Response:
  - 200: Success: Status updated
  - 404: ErrNotFound: Unknown ID
  - 409: ErrConflict: Item already claimed
*/
func (handler *Handler) markClaimed(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.Param(request, "id")

	validator := &validate.Validator{}
	validator.UUID("id", id)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.itemService.MarkClaimed(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{
		"message": "Item marked as claimed",
	})
}
