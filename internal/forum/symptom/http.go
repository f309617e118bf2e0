// Copyright (c) 2026 Demarthology. All rights reserved.
// Author: htilssu

package symptom

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/htilssu/demarthology-api/internal/platform/authz"
	"github.com/htilssu/demarthology-api/internal/platform/middleware"
	requestutil "github.com/htilssu/demarthology-api/internal/platform/request"
	"github.com/htilssu/demarthology-api/internal/platform/respond"
	"github.com/htilssu/demarthology-api/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for the symptom catalogue.
type Handler struct {
	service *Service
}

// NewHandler constructs a new symptom [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with symptom endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// ## Public Discovery
	router.Get("/", handler.listSymptoms)
	router.Get("/{identifier}", handler.getSymptom)

	// ## Curation (moderator or admin)
	router.Group(func(curators chi.Router) {
		curators.Use(middleware.RequirePermission(authz.Moderation))
		curators.Post("/", handler.createSymptom)
		curators.Patch("/{id}", handler.updateSymptom)
		curators.Delete("/{id}", handler.deleteSymptom)
	})

	return router
}

/*
GET /api/v1/symptoms.

Request:
  - q: string (Name search)
  - limit: int
  - page: int

Response:
  - 200: []Symptom: Paginated list
*/
func (handler *Handler) listSymptoms(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	filter := Filter{Query: request.URL.Query().Get("q")}

	symptoms, total, err := handler.service.ListSymptoms(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, symptoms, pagination.NewMeta(paginationParams, total))
}

/*
GET /api/v1/symptoms/{identifier}.

Response:
  - 200: Symptom
  - 404: Symptom not found
*/
func (handler *Handler) getSymptom(writer http.ResponseWriter, request *http.Request) {
	symptom, err := handler.service.GetSymptom(request.Context(), requestutil.Param(request, "identifier"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, symptom)
}

/*
POST /api/v1/symptoms.

Response:
  - 201: Symptom: Created object
  - 400: Validation failure
  - 401/403: Not a moderator or admin
  - 409: Slug already taken
*/
func (handler *Handler) createSymptom(writer http.ResponseWriter, request *http.Request) {
	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	symptom, err := handler.service.CreateSymptom(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, symptom)
}

// PATCH /api/v1/symptoms/{id}.
func (handler *Handler) updateSymptom(writer http.ResponseWriter, request *http.Request) {
	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	symptom, err := handler.service.UpdateSymptom(request.Context(), requestutil.Param(request, "id"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, symptom)
}

// DELETE /api/v1/symptoms/{id}.
func (handler *Handler) deleteSymptom(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteSymptom(request.Context(), requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Message(writer, MsgDeleted)
}
