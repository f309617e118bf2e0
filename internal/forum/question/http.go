// Copyright (c) 2026 Demarthology. All rights reserved.
// Author: htilssu

package question

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/htilssu/demarthology-api/internal/platform/middleware"
	requestutil "github.com/htilssu/demarthology-api/internal/platform/request"
	"github.com/htilssu/demarthology-api/internal/platform/respond"
	"github.com/htilssu/demarthology-api/pkg/pagination"
	"github.com/htilssu/demarthology-api/pkg/query"
)

// # Handler Implementation

// Handler implements the HTTP layer for forum questions.
type Handler struct {
	service *Service
}

// NewHandler constructs a new question [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with question endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// ## Public Discovery
	router.Get("/", handler.listApproved)
	router.Get("/{id}", handler.getQuestion)

	// ## Members (role checks happen in the service)
	router.Group(func(members chi.Router) {
		members.Use(middleware.RequireAuth)
		members.Post("/", handler.createQuestion)
		members.Get("/pending", handler.listPending)
		members.Post("/{id}/moderate", handler.moderateQuestion)
		members.Delete("/{id}", handler.deleteQuestion)
	})

	return router
}

type createdResponse struct {
	Success bool      `json:"success"`
	Message string    `json:"message"`
	Data    *Question `json:"data"`
}

/*
GET /api/v1/questions.

Request:
  - symptom_ids: string (Comma-separated symptom UUIDs, matches any)
  - limit: int
  - page: int

Response:
  - 200: []ListItem: Approved questions, content truncated
*/
func (handler *Handler) listApproved(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	symptomIDs := query.StringSlice(request.URL.Query().Get(FieldSymptomIDs))

	items, total, err := handler.service.ListApproved(request.Context(), symptomIDs, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, items, pagination.NewMeta(paginationParams, total))
}

// GET /api/v1/questions/pending. Moderators and admins only.
func (handler *Handler) listPending(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	items, total, err := handler.service.ListPending(request.Context(), requestutil.CurrentUser(request),
		paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, items, pagination.NewMeta(paginationParams, total))
}

/*
GET /api/v1/questions/{id}.

Response:
  - 200: Detail: Question with symptoms
  - 404: Missing, or not yet visible to the caller
*/
func (handler *Handler) getQuestion(writer http.ResponseWriter, request *http.Request) {
	detail, err := handler.service.GetQuestion(request.Context(), requestutil.CurrentUser(request), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, detail)
}

/*
POST /api/v1/questions.

Response:
  - 201: Question (pending)
  - 400: Validation failure
  - 401: Authentication required
*/
func (handler *Handler) createQuestion(writer http.ResponseWriter, request *http.Request) {
	var input CreateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	question, err := handler.service.CreateQuestion(request.Context(), requestutil.CurrentUser(request), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.JSON(writer, http.StatusCreated, createdResponse{Success: true, Message: MsgCreated, Data: question})
}

// POST /api/v1/questions/{id}/moderate.
func (handler *Handler) moderateQuestion(writer http.ResponseWriter, request *http.Request) {
	var input ModerateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	question, err := handler.service.ModerateQuestion(request.Context(), requestutil.CurrentUser(request),
		requestutil.Param(request, "id"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, question)
}

// DELETE /api/v1/questions/{id}. Author or admin.
func (handler *Handler) deleteQuestion(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteQuestion(request.Context(), requestutil.CurrentUser(request), requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Message(writer, MsgDeleted)
}
