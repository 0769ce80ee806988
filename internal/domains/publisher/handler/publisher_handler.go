package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"library-backend/internal/domains/book"
	"library-backend/internal/domains/publisher"
	"library-backend/internal/shared/response"
)

type PublisherHandler struct {
	service     publisher.Service
	bookService book.Service
}

// NewPublisherHandler creates the publisher handler. The book service
// backs the /publishers/:id/books listing.
func NewPublisherHandler(svc publisher.Service, bookSvc book.Service) *PublisherHandler {
	return &PublisherHandler{
		service:     svc,
		bookService: bookSvc,
	}
}

// GetAll - GET /api/publishers
func (h *PublisherHandler) GetAll(c *gin.Context) {
	publishers, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, publishers)
}

// GetByID - GET /api/publishers/:id
func (h *PublisherHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid publisher id format")
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// GetByName - GET /api/publishers/name/:name
func (h *PublisherHandler) GetByName(c *gin.Context) {
	resp, err := h.service.GetByName(c.Request.Context(), c.Param("name"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// GetBooks - GET /api/publishers/:id/books
func (h *PublisherHandler) GetBooks(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid publisher id format")
		return
	}

	// 404 when the publisher itself does not exist
	if _, err := h.service.GetByID(c.Request.Context(), id); err != nil {
		handleServiceError(c, err)
		return
	}

	books, err := h.bookService.GetByPublisherID(c.Request.Context(), id)
	if err != nil {
		response.ErrorResponse(c, book.ToHTTPStatus(err), book.ToErrorCode(err), err.Error())
		return
	}

	response.Success(c, http.StatusOK, books)
}

// Create - POST /api/publishers
func (h *PublisherHandler) Create(c *gin.Context) {
	var req publisher.CreatePublisherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "request validation failed", err)
		return
	}

	resp, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp)
}

// Update - PUT /api/publishers/:id
func (h *PublisherHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid publisher id format")
		return
	}

	var req publisher.CreatePublisherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "request validation failed", err)
		return
	}

	resp, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// Delete - DELETE /api/publishers/:id
func (h *PublisherHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid publisher id format")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func handleServiceError(c *gin.Context, err error) {
	response.ErrorResponse(c, publisher.ToHTTPStatus(err), publisher.ToErrorCode(err), err.Error())
}
