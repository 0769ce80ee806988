package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/domains/book"
)

// fakeBookService returns canned results per call.
type fakeBookService struct {
	book.Service

	getByIDResp *book.BookResponse
	getByIDErr  error

	getByISBNResp *book.BookResponse
	getByISBNErr  error

	createResp *book.BookResponse
	createErr  error

	patchResp *book.BookResponse
	patchErr  error

	deleteErr error

	searchResp []*book.BookResponse
	searchErr  error
}

func (f *fakeBookService) GetByID(ctx context.Context, id uuid.UUID) (*book.BookResponse, error) {
	return f.getByIDResp, f.getByIDErr
}

func (f *fakeBookService) GetByISBN(ctx context.Context, isbn string) (*book.BookResponse, error) {
	return f.getByISBNResp, f.getByISBNErr
}

func (f *fakeBookService) Create(ctx context.Context, req *book.CreateBookRequest) (*book.BookResponse, error) {
	return f.createResp, f.createErr
}

func (f *fakeBookService) UpdatePartial(ctx context.Context, id uuid.UUID, req *book.PatchBookRequest) (*book.BookResponse, error) {
	return f.patchResp, f.patchErr
}

func (f *fakeBookService) Delete(ctx context.Context, id uuid.UUID) error {
	return f.deleteErr
}

func (f *fakeBookService) SearchByAuthor(ctx context.Context, author string) ([]*book.BookResponse, error) {
	return f.searchResp, f.searchErr
}

func setupTestRouter(svc book.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewBookHandler(svc)

	r := gin.New()
	books := r.Group("/api/books")
	{
		books.GET("/:id", h.GetByID)
		books.GET("/isbn/:isbn", h.GetByISBN)
		books.GET("/search/author", h.SearchByAuthor)
		books.POST("", h.Create)
		books.PATCH("/:id", h.UpdatePartial)
		books.DELETE("/:id", h.Delete)
	}
	return r
}

func sampleResponse() *book.BookResponse {
	return &book.BookResponse{
		ID:          uuid.New(),
		Title:       "Introduction to Go",
		Author:      "Hong Gildong",
		ISBN:        "978-89-1234-567-425",
		Price:       30000,
		PublishDate: "2025-05-07",
	}
}

func TestBookHandler_GetByID(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		resp := sampleResponse()
		router := setupTestRouter(&fakeBookService{getByIDResp: resp})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/books/"+resp.ID.String(), nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var envelope struct {
			Success bool              `json:"success"`
			Data    book.BookResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
		assert.True(t, envelope.Success)
		assert.Equal(t, resp.ISBN, envelope.Data.ISBN)
	})

	t.Run("invalid uuid", func(t *testing.T) {
		router := setupTestRouter(&fakeBookService{})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/books/not-a-uuid", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("not found", func(t *testing.T) {
		router := setupTestRouter(&fakeBookService{getByIDErr: book.ErrBookNotFound})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/books/"+uuid.NewString(), nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)

		var envelope struct {
			Success bool `json:"success"`
			Error   struct {
				Code string `json:"code"`
			} `json:"error"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
		assert.False(t, envelope.Success)
		assert.Equal(t, "BOOK_NOT_FOUND", envelope.Error.Code)
	})
}

func TestBookHandler_GetByISBN(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		resp := sampleResponse()
		router := setupTestRouter(&fakeBookService{getByISBNResp: resp})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/books/isbn/"+resp.ISBN, nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("not found", func(t *testing.T) {
		router := setupTestRouter(&fakeBookService{getByISBNErr: book.ErrBookNotFound})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/books/isbn/978-0-0000-0000-0", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestBookHandler_Create(t *testing.T) {
	validBody := map[string]interface{}{
		"title":        "Introduction to Go",
		"author":       "Hong Gildong",
		"isbn":         "978-89-1234-567-425",
		"price":        30000,
		"publish_date": "2025-05-07",
	}

	t.Run("created", func(t *testing.T) {
		router := setupTestRouter(&fakeBookService{createResp: sampleResponse()})

		body, _ := json.Marshal(validBody)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/books", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("validation failure", func(t *testing.T) {
		router := setupTestRouter(&fakeBookService{})

		invalid := map[string]interface{}{
			"title": "No ISBN here",
		}
		body, _ := json.Marshal(invalid)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/books", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("duplicate isbn", func(t *testing.T) {
		router := setupTestRouter(&fakeBookService{
			createErr: fmt.Errorf("%w: 978-89-1234-567-425", book.ErrDuplicateISBN),
		})

		body, _ := json.Marshal(validBody)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/books", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)

		var envelope struct {
			Error struct {
				Code string `json:"code"`
			} `json:"error"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
		assert.Equal(t, "DUPLICATE_ISBN", envelope.Error.Code)
	})
}

func TestBookHandler_UpdatePartial(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		router := setupTestRouter(&fakeBookService{patchResp: sampleResponse()})

		body, _ := json.Marshal(map[string]interface{}{"price": 25000})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPatch, "/api/books/"+uuid.NewString(), bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("not found", func(t *testing.T) {
		router := setupTestRouter(&fakeBookService{patchErr: book.ErrBookNotFound})

		body, _ := json.Marshal(map[string]interface{}{"price": 25000})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPatch, "/api/books/"+uuid.NewString(), bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestBookHandler_Delete(t *testing.T) {
	t.Run("no content", func(t *testing.T) {
		router := setupTestRouter(&fakeBookService{})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/api/books/"+uuid.NewString(), nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.Bytes())
	})

	t.Run("not found", func(t *testing.T) {
		router := setupTestRouter(&fakeBookService{deleteErr: book.ErrBookNotFound})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/api/books/"+uuid.NewString(), nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestBookHandler_SearchByAuthor(t *testing.T) {
	t.Run("missing query param", func(t *testing.T) {
		router := setupTestRouter(&fakeBookService{})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/books/search/author", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("success", func(t *testing.T) {
		router := setupTestRouter(&fakeBookService{
			searchResp: []*book.BookResponse{sampleResponse()},
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/books/search/author?author=Hong", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
