package book

import (
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

const (
	MaxTitleLength  = 500
	MaxAuthorLength = 255
	DateLayout      = "2006-01-02"
)

var isbnPattern = regexp.MustCompile(`^[0-9][0-9-]{8,18}$`)

// BookDetailRequest - nested detail payload for create/replace
type BookDetailRequest struct {
	Description   string `json:"description"`
	Language      string `json:"language"`
	PageCount     int    `json:"page_count"`
	Publisher     string `json:"publisher"`
	CoverImageURL string `json:"cover_image_url"`
	Edition       string `json:"edition"`
}

func (r BookDetailRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.PageCount, validation.Min(0)),
		validation.Field(&r.Language, validation.Length(0, 100)),
	)
}

// CreateBookRequest - POST /api/books
type CreateBookRequest struct {
	Title       string             `json:"title"`
	Author      string             `json:"author"`
	ISBN        string             `json:"isbn"`
	Price       int                `json:"price"`
	PublishDate string             `json:"publish_date"`
	PublisherID *uuid.UUID         `json:"publisher_id,omitempty"`
	Detail      *BookDetailRequest `json:"detail,omitempty"`
}

func (r CreateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, MaxTitleLength),
		),
		validation.Field(&r.Author,
			validation.Required.Error("author is required"),
			validation.Length(1, MaxAuthorLength),
		),
		validation.Field(&r.ISBN,
			validation.Required.Error("isbn is required"),
			validation.Match(isbnPattern).Error("isbn must contain only digits and dashes"),
		),
		validation.Field(&r.Price,
			validation.Min(0).Error("price must not be negative"),
		),
		validation.Field(&r.PublishDate,
			validation.Required.Error("publish_date is required"),
			validation.Date(DateLayout).Error("publish_date must be in YYYY-MM-DD format"),
		),
		validation.Field(&r.Detail),
	)
}

// UpdateBookRequest - PUT /api/books/:id
// Full replace: every scalar field is overwritten unconditionally.
type UpdateBookRequest struct {
	Title       string             `json:"title"`
	Author      string             `json:"author"`
	ISBN        string             `json:"isbn"`
	Price       int                `json:"price"`
	PublishDate string             `json:"publish_date"`
	PublisherID *uuid.UUID         `json:"publisher_id,omitempty"`
	Detail      *BookDetailRequest `json:"detail,omitempty"`
}

func (r UpdateBookRequest) Validate() error {
	return CreateBookRequest(r).Validate()
}

// PatchBookRequest - PATCH /api/books/:id
// All fields optional; only non-nil fields are applied.
type PatchBookRequest struct {
	Title       *string                 `json:"title,omitempty"`
	Author      *string                 `json:"author,omitempty"`
	ISBN        *string                 `json:"isbn,omitempty"`
	Price       *int                    `json:"price,omitempty"`
	PublishDate *string                 `json:"publish_date,omitempty"`
	PublisherID *uuid.UUID              `json:"publisher_id,omitempty"`
	Detail      *PatchBookDetailRequest `json:"detail,omitempty"`
}

func (r PatchBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.NilOrNotEmpty.Error("title must not be empty"),
			validation.Length(1, MaxTitleLength),
		),
		validation.Field(&r.Author,
			validation.NilOrNotEmpty.Error("author must not be empty"),
			validation.Length(1, MaxAuthorLength),
		),
		validation.Field(&r.ISBN,
			validation.Match(isbnPattern).Error("isbn must contain only digits and dashes"),
		),
		validation.Field(&r.Price, validation.Min(0).Error("price must not be negative")),
		validation.Field(&r.PublishDate, validation.Date(DateLayout).Error("publish_date must be in YYYY-MM-DD format")),
		validation.Field(&r.Detail),
	)
}

// PatchBookDetailRequest - PATCH /api/books/:id/detail
type PatchBookDetailRequest struct {
	Description   *string `json:"description,omitempty"`
	Language      *string `json:"language,omitempty"`
	PageCount     *int    `json:"page_count,omitempty"`
	Publisher     *string `json:"publisher,omitempty"`
	CoverImageURL *string `json:"cover_image_url,omitempty"`
	Edition       *string `json:"edition,omitempty"`
}

func (r PatchBookDetailRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.PageCount, validation.Min(0)),
		validation.Field(&r.Language, validation.Length(0, 100)),
	)
}

// BookDetailResponse - nested detail in book responses
type BookDetailResponse struct {
	ID            uuid.UUID `json:"id"`
	Description   string    `json:"description"`
	Language      string    `json:"language"`
	PageCount     int       `json:"page_count"`
	Publisher     string    `json:"publisher"`
	CoverImageURL string    `json:"cover_image_url"`
	Edition       string    `json:"edition"`
}

// BookResponse - API representation of a book
type BookResponse struct {
	ID          uuid.UUID           `json:"id"`
	Title       string              `json:"title"`
	Author      string              `json:"author"`
	ISBN        string              `json:"isbn"`
	Price       int                 `json:"price"`
	PublishDate string              `json:"publish_date"`
	PublisherID *uuid.UUID          `json:"publisher_id,omitempty"`
	Detail      *BookDetailResponse `json:"detail,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// Conversion methods

// ToResponse converts a Book entity to its API shape.
func (b *Book) ToResponse() *BookResponse {
	resp := &BookResponse{
		ID:          b.ID,
		Title:       b.Title,
		Author:      b.Author,
		ISBN:        b.ISBN,
		Price:       b.Price,
		PublishDate: b.PublishDate.Format(DateLayout),
		PublisherID: b.PublisherID,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
	if b.Detail != nil {
		resp.Detail = &BookDetailResponse{
			ID:            b.Detail.ID,
			Description:   b.Detail.Description,
			Language:      b.Detail.Language,
			PageCount:     b.Detail.PageCount,
			Publisher:     b.Detail.Publisher,
			CoverImageURL: b.Detail.CoverImageURL,
			Edition:       b.Detail.Edition,
		}
	}
	return resp
}

// ToEntity converts CreateBookRequest to a Book entity. The publish
// date must already be validated.
func (req *CreateBookRequest) ToEntity() *Book {
	publishDate, _ := time.Parse(DateLayout, req.PublishDate)

	b := &Book{
		Title:       req.Title,
		Author:      req.Author,
		ISBN:        req.ISBN,
		Price:       req.Price,
		PublishDate: publishDate,
		PublisherID: req.PublisherID,
	}
	if req.Detail != nil {
		b.AttachDetail(req.Detail.ToEntity())
	}
	return b
}

// ToEntity converts BookDetailRequest to a BookDetail entity.
func (req *BookDetailRequest) ToEntity() *BookDetail {
	return &BookDetail{
		Description:   req.Description,
		Language:      req.Language,
		PageCount:     req.PageCount,
		Publisher:     req.Publisher,
		CoverImageURL: req.CoverImageURL,
		Edition:       req.Edition,
	}
}

// ApplyToEntity overwrites every scalar field of the book. If a detail
// payload is present, the detail record is created on first use and
// then fully replaced.
func (req *UpdateBookRequest) ApplyToEntity(b *Book) {
	publishDate, _ := time.Parse(DateLayout, req.PublishDate)

	b.Title = req.Title
	b.Author = req.Author
	b.ISBN = req.ISBN
	b.Price = req.Price
	b.PublishDate = publishDate
	b.PublisherID = req.PublisherID

	if req.Detail != nil {
		if b.Detail == nil {
			b.AttachDetail(&BookDetail{})
		}
		b.Detail.Description = req.Detail.Description
		b.Detail.Language = req.Detail.Language
		b.Detail.PageCount = req.Detail.PageCount
		b.Detail.Publisher = req.Detail.Publisher
		b.Detail.CoverImageURL = req.Detail.CoverImageURL
		b.Detail.Edition = req.Detail.Edition
	}
}

// ApplyToEntity merges only the supplied fields into the book. Each
// field carries an explicit presence check.
func (req *PatchBookRequest) ApplyToEntity(b *Book) {
	if req.Title != nil {
		b.Title = *req.Title
	}
	if req.Author != nil {
		b.Author = *req.Author
	}
	if req.ISBN != nil {
		b.ISBN = *req.ISBN
	}
	if req.Price != nil {
		b.Price = *req.Price
	}
	if req.PublishDate != nil {
		publishDate, _ := time.Parse(DateLayout, *req.PublishDate)
		b.PublishDate = publishDate
	}
	if req.PublisherID != nil {
		b.PublisherID = req.PublisherID
	}
	if req.Detail != nil {
		req.Detail.ApplyToEntity(b)
	}
}

// ApplyToEntity merges supplied detail fields into the book's detail,
// creating the detail record lazily when the book has none yet.
func (req *PatchBookDetailRequest) ApplyToEntity(b *Book) {
	if b.Detail == nil {
		b.AttachDetail(&BookDetail{})
	}

	if req.Description != nil {
		b.Detail.Description = *req.Description
	}
	if req.Language != nil {
		b.Detail.Language = *req.Language
	}
	if req.PageCount != nil {
		b.Detail.PageCount = *req.PageCount
	}
	if req.Publisher != nil {
		b.Detail.Publisher = *req.Publisher
	}
	if req.CoverImageURL != nil {
		b.Detail.CoverImageURL = *req.CoverImageURL
	}
	if req.Edition != nil {
		b.Detail.Edition = *req.Edition
	}
}
