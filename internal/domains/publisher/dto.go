package publisher

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

const (
	MaxNameLength    = 255
	MaxAddressLength = 500
	DateLayout       = "2006-01-02"
)

// CreatePublisherRequest - POST /api/publishers
// Also used by PUT /api/publishers/:id since the update is a full
// replace with the same shape.
type CreatePublisherRequest struct {
	Name            string  `json:"name"`
	EstablishedDate *string `json:"established_date,omitempty"`
	Address         *string `json:"address,omitempty"`
}

func (r CreatePublisherRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.Length(1, MaxNameLength),
		),
		validation.Field(&r.EstablishedDate,
			validation.Date(DateLayout).Error("established_date must be in YYYY-MM-DD format"),
		),
		validation.Field(&r.Address, validation.Length(0, MaxAddressLength)),
	)
}

// PublisherResponse - API representation of a publisher
type PublisherResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	EstablishedDate *string   `json:"established_date,omitempty"`
	Address         *string   `json:"address,omitempty"`
	BookCount       int       `json:"book_count"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Conversion methods

// ToResponse converts a Publisher entity to its API shape.
func (p *Publisher) ToResponse(bookCount int) *PublisherResponse {
	resp := &PublisherResponse{
		ID:        p.ID,
		Name:      p.Name,
		Address:   p.Address,
		BookCount: bookCount,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	if p.EstablishedDate != nil {
		formatted := p.EstablishedDate.Format(DateLayout)
		resp.EstablishedDate = &formatted
	}
	return resp
}

// ToEntity converts CreatePublisherRequest to a Publisher entity. The
// established date must already be validated.
func (req *CreatePublisherRequest) ToEntity() *Publisher {
	p := &Publisher{
		Name:    req.Name,
		Address: req.Address,
	}
	if req.EstablishedDate != nil {
		established, _ := time.Parse(DateLayout, *req.EstablishedDate)
		p.EstablishedDate = &established
	}
	return p
}

// ApplyToEntity overwrites every scalar field of the publisher.
func (req *CreatePublisherRequest) ApplyToEntity(p *Publisher) {
	p.Name = req.Name
	p.Address = req.Address
	p.EstablishedDate = nil
	if req.EstablishedDate != nil {
		established, _ := time.Parse(DateLayout, *req.EstablishedDate)
		p.EstablishedDate = &established
	}
}
