package publisher

import "errors"

var (
	// Business Rule Errors
	ErrPublisherNotFound = errors.New("publisher not found")
	ErrDuplicateName     = errors.New("publisher with this name already exists")
	ErrPublisherHasBooks = errors.New("cannot delete publisher with linked books")

	// Database Errors
	ErrDatabaseQuery = errors.New("database query error")
)

// ToErrorCode converts error to API error code
func ToErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrPublisherNotFound):
		return "PUBLISHER_NOT_FOUND"
	case errors.Is(err, ErrDuplicateName):
		return "DUPLICATE_NAME"
	case errors.Is(err, ErrPublisherHasBooks):
		return "PUBLISHER_HAS_BOOKS"
	default:
		return "INTERNAL_ERROR"
	}
}

// ToHTTPStatus converts error to HTTP status code
func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrPublisherNotFound):
		return 404
	case errors.Is(err, ErrDuplicateName), errors.Is(err, ErrPublisherHasBooks):
		return 409
	default:
		return 500
	}
}
