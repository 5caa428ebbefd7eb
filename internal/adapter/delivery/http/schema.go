package http

import (
	"github.com/go-playground/validator/v10"
)

const statusError = "error"

// shortenRequest is the body of a request to create a short URI.
// An empty CustomShortURI asks the service to generate one.
type shortenRequest struct {
	OriginalURL    string `json:"original_url" validate:"required,url"`
	CustomShortURI string `json:"custom_short_uri" validate:"omitempty,alphanumunicode,max=255"`
}

type urlResponse struct {
	ShortURI    string `json:"short_uri"`
	OriginalURL string `json:"original_url"`
}

type urlStatsResponse struct {
	ShortURI string   `json:"short_uri"`
	Stats    urlStats `json:"stats"`
}

type urlStats struct {
	ClickCount uint64 `json:"click_count"`
}

type totalStatsResponse struct {
	TotalItems int `json:"total_items"`
}

type validationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type errorResponse struct {
	Status  string            `json:"status"`
	Message string            `json:"message"`
	Errors  []validationError `json:"errors,omitempty"`
}

func newErrorResponse(msg string) errorResponse {
	return errorResponse{
		Status:  statusError,
		Message: msg,
	}
}

var (
	emptyRequestBodyResponse   = newErrorResponse("empty request body")
	invalidRequestBodyResponse = newErrorResponse("invalid request body")
	invalidArgumentResponse    = newErrorResponse("invalid argument")
	urlNotFoundResponse        = newErrorResponse("url not found")
	shortURIExistsResponse     = newErrorResponse("short uri already exists")
	capacityExceededResponse   = newErrorResponse("storage capacity exceeded")
	resourceExhaustedResponse  = newErrorResponse("failed to generate unique short uri, try again later")
	serverErrorResponse        = newErrorResponse("server error occurred")
)

func messageForTag(tag string) string {
	switch tag {
	case "required":
		return "this field is required"
	case "url":
		return "invalid url"
	case "alphanumunicode":
		return "only letters and digits are allowed"
	case "max":
		return "value is too long"
	default:
		return "invalid value"
	}
}

func getValidationErrors(err error) []validationError {
	var validationErrs []validationError

	errs, ok := err.(validator.ValidationErrors)
	if ok {
		for _, e := range errs {
			validationErrs = append(validationErrs, validationError{
				Field:   e.Field(),
				Message: messageForTag(e.Tag()),
			})
		}
	}

	return validationErrs
}

func validationErrorResponse(err error) errorResponse {
	return errorResponse{
		Status:  statusError,
		Message: "validation error",
		Errors:  getValidationErrors(err),
	}
}
