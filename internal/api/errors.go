package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/cardholder-api/internal/api/shared"
	"github.com/phrazzld/cardholder-api/internal/domain"
	"github.com/phrazzld/cardholder-api/internal/service"
	"github.com/phrazzld/cardholder-api/internal/store"
)

const (
	genericErrorMessage    = "An unexpected error occurred"
	validationErrorMessage = "Validation failed"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	var vErrs validator.ValidationErrors
	var domainErr *domain.ValidationError

	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, store.ErrDuplicate),
		errors.Is(err, store.ErrLimitExceeded):
		return http.StatusConflict

	case service.IsBadRequestError(err),
		errors.Is(err, store.ErrInvalidSort),
		errors.Is(err, store.ErrInvalidEntity),
		errors.As(err, &vErrs),
		errors.As(err, &domainErr):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns the message clients may see for err. Service
// errors carry their own client-safe message; anything unclassified gets a
// generic one.
func GetSafeErrorMessage(err error) string {
	if err == nil || MapErrorToStatusCode(err) == http.StatusInternalServerError {
		return genericErrorMessage
	}

	if ValidationDetails(err) != nil {
		return validationErrorMessage
	}

	var svcErr *service.ServiceError
	if errors.As(err, &svcErr) && svcErr.Message != "" {
		return svcErr.Message
	}

	switch {
	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"
	case errors.Is(err, store.ErrCardNotFound):
		return "Card not found"
	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"
	case errors.Is(err, store.ErrCardNumberExists):
		return "Card number already exists"
	case errors.Is(err, store.ErrCardLimitExceeded):
		return "Card limit exceeded"
	case errors.Is(err, store.ErrInvalidSort):
		return "Invalid sort parameter"
	default:
		return "Invalid request"
	}
}

// ValidationDetails returns per-field messages for validation failures, or
// nil when err is not one.
func ValidationDetails(err error) map[string]string {
	var vErrs validator.ValidationErrors
	if errors.As(err, &vErrs) {
		details := make(map[string]string, len(vErrs))
		for _, fe := range vErrs {
			details[fe.Field()] = getValidationTagMessage(fe)
		}
		return details
	}

	var domainErr *domain.ValidationError
	if errors.As(err, &domainErr) {
		return map[string]string{domainErr.Field: domainErr.Message}
	}

	return nil
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must not exceed %s characters", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "past":
		return "must be in the past"
	case "future":
		return "must be in the future"
	default:
		return "is invalid"
	}
}

// HandleAPIError is the single translator from errors to HTTP responses.
// defaultMsg replaces the generic message on 5xx responses when non-empty;
// internal detail only reaches the logs, redacted.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, defaultMsg string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && defaultMsg != "" {
		message = defaultMsg
	}

	var opts []shared.ResponseOption
	if details := ValidationDetails(err); details != nil {
		opts = append(opts, shared.WithValidationErrors(details))
	}
	// Conflicts usually mean a lost race on a unique value or the card limit.
	if status == http.StatusConflict {
		opts = append(opts, shared.WithElevatedLogLevel())
	}

	shared.RespondWithErrorAndLog(w, r, status, message, err, opts...)
}
