package services

import (
	"errors"
	"log"
	"net/http"
)

const genericFailureMessage = "Oops; something went wrong, please try again later!"

// Result is the uniform response of every public banking operation.
type Result[T any] struct {
	Success bool   `json:"success"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    T      `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func Ok[T any](code int, message string, data T) Result[T] {
	return Result[T]{Success: true, Code: code, Message: message, Data: data}
}

// Failure converts err into a failed Result. Business errors keep their
// message; anything else is logged and reported generically.
func Failure[T any](err error) Result[T] {
	code, kind := classify(err)

	message := genericFailureMessage
	var bizErr *Error
	switch {
	case code == http.StatusInternalServerError:
		log.Printf("[CORE] Unexpected error: %v", err)
	case errors.As(err, &bizErr):
		message = bizErr.Message
	default:
		message = err.Error()
	}

	return Result[T]{Success: false, Code: code, Message: message, Error: kind}
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest, "ValidationError"
	case errors.Is(err, ErrLimitExceeded):
		return http.StatusBadRequest, "LimitExceededError"
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound, "NotFoundError"
	case errors.Is(err, ErrConflict):
		return http.StatusConflict, "ConflictError"
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized, "UnauthorizedError"
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden, "ForbiddenError"
	case errors.Is(err, ErrPartialPosting):
		return http.StatusInternalServerError, "PartialPostingError"
	case errors.Is(err, ErrAllocation):
		return http.StatusInternalServerError, "AllocationError"
	}
	return http.StatusInternalServerError, "InternalError"
}
