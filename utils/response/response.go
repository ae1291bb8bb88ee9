package response

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/sahilchouksey/college-directory/utils/apperror"
)

// ErrorBody is the JSON body of every non-2xx response
type ErrorBody struct {
	Error  string `json:"error"`
	Code   string `json:"code"`
	Status int    `json:"status"`
}

// PaginationMeta contains pagination metadata
type PaginationMeta struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"total_pages"`
	HasNext     bool  `json:"has_next"`
	HasPrev     bool  `json:"has_prev"`
}

// PaginatedResponse represents a paginated API response
type PaginatedResponse struct {
	Data       interface{}    `json:"data"`
	Pagination PaginationMeta `json:"pagination"`
}

// Success returns data as the whole 200 body
func Success(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(data)
}

// Paginated returns a paginated response
func Paginated(c *fiber.Ctx, data interface{}, pagination PaginationMeta) error {
	return c.Status(fiber.StatusOK).JSON(PaginatedResponse{
		Data:       data,
		Pagination: pagination,
	})
}

// Error returns an error response
func Error(c *fiber.Ctx, statusCode int, message string, code string) error {
	return c.Status(statusCode).JSON(ErrorBody{
		Error:  message,
		Code:   code,
		Status: statusCode,
	})
}

// BadRequest returns a 400 Bad Request response
func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message, apperror.KindBadRequest.String())
}

// NotFound returns a 404 Not Found response
func NotFound(c *fiber.Ctx, message string) error {
	if message == "" {
		message = "Resource not found"
	}
	return Error(c, fiber.StatusNotFound, message, apperror.KindNotFound.String())
}

// TooManyRequests returns a 429 Too Many Requests response
func TooManyRequests(c *fiber.Ctx, message string) error {
	if message == "" {
		message = "Too many requests"
	}
	return Error(c, fiber.StatusTooManyRequests, message, "TOO_MANY_REQUESTS")
}

// InternalServerError returns a 500 Internal Server Error response
func InternalServerError(c *fiber.Ctx, message string) error {
	if message == "" {
		message = "Internal server error"
	}
	return Error(c, fiber.StatusInternalServerError, message, apperror.KindInternal.String())
}

// StatusOf maps an error to the HTTP status it is reported with.
func StatusOf(err error) int {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code
	}

	switch apperror.KindOf(err) {
	case apperror.KindNotFound:
		return fiber.StatusNotFound
	case apperror.KindBadRequest:
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// HandleError writes err as an error response. Storage and internal details
// are logged, never returned.
func HandleError(c *fiber.Ctx, err error) error {
	status := StatusOf(err)

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return Error(c, status, fiberErr.Message, "HTTP_ERROR")
	}

	var appErr *apperror.Error
	if !errors.As(err, &appErr) {
		appErr = apperror.Internal(err, "Internal server error")
	}

	switch appErr.Kind {
	case apperror.KindStorage:
		log.Errorw("database error", "method", c.Method(), "path", c.Path(), "error", appErr.Err)
	case apperror.KindInternal:
		log.Errorw("internal error", "method", c.Method(), "path", c.Path(), "error", appErr.Err)
		return InternalServerError(c, appErr.Message)
	}
	return Error(c, status, appErr.Message, appErr.Kind.String())
}

// CalculatePagination calculates pagination metadata. total_pages is never
// below 1, so an empty result still reports one (empty) page.
func CalculatePagination(page, limit int, total int64) PaginationMeta {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}

	totalPages := int(total / int64(limit))
	if total%int64(limit) > 0 {
		totalPages++
	}
	if totalPages < 1 {
		totalPages = 1
	}

	return PaginationMeta{
		CurrentPage: page,
		PerPage:     limit,
		Total:       total,
		TotalPages:  totalPages,
		HasNext:     page < totalPages,
		HasPrev:     page > 1,
	}
}
