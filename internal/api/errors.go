package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"relocation_quest/internal/domain"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// failure maps a service error onto the status and body clients expect.
// summary is the message used for unexpected errors.
func (h *Handler) failure(c echo.Context, err error, summary string) error {
	switch {
	case errors.Is(err, domain.ErrInvalidArgument):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request", Details: err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
	case errors.Is(err, domain.ErrAuthUnavailable):
		return c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "Auth not configured"})
	}

	h.logger.Error(summary,
		"path", c.Path(),
		"error", err,
	)
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: summary, Details: err.Error()})
}
