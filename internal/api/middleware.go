package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"relocation_quest/internal/domain"
	"relocation_quest/internal/session"
)

const sessionUserKey = "session_user"

// SessionMiddleware resolves the caller through the configured provider. A
// nil provider means auth is not configured at all.
type SessionMiddleware struct {
	provider session.Provider
	metrics  *Metrics
	logger   *slog.Logger
}

func NewSessionMiddleware(provider session.Provider, metrics *Metrics, logger *slog.Logger) *SessionMiddleware {
	return &SessionMiddleware{
		provider: provider,
		metrics:  metrics,
		logger:   logger,
	}
}

func (m *SessionMiddleware) RequireSession() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if m.provider == nil {
				m.metrics.recordSessionFailure("unconfigured")
				return c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "Auth not configured"})
			}

			user, err := m.provider.Authenticate(c.Request().Context(), c.Request())
			if errors.Is(err, domain.ErrUnauthorized) {
				m.metrics.recordSessionFailure("unauthorized")
				return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
			}
			if err != nil {
				m.logger.Error("session lookup failed", "path", c.Path(), "error", err)
				m.metrics.recordSessionFailure("upstream")
				return c.JSON(http.StatusInternalServerError, ErrorResponse{
					Error:   "Internal server error",
					Details: "session lookup failed",
				})
			}

			c.Set(sessionUserKey, user)
			return next(c)
		}
	}
}

func sessionUser(c echo.Context) *domain.SessionUser {
	user, _ := c.Get(sessionUserKey).(*domain.SessionUser)
	return user
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"request_id", v.RequestID,
			}
			if v.Error != nil {
				logger.Error("request failed", append(attrs, "error", v.Error)...)
				return nil
			}
			logger.Info("request", attrs...)
			return nil
		},
	})
}
