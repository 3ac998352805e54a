package middleware

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Logger はリクエストロギングミドルウェアを返します
// ステータスに応じてレベルを変え、認証済みならuser_idも記録します
func Logger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			latency := time.Since(start)
			status := c.Response().Status

			attrs := []any{
				"request_id", GetRequestID(c),
				"method", c.Request().Method,
				"uri", c.Request().RequestURI,
				"status", status,
				"latency_ms", latency.Milliseconds(),
				"ip", c.RealIP(),
				"user_agent", c.Request().UserAgent(),
				"bytes_in", c.Request().ContentLength,
				"bytes_out", c.Response().Size,
			}
			if userID, ok := c.Get(ContextKeyUserID).(uuid.UUID); ok {
				attrs = append(attrs, "user_id", userID.String())
			}

			switch {
			case status >= 500:
				slog.Error("request", attrs...)
			case status >= 400:
				slog.Warn("request", attrs...)
			default:
				slog.Info("request", attrs...)
			}

			return err
		}
	}
}
