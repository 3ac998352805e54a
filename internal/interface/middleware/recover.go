package middleware

import (
	"fmt"
	"log/slog"
	"runtime"

	"github.com/labstack/echo/v4"

	"github.com/Hiro-mackay/gc-photos/backend/pkg/apperror"
)

// Recover はパニックをリカバーするミドルウェアを返します
//
// 遷移報告ハンドラが落ちてもクライアントはリトライできるため、
// パニックはログに残して500を返すだけでプロセスは殺しません。
func Recover() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			defer func() {
				if r := recover(); r != nil {
					buf := make([]byte, 4096)
					n := runtime.Stack(buf, false)

					slog.Error("panic recovered",
						"request_id", GetRequestID(c),
						"method", c.Request().Method,
						"uri", c.Request().RequestURI,
						"error", fmt.Sprintf("%v", r),
						"stack", string(buf[:n]),
					)

					c.Error(apperror.NewInternalError(fmt.Errorf("internal server error")))
				}
			}()

			return next(c)
		}
	}
}
