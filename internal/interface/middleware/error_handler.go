package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Hiro-mackay/gc-photos/backend/pkg/apperror"
)

// ErrorResponse はエラーレスポンス構造を定義します
type ErrorResponse struct {
	Error ErrorBody   `json:"error"`
	Meta  interface{} `json:"meta"`
}

// ErrorBody はエラー本体を定義します
type ErrorBody struct {
	Code    string                `json:"code"`
	Message string                `json:"message"`
	Details []apperror.FieldError `json:"details,omitempty"`
}

// CustomHTTPErrorHandler はカスタムエラーハンドラーです
// どの経路でエラーになってもレスポンスの形とコード語彙を揃えます
func CustomHTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		response := ErrorResponse{
			Error: ErrorBody{
				Code:    string(appErr.Code),
				Message: appErr.Message,
				Details: appErr.Details,
			},
		}

		if appErr.HTTPStatus >= 500 {
			slog.Error("internal error",
				"request_id", GetRequestID(c),
				"method", c.Request().Method,
				"uri", c.Request().RequestURI,
				"error", appErr.Error(),
			)
		}

		_ = c.JSON(appErr.HTTPStatus, response)
		return
	}

	// echo自身が返すエラー（未登録ルートの404、ボディ超過の413など）も
	// AppErrorと同じコード語彙へ寄せる
	var he *echo.HTTPError
	if errors.As(err, &he) {
		response := ErrorResponse{
			Error: ErrorBody{
				Code:    echoErrorCode(he.Code),
				Message: fmt.Sprintf("%v", he.Message),
			},
		}

		_ = c.JSON(he.Code, response)
		return
	}

	slog.Error("unknown error",
		"request_id", GetRequestID(c),
		"method", c.Request().Method,
		"uri", c.Request().RequestURI,
		"error", err.Error(),
	)

	response := ErrorResponse{
		Error: ErrorBody{
			Code:    string(apperror.CodeInternalError),
			Message: "internal server error",
		},
	}

	_ = c.JSON(http.StatusInternalServerError, response)
}

// echoErrorCode はechoのHTTPステータスをエラーコードに変換します
func echoErrorCode(status int) string {
	switch status {
	case http.StatusBadRequest, http.StatusRequestEntityTooLarge, http.StatusMethodNotAllowed:
		return string(apperror.CodeInvalidRequest)
	case http.StatusUnauthorized:
		return string(apperror.CodeUnauthorized)
	case http.StatusForbidden:
		return string(apperror.CodeForbidden)
	case http.StatusNotFound:
		return string(apperror.CodeNotFound)
	case http.StatusServiceUnavailable:
		return string(apperror.CodeServiceUnavailable)
	default:
		if status >= 500 {
			return string(apperror.CodeInternalError)
		}
		return string(apperror.CodeInvalidRequest)
	}
}
