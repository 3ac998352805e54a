package middleware

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Hiro-mackay/gc-photos/backend/pkg/apperror"
	"github.com/Hiro-mackay/gc-photos/backend/pkg/jwt"
	"github.com/Hiro-mackay/gc-photos/backend/pkg/logger"
)

const (
	ContextKeyUserID       = "user_id"
	ContextKeyAccessClaims = "access_claims"
)

// JWTAuthMiddleware はJWT認証ミドルウェアを提供します
type JWTAuthMiddleware struct {
	jwtService *jwt.JWTService
}

// NewJWTAuthMiddleware は新しいJWTAuthMiddlewareを作成します
func NewJWTAuthMiddleware(jwtService *jwt.JWTService) *JWTAuthMiddleware {
	return &JWTAuthMiddleware{
		jwtService: jwtService,
	}
}

// Authenticate は認証ミドルウェアを返します
func (m *JWTAuthMiddleware) Authenticate() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// Authorizationヘッダーを取得
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return apperror.NewUnauthorizedError("authorization header required")
			}

			// Bearer トークンを抽出
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				return apperror.NewUnauthorizedError("invalid authorization header format")
			}

			token := parts[1]

			// トークンを検証
			claims, err := m.jwtService.ValidateAccessToken(token)
			if err != nil {
				return apperror.NewUnauthorizedError("invalid or expired token")
			}

			// コンテキストにユーザー情報を設定
			c.Set(ContextKeyUserID, claims.UserID)
			c.Set(ContextKeyAccessClaims, claims)

			// リクエストコンテキストにも設定（UseCase層で使用）
			ctx := c.Request().Context()
			ctx = context.WithValue(ctx, logger.UserIDKey, claims.UserID.String())
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// GetUserID はコンテキストから認証済みユーザーIDを取得します
func GetUserID(c echo.Context) (uuid.UUID, error) {
	if id, ok := c.Get(ContextKeyUserID).(uuid.UUID); ok {
		return id, nil
	}
	return uuid.Nil, apperror.NewUnauthorizedError("user not authenticated")
}
