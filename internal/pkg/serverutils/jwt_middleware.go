package serverutils

import (
	"strings"

	"tenx-cards-be/internal/repository/memory"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// NewJwtMiddleware authenticates requests with a Bearer token, rejects
// revoked tokens, and exposes the subject as Locals("user_id").
func NewJwtMiddleware(secret string, blacklist *memory.TokenBlacklist) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		header := ctx.Get("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			return ctx.Status(fiber.StatusUnauthorized).
				JSON(ErrorResponse(fiber.StatusUnauthorized, "Missing or invalid authorization header"))
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")

		if blacklist != nil && blacklist.IsRevoked(tokenString) {
			return ctx.Status(fiber.StatusUnauthorized).
				JSON(ErrorResponse(fiber.StatusUnauthorized, "Token has been revoked"))
		}

		token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			return ctx.Status(fiber.StatusUnauthorized).
				JSON(ErrorResponse(fiber.StatusUnauthorized, "Invalid or expired token"))
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return ctx.Status(fiber.StatusUnauthorized).
				JSON(ErrorResponse(fiber.StatusUnauthorized, "Invalid token claims"))
		}

		userId, ok := claims["user_id"].(string)
		if !ok || userId == "" {
			return ctx.Status(fiber.StatusUnauthorized).
				JSON(ErrorResponse(fiber.StatusUnauthorized, "Invalid token claims"))
		}

		ctx.Locals("user_id", userId)
		return ctx.Next()
	}
}
