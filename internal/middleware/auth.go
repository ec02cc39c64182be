// Package middleware provides authentication and logging middleware for the application.
package middleware

import (
	"strconv"
	"strings"

	"plume/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

var cfg *config.Config

// InitMiddleware initializes authentication middleware with the given config.
func InitMiddleware(c *config.Config) {
	cfg = c
}

// LoginPath is where anonymous callers of identity-required routes are sent.
const LoginPath = "/login"

// viewerFromToken parses a bearer token and returns the viewer's user id.
// Returns 0 when the token is absent, malformed, or expired.
func viewerFromToken(c *fiber.Ctx) uint {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return 0
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return 0
	}

	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return 0
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0
	}

	// User ID lives in the "sub" claim (subject claim per RFC 7519)
	subStr, ok := claims["sub"].(string)
	if !ok {
		return 0
	}

	userIDVal, err := strconv.ParseUint(subStr, 10, 32)
	if err != nil {
		return 0
	}

	return uint(userIDVal)
}

// ViewerContext resolves the current viewer identity, if any, and stores it in
// Locals("userID"). Anonymous requests proceed with a zero viewer id.
func ViewerContext(c *fiber.Ctx) error {
	if viewerID := viewerFromToken(c); viewerID != 0 {
		c.Locals("userID", viewerID)
	}
	return c.Next()
}

// AuthRequired enforces authentication for identity-required routes.
// Anonymous callers are redirected to the login page.
func AuthRequired(c *fiber.Ctx) error {
	viewerID := viewerFromToken(c)
	if viewerID == 0 {
		return c.Redirect(LoginPath, fiber.StatusSeeOther)
	}

	c.Locals("userID", viewerID)
	return c.Next()
}
