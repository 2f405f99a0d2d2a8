package middleware

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/pressroom/newshub/internal/pkg/env"
	"github.com/pressroom/newshub/internal/pkg/usercontext"
)

const DefaultTokenDuration = 24 * time.Hour

func jwtSecret() []byte {
	return []byte(env.GetEnv("JWT_SECRET", ""))
}

// GenerateAPIToken issues a signed bearer token for API access.
func GenerateAPIToken(userID uint, username, role string, duration time.Duration) (string, error) {
	secret := jwtSecret()
	if len(secret) == 0 {
		return "", fmt.Errorf("JWT_SECRET is not set")
	}

	claims := jwt.MapClaims{
		"user_id":  userID,
		"username": username,
		"role":     role,
		"exp":      time.Now().Add(duration).Unix(),
		"iat":      time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ParseAPIToken validates a bearer token and extracts the user context.
func ParseAPIToken(tokenString string) (*usercontext.UserContext, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return jwtSecret(), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid claims format")
	}

	userID, ok := claims["user_id"].(float64)
	if !ok {
		return nil, fmt.Errorf("invalid user_id claim")
	}
	username, _ := claims["username"].(string)
	role, _ := claims["role"].(string)

	return &usercontext.UserContext{
		UserID:     uint(userID),
		Username:   username,
		Role:       role,
		IsLoggedIn: true,
	}, nil
}

// RequireAPIToken authenticates API requests via Authorization: Bearer token.
func RequireAPIToken(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error":   "unauthorized",
			"message": "bearer token required",
		})
	}

	userCtx, err := ParseAPIToken(strings.TrimPrefix(authHeader, "Bearer "))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error":   "unauthorized",
			"message": "invalid or expired token",
		})
	}

	c.Locals(usercontext.KeyUserContext, *userCtx)
	c.Locals(usercontext.KeyFromProtected, true)
	return c.Next()
}
