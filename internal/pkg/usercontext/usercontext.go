package usercontext

import "github.com/gofiber/fiber/v2"

// UserContext represents the complete user context for a request
type UserContext struct {
	UserID     uint   `json:"user_id"`
	Username   string `json:"username"`
	Role       string `json:"role"`
	IsLoggedIn bool   `json:"is_logged_in"`
}

// GetUserContext retrieves the user context from fiber context
// Returns a default anonymous context if none is set
func GetUserContext(c *fiber.Ctx) UserContext {
	if ctx := c.Locals(KeyUserContext); ctx != nil {
		if uc, ok := ctx.(UserContext); ok {
			return uc
		}
	}
	return UserContext{IsLoggedIn: false}
}

// IsLoggedIn checks if the current user is logged in
func IsLoggedIn(c *fiber.Ctx) bool {
	return GetUserContext(c).IsLoggedIn
}

// GetUserID returns the current user's ID, or 0 if not logged in
func GetUserID(c *fiber.Ctx) uint {
	return GetUserContext(c).UserID
}

// GetRole returns the current user's role, or empty string if not logged in
func GetRole(c *fiber.Ctx) string {
	return GetUserContext(c).Role
}

// IsEditor checks if the current user has the editor role
func IsEditor(c *fiber.Ctx) bool {
	return GetUserContext(c).Role == "editor"
}

// IsJournalist checks if the current user has the journalist role
func IsJournalist(c *fiber.Ctx) bool {
	return GetUserContext(c).Role == "journalist"
}
