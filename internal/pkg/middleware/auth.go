package middleware

import (
	"github.com/gofiber/fiber/v2"

	icuser "github.com/pressroom/newshub/internal/pkg/usercontext"
)

// RequireAuth ensures a logged-in web session; redirects to /login if missing.
func RequireAuth(c *fiber.Ctx) error {
	v := c.Locals(icuser.KeyFromProtected)
	loggedIn := false
	if b, ok := v.(bool); ok {
		loggedIn = b
	}
	if !loggedIn {
		return c.Redirect("/login", fiber.StatusSeeOther)
	}
	return c.Next()
}

// RequireJournalist ensures a logged-in journalist or editor; redirects otherwise.
func RequireJournalist(c *fiber.Ctx) error {
	if !icuser.IsLoggedIn(c) {
		return c.Redirect("/login", fiber.StatusSeeOther)
	}
	if !icuser.IsJournalist(c) && !icuser.IsEditor(c) {
		return c.Redirect("/", fiber.StatusSeeOther)
	}
	return c.Next()
}

// RequireEditor ensures a logged-in editor; redirects otherwise.
func RequireEditor(c *fiber.Ctx) error {
	if !icuser.IsLoggedIn(c) {
		return c.Redirect("/login", fiber.StatusSeeOther)
	}
	if !icuser.IsEditor(c) {
		return c.Redirect("/", fiber.StatusSeeOther)
	}
	return c.Next()
}
