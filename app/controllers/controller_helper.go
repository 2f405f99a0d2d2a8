package controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/pressroom/newshub/app/models"
	"github.com/pressroom/newshub/app/repository"
	"github.com/pressroom/newshub/internal/pkg/content"
	"github.com/pressroom/newshub/internal/pkg/usercontext"
	"github.com/pressroom/newshub/internal/pkg/workflow"
)

const (
	AUTH_KEY  string = "authenticated"
	USER_ID   string = usercontext.KeyUserID
	USER_NAME string = usercontext.KeyUsername
	USER_ROLE string = usercontext.KeyRole

	FROM_PROTECTED string = usercontext.KeyFromProtected

	defaultPageSize = 20
)

// repos is shorthand for the global repository set.
func repos() *repository.Repositories {
	return repository.GetGlobalRepositories()
}

// render wraps c.Render with the data every layout needs: user context
// and flash messages.
func render(c *fiber.Ctx, view string, data fiber.Map) error {
	userCtx := usercontext.GetUserContext(c)
	if data == nil {
		data = fiber.Map{}
	}
	data["IsLoggedIn"] = userCtx.IsLoggedIn
	data["Username"] = userCtx.Username
	data["Role"] = userCtx.Role
	data["IsEditor"] = userCtx.Role == models.ROLE_EDITOR
	data["IsJournalist"] = userCtx.Role == models.ROLE_JOURNALIST
	data["Flash"] = flash.Get(c)
	data["CSRFToken"] = ""
	if token, ok := c.Locals("csrf").(string); ok {
		data["CSRFToken"] = token
	}
	return c.Render(view, data, "layouts/main")
}

// paramUint parses a numeric route parameter, returning 0 when invalid.
func paramUint(c *fiber.Ctx, name string) uint {
	v, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil {
		return 0
	}
	return uint(v)
}

// pageOffset reads the ?page= query and turns it into an offset.
func pageOffset(c *fiber.Ctx) int {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	return (page - 1) * defaultPageSize
}

// excerptOf returns the plain-text preview of an article for lists and
// OpenGraph descriptions.
func excerptOf(a *models.Article, maxLen int) string {
	return content.Excerpt(a, maxLen)
}

// flashWorkflowError converts a domain error into a flash redirect.
// Permission failures bounce to the home page, everything else returns
// to the given path with the error message.
func flashWorkflowError(c *fiber.Ctx, err error, backTo string) error {
	fm := fiber.Map{
		"type":    "error",
		"message": err.Error(),
	}
	if workflow.IsPermission(err) {
		return flash.WithError(c, fm).Redirect("/")
	}
	return flash.WithError(c, fm).Redirect(backTo)
}
