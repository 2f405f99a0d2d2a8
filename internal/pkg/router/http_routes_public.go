package router

import (
	"github.com/pressroom/newshub/app/controllers"
	"github.com/pressroom/newshub/internal/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	gothfiber "github.com/shareed2k/goth_fiber"
)

func (h HttpRouter) registerPublicRoutes(app *fiber.App) {
	// Published content. The article detail route lives in the CSRF
	// group so /articles/new is matched before /articles/:slug.
	app.Get("/articles", loggedInMiddleware, controllers.HandleArticleIndex)

	// Publications and journalist profiles. The publication detail
	// route lives in the CSRF group for the same ordering reason.
	app.Get("/publications", loggedInMiddleware, controllers.HandlePublicationIndex)
	app.Get("/journalists/:id", loggedInMiddleware, controllers.HandleJournalistProfile)

	// One-click unsubscribe from notification mails (signed token, no login)
	app.Get("/unsubscribe", controllers.HandleUnsubscribeByToken)

	// Auth
	app.Post("/logout", middleware.RequireAuth, controllers.HandleAuthLogout)

	// Social OAuth
	app.Get("/auth/:provider", gothfiber.BeginAuthHandler)
	app.Get("/auth/:provider/callback", controllers.HandleOAuthCallback)
}
