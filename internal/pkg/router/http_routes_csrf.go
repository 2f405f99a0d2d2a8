package router

import (
	"strings"
	"time"

	"github.com/pressroom/newshub/app/controllers"
	"github.com/pressroom/newshub/internal/pkg/env"
	"github.com/pressroom/newshub/internal/pkg/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/csrf"
)

func (h HttpRouter) registerCSRFProtectedRoutes(app *fiber.App) {
	csrfConf := csrf.Config{
		KeyLookup:      "form:_csrf",
		ContextKey:     "csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		Expiration:     1 * time.Hour,
		CookieSecure:   !env.IsDev(),
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/api/")
		},
	}

	group := app.Group("", cors.New(), csrf.New(csrfConf))
	group.Get("/", loggedInMiddleware, controllers.HandleArticleIndex)
	group.Get("/login", loggedInMiddleware, controllers.HandleAuthLogin)
	group.Post("/login", loggedInMiddleware, controllers.HandleAuthLogin)
	group.Get("/register", loggedInMiddleware, controllers.HandleAuthRegister)
	group.Post("/register", loggedInMiddleware, controllers.HandleAuthRegister)
	group.Get("/activate", loggedInMiddleware, controllers.HandleAuthActivate)
	group.Post("/activate", loggedInMiddleware, controllers.HandleAuthActivate)

	// Authoring (journalists; editors may also author). Registered
	// before the :slug route so static segments win.
	group.Get("/articles/new", middleware.RequireJournalist, controllers.HandleArticleNew)
	group.Post("/articles/new", middleware.RequireJournalist, controllers.HandleArticleNew)
	group.Get("/articles/:id/edit", middleware.RequireJournalist, controllers.HandleArticleEdit)
	group.Post("/articles/:id/edit", middleware.RequireJournalist, controllers.HandleArticleEdit)
	group.Post("/articles/:id/submit", middleware.RequireJournalist, controllers.HandleArticleSubmit)
	group.Post("/articles/:id/cover", middleware.RequireJournalist, controllers.HandleArticleCoverUpload)

	// Reader interactions on published content
	group.Post("/articles/:id/comments", middleware.RequireAuth, controllers.HandleArticleComment)
	group.Post("/articles/:id/rate", middleware.RequireAuth, controllers.HandleArticleRate)

	// Article detail (public, after the static authoring routes)
	group.Get("/articles/:slug", loggedInMiddleware, controllers.HandleArticleShow)

	// Publications
	group.Get("/publications/new", middleware.RequireEditor, controllers.HandlePublicationNew)
	group.Post("/publications/new", middleware.RequireEditor, controllers.HandlePublicationNew)
	group.Get("/publications/:id/edit", middleware.RequireEditor, controllers.HandlePublicationEdit)
	group.Post("/publications/:id/edit", middleware.RequireEditor, controllers.HandlePublicationEdit)
	group.Post("/publications/:id/join", middleware.RequireJournalist, controllers.HandleJoinRequestCreate)
	group.Get("/publications/:id", loggedInMiddleware, controllers.HandlePublicationShow)

	// Subscriptions
	group.Get("/subscriptions", middleware.RequireAuth, controllers.HandleSubscriptionIndex)
	group.Post("/subscriptions/subscribe", middleware.RequireAuth, controllers.HandleSubscribe)
	group.Post("/subscriptions/unsubscribe", middleware.RequireAuth, controllers.HandleUnsubscribe)

	// Dashboards
	group.Get("/journalist", middleware.RequireJournalist, controllers.HandleJournalistDashboard)
	group.Get("/editor", middleware.RequireEditor, controllers.HandleEditorDashboard)
	group.Post("/editor/articles/:id/approve", middleware.RequireEditor, controllers.HandleArticleApprove)
	group.Post("/editor/articles/:id/reject", middleware.RequireEditor, controllers.HandleArticleReject)
	group.Post("/editor/join-requests/:id/approve", middleware.RequireEditor, controllers.HandleJoinRequestApprove)
	group.Post("/editor/join-requests/:id/reject", middleware.RequireEditor, controllers.HandleJoinRequestReject)
}
