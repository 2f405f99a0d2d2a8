package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pressroom/newshub/internal/pkg/middleware"
)

// RegisterHandlers wires the v1 endpoints onto the given router group.
// Ping and token issuance are public; everything else requires a bearer
// token issued by POST /auth/token.
func RegisterHandlers(r fiber.Router, s *APIServer) {
	r.Get("/ping", s.GetPing)
	r.Post("/auth/token", s.PostAuthToken)

	r.Get("/articles", s.GetArticles)
	r.Get("/articles/:slug", s.GetArticle)

	auth := r.Group("", middleware.RequireAPIToken)
	auth.Post("/articles", s.PostArticle)
	auth.Post("/articles/:id/submit", s.PostArticleSubmit)
	auth.Post("/articles/:id/approve", s.PostArticleApprove)
	auth.Post("/articles/:id/reject", s.PostArticleReject)

	auth.Get("/subscriptions", s.GetSubscriptions)
	auth.Post("/subscriptions", s.PostSubscription)
	auth.Delete("/subscriptions/:id", s.DeleteSubscription)

	auth.Post("/join-requests", s.PostJoinRequest)
	auth.Post("/join-requests/:id/approve", s.PostJoinRequestApprove)
	auth.Post("/join-requests/:id/reject", s.PostJoinRequestReject)
}
