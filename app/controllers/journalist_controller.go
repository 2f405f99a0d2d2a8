package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pressroom/newshub/app/models"
	"github.com/pressroom/newshub/internal/pkg/usercontext"
)

// HandleJournalistDashboard shows the author's content grouped by state
// plus their memberships and open join requests.
func HandleJournalistDashboard(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	articles, err := repos().Article.GetByAuthor(userCtx.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to load your content")
	}

	var drafts, pending, published, rejected []models.Article
	for _, a := range articles {
		switch a.Status {
		case models.STATUS_DRAFT:
			drafts = append(drafts, a)
		case models.STATUS_PENDING_APPROVAL:
			pending = append(pending, a)
		case models.STATUS_PUBLISHED:
			published = append(published, a)
		case models.STATUS_REJECTED:
			rejected = append(rejected, a)
		}
	}

	memberships, err := repos().Publication.GetMemberships(userCtx.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to load publications")
	}

	joinRequests, err := repos().JoinRequest.GetByUser(userCtx.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to load join requests")
	}

	followerCount, _ := repos().Subscription.CountForJournalist(userCtx.UserID)

	return render(c, "journalist/dashboard", fiber.Map{
		"Title":         "My newsroom",
		"Drafts":        drafts,
		"Pending":       pending,
		"Published":     published,
		"Rejected":      rejected,
		"Memberships":   memberships,
		"JoinRequests":  joinRequests,
		"FollowerCount": followerCount,
	})
}

// HandleJournalistProfile is the public page of one journalist.
func HandleJournalistProfile(c *fiber.Ctx) error {
	journalist, err := repos().User.GetByID(paramUint(c, "id"))
	if err != nil || !journalist.IsJournalist() {
		return c.Status(fiber.StatusNotFound).SendString("Journalist not found")
	}

	articles, err := repos().Article.GetPublishedByAuthor(journalist.ID, pageOffset(c), defaultPageSize)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to fetch articles")
	}

	followerCount, _ := repos().Subscription.CountForJournalist(journalist.ID)

	return render(c, "journalist/profile", fiber.Map{
		"Title":         journalist.FullName(),
		"Journalist":    journalist,
		"Articles":      articles,
		"FollowerCount": followerCount,
	})
}
