package controllers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/sujit-baniya/flash"

	"github.com/pressroom/newshub/app/models"
	"github.com/pressroom/newshub/internal/pkg/jobqueue"
	"github.com/pressroom/newshub/internal/pkg/notify"
	"github.com/pressroom/newshub/internal/pkg/policy"
	"github.com/pressroom/newshub/internal/pkg/usercontext"
	"github.com/pressroom/newshub/internal/pkg/workflow"
)

// HandleEditorDashboard shows the review queues: pending articles and
// pending join requests across the editor's publications.
func HandleEditorDashboard(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	pubs, err := repos().Publication.GetManagedBy(userCtx.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to load publications")
	}
	pubIDs := make([]uint, 0, len(pubs))
	for _, p := range pubs {
		pubIDs = append(pubIDs, p.ID)
	}

	pendingArticles, err := repos().Article.GetPendingForPublications(pubIDs)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to load review queue")
	}

	// Independent submissions are reviewable by any editor.
	independent, err := repos().Article.GetPendingIndependent()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to load review queue")
	}

	joinRequests, err := repos().JoinRequest.GetPendingForPublications(pubIDs)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to load join requests")
	}

	return render(c, "editor/dashboard", fiber.Map{
		"Title":               "Editor dashboard",
		"Publications":        pubs,
		"PendingArticles":     pendingArticles,
		"IndependentArticles": independent,
		"JoinRequests":        joinRequests,
	})
}

// HandleArticleApprove publishes a pending submission and dispatches the
// notifications. The guarded update makes a second or concurrent
// approval a no-op that never re-notifies.
func HandleArticleApprove(c *fiber.Ctx) error {
	article, err := repos().Article.GetByID(paramUint(c, "id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString("Article not found")
	}

	userCtx := usercontext.GetUserContext(c)
	if err := policy.Allow(policy.Actor{ID: userCtx.UserID, Role: userCtx.Role},
		policy.ActionReviewContent, resourceOf(article)); err != nil {
		return flashWorkflowError(c, err, "/editor")
	}

	// The in-memory transition yields the dispatch intents; the guarded
	// update is what actually decides the race.
	intents, err := workflow.Approve(article, time.Now())
	if err != nil {
		return flashWorkflowError(c, err, "/editor")
	}
	if err := repos().Article.PublishIfPending(article.ID, *article.PublishedAt); err != nil {
		return flashWorkflowError(c, err, "/editor")
	}

	// Dispatch strictly after the commit. Failures are logged, the
	// article stays published.
	dispatchPublishNotifications(article, intents)

	fm := fiber.Map{"type": "success", "message": fmt.Sprintf("%q published.", article.Title)}
	return flash.WithSuccess(c, fm).Redirect("/editor")
}

// HandleArticleReject turns down a pending submission with feedback.
func HandleArticleReject(c *fiber.Ctx) error {
	article, err := repos().Article.GetByID(paramUint(c, "id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString("Article not found")
	}

	userCtx := usercontext.GetUserContext(c)
	if err := policy.Allow(policy.Actor{ID: userCtx.UserID, Role: userCtx.Role},
		policy.ActionReviewContent, resourceOf(article)); err != nil {
		return flashWorkflowError(c, err, "/editor")
	}

	feedback := c.FormValue("feedback")
	if err := workflow.Reject(article, feedback); err != nil {
		return flashWorkflowError(c, err, "/editor")
	}
	if err := repos().Article.RejectIfPending(article.ID, feedback); err != nil {
		return flashWorkflowError(c, err, "/editor")
	}

	fm := fiber.Map{"type": "success", "message": fmt.Sprintf("%q rejected.", article.Title)}
	return flash.WithSuccess(c, fm).Redirect("/editor")
}

// HandleJoinRequestApprove approves a membership request and adds the
// journalist to the publication.
func HandleJoinRequestApprove(c *fiber.Ctx) error {
	req, err := repos().JoinRequest.GetByID(paramUint(c, "id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString("Request not found")
	}

	userCtx := usercontext.GetUserContext(c)
	if err := policy.Allow(policy.Actor{ID: userCtx.UserID, Role: userCtx.Role},
		policy.ActionReviewMembership,
		policy.Resource{PublicationID: req.PublicationID, EditorIDs: req.Publication.EditorIDs()}); err != nil {
		return flashWorkflowError(c, err, "/editor")
	}

	if err := workflow.ApproveJoinRequest(req, c.FormValue("feedback"), time.Now()); err != nil {
		return flashWorkflowError(c, err, "/editor")
	}
	if err := repos().JoinRequest.Update(req); err != nil {
		fm := fiber.Map{"type": "error", "message": fmt.Sprintf("something went wrong: %s", err)}
		return flash.WithError(c, fm).Redirect("/editor")
	}
	if err := repos().Publication.AddJournalist(req.PublicationID, req.UserID); err != nil {
		fm := fiber.Map{"type": "error", "message": fmt.Sprintf("something went wrong: %s", err)}
		return flash.WithError(c, fm).Redirect("/editor")
	}

	fm := fiber.Map{"type": "success", "message": "Journalist added to the publication."}
	return flash.WithSuccess(c, fm).Redirect("/editor")
}

// HandleJoinRequestReject rejects a membership request with feedback.
func HandleJoinRequestReject(c *fiber.Ctx) error {
	req, err := repos().JoinRequest.GetByID(paramUint(c, "id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString("Request not found")
	}

	userCtx := usercontext.GetUserContext(c)
	if err := policy.Allow(policy.Actor{ID: userCtx.UserID, Role: userCtx.Role},
		policy.ActionReviewMembership,
		policy.Resource{PublicationID: req.PublicationID, EditorIDs: req.Publication.EditorIDs()}); err != nil {
		return flashWorkflowError(c, err, "/editor")
	}

	if err := workflow.RejectJoinRequest(req, c.FormValue("feedback"), time.Now()); err != nil {
		return flashWorkflowError(c, err, "/editor")
	}
	if err := repos().JoinRequest.Update(req); err != nil {
		fm := fiber.Map{"type": "error", "message": fmt.Sprintf("something went wrong: %s", err)}
		return flash.WithError(c, fm).Redirect("/editor")
	}

	fm := fiber.Map{"type": "success", "message": "Request rejected."}
	return flash.WithSuccess(c, fm).Redirect("/editor")
}

// dispatchPublishNotifications resolves the audience and enqueues the
// notification jobs for a freshly published article.
func dispatchPublishNotifications(article *models.Article, intents []workflow.Intent) {
	subs, err := repos().Subscription.GetForArticle(article)
	if err != nil {
		log.Errorf("failed to resolve subscribers for article %d: %v", article.ID, err)
		subs = nil
	}
	recipients := notify.RecipientsFromSubscriptions(subs)

	dispatcher := notify.NewDispatcher(jobqueue.GetManager().GetQueue())
	dispatcher.DispatchPublished(intents, article, recipients)
}
