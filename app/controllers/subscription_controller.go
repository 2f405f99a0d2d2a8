package controllers

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/pressroom/newshub/app/models"
	"github.com/pressroom/newshub/internal/pkg/env"
	"github.com/pressroom/newshub/internal/pkg/policy"
	"github.com/pressroom/newshub/internal/pkg/security"
	"github.com/pressroom/newshub/internal/pkg/usercontext"
	"github.com/pressroom/newshub/internal/pkg/workflow"
)

// HandleSubscriptionIndex lists the reader's subscriptions.
func HandleSubscriptionIndex(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	subs, err := repos().Subscription.GetBySubscriber(userCtx.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to load subscriptions")
	}

	return render(c, "subscriptions/index", fiber.Map{
		"Title":         "My subscriptions",
		"Subscriptions": subs,
	})
}

// HandleSubscribe creates a subscription to a publication or a
// journalist, enforcing the one-target and no-duplicate-feed rules.
func HandleSubscribe(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if err := policy.Allow(policy.Actor{ID: userCtx.UserID, Role: userCtx.Role},
		policy.ActionSubscribe, policy.Resource{}); err != nil {
		return flashWorkflowError(c, err, "/subscriptions")
	}

	target := parseTarget(c)
	backTo := backLinkFor(target)

	existing, err := repos().Subscription.GetTargetsBySubscriber(userCtx.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to load subscriptions")
	}

	var profile *workflow.JournalistProfile
	if target.JournalistID != 0 {
		journalist, err := repos().User.GetByID(target.JournalistID)
		if err != nil || !journalist.IsJournalist() {
			fm := fiber.Map{"type": "error", "message": "Journalist not found"}
			return flash.WithError(c, fm).Redirect("/")
		}
		memberships, err := repos().Publication.GetMemberships(target.JournalistID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).SendString("Failed to load memberships")
		}
		independent, err := repos().Article.CountIndependentByAuthor(target.JournalistID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).SendString("Failed to load articles")
		}
		pubIDs := make([]uint, 0, len(memberships))
		for _, p := range memberships {
			pubIDs = append(pubIDs, p.ID)
		}
		profile = &workflow.JournalistProfile{
			PublicationIDs:      pubIDs,
			IndependentArticles: independent,
		}
	}

	if err := workflow.CheckSubscribe(existing, target, profile); err != nil {
		return flashWorkflowError(c, err, backTo)
	}

	sub := &models.Subscription{SubscriberID: userCtx.UserID}
	if target.PublicationID != 0 {
		id := target.PublicationID
		sub.PublicationID = &id
	} else {
		id := target.JournalistID
		sub.JournalistID = &id
	}
	if err := repos().Subscription.Create(sub); err != nil {
		fm := fiber.Map{"type": "error", "message": fmt.Sprintf("something went wrong: %s", err)}
		return flash.WithError(c, fm).Redirect(backTo)
	}

	fm := fiber.Map{"type": "success", "message": "Subscribed. You will be notified about new content."}
	return flash.WithSuccess(c, fm).Redirect(backTo)
}

// HandleUnsubscribe removes the reader's subscription to the target.
func HandleUnsubscribe(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	target := parseTarget(c)
	if err := target.Validate(); err != nil {
		return flashWorkflowError(c, err, "/subscriptions")
	}

	if err := repos().Subscription.DeleteByTarget(userCtx.UserID, target); err != nil {
		fm := fiber.Map{"type": "error", "message": fmt.Sprintf("something went wrong: %s", err)}
		return flash.WithError(c, fm).Redirect("/subscriptions")
	}

	fm := fiber.Map{"type": "success", "message": "Unsubscribed."}
	return flash.WithSuccess(c, fm).Redirect("/subscriptions")
}

// HandleUnsubscribeByToken is the one-click unsubscribe endpoint linked
// from notification emails; no login required, the signed token carries
// the subscription.
func HandleUnsubscribeByToken(c *fiber.Ctx) error {
	secret := env.GetEnv("APP_SECRET", "")
	claims, err := security.VerifyUnsubscribeToken(c.Query("token"), secret)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("Invalid or expired unsubscribe link")
	}

	sub, err := repos().Subscription.GetByID(claims.SubscriptionID)
	if err != nil || sub.SubscriberID != claims.SubscriberID {
		return c.Status(fiber.StatusNotFound).SendString("Subscription not found")
	}

	if err := repos().Subscription.Delete(sub.ID); err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to unsubscribe")
	}

	return c.SendString("You have been unsubscribed.")
}

func parseTarget(c *fiber.Ctx) workflow.SubscriptionTarget {
	target := workflow.SubscriptionTarget{}
	if v, err := strconv.ParseUint(c.FormValue("publication_id"), 10, 32); err == nil {
		target.PublicationID = uint(v)
	}
	if v, err := strconv.ParseUint(c.FormValue("journalist_id"), 10, 32); err == nil {
		target.JournalistID = uint(v)
	}
	return target
}

func backLinkFor(target workflow.SubscriptionTarget) string {
	if target.PublicationID != 0 {
		return fmt.Sprintf("/publications/%d", target.PublicationID)
	}
	if target.JournalistID != 0 {
		return fmt.Sprintf("/journalists/%d", target.JournalistID)
	}
	return "/subscriptions"
}
