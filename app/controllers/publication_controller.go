package controllers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/pressroom/newshub/app/models"
	"github.com/pressroom/newshub/internal/pkg/policy"
	"github.com/pressroom/newshub/internal/pkg/usercontext"
	"github.com/pressroom/newshub/internal/pkg/workflow"
)

// HandlePublicationIndex lists all publications.
func HandlePublicationIndex(c *fiber.Ctx) error {
	pubs, err := repos().Publication.GetAll(pageOffset(c), defaultPageSize)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to fetch publications")
	}

	return render(c, "publications/index", fiber.Map{
		"Title":        "Publications",
		"Publications": pubs,
	})
}

// HandlePublicationShow shows one publication with its published articles.
func HandlePublicationShow(c *fiber.Ctx) error {
	pub, err := repos().Publication.GetByID(paramUint(c, "id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString("Publication not found")
	}

	articles, err := repos().Article.GetPublishedByPublication(pub.ID, pageOffset(c), defaultPageSize)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to fetch articles")
	}

	subscriberCount, _ := repos().Subscription.CountForPublication(pub.ID)

	userCtx := usercontext.GetUserContext(c)
	hasPendingJoin := false
	if userCtx.IsLoggedIn && userCtx.Role == models.ROLE_JOURNALIST {
		hasPendingJoin, _ = repos().JoinRequest.HasPending(pub.ID, userCtx.UserID)
	}

	return render(c, "publications/show", fiber.Map{
		"Title":           pub.Name,
		"Publication":     pub,
		"Articles":        articles,
		"SubscriberCount": subscriberCount,
		"IsMember":        pub.HasJournalist(userCtx.UserID),
		"IsManager":       pub.HasEditor(userCtx.UserID),
		"HasPendingJoin":  hasPendingJoin,
	})
}

// HandlePublicationNew creates a publication; the creating editor
// becomes its first manager.
func HandlePublicationNew(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if err := policy.Allow(policy.Actor{ID: userCtx.UserID, Role: userCtx.Role},
		policy.ActionManagePublication, policy.Resource{}); err != nil {
		return flashWorkflowError(c, err, "/publications")
	}

	if c.Method() == fiber.MethodPost {
		name := c.FormValue("name")
		if exists, _ := repos().Publication.NameExists(name); exists {
			fm := fiber.Map{"type": "error", "message": "A publication with that name already exists"}
			return flash.WithError(c, fm).Redirect("/publications/new")
		}

		pub := &models.Publication{
			Name:        name,
			Description: c.FormValue("description"),
			Editors:     []models.User{{ID: userCtx.UserID}},
		}
		if err := repos().Publication.Create(pub); err != nil {
			fm := fiber.Map{"type": "error", "message": fmt.Sprintf("something went wrong: %s", err)}
			return flash.WithError(c, fm).Redirect("/publications/new")
		}

		fm := fiber.Map{"type": "success", "message": "Publication created."}
		return flash.WithSuccess(c, fm).Redirect(fmt.Sprintf("/publications/%d", pub.ID))
	}

	return render(c, "publications/new", fiber.Map{
		"Title": "New publication",
	})
}

// HandlePublicationEdit updates name and description.
func HandlePublicationEdit(c *fiber.Ctx) error {
	pub, err := repos().Publication.GetByID(paramUint(c, "id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString("Publication not found")
	}

	userCtx := usercontext.GetUserContext(c)
	if err := policy.Allow(policy.Actor{ID: userCtx.UserID, Role: userCtx.Role},
		policy.ActionManagePublication,
		policy.Resource{PublicationID: pub.ID, EditorIDs: pub.EditorIDs()}); err != nil {
		return flashWorkflowError(c, err, "/publications")
	}

	if c.Method() == fiber.MethodPost {
		name := c.FormValue("name", pub.Name)
		if exists, _ := repos().Publication.NameExistsExceptID(name, pub.ID); exists {
			fm := fiber.Map{"type": "error", "message": "A publication with that name already exists"}
			return flash.WithError(c, fm).Redirect(fmt.Sprintf("/publications/%d/edit", pub.ID))
		}
		pub.Name = name
		pub.Description = c.FormValue("description", pub.Description)

		if err := repos().Publication.Update(pub); err != nil {
			fm := fiber.Map{"type": "error", "message": fmt.Sprintf("something went wrong: %s", err)}
			return flash.WithError(c, fm).Redirect(fmt.Sprintf("/publications/%d/edit", pub.ID))
		}

		fm := fiber.Map{"type": "success", "message": "Publication updated."}
		return flash.WithSuccess(c, fm).Redirect(fmt.Sprintf("/publications/%d", pub.ID))
	}

	return render(c, "publications/edit", fiber.Map{
		"Title":       "Edit publication",
		"Publication": pub,
	})
}

// HandleJoinRequestCreate files a journalist's membership request.
func HandleJoinRequestCreate(c *fiber.Ctx) error {
	pub, err := repos().Publication.GetByID(paramUint(c, "id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString("Publication not found")
	}

	userCtx := usercontext.GetUserContext(c)
	if err := policy.Allow(policy.Actor{ID: userCtx.UserID, Role: userCtx.Role},
		policy.ActionRequestMembership, policy.Resource{}); err != nil {
		return flashWorkflowError(c, err, fmt.Sprintf("/publications/%d", pub.ID))
	}

	if pub.HasJournalist(userCtx.UserID) {
		fm := fiber.Map{"type": "error", "message": "You are already a member of this publication"}
		return flash.WithError(c, fm).Redirect(fmt.Sprintf("/publications/%d", pub.ID))
	}

	hasPending, err := repos().JoinRequest.HasPending(pub.ID, userCtx.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to check requests")
	}
	if err := workflow.CheckJoinRequest(hasPending); err != nil {
		return flashWorkflowError(c, err, fmt.Sprintf("/publications/%d", pub.ID))
	}

	req := &models.JoinRequest{
		PublicationID: pub.ID,
		UserID:        userCtx.UserID,
		Message:       c.FormValue("message"),
		Status:        models.JOIN_STATUS_PENDING,
	}
	if err := repos().JoinRequest.Create(req); err != nil {
		fm := fiber.Map{"type": "error", "message": fmt.Sprintf("something went wrong: %s", err)}
		return flash.WithError(c, fm).Redirect(fmt.Sprintf("/publications/%d", pub.ID))
	}

	fm := fiber.Map{"type": "success", "message": "Request sent. An editor will review it."}
	return flash.WithSuccess(c, fm).Redirect(fmt.Sprintf("/publications/%d", pub.ID))
}
