package controllers

import (
	"fmt"
	"html/template"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/sujit-baniya/flash"

	"github.com/pressroom/newshub/app/models"
	"github.com/pressroom/newshub/internal/pkg/content"
	metrics "github.com/pressroom/newshub/internal/pkg/metrics/counter"
	"github.com/pressroom/newshub/internal/pkg/policy"
	"github.com/pressroom/newshub/internal/pkg/statistics"
	"github.com/pressroom/newshub/internal/pkg/storage"
	"github.com/pressroom/newshub/internal/pkg/upload"
	"github.com/pressroom/newshub/internal/pkg/usercontext"
	"github.com/pressroom/newshub/internal/pkg/workflow"
)

// HandleArticleIndex renders the public article feed.
func HandleArticleIndex(c *fiber.Ctx) error {
	articles, err := repos().Article.GetPublished(pageOffset(c), defaultPageSize)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to fetch articles")
	}

	statistics.UpdateCacheIfNeeded()

	return render(c, "articles/index", fiber.Map{
		"Title":    "Latest news",
		"Articles": articles,
		"Stats":    statistics.GetStatistics(),
	})
}

// HandleArticleShow renders a single published article with comments
// and ratings. Authors and reviewing editors can also see unpublished
// states.
func HandleArticleShow(c *fiber.Ctx) error {
	article, err := repos().Article.GetBySlug(c.Params("slug"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString("Article not found")
	}

	userCtx := usercontext.GetUserContext(c)
	if article.Status != models.STATUS_PUBLISHED {
		if !canSeeUnpublished(userCtx, article) {
			return c.Status(fiber.StatusNotFound).SendString("Article not found")
		}
	} else {
		// Count the view; the pending counter is flushed to the DB in batches.
		if err := metrics.AddArticleView(article.ID); err != nil {
			log.Errorf("failed to count view for article %d: %v", article.ID, err)
		}
	}

	comments, err := repos().Comment.GetByArticle(article.ID, 0, 200)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to fetch comments")
	}

	avgRating, _ := repos().Rating.AverageForArticle(article.ID)
	ratingCount, _ := repos().Rating.CountByArticle(article.ID)

	var ownScore int
	if userCtx.IsLoggedIn {
		if r, err := repos().Rating.GetByArticleAndUser(article.ID, userCtx.UserID); err == nil {
			ownScore = r.Score
		}
	}

	return render(c, "articles/show", fiber.Map{
		"Title":         article.Title,
		"Article":       article,
		"BodyHTML":      template.HTML(content.RenderBody(article)),
		"OGDescription": excerptOf(article, 150),
		"Comments":      comments,
		"AvgRating":     avgRating,
		"RatingCount":   ratingCount,
		"OwnScore":      ownScore,
	})
}

func canSeeUnpublished(userCtx usercontext.UserContext, article *models.Article) bool {
	if !userCtx.IsLoggedIn {
		return false
	}
	if article.AuthorID != nil && *article.AuthorID == userCtx.UserID {
		return true
	}
	res := resourceOf(article)
	return policy.Allow(policy.Actor{ID: userCtx.UserID, Role: userCtx.Role},
		policy.ActionReviewContent, res) == nil
}

// resourceOf reduces an article to the facts the policy needs.
func resourceOf(article *models.Article) policy.Resource {
	res := policy.Resource{}
	if article.AuthorID != nil {
		res.OwnerID = *article.AuthorID
	}
	if article.PublicationID != nil {
		res.PublicationID = *article.PublicationID
	}
	if article.Publication != nil {
		res.EditorIDs = article.Publication.EditorIDs()
	}
	return res
}

// HandleArticleNew renders the editor form and stores the new draft.
func HandleArticleNew(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if err := policy.Allow(policy.Actor{ID: userCtx.UserID, Role: userCtx.Role},
		policy.ActionAuthorContent, policy.Resource{}); err != nil {
		return flashWorkflowError(c, err, "/")
	}

	memberships, err := repos().Publication.GetMemberships(userCtx.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to load publications")
	}

	if c.Method() == fiber.MethodPost {
		article := &models.Article{
			Title:   c.FormValue("title"),
			Content: c.FormValue("content"),
			Type:    c.FormValue("type", models.TYPE_ARTICLE),
			Status:  models.STATUS_DRAFT,
		}
		authorID := userCtx.UserID
		article.AuthorID = &authorID

		if pubID, _ := strconv.ParseUint(c.FormValue("publication_id"), 10, 32); pubID != 0 {
			// Drafts may only be filed under publications the author belongs to.
			member := false
			for _, p := range memberships {
				if p.ID == uint(pubID) {
					member = true
					break
				}
			}
			if !member {
				fm := fiber.Map{"type": "error", "message": "You are not a member of that publication"}
				return flash.WithError(c, fm).Redirect("/articles/new")
			}
			id := uint(pubID)
			article.PublicationID = &id
		}

		if article.Type != models.TYPE_ARTICLE && article.Type != models.TYPE_NEWSLETTER {
			fm := fiber.Map{"type": "error", "message": "Unknown content type"}
			return flash.WithError(c, fm).Redirect("/articles/new")
		}

		if err := repos().Article.Create(article); err != nil {
			fm := fiber.Map{"type": "error", "message": fmt.Sprintf("something went wrong: %s", err)}
			return flash.WithError(c, fm).Redirect("/articles/new")
		}

		fm := fiber.Map{"type": "success", "message": "Draft saved."}
		return flash.WithSuccess(c, fm).Redirect("/journalist")
	}

	return render(c, "articles/new", fiber.Map{
		"Title":        "New content",
		"Publications": memberships,
	})
}

// HandleArticleEdit updates a draft or rejected article.
func HandleArticleEdit(c *fiber.Ctx) error {
	article, err := repos().Article.GetByID(paramUint(c, "id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString("Article not found")
	}

	userCtx := usercontext.GetUserContext(c)
	if err := policy.Allow(policy.Actor{ID: userCtx.UserID, Role: userCtx.Role},
		policy.ActionEditContent, resourceOf(article)); err != nil {
		return flashWorkflowError(c, err, "/journalist")
	}

	if article.Status == models.STATUS_PUBLISHED || article.Status == models.STATUS_PENDING_APPROVAL {
		fm := fiber.Map{"type": "error", "message": "Only drafts and rejected content can be edited"}
		return flash.WithError(c, fm).Redirect("/journalist")
	}

	if c.Method() == fiber.MethodPost {
		article.Title = c.FormValue("title", article.Title)
		article.Content = c.FormValue("content", article.Content)
		if article.Status == models.STATUS_REJECTED {
			// Editing rejected content reopens the cycle.
			if err := workflow.ReturnToDraft(article); err != nil {
				return flashWorkflowError(c, err, "/journalist")
			}
		}

		if err := repos().Article.Update(article); err != nil {
			fm := fiber.Map{"type": "error", "message": fmt.Sprintf("something went wrong: %s", err)}
			return flash.WithError(c, fm).Redirect("/journalist")
		}

		fm := fiber.Map{"type": "success", "message": "Changes saved."}
		return flash.WithSuccess(c, fm).Redirect("/journalist")
	}

	return render(c, "articles/edit", fiber.Map{
		"Title":   "Edit content",
		"Article": article,
	})
}

// HandleArticleSubmit moves a draft into review.
func HandleArticleSubmit(c *fiber.Ctx) error {
	article, err := repos().Article.GetByID(paramUint(c, "id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString("Article not found")
	}

	userCtx := usercontext.GetUserContext(c)
	if err := policy.Allow(policy.Actor{ID: userCtx.UserID, Role: userCtx.Role},
		policy.ActionSubmitContent, resourceOf(article)); err != nil {
		return flashWorkflowError(c, err, "/journalist")
	}

	if err := workflow.Submit(article); err != nil {
		return flashWorkflowError(c, err, "/journalist")
	}
	if err := repos().Article.Update(article); err != nil {
		fm := fiber.Map{"type": "error", "message": fmt.Sprintf("something went wrong: %s", err)}
		return flash.WithError(c, fm).Redirect("/journalist")
	}

	fm := fiber.Map{"type": "success", "message": "Submitted for review."}
	return flash.WithSuccess(c, fm).Redirect("/journalist")
}

// HandleArticleCoverUpload stores a cover image for an article.
func HandleArticleCoverUpload(c *fiber.Ctx) error {
	article, err := repos().Article.GetByID(paramUint(c, "id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString("Article not found")
	}

	userCtx := usercontext.GetUserContext(c)
	if err := policy.Allow(policy.Actor{ID: userCtx.UserID, Role: userCtx.Role},
		policy.ActionEditContent, resourceOf(article)); err != nil {
		return flashWorkflowError(c, err, "/journalist")
	}

	fileHeader, err := c.FormFile("cover")
	if err != nil {
		fm := fiber.Map{"type": "error", "message": "No file uploaded"}
		return flash.WithError(c, fm).Redirect(fmt.Sprintf("/articles/%d/edit", article.ID))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to read upload")
	}
	defer file.Close()

	head := make([]byte, 512)
	n, _ := file.Read(head)
	if _, err := upload.ValidateImageBySniff(fileHeader.Filename, head[:n]); err != nil {
		fm := fiber.Map{"type": "error", "message": err.Error()}
		return flash.WithError(c, fm).Redirect(fmt.Sprintf("/articles/%d/edit", article.ID))
	}
	if _, err := file.Seek(0, 0); err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to read upload")
	}

	store, err := storage.GetCoverStore()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Object storage unavailable")
	}

	_, coverURL, err := store.UploadCover(c.Context(), article.ID, fileHeader.Filename, file, fileHeader.Size)
	if err != nil {
		log.Errorf("cover upload for article %d failed: %v", article.ID, err)
		fm := fiber.Map{"type": "error", "message": "Upload failed, please try again"}
		return flash.WithError(c, fm).Redirect(fmt.Sprintf("/articles/%d/edit", article.ID))
	}

	article.CoverImageURL = coverURL
	if err := repos().Article.Update(article); err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to save cover")
	}

	fm := fiber.Map{"type": "success", "message": "Cover image updated."}
	return flash.WithSuccess(c, fm).Redirect(fmt.Sprintf("/articles/%d/edit", article.ID))
}

// HandleArticleComment appends a comment under a published article.
func HandleArticleComment(c *fiber.Ctx) error {
	article, err := repos().Article.GetByID(paramUint(c, "id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString("Article not found")
	}

	userCtx := usercontext.GetUserContext(c)
	if err := policy.Allow(policy.Actor{ID: userCtx.UserID, Role: userCtx.Role},
		policy.ActionComment, policy.Resource{}); err != nil {
		return flashWorkflowError(c, err, "/articles/"+article.Slug)
	}

	if article.Status != models.STATUS_PUBLISHED {
		fm := fiber.Map{"type": "error", "message": "Comments are only open on published content"}
		return flash.WithError(c, fm).Redirect("/")
	}

	text := c.FormValue("text")
	if text == "" {
		fm := fiber.Map{"type": "error", "message": "Comment text is required"}
		return flash.WithError(c, fm).Redirect("/articles/" + article.Slug)
	}

	comment := &models.Comment{
		ArticleID: article.ID,
		UserID:    userCtx.UserID,
		Text:      text,
	}
	if err := repos().Comment.Create(comment); err != nil {
		fm := fiber.Map{"type": "error", "message": fmt.Sprintf("something went wrong: %s", err)}
		return flash.WithError(c, fm).Redirect("/articles/" + article.Slug)
	}

	return c.Redirect("/articles/"+article.Slug, fiber.StatusSeeOther)
}

// HandleArticleRate stores or replaces the reader's 1-5 score.
func HandleArticleRate(c *fiber.Ctx) error {
	article, err := repos().Article.GetByID(paramUint(c, "id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString("Article not found")
	}

	userCtx := usercontext.GetUserContext(c)
	if err := policy.Allow(policy.Actor{ID: userCtx.UserID, Role: userCtx.Role},
		policy.ActionRate, policy.Resource{}); err != nil {
		return flashWorkflowError(c, err, "/articles/"+article.Slug)
	}

	if article.Status != models.STATUS_PUBLISHED {
		fm := fiber.Map{"type": "error", "message": "Only published content can be rated"}
		return flash.WithError(c, fm).Redirect("/")
	}

	score, err := strconv.Atoi(c.FormValue("score"))
	if err != nil || score < 1 || score > 5 {
		fm := fiber.Map{"type": "error", "message": "Score must be between 1 and 5"}
		return flash.WithError(c, fm).Redirect("/articles/" + article.Slug)
	}

	if err := repos().Rating.Upsert(userCtx.UserID, article.ID, score); err != nil {
		fm := fiber.Map{"type": "error", "message": fmt.Sprintf("something went wrong: %s", err)}
		return flash.WithError(c, fm).Redirect("/articles/" + article.Slug)
	}

	return c.Redirect("/articles/"+article.Slug, fiber.StatusSeeOther)
}
