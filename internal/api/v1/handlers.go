package apiv1

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/pressroom/newshub/app/models"
	"github.com/pressroom/newshub/app/repository"
	"github.com/pressroom/newshub/internal/pkg/jobqueue"
	"github.com/pressroom/newshub/internal/pkg/middleware"
	"github.com/pressroom/newshub/internal/pkg/notify"
	"github.com/pressroom/newshub/internal/pkg/policy"
	"github.com/pressroom/newshub/internal/pkg/usercontext"
	"github.com/pressroom/newshub/internal/pkg/workflow"
)

// APIServer implements the JSON API handlers
type APIServer struct{}

// NewAPIServer creates a new API server instance
func NewAPIServer() *APIServer {
	return &APIServer{}
}

func repos() *repository.Repositories {
	return repository.GetGlobalRepositories()
}

// GetPing handles the ping endpoint
func (s *APIServer) GetPing(c *fiber.Ctx) error {
	response := Pong{
		Ping: "pong",
	}

	return c.Status(fiber.StatusOK).JSON(response)
}

// PostAuthToken exchanges credentials for a bearer token.
func (s *APIServer) PostAuthToken(c *fiber.Ctx) error {
	var req TokenRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, &workflow.ValidationError{Msg: "invalid request body"})
	}

	user, err := repos().User.GetByEmail(req.Email)
	if err != nil || !user.CheckPassword(req.Password) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error":   "unauthorized",
			"message": "invalid credentials",
		})
	}
	if !user.IsActive() {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error":   "unauthorized",
			"message": "account not activated",
		})
	}

	token, err := middleware.GenerateAPIToken(user.ID, user.EffectiveDisplayName(), user.Role, middleware.DefaultTokenDuration)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(TokenResponse{
		Token:     token,
		ExpiresAt: time.Now().Add(middleware.DefaultTokenDuration),
	})
}

// GetArticles lists published articles.
func (s *APIServer) GetArticles(c *fiber.Ctx) error {
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	if limit < 1 || limit > 100 {
		limit = 20
	}

	articles, err := repos().Article.GetPublished(offset, limit)
	if err != nil {
		return writeError(c, err)
	}

	out := make([]ArticleResponse, 0, len(articles))
	for i := range articles {
		out = append(out, toArticleResponse(&articles[i], false))
	}
	return c.JSON(fiber.Map{"articles": out})
}

// GetArticle returns one article by slug.
func (s *APIServer) GetArticle(c *fiber.Ctx) error {
	article, err := repos().Article.GetBySlug(c.Params("slug"))
	if err != nil {
		return writeError(c, err)
	}
	if article.Status != models.STATUS_PUBLISHED {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":   "not_found",
			"message": "resource not found",
		})
	}
	return c.JSON(toArticleResponse(article, true))
}

// PostArticle creates a draft for the authenticated journalist.
func (s *APIServer) PostArticle(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if err := policy.Allow(actorOf(userCtx), policy.ActionAuthorContent, policy.Resource{}); err != nil {
		return writeError(c, err)
	}

	var req ArticleRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, &workflow.ValidationError{Msg: "invalid request body"})
	}
	if req.Title == "" {
		return writeError(c, &workflow.ValidationError{Msg: "title is required"})
	}
	if req.Type == "" {
		req.Type = models.TYPE_ARTICLE
	}
	if req.Type != models.TYPE_ARTICLE && req.Type != models.TYPE_NEWSLETTER {
		return writeError(c, &workflow.ValidationError{Msg: "unknown content type"})
	}

	authorID := userCtx.UserID
	article := &models.Article{
		Title:         req.Title,
		Content:       req.Content,
		Type:          req.Type,
		Status:        models.STATUS_DRAFT,
		AuthorID:      &authorID,
		PublicationID: req.PublicationID,
	}

	if req.PublicationID != nil {
		memberships, err := repos().Publication.GetMemberships(userCtx.UserID)
		if err != nil {
			return writeError(c, err)
		}
		member := false
		for _, p := range memberships {
			if p.ID == *req.PublicationID {
				member = true
				break
			}
		}
		if !member {
			return writeError(c, &workflow.PermissionError{Msg: "you are not a member of that publication"})
		}
	}

	if err := repos().Article.Create(article); err != nil {
		return writeError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(toArticleResponse(article, true))
}

// PostArticleSubmit moves the author's draft into review.
func (s *APIServer) PostArticleSubmit(c *fiber.Ctx) error {
	article, err := s.loadArticle(c)
	if err != nil {
		return writeError(c, err)
	}

	userCtx := usercontext.GetUserContext(c)
	if err := policy.Allow(actorOf(userCtx), policy.ActionSubmitContent, resourceOf(article)); err != nil {
		return writeError(c, err)
	}

	if err := workflow.Submit(article); err != nil {
		return writeError(c, err)
	}
	if err := repos().Article.Update(article); err != nil {
		return writeError(c, err)
	}

	return c.JSON(toArticleResponse(article, true))
}

// PostArticleApprove publishes a pending submission and dispatches the
// notifications exactly once.
func (s *APIServer) PostArticleApprove(c *fiber.Ctx) error {
	article, err := s.loadArticle(c)
	if err != nil {
		return writeError(c, err)
	}

	userCtx := usercontext.GetUserContext(c)
	if err := policy.Allow(actorOf(userCtx), policy.ActionReviewContent, resourceOf(article)); err != nil {
		return writeError(c, err)
	}

	intents, err := workflow.Approve(article, time.Now())
	if err != nil {
		return writeError(c, err)
	}
	if err := repos().Article.PublishIfPending(article.ID, *article.PublishedAt); err != nil {
		return writeError(c, err)
	}

	subs, serr := repos().Subscription.GetForArticle(article)
	if serr != nil {
		log.Errorf("failed to resolve subscribers for article %d: %v", article.ID, serr)
		subs = nil
	}
	dispatcher := notify.NewDispatcher(jobqueue.GetManager().GetQueue())
	dispatcher.DispatchPublished(intents, article, notify.RecipientsFromSubscriptions(subs))

	return c.JSON(toArticleResponse(article, true))
}

// PostArticleReject turns down a pending submission with feedback.
func (s *APIServer) PostArticleReject(c *fiber.Ctx) error {
	article, err := s.loadArticle(c)
	if err != nil {
		return writeError(c, err)
	}

	userCtx := usercontext.GetUserContext(c)
	if err := policy.Allow(actorOf(userCtx), policy.ActionReviewContent, resourceOf(article)); err != nil {
		return writeError(c, err)
	}

	var req RejectRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, &workflow.ValidationError{Msg: "invalid request body"})
	}

	if err := workflow.Reject(article, req.Feedback); err != nil {
		return writeError(c, err)
	}
	if err := repos().Article.RejectIfPending(article.ID, req.Feedback); err != nil {
		return writeError(c, err)
	}

	return c.JSON(toArticleResponse(article, true))
}

// GetSubscriptions lists the authenticated reader's subscriptions.
func (s *APIServer) GetSubscriptions(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	subs, err := repos().Subscription.GetBySubscriber(userCtx.UserID)
	if err != nil {
		return writeError(c, err)
	}

	out := make([]SubscriptionResponse, 0, len(subs))
	for i := range subs {
		out = append(out, toSubscriptionResponse(&subs[i]))
	}
	return c.JSON(fiber.Map{"subscriptions": out})
}

// PostSubscription creates a subscription for the authenticated reader.
func (s *APIServer) PostSubscription(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if err := policy.Allow(actorOf(userCtx), policy.ActionSubscribe, policy.Resource{}); err != nil {
		return writeError(c, err)
	}

	var req SubscribeRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, &workflow.ValidationError{Msg: "invalid request body"})
	}
	target := workflow.SubscriptionTarget{
		PublicationID: req.PublicationID,
		JournalistID:  req.JournalistID,
	}

	existing, err := repos().Subscription.GetTargetsBySubscriber(userCtx.UserID)
	if err != nil {
		return writeError(c, err)
	}

	var profile *workflow.JournalistProfile
	if target.JournalistID != 0 {
		memberships, err := repos().Publication.GetMemberships(target.JournalistID)
		if err != nil {
			return writeError(c, err)
		}
		independent, err := repos().Article.CountIndependentByAuthor(target.JournalistID)
		if err != nil {
			return writeError(c, err)
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
		return writeError(c, err)
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
		return writeError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(toSubscriptionResponse(sub))
}

// DeleteSubscription removes one of the reader's subscriptions.
func (s *APIServer) DeleteSubscription(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return writeError(c, &workflow.ValidationError{Msg: "invalid subscription id"})
	}

	sub, err := repos().Subscription.GetByID(uint(id))
	if err != nil {
		return writeError(c, err)
	}
	if sub.SubscriberID != userCtx.UserID {
		return writeError(c, &workflow.PermissionError{Msg: "subscription belongs to another reader"})
	}

	if err := repos().Subscription.Delete(sub.ID); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// PostJoinRequest files a membership request for the authenticated journalist.
func (s *APIServer) PostJoinRequest(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if err := policy.Allow(actorOf(userCtx), policy.ActionRequestMembership, policy.Resource{}); err != nil {
		return writeError(c, err)
	}

	var req JoinRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, &workflow.ValidationError{Msg: "invalid request body"})
	}

	pub, err := repos().Publication.GetByID(req.PublicationID)
	if err != nil {
		return writeError(c, err)
	}
	if pub.HasJournalist(userCtx.UserID) {
		return writeError(c, &workflow.ConflictError{
			Reason: workflow.ConflictDuplicate,
			Msg:    "already a member of this publication",
		})
	}

	hasPending, err := repos().JoinRequest.HasPending(pub.ID, userCtx.UserID)
	if err != nil {
		return writeError(c, err)
	}
	if err := workflow.CheckJoinRequest(hasPending); err != nil {
		return writeError(c, err)
	}

	jr := &models.JoinRequest{
		PublicationID: pub.ID,
		UserID:        userCtx.UserID,
		Message:       req.Message,
		Status:        models.JOIN_STATUS_PENDING,
	}
	if err := repos().JoinRequest.Create(jr); err != nil {
		return writeError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(toJoinRequestResponse(jr))
}

// PostJoinRequestApprove approves a pending request and adds the member.
func (s *APIServer) PostJoinRequestApprove(c *fiber.Ctx) error {
	return s.reviewJoinRequest(c, true)
}

// PostJoinRequestReject rejects a pending request with feedback.
func (s *APIServer) PostJoinRequestReject(c *fiber.Ctx) error {
	return s.reviewJoinRequest(c, false)
}

func (s *APIServer) reviewJoinRequest(c *fiber.Ctx, approve bool) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return writeError(c, &workflow.ValidationError{Msg: "invalid request id"})
	}

	req, err := repos().JoinRequest.GetByID(uint(id))
	if err != nil {
		return writeError(c, err)
	}

	userCtx := usercontext.GetUserContext(c)
	if err := policy.Allow(actorOf(userCtx), policy.ActionReviewMembership,
		policy.Resource{PublicationID: req.PublicationID, EditorIDs: req.Publication.EditorIDs()}); err != nil {
		return writeError(c, err)
	}

	var body RejectRequest
	_ = c.BodyParser(&body)

	if approve {
		err = workflow.ApproveJoinRequest(req, body.Feedback, time.Now())
	} else {
		err = workflow.RejectJoinRequest(req, body.Feedback, time.Now())
	}
	if err != nil {
		return writeError(c, err)
	}

	if err := repos().JoinRequest.Update(req); err != nil {
		return writeError(c, err)
	}
	if approve {
		if err := repos().Publication.AddJournalist(req.PublicationID, req.UserID); err != nil {
			return writeError(c, err)
		}
	}

	return c.JSON(toJoinRequestResponse(req))
}

func (s *APIServer) loadArticle(c *fiber.Ctx) (*models.Article, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return nil, &workflow.ValidationError{Msg: "invalid article id"}
	}
	return repos().Article.GetByID(uint(id))
}

func actorOf(userCtx usercontext.UserContext) policy.Actor {
	return policy.Actor{ID: userCtx.UserID, Role: userCtx.Role}
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
