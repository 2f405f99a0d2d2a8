// Package notify turns committed publish transitions into background
// notification jobs. Dispatch runs strictly after the state change has
// been stored: a queue failure is logged, never rolled back into the
// content state.
package notify

import (
	"sort"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"

	"github.com/pressroom/newshub/app/models"
	"github.com/pressroom/newshub/internal/pkg/env"
	"github.com/pressroom/newshub/internal/pkg/jobqueue"
	"github.com/pressroom/newshub/internal/pkg/security"
	"github.com/pressroom/newshub/internal/pkg/workflow"
)

// unsubscribeTokenTTL bounds how long an emailed unsubscribe link stays
// valid.
const unsubscribeTokenTTL = 30 * 24 * time.Hour

// Recipient is one resolved subscriber of a publish notification. The
// subscription identity is kept so each mail can carry its own signed
// unsubscribe link.
type Recipient struct {
	Email          string
	SubscriberID   uint
	SubscriptionID uint
}

// Dispatcher enqueues notification jobs for publish intents.
type Dispatcher struct {
	queue     *jobqueue.Queue
	templates *Templates
	baseURL   string
	secret    string
}

// NewDispatcher builds a dispatcher on the given queue. Templates are
// loaded from NOTIFY_TEMPLATES_PATH when set; PUBLIC_DOMAIN provides
// the base for article links, APP_SECRET signs unsubscribe tokens.
func NewDispatcher(queue *jobqueue.Queue) *Dispatcher {
	templatesPath := env.GetEnv("NOTIFY_TEMPLATES_PATH", "")
	templates, err := LoadTemplates(templatesPath)
	if err != nil {
		log.Errorf("[Notify] Failed to load templates from %s, using defaults: %v", templatesPath, err)
		templates = DefaultTemplates()
	}

	return &Dispatcher{
		queue:     queue,
		templates: templates,
		baseURL:   strings.TrimRight(env.GetEnv("PUBLIC_DOMAIN", "http://localhost:8080"), "/"),
		secret:    env.GetEnv("APP_SECRET", ""),
	}
}

// NewDispatcherWith builds a dispatcher with explicit collaborators,
// used by tests.
func NewDispatcherWith(queue *jobqueue.Queue, templates *Templates, baseURL, secret string) *Dispatcher {
	return &Dispatcher{queue: queue, templates: templates, baseURL: strings.TrimRight(baseURL, "/"), secret: secret}
}

// TypeLabel maps a content type to its display label.
func TypeLabel(article *models.Article) string {
	if article.IsNewsletter() {
		return "Newsletter"
	}
	return "Article"
}

// ArticleLink returns the public URL of an article.
func (d *Dispatcher) ArticleLink(article *models.Article) string {
	return d.baseURL + "/articles/" + article.Slug
}

// DispatchPublished enqueues one job per intent produced by the publish
// transition. Recipients is the pre-resolved subscriber list. Failures
// are logged per channel; the content stays published either way.
func (d *Dispatcher) DispatchPublished(intents []workflow.Intent, article *models.Article, recipients []Recipient) {
	data := TemplateData{
		TypeLabel: TypeLabel(article),
		Title:     article.Title,
		Author:    article.AuthorName(),
		Link:      d.ArticleLink(article),
	}

	for _, intent := range intents {
		switch intent.Kind {
		case workflow.IntentEmailBatch:
			d.dispatchEmail(intent, data, recipients)
		case workflow.IntentSocialPost:
			d.dispatchSocial(intent, data)
		default:
			log.Warnf("[Notify] Unknown intent kind %q for article %d", intent.Kind, intent.ArticleID)
		}
	}
}

func (d *Dispatcher) dispatchEmail(intent workflow.Intent, data TemplateData, recipients []Recipient) {
	if len(recipients) == 0 {
		log.Infof("[Notify] Article %d has no subscribers, skipping email batch", intent.ArticleID)
		return
	}

	payload, err := d.buildEmailPayload(intent.ArticleID, data, recipients)
	if err != nil {
		log.Errorf("[Notify] Failed to render email for article %d: %v", intent.ArticleID, err)
		return
	}

	if _, err := d.queue.EnqueueJob(jobqueue.JobTypeEmailNotify, payload.ToMap()); err != nil {
		log.Errorf("[Notify] Failed to enqueue email batch for article %d: %v",
			intent.ArticleID, &workflow.DispatchError{Channel: "email", Err: err})
	}
}

// buildEmailPayload renders one body per recipient so every mail
// carries that subscription's signed unsubscribe link.
func (d *Dispatcher) buildEmailPayload(articleID uint, data TemplateData, recipients []Recipient) (*jobqueue.EmailNotifyPayload, error) {
	payload := &jobqueue.EmailNotifyPayload{
		ArticleID: articleID,
		Messages:  make([]jobqueue.EmailMessage, 0, len(recipients)),
	}

	for _, r := range recipients {
		data.UnsubscribeLink = d.unsubscribeLink(r)

		subject, body, err := d.templates.RenderEmail(data)
		if err != nil {
			return nil, err
		}
		payload.Subject = subject
		payload.Messages = append(payload.Messages, jobqueue.EmailMessage{
			To:              r.Email,
			Body:            body,
			UnsubscribeLink: data.UnsubscribeLink,
		})
	}
	return payload, nil
}

// unsubscribeLink signs the one-click unsubscribe URL for a recipient.
// Returns "" when signing is not possible; the mail then simply goes
// out without the link.
func (d *Dispatcher) unsubscribeLink(r Recipient) string {
	if d.secret == "" || r.SubscriptionID == 0 {
		return ""
	}
	token, err := security.GenerateUnsubscribeToken(r.SubscriberID, r.SubscriptionID, unsubscribeTokenTTL, d.secret)
	if err != nil {
		log.Errorf("[Notify] Failed to sign unsubscribe token for subscription %d: %v", r.SubscriptionID, err)
		return ""
	}
	return d.baseURL + "/unsubscribe?token=" + token
}

func (d *Dispatcher) dispatchSocial(intent workflow.Intent, data TemplateData) {
	text, err := d.templates.RenderSocial(data)
	if err != nil {
		log.Errorf("[Notify] Failed to render social post for article %d: %v", intent.ArticleID, err)
		return
	}

	payload := jobqueue.SocialPostPayload{
		ArticleID: intent.ArticleID,
		Text:      text,
		Link:      data.Link,
	}
	if _, err := d.queue.EnqueueJob(jobqueue.JobTypeSocialPost, payload.ToMap()); err != nil {
		log.Errorf("[Notify] Failed to enqueue social post for article %d: %v",
			intent.ArticleID, &workflow.DispatchError{Channel: "social", Err: err})
	}
}

// RecipientsFromSubscriptions resolves a subscription list to a sorted,
// de-duplicated recipient set. Readers following both the publication
// and its author still get exactly one mail; the first matching
// subscription provides the unsubscribe target.
func RecipientsFromSubscriptions(subs []models.Subscription) []Recipient {
	seen := make(map[string]bool, len(subs))
	recipients := make([]Recipient, 0, len(subs))
	for _, s := range subs {
		email := strings.TrimSpace(s.Subscriber.Email)
		if email == "" || seen[email] {
			continue
		}
		seen[email] = true
		recipients = append(recipients, Recipient{
			Email:          email,
			SubscriberID:   s.SubscriberID,
			SubscriptionID: s.ID,
		})
	}
	sort.Slice(recipients, func(i, j int) bool { return recipients[i].Email < recipients[j].Email })
	return recipients
}
