package notify

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pressroom/newshub/app/models"
	"github.com/pressroom/newshub/internal/pkg/security"
)

func TestRecipientsFromSubscriptions_DedupesAndSorts(t *testing.T) {
	subs := []models.Subscription{
		{ID: 1, SubscriberID: 10, Subscriber: models.User{Email: "zoe@example.com"}},
		{ID: 2, SubscriberID: 11, Subscriber: models.User{Email: "anna@example.com"}},
		{ID: 3, SubscriberID: 10, Subscriber: models.User{Email: "zoe@example.com"}}, // follows both targets
		{ID: 4, Subscriber: models.User{Email: ""}},
		{ID: 5, Subscriber: models.User{Email: "  "}},
	}

	got := RecipientsFromSubscriptions(subs)

	require.Len(t, got, 2)
	assert.Equal(t, Recipient{Email: "anna@example.com", SubscriberID: 11, SubscriptionID: 2}, got[0])
	// First matching subscription wins for the unsubscribe target.
	assert.Equal(t, Recipient{Email: "zoe@example.com", SubscriberID: 10, SubscriptionID: 1}, got[1])
}

func TestRecipientsFromSubscriptions_Empty(t *testing.T) {
	assert.Empty(t, RecipientsFromSubscriptions(nil))
	assert.Empty(t, RecipientsFromSubscriptions([]models.Subscription{}))
}

func TestDefaultTemplates_RenderEmail(t *testing.T) {
	templates := DefaultTemplates()

	subject, body, err := templates.RenderEmail(TemplateData{
		TypeLabel:       "Article",
		Title:           "Go Shipping at Scale",
		Author:          "Jane Doe",
		Link:            "https://news.example.com/articles/go-shipping-at-scale-1700000000",
		UnsubscribeLink: "https://news.example.com/unsubscribe?token=abc",
	})

	assert.NoError(t, err)
	assert.Equal(t, "New Article: Go Shipping at Scale", subject)
	assert.Contains(t, body, "Go Shipping at Scale")
	assert.Contains(t, body, "Jane Doe")
	assert.Contains(t, body, "https://news.example.com/articles/go-shipping-at-scale-1700000000")
	assert.Contains(t, body, `<a href="https://news.example.com/unsubscribe?token=abc">Unsubscribe</a>`)
}

func TestDefaultTemplates_RenderEmailWithoutUnsubscribe(t *testing.T) {
	templates := DefaultTemplates()

	_, body, err := templates.RenderEmail(TemplateData{
		TypeLabel: "Article",
		Title:     "Go Shipping at Scale",
		Author:    "Jane Doe",
		Link:      "https://news.example.com/articles/go-shipping-at-scale-1700000000",
	})

	assert.NoError(t, err)
	assert.NotContains(t, body, "Unsubscribe")
}

func TestDefaultTemplates_RenderSocial(t *testing.T) {
	templates := DefaultTemplates()

	text, err := templates.RenderSocial(TemplateData{
		TypeLabel: "Newsletter",
		Title:     "Weekly Digest",
		Author:    "Jane Doe",
	})

	assert.NoError(t, err)
	assert.Equal(t, "New Newsletter: Weekly Digest by Jane Doe", text)
}

func TestTypeLabel(t *testing.T) {
	assert.Equal(t, "Article", TypeLabel(&models.Article{Type: models.TYPE_ARTICLE}))
	assert.Equal(t, "Newsletter", TypeLabel(&models.Article{Type: models.TYPE_NEWSLETTER}))
}

func TestDispatcher_ArticleLink(t *testing.T) {
	d := NewDispatcherWith(nil, DefaultTemplates(), "https://news.example.com/", "")

	link := d.ArticleLink(&models.Article{Slug: "hello-world-1700000000"})

	assert.Equal(t, "https://news.example.com/articles/hello-world-1700000000", link)
}

func TestBuildEmailPayload_PerRecipientUnsubscribeLinks(t *testing.T) {
	const secret = "notify-test-secret"
	d := NewDispatcherWith(nil, DefaultTemplates(), "https://news.example.com", secret)

	recipients := []Recipient{
		{Email: "anna@example.com", SubscriberID: 11, SubscriptionID: 2},
		{Email: "zoe@example.com", SubscriberID: 10, SubscriptionID: 1},
	}

	payload, err := d.buildEmailPayload(42, TemplateData{
		TypeLabel: "Article",
		Title:     "Go Shipping at Scale",
		Author:    "Jane Doe",
		Link:      "https://news.example.com/articles/go-shipping-at-scale-1700000000",
	}, recipients)
	require.NoError(t, err)

	require.Len(t, payload.Messages, 2)
	assert.Equal(t, uint(42), payload.ArticleID)
	assert.Equal(t, "New Article: Go Shipping at Scale", payload.Subject)

	for i, msg := range payload.Messages {
		assert.Equal(t, recipients[i].Email, msg.To)
		require.NotEmpty(t, msg.UnsubscribeLink)
		assert.Contains(t, msg.Body, msg.UnsubscribeLink)

		// Each link resolves back to that recipient's subscription.
		token := strings.TrimPrefix(msg.UnsubscribeLink, "https://news.example.com/unsubscribe?token=")
		require.NotEqual(t, msg.UnsubscribeLink, token)
		claims, err := security.VerifyUnsubscribeToken(token, secret)
		require.NoError(t, err)
		assert.Equal(t, recipients[i].SubscriberID, claims.SubscriberID)
		assert.Equal(t, recipients[i].SubscriptionID, claims.SubscriptionID)
	}

	assert.NotEqual(t, payload.Messages[0].UnsubscribeLink, payload.Messages[1].UnsubscribeLink)
}

func TestBuildEmailPayload_NoSecretOmitsLinks(t *testing.T) {
	d := NewDispatcherWith(nil, DefaultTemplates(), "https://news.example.com", "")

	payload, err := d.buildEmailPayload(42, TemplateData{
		TypeLabel: "Article",
		Title:     "Go Shipping at Scale",
		Author:    "Jane Doe",
		Link:      "https://news.example.com/articles/go-shipping-at-scale-1700000000",
	}, []Recipient{{Email: "anna@example.com", SubscriberID: 11, SubscriptionID: 2}})
	require.NoError(t, err)

	require.Len(t, payload.Messages, 1)
	assert.Empty(t, payload.Messages[0].UnsubscribeLink)
	assert.NotContains(t, payload.Messages[0].Body, "Unsubscribe")
}

func TestLoadTemplates_EmptyPathUsesDefaults(t *testing.T) {
	templates, err := LoadTemplates("")

	assert.NoError(t, err)
	assert.Equal(t, DefaultTemplates().Email.Subject, templates.Email.Subject)
}

func TestLoadTemplates_MissingFileFails(t *testing.T) {
	_, err := LoadTemplates("/does/not/exist.yml")

	assert.Error(t, err)
}
