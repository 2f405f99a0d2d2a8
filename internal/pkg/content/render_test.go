package content

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pressroom/newshub/app/models"
)

func TestRenderBody_NewsletterMarkdown(t *testing.T) {
	a := &models.Article{
		Type:    models.TYPE_NEWSLETTER,
		Content: "# Weekly Digest\n\nRead *this*.",
	}

	html := RenderBody(a)

	assert.Contains(t, html, "<h1>Weekly Digest</h1>")
	assert.Contains(t, html, "<em>this</em>")
}

func TestRenderBody_ArticlePassesThrough(t *testing.T) {
	a := &models.Article{
		Type:    models.TYPE_ARTICLE,
		Content: "<p>Already HTML</p>",
	}

	assert.Equal(t, "<p>Already HTML</p>", RenderBody(a))
}

func TestPlainText(t *testing.T) {
	got := PlainText("<p>Hello <strong>world</strong></p>")

	assert.Equal(t, "Hello world", got)
}

func TestExcerpt_CutsAtWordBoundary(t *testing.T) {
	a := &models.Article{
		Type:    models.TYPE_ARTICLE,
		Content: "<p>" + strings.Repeat("word ", 50) + "</p>",
	}

	got := Excerpt(a, 30)

	assert.True(t, strings.HasSuffix(got, "…"))
	assert.LessOrEqual(t, len(got), 30+len("…"))
	assert.NotContains(t, got, "<p>")
}

func TestExcerpt_ShortContentUntouched(t *testing.T) {
	a := &models.Article{
		Type:    models.TYPE_ARTICLE,
		Content: "<p>Short body</p>",
	}

	assert.Equal(t, "Short body", Excerpt(a, 100))
}
