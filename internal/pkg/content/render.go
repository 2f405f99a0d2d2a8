// Package content renders stored article bodies for display.
// Newsletters are authored in Markdown and rendered to HTML; articles
// carry sanitized HTML already.
package content

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"gitlab.com/golang-commonmark/markdown"

	"github.com/pressroom/newshub/app/models"
)

var md = markdown.New(
	markdown.HTML(true),
	markdown.Linkify(true),
	markdown.Typographer(true),
	markdown.MaxNesting(10),
)

// RenderBody returns the display HTML for an article body. Newsletter
// content is Markdown; everything else passes through.
func RenderBody(a *models.Article) string {
	if a.IsNewsletter() {
		return md.RenderToString([]byte(a.Content))
	}
	return a.Content
}

// PlainText strips all markup from rendered content. Parse failures
// fall back to the raw input.
func PlainText(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return html
	}
	return strings.TrimSpace(doc.Text())
}

// Excerpt returns the first maxLen characters of the plain-text body,
// cut at a word boundary, for list views and OpenGraph descriptions.
func Excerpt(a *models.Article, maxLen int) string {
	text := PlainText(RenderBody(a))
	text = strings.Join(strings.Fields(text), " ")
	if len(text) <= maxLen {
		return text
	}

	cut := text[:maxLen]
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return cut + "…"
}
