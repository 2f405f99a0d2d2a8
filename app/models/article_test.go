package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "Hello World", want: "hello-world"},
		{in: "Go: Shipping at Scale!", want: "go-shipping-at-scale"},
		{in: "  --leading & trailing--  ", want: "leading-trailing"},
		{in: "ÜBER den Wolken", want: "über-den-wolken"},
		{in: "", want: ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.in), "Slugify(%q)", tt.in)
	}
}

func TestGenerateSlug(t *testing.T) {
	t.Parallel()

	now := time.Unix(1700000000, 0)
	assert.Equal(t, "breaking-news-1700000000", GenerateSlug("Breaking News", now))

	// same title, different moment, different slug
	later := now.Add(time.Second)
	assert.NotEqual(t, GenerateSlug("Breaking News", now), GenerateSlug("Breaking News", later))
}

func TestArticleHelpers(t *testing.T) {
	t.Parallel()

	pubID := uint(3)
	owned := &Article{PublicationID: &pubID, Type: TYPE_NEWSLETTER}
	assert.False(t, owned.IsIndependent())
	assert.True(t, owned.IsNewsletter())

	independent := &Article{Type: TYPE_ARTICLE}
	assert.True(t, independent.IsIndependent())
	assert.False(t, independent.IsNewsletter())
}

func TestArticleAuthorName(t *testing.T) {
	t.Parallel()

	a := &Article{Author: &User{FirstName: "Jane", LastName: "Doe"}}
	assert.Equal(t, "Jane Doe", a.AuthorName())

	orphan := &Article{}
	assert.Equal(t, "Unknown", orphan.AuthorName())
}
