package jobqueue

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessSocialPostJob(t *testing.T) {
	orig := publishSocial
	defer func() { publishSocial = orig }()

	var gotText, gotLink string
	publishSocial = func(text, link string) error {
		gotText, gotLink = text, link
		return nil
	}

	payload := SocialPostPayload{
		ArticleID: 42,
		Text:      "New Article: Test by Jane Doe",
		Link:      "https://newshub.example/articles/test-123",
	}
	q := &Queue{}
	err := q.processSocialPostJob(&Job{ID: "job-2", Type: JobTypeSocialPost, Payload: payload.ToMap()})
	require.NoError(t, err)
	assert.Equal(t, "New Article: Test by Jane Doe", gotText)
	assert.Equal(t, "https://newshub.example/articles/test-123", gotLink)
}

func TestProcessSocialPostJob_FailurePropagates(t *testing.T) {
	orig := publishSocial
	defer func() { publishSocial = orig }()

	publishSocial = func(text, link string) error {
		return errors.New("endpoint unreachable")
	}

	payload := SocialPostPayload{ArticleID: 42, Text: "t", Link: "l"}
	q := &Queue{}
	err := q.processSocialPostJob(&Job{ID: "job-3", Type: JobTypeSocialPost, Payload: payload.ToMap()})
	assert.Error(t, err)
}
