package jobqueue

import (
	"fmt"

	"github.com/gofiber/fiber/v2/log"

	"github.com/pressroom/newshub/internal/pkg/social"
)

// publishSocial is swapped out in tests.
var publishSocial = func(text, link string) error {
	return social.NewClient().Publish(text, link)
}

// processSocialPostJob announces a published article on the social feed.
func (q *Queue) processSocialPostJob(job *Job) error {
	payload, err := SocialPostPayloadFromMap(job.Payload)
	if err != nil {
		return fmt.Errorf("invalid social post payload: %w", err)
	}

	if err := publishSocial(payload.Text, payload.Link); err != nil {
		return fmt.Errorf("social post for article %d failed: %w", payload.ArticleID, err)
	}

	log.Infof("[JobQueue] Social job %s: announced article %d", job.ID, payload.ArticleID)
	return nil
}
