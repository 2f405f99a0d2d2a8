package jobqueue

import (
	"fmt"

	"github.com/gofiber/fiber/v2/log"

	"github.com/pressroom/newshub/internal/pkg/mail"
)

// sendMail is swapped out in tests.
var sendMail = mail.Send

// processEmailNotifyJob delivers one publish notification batch. Each
// recipient is sent individually; a failed recipient is logged and the
// batch continues, so a retry cannot double-deliver to recipients that
// already got their copy. The job only fails when no recipient could be
// reached at all.
func (q *Queue) processEmailNotifyJob(job *Job) error {
	payload, err := EmailNotifyPayloadFromMap(job.Payload)
	if err != nil {
		return fmt.Errorf("invalid email notify payload: %w", err)
	}

	if len(payload.Messages) == 0 {
		log.Infof("[JobQueue] Email job %s has no recipients, nothing to do", job.ID)
		return nil
	}

	sent := 0
	for _, m := range payload.Messages {
		msg := mail.Message{To: m.To, Subject: payload.Subject, Body: m.Body}
		if m.UnsubscribeLink != "" {
			msg.Headers = map[string]string{
				"List-Unsubscribe": fmt.Sprintf("<%s>", m.UnsubscribeLink),
			}
		}
		if err := sendMail(msg); err != nil {
			log.Errorf("[JobQueue] Email job %s: send to %s failed: %v", job.ID, m.To, err)
			continue
		}
		sent++
	}

	log.Infof("[JobQueue] Email job %s: sent %d/%d notifications for article %d",
		job.ID, sent, len(payload.Messages), payload.ArticleID)

	if sent == 0 {
		return fmt.Errorf("all %d notification emails failed", len(payload.Messages))
	}
	return nil
}
