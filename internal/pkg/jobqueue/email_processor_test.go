package jobqueue

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pressroom/newshub/internal/pkg/mail"
)

func emailJob(messages ...EmailMessage) *Job {
	payload := EmailNotifyPayload{
		ArticleID: 42,
		Subject:   "New Article: Test",
		Messages:  messages,
	}
	return &Job{ID: "job-1", Type: JobTypeEmailNotify, Payload: payload.ToMap()}
}

func TestProcessEmailNotifyJob_AllDelivered(t *testing.T) {
	orig := sendMail
	defer func() { sendMail = orig }()

	var sent []mail.Message
	sendMail = func(msg mail.Message) error {
		sent = append(sent, msg)
		return nil
	}

	q := &Queue{}
	err := q.processEmailNotifyJob(emailJob(
		EmailMessage{To: "a@example.com", Body: "body-a", UnsubscribeLink: "https://news.example.com/unsubscribe?token=a"},
		EmailMessage{To: "b@example.com", Body: "body-b"},
	))
	require.NoError(t, err)

	require.Len(t, sent, 2)
	assert.Equal(t, "a@example.com", sent[0].To)
	assert.Equal(t, "body-a", sent[0].Body)
	assert.Equal(t, "<https://news.example.com/unsubscribe?token=a>", sent[0].Headers["List-Unsubscribe"])
	assert.Equal(t, "b@example.com", sent[1].To)
	assert.Nil(t, sent[1].Headers)
}

func TestProcessEmailNotifyJob_PartialFailureSucceeds(t *testing.T) {
	orig := sendMail
	defer func() { sendMail = orig }()

	sendMail = func(msg mail.Message) error {
		if msg.To == "broken@example.com" {
			return errors.New("mailbox unavailable")
		}
		return nil
	}

	q := &Queue{}
	err := q.processEmailNotifyJob(emailJob(
		EmailMessage{To: "broken@example.com", Body: "b"},
		EmailMessage{To: "ok@example.com", Body: "b"},
	))
	assert.NoError(t, err)
}

func TestProcessEmailNotifyJob_TotalFailureFailsJob(t *testing.T) {
	orig := sendMail
	defer func() { sendMail = orig }()

	sendMail = func(msg mail.Message) error {
		return errors.New("smtp down")
	}

	q := &Queue{}
	err := q.processEmailNotifyJob(emailJob(
		EmailMessage{To: "a@example.com", Body: "b"},
		EmailMessage{To: "b@example.com", Body: "b"},
	))
	assert.Error(t, err)
}

func TestProcessEmailNotifyJob_NoRecipients(t *testing.T) {
	orig := sendMail
	defer func() { sendMail = orig }()

	called := false
	sendMail = func(msg mail.Message) error {
		called = true
		return nil
	}

	q := &Queue{}
	err := q.processEmailNotifyJob(emailJob())
	assert.NoError(t, err)
	assert.False(t, called)
}
