package jobqueue

import (
	"encoding/json"
	"time"
)

// JobType defines the type of job
type JobType string

const (
	JobTypeEmailNotify JobType = "email_notify"
	JobTypeSocialPost  JobType = "social_post"
)

// JobStatus defines the status of a job
type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
	JobStatusRetrying   JobStatus = "retrying"
)

// Job represents a background job persisted in Redis
type Job struct {
	ID          string                 `json:"id"`
	Type        JobType                `json:"type"`
	Status      JobStatus              `json:"status"`
	Payload     map[string]interface{} `json:"payload"`
	ErrorMsg    string                 `json:"error_msg,omitempty"`
	RetryCount  int                    `json:"retry_count"`
	MaxRetries  int                    `json:"max_retries"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
	ProcessedAt *time.Time             `json:"processed_at,omitempty"`
	CompletedAt *time.Time             `json:"completed_at,omitempty"`
}

// EmailMessage is one recipient's copy within an email batch. The body
// is rendered per recipient so each mail can carry its own unsubscribe
// link.
type EmailMessage struct {
	To              string `json:"to"`
	Body            string `json:"body"`
	UnsubscribeLink string `json:"unsubscribe_link,omitempty"`
}

// EmailNotifyPayload carries one email batch for a published article.
type EmailNotifyPayload struct {
	ArticleID uint           `json:"article_id"`
	Subject   string         `json:"subject"`
	Messages  []EmailMessage `json:"messages"`
}

func (p EmailNotifyPayload) ToMap() map[string]interface{} {
	messages := make([]interface{}, len(p.Messages))
	for i, m := range p.Messages {
		messages[i] = map[string]interface{}{
			"to":               m.To,
			"body":             m.Body,
			"unsubscribe_link": m.UnsubscribeLink,
		}
	}
	return map[string]interface{}{
		"article_id": p.ArticleID,
		"subject":    p.Subject,
		"messages":   messages,
	}
}

func EmailNotifyPayloadFromMap(data map[string]interface{}) (*EmailNotifyPayload, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	var payload EmailNotifyPayload
	err = json.Unmarshal(jsonData, &payload)
	return &payload, err
}

// SocialPostPayload carries one social feed announcement.
type SocialPostPayload struct {
	ArticleID uint   `json:"article_id"`
	Text      string `json:"text"`
	Link      string `json:"link"`
}

func (p SocialPostPayload) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"article_id": p.ArticleID,
		"text":       p.Text,
		"link":       p.Link,
	}
}

func SocialPostPayloadFromMap(data map[string]interface{}) (*SocialPostPayload, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	var payload SocialPostPayload
	err = json.Unmarshal(jsonData, &payload)
	return &payload, err
}

// IsRetryable checks if the job can be retried
func (j *Job) IsRetryable() bool {
	return j.Status == JobStatusFailed && j.RetryCount < j.MaxRetries
}

// MarkAsProcessing updates the job status to processing
func (j *Job) MarkAsProcessing() {
	now := time.Now()
	j.Status = JobStatusProcessing
	j.UpdatedAt = now
	j.ProcessedAt = &now
}

// MarkAsCompleted updates the job status to completed
func (j *Job) MarkAsCompleted() {
	now := time.Now()
	j.Status = JobStatusCompleted
	j.UpdatedAt = now
	j.CompletedAt = &now
	j.ErrorMsg = ""
}

// MarkAsFailed updates the job status to failed
func (j *Job) MarkAsFailed(errorMsg string) {
	j.Status = JobStatusFailed
	j.UpdatedAt = time.Now()
	j.ErrorMsg = errorMsg
	j.RetryCount++
}

// MarkAsRetrying updates the job status to retrying
func (j *Job) MarkAsRetrying() {
	j.Status = JobStatusRetrying
	j.UpdatedAt = time.Now()
}
