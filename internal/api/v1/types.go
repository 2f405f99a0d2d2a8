package apiv1

import (
	"time"

	"github.com/pressroom/newshub/app/models"
)

// Pong is the health check response
type Pong struct {
	Ping string `json:"ping"`
}

// TokenRequest is the credentials payload for POST /auth/token
type TokenRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse carries the issued bearer token
type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ArticleRequest is the create/update payload for articles
type ArticleRequest struct {
	Title         string `json:"title"`
	Content       string `json:"content"`
	Type          string `json:"type"`
	PublicationID *uint  `json:"publication_id,omitempty"`
}

// ArticleResponse is the public article shape
type ArticleResponse struct {
	ID            uint       `json:"id"`
	Title         string     `json:"title"`
	Slug          string     `json:"slug"`
	Type          string     `json:"type"`
	Status        string     `json:"status"`
	Content       string     `json:"content,omitempty"`
	Feedback      string     `json:"feedback,omitempty"`
	Author        string     `json:"author"`
	PublicationID *uint      `json:"publication_id,omitempty"`
	CoverImageURL string     `json:"cover_image_url,omitempty"`
	ViewCount     uint64     `json:"view_count"`
	PublishedAt   *time.Time `json:"published_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// RejectRequest carries editor feedback for a rejection
type RejectRequest struct {
	Feedback string `json:"feedback"`
}

// SubscribeRequest names exactly one follow target
type SubscribeRequest struct {
	PublicationID uint `json:"publication_id,omitempty"`
	JournalistID  uint `json:"journalist_id,omitempty"`
}

// JoinRequestRequest files a membership request
type JoinRequestRequest struct {
	PublicationID uint   `json:"publication_id"`
	Message       string `json:"message,omitempty"`
}

// JoinRequestResponse is the join request shape
type JoinRequestResponse struct {
	ID            uint       `json:"id"`
	PublicationID uint       `json:"publication_id"`
	UserID        uint       `json:"user_id"`
	Status        string     `json:"status"`
	Feedback      string     `json:"feedback,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	ReviewedAt    *time.Time `json:"reviewed_at,omitempty"`
}

// SubscriptionResponse is the subscription shape
type SubscriptionResponse struct {
	ID            uint      `json:"id"`
	PublicationID *uint     `json:"publication_id,omitempty"`
	JournalistID  *uint     `json:"journalist_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

func toArticleResponse(a *models.Article, includeBody bool) ArticleResponse {
	resp := ArticleResponse{
		ID:            a.ID,
		Title:         a.Title,
		Slug:          a.Slug,
		Type:          a.Type,
		Status:        a.Status,
		Author:        a.AuthorName(),
		PublicationID: a.PublicationID,
		CoverImageURL: a.CoverImageURL,
		ViewCount:     a.ViewCount,
		PublishedAt:   a.PublishedAt,
		CreatedAt:     a.CreatedAt,
	}
	if includeBody {
		resp.Content = a.Content
		resp.Feedback = a.Feedback
	}
	return resp
}

func toJoinRequestResponse(r *models.JoinRequest) JoinRequestResponse {
	return JoinRequestResponse{
		ID:            r.ID,
		PublicationID: r.PublicationID,
		UserID:        r.UserID,
		Status:        r.Status,
		Feedback:      r.Feedback,
		CreatedAt:     r.CreatedAt,
		ReviewedAt:    r.ReviewedAt,
	}
}

func toSubscriptionResponse(s *models.Subscription) SubscriptionResponse {
	return SubscriptionResponse{
		ID:            s.ID,
		PublicationID: s.PublicationID,
		JournalistID:  s.JournalistID,
		CreatedAt:     s.CreatedAt,
	}
}
