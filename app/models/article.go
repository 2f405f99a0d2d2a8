package models

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"gorm.io/gorm"
)

const (
	STATUS_DRAFT            = "draft"
	STATUS_PENDING_APPROVAL = "pending_approval"
	STATUS_PUBLISHED        = "published"
	STATUS_REJECTED         = "rejected"

	TYPE_ARTICLE    = "article"
	TYPE_NEWSLETTER = "newsletter"
)

// Article is a piece of content written by a journalist: either a rich
// article or a plain-text newsletter. Publication-owned articles pass
// through editor review; independent content is published directly by
// its author.
type Article struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Title         string         `gorm:"type:varchar(300)" json:"title" validate:"required,min=3,max=300"`
	Slug          string         `gorm:"uniqueIndex;type:varchar(320)" json:"slug"`
	AuthorID      *uint          `gorm:"index" json:"author_id"`
	Author        *User          `gorm:"foreignKey:AuthorID;constraint:OnDelete:SET NULL" json:"author,omitempty"`
	PublicationID *uint          `gorm:"index" json:"publication_id"`
	Publication   *Publication   `gorm:"foreignKey:PublicationID;constraint:OnDelete:CASCADE" json:"publication,omitempty"`
	Type          string         `gorm:"type:varchar(20);default:'article'" json:"type" validate:"oneof=article newsletter"`
	Status        string         `gorm:"type:varchar(20);default:'draft'" json:"status" validate:"oneof=draft pending_approval published rejected"`
	Content       string         `gorm:"type:text" json:"content"`
	Feedback      string         `gorm:"type:text" json:"feedback"`
	CoverImageURL string         `gorm:"type:varchar(500)" json:"cover_image_url"`
	ViewCount     uint64         `gorm:"default:0" json:"view_count"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	PublishedAt   *time.Time     `gorm:"type:timestamp;default:null" json:"published_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Article model
func (Article) TableName() string {
	return "articles"
}

// BeforeCreate generates a unique slug when none was provided.
func (a *Article) BeforeCreate(tx *gorm.DB) error {
	if a.Slug == "" {
		a.Slug = GenerateSlug(a.Title, time.Now())
	}
	return nil
}

// GenerateSlug builds a URL-safe slug from the title plus a timestamp
// suffix so that two articles with the same title never collide.
func GenerateSlug(title string, now time.Time) string {
	return fmt.Sprintf("%s-%d", Slugify(title), now.Unix())
}

// Slugify lowercases the input and collapses every non-alphanumeric run
// into a single hyphen.
func Slugify(s string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastHyphen = false
		} else if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.Trim(b.String(), "-")
}

// IsIndependent reports whether the article has no owning publication.
func (a *Article) IsIndependent() bool {
	return a.PublicationID == nil
}

// IsNewsletter reports whether the content type is newsletter.
func (a *Article) IsNewsletter() bool {
	return a.Type == TYPE_NEWSLETTER
}

// AuthorName returns the author's byline, or "Unknown" when the author
// account was deleted.
func (a *Article) AuthorName() string {
	if a.Author == nil {
		return "Unknown"
	}
	return a.Author.FullName()
}

// AverageRating returns the mean score (1-5) across all ratings of the
// article, rounded to one decimal place, or 0 when unrated.
func (a *Article) AverageRating(db *gorm.DB) float64 {
	var avg *float64
	if err := db.Model(&Rating{}).Where("article_id = ?", a.ID).
		Select("AVG(score)").Scan(&avg).Error; err != nil || avg == nil {
		return 0
	}
	return float64(int(*avg*10+0.5)) / 10
}
