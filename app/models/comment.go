package models

import (
	"time"
)

// Comment is an append-only reader comment under an article.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ArticleID uint      `gorm:"index" json:"article_id"`
	Article   Article   `gorm:"foreignKey:ArticleID;constraint:OnDelete:CASCADE" json:"article,omitempty"`
	UserID    uint      `gorm:"index" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Text      string    `gorm:"type:text" json:"text" validate:"required,min=1"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for the Comment model
func (Comment) TableName() string {
	return "comments"
}
