package models

import (
	"time"

	"gorm.io/gorm"
)

// Rating is a 1-5 score a user gives an article; one rating per user and
// article, later scores overwrite the first.
type Rating struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ArticleID uint      `gorm:"index;uniqueIndex:idx_rating_once" json:"article_id"`
	Article   Article   `gorm:"foreignKey:ArticleID;constraint:OnDelete:CASCADE" json:"article,omitempty"`
	UserID    uint      `gorm:"uniqueIndex:idx_rating_once" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Score     int       `gorm:"type:smallint" json:"score" validate:"required,min=1,max=5"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for the Rating model
func (Rating) TableName() string {
	return "ratings"
}

// UpsertRating stores the user's score for an article, replacing any
// earlier score by the same user.
func UpsertRating(db *gorm.DB, userID, articleID uint, score int) error {
	var rating Rating
	result := db.Where("user_id = ? AND article_id = ?", userID, articleID).First(&rating)

	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			newRating := Rating{
				UserID:    userID,
				ArticleID: articleID,
				Score:     score,
			}
			return db.Create(&newRating).Error
		}
		return result.Error
	}

	return db.Model(&rating).Update("score", score).Error
}
