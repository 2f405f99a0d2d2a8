package repository

import (
	"gorm.io/gorm"

	"github.com/pressroom/newshub/app/models"
)

// ratingRepository implements the RatingRepository interface
type ratingRepository struct {
	db *gorm.DB
}

// NewRatingRepository creates a new rating repository instance
func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

// Upsert stores the user's score, replacing any earlier one
func (r *ratingRepository) Upsert(userID, articleID uint, score int) error {
	return models.UpsertRating(r.db, userID, articleID, score)
}

// GetByArticleAndUser retrieves a user's rating of an article
func (r *ratingRepository) GetByArticleAndUser(articleID, userID uint) (*models.Rating, error) {
	var rating models.Rating
	err := r.db.Where("article_id = ? AND user_id = ?", articleID, userID).First(&rating).Error
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

// AverageForArticle returns the mean score rounded to one decimal, or 0
func (r *ratingRepository) AverageForArticle(articleID uint) (float64, error) {
	var avg *float64
	err := r.db.Model(&models.Rating{}).Where("article_id = ?", articleID).
		Select("AVG(score)").Scan(&avg).Error
	if err != nil {
		return 0, err
	}
	if avg == nil {
		return 0, nil
	}
	return float64(int(*avg*10+0.5)) / 10, nil
}

// CountByArticle counts the ratings of an article
func (r *ratingRepository) CountByArticle(articleID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Rating{}).Where("article_id = ?", articleID).Count(&count).Error
	return count, err
}
