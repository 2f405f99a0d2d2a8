package repository

import (
	"gorm.io/gorm"

	"github.com/pressroom/newshub/app/models"
)

// commentRepository implements the CommentRepository interface
type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new comment repository instance
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

// Create stores a new comment
func (r *commentRepository) Create(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

// GetByArticle retrieves an article's comments, oldest first
func (r *commentRepository) GetByArticle(articleID uint, offset, limit int) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.Preload("User").
		Where("article_id = ?", articleID).
		Order("created_at").Offset(offset).Limit(limit).Find(&comments).Error
	return comments, err
}

// CountByArticle counts the comments under an article
func (r *commentRepository) CountByArticle(articleID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Comment{}).Where("article_id = ?", articleID).Count(&count).Error
	return count, err
}

// Count returns the total number of comments
func (r *commentRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Comment{}).Count(&count).Error
	return count, err
}
