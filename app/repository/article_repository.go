package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/pressroom/newshub/app/models"
	"github.com/pressroom/newshub/internal/pkg/workflow"
)

// articleRepository implements the ArticleRepository interface
type articleRepository struct {
	db *gorm.DB
}

// NewArticleRepository creates a new article repository instance
func NewArticleRepository(db *gorm.DB) ArticleRepository {
	return &articleRepository{db: db}
}

// Create creates a new article in the database
func (r *articleRepository) Create(article *models.Article) error {
	return r.db.Create(article).Error
}

// GetByID retrieves an article by its ID
func (r *articleRepository) GetByID(id uint) (*models.Article, error) {
	var article models.Article
	err := r.db.Preload("Author").Preload("Publication").Preload("Publication.Editors").
		First(&article, id).Error
	if err != nil {
		return nil, err
	}
	return &article, nil
}

// GetBySlug retrieves an article by its slug
func (r *articleRepository) GetBySlug(slug string) (*models.Article, error) {
	var article models.Article
	err := r.db.Preload("Author").Preload("Publication").
		Where("slug = ?", slug).First(&article).Error
	if err != nil {
		return nil, err
	}
	return &article, nil
}

// GetPublished retrieves published articles, newest first
func (r *articleRepository) GetPublished(offset, limit int) ([]models.Article, error) {
	var articles []models.Article
	err := r.db.Preload("Author").Preload("Publication").
		Where("status = ?", models.STATUS_PUBLISHED).
		Order("published_at DESC").Offset(offset).Limit(limit).Find(&articles).Error
	return articles, err
}

// GetPublishedByPublication retrieves a publication's published articles
func (r *articleRepository) GetPublishedByPublication(publicationID uint, offset, limit int) ([]models.Article, error) {
	var articles []models.Article
	err := r.db.Preload("Author").
		Where("status = ? AND publication_id = ?", models.STATUS_PUBLISHED, publicationID).
		Order("published_at DESC").Offset(offset).Limit(limit).Find(&articles).Error
	return articles, err
}

// GetPublishedByAuthor retrieves an author's published articles
func (r *articleRepository) GetPublishedByAuthor(authorID uint, offset, limit int) ([]models.Article, error) {
	var articles []models.Article
	err := r.db.Preload("Author").Preload("Publication").
		Where("status = ? AND author_id = ?", models.STATUS_PUBLISHED, authorID).
		Order("published_at DESC").Offset(offset).Limit(limit).Find(&articles).Error
	return articles, err
}

// GetByAuthor retrieves all articles of an author regardless of status
func (r *articleRepository) GetByAuthor(authorID uint) ([]models.Article, error) {
	var articles []models.Article
	err := r.db.Preload("Publication").
		Where("author_id = ?", authorID).
		Order("updated_at DESC").Find(&articles).Error
	return articles, err
}

// GetPendingForPublications retrieves the review queue for a set of publications
func (r *articleRepository) GetPendingForPublications(publicationIDs []uint) ([]models.Article, error) {
	if len(publicationIDs) == 0 {
		return nil, nil
	}
	var articles []models.Article
	err := r.db.Preload("Author").Preload("Publication").
		Where("status = ? AND publication_id IN ?", models.STATUS_PENDING_APPROVAL, publicationIDs).
		Order("created_at").Find(&articles).Error
	return articles, err
}

// GetPendingIndependent retrieves pending content with no owning publication
func (r *articleRepository) GetPendingIndependent() ([]models.Article, error) {
	var articles []models.Article
	err := r.db.Preload("Author").
		Where("status = ? AND publication_id IS NULL", models.STATUS_PENDING_APPROVAL).
		Order("created_at").Find(&articles).Error
	return articles, err
}

// Update updates an existing article in the database
func (r *articleRepository) Update(article *models.Article) error {
	return r.db.Save(article).Error
}

// Delete soft deletes an article by its ID
func (r *articleRepository) Delete(id uint) error {
	return r.db.Delete(&models.Article{}, id).Error
}

// Count returns the total number of articles
func (r *articleRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Article{}).Count(&count).Error
	return count, err
}

// CountIndependentByAuthor counts an author's articles outside any publication
func (r *articleRepository) CountIndependentByAuthor(authorID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Article{}).
		Where("author_id = ? AND publication_id IS NULL", authorID).Count(&count).Error
	return count, err
}

// PublishIfPending publishes via a guarded update so that two concurrent
// approvals cannot both succeed: only the update that still sees the
// pending status flips the row, the loser gets a StateError.
func (r *articleRepository) PublishIfPending(id uint, publishedAt time.Time) error {
	result := r.db.Model(&models.Article{}).
		Where("id = ? AND status = ?", id, models.STATUS_PENDING_APPROVAL).
		Updates(map[string]interface{}{
			"status":       models.STATUS_PUBLISHED,
			"published_at": publishedAt,
			"feedback":     "",
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return &workflow.StateError{Entity: "article", From: "unknown", To: models.STATUS_PUBLISHED}
	}
	return nil
}

// RejectIfPending records a rejection with the same pending-only guard.
func (r *articleRepository) RejectIfPending(id uint, feedback string) error {
	result := r.db.Model(&models.Article{}).
		Where("id = ? AND status = ?", id, models.STATUS_PENDING_APPROVAL).
		Updates(map[string]interface{}{
			"status":   models.STATUS_REJECTED,
			"feedback": feedback,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return &workflow.StateError{Entity: "article", From: "unknown", To: models.STATUS_REJECTED}
	}
	return nil
}
