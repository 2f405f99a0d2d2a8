package repository

import (
	"gorm.io/gorm"

	"github.com/pressroom/newshub/app/models"
	"github.com/pressroom/newshub/internal/pkg/workflow"
)

// subscriptionRepository implements the SubscriptionRepository interface
type subscriptionRepository struct {
	db *gorm.DB
}

// NewSubscriptionRepository creates a new subscription repository instance
func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

// Create creates a new subscription in the database
func (r *subscriptionRepository) Create(sub *models.Subscription) error {
	return r.db.Create(sub).Error
}

// GetByID retrieves a subscription by its ID
func (r *subscriptionRepository) GetByID(id uint) (*models.Subscription, error) {
	var sub models.Subscription
	err := r.db.Preload("Publication").Preload("Journalist").First(&sub, id).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// GetBySubscriber retrieves all subscriptions of a reader
func (r *subscriptionRepository) GetBySubscriber(subscriberID uint) ([]models.Subscription, error) {
	var subs []models.Subscription
	err := r.db.Preload("Publication").Preload("Journalist").
		Where("subscriber_id = ?", subscriberID).
		Order("created_at DESC").Find(&subs).Error
	return subs, err
}

// GetTargetsBySubscriber returns a reader's subscriptions reduced to their targets
func (r *subscriptionRepository) GetTargetsBySubscriber(subscriberID uint) ([]workflow.SubscriptionTarget, error) {
	var subs []models.Subscription
	err := r.db.Where("subscriber_id = ?", subscriberID).Find(&subs).Error
	if err != nil {
		return nil, err
	}
	targets := make([]workflow.SubscriptionTarget, 0, len(subs))
	for i := range subs {
		targets = append(targets, workflow.TargetOf(&subs[i]))
	}
	return targets, nil
}

// GetForPublication retrieves all subscriptions targeting a publication
func (r *subscriptionRepository) GetForPublication(publicationID uint) ([]models.Subscription, error) {
	var subs []models.Subscription
	err := r.db.Preload("Subscriber").
		Where("publication_id = ?", publicationID).Find(&subs).Error
	return subs, err
}

// GetForJournalist retrieves all subscriptions targeting a journalist
func (r *subscriptionRepository) GetForJournalist(journalistID uint) ([]models.Subscription, error) {
	var subs []models.Subscription
	err := r.db.Preload("Subscriber").
		Where("journalist_id = ?", journalistID).Find(&subs).Error
	return subs, err
}

// GetForArticle resolves the notification audience of an article: readers
// following the owning publication plus readers following the author.
func (r *subscriptionRepository) GetForArticle(article *models.Article) ([]models.Subscription, error) {
	query := r.db.Preload("Subscriber")
	switch {
	case article.PublicationID != nil && article.AuthorID != nil:
		query = query.Where("publication_id = ? OR journalist_id = ?", *article.PublicationID, *article.AuthorID)
	case article.PublicationID != nil:
		query = query.Where("publication_id = ?", *article.PublicationID)
	case article.AuthorID != nil:
		query = query.Where("journalist_id = ?", *article.AuthorID)
	default:
		return nil, nil
	}

	var subs []models.Subscription
	err := query.Find(&subs).Error
	return subs, err
}

// Delete removes a subscription by its ID
func (r *subscriptionRepository) Delete(id uint) error {
	return r.db.Delete(&models.Subscription{}, id).Error
}

// DeleteByTarget removes a reader's subscription to the given target
func (r *subscriptionRepository) DeleteByTarget(subscriberID uint, target workflow.SubscriptionTarget) error {
	query := r.db.Where("subscriber_id = ?", subscriberID)
	if target.PublicationID != 0 {
		query = query.Where("publication_id = ?", target.PublicationID)
	} else {
		query = query.Where("journalist_id = ?", target.JournalistID)
	}
	return query.Delete(&models.Subscription{}).Error
}

// CountForPublication counts the subscribers of a publication
func (r *subscriptionRepository) CountForPublication(publicationID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Subscription{}).
		Where("publication_id = ?", publicationID).Count(&count).Error
	return count, err
}

// CountForJournalist counts the followers of a journalist
func (r *subscriptionRepository) CountForJournalist(journalistID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Subscription{}).
		Where("journalist_id = ?", journalistID).Count(&count).Error
	return count, err
}
