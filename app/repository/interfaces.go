package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/pressroom/newshub/app/models"
	"github.com/pressroom/newshub/internal/pkg/workflow"
)

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByActivationToken(token string) (*models.User, error)
	Update(user *models.User) error
	Delete(id uint) error
	List(offset, limit int) ([]models.User, error)
	Count() (int64, error)
	Search(query string) ([]models.User, error)
	ListJournalists(offset, limit int) ([]models.User, error)
}

// PublicationRepository defines the interface for publication-related operations
type PublicationRepository interface {
	Create(pub *models.Publication) error
	GetByID(id uint) (*models.Publication, error)
	GetByName(name string) (*models.Publication, error)
	GetAll(offset, limit int) ([]models.Publication, error)
	GetManagedBy(editorID uint) ([]models.Publication, error)
	GetMemberships(journalistID uint) ([]models.Publication, error)
	Update(pub *models.Publication) error
	Delete(id uint) error
	Count() (int64, error)
	AddJournalist(publicationID, userID uint) error
	RemoveJournalist(publicationID, userID uint) error
	AddEditor(publicationID, userID uint) error
	NameExists(name string) (bool, error)
	NameExistsExceptID(name string, id uint) (bool, error)
}

// ArticleRepository defines the interface for article-related operations
type ArticleRepository interface {
	Create(article *models.Article) error
	GetByID(id uint) (*models.Article, error)
	GetBySlug(slug string) (*models.Article, error)
	GetPublished(offset, limit int) ([]models.Article, error)
	GetPublishedByPublication(publicationID uint, offset, limit int) ([]models.Article, error)
	GetPublishedByAuthor(authorID uint, offset, limit int) ([]models.Article, error)
	GetByAuthor(authorID uint) ([]models.Article, error)
	GetPendingForPublications(publicationIDs []uint) ([]models.Article, error)
	GetPendingIndependent() ([]models.Article, error)
	Update(article *models.Article) error
	Delete(id uint) error
	Count() (int64, error)
	CountIndependentByAuthor(authorID uint) (int64, error)
	// PublishIfPending flips a pending article to published in one guarded
	// update. Returns a StateError when the article was not pending, which
	// makes concurrent approvals of the same submission publish once.
	PublishIfPending(id uint, publishedAt time.Time) error
	RejectIfPending(id uint, feedback string) error
}

// SubscriptionRepository defines the interface for subscription operations
type SubscriptionRepository interface {
	Create(sub *models.Subscription) error
	GetByID(id uint) (*models.Subscription, error)
	GetBySubscriber(subscriberID uint) ([]models.Subscription, error)
	GetTargetsBySubscriber(subscriberID uint) ([]workflow.SubscriptionTarget, error)
	GetForPublication(publicationID uint) ([]models.Subscription, error)
	GetForJournalist(journalistID uint) ([]models.Subscription, error)
	// GetForArticle resolves the full notification audience of an article:
	// publication subscribers plus author subscribers, with subscriber
	// accounts preloaded.
	GetForArticle(article *models.Article) ([]models.Subscription, error)
	Delete(id uint) error
	DeleteByTarget(subscriberID uint, target workflow.SubscriptionTarget) error
	CountForPublication(publicationID uint) (int64, error)
	CountForJournalist(journalistID uint) (int64, error)
}

// JoinRequestRepository defines the interface for join request operations
type JoinRequestRepository interface {
	Create(req *models.JoinRequest) error
	GetByID(id uint) (*models.JoinRequest, error)
	GetPendingForPublication(publicationID uint) ([]models.JoinRequest, error)
	GetPendingForPublications(publicationIDs []uint) ([]models.JoinRequest, error)
	GetByUser(userID uint) ([]models.JoinRequest, error)
	HasPending(publicationID, userID uint) (bool, error)
	Update(req *models.JoinRequest) error
}

// CommentRepository defines the interface for comment operations
type CommentRepository interface {
	Create(comment *models.Comment) error
	GetByArticle(articleID uint, offset, limit int) ([]models.Comment, error)
	CountByArticle(articleID uint) (int64, error)
	Count() (int64, error)
}

// RatingRepository defines the interface for rating operations
type RatingRepository interface {
	Upsert(userID, articleID uint, score int) error
	GetByArticleAndUser(articleID, userID uint) (*models.Rating, error)
	AverageForArticle(articleID uint) (float64, error)
	CountByArticle(articleID uint) (int64, error)
}

// Repositories struct holds all repository instances
type Repositories struct {
	User         UserRepository
	Publication  PublicationRepository
	Article      ArticleRepository
	Subscription SubscriptionRepository
	JoinRequest  JoinRequestRepository
	Comment      CommentRepository
	Rating       RatingRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Publication:  NewPublicationRepository(db),
		Article:      NewArticleRepository(db),
		Subscription: NewSubscriptionRepository(db),
		JoinRequest:  NewJoinRequestRepository(db),
		Comment:      NewCommentRepository(db),
		Rating:       NewRatingRepository(db),
	}
}
