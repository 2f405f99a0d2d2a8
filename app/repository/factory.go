package repository

import (
	"sync"

	"gorm.io/gorm"
)

// Factory manages repository instances and ensures they are singletons
type Factory struct {
	db    *gorm.DB
	repos *Repositories
	once  sync.Once
}

// NewFactory creates a new repository factory
func NewFactory(db *gorm.DB) *Factory {
	return &Factory{
		db: db,
	}
}

// GetRepositories returns a singleton instance of all repositories
func (f *Factory) GetRepositories() *Repositories {
	f.once.Do(func() {
		f.repos = NewRepositories(f.db)
	})
	return f.repos
}

// GetUserRepository returns the user repository instance
func (f *Factory) GetUserRepository() UserRepository {
	return f.GetRepositories().User
}

// GetPublicationRepository returns the publication repository instance
func (f *Factory) GetPublicationRepository() PublicationRepository {
	return f.GetRepositories().Publication
}

// GetArticleRepository returns the article repository instance
func (f *Factory) GetArticleRepository() ArticleRepository {
	return f.GetRepositories().Article
}

// GetSubscriptionRepository returns the subscription repository instance
func (f *Factory) GetSubscriptionRepository() SubscriptionRepository {
	return f.GetRepositories().Subscription
}

// GetJoinRequestRepository returns the join request repository instance
func (f *Factory) GetJoinRequestRepository() JoinRequestRepository {
	return f.GetRepositories().JoinRequest
}

// GetCommentRepository returns the comment repository instance
func (f *Factory) GetCommentRepository() CommentRepository {
	return f.GetRepositories().Comment
}

// GetRatingRepository returns the rating repository instance
func (f *Factory) GetRatingRepository() RatingRepository {
	return f.GetRepositories().Rating
}

// Global factory instance
var globalFactory *Factory
var factoryOnce sync.Once

// InitializeFactory initializes the global repository factory
func InitializeFactory(db *gorm.DB) {
	factoryOnce.Do(func() {
		globalFactory = NewFactory(db)
	})
}

// GetGlobalFactory returns the global repository factory instance
func GetGlobalFactory() *Factory {
	if globalFactory == nil {
		panic("Repository factory not initialized. Call InitializeFactory first.")
	}
	return globalFactory
}

// GetGlobalRepositories returns the global repositories instance
func GetGlobalRepositories() *Repositories {
	return GetGlobalFactory().GetRepositories()
}
