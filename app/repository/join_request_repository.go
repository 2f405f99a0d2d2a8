package repository

import (
	"gorm.io/gorm"

	"github.com/pressroom/newshub/app/models"
)

// joinRequestRepository implements the JoinRequestRepository interface
type joinRequestRepository struct {
	db *gorm.DB
}

// NewJoinRequestRepository creates a new join request repository instance
func NewJoinRequestRepository(db *gorm.DB) JoinRequestRepository {
	return &joinRequestRepository{db: db}
}

// Create creates a new join request in the database
func (r *joinRequestRepository) Create(req *models.JoinRequest) error {
	return r.db.Create(req).Error
}

// GetByID retrieves a join request by its ID
func (r *joinRequestRepository) GetByID(id uint) (*models.JoinRequest, error) {
	var req models.JoinRequest
	err := r.db.Preload("User").Preload("Publication").Preload("Publication.Editors").
		First(&req, id).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// GetPendingForPublication retrieves the pending requests of one publication
func (r *joinRequestRepository) GetPendingForPublication(publicationID uint) ([]models.JoinRequest, error) {
	var reqs []models.JoinRequest
	err := r.db.Preload("User").
		Where("publication_id = ? AND status = ?", publicationID, models.JOIN_STATUS_PENDING).
		Order("created_at").Find(&reqs).Error
	return reqs, err
}

// GetPendingForPublications retrieves the pending requests across publications
func (r *joinRequestRepository) GetPendingForPublications(publicationIDs []uint) ([]models.JoinRequest, error) {
	if len(publicationIDs) == 0 {
		return nil, nil
	}
	var reqs []models.JoinRequest
	err := r.db.Preload("User").Preload("Publication").
		Where("publication_id IN ? AND status = ?", publicationIDs, models.JOIN_STATUS_PENDING).
		Order("created_at").Find(&reqs).Error
	return reqs, err
}

// GetByUser retrieves all requests a journalist has filed
func (r *joinRequestRepository) GetByUser(userID uint) ([]models.JoinRequest, error) {
	var reqs []models.JoinRequest
	err := r.db.Preload("Publication").
		Where("user_id = ?", userID).
		Order("created_at DESC").Find(&reqs).Error
	return reqs, err
}

// HasPending checks whether the user already has an open request for the publication
func (r *joinRequestRepository) HasPending(publicationID, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.JoinRequest{}).
		Where("publication_id = ? AND user_id = ? AND status = ?",
			publicationID, userID, models.JOIN_STATUS_PENDING).
		Count(&count).Error
	return count > 0, err
}

// Update updates an existing join request in the database
func (r *joinRequestRepository) Update(req *models.JoinRequest) error {
	return r.db.Save(req).Error
}
