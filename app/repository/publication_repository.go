package repository

import (
	"gorm.io/gorm"

	"github.com/pressroom/newshub/app/models"
)

// publicationRepository implements the PublicationRepository interface
type publicationRepository struct {
	db *gorm.DB
}

// NewPublicationRepository creates a new publication repository instance
func NewPublicationRepository(db *gorm.DB) PublicationRepository {
	return &publicationRepository{db: db}
}

// Create creates a new publication in the database
func (r *publicationRepository) Create(pub *models.Publication) error {
	return r.db.Create(pub).Error
}

// GetByID retrieves a publication by its ID with editors and members loaded
func (r *publicationRepository) GetByID(id uint) (*models.Publication, error) {
	var pub models.Publication
	err := r.db.Preload("Editors").Preload("Journalists").First(&pub, id).Error
	if err != nil {
		return nil, err
	}
	return &pub, nil
}

// GetByName retrieves a publication by its unique name
func (r *publicationRepository) GetByName(name string) (*models.Publication, error) {
	var pub models.Publication
	err := r.db.Preload("Editors").Where("name = ?", name).First(&pub).Error
	if err != nil {
		return nil, err
	}
	return &pub, nil
}

// GetAll retrieves publications with pagination
func (r *publicationRepository) GetAll(offset, limit int) ([]models.Publication, error) {
	var pubs []models.Publication
	err := r.db.Order("name").Offset(offset).Limit(limit).Find(&pubs).Error
	return pubs, err
}

// GetManagedBy retrieves the publications an editor manages
func (r *publicationRepository) GetManagedBy(editorID uint) ([]models.Publication, error) {
	var pubs []models.Publication
	err := r.db.Preload("Editors").
		Joins("JOIN publication_editors pe ON pe.publication_id = publications.id").
		Where("pe.user_id = ?", editorID).
		Order("publications.name").Find(&pubs).Error
	return pubs, err
}

// GetMemberships retrieves the publications a journalist writes for
func (r *publicationRepository) GetMemberships(journalistID uint) ([]models.Publication, error) {
	var pubs []models.Publication
	err := r.db.
		Joins("JOIN publication_journalists pj ON pj.publication_id = publications.id").
		Where("pj.user_id = ?", journalistID).
		Order("publications.name").Find(&pubs).Error
	return pubs, err
}

// Update updates an existing publication in the database
func (r *publicationRepository) Update(pub *models.Publication) error {
	return r.db.Save(pub).Error
}

// Delete soft deletes a publication by its ID
func (r *publicationRepository) Delete(id uint) error {
	return r.db.Delete(&models.Publication{}, id).Error
}

// Count returns the total number of publications
func (r *publicationRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Publication{}).Count(&count).Error
	return count, err
}

// AddJournalist adds a journalist to the publication's member list
func (r *publicationRepository) AddJournalist(publicationID, userID uint) error {
	return r.db.Model(&models.Publication{ID: publicationID}).
		Association("Journalists").Append(&models.User{ID: userID})
}

// RemoveJournalist removes a journalist from the publication's member list
func (r *publicationRepository) RemoveJournalist(publicationID, userID uint) error {
	return r.db.Model(&models.Publication{ID: publicationID}).
		Association("Journalists").Delete(&models.User{ID: userID})
}

// AddEditor adds an editor to the publication
func (r *publicationRepository) AddEditor(publicationID, userID uint) error {
	return r.db.Model(&models.Publication{ID: publicationID}).
		Association("Editors").Append(&models.User{ID: userID})
}

// NameExists checks if a publication name already exists
func (r *publicationRepository) NameExists(name string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Publication{}).Where("name = ?", name).Count(&count).Error
	return count > 0, err
}

// NameExistsExceptID checks if a name exists excluding a specific ID
func (r *publicationRepository) NameExistsExceptID(name string, id uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Publication{}).Where("name = ? AND id != ?", name, id).Count(&count).Error
	return count > 0, err
}
