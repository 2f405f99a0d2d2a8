package models

import (
	"time"

	"gorm.io/gorm"
)

// Publication is a named news outlet. Editors manage it and approve content;
// journalists become members through reviewed join requests.
type Publication struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"uniqueIndex;type:varchar(150)" json:"name" validate:"required,min=3,max=150"`
	Description string         `gorm:"type:text" json:"description"`
	Editors     []User         `gorm:"many2many:publication_editors" json:"editors,omitempty"`
	Journalists []User         `gorm:"many2many:publication_journalists" json:"journalists,omitempty"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Publication model
func (Publication) TableName() string {
	return "publications"
}

// HasEditor reports whether the given user is among the loaded editor set.
func (p *Publication) HasEditor(userID uint) bool {
	for _, e := range p.Editors {
		if e.ID == userID {
			return true
		}
	}
	return false
}

// HasJournalist reports whether the given user is among the loaded members.
func (p *Publication) HasJournalist(userID uint) bool {
	for _, j := range p.Journalists {
		if j.ID == userID {
			return true
		}
	}
	return false
}

// EditorIDs returns the IDs of the loaded editor set.
func (p *Publication) EditorIDs() []uint {
	ids := make([]uint, 0, len(p.Editors))
	for _, e := range p.Editors {
		ids = append(ids, e.ID)
	}
	return ids
}
