package models

import (
	"time"
)

// Subscription is a reader's follow relationship to exactly one target:
// a publication or an individual journalist, never both.
//
// Uniqueness is one key per target column: MySQL treats NULLs as
// distinct inside a unique key, so a single key spanning both nullable
// columns would let duplicate rows through. Each target key pairs the
// subscriber with a column that is non-NULL for that subscription
// shape, which makes concurrent duplicate submits lose at the database.
type Subscription struct {
	ID            uint         `gorm:"primaryKey" json:"id"`
	SubscriberID  uint         `gorm:"uniqueIndex:idx_sub_publication;uniqueIndex:idx_sub_journalist" json:"subscriber_id"`
	Subscriber    User         `gorm:"foreignKey:SubscriberID;constraint:OnDelete:CASCADE" json:"subscriber,omitempty"`
	PublicationID *uint        `gorm:"uniqueIndex:idx_sub_publication" json:"publication_id"`
	Publication   *Publication `gorm:"foreignKey:PublicationID;constraint:OnDelete:CASCADE" json:"publication,omitempty"`
	JournalistID  *uint        `gorm:"uniqueIndex:idx_sub_journalist" json:"journalist_id"`
	Journalist    *User        `gorm:"foreignKey:JournalistID;constraint:OnDelete:CASCADE" json:"journalist,omitempty"`
	CreatedAt     time.Time    `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for the Subscription model
func (Subscription) TableName() string {
	return "subscriptions"
}

// TargetPublicationID returns the publication target, or 0.
func (s *Subscription) TargetPublicationID() uint {
	if s.PublicationID != nil {
		return *s.PublicationID
	}
	return 0
}

// TargetJournalistID returns the journalist target, or 0.
func (s *Subscription) TargetJournalistID() uint {
	if s.JournalistID != nil {
		return *s.JournalistID
	}
	return 0
}
