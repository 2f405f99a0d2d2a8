package models

import (
	"time"
)

const (
	JOIN_STATUS_PENDING  = "pending"
	JOIN_STATUS_APPROVED = "approved"
	JOIN_STATUS_REJECTED = "rejected"
)

// JoinRequest is a journalist's request to write for a publication.
// It is reviewed exactly once by one of the publication's editors.
type JoinRequest struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	PublicationID uint        `gorm:"index;constraint:OnDelete:CASCADE" json:"publication_id"`
	Publication   Publication `gorm:"foreignKey:PublicationID;constraint:OnDelete:CASCADE" json:"publication,omitempty"`
	UserID        uint        `gorm:"index" json:"user_id"`
	User          User        `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Message       string      `gorm:"type:text" json:"message"`
	Status        string      `gorm:"type:varchar(20);default:'pending'" json:"status" validate:"oneof=pending approved rejected"`
	Feedback      string      `gorm:"type:text" json:"feedback"`
	CreatedAt     time.Time   `gorm:"autoCreateTime" json:"created_at"`
	ReviewedAt    *time.Time  `gorm:"type:timestamp;default:null" json:"reviewed_at"`
}

// TableName specifies the table name for the JoinRequest model
func (JoinRequest) TableName() string {
	return "join_requests"
}

// IsPending reports whether the request still awaits review.
func (r *JoinRequest) IsPending() bool {
	return r.Status == JOIN_STATUS_PENDING
}
