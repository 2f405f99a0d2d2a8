package models

import (
	"time"
)

// ProviderAccount links a local user to an external OAuth identity.
type ProviderAccount struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	UserID         uint       `gorm:"index" json:"user_id"`
	User           User       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Provider       string     `gorm:"type:varchar(50);uniqueIndex:idx_provider_account" json:"provider"`
	ProviderUserID string     `gorm:"type:varchar(191);uniqueIndex:idx_provider_account" json:"provider_user_id"`
	AccessToken    string     `gorm:"type:text" json:"-"`
	RefreshToken   string     `gorm:"type:text" json:"-"`
	ExpiresAt      *time.Time `gorm:"type:timestamp;default:null" json:"-"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for the ProviderAccount model
func (ProviderAccount) TableName() string {
	return "provider_accounts"
}
