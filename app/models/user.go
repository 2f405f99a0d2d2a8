package models

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	ROLE_READER     = "reader"
	ROLE_JOURNALIST = "journalist"
	ROLE_EDITOR     = "editor"

	STATUS_ACTIVE   = "active"
	STATUS_INACTIVE = "inactive"
	STATUS_DISABLED = "disabled"
)

type User struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	Email            string         `gorm:"uniqueIndex;type:varchar(200) CHARACTER SET utf8 COLLATE utf8_bin" json:"email" validate:"required,email,min=5,max=200"`
	Password         string         `gorm:"type:text" json:"-" validate:"required,min=6"`
	Role             string         `gorm:"type:varchar(20);default:'reader'" json:"role" validate:"oneof=reader journalist editor"`
	Status           string         `gorm:"type:varchar(50);default:'active'" json:"status" validate:"oneof=active inactive disabled"`
	FirstName        string         `gorm:"type:varchar(30)" json:"first_name" validate:"required,max=30"`
	LastName         string         `gorm:"type:varchar(30)" json:"last_name" validate:"required,max=30"`
	DisplayName      string         `gorm:"type:varchar(100);default:null" json:"display_name" validate:"max=100"`
	ActivationToken  string         `gorm:"type:varchar(100);index" json:"-"`
	ActivationSentAt *time.Time     `gorm:"type:timestamp;default:null" json:"-"`
	LastLoginAt      *time.Time     `gorm:"type:timestamp;default:null" json:"last_login_at"`
	CreatedAt        time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

func (u *User) Validate() error {
	v := validator.New()

	return v.Struct(u)
}

// CreateUser builds a new inactive user with a hashed password. The role must
// be one of the reader/journalist/editor constants; editors are only created
// through publication ownership, never via sign-up.
func CreateUser(email, password, firstName, lastName, role string) (*User, error) {
	pw, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	u := &User{
		Email:     email,
		Password:  pw,
		Role:      role,
		Status:    STATUS_INACTIVE,
		FirstName: firstName,
		LastName:  lastName,
	}

	err = u.Validate()
	if err != nil {
		return nil, err
	}

	return u, nil
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	return string(bytes), err
}

// CheckPasswordHash compares the given password with the stored hash.
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))

	return err == nil
}

// CheckPassword verifies if the provided password matches the user's stored password
func (u *User) CheckPassword(password string) bool {
	return CheckPasswordHash(password, u.Password)
}

// SetPassword hashes and sets a new password for the user
func (u *User) SetPassword(password string) error {
	hashedPassword, err := HashPassword(password)
	if err != nil {
		return err
	}
	u.Password = hashedPassword
	return nil
}

// GenerateActivationToken creates a random token and sets ActivationSentAt
func (u *User) GenerateActivationToken() error {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return err
	}
	u.ActivationToken = hex.EncodeToString(b)
	now := time.Now()
	u.ActivationSentAt = &now
	return nil
}

// IsActive reports whether the user status is active
func (u *User) IsActive() bool {
	return u.Status == STATUS_ACTIVE
}

func (u *User) IsReader() bool {
	return u.Role == ROLE_READER
}

func (u *User) IsJournalist() bool {
	return u.Role == ROLE_JOURNALIST
}

func (u *User) IsEditor() bool {
	return u.Role == ROLE_EDITOR
}

// FullName joins first and last name for article bylines.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// EffectiveDisplayName is the name shown on comments: the chosen display
// name when set, the full name otherwise.
func (u *User) EffectiveDisplayName() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.FullName()
}
