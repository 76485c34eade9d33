// models/user.go
package models

import (
	"time"
)

type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`
	Name     string `json:"name"`
	IsAdmin  bool   `gorm:"default:false" json:"admin"`
	IsJudge  bool   `gorm:"default:false" json:"judge"`

	// A company reference marks the user as a recruiter. Recruiters are
	// excluded from participant listings and team eligibility.
	CompanyID *uint    `gorm:"index" json:"company,omitempty"`
	Company   *Sponsor `gorm:"foreignKey:CompanyID" json:"-"`

	Status Status `gorm:"not null;default:'UNVERIFIED';size:20" json:"status"`

	VerificationCode   string     `json:"-"`
	VerificationExpiry *time.Time `json:"-"`
	LastLogin          *time.Time `json:"last_login,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// IsRecruiter reports whether this account belongs to a sponsor company.
func (u *User) IsRecruiter() bool {
	return u.CompanyID != nil
}

// HasStatus reports whether the user's current status implies the given one.
func (u *User) HasStatus(s Status) bool {
	return StatusImplies(u.Status, s)
}

// StatusChange is the audit record stamped by every status transition.
// Admission decisions also record who made them.
type StatusChange struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	EventID     uint      `gorm:"not null;index" json:"event_id"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	Status      Status    `gorm:"not null;size:20" json:"status"`
	AdmittedBy  *uint     `json:"admitted_by,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func (StatusChange) TableName() string {
	return "status_changes"
}
