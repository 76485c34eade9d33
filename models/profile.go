// models/profile.go
package models

import "time"

type Gender string

const (
	GenderMale           Gender = "Male"
	GenderFemale         Gender = "Female"
	GenderPreferNotToSay Gender = "Prefer not to say"
	GenderOther          Gender = "Other"
)

type CollegeLevel string

const (
	LevelUndergraduate CollegeLevel = "Undergraduate"
	LevelMasters       CollegeLevel = "Masters"
	LevelDoctorate     CollegeLevel = "Doctorate"
	LevelOther         CollegeLevel = "Other"
)

type ShirtSize string

const (
	ShirtXS  ShirtSize = "XS"
	ShirtS   ShirtSize = "S"
	ShirtM   ShirtSize = "M"
	ShirtL   ShirtSize = "L"
	ShirtXL  ShirtSize = "XL"
	ShirtXXL ShirtSize = "XXL"
)

// Profile is a participant's application. Users without one still appear in
// the directory with empty profile fields.
type Profile struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	EventID uint `gorm:"not null;uniqueIndex:idx_profiles_event_user" json:"event_id"`
	UserID  uint `gorm:"not null;uniqueIndex:idx_profiles_event_user" json:"user_id"`

	FirstName   string `gorm:"not null;size:100" json:"first_name"`
	LastName    string `gorm:"not null;size:100" json:"last_name"`
	DisplayName string `gorm:"size:100;index" json:"display_name"`

	Age            int          `json:"age"`
	School         string       `gorm:"size:200" json:"school"`
	College        string       `gorm:"size:50" json:"college,omitempty"`
	Level          CollegeLevel `gorm:"size:20" json:"level,omitempty"`
	GraduationYear int          `json:"graduation_year"`
	Gender         Gender       `gorm:"size:20" json:"gender"`
	Ethnicity      string       `gorm:"size:50" json:"ethnicity"`
	PhoneNumber    string       `gorm:"size:30" json:"phone_number"`
	Major          string       `gorm:"size:100" json:"major,omitempty"`

	GitHub  string `gorm:"size:200" json:"github"`
	Website string `gorm:"size:200" json:"website,omitempty"`

	// Keys into the resume and profile-picture buckets; empty until an
	// upload succeeds.
	ResumeKey  string `gorm:"size:100" json:"resume,omitempty"`
	PictureKey string `gorm:"size:100" json:"picture,omitempty"`

	DietaryRestrictions string    `gorm:"type:text" json:"dietary_restrictions,omitempty"`
	ShirtSize           ShirtSize `gorm:"size:10" json:"shirt_size,omitempty"`
	WantsHardware       bool      `gorm:"default:false" json:"wants_hardware"`

	// Cached sum of check-in points; authoritative source is the checkins
	// table, reconciled by LeaderboardService.RecomputePoints.
	TotalPoints int `gorm:"default:0;index" json:"total_points"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Profile) TableName() string {
	return "profiles"
}
