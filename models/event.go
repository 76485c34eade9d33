// models/event.go - Event and Settings singletons
package models

import "time"

// Event is the hackathon being run. The backend serves exactly one at a time;
// the row is resolved once at startup and cached behind services.CurrentEvent.
type Event struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Name           string    `gorm:"uniqueIndex;not null;size:100" json:"name"`
	Website        string    `json:"website"`
	EnableCheckin  bool      `gorm:"default:true" json:"enable_checkin"`
	EnableProjects bool      `gorm:"default:true" json:"enable_projects"`
	EnableTeams    bool      `gorm:"default:true" json:"enable_teams"`
	EnableSponsors bool      `gorm:"default:true" json:"enable_sponsors"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (Event) TableName() string {
	return "events"
}

// Settings is the singleton configuration row for the current event.
// Times are unix milliseconds; zero means "no bound".
type Settings struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	MaxTeamSize       int       `gorm:"not null;default:4" json:"max_team_size"`
	TimeOpen          int64     `gorm:"default:0" json:"time_open"`
	TimeClose         int64     `gorm:"default:0" json:"time_close"`
	TimeConfirm       int64     `gorm:"default:0" json:"time_confirm"`
	EnableWhitelist   bool      `gorm:"default:false" json:"enable_whitelist"`
	WhitelistedEmails string    `gorm:"type:text" json:"whitelisted_emails"` // comma-separated domains
	WaitlistText      string    `gorm:"type:text" json:"waitlist_text"`
	AcceptanceText    string    `gorm:"type:text" json:"acceptance_text"`
	ConfirmationText  string    `gorm:"type:text" json:"confirmation_text"`
	AllowMinors       bool      `gorm:"default:false" json:"allow_minors"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (Settings) TableName() string {
	return "settings"
}

// IsRegistrationOpen reports whether new participants may register now.
func (s *Settings) IsRegistrationOpen(now time.Time) bool {
	ts := now.UnixMilli()
	open := s.TimeOpen == 0 || s.TimeOpen <= ts
	closed := s.TimeClose != 0 && ts > s.TimeClose
	return open && !closed
}

// IsConfirmationOpen reports whether admitted participants may still confirm.
func (s *Settings) IsConfirmationOpen(now time.Time) bool {
	ts := now.UnixMilli()
	open := s.TimeOpen == 0 || s.TimeOpen <= ts
	closed := s.TimeConfirm != 0 && ts > s.TimeConfirm
	return open && !closed
}
