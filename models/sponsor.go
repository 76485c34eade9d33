// models/sponsor.go
package models

import "time"

// Sponsor is a company with recruiter accounts and optionally prizes.
type Sponsor struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	EventID   uint      `gorm:"not null;uniqueIndex:idx_sponsors_event_name" json:"event_id"`
	Name      string    `gorm:"not null;size:100;uniqueIndex:idx_sponsors_event_name" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Sponsor) TableName() string {
	return "sponsors"
}
