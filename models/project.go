// models/project.go
package models

import "time"

// Project is a team's submission. One per team.
type Project struct {
	ID                   uint      `gorm:"primaryKey" json:"id"`
	EventID              uint      `gorm:"not null;uniqueIndex:idx_projects_event_team" json:"event_id"`
	TeamID               uint      `gorm:"not null;uniqueIndex:idx_projects_event_team" json:"team_id"`
	Team                 *Team     `gorm:"foreignKey:TeamID" json:"team,omitempty"`
	Name                 string    `gorm:"not null;size:200" json:"name"`
	Description          string    `gorm:"type:text" json:"description"`
	URL                  string    `gorm:"size:300" json:"url,omitempty"`
	Slides               string    `gorm:"size:300" json:"slides,omitempty"`
	Video                string    `gorm:"size:300" json:"video,omitempty"`
	PresentingVirtually  bool      `gorm:"default:false" json:"presenting_virtually"`
	Prizes               []Prize   `gorm:"many2many:project_prizes" json:"prizes,omitempty"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

func (Project) TableName() string {
	return "projects"
}

// Prize is awarded by a sponsor for eligible projects.
type Prize struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	EventID     uint      `gorm:"not null;index" json:"event_id"`
	Name        string    `gorm:"not null;size:200" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Eligibility string    `gorm:"type:text" json:"eligibility,omitempty"`
	ProviderID  *uint     `json:"provider,omitempty"`
	Provider    *Sponsor  `gorm:"foreignKey:ProviderID" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Prize) TableName() string {
	return "prizes"
}
