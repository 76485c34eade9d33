// models/team.go
package models

import "time"

type Team struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	EventID     uint   `gorm:"not null;index;uniqueIndex:idx_teams_event_name" json:"event_id"`
	Name        string `gorm:"not null;size:100;uniqueIndex:idx_teams_event_name" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	AdminID     uint   `gorm:"not null" json:"admin_id"`
	Admin       *User  `gorm:"foreignKey:AdminID" json:"admin,omitempty"`

	// Visible teams show up in listings and accept join requests.
	Visible bool `gorm:"default:true" json:"visible"`

	Members []TeamMember `gorm:"foreignKey:TeamID" json:"members,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Team) TableName() string {
	return "teams"
}

// TeamMember is one membership row. A user belongs to at most one team per
// event; the team admin is always also a member.
type TeamMember struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	EventID  uint      `gorm:"not null;uniqueIndex:idx_team_members_event_user" json:"event_id"`
	TeamID   uint      `gorm:"not null;index" json:"team_id"`
	UserID   uint      `gorm:"not null;uniqueIndex:idx_team_members_event_user" json:"user_id"`
	User     *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	JoinedAt time.Time `gorm:"not null" json:"joined_at"`
}

func (TeamMember) TableName() string {
	return "team_members"
}

type TeamRequestType string

const (
	TeamRequestInvite TeamRequestType = "INVITE"
	TeamRequestJoin   TeamRequestType = "JOIN"
)

type TeamRequestStatus string

const (
	TeamRequestPending   TeamRequestStatus = "PENDING"
	TeamRequestAccepted  TeamRequestStatus = "ACCEPTED"
	TeamRequestDeclined  TeamRequestStatus = "DECLINED"
	TeamRequestCancelled TeamRequestStatus = "CANCELLED"
)

// Terminal reports whether the request can no longer change state.
func (s TeamRequestStatus) Terminal() bool {
	return s != TeamRequestPending
}

// TeamRequest is a pending INVITE (team admin -> user) or JOIN
// (user -> team). Resolution is single-use: once accepted, declined or
// cancelled the request is never reopened.
type TeamRequest struct {
	ID      uint              `gorm:"primaryKey" json:"id"`
	EventID uint              `gorm:"not null;index" json:"event_id"`
	Type    TeamRequestType   `gorm:"not null;size:10" json:"type"`
	Status  TeamRequestStatus `gorm:"not null;default:'PENDING';size:10;index" json:"status"`
	UserID  uint              `gorm:"not null;index" json:"user_id"`
	User    *User             `gorm:"foreignKey:UserID" json:"user,omitempty"`
	TeamID  uint              `gorm:"not null;index" json:"team_id"`
	Team    *Team             `gorm:"foreignKey:TeamID" json:"team,omitempty"`
	Message string            `gorm:"type:text" json:"message,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (TeamRequest) TableName() string {
	return "team_requests"
}
