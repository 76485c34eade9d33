// models/checkin.go
package models

import "time"

// CheckinAccessLevel gates who may check in to an item.
type CheckinAccessLevel string

const (
	CheckinAccessAll          CheckinAccessLevel = "ALL"
	CheckinAccessSponsors     CheckinAccessLevel = "SPONSORS_ONLY"
	CheckinAccessParticipants CheckinAccessLevel = "PARTICIPANTS_ONLY"
	CheckinAccessAdmins       CheckinAccessLevel = "ADMINS_ONLY"
)

// CheckinItem is a scorable event activity.
type CheckinItem struct {
	ID                uint               `gorm:"primaryKey" json:"id"`
	EventID           uint               `gorm:"not null;index" json:"event_id"`
	Name              string             `gorm:"not null;size:200" json:"name"`
	Description       string             `gorm:"type:text" json:"description"`
	StartTime         int64              `json:"start_time"`
	EndTime           int64              `json:"end_time"`
	Points            int                `gorm:"default:0" json:"points"`
	AccessLevel       CheckinAccessLevel `gorm:"not null;default:'ALL';size:20" json:"access_level"`
	EnableSelfCheckin bool               `gorm:"default:false" json:"enable_self_checkin"`
	CreatedAt         time.Time          `json:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at"`
}

func (CheckinItem) TableName() string {
	return "checkin_items"
}

// Checkin marks a user's completion of an item. A user's leaderboard score is
// the sum of points over their checkins.
type Checkin struct {
	ID        uint         `gorm:"primaryKey" json:"id"`
	EventID   uint         `gorm:"not null;index" json:"event_id"`
	UserID    uint         `gorm:"not null;uniqueIndex:idx_checkins_user_item" json:"user_id"`
	ItemID    uint         `gorm:"not null;uniqueIndex:idx_checkins_user_item" json:"item_id"`
	Item      *CheckinItem `gorm:"foreignKey:ItemID" json:"item,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}

func (Checkin) TableName() string {
	return "checkins"
}
