// services/checkin_service.go - Check-in items and completions
package services

import (
	"time"

	"hackreg/models"
	"hackreg/utils"

	"gorm.io/gorm"
)

// CheckinService manages scorable activities and per-user completions.
type CheckinService struct {
	db     *gorm.DB
	events *EventService
}

func NewCheckinService(db *gorm.DB, events *EventService) *CheckinService {
	return &CheckinService{db: db, events: events}
}

// CreateItem registers a new scorable activity. Admin only (enforced at the
// handler).
func (s *CheckinService) CreateItem(item *models.CheckinItem) (*models.CheckinItem, error) {
	event, err := s.events.CurrentEvent()
	if err != nil {
		return nil, err
	}
	if item.Name == "" {
		return nil, utils.Bad("Check-in item name is required")
	}
	if item.Points < 0 {
		return nil, utils.Bad("Check-in item points cannot be negative")
	}
	item.EventID = event.ID
	if item.AccessLevel == "" {
		item.AccessLevel = models.CheckinAccessAll
	}
	if err := s.db.Create(item).Error; err != nil {
		return nil, utils.ServerErr("failed to create check-in item")
	}
	return item, nil
}

// UpdateItem applies a partial update to an item.
func (s *CheckinService) UpdateItem(itemID uint, patch map[string]interface{}) (*models.CheckinItem, error) {
	item, err := s.GetItem(itemID)
	if err != nil {
		return nil, err
	}
	if err := s.db.Model(item).Updates(patch).Error; err != nil {
		return nil, utils.ServerErr("failed to update check-in item")
	}
	return s.GetItem(itemID)
}

// GetItem returns one item by ID.
func (s *CheckinService) GetItem(itemID uint) (*models.CheckinItem, error) {
	var item models.CheckinItem
	if err := s.db.First(&item, itemID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, utils.NotFound("Check-in item not found")
		}
		return nil, utils.ServerErr("failed to load check-in item")
	}
	return &item, nil
}

// ListItems returns all items for the current event.
func (s *CheckinService) ListItems() ([]models.CheckinItem, error) {
	event, err := s.events.CurrentEvent()
	if err != nil {
		return nil, err
	}
	var items []models.CheckinItem
	if err := s.db.Where("event_id = ?", event.ID).Order("start_time ASC").Find(&items).Error; err != nil {
		return nil, utils.ServerErr("failed to list check-in items")
	}
	return items, nil
}

// DeleteItem removes an item and its check-ins.
func (s *CheckinService) DeleteItem(itemID uint) error {
	if _, err := s.GetItem(itemID); err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("item_id = ?", itemID).Delete(&models.Checkin{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.CheckinItem{}, itemID).Error
	})
}

// CheckIn records user completion of an item and credits its points to the
// profile's cached total in the same transaction. Duplicate check-ins and
// closed windows are rejected; access level gates who may be checked in.
func (s *CheckinService) CheckIn(user *models.User, itemID uint, self bool) (*models.Checkin, error) {
	event, err := s.events.CurrentEvent()
	if err != nil {
		return nil, err
	}

	item, err := s.GetItem(itemID)
	if err != nil {
		return nil, err
	}

	if self && !item.EnableSelfCheckin {
		return nil, utils.Bad("Self check-in is disabled for this item")
	}

	now := time.Now().UnixMilli()
	if item.StartTime != 0 && now < item.StartTime {
		return nil, utils.Bad("Check-in has not opened yet")
	}
	if item.EndTime != 0 && now > item.EndTime {
		return nil, utils.Bad("Check-in has closed")
	}

	if err := checkAccessLevel(item.AccessLevel, user); err != nil {
		return nil, err
	}

	checkin := &models.Checkin{
		EventID: event.ID,
		UserID:  user.ID,
		ItemID:  item.ID,
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		tx.Model(&models.Checkin{}).
			Where("user_id = ? AND item_id = ?", user.ID, item.ID).
			Count(&count)
		if count > 0 {
			return utils.Bad("Already checked in to this item")
		}
		if err := tx.Create(checkin).Error; err != nil {
			return err
		}
		return tx.Model(&models.Profile{}).
			Where("event_id = ? AND user_id = ?", event.ID, user.ID).
			Update("total_points", gorm.Expr("total_points + ?", item.Points)).Error
	})
	if err != nil {
		if utils.IsValidation(err) {
			return nil, err
		}
		return nil, utils.ServerErr("failed to record check-in")
	}
	return checkin, nil
}

// History returns a user's check-ins with items preloaded.
func (s *CheckinService) History(userID uint) ([]models.Checkin, error) {
	var checkins []models.Checkin
	err := s.db.Where("user_id = ?", userID).
		Preload("Item").
		Order("created_at DESC").
		Find(&checkins).Error
	if err != nil {
		return nil, utils.ServerErr("failed to load check-in history")
	}
	return checkins, nil
}

func checkAccessLevel(level models.CheckinAccessLevel, user *models.User) error {
	switch level {
	case models.CheckinAccessAll, "":
		return nil
	case models.CheckinAccessAdmins:
		if !user.IsAdmin {
			return utils.Unauthorized("This item is restricted to admins")
		}
	case models.CheckinAccessSponsors:
		if !user.IsRecruiter() && !user.IsAdmin {
			return utils.Unauthorized("This item is restricted to sponsors")
		}
	case models.CheckinAccessParticipants:
		if user.IsRecruiter() {
			return utils.Unauthorized("This item is restricted to participants")
		}
	default:
		return utils.Bad("Unknown access level")
	}
	return nil
}
