// services/event_service.go - Current event and settings singletons
package services

import (
	"os"
	"sync"
	"time"

	"hackreg/models"
	"hackreg/utils"

	"gorm.io/gorm"
)

// EventService resolves the single event this backend serves and its
// settings row. The event is read-mostly and memoized; concurrent first
// accesses all compute the same value, so the race is benign but still
// guarded by a mutex rather than a bare global.
type EventService struct {
	db *gorm.DB

	mu     sync.Mutex
	cached *models.Event
}

func NewEventService(db *gorm.DB) *EventService {
	return &EventService{db: db}
}

// CurrentEvent returns the event row, creating it on first run.
func (s *EventService) CurrentEvent() (*models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cached != nil {
		return s.cached, nil
	}

	name := os.Getenv("EVENT_NAME")
	if name == "" {
		name = "TartanHacks"
	}

	var event models.Event
	err := s.db.Where("name = ?", name).First(&event).Error
	if err == gorm.ErrRecordNotFound {
		event = models.Event{
			Name:           name,
			Website:        os.Getenv("EVENT_WEBSITE"),
			EnableCheckin:  true,
			EnableProjects: true,
			EnableTeams:    true,
			EnableSponsors: true,
		}
		if err := s.db.Create(&event).Error; err != nil {
			return nil, utils.ServerErr("failed to create event record")
		}
	} else if err != nil {
		return nil, utils.ServerErr("failed to load event record")
	}

	s.cached = &event
	return s.cached, nil
}

// GetSettings returns the singleton settings row, creating defaults if the
// row does not exist yet.
func (s *EventService) GetSettings() (*models.Settings, error) {
	var settings models.Settings
	err := s.db.First(&settings).Error
	if err == gorm.ErrRecordNotFound {
		settings = models.Settings{MaxTeamSize: 4}
		if err := s.db.Create(&settings).Error; err != nil {
			return nil, utils.ServerErr("failed to create settings record")
		}
		return &settings, nil
	}
	if err != nil {
		return nil, utils.ServerErr("settings record unavailable")
	}
	return &settings, nil
}

// UpdateSettings applies a partial update to the settings singleton.
func (s *EventService) UpdateSettings(patch map[string]interface{}) (*models.Settings, error) {
	settings, err := s.GetSettings()
	if err != nil {
		return nil, err
	}
	patch["updated_at"] = time.Now()
	if err := s.db.Model(settings).Updates(patch).Error; err != nil {
		return nil, utils.ServerErr("failed to update settings")
	}
	return s.GetSettings()
}
