// services/sponsor_service.go - Sponsors and recruiter accounts
package services

import (
	"strings"

	"hackreg/models"
	"hackreg/utils"

	"gorm.io/gorm"
)

type SponsorService struct {
	db     *gorm.DB
	events *EventService
}

func NewSponsorService(db *gorm.DB, events *EventService) *SponsorService {
	return &SponsorService{db: db, events: events}
}

// CreateSponsor registers a sponsor company. Admin only (handler-enforced).
func (s *SponsorService) CreateSponsor(name string) (*models.Sponsor, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, utils.Bad("Sponsor name is required")
	}
	event, err := s.events.CurrentEvent()
	if err != nil {
		return nil, err
	}

	sponsor := &models.Sponsor{EventID: event.ID, Name: name}
	if err := s.db.Create(sponsor).Error; err != nil {
		return nil, utils.Bad("A sponsor with that name already exists")
	}
	return sponsor, nil
}

// GetSponsor returns one sponsor by ID.
func (s *SponsorService) GetSponsor(sponsorID uint) (*models.Sponsor, error) {
	var sponsor models.Sponsor
	err := s.db.First(&sponsor, sponsorID).Error
	if err == gorm.ErrRecordNotFound {
		return nil, utils.NotFound("Sponsor not found")
	}
	if err != nil {
		return nil, utils.ServerErr("failed to load sponsor")
	}
	return &sponsor, nil
}

// ListSponsors returns all sponsors for the event.
func (s *SponsorService) ListSponsors() ([]models.Sponsor, error) {
	event, err := s.events.CurrentEvent()
	if err != nil {
		return nil, err
	}
	var sponsors []models.Sponsor
	if err := s.db.Where("event_id = ?", event.ID).Find(&sponsors).Error; err != nil {
		return nil, utils.ServerErr("failed to list sponsors")
	}
	return sponsors, nil
}

// MakeRecruiter attaches a user to a sponsor company, turning the account
// into a recruiter. Recruiters leave the participant pipeline; a user on a
// team cannot become one.
func (s *SponsorService) MakeRecruiter(userID, sponsorID uint, teams *TeamService) (*models.User, error) {
	sponsor, err := s.GetSponsor(sponsorID)
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, utils.NotFound("User not found")
	}

	team, err := teams.FindUserTeam(userID)
	if err != nil {
		return nil, err
	}
	if team != nil {
		return nil, utils.Bad("A user on a team cannot become a recruiter")
	}

	if err := s.db.Model(&user).Update("company_id", sponsor.ID).Error; err != nil {
		return nil, utils.ServerErr("failed to update user")
	}
	user.CompanyID = &sponsor.ID
	return &user, nil
}

// RemoveRecruiter detaches a user from their sponsor company.
func (s *SponsorService) RemoveRecruiter(userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, utils.NotFound("User not found")
	}
	if !user.IsRecruiter() {
		return nil, utils.Bad("User is not a recruiter")
	}
	if err := s.db.Model(&user).Update("company_id", nil).Error; err != nil {
		return nil, utils.ServerErr("failed to update user")
	}
	user.CompanyID = nil
	return &user, nil
}
