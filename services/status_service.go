// services/status_service.go - Applicant status reads and transitions
package services

import (
	"log"
	"time"

	"hackreg/models"
	"hackreg/utils"

	"gorm.io/gorm"
)

// StatusService owns all reads and writes of a user's pipeline status.
// It does not enforce a transition whitelist: callers pre-check business
// rules with models.StatusImplies; this layer accepts any enum value,
// persists it and stamps the audit trail.
type StatusService struct {
	db       *gorm.DB
	events   *EventService
	notifier Notifier
}

func NewStatusService(db *gorm.DB, events *EventService, notifier Notifier) *StatusService {
	return &StatusService{db: db, events: events, notifier: notifier}
}

// GetStatus returns the user's current status, defaulting to UNVERIFIED.
// Never fails on a missing status value; fails with NotFound only if the
// user row itself does not exist. Idempotent: repeat calls with no
// intervening write return the same value and create nothing.
func (s *StatusService) GetStatus(userID uint) (models.Status, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", utils.NotFound("User not found")
		}
		return "", utils.ServerErr("failed to load user")
	}
	if user.Status == "" {
		// Old rows may predate the status column default.
		if err := s.db.Model(&user).Update("status", models.StatusUnverified).Error; err != nil {
			return "", utils.ServerErr("failed to initialize status")
		}
		return models.StatusUnverified, nil
	}
	return user.Status, nil
}

// SetStatus unconditionally overwrites the user's status and stamps the
// change. Rejects values outside the enumeration.
func (s *StatusService) SetStatus(userID uint, status models.Status) (models.Status, error) {
	return s.setStatus(userID, status, nil)
}

func (s *StatusService) setStatus(userID uint, status models.Status, admittedBy *uint) (models.Status, error) {
	if !status.Valid() {
		return "", utils.Bad("unknown status value")
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", utils.NotFound("User not found")
		}
		return "", utils.ServerErr("failed to load user")
	}

	event, err := s.events.CurrentEvent()
	if err != nil {
		return "", err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&user).Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		}).Error; err != nil {
			return err
		}
		return tx.Create(&models.StatusChange{
			EventID:    event.ID,
			UserID:     userID,
			Status:     status,
			AdmittedBy: admittedBy,
		}).Error
	})
	if err != nil {
		return "", utils.ServerErr("failed to update status")
	}
	return status, nil
}

// Admit marks an applicant admitted, recording the admitting admin.
// Requires a completed profile.
func (s *StatusService) Admit(userID, adminID uint) error {
	return s.decide(userID, adminID, models.StatusAdmitted)
}

// Reject marks an applicant rejected, recording the deciding admin.
// Requires a completed profile.
func (s *StatusService) Reject(userID, adminID uint) error {
	return s.decide(userID, adminID, models.StatusRejected)
}

// Waitlist moves an applicant with a completed profile onto the waitlist.
func (s *StatusService) Waitlist(userID, adminID uint) error {
	return s.decide(userID, adminID, models.StatusWaitlisted)
}

func (s *StatusService) decide(userID, adminID uint, outcome models.Status) error {
	current, err := s.GetStatus(userID)
	if err != nil {
		return err
	}
	if !models.StatusImplies(current, models.StatusCompletedProfile) {
		return utils.Bad("User has not completed their profile yet!")
	}

	if _, err := s.setStatus(userID, outcome, &adminID); err != nil {
		return err
	}

	s.notifyDecision(userID, outcome)
	return nil
}

// notifyDecision sends the decision email. Best effort: the decision has
// already been committed, a send failure is only logged.
func (s *StatusService) notifyDecision(userID uint, outcome models.Status) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		log.Printf("WARN: decision email skipped, user %d unavailable: %v", userID, err)
		return
	}

	var template string
	switch outcome {
	case models.StatusAdmitted:
		template = TemplateAcceptance
	case models.StatusRejected:
		template = TemplateRejection
	case models.StatusWaitlisted:
		template = TemplateWaitlist
	default:
		return
	}

	if err := s.notifier.Send([]string{user.Email}, "Your application status", template, map[string]string{
		"name": user.Name,
	}); err != nil {
		log.Printf("WARN: failed to send %s email to %s: %v", template, user.Email, err)
	}
}
