// services/profile_service.go - Applications, confirmation flow, uploads
package services

import (
	"log"
	"time"

	"hackreg/models"
	"hackreg/utils"

	"gorm.io/gorm"
)

// ProfileService owns application submission (which advances the status
// pipeline), the confirm/decline flow and resume uploads.
type ProfileService struct {
	db       *gorm.DB
	events   *EventService
	statuses *StatusService
	notifier Notifier
	store    ObjectStore
}

func NewProfileService(db *gorm.DB, events *EventService, statuses *StatusService, notifier Notifier, store ObjectStore) *ProfileService {
	return &ProfileService{db: db, events: events, statuses: statuses, notifier: notifier, store: store}
}

// GetProfile returns a user's profile for the current event.
func (s *ProfileService) GetProfile(userID uint) (*models.Profile, error) {
	event, err := s.events.CurrentEvent()
	if err != nil {
		return nil, err
	}
	var profile models.Profile
	err = s.db.Where("event_id = ? AND user_id = ?", event.ID, userID).First(&profile).Error
	if err == gorm.ErrRecordNotFound {
		return nil, utils.NotFound("Profile not found")
	}
	if err != nil {
		return nil, utils.ServerErr("failed to load profile")
	}
	return &profile, nil
}

// SubmitProfile upserts the user's application. First successful submission
// advances VERIFIED -> COMPLETED_PROFILE. Recruiters cannot apply; unverified
// users must verify first.
func (s *ProfileService) SubmitProfile(user *models.User, input *models.Profile) (*models.Profile, error) {
	if user.IsRecruiter() {
		return nil, utils.Bad("Recruiters cannot submit applications")
	}
	if !user.HasStatus(models.StatusVerified) {
		return nil, utils.Bad("Verify your email before submitting an application")
	}

	event, err := s.events.CurrentEvent()
	if err != nil {
		return nil, err
	}
	settings, err := s.events.GetSettings()
	if err != nil {
		return nil, err
	}
	if !settings.IsRegistrationOpen(time.Now()) {
		return nil, utils.Bad("Registration is closed")
	}

	if input.FirstName == "" || input.LastName == "" {
		return nil, utils.Bad("First and last name are required")
	}
	if input.Age <= 0 {
		return nil, utils.Bad("Age is required")
	}
	if input.Age < 18 && !settings.AllowMinors {
		return nil, utils.Bad("This event does not allow minors")
	}
	if input.School == "" {
		return nil, utils.Bad("School is required")
	}
	if input.DisplayName == "" {
		input.DisplayName = input.FirstName + " " + input.LastName
	}

	var taken int64
	s.db.Model(&models.Profile{}).
		Where("event_id = ? AND display_name = ? AND user_id != ?", event.ID, input.DisplayName, user.ID).
		Count(&taken)
	if taken > 0 {
		return nil, utils.Bad("That display name is already taken")
	}

	input.EventID = event.ID
	input.UserID = user.ID

	existing, err := s.GetProfile(user.ID)
	if utils.IsNotFound(err) {
		if err := s.db.Create(input).Error; err != nil {
			return nil, utils.ServerErr("failed to save profile")
		}
	} else if err != nil {
		return nil, err
	} else {
		input.ID = existing.ID
		input.TotalPoints = existing.TotalPoints
		input.CreatedAt = existing.CreatedAt
		if err := s.db.Save(input).Error; err != nil {
			return nil, utils.ServerErr("failed to save profile")
		}
	}

	// Only the first completion advances the pipeline; admitted or confirmed
	// applicants stay put when editing.
	if !user.HasStatus(models.StatusCompletedProfile) {
		if _, err := s.statuses.SetStatus(user.ID, models.StatusCompletedProfile); err != nil {
			return nil, err
		}
	}

	return input, nil
}

// Confirm records an admitted user's attendance (ADMITTED -> CONFIRMED).
func (s *ProfileService) Confirm(user *models.User) error {
	if user.Status != models.StatusAdmitted {
		return utils.Bad("Only admitted applicants can confirm attendance")
	}
	settings, err := s.events.GetSettings()
	if err != nil {
		return err
	}
	if !settings.IsConfirmationOpen(time.Now()) {
		return utils.Bad("The confirmation deadline has passed")
	}
	if _, err := s.statuses.SetStatus(user.ID, models.StatusConfirmed); err != nil {
		return err
	}
	if err := s.notifier.Send([]string{user.Email}, "See you there!", TemplateConfirmation, map[string]string{
		"name": user.Name,
	}); err != nil {
		log.Printf("WARN: failed to send confirmation email to %s: %v", user.Email, err)
	}
	return nil
}

// Decline records that an admitted user is not attending.
func (s *ProfileService) Decline(user *models.User) error {
	if user.Status != models.StatusAdmitted {
		return utils.Bad("Only admitted applicants can decline")
	}
	_, err := s.statuses.SetStatus(user.ID, models.StatusDeclined)
	return err
}

// UploadResume stores resume bytes and records the object key on the profile.
func (s *ProfileService) UploadResume(userID uint, filename string, data []byte) (string, error) {
	profile, err := s.GetProfile(userID)
	if err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", utils.Bad("Empty upload")
	}

	key := RandomObjectKey("resume", filename)
	if err := s.store.Upload(BucketResumes, key, data); err != nil {
		return "", utils.ServerErr("failed to store resume")
	}
	if err := s.db.Model(profile).Update("resume_key", key).Error; err != nil {
		return "", utils.ServerErr("failed to record resume")
	}
	return key, nil
}

// UploadPicture stores profile picture bytes and records the object key.
func (s *ProfileService) UploadPicture(userID uint, filename string, data []byte) (string, error) {
	profile, err := s.GetProfile(userID)
	if err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", utils.Bad("Empty upload")
	}

	key := RandomObjectKey("picture", filename)
	if err := s.store.Upload(BucketProfilePictures, key, data); err != nil {
		return "", utils.ServerErr("failed to store picture")
	}
	if err := s.db.Model(profile).Update("picture_key", key).Error; err != nil {
		return "", utils.ServerErr("failed to record picture")
	}
	return key, nil
}

// PictureURL returns a signed, time-limited download URL for a profile
// picture.
func (s *ProfileService) PictureURL(userID uint) (string, error) {
	profile, err := s.GetProfile(userID)
	if err != nil {
		return "", err
	}
	if profile.PictureKey == "" || !s.store.Exists(BucketProfilePictures, profile.PictureKey) {
		return "", utils.NotFound("No profile picture on file")
	}
	url, err := s.store.SignedURL(BucketProfilePictures, profile.PictureKey, 15*time.Minute)
	if err != nil {
		return "", utils.ServerErr("failed to sign picture URL")
	}
	return url, nil
}

// ResumeURL returns a signed, time-limited download URL for a resume.
func (s *ProfileService) ResumeURL(userID uint) (string, error) {
	profile, err := s.GetProfile(userID)
	if err != nil {
		return "", err
	}
	if profile.ResumeKey == "" || !s.store.Exists(BucketResumes, profile.ResumeKey) {
		return "", utils.NotFound("No resume on file")
	}
	url, err := s.store.SignedURL(BucketResumes, profile.ResumeKey, 15*time.Minute)
	if err != nil {
		return "", utils.ServerErr("failed to sign resume URL")
	}
	return url, nil
}
