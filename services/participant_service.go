// services/participant_service.go - Admission-facing participant directory
package services

import (
	"os"
	"sort"
	"strings"

	"hackreg/models"
	"hackreg/utils"

	"gorm.io/gorm"
)

// triagePriority is the admin-facing ordering for admissions work: the
// least-processed-but-actionable applicants come first. This is deliberately
// NOT the lattice order in models/status.go; the two tables disagree on
// where REJECTED sits relative to VERIFIED/UNVERIFIED and must stay separate.
var triagePriority = map[models.Status]int{
	models.StatusCompletedProfile: 0,
	models.StatusAdmitted:         1,
	models.StatusConfirmed:        2,
	models.StatusDeclined:         3,
	models.StatusRejected:         4,
	models.StatusVerified:         5,
	models.StatusUnverified:       6,
}

// Waitlisted applicants sort with the admitted group: they are decided but
// still actionable.
func triageRank(s models.Status) int {
	if s == models.StatusWaitlisted {
		return triagePriority[models.StatusAdmitted]
	}
	if p, ok := triagePriority[s]; ok {
		return p
	}
	return len(triagePriority)
}

// Participant is a directory row: user enriched with an optional profile and
// team. Users without a profile still appear with empty profile fields.
type Participant struct {
	ID      uint            `json:"id"`
	Email   string          `json:"email"`
	Name    string          `json:"name"`
	Status  models.Status   `json:"status"`
	Profile *models.Profile `json:"profile,omitempty"`
	Team    *models.Team    `json:"team,omitempty"`
}

// ParticipantService composes user, profile and team data into the
// authorization-filtered directory used for admissions triage.
type ParticipantService struct {
	db     *gorm.DB
	events *EventService

	affiliatedDomain string
}

func NewParticipantService(db *gorm.DB, events *EventService) *ParticipantService {
	domain := os.Getenv("AFFILIATED_DOMAIN")
	if domain == "" {
		domain = "cmu.edu"
	}
	return &ParticipantService{db: db, events: events, affiliatedDomain: domain}
}

// ListParticipants returns the directory for the current event, excluding
// recruiters, optionally filtered by a name search, in triage order.
func (s *ParticipantService) ListParticipants(nameFilter string) ([]Participant, error) {
	event, err := s.events.CurrentEvent()
	if err != nil {
		return nil, err
	}

	// Recruiters are never participants.
	var users []models.User
	if err := s.db.Where("company_id IS NULL").Find(&users).Error; err != nil {
		return nil, utils.ServerErr("failed to load users")
	}

	profiles, err := s.profilesByUser(event.ID, nameFilter)
	if err != nil {
		return nil, err
	}
	teams, err := s.teamsByUser(event.ID)
	if err != nil {
		return nil, err
	}

	participants := make([]Participant, 0, len(users))
	for i := range users {
		user := &users[i]
		profile := profiles[user.ID]
		if nameFilter != "" && profile == nil {
			// A name search restricts the listing to matching profiles.
			continue
		}
		participants = append(participants, Participant{
			ID:      user.ID,
			Email:   user.Email,
			Name:    user.Name,
			Status:  user.Status,
			Profile: profile,
			Team:    teams[user.ID],
		})
	}

	s.sortForTriage(participants)
	return participants, nil
}

// ListAffiliatedApplicants returns completed-profile applicants from the
// affiliated institution that have no admission decision yet.
func (s *ParticipantService) ListAffiliatedApplicants() ([]Participant, error) {
	all, err := s.ListParticipants("")
	if err != nil {
		return nil, err
	}
	matched := make([]Participant, 0)
	for _, p := range all {
		if p.Status != models.StatusCompletedProfile {
			continue
		}
		if s.isAffiliated(p.Email) {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

// sortForTriage orders by triage priority, then email domain ascending with
// the affiliated domain always first.
func (s *ParticipantService) sortForTriage(participants []Participant) {
	sort.SliceStable(participants, func(i, j int) bool {
		pi, pj := triageRank(participants[i].Status), triageRank(participants[j].Status)
		if pi != pj {
			return pi < pj
		}
		return s.domainLess(participants[i].Email, participants[j].Email)
	})
}

// domainLess compares two emails by domain, affiliated domain first.
func (s *ParticipantService) domainLess(a, b string) bool {
	da, db := emailDomain(a), emailDomain(b)
	affA, affB := s.isAffiliated(a), s.isAffiliated(b)
	if affA != affB {
		return affA
	}
	if da != db {
		return da < db
	}
	return a < b
}

// isAffiliated reports whether the email's domain is the institution's,
// including subdomains (andrew.cmu.edu counts as cmu.edu).
func (s *ParticipantService) isAffiliated(email string) bool {
	domain := emailDomain(email)
	return domain == s.affiliatedDomain || strings.HasSuffix(domain, "."+s.affiliatedDomain)
}

func emailDomain(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return ""
	}
	return strings.ToLower(email[at+1:])
}

func (s *ParticipantService) profilesByUser(eventID uint, nameFilter string) (map[uint]*models.Profile, error) {
	query := s.db.Where("event_id = ?", eventID)
	if nameFilter != "" {
		pattern := "%" + strings.ToLower(nameFilter) + "%"
		query = query.Where(
			"LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(display_name) LIKE ?",
			pattern, pattern, pattern,
		)
	}
	var profiles []models.Profile
	if err := query.Find(&profiles).Error; err != nil {
		return nil, utils.ServerErr("failed to load profiles")
	}
	byUser := make(map[uint]*models.Profile, len(profiles))
	for i := range profiles {
		byUser[profiles[i].UserID] = &profiles[i]
	}
	return byUser, nil
}

func (s *ParticipantService) teamsByUser(eventID uint) (map[uint]*models.Team, error) {
	var teams []models.Team
	if err := s.db.Where("event_id = ?", eventID).Preload("Members").Find(&teams).Error; err != nil {
		return nil, utils.ServerErr("failed to load teams")
	}
	byUser := make(map[uint]*models.Team)
	for i := range teams {
		for _, member := range teams[i].Members {
			byUser[member.UserID] = &teams[i]
		}
	}
	return byUser, nil
}
