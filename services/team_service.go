// services/team_service.go - Team formation and request adjudication
package services

import (
	"time"

	"hackreg/models"
	"hackreg/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TeamService adjudicates team creation, membership and the INVITE/JOIN
// request lifecycle. The one invariant it must hold under concurrent writes
// is len(members) <= maxTeamSize; see addMemberGuarded.
type TeamService struct {
	db     *gorm.DB
	events *EventService
}

func NewTeamService(db *gorm.DB, events *EventService) *TeamService {
	return &TeamService{db: db, events: events}
}

// ================== LOOKUPS ==================

// FindUserTeam returns the team a user belongs to, or nil.
func (s *TeamService) FindUserTeam(userID uint) (*models.Team, error) {
	event, err := s.events.CurrentEvent()
	if err != nil {
		return nil, err
	}

	var member models.TeamMember
	err = s.db.Where("event_id = ? AND user_id = ?", event.ID, userID).First(&member).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, utils.ServerErr("failed to look up team membership")
	}

	var team models.Team
	if err := s.db.Preload("Members").Preload("Members.User").First(&team, member.TeamID).Error; err != nil {
		return nil, utils.ServerErr("failed to load team")
	}
	return &team, nil
}

// GetTeam returns a team by ID with members preloaded.
func (s *TeamService) GetTeam(teamID uint) (*models.Team, error) {
	event, err := s.events.CurrentEvent()
	if err != nil {
		return nil, err
	}
	var team models.Team
	err = s.db.Where("event_id = ?", event.ID).
		Preload("Members").
		Preload("Members.User").
		First(&team, teamID).Error
	if err == gorm.ErrRecordNotFound {
		return nil, utils.NotFound("Team not found!")
	}
	if err != nil {
		return nil, utils.ServerErr("failed to load team")
	}
	return &team, nil
}

// ListTeams returns all visible teams for the event.
func (s *TeamService) ListTeams() ([]models.Team, error) {
	event, err := s.events.CurrentEvent()
	if err != nil {
		return nil, err
	}
	var teams []models.Team
	err = s.db.Where("event_id = ? AND visible = ?", event.ID, true).
		Preload("Members").
		Order("created_at DESC").
		Find(&teams).Error
	if err != nil {
		return nil, utils.ServerErr("failed to list teams")
	}
	return teams, nil
}

// ================== TEAM LIFECYCLE ==================

// CreateTeam creates a team with the creator as admin and sole member.
func (s *TeamService) CreateTeam(userID uint, name, description string, visible bool) (*models.Team, error) {
	if name == "" {
		return nil, utils.Bad("Team name is required")
	}

	event, err := s.events.CurrentEvent()
	if err != nil {
		return nil, err
	}

	existing, err := s.FindUserTeam(userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, utils.Bad("You are already in a team! Leave it first before creating a new one")
	}

	var count int64
	s.db.Model(&models.Team{}).Where("event_id = ? AND name = ?", event.ID, name).Count(&count)
	if count > 0 {
		return nil, utils.Bad("That team name is already taken!")
	}

	team := &models.Team{
		EventID:     event.ID,
		Name:        name,
		Description: description,
		AdminID:     userID,
		Visible:     visible,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(team).Error; err != nil {
			return err
		}
		return tx.Create(&models.TeamMember{
			EventID:  event.ID,
			TeamID:   team.ID,
			UserID:   userID,
			JoinedAt: time.Now(),
		}).Error
	})
	if err != nil {
		return nil, utils.Bad("Failed to create team; the name may already be taken")
	}

	return s.GetTeam(team.ID)
}

// UpdateTeam changes name, description or visibility. Admin only.
func (s *TeamService) UpdateTeam(userID, teamID uint, name, description *string, visible *bool) (*models.Team, error) {
	team, err := s.GetTeam(teamID)
	if err != nil {
		return nil, err
	}
	if team.AdminID != userID {
		return nil, utils.Unauthorized("You are not the team admin!")
	}

	update := map[string]interface{}{}
	if name != nil && *name != "" && *name != team.Name {
		var count int64
		s.db.Model(&models.Team{}).
			Where("event_id = ? AND name = ? AND id != ?", team.EventID, *name, teamID).
			Count(&count)
		if count > 0 {
			return nil, utils.Bad("That team name is already taken!")
		}
		update["name"] = *name
	}
	if description != nil {
		update["description"] = *description
	}
	if visible != nil {
		update["visible"] = *visible
	}
	if len(update) == 0 {
		return team, nil
	}

	if err := s.db.Model(&models.Team{}).Where("id = ?", teamID).Updates(update).Error; err != nil {
		return nil, utils.ServerErr("failed to update team")
	}
	return s.GetTeam(teamID)
}

// LeaveTeam removes the caller from their team. The admin must promote a
// replacement first unless they are the last member, in which case the team
// is deleted along with its pending requests.
func (s *TeamService) LeaveTeam(userID uint) error {
	team, err := s.FindUserTeam(userID)
	if err != nil {
		return err
	}
	if team == nil {
		return utils.Bad("You're not in a team!")
	}

	if team.AdminID == userID && len(team.Members) > 1 {
		return utils.Bad("You can't leave the team while you're the team admin. Make another member admin first!")
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("team_id = ? AND user_id = ?", team.ID, userID).
			Delete(&models.TeamMember{}).Error; err != nil {
			return err
		}
		if len(team.Members) == 1 {
			if err := tx.Where("team_id = ?", team.ID).Delete(&models.TeamRequest{}).Error; err != nil {
				return err
			}
			return tx.Delete(&models.Team{}, team.ID).Error
		}
		return nil
	})
}

// KickUser removes a member. Admin only; the admin cannot kick themselves.
func (s *TeamService) KickUser(adminID, targetID uint) error {
	team, err := s.FindUserTeam(adminID)
	if err != nil {
		return err
	}
	if team == nil {
		return utils.Bad("You're not in a team!")
	}
	if team.AdminID != adminID {
		return utils.Unauthorized("You're not the team admin!")
	}
	if adminID == targetID {
		return utils.Bad("You can't kick yourself! Leave the team instead.")
	}
	if !teamHasMember(team, targetID) {
		return utils.Bad("That user is not in your team!")
	}

	if err := s.db.Where("team_id = ? AND user_id = ?", team.ID, targetID).
		Delete(&models.TeamMember{}).Error; err != nil {
		return utils.ServerErr("failed to remove member")
	}
	return nil
}

// PromoteAdmin hands team adminship to another member, demoting the caller.
func (s *TeamService) PromoteAdmin(adminID, targetID uint) error {
	team, err := s.FindUserTeam(adminID)
	if err != nil {
		return err
	}
	if team == nil {
		return utils.Bad("You're not in a team!")
	}
	if team.AdminID != adminID {
		return utils.Unauthorized("You're not the team admin!")
	}
	if adminID == targetID {
		return utils.Bad("You can't promote yourself! You are already the team admin.")
	}
	if !teamHasMember(team, targetID) {
		return utils.Bad("That user is not in your team!")
	}

	if err := s.db.Model(&models.Team{}).Where("id = ?", team.ID).
		Update("admin_id", targetID).Error; err != nil {
		return utils.ServerErr("failed to promote member")
	}
	return nil
}

// ================== REQUEST LIFECYCLE ==================

// JoinTeam files a JOIN request from a user toward a team.
func (s *TeamService) JoinTeam(userID, teamID uint, message string) (*models.TeamRequest, error) {
	event, err := s.events.CurrentEvent()
	if err != nil {
		return nil, err
	}

	existing, err := s.FindUserTeam(userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, utils.Bad("You're already in a team. Leave it before joining another.")
	}

	if _, err := s.GetTeam(teamID); err != nil {
		return nil, err
	}

	var count int64
	s.db.Model(&models.TeamRequest{}).
		Where("event_id = ? AND user_id = ? AND team_id = ? AND status = ?",
			event.ID, userID, teamID, models.TeamRequestPending).
		Count(&count)
	if count > 0 {
		return nil, utils.Bad("You already have an existing team request/invite for that team!")
	}

	request := &models.TeamRequest{
		EventID: event.ID,
		UserID:  userID,
		TeamID:  teamID,
		Type:    models.TeamRequestJoin,
		Status:  models.TeamRequestPending,
		Message: message,
	}
	if err := s.db.Create(request).Error; err != nil {
		return nil, utils.ServerErr("failed to create join request")
	}
	return request, nil
}

// InviteUser files an INVITE request from the caller's team toward a user.
// Caller must be the team admin.
func (s *TeamService) InviteUser(adminID, targetID uint) (*models.TeamRequest, error) {
	event, err := s.events.CurrentEvent()
	if err != nil {
		return nil, err
	}

	team, err := s.FindUserTeam(adminID)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, utils.Bad("You're not in a team!")
	}
	if team.AdminID != adminID {
		return nil, utils.Unauthorized("You're not the team admin!")
	}

	settings, err := s.events.GetSettings()
	if err != nil {
		return nil, err
	}
	if len(team.Members) >= settings.MaxTeamSize {
		return nil, utils.Bad("The team is full!")
	}
	if teamHasMember(team, targetID) {
		return nil, utils.Bad("User is already in the team!")
	}

	var target models.User
	if err := s.db.First(&target, targetID).Error; err != nil {
		return nil, utils.NotFound("User does not exist!")
	}
	if target.IsRecruiter() {
		return nil, utils.Bad("Recruiters cannot join teams")
	}

	var count int64
	s.db.Model(&models.TeamRequest{}).
		Where("event_id = ? AND user_id = ? AND team_id = ? AND status = ?",
			event.ID, targetID, team.ID, models.TeamRequestPending).
		Count(&count)
	if count > 0 {
		return nil, utils.Bad("You already have an existing team request/invite for that user!")
	}

	request := &models.TeamRequest{
		EventID: event.ID,
		UserID:  targetID,
		TeamID:  team.ID,
		Type:    models.TeamRequestInvite,
		Status:  models.TeamRequestPending,
	}
	if err := s.db.Create(request).Error; err != nil {
		return nil, utils.ServerErr("failed to create invite")
	}
	return request, nil
}

// AcceptRequest resolves a PENDING request into membership. The member add
// happens strictly before the request flips to ACCEPTED; a crash between the
// two leaves a joined member and a PENDING request, which a retried accept
// reports as "already in a team" (at-least-once, never overcommit).
func (s *TeamService) AcceptRequest(requestID, actorID uint) error {
	request, team, err := s.loadPendingRequest(requestID)
	if err != nil {
		return err
	}
	if err := authorizeRequestAction(request, team.AdminID, actorID, actionAccept); err != nil {
		return err
	}

	joinerTeam, err := s.FindUserTeam(request.UserID)
	if err != nil {
		return err
	}
	if joinerTeam != nil {
		return utils.Bad("You're already in a team!")
	}

	settings, err := s.events.GetSettings()
	if err != nil {
		return err
	}

	if err := s.addMemberGuarded(request.EventID, team.ID, request.UserID, settings.MaxTeamSize); err != nil {
		return err
	}

	result := s.db.Model(&models.TeamRequest{}).
		Where("id = ? AND status = ?", requestID, models.TeamRequestPending).
		Update("status", models.TeamRequestAccepted)
	if result.Error != nil {
		return utils.ServerErr("failed to mark request accepted")
	}
	if result.RowsAffected == 0 {
		// A concurrent resolution flipped the request first. The membership
		// stands; the caller is told the request itself was not theirs to
		// resolve anymore.
		return utils.Bad("That request has already been resolved!")
	}
	return nil
}

// DeclineRequest is resolved by the receiving party: the invited user for
// INVITE, the team admin for JOIN.
func (s *TeamService) DeclineRequest(requestID, actorID uint) error {
	return s.resolve(requestID, actorID, actionDecline, models.TeamRequestDeclined)
}

// CancelRequest is resolved by the originating party: the team admin for
// INVITE, the requesting user for JOIN.
func (s *TeamService) CancelRequest(requestID, actorID uint) error {
	return s.resolve(requestID, actorID, actionCancel, models.TeamRequestCancelled)
}

func (s *TeamService) resolve(requestID, actorID uint, action requestAction, outcome models.TeamRequestStatus) error {
	request, team, err := s.loadPendingRequest(requestID)
	if err != nil {
		return err
	}
	if err := authorizeRequestAction(request, team.AdminID, actorID, action); err != nil {
		return err
	}

	result := s.db.Model(&models.TeamRequest{}).
		Where("id = ? AND status = ?", requestID, models.TeamRequestPending).
		Update("status", outcome)
	if result.Error != nil {
		return utils.ServerErr("failed to resolve request")
	}
	if result.RowsAffected == 0 {
		return utils.Bad("That request has already been resolved!")
	}
	return nil
}

// ListTeamRequests returns pending requests for the caller's team. Admin only.
func (s *TeamService) ListTeamRequests(adminID uint) ([]models.TeamRequest, error) {
	team, err := s.FindUserTeam(adminID)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, utils.Bad("You're not in a team")
	}
	if team.AdminID != adminID {
		return nil, utils.Unauthorized("You're not the admin of this team!")
	}

	var requests []models.TeamRequest
	err = s.db.Where("team_id = ? AND status = ?", team.ID, models.TeamRequestPending).
		Preload("User").
		Find(&requests).Error
	if err != nil {
		return nil, utils.ServerErr("failed to list requests")
	}
	return requests, nil
}

// ListUserRequests returns a user's pending requests. Owner or admin only.
func (s *TeamService) ListUserRequests(targetID uint, actor *models.User) ([]models.TeamRequest, error) {
	if targetID != actor.ID && !actor.IsAdmin {
		return nil, utils.Unauthorized("User is not the owner or admin!")
	}

	event, err := s.events.CurrentEvent()
	if err != nil {
		return nil, err
	}

	var requests []models.TeamRequest
	err = s.db.Where("event_id = ? AND user_id = ? AND status = ?",
		event.ID, targetID, models.TeamRequestPending).
		Preload("Team").
		Find(&requests).Error
	if err != nil {
		return nil, utils.ServerErr("failed to list requests")
	}
	return requests, nil
}

// ================== INTERNALS ==================

// addMemberGuarded inserts the membership row under a team-row lock with the
// capacity check inside the statement's own predicate. A bare "check count,
// then insert" sequence would overcommit under concurrent accepts; here the
// losing writer waits on the lock, affects zero rows and reports the arm
// that failed.
func (s *TeamService) addMemberGuarded(eventID, teamID, userID uint, maxTeamSize int) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		// Lock the team row first. Under READ COMMITTED two concurrent
		// inserts could otherwise both read the same member count and both
		// pass the capacity predicate; the lock serializes them so the
		// second one sees the first one's committed row.
		var team models.Team
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&team, teamID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return utils.NotFound("No such team found")
			}
			return utils.ServerErr("failed to lock team")
		}

		result := tx.Exec(`
			INSERT INTO team_members (event_id, team_id, user_id, joined_at)
			SELECT ?, ?, ?, ?
			WHERE (SELECT COUNT(*) FROM team_members WHERE team_id = ?) < ?
			  AND NOT EXISTS (SELECT 1 FROM team_members WHERE event_id = ? AND user_id = ?)`,
			eventID, teamID, userID, time.Now(),
			teamID, maxTeamSize,
			eventID, userID,
		)
		if result.Error != nil {
			return utils.ServerErr("failed to add team member")
		}
		if result.RowsAffected == 0 {
			// Zero rows means one of the two predicate arms failed. Re-check
			// membership to report the right one: the joiner may have raced
			// onto a team after the caller's pre-check.
			var existing int64
			if err := tx.Model(&models.TeamMember{}).
				Where("event_id = ? AND user_id = ?", eventID, userID).
				Count(&existing).Error; err == nil && existing > 0 {
				return utils.Bad("You're already in a team!")
			}
			return utils.Bad("That team is already full!")
		}
		return nil
	})
}

// loadPendingRequest fetches a request and its team, rejecting terminal
// requests before any authorization check: single-use resolution fails with
// a validation error regardless of actor identity.
func (s *TeamService) loadPendingRequest(requestID uint) (*models.TeamRequest, *models.Team, error) {
	var request models.TeamRequest
	if err := s.db.First(&request, requestID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil, utils.NotFound("No such request found")
		}
		return nil, nil, utils.ServerErr("failed to load request")
	}
	if request.Status.Terminal() {
		return nil, nil, utils.Bad("That request has already been resolved!")
	}

	var team models.Team
	if err := s.db.Preload("Members").First(&team, request.TeamID).Error; err != nil {
		return nil, nil, utils.Bad("That team no longer exists!")
	}
	return &request, &team, nil
}

type requestAction string

const (
	actionAccept  requestAction = "accept"
	actionDecline requestAction = "decline"
	actionCancel  requestAction = "cancel"
)

// authorizeRequestAction encodes who may resolve a request. Accept and
// decline belong to the receiving party, cancel to the originator:
//
//	INVITE: receiver = invited user, originator = team admin
//	JOIN:   receiver = team admin,   originator = requesting user
func authorizeRequestAction(req *models.TeamRequest, teamAdminID, actorID uint, action requestAction) error {
	var allowed uint
	switch {
	case req.Type == models.TeamRequestInvite && action == actionCancel:
		allowed = teamAdminID
	case req.Type == models.TeamRequestInvite:
		allowed = req.UserID
	case req.Type == models.TeamRequestJoin && action == actionCancel:
		allowed = req.UserID
	default: // JOIN accept/decline
		allowed = teamAdminID
	}
	if actorID != allowed {
		return utils.Unauthorized("You are not authorized to resolve this request")
	}
	return nil
}

func teamHasMember(team *models.Team, userID uint) bool {
	for _, m := range team.Members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}
