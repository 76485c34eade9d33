// services/project_service.go - Team project submissions and prizes
package services

import (
	"hackreg/models"
	"hackreg/utils"

	"gorm.io/gorm"
)

type ProjectService struct {
	db     *gorm.DB
	events *EventService
	teams  *TeamService
}

func NewProjectService(db *gorm.DB, events *EventService, teams *TeamService) *ProjectService {
	return &ProjectService{db: db, events: events, teams: teams}
}

// CreateProject submits the caller's team project. One per team; only
// confirmed attendees on a team may submit.
func (s *ProjectService) CreateProject(user *models.User, input *models.Project) (*models.Project, error) {
	if !user.HasStatus(models.StatusConfirmed) {
		return nil, utils.Bad("Only confirmed attendees can submit a project")
	}
	team, err := s.teams.FindUserTeam(user.ID)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, utils.Bad("You must be on a team to submit a project")
	}
	if input.Name == "" {
		return nil, utils.Bad("Project name is required")
	}

	event, err := s.events.CurrentEvent()
	if err != nil {
		return nil, err
	}

	var count int64
	s.db.Model(&models.Project{}).
		Where("event_id = ? AND team_id = ?", event.ID, team.ID).
		Count(&count)
	if count > 0 {
		return nil, utils.Bad("Your team already has a project")
	}

	input.EventID = event.ID
	input.TeamID = team.ID
	if err := s.db.Create(input).Error; err != nil {
		return nil, utils.ServerErr("failed to create project")
	}
	return input, nil
}

// EditProject updates the caller's team project.
func (s *ProjectService) EditProject(user *models.User, projectID uint, patch map[string]interface{}) (*models.Project, error) {
	project, err := s.GetProject(projectID)
	if err != nil {
		return nil, err
	}
	team, err := s.teams.FindUserTeam(user.ID)
	if err != nil {
		return nil, err
	}
	if !user.IsAdmin && (team == nil || team.ID != project.TeamID) {
		return nil, utils.Unauthorized("You are not on this project's team")
	}
	if err := s.db.Model(project).Updates(patch).Error; err != nil {
		return nil, utils.ServerErr("failed to update project")
	}
	return s.GetProject(projectID)
}

// GetProject returns a project by ID.
func (s *ProjectService) GetProject(projectID uint) (*models.Project, error) {
	var project models.Project
	err := s.db.Preload("Team").Preload("Prizes").First(&project, projectID).Error
	if err == gorm.ErrRecordNotFound {
		return nil, utils.NotFound("Project not found")
	}
	if err != nil {
		return nil, utils.ServerErr("failed to load project")
	}
	return &project, nil
}

// ListProjects returns all projects for the event.
func (s *ProjectService) ListProjects() ([]models.Project, error) {
	event, err := s.events.CurrentEvent()
	if err != nil {
		return nil, err
	}
	var projects []models.Project
	err = s.db.Where("event_id = ?", event.ID).
		Preload("Team").
		Preload("Prizes").
		Find(&projects).Error
	if err != nil {
		return nil, utils.ServerErr("failed to list projects")
	}
	return projects, nil
}

// DeleteProject removes a project. Team member or admin only.
func (s *ProjectService) DeleteProject(user *models.User, projectID uint) error {
	project, err := s.GetProject(projectID)
	if err != nil {
		return err
	}
	team, err := s.teams.FindUserTeam(user.ID)
	if err != nil {
		return err
	}
	if !user.IsAdmin && (team == nil || team.ID != project.TeamID) {
		return utils.Unauthorized("You are not on this project's team")
	}
	return s.db.Select("Prizes").Delete(project).Error
}

// EnterPrize associates the project with a prize for judging.
func (s *ProjectService) EnterPrize(user *models.User, projectID, prizeID uint) error {
	project, err := s.GetProject(projectID)
	if err != nil {
		return err
	}
	team, err := s.teams.FindUserTeam(user.ID)
	if err != nil {
		return err
	}
	if team == nil || team.ID != project.TeamID {
		return utils.Unauthorized("You are not on this project's team")
	}
	var prize models.Prize
	if err := s.db.First(&prize, prizeID).Error; err != nil {
		return utils.NotFound("Prize not found")
	}
	if err := s.db.Model(project).Association("Prizes").Append(&prize); err != nil {
		return utils.ServerErr("failed to enter prize")
	}
	return nil
}

// ListPrizes returns all prizes for the event.
func (s *ProjectService) ListPrizes() ([]models.Prize, error) {
	event, err := s.events.CurrentEvent()
	if err != nil {
		return nil, err
	}
	var prizes []models.Prize
	if err := s.db.Where("event_id = ?", event.ID).Find(&prizes).Error; err != nil {
		return nil, utils.ServerErr("failed to list prizes")
	}
	return prizes, nil
}
