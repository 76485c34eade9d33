// handlers/teams.go - Team formation and request endpoints
package handlers

import (
	"hackreg/middleware"

	"github.com/gofiber/fiber/v2"
)

type CreateTeamRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Visible     bool   `json:"visible"`
}

type UpdateTeamRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Visible     *bool   `json:"visible"`
}

type JoinTeamRequest struct {
	Message string `json:"message"`
}

// CreateTeam creates a team with the caller as admin
// POST /api/teams
func CreateTeam(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var req CreateTeamRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	team, err := teamService.CreateTeam(user.ID, req.Name, req.Description, req.Visible)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"team": team})
}

// ListTeams lists visible teams
// GET /api/teams
func ListTeams(c *fiber.Ctx) error {
	teams, err := teamService.ListTeams()
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"teams": teams})
}

// GetTeam returns a team by ID
// GET /api/teams/:id
func GetTeam(c *fiber.Ctx) error {
	teamID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid team ID"})
	}
	team, err := teamService.GetTeam(uint(teamID))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"team": team})
}

// GetOwnTeam returns the caller's team
// GET /api/teams/mine
func GetOwnTeam(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	team, err := teamService.FindUserTeam(user.ID)
	if err != nil {
		return fail(c, err)
	}
	if team == nil {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "You do not have a team"})
	}
	return ok(c, fiber.Map{"team": team})
}

// UpdateTeam changes name/description/visibility. Team admin only.
// PUT /api/teams/:id
func UpdateTeam(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	teamID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid team ID"})
	}

	var req UpdateTeamRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	team, err := teamService.UpdateTeam(user.ID, uint(teamID), req.Name, req.Description, req.Visible)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"team": team})
}

// JoinTeam files a JOIN request toward a team
// POST /api/teams/:id/join
func JoinTeam(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	teamID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid team ID"})
	}

	var req JoinTeamRequest
	_ = c.BodyParser(&req) // message is optional

	request, err := teamService.JoinTeam(user.ID, uint(teamID), req.Message)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"request": request})
}

// InviteUser files an INVITE from the caller's team toward a user
// POST /api/teams/invite/:userId
func InviteUser(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	targetID, err := c.ParamsInt("userId")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid user ID"})
	}

	request, err := teamService.InviteUser(user.ID, uint(targetID))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"request": request})
}

// AcceptRequest accepts a pending request
// POST /api/requests/:id/accept
func AcceptRequest(c *fiber.Ctx) error {
	return resolveRequest(c, teamService.AcceptRequest)
}

// DeclineRequest declines a pending request
// POST /api/requests/:id/decline
func DeclineRequest(c *fiber.Ctx) error {
	return resolveRequest(c, teamService.DeclineRequest)
}

// CancelRequest cancels a pending request
// POST /api/requests/:id/cancel
func CancelRequest(c *fiber.Ctx) error {
	return resolveRequest(c, teamService.CancelRequest)
}

func resolveRequest(c *fiber.Ctx, action func(uint, uint) error) error {
	user := middleware.CurrentUser(c)
	requestID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request ID"})
	}
	if err := action(uint(requestID), user.ID); err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{})
}

// ListTeamRequests returns pending requests for the caller's team
// GET /api/teams/requests
func ListTeamRequests(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	requests, err := teamService.ListTeamRequests(user.ID)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"requests": requests})
}

// ListUserRequests returns a user's pending requests
// GET /api/users/:id/requests
func ListUserRequests(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	targetID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid user ID"})
	}
	requests, err := teamService.ListUserRequests(uint(targetID), user)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"requests": requests})
}

// KickUser removes a member from the caller's team
// DELETE /api/teams/members/:userId
func KickUser(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	targetID, err := c.ParamsInt("userId")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid user ID"})
	}
	if err := teamService.KickUser(user.ID, uint(targetID)); err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{})
}

// PromoteAdmin hands adminship to another member
// PUT /api/teams/promote/:userId
func PromoteAdmin(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	targetID, err := c.ParamsInt("userId")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid user ID"})
	}
	if err := teamService.PromoteAdmin(user.ID, uint(targetID)); err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{})
}

// LeaveTeam removes the caller from their team
// POST /api/teams/leave
func LeaveTeam(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if err := teamService.LeaveTeam(user.ID); err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{})
}
