// handlers/sponsors.go - Sponsor and recruiter management endpoints
package handlers

import (
	"github.com/gofiber/fiber/v2"
)

type CreateSponsorRequest struct {
	Name string `json:"name"`
}

type MakeRecruiterRequest struct {
	UserID    uint `json:"userId"`
	SponsorID uint `json:"sponsorId"`
}

// CreateSponsor creates a sponsor company. Admin only.
// POST /api/sponsors
func CreateSponsor(c *fiber.Ctx) error {
	var req CreateSponsorRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	sponsor, err := sponsorService.CreateSponsor(req.Name)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"sponsor": sponsor})
}

// GetSponsor returns a sponsor by ID
// GET /api/sponsors/:id
func GetSponsor(c *fiber.Ctx) error {
	sponsorID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid sponsor ID"})
	}
	sponsor, err := sponsorService.GetSponsor(uint(sponsorID))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"sponsor": sponsor})
}

// ListSponsors lists all sponsor companies
// GET /api/sponsors
func ListSponsors(c *fiber.Ctx) error {
	sponsors, err := sponsorService.ListSponsors()
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"sponsors": sponsors})
}

// MakeRecruiter attaches a user account to a sponsor. Admin only.
// POST /api/sponsors/recruiters
func MakeRecruiter(c *fiber.Ctx) error {
	var req MakeRecruiterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	user, err := sponsorService.MakeRecruiter(req.UserID, req.SponsorID, teamService)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"user": user})
}

// RemoveRecruiter detaches a user from their sponsor. Admin only.
// DELETE /api/sponsors/recruiters/:userId
func RemoveRecruiter(c *fiber.Ctx) error {
	targetID, err := c.ParamsInt("userId")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid user ID"})
	}
	user, err := sponsorService.RemoveRecruiter(uint(targetID))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"user": user})
}
