// handlers/participants.go - Participant directory endpoints
package handlers

import (
	"hackreg/middleware"

	"github.com/gofiber/fiber/v2"
)

// ListParticipants returns the participant directory. Admins, judges and
// recruiters only.
// GET /api/participants?name=
func ListParticipants(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if !user.IsAdmin && !user.IsJudge && !user.IsRecruiter() {
		return c.Status(403).JSON(fiber.Map{"success": false, "error": "Insufficient permissions"})
	}
	participants, err := participantService.ListParticipants(c.Query("name"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"participants": participants})
}

// ListAffiliatedApplicants returns applicants grouped by email domain with
// affiliated addresses first. Admin only.
// GET /api/participants/affiliated
func ListAffiliatedApplicants(c *fiber.Ctx) error {
	participants, err := participantService.ListAffiliatedApplicants()
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"participants": participants})
}
