// handlers/admin.go - Administrative endpoints
package handlers

import (
	"fmt"
	"strings"

	"hackreg/database"
	"hackreg/middleware"
	"hackreg/models"
	"hackreg/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AdmitUser admits an applicant
// POST /api/admin/users/:id/admit
func AdmitUser(c *fiber.Ctx) error {
	return decideUser(c, statusService.Admit)
}

// RejectUser rejects an applicant
// POST /api/admin/users/:id/reject
func RejectUser(c *fiber.Ctx) error {
	return decideUser(c, statusService.Reject)
}

// WaitlistUser waitlists an applicant
// POST /api/admin/users/:id/waitlist
func WaitlistUser(c *fiber.Ctx) error {
	return decideUser(c, statusService.Waitlist)
}

func decideUser(c *fiber.Ctx, decision func(uint, uint) error) error {
	admin := middleware.CurrentUser(c)
	targetID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid user ID"})
	}
	if err := decision(uint(targetID), admin.ID); err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{})
}

// GetUserStatus returns any user's status. Admin only.
// GET /api/admin/users/:id/status
func GetUserStatus(c *fiber.Ctx) error {
	targetID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid user ID"})
	}
	status, err := statusService.GetStatus(uint(targetID))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"status": status})
}

type SetStatusRequest struct {
	Status models.Status `json:"status"`
}

// SetUserStatus force-sets a user's status. Admin only.
// PUT /api/admin/users/:id/status
func SetUserStatus(c *fiber.Ctx) error {
	targetID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid user ID"})
	}
	var req SetStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	status, err := statusService.SetStatus(uint(targetID), req.Status)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"status": status})
}

// ListUsers lists every account. Admin only.
// GET /api/admin/users
func ListUsers(c *fiber.Ctx) error {
	var users []models.User
	if err := database.GetDB().Order("email asc").Find(&users).Error; err != nil {
		return fail(c, utils.ServerErr("Failed to list users"))
	}
	return ok(c, fiber.Map{"users": users})
}

// GetSettings returns the current event settings
// GET /api/settings
func GetSettings(c *fiber.Ctx) error {
	settings, err := eventService.GetSettings()
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"settings": settings})
}

// UpdateSettings patches the event settings. Admin only.
// PUT /api/admin/settings
func UpdateSettings(c *fiber.Ctx) error {
	var patch map[string]interface{}
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	settings, err := eventService.UpdateSettings(patch)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"settings": settings})
}

type CreateTestAccountsRequest struct {
	Count int `json:"count"`
}

// CreateTestAccounts creates throwaway verified accounts for load and QA
// testing. Each gets a unique @example.com address. Admin only.
// POST /api/admin/test-accounts
func CreateTestAccounts(c *fiber.Ctx) error {
	var req CreateTestAccountsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	if req.Count < 1 || req.Count > 100 {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Count must be between 1 and 100"})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcrypt.DefaultCost)
	if err != nil {
		return fail(c, utils.ServerErr("Failed to create test accounts"))
	}

	accounts := make([]models.User, 0, req.Count)
	for i := 0; i < req.Count; i++ {
		accounts = append(accounts, models.User{
			Email:    fmt.Sprintf("test-%s@example.com", uuid.NewString()),
			Password: string(hashed),
			Status:   models.StatusVerified,
		})
	}
	if err := database.GetDB().Create(&accounts).Error; err != nil {
		return fail(c, utils.ServerErr("Failed to create test accounts"))
	}

	emails := make([]string, 0, len(accounts))
	for _, a := range accounts {
		emails = append(emails, a.Email)
	}
	return ok(c, fiber.Map{"emails": emails})
}

// DeleteTestAccounts removes every test account and its dependent rows.
// Admin only.
// DELETE /api/admin/test-accounts
func DeleteTestAccounts(c *fiber.Ctx) error {
	db := database.GetDB()

	var ids []uint
	if err := db.Model(&models.User{}).
		Where("email LIKE ? AND email LIKE ?", "test-%", "%@example.com").
		Pluck("id", &ids).Error; err != nil {
		return fail(c, utils.ServerErr("Failed to find test accounts"))
	}
	if len(ids) == 0 {
		return ok(c, fiber.Map{"deleted": 0})
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id IN ?", ids).Delete(&models.Checkin{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id IN ?", ids).Delete(&models.TeamMember{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id IN ?", ids).Delete(&models.TeamRequest{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id IN ?", ids).Delete(&models.Profile{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id IN ?", ids).Delete(&models.StatusChange{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, ids).Error
	})
	if err != nil {
		return fail(c, utils.ServerErr("Failed to delete test accounts"))
	}
	return ok(c, fiber.Map{"deleted": len(ids)})
}

// GetUserTeam returns the team a user belongs to. Admin only.
// GET /api/admin/users/:id/team
func GetUserTeam(c *fiber.Ctx) error {
	targetID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid user ID"})
	}
	team, err := teamService.FindUserTeam(uint(targetID))
	if err != nil {
		return fail(c, err)
	}
	if team == nil {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "User has no team"})
	}
	return ok(c, fiber.Map{"team": team})
}

// SearchUsers finds accounts by email fragment. Admin only.
// GET /api/admin/users/search?email=
func SearchUsers(c *fiber.Ctx) error {
	fragment := strings.TrimSpace(c.Query("email"))
	if fragment == "" {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Missing email query"})
	}
	var users []models.User
	if err := database.GetDB().
		Where("email LIKE ?", "%"+strings.ToLower(fragment)+"%").
		Limit(50).Find(&users).Error; err != nil {
		return fail(c, utils.ServerErr("Failed to search users"))
	}
	return ok(c, fiber.Map{"users": users})
}
