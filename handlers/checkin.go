// handlers/checkin.go - Check-in item management and check-in endpoints
package handlers

import (
	"hackreg/database"
	"hackreg/middleware"
	"hackreg/models"

	"github.com/gofiber/fiber/v2"
)

// CreateCheckinItem creates a check-in item. Admin only.
// POST /api/checkin/items
func CreateCheckinItem(c *fiber.Ctx) error {
	var input models.CheckinItem
	if err := c.BodyParser(&input); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	item, err := checkinService.CreateItem(&input)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"item": item})
}

// UpdateCheckinItem edits a check-in item. Admin only.
// PUT /api/checkin/items/:id
func UpdateCheckinItem(c *fiber.Ctx) error {
	itemID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid item ID"})
	}
	var patch map[string]interface{}
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	item, err := checkinService.UpdateItem(uint(itemID), patch)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"item": item})
}

// GetCheckinItem returns a single check-in item
// GET /api/checkin/items/:id
func GetCheckinItem(c *fiber.Ctx) error {
	itemID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid item ID"})
	}
	item, err := checkinService.GetItem(uint(itemID))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"item": item})
}

// ListCheckinItems lists all check-in items
// GET /api/checkin/items
func ListCheckinItems(c *fiber.Ctx) error {
	items, err := checkinService.ListItems()
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"items": items})
}

// DeleteCheckinItem removes an item and its check-ins. Admin only.
// DELETE /api/checkin/items/:id
func DeleteCheckinItem(c *fiber.Ctx) error {
	itemID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid item ID"})
	}
	if err := checkinService.DeleteItem(uint(itemID)); err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{})
}

// SelfCheckIn lets a participant check into a self-service item
// POST /api/checkin/items/:id
func SelfCheckIn(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	itemID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid item ID"})
	}
	checkin, err := checkinService.CheckIn(user, uint(itemID), true)
	if err != nil {
		return fail(c, err)
	}
	pushLeaderboardNow()
	return ok(c, fiber.Map{"checkin": checkin})
}

// AdminCheckIn checks another user into an item. Admin only.
// POST /api/checkin/items/:id/users/:userId
func AdminCheckIn(c *fiber.Ctx) error {
	itemID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid item ID"})
	}
	targetID, err := c.ParamsInt("userId")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid user ID"})
	}

	var target models.User
	if err := database.GetDB().First(&target, uint(targetID)).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "User not found"})
	}

	checkin, err := checkinService.CheckIn(&target, uint(itemID), false)
	if err != nil {
		return fail(c, err)
	}
	pushLeaderboardNow()
	return ok(c, fiber.Map{"checkin": checkin})
}

// CheckinHistory returns the caller's check-in history
// GET /api/checkin/history
func CheckinHistory(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	history, err := checkinService.History(user.ID)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"history": history})
}
