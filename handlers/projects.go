// handlers/projects.go - Project and prize endpoints
package handlers

import (
	"hackreg/middleware"
	"hackreg/models"

	"github.com/gofiber/fiber/v2"
)

// CreateProject registers the caller's team project
// POST /api/projects
func CreateProject(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var input models.Project
	if err := c.BodyParser(&input); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	project, err := projectService.CreateProject(user, &input)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"project": project})
}

// EditProject updates fields on the caller's team project
// PUT /api/projects/:id
func EditProject(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	projectID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid project ID"})
	}

	var patch map[string]interface{}
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	project, err := projectService.EditProject(user, uint(projectID), patch)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"project": project})
}

// GetProject returns a project by ID
// GET /api/projects/:id
func GetProject(c *fiber.Ctx) error {
	projectID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid project ID"})
	}
	project, err := projectService.GetProject(uint(projectID))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"project": project})
}

// ListProjects lists all submitted projects
// GET /api/projects
func ListProjects(c *fiber.Ctx) error {
	projects, err := projectService.ListProjects()
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"projects": projects})
}

// DeleteProject removes the caller's team project
// DELETE /api/projects/:id
func DeleteProject(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	projectID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid project ID"})
	}
	if err := projectService.DeleteProject(user, uint(projectID)); err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{})
}

// EnterPrize enters a project for a prize
// POST /api/projects/:id/prizes/:prizeId
func EnterPrize(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	projectID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid project ID"})
	}
	prizeID, err := c.ParamsInt("prizeId")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid prize ID"})
	}
	if err := projectService.EnterPrize(user, uint(projectID), uint(prizeID)); err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{})
}

// ListPrizes lists all prizes
// GET /api/prizes
func ListPrizes(c *fiber.Ctx) error {
	prizes, err := projectService.ListPrizes()
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"prizes": prizes})
}
