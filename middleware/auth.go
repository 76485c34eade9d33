// middleware/auth.go
package middleware

import (
	"strings"

	"hackreg/database"
	"hackreg/models"
	"hackreg/services"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware resolves the bearer token to a full user record and stores
// it in c.Locals("user"). Accepts the legacy x-access-token header too.
func AuthMiddleware(c *fiber.Ctx) error {
	tokenString := extractToken(c)
	if tokenString == "" {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Missing authorization header"})
	}

	userID, err := services.ParseToken("auth", tokenString)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Invalid or expired token"})
	}

	var user models.User
	if err := database.GetDB().First(&user, userID).Error; err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Account no longer exists"})
	}

	c.Locals("user", &user)
	return c.Next()
}

// AdminMiddleware requires an authenticated admin. Chain after AuthMiddleware.
func AdminMiddleware(c *fiber.Ctx) error {
	user := CurrentUser(c)
	if user == nil || !user.IsAdmin {
		return c.Status(403).JSON(fiber.Map{"success": false, "error": "Admin privileges required"})
	}
	return c.Next()
}

// RecruiterMiddleware requires an admin or a sponsor-attached account.
func RecruiterMiddleware(c *fiber.Ctx) error {
	user := CurrentUser(c)
	if user == nil || (!user.IsAdmin && !user.IsRecruiter()) {
		return c.Status(403).JSON(fiber.Map{"success": false, "error": "Recruiter privileges required"})
	}
	return c.Next()
}

// CurrentUser returns the authenticated user placed by AuthMiddleware.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals("user").(*models.User)
	return user
}

func extractToken(c *fiber.Ctx) string {
	if header := c.Get("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
	}
	return c.Get("x-access-token")
}
