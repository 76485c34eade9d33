// handlers/auth.go - Registration, login, verification, password reset
package handlers

import (
	"hackreg/middleware"

	"github.com/gofiber/fiber/v2"
)

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type VerifyRequest struct {
	Token string `json:"token"`
	Code  string `json:"code"`
}

type ResetRequest struct {
	Email       string `json:"email"`
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// Register creates an account
// POST /api/auth/register
func Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	user, token, err := authService.Register(req.Email, req.Password)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"user": user, "token": token})
}

// Login authenticates with email/password or a token in the header
// POST /api/auth/login
func Login(c *fiber.Ctx) error {
	if headerToken := c.Get("x-access-token"); headerToken != "" {
		user, err := authService.LoginWithToken(headerToken)
		if err != nil {
			return fail(c, err)
		}
		return ok(c, fiber.Map{"user": user, "token": headerToken})
	}

	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	user, token, err := authService.Login(req.Email, req.Password)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"user": user, "token": token})
}

// ResendVerification re-issues the verification email
// POST /api/auth/verify/resend
func ResendVerification(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	authService.SendVerification(user)
	return ok(c, fiber.Map{})
}

// VerifyEmail verifies an email via token or short code
// POST /api/auth/verify
func VerifyEmail(c *fiber.Ctx) error {
	var req VerifyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	user, err := authService.VerifyEmail(statusService, req.Token, req.Code)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"user": user})
}

// RequestPasswordReset sends a reset link. Responds 200 regardless so the
// endpoint does not reveal whether an account exists.
// POST /api/auth/reset/request
func RequestPasswordReset(c *fiber.Ctx) error {
	var req ResetRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	authService.RequestPasswordReset(req.Email)
	return ok(c, fiber.Map{})
}

// ResetPassword sets a new password from a reset token
// POST /api/auth/reset
func ResetPassword(c *fiber.Ctx) error {
	var req ResetRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	if err := authService.ResetPassword(req.Token, req.NewPassword); err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{})
}

// GetCurrentUser returns the authenticated account
// GET /api/auth/me
func GetCurrentUser(c *fiber.Ctx) error {
	return ok(c, fiber.Map{"user": middleware.CurrentUser(c)})
}

// GetOwnStatus returns the caller's pipeline status
// GET /api/auth/status
func GetOwnStatus(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	status, err := statusService.GetStatus(user.ID)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"status": status})
}
