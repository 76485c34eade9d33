// handlers/profile.go - Applicant profile, confirmation and resume endpoints
package handlers

import (
	"io"

	"hackreg/middleware"
	"hackreg/models"
	"hackreg/utils"

	"github.com/gofiber/fiber/v2"
)

// GetOwnProfile returns the caller's profile
// GET /api/profile
func GetOwnProfile(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	profile, err := profileService.GetProfile(user.ID)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"profile": profile})
}

// GetUserProfile returns another user's profile. Gated by
// RecruiterMiddleware on the route.
// GET /api/users/:id/profile
func GetUserProfile(c *fiber.Ctx) error {
	targetID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid user ID"})
	}
	profile, err := profileService.GetProfile(uint(targetID))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"profile": profile})
}

// SubmitProfile creates or replaces the caller's profile
// PUT /api/profile
func SubmitProfile(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var input models.Profile
	if err := c.BodyParser(&input); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	profile, err := profileService.SubmitProfile(user, &input)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"profile": profile})
}

// ConfirmAttendance moves an admitted applicant to CONFIRMED
// POST /api/profile/confirm
func ConfirmAttendance(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if err := profileService.Confirm(user); err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{})
}

// DeclineAttendance moves an admitted applicant to DECLINED
// POST /api/profile/decline
func DeclineAttendance(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if err := profileService.Decline(user); err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{})
}

// readUpload pulls the multipart "file" field with a size cap.
func readUpload(c *fiber.Ctx, maxBytes int64) (string, []byte, error) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return "", nil, utils.Bad("Missing uploaded file")
	}
	if fileHeader.Size > maxBytes {
		return "", nil, utils.Bad("Uploaded file is too large")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", nil, utils.ServerErr("Could not read uploaded file")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", nil, utils.ServerErr("Could not read uploaded file")
	}
	return fileHeader.Filename, data, nil
}

// UploadResume stores the caller's resume file
// POST /api/profile/resume
func UploadResume(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	filename, data, err := readUpload(c, 10*1024*1024)
	if err != nil {
		return fail(c, err)
	}

	key, err := profileService.UploadResume(user.ID, filename, data)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"key": key})
}

// UploadProfilePicture stores the caller's profile picture
// POST /api/profile/picture
func UploadProfilePicture(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	filename, data, err := readUpload(c, 5*1024*1024)
	if err != nil {
		return fail(c, err)
	}

	key, err := profileService.UploadPicture(user.ID, filename, data)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"key": key})
}

// GetProfilePictureURL returns a signed URL for a user's profile picture
// GET /api/users/:id/picture
func GetProfilePictureURL(c *fiber.Ctx) error {
	targetID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid user ID"})
	}
	url, err := profileService.PictureURL(uint(targetID))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"url": url})
}

// GetResumeURL returns a signed URL for a user's resume
// GET /api/users/:id/resume
func GetResumeURL(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	targetID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid user ID"})
	}
	if uint(targetID) != user.ID && !user.IsAdmin && !user.IsRecruiter() {
		return c.Status(403).JSON(fiber.Map{"success": false, "error": "Admin or recruiter access required"})
	}
	url, err := profileService.ResumeURL(uint(targetID))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"url": url})
}
