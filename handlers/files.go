// handlers/files.go - Signed file download endpoint
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"hackreg/services"
)

// DownloadFile serves an object referenced by a signed URL. No auth
// middleware: the HMAC signature in the query string is the credential.
// GET /api/files/:bucket/:key?expires=&sig=
func DownloadFile(c *fiber.Ctx) error {
	bucket := c.Params("bucket")
	key := c.Params("key")
	if bucket != services.BucketResumes && bucket != services.BucketProfilePictures {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Unknown bucket"})
	}

	if !objectStore.VerifySignature(bucket, key, c.Query("expires"), c.Query("sig")) {
		return c.Status(403).JSON(fiber.Map{"success": false, "error": "Invalid or expired link"})
	}

	data, err := objectStore.Open(bucket, key)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "File not found"})
	}

	c.Set("Content-Disposition", "attachment; filename="+key)
	return c.Send(data)
}
