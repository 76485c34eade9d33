package handlers

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"hackreg/services"
	"hackreg/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOwnRankPayload(t *testing.T) {
	entry := &services.LeaderboardEntry{
		UserID:      7,
		DisplayName: "alice",
		TotalPoints: 120,
		Rank:        3,
	}
	payload := ownRankPayload(entry)
	assert.Equal(t, 3, payload["rank"])
	assert.Equal(t, 120, payload["points"])
}

func TestFailTranslatesTypedErrors(t *testing.T) {
	app := fiber.New()
	app.Get("/bad", func(c *fiber.Ctx) error {
		return fail(c, utils.Bad("That team is already full!"))
	})
	app.Get("/missing", func(c *fiber.Ctx) error {
		return fail(c, utils.NotFound("No such request found"))
	})
	app.Get("/denied", func(c *fiber.Ctx) error {
		return fail(c, utils.Unauthorized("Admin privileges required"))
	})

	cases := []struct {
		path    string
		status  int
		message string
	}{
		{"/bad", 400, "That team is already full!"},
		{"/missing", 404, "No such request found"},
		{"/denied", 403, "Admin privileges required"},
	}
	for _, tc := range cases {
		resp, err := app.Test(httptest.NewRequest("GET", tc.path, nil))
		require.NoError(t, err)
		assert.Equal(t, tc.status, resp.StatusCode, tc.path)

		body := decodeBody(t, resp.Body)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, tc.message, body["error"])
	}
}

func TestOkMergesPayload(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return ok(c, fiber.Map{"rank": 1})
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	body := decodeBody(t, resp.Body)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(1), body["rank"])
}

func decodeBody(t *testing.T, r io.Reader) map[string]interface{} {
	t.Helper()
	raw, err := io.ReadAll(r)
	require.NoError(t, err)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}
