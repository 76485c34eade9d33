// handlers/leaderboard.go - Leaderboard endpoints
package handlers

import (
	"hackreg/middleware"
	"hackreg/services"

	"github.com/gofiber/fiber/v2"
)

// GetLeaderboard returns the full ranked leaderboard
// GET /api/leaderboard
func GetLeaderboard(c *fiber.Ctx) error {
	entries, err := leaderboardService.Leaderboard()
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"leaderboard": entries})
}

// GetOwnRank returns the caller's leaderboard position
// GET /api/leaderboard/rank
func GetOwnRank(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	entry, err := leaderboardService.RankOf(user.ID)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, ownRankPayload(entry))
}

func ownRankPayload(entry *services.LeaderboardEntry) fiber.Map {
	return fiber.Map{"rank": entry.Rank, "points": entry.TotalPoints}
}

// RecomputeLeaderboard rebuilds cached point totals. Admin only.
// POST /api/leaderboard/recompute
func RecomputeLeaderboard(c *fiber.Ctx) error {
	updated, err := leaderboardService.RecomputePoints()
	if err != nil {
		return fail(c, err)
	}
	pushLeaderboardNow()
	return ok(c, fiber.Map{"updated": updated})
}
