// handlers/init.go - Handler wiring
package handlers

import (
	"hackreg/database"
	"hackreg/services"
	"hackreg/utils"

	"github.com/gofiber/fiber/v2"
)

var (
	eventService       *services.EventService
	authService        *services.AuthService
	statusService      *services.StatusService
	teamService        *services.TeamService
	profileService     *services.ProfileService
	checkinService     *services.CheckinService
	leaderboardService *services.LeaderboardService
	participantService *services.ParticipantService
	projectService     *services.ProjectService
	sponsorService     *services.SponsorService
	objectStore        *services.DiskStore
)

// Init wires every service against the shared database connection. Must run
// after database.InitDB.
func Init(notifier services.Notifier) {
	db := database.GetDB()

	eventService = services.NewEventService(db)
	authService = services.NewAuthService(db, eventService, notifier)
	statusService = services.NewStatusService(db, eventService, notifier)
	teamService = services.NewTeamService(db, eventService)
	objectStore = services.NewDiskStore()
	profileService = services.NewProfileService(db, eventService, statusService, notifier, objectStore)
	checkinService = services.NewCheckinService(db, eventService)
	leaderboardService = services.NewLeaderboardService(db, eventService)
	participantService = services.NewParticipantService(db, eventService)
	projectService = services.NewProjectService(db, eventService, teamService)
	sponsorService = services.NewSponsorService(db, eventService)
}

// fail translates a typed service error into the uniform JSON error shape.
func fail(c *fiber.Ctx, err error) error {
	return c.Status(utils.StatusOf(err)).JSON(fiber.Map{
		"success": false,
		"error":   err.Error(),
	})
}

func ok(c *fiber.Ctx, data fiber.Map) error {
	payload := fiber.Map{"success": true}
	for k, v := range data {
		payload[k] = v
	}
	return c.JSON(payload)
}
