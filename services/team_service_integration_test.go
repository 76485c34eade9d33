// services/team_service_integration_test.go
package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"hackreg/models"
	"hackreg/utils"
)

// setupTeamDB starts a throwaway Postgres container and returns a migrated
// connection. Skips when Docker is unavailable.
func setupTeamDB(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("hackreg_test"),
		tcpostgres.WithUsername("hackreg"),
		tcpostgres.WithPassword("hackreg"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(45*time.Second)),
	)
	if err != nil {
		t.Skipf("could not start postgres container: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate postgres container: %v", err)
		}
	})

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(gormpostgres.Open(connStr), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Event{},
		&models.Settings{},
		&models.User{},
		&models.Team{},
		&models.TeamMember{},
		&models.TeamRequest{},
	))
	return db
}

func seedTeam(t *testing.T, db *gorm.DB, eventID uint, name string, memberIDs ...uint) *models.Team {
	t.Helper()
	team := models.Team{EventID: eventID, Name: name, AdminID: memberIDs[0]}
	require.NoError(t, db.Create(&team).Error)
	for _, uid := range memberIDs {
		require.NoError(t, db.Create(&models.TeamMember{
			EventID:  eventID,
			TeamID:   team.ID,
			UserID:   uid,
			JoinedAt: time.Now(),
		}).Error)
	}
	return &team
}

// Two accepts racing for the last open slot: exactly one membership row is
// written, the loser gets the team-full validation error and no row.
func TestAddMemberGuardedConcurrentLastSlot(t *testing.T) {
	if testing.Short() {
		t.Skip("requires docker")
	}
	db := setupTeamDB(t)
	svc := &TeamService{db: db}

	const (
		eventID = uint(1)
		maxSize = 4
	)
	team := seedTeam(t, db, eventID, "race-team", 1, 2, 3)

	start := make(chan struct{})
	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for _, uid := range []uint{4, 5} {
		wg.Add(1)
		go func(uid uint) {
			defer wg.Done()
			<-start
			errs <- svc.addMemberGuarded(eventID, team.ID, uid, maxSize)
		}(uid)
	}
	close(start)
	wg.Wait()
	close(errs)

	var wins, losses int
	for err := range errs {
		if err == nil {
			wins++
			continue
		}
		losses++
		assert.Equal(t, 400, utils.StatusOf(err))
		assert.EqualError(t, err, "That team is already full!")
	}
	assert.Equal(t, 1, wins, "exactly one racer should claim the last slot")
	assert.Equal(t, 1, losses)

	var members int64
	require.NoError(t, db.Model(&models.TeamMember{}).
		Where("team_id = ?", team.ID).Count(&members).Error)
	assert.EqualValues(t, maxSize, members)
}

// A joiner who raced onto another team gets the membership error, not the
// capacity one, even when the target team has room.
func TestAddMemberGuardedAlreadyOnTeam(t *testing.T) {
	if testing.Short() {
		t.Skip("requires docker")
	}
	db := setupTeamDB(t)
	svc := &TeamService{db: db}

	const eventID = uint(1)
	seedTeam(t, db, eventID, "first-team", 10, 11)
	other := seedTeam(t, db, eventID, "second-team", 20)

	err := svc.addMemberGuarded(eventID, other.ID, 11, 4)
	require.Error(t, err)
	assert.Equal(t, 400, utils.StatusOf(err))
	assert.EqualError(t, err, "You're already in a team!")

	var members int64
	require.NoError(t, db.Model(&models.TeamMember{}).
		Where("team_id = ?", other.ID).Count(&members).Error)
	assert.EqualValues(t, 1, members)
}
