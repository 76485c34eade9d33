// database/migrate.go - Database Migration Runner
package database

import (
	"log"

	"hackreg/models"
)

// RunMigrations runs all database migrations
func RunMigrations() {
	db := GetDB()
	log.Println("🔄 Running database migrations...")

	if err := db.AutoMigrate(
		&models.Event{},
		&models.Settings{},
		&models.User{},
		&models.StatusChange{},
		&models.Profile{},
		&models.Sponsor{},
		&models.Team{},
		&models.TeamMember{},
		&models.TeamRequest{},
		&models.CheckinItem{},
		&models.Checkin{},
		&models.Project{},
		&models.Prize{},
	); err != nil {
		log.Fatalf("❌ Failed to run migrations: %v", err)
	}

	createIndexes()
	migrateLegacyStatuses()

	log.Println("✅ All migrations completed successfully")
}

// createIndexes creates indexes GORM tags cannot express.
func createIndexes() {
	db := GetDB()

	// Case-insensitive unique email lookup
	db.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email_lower ON users(LOWER(email))")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_users_status ON users(status)")

	// Name search over profiles
	db.Exec("CREATE INDEX IF NOT EXISTS idx_profiles_first_name ON profiles(LOWER(first_name))")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_profiles_last_name ON profiles(LOWER(last_name))")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_profiles_display_name ON profiles(LOWER(display_name))")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_profiles_points ON profiles(total_points DESC)")

	// Request adjudication paths
	db.Exec("CREATE INDEX IF NOT EXISTS idx_team_requests_team_pending ON team_requests(team_id) WHERE status = 'PENDING'")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_team_requests_user_pending ON team_requests(user_id) WHERE status = 'PENDING'")
}

// migrateLegacyStatuses collapses any rows still carrying the legacy
// multi-boolean status columns into the status enum. Runs once; a no-op on
// databases that never had the old shape.
func migrateLegacyStatuses() {
	db := GetDB()

	var hasLegacy bool
	db.Raw(`SELECT EXISTS (
		SELECT 1 FROM information_schema.columns
		WHERE table_name = 'users' AND column_name = 'completed_profile'
	)`).Scan(&hasLegacy)
	if !hasLegacy {
		return
	}

	log.Println("🔄 Collapsing legacy status flags into status enum...")

	type legacyRow struct {
		ID               uint
		Verified         bool
		CompletedProfile bool
		Admitted         *bool
		Confirmed        bool
		Declined         bool
	}
	var rows []legacyRow
	db.Raw(`SELECT id, verified, completed_profile, admitted, confirmed, declined FROM users`).Scan(&rows)

	for _, row := range rows {
		status := models.StatusFromLegacyFlags(models.LegacyStatusFlags{
			Verified:         row.Verified,
			CompletedProfile: row.CompletedProfile,
			Admitted:         row.Admitted,
			Confirmed:        row.Confirmed,
			Declined:         row.Declined,
		})
		db.Exec("UPDATE users SET status = ? WHERE id = ?", status, row.ID)
	}

	db.Exec("ALTER TABLE users DROP COLUMN IF EXISTS verified")
	db.Exec("ALTER TABLE users DROP COLUMN IF EXISTS completed_profile")
	db.Exec("ALTER TABLE users DROP COLUMN IF EXISTS admitted")
	db.Exec("ALTER TABLE users DROP COLUMN IF EXISTS confirmed")
	db.Exec("ALTER TABLE users DROP COLUMN IF EXISTS declined")

	log.Printf("✅ Migrated %d legacy status rows", len(rows))
}
