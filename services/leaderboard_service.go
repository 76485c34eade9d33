// services/leaderboard_service.go - Check-in point leaderboard
package services

import (
	"sort"

	"hackreg/models"
	"hackreg/utils"

	"gorm.io/gorm"
)

// ScoredEntry is one participant's point total before ranking.
type ScoredEntry struct {
	UserID      uint   `json:"user_id"`
	DisplayName string `json:"display_name"`
	TotalPoints int    `json:"total_points"`
}

// LeaderboardEntry is a ranked row. Not persisted.
type LeaderboardEntry struct {
	UserID      uint   `json:"user_id"`
	DisplayName string `json:"display_name"`
	TotalPoints int    `json:"total_points"`
	Rank        int    `json:"rank"`
}

// LeaderboardService computes the ranked board over check-in point totals.
type LeaderboardService struct {
	db     *gorm.DB
	events *EventService
}

func NewLeaderboardService(db *gorm.DB, events *EventService) *LeaderboardService {
	return &LeaderboardService{db: db, events: events}
}

// Rank orders entries by competition ("1224") ranking: ties share the best
// rank of their group, so the next distinct score's rank equals the count of
// strictly better entries plus one. Within a tie group entries are presented
// by display name, then user id; the secondary order never changes the rank
// value. Ranks are 1-based.
func Rank(entries []ScoredEntry) []LeaderboardEntry {
	sorted := make([]ScoredEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].TotalPoints != sorted[j].TotalPoints {
			return sorted[i].TotalPoints > sorted[j].TotalPoints
		}
		if sorted[i].DisplayName != sorted[j].DisplayName {
			return sorted[i].DisplayName < sorted[j].DisplayName
		}
		return sorted[i].UserID < sorted[j].UserID
	})

	ranked := make([]LeaderboardEntry, 0, len(sorted))
	groupRank := 0
	for i, entry := range sorted {
		if i > 0 && entry.TotalPoints != sorted[i-1].TotalPoints {
			// First index of this tie group becomes the group's rank.
			groupRank = i
		}
		ranked = append(ranked, LeaderboardEntry{
			UserID:      entry.UserID,
			DisplayName: entry.DisplayName,
			TotalPoints: entry.TotalPoints,
			Rank:        groupRank + 1,
		})
	}
	return ranked
}

// Leaderboard returns the full ranked board for the current event.
// Recruiters have no profiles and so never appear.
func (s *LeaderboardService) Leaderboard() ([]LeaderboardEntry, error) {
	event, err := s.events.CurrentEvent()
	if err != nil {
		return nil, err
	}

	var entries []ScoredEntry
	err = s.db.Model(&models.Profile{}).
		Select("user_id, display_name, total_points").
		Where("event_id = ?", event.ID).
		Scan(&entries).Error
	if err != nil {
		return nil, utils.ServerErr("failed to load leaderboard")
	}
	return Rank(entries), nil
}

// RankOf returns a single user's ranked entry. NotFound if the user has no
// profile on the board.
func (s *LeaderboardService) RankOf(userID uint) (*LeaderboardEntry, error) {
	board, err := s.Leaderboard()
	if err != nil {
		return nil, err
	}
	for i := range board {
		if board[i].UserID == userID {
			return &board[i], nil
		}
	}
	return nil, utils.NotFound("User has no leaderboard entry")
}

// RecomputePoints reconciles every profile's cached total against the sum of
// its check-in item points, patching only stale rows. Safe to run at any
// time; normal check-ins keep the cache current incrementally.
func (s *LeaderboardService) RecomputePoints() (int64, error) {
	event, err := s.events.CurrentEvent()
	if err != nil {
		return 0, err
	}

	result := s.db.Exec(`
		UPDATE profiles SET total_points = sums.points
		FROM (
			SELECT c.user_id, COALESCE(SUM(i.points), 0) AS points
			FROM checkins c
			JOIN checkin_items i ON i.id = c.item_id
			WHERE c.event_id = ?
			GROUP BY c.user_id
		) sums
		WHERE profiles.user_id = sums.user_id
		  AND profiles.event_id = ?
		  AND profiles.total_points <> sums.points`,
		event.ID, event.ID,
	)
	if result.Error != nil {
		return 0, utils.ServerErr("failed to recompute points")
	}
	return result.RowsAffected, nil
}
