package services

import (
	"testing"

	"hackreg/models"

	"github.com/stretchr/testify/assert"
)

func testParticipantService() *ParticipantService {
	return &ParticipantService{affiliatedDomain: "cmu.edu"}
}

func TestTriageRankOrdering(t *testing.T) {
	// Least-processed-but-actionable applicants come first.
	order := []models.Status{
		models.StatusCompletedProfile,
		models.StatusAdmitted,
		models.StatusConfirmed,
		models.StatusDeclined,
		models.StatusRejected,
		models.StatusVerified,
		models.StatusUnverified,
	}
	for i := 1; i < len(order); i++ {
		assert.Less(t, triageRank(order[i-1]), triageRank(order[i]),
			"%s must triage before %s", order[i-1], order[i])
	}
}

func TestTriageRankWaitlistedGroupsWithAdmitted(t *testing.T) {
	assert.Equal(t, triageRank(models.StatusAdmitted), triageRank(models.StatusWaitlisted))
}

func TestTriageRankUnknownSortsLast(t *testing.T) {
	assert.Greater(t, triageRank(models.Status("BOGUS")), triageRank(models.StatusUnverified))
}

func TestSortForTriage(t *testing.T) {
	s := testParticipantService()
	participants := []Participant{
		{ID: 1, Email: "a@gmail.com", Status: models.StatusVerified},
		{ID: 2, Email: "b@cmu.edu", Status: models.StatusCompletedProfile},
		{ID: 3, Email: "c@gmail.com", Status: models.StatusCompletedProfile},
		{ID: 4, Email: "d@cmu.edu", Status: models.StatusAdmitted},
		{ID: 5, Email: "e@aol.com", Status: models.StatusCompletedProfile},
	}
	s.sortForTriage(participants)

	got := make([]uint, len(participants))
	for i, p := range participants {
		got[i] = p.ID
	}
	// Completed profiles first (affiliated email leading), then admitted,
	// then merely verified.
	assert.Equal(t, []uint{2, 5, 3, 4, 1}, got)
}

func TestIsAffiliated(t *testing.T) {
	s := testParticipantService()
	assert.True(t, s.isAffiliated("student@cmu.edu"))
	assert.True(t, s.isAffiliated("student@andrew.cmu.edu"))
	assert.True(t, s.isAffiliated("STUDENT@CMU.EDU"))
	assert.False(t, s.isAffiliated("student@gmail.com"))
	assert.False(t, s.isAffiliated("student@notcmu.edu"))
	assert.False(t, s.isAffiliated("no-at-sign"))
}

func TestDomainLess(t *testing.T) {
	s := testParticipantService()
	assert.True(t, s.domainLess("z@cmu.edu", "a@gmail.com"), "affiliated domain sorts first")
	assert.False(t, s.domainLess("a@gmail.com", "z@cmu.edu"))
	assert.True(t, s.domainLess("a@aol.com", "a@gmail.com"), "otherwise domains ascend")
	assert.True(t, s.domainLess("a@gmail.com", "b@gmail.com"), "same domain falls back to full address")
}

func TestEmailDomain(t *testing.T) {
	assert.Equal(t, "cmu.edu", emailDomain("someone@CMU.edu"))
	assert.Equal(t, "b.com", emailDomain("weird@a@b.com"))
	assert.Equal(t, "", emailDomain("missing"))
}
