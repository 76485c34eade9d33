package services

import (
	"testing"

	"hackreg/models"

	"github.com/stretchr/testify/assert"
)

func TestVerificationSettled(t *testing.T) {
	// Only a fresh account may be flipped to VERIFIED by a token or code.
	assert.False(t, verificationSettled(&models.User{Status: models.StatusUnverified}))

	// Every later status is settled, including the admission decisions that
	// do not imply VERIFIED. Re-verifying a rejected or waitlisted applicant
	// must not reset them into the pipeline.
	settled := []models.Status{
		models.StatusVerified,
		models.StatusCompletedProfile,
		models.StatusAdmitted,
		models.StatusRejected,
		models.StatusWaitlisted,
		models.StatusConfirmed,
		models.StatusDeclined,
	}
	for _, s := range settled {
		assert.True(t, verificationSettled(&models.User{Status: s}), "status %s", s)
	}
}

func TestDomainWhitelisted(t *testing.T) {
	whitelist := "cmu.edu, pitt.edu"

	assert.True(t, domainWhitelisted("a@cmu.edu", whitelist))
	assert.True(t, domainWhitelisted("a@pitt.edu", whitelist))
	assert.True(t, domainWhitelisted("a@andrew.cmu.edu", whitelist), "subdomains count")
	assert.True(t, domainWhitelisted("a@CMU.EDU", whitelist))

	assert.False(t, domainWhitelisted("a@gmail.com", whitelist))
	assert.False(t, domainWhitelisted("a@notcmu.edu", whitelist))
	assert.False(t, domainWhitelisted("a@cmu.edu", ""))
	assert.False(t, domainWhitelisted("no-at-sign", whitelist))
}

func TestRandomCode(t *testing.T) {
	a := randomCode(6)
	b := randomCode(6)
	assert.Len(t, a, 6)
	assert.Len(t, b, 6)
	assert.NotEqual(t, a, b)
	assert.Len(t, randomCode(32), 32)
}
