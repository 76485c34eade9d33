package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusImpliesReflexive(t *testing.T) {
	all := []Status{
		StatusUnverified, StatusVerified, StatusCompletedProfile,
		StatusAdmitted, StatusRejected, StatusWaitlisted,
		StatusConfirmed, StatusDeclined,
	}
	for _, s := range all {
		assert.True(t, StatusImplies(s, s), "status %s should imply itself", s)
	}
}

func TestStatusImpliesProgression(t *testing.T) {
	cases := []struct {
		src, tgt Status
		want     bool
	}{
		{StatusVerified, StatusUnverified, true},
		{StatusCompletedProfile, StatusVerified, true},
		{StatusAdmitted, StatusCompletedProfile, true},
		{StatusAdmitted, StatusVerified, true},
		{StatusConfirmed, StatusCompletedProfile, true},
		{StatusConfirmed, StatusAdmitted, true},
		{StatusDeclined, StatusAdmitted, true},

		// Lower never implies higher.
		{StatusUnverified, StatusVerified, false},
		{StatusVerified, StatusAdmitted, false},
		{StatusCompletedProfile, StatusConfirmed, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, StatusImplies(tc.src, tc.tgt),
			"implies(%s, %s)", tc.src, tc.tgt)
	}
}

func TestStatusImpliesSiblingOutcomes(t *testing.T) {
	// Same-level outcomes are mutually exclusive decisions, never
	// interchangeable.
	assert.False(t, StatusImplies(StatusAdmitted, StatusRejected))
	assert.False(t, StatusImplies(StatusRejected, StatusAdmitted))
	assert.False(t, StatusImplies(StatusConfirmed, StatusDeclined))
	assert.False(t, StatusImplies(StatusDeclined, StatusConfirmed))
}

func TestStatusImpliesExactOnly(t *testing.T) {
	// REJECTED and WAITLISTED match nothing but themselves, in either
	// direction.
	assert.True(t, StatusImplies(StatusRejected, StatusRejected))
	assert.True(t, StatusImplies(StatusWaitlisted, StatusWaitlisted))

	assert.False(t, StatusImplies(StatusRejected, StatusCompletedProfile))
	assert.False(t, StatusImplies(StatusRejected, StatusVerified))
	assert.False(t, StatusImplies(StatusWaitlisted, StatusCompletedProfile))
	assert.False(t, StatusImplies(StatusWaitlisted, StatusAdmitted))
	assert.False(t, StatusImplies(StatusConfirmed, StatusWaitlisted))
	assert.False(t, StatusImplies(StatusConfirmed, StatusRejected))
}

func TestStatusImpliesUnknown(t *testing.T) {
	assert.False(t, StatusImplies(Status("BOGUS"), StatusVerified))
	assert.False(t, StatusImplies(StatusVerified, Status("BOGUS")))
}

func TestStatusLevel(t *testing.T) {
	level, err := StatusLevel(StatusAdmitted)
	require.NoError(t, err)
	rejectedLevel, err := StatusLevel(StatusRejected)
	require.NoError(t, err)
	assert.Equal(t, level, rejectedLevel, "admit and reject are one decision point")

	_, err = StatusLevel(Status("BOGUS"))
	require.Error(t, err)
	var unknown *ErrUnknownStatus
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, Status("BOGUS"), unknown.Value)
}

func TestStatusValid(t *testing.T) {
	assert.True(t, StatusVerified.Valid())
	assert.True(t, StatusWaitlisted.Valid())
	assert.False(t, Status("").Valid())
	assert.False(t, Status("verified").Valid())
}

func TestStatusFromLegacyFlags(t *testing.T) {
	admitted := true
	rejected := false

	cases := []struct {
		name  string
		flags LegacyStatusFlags
		want  Status
	}{
		{"empty", LegacyStatusFlags{}, StatusUnverified},
		{"verified only", LegacyStatusFlags{Verified: true}, StatusVerified},
		{"completed profile", LegacyStatusFlags{Verified: true, CompletedProfile: true}, StatusCompletedProfile},
		{"admitted", LegacyStatusFlags{Verified: true, CompletedProfile: true, Admitted: &admitted}, StatusAdmitted},
		{"rejected", LegacyStatusFlags{Verified: true, CompletedProfile: true, Admitted: &rejected}, StatusRejected},
		{"confirmed", LegacyStatusFlags{Verified: true, CompletedProfile: true, Admitted: &admitted, Confirmed: true}, StatusConfirmed},
		{"declined wins over confirmed", LegacyStatusFlags{Verified: true, CompletedProfile: true, Admitted: &admitted, Confirmed: true, Declined: true}, StatusDeclined},
		// Inconsistent legacy rows resolve by precedence, not plausibility.
		{"declined without admission", LegacyStatusFlags{Declined: true}, StatusDeclined},
		{"confirmed without verification", LegacyStatusFlags{Confirmed: true}, StatusConfirmed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, StatusFromLegacyFlags(tc.flags))
		})
	}
}
