package services

import (
	"testing"

	"hackreg/models"
	"hackreg/utils"

	"github.com/stretchr/testify/assert"
)

const (
	testAdminID   uint = 10
	testInvitedID uint = 20
	testOtherID   uint = 30
)

func inviteRequest() *models.TeamRequest {
	return &models.TeamRequest{
		Type:   models.TeamRequestInvite,
		Status: models.TeamRequestPending,
		UserID: testInvitedID,
	}
}

func joinRequest() *models.TeamRequest {
	return &models.TeamRequest{
		Type:   models.TeamRequestJoin,
		Status: models.TeamRequestPending,
		UserID: testInvitedID,
	}
}

func TestAuthorizeInviteActions(t *testing.T) {
	// Invited user accepts or declines, team admin cancels.
	assert.NoError(t, authorizeRequestAction(inviteRequest(), testAdminID, testInvitedID, actionAccept))
	assert.NoError(t, authorizeRequestAction(inviteRequest(), testAdminID, testInvitedID, actionDecline))
	assert.NoError(t, authorizeRequestAction(inviteRequest(), testAdminID, testAdminID, actionCancel))

	assert.Error(t, authorizeRequestAction(inviteRequest(), testAdminID, testAdminID, actionAccept))
	assert.Error(t, authorizeRequestAction(inviteRequest(), testAdminID, testAdminID, actionDecline))
	assert.Error(t, authorizeRequestAction(inviteRequest(), testAdminID, testInvitedID, actionCancel))
}

func TestAuthorizeJoinActions(t *testing.T) {
	// Team admin accepts or declines, requesting user cancels.
	assert.NoError(t, authorizeRequestAction(joinRequest(), testAdminID, testAdminID, actionAccept))
	assert.NoError(t, authorizeRequestAction(joinRequest(), testAdminID, testAdminID, actionDecline))
	assert.NoError(t, authorizeRequestAction(joinRequest(), testAdminID, testInvitedID, actionCancel))

	assert.Error(t, authorizeRequestAction(joinRequest(), testAdminID, testInvitedID, actionAccept))
	assert.Error(t, authorizeRequestAction(joinRequest(), testAdminID, testInvitedID, actionDecline))
	assert.Error(t, authorizeRequestAction(joinRequest(), testAdminID, testAdminID, actionCancel))
}

func TestAuthorizeRejectsThirdParties(t *testing.T) {
	for _, action := range []requestAction{actionAccept, actionDecline, actionCancel} {
		err := authorizeRequestAction(inviteRequest(), testAdminID, testOtherID, action)
		assert.Error(t, err, "bystander must not %s an invite", action)
		assert.Equal(t, 403, utils.StatusOf(err))

		err = authorizeRequestAction(joinRequest(), testAdminID, testOtherID, action)
		assert.Error(t, err, "bystander must not %s a join request", action)
		assert.Equal(t, 403, utils.StatusOf(err))
	}
}

func TestRequestStatusTerminal(t *testing.T) {
	assert.False(t, models.TeamRequestPending.Terminal())
	assert.True(t, models.TeamRequestAccepted.Terminal())
	assert.True(t, models.TeamRequestDeclined.Terminal())
	assert.True(t, models.TeamRequestCancelled.Terminal())
}

func TestTeamHasMember(t *testing.T) {
	team := &models.Team{
		Members: []models.TeamMember{
			{UserID: 1},
			{UserID: 2},
		},
	}
	assert.True(t, teamHasMember(team, 1))
	assert.True(t, teamHasMember(team, 2))
	assert.False(t, teamHasMember(team, 3))
	assert.False(t, teamHasMember(&models.Team{}, 1))
}
