package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRegistrationWindow(t *testing.T) {
	now := time.Now()
	before := now.Add(-time.Hour).UnixMilli()
	after := now.Add(time.Hour).UnixMilli()

	cases := []struct {
		name     string
		settings Settings
		want     bool
	}{
		{"no bounds", Settings{}, true},
		{"open in the past", Settings{TimeOpen: before}, true},
		{"opens in the future", Settings{TimeOpen: after}, false},
		{"closes in the future", Settings{TimeClose: after}, true},
		{"closed in the past", Settings{TimeClose: before}, false},
		{"inside window", Settings{TimeOpen: before, TimeClose: after}, true},
		{"window over", Settings{TimeOpen: before, TimeClose: before}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.settings.IsRegistrationOpen(now))
		})
	}
}

func TestConfirmationWindow(t *testing.T) {
	now := time.Now()
	before := now.Add(-time.Hour).UnixMilli()
	after := now.Add(time.Hour).UnixMilli()

	// The confirmation deadline is independent of the registration close:
	// confirmations typically stay open after registration closes.
	s := Settings{TimeOpen: before, TimeClose: before, TimeConfirm: after}
	assert.False(t, s.IsRegistrationOpen(now))
	assert.True(t, s.IsConfirmationOpen(now))

	s.TimeConfirm = before
	assert.False(t, s.IsConfirmationOpen(now))

	s.TimeConfirm = 0
	assert.True(t, s.IsConfirmationOpen(now), "zero deadline means no bound")
}
