package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendUnknownTemplate(t *testing.T) {
	n := &SMTPNotifier{}
	err := n.Send([]string{"a@b.com"}, "subject", "no-such-template", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no-such-template")
}

func TestSendWithoutHostLogsOnly(t *testing.T) {
	// No SMTP_HOST means degraded mode: log and report success so callers
	// never fail the primary operation on email trouble.
	n := &SMTPNotifier{}
	err := n.Send([]string{"a@b.com"}, "Welcome", TemplateWelcome, map[string]string{"name": "Alice"})
	assert.NoError(t, err)
}

func TestAllTemplatesExist(t *testing.T) {
	for _, key := range []string{
		TemplateVerification, TemplateWelcome, TemplateAcceptance,
		TemplateRejection, TemplateWaitlist, TemplateConfirmation,
		TemplatePasswordReset,
	} {
		assert.Contains(t, plainBodies, key)
	}
}
