package utils

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorStatusCodes(t *testing.T) {
	assert.Equal(t, 400, StatusOf(Bad("nope")))
	assert.Equal(t, 404, StatusOf(NotFound("missing")))
	assert.Equal(t, 403, StatusOf(Unauthorized("denied")))
	assert.Equal(t, 500, StatusOf(ServerErr("boom")))
}

func TestStatusOfPlainError(t *testing.T) {
	assert.Equal(t, 500, StatusOf(errors.New("plain")))
	assert.Equal(t, 500, StatusOf(nil))
}

func TestStatusOfWrappedError(t *testing.T) {
	wrapped := fmt.Errorf("while joining: %w", Bad("That team is already full!"))
	assert.Equal(t, 400, StatusOf(wrapped))
	assert.True(t, IsValidation(wrapped))
}

func TestErrorMessagePassthrough(t *testing.T) {
	err := Bad("That team is already full!")
	assert.Equal(t, "That team is already full!", err.Error())
}

func TestClassifiers(t *testing.T) {
	assert.True(t, IsValidation(Bad("x")))
	assert.False(t, IsValidation(NotFound("x")))
	assert.True(t, IsNotFound(NotFound("x")))
	assert.False(t, IsNotFound(Unauthorized("x")))
}
