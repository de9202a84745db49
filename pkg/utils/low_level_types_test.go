package utils

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestXError(t *testing.T) {
	cause := errors.New("connection refused")
	err := XError{Reason: "loading conversation", Meta: cause}.ToError()
	assert.EqualError(t, err, "xerror: loading conversation: connection refused")
	assert.ErrorIs(t, err, cause)

	bare := XError{Reason: "no meta"}.ToError()
	assert.EqualError(t, bare, "xerror: no meta")
	assert.Nil(t, errors.Unwrap(bare))
}
