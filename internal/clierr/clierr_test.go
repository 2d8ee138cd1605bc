package clierr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessage(t *testing.T) {
	err := Newf(NamespaceNotFound, "No Taskfile found for namespace '%s'", "dev")
	assert.Equal(t, "No Taskfile found for namespace 'dev'", err.Error())
	assert.Equal(t, NamespaceNotFound, err.Code)
}

func TestWithDetails(t *testing.T) {
	err := New(InvalidRegex, "invalid regex").WithDetails(map[string]any{"regex": "["})
	assert.Equal(t, "[", err.Details["regex"])
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 1, New(NamespaceNotFound, "x").ExitCode())
	assert.Equal(t, 1, New(EmptyFilter, "x").ExitCode())
	assert.Equal(t, 2, New(InternalError, "x").ExitCode())
}

func TestSilentError(t *testing.T) {
	err := &SilentError{Code: 1}
	assert.Equal(t, "exit 1", err.Error())
}
