package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_ErrorAndUnwrap(t *testing.T) {
	cause := stderrors.New("boom")
	err := Wrap(cause, ErrCodeInternal, "saving session")

	assert.Equal(t, "saving session: boom", err.Error())
	assert.True(t, stderrors.Is(err, cause))
}

func TestCodePredicates(t *testing.T) {
	assert.True(t, IsUnauthenticated(Unauthenticated("no session")))
	assert.True(t, IsForbidden(Forbidden("role mismatch")))
	assert.True(t, IsUpstream(Upstream("invalid credentials")))
	assert.False(t, IsUpstream(NotFound("missing")))

	// Predicates see through wrapping.
	wrapped := fmt.Errorf("handler: %w", Unauthenticated("no session"))
	assert.True(t, IsUnauthenticated(wrapped))
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "Invalid credentials. Please try again.",
		UserMessage(Upstream("Invalid credentials. Please try again.")))
	assert.Equal(t, "name is required", UserMessage(Validation("name is required")))
	assert.Equal(t, "Something went wrong. Please try again.",
		UserMessage(Internal("redis down")))
	assert.Equal(t, "Something went wrong. Please try again.",
		UserMessage(stderrors.New("plain")))
}
