package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	err := NotFound("blog not found")
	assert.Equal(t, "blog not found", err.Error())

	cause := stderrors.New("row missing")
	wrapped := Wrap(cause, ErrCodeNotFound, "blog not found")
	assert.Equal(t, "blog not found: row missing", wrapped.Error())
	assert.ErrorIs(t, wrapped, cause)
}

func TestCodePredicates(t *testing.T) {
	assert.True(t, IsNotFound(NotFound("x")))
	assert.True(t, IsConflict(Conflict("x")))
	assert.True(t, IsValidation(Validation("x")))
	assert.True(t, IsForbidden(Forbidden("x")))
	assert.True(t, IsInternal(Internal("x")))

	assert.False(t, IsNotFound(Conflict("x")))
	assert.False(t, IsNotFound(stderrors.New("plain")))
	assert.False(t, IsNotFound(nil))
}

func TestPredicatesSeeThroughWrapping(t *testing.T) {
	inner := Forbidden("no access")
	outer := stderrors.Join(stderrors.New("handler"), inner)
	assert.True(t, IsForbidden(outer))
}

func TestGetCodeAndField(t *testing.T) {
	assert.Equal(t, ErrCodeValidation, GetCode(ValidationField("email", "taken")))
	assert.Equal(t, "email", GetField(ValidationField("email", "taken")))

	assert.Equal(t, ErrorCode(""), GetCode(stderrors.New("plain")))
	assert.Equal(t, "", GetField(stderrors.New("plain")))
}

func TestWrapNil(t *testing.T) {
	require.Nil(t, Wrap(nil, ErrCodeInternal, "x"))
	require.Nil(t, Wrapf(nil, ErrCodeInternal, "x %d", 1))
}
