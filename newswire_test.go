package newswire_test

import (
	"errors"
	"testing"

	"github.com/fwojciec/newswire"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := newswire.Errorf(newswire.ENOTFOUND, "source %q not found", "test")

	assert.Equal(t, newswire.ENOTFOUND, newswire.ErrorCode(err))
	assert.Equal(t, "source \"test\" not found", newswire.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, newswire.ErrorCode(nil))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, newswire.EINTERNAL, newswire.ErrorCode(errors.New("boom")))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, newswire.ErrorMessage(nil))
}
