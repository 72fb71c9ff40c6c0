package raceerr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapNilIsNil(t *testing.T) {
	assert.NoError(t, Wrap(Load, nil))
}

func TestWrapClassifiesWithErrorsIs(t *testing.T) {
	underlying := errors.New("disk full")
	err := Wrap(Load, underlying)

	require.Error(t, err)
	assert.True(t, errors.Is(err, Load))
	assert.False(t, errors.Is(err, Command))
	assert.True(t, errors.Is(err, underlying))
	assert.Equal(t, "disk full", err.Error())
}
