package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnsupportedErrorUnwrap(t *testing.T) {
	cause := errors.New("no adapter found")
	var err error = fmt.Errorf("acquire: %w", &UnsupportedError{Stage: "adapter", Err: cause})

	var target *UnsupportedError
	assert.True(t, errors.As(err, &target))
	assert.Equal(t, "adapter", target.Stage)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "no compatible adapter")
}

func TestSurfaceLostErrorMessage(t *testing.T) {
	assert.Equal(t, "surface lost", (&SurfaceLostError{}).Error())
	assert.Equal(t, "surface lost: outdated", (&SurfaceLostError{Err: errors.New("outdated")}).Error())
}

func TestSizeMismatchErrorMessage(t *testing.T) {
	err := &SizeMismatchError{Expected: 48, Actual: 44}
	assert.Equal(t, "uniform write size mismatch: expected 48 bytes, got 44", err.Error())
}
