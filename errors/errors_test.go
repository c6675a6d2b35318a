package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentinelsAreDistinct(t *testing.T) {
	sentinels := []error{
		ErrUnknownConcept,
		ErrUnitMismatch,
		ErrLabelMismatch,
		ErrShapeMismatch,
		ErrFormat,
		ErrIntegrity,
		ErrNoData,
	}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i == j {
				assert.True(t, Is(a, b))
			} else {
				assert.False(t, Is(a, b))
			}
		}
	}
}

func TestWrappingPreservesSentinel(t *testing.T) {
	err := Wrapf(ErrUnitMismatch, "the unit %q is not equivalent to %q", "T", "A / m")
	assert.True(t, IsUnitMismatch(err))
	assert.False(t, IsUnknownConcept(err))
	assert.Contains(t, err.Error(), `"T"`)
}

func TestIsHelpersNilSafe(t *testing.T) {
	assert.False(t, IsUnknownConcept(nil))
	assert.False(t, IsUnitMismatch(nil))
	assert.False(t, IsFormat(nil))
}
