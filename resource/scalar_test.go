package resource_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/flowsim/flowsim/resource"
)

func TestScalarAddAndTotal(t *testing.T) {
	s := resource.NewScalar(10)
	s.Add(resource.NewScalar(5))
	assert.Equal(t, 15.0, s.Total())
}

func TestScalarRemoveWithdrawsUpToAvailable(t *testing.T) {
	s := resource.NewScalar(10)

	removed := s.Remove(4.0)
	assert.Equal(t, 4.0, removed.Total())
	assert.Equal(t, 6.0, s.Total())

	removed = s.Remove(100.0)
	assert.Equal(t, 6.0, removed.Total())
	assert.Equal(t, 0.0, s.Total())
}

func TestScalarRemoveNonPositiveQuantityIsNoOp(t *testing.T) {
	s := resource.NewScalar(10)
	removed := s.Remove(0.0)
	assert.Equal(t, 0.0, removed.Total())
	assert.Equal(t, 10.0, s.Total())
}

func TestScalarAddTypeMismatchPanics(t *testing.T) {
	s := resource.NewScalar(10)
	assert.Panics(t, func() { s.Add(resource.NewVector(1, 2)) })
}
