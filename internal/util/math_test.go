package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoerce(t *testing.T) {
	assert.Equal(t, 100, Coerce(101, 0, 100))
	assert.Equal(t, 0, Coerce(-1, 0, 100))
	assert.Equal(t, 42, Coerce(42, 0, 100))

	assert.Equal(t, 1.0, Coerce(1.5, 0.0, 1.0))
	assert.Equal(t, 0.0, Coerce(-0.5, 0.0, 1.0))
}

func TestAvg(t *testing.T) {
	// GIVEN
	values := []float64{1, 2, 3, 4}

	// WHEN
	result := Avg(values)

	// THEN
	assert.Equal(t, 2.5, result)
}

func TestAvgEmpty(t *testing.T) {
	assert.Equal(t, 0.0, Avg([]float64{}))
}

func TestLinearTrendRising(t *testing.T) {
	// GIVEN
	values := []float64{0, 1, 2, 3}

	// WHEN
	slope := LinearTrend(values)

	// THEN
	assert.InDelta(t, 1.0, slope, 0.0001)
}

func TestLinearTrendFalling(t *testing.T) {
	// GIVEN
	values := []float64{10, 8, 6, 4, 2}

	// WHEN
	slope := LinearTrend(values)

	// THEN
	assert.InDelta(t, -2.0, slope, 0.0001)
}

func TestLinearTrendConstant(t *testing.T) {
	assert.Equal(t, 0.0, LinearTrend([]float64{5, 5, 5, 5, 5}))
}

func TestLinearTrendTooFewSamples(t *testing.T) {
	assert.Equal(t, 0.0, LinearTrend([]float64{}))
	assert.Equal(t, 0.0, LinearTrend([]float64{1}))
}
