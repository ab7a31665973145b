package bands

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookup(t *testing.T) {
	// GIVEN
	expectedInputOutput := map[float64]string{
		1.9:    "160m",
		3.573:  "80m",
		7.074:  "40m",
		14.074: "20m",
		21.074: "15m",
		28.074: "10m",
		50.313: "6m",
		53.999: "6m",
	}

	for input, expected := range expectedInputOutput {
		// WHEN
		result := Lookup(input)

		// THEN
		assert.Equal(t, expected, result, "frequency: %f", input)
	}
}

func TestLookupUpperBoundExclusive(t *testing.T) {
	// 2.0 MHz is just past the top of 160m and inside no band
	assert.Equal(t, "Unknown", Lookup(2.0))
	assert.Equal(t, "Unknown", Lookup(54.0))
}

func TestLookupNoMatch(t *testing.T) {
	assert.Equal(t, "Unknown", Lookup(0.5))
	assert.Equal(t, "Unknown", Lookup(2.5))
	assert.Equal(t, "Unknown", Lookup(144.0))
}
