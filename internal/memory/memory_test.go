package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetAbsentKey(t *testing.T) {
	// GIVEN
	driveMemory := NewDriveMemory()

	// WHEN
	_, found := driveMemory.Get(LearnKey{FrequencyKhz: 14000, TargetPower: 100})

	// THEN
	assert.False(t, found)
}

func TestPutAndGet(t *testing.T) {
	// GIVEN
	driveMemory := NewDriveMemory()
	key := LearnKey{FrequencyKhz: 14000, TargetPower: 100}

	// WHEN
	driveMemory.Put(key, 42)
	driveLevel, found := driveMemory.Get(key)

	// THEN
	assert.True(t, found)
	assert.Equal(t, 42, driveLevel)
	assert.Equal(t, 1, driveMemory.Len())
}

func TestPutOverwrites(t *testing.T) {
	// GIVEN
	driveMemory := NewDriveMemory()
	key := LearnKey{FrequencyKhz: 7074, TargetPower: 50}
	driveMemory.Put(key, 30)

	// WHEN
	driveMemory.Put(key, 35)

	// THEN
	driveLevel, found := driveMemory.Get(key)
	assert.True(t, found)
	assert.Equal(t, 35, driveLevel)
	assert.Equal(t, 1, driveMemory.Len())
}

func TestKeyEqualityByValue(t *testing.T) {
	// GIVEN
	driveMemory := NewDriveMemory()
	driveMemory.Put(LearnKey{FrequencyKhz: 14000, TargetPower: 100}, 42)

	// WHEN
	driveLevel, found := driveMemory.Get(LearnKey{FrequencyKhz: 14000, TargetPower: 100})

	// THEN
	assert.True(t, found)
	assert.Equal(t, 42, driveLevel)

	// same frequency, different target power is a different key
	_, found = driveMemory.Get(LearnKey{FrequencyKhz: 14000, TargetPower: 50})
	assert.False(t, found)
}

func TestLearnKeyString(t *testing.T) {
	assert.Equal(t, "14000:100", LearnKey{FrequencyKhz: 14000, TargetPower: 100}.String())
}
