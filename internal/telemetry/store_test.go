package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTargetPowerInitialValue(t *testing.T) {
	store := NewStore(25)

	assert.Equal(t, 25, store.GetTargetPower())
}

func TestSetTargetPowerValidation(t *testing.T) {
	// GIVEN
	store := NewStore(25)

	// WHEN
	err := store.SetTargetPower(-1)

	// THEN
	assert.ErrorIs(t, err, ErrTargetPowerOutOfRange)
	assert.Equal(t, 25, store.GetTargetPower())

	// WHEN
	err = store.SetTargetPower(12000)

	// THEN
	assert.ErrorIs(t, err, ErrTargetPowerOutOfRange)
	assert.Equal(t, 25, store.GetTargetPower())

	// WHEN
	err = store.SetTargetPower(100)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 100, store.GetTargetPower())
}

func TestSetTargetPowerBounds(t *testing.T) {
	store := NewStore(25)

	assert.NoError(t, store.SetTargetPower(MinTargetPower))
	assert.NoError(t, store.SetTargetPower(MaxTargetPower))
}

func TestHistoryEviction(t *testing.T) {
	// GIVEN
	store := NewStore(25)

	// WHEN
	// one append more than the capacity
	for i := 1; i <= HistoryCapacity+1; i++ {
		store.AppendHistory(Reading{Timestamp: int64(i)})
	}

	// THEN
	// exactly the most recent readings remain, oldest first
	snapshot := store.HistorySnapshot()
	assert.Len(t, snapshot, HistoryCapacity)
	assert.Equal(t, int64(2), snapshot[0].Timestamp)
	assert.Equal(t, int64(HistoryCapacity+1), snapshot[len(snapshot)-1].Timestamp)
}

func TestHistoryInsertionOrder(t *testing.T) {
	// GIVEN
	store := NewStore(25)

	// WHEN
	for i := 1; i <= 5; i++ {
		store.AppendHistory(Reading{Timestamp: int64(i)})
	}

	// THEN
	snapshot := store.HistorySnapshot()
	assert.Len(t, snapshot, 5)
	for i, reading := range snapshot {
		assert.Equal(t, int64(i+1), reading.Timestamp)
	}
}

func TestHistorySnapshotIsACopy(t *testing.T) {
	// GIVEN
	store := NewStore(25)
	store.AppendHistory(Reading{Timestamp: 1})

	// WHEN
	snapshot := store.HistorySnapshot()
	snapshot[0].Timestamp = 99

	// THEN
	assert.Equal(t, int64(1), store.HistorySnapshot()[0].Timestamp)
}

func TestLatestReading(t *testing.T) {
	// GIVEN
	store := NewStore(25)

	// WHEN
	_, ok := store.LatestReading()

	// THEN
	assert.False(t, ok)

	// WHEN
	store.AppendHistory(Reading{Timestamp: 1, Power: 20})
	store.AppendHistory(Reading{Timestamp: 2, Power: 21})
	reading, ok := store.LatestReading()

	// THEN
	assert.True(t, ok)
	assert.Equal(t, int64(2), reading.Timestamp)
	assert.Equal(t, 21.0, reading.Power)
}

func TestFrequencyWithBandLabel(t *testing.T) {
	// GIVEN
	store := NewStore(25)

	// WHEN
	store.SetFrequency(14074000)
	hz, band := store.GetFrequency()

	// THEN
	assert.Equal(t, 14074000, hz)
	assert.Equal(t, "20m", band)
}

func TestFrequencyUnknownBand(t *testing.T) {
	store := NewStore(25)
	store.SetFrequency(2500000)

	_, band := store.GetFrequency()
	assert.Equal(t, "Unknown", band)
}
