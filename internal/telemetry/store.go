package telemetry

import (
	"errors"
	"sync"

	"github.com/radioburst/catpower/internal/bands"
)

const (
	// MinTargetPower and MaxTargetPower bound externally written target
	// power values (watts).
	MinTargetPower = 0
	MaxTargetPower = 10000

	// HistoryCapacity is the maximum number of readings kept; the oldest
	// reading is evicted first.
	HistoryCapacity = 1000
)

var ErrTargetPowerOutOfRange = errors.New("target power out of range")

// Reading is one telemetry sample produced by the controller at the end
// of a control cycle. Immutable once constructed.
type Reading struct {
	Timestamp   int64   `json:"timestamp"`
	Power       float64 `json:"power"`
	TargetPower int     `json:"target_power"`
	Drive       int     `json:"drive"`
	Swr         float64 `json:"swr"`
}

// Store is the shared state between the control loop and the REST api.
//
// Every field is guarded by its own lock, held only for the duration of
// a copy or assignment, never across a device round-trip. Single writer
// per field: the control loop owns frequency and history, the api owns
// the target power.
type Store struct {
	targetPowerMutex sync.Mutex
	targetPower      int

	frequencyMutex sync.Mutex
	frequencyHz    int

	historyMutex sync.Mutex
	history      []Reading
}

func NewStore(initialTargetPower int) *Store {
	return &Store{
		targetPower: initialTargetPower,
	}
}

// GetTargetPower returns the current target power in watts.
func (s *Store) GetTargetPower() int {
	s.targetPowerMutex.Lock()
	defer s.targetPowerMutex.Unlock()
	return s.targetPower
}

// SetTargetPower updates the target power. Values outside
// [MinTargetPower, MaxTargetPower] are rejected and leave the current
// value untouched.
func (s *Store) SetTargetPower(watts int) error {
	if watts < MinTargetPower || watts > MaxTargetPower {
		return ErrTargetPowerOutOfRange
	}
	s.targetPowerMutex.Lock()
	defer s.targetPowerMutex.Unlock()
	s.targetPower = watts
	return nil
}

// SetFrequency stores the most recently observed frequency in Hz.
func (s *Store) SetFrequency(hz int) {
	s.frequencyMutex.Lock()
	defer s.frequencyMutex.Unlock()
	s.frequencyHz = hz
}

// GetFrequency returns the current frequency in Hz together with the
// derived band label.
func (s *Store) GetFrequency() (int, string) {
	s.frequencyMutex.Lock()
	hz := s.frequencyHz
	s.frequencyMutex.Unlock()
	return hz, bands.Lookup(float64(hz) / 1000000.0)
}

// AppendHistory appends the given reading, evicting the oldest one once
// the capacity is reached.
func (s *Store) AppendHistory(reading Reading) {
	s.historyMutex.Lock()
	defer s.historyMutex.Unlock()
	s.history = append(s.history, reading)
	if len(s.history) > HistoryCapacity {
		s.history = s.history[len(s.history)-HistoryCapacity:]
	}
}

// HistorySnapshot returns a copy of the current history, oldest first.
func (s *Store) HistorySnapshot() []Reading {
	s.historyMutex.Lock()
	defer s.historyMutex.Unlock()
	snapshot := make([]Reading, len(s.history))
	copy(snapshot, s.history)
	return snapshot
}

// LatestReading returns the most recent reading, if any.
func (s *Store) LatestReading() (Reading, bool) {
	s.historyMutex.Lock()
	defer s.historyMutex.Unlock()
	if len(s.history) == 0 {
		return Reading{}, false
	}
	return s.history[len(s.history)-1], true
}

// HistoryLen returns the number of readings currently held.
func (s *Store) HistoryLen() int {
	s.historyMutex.Lock()
	defer s.historyMutex.Unlock()
	return len(s.history)
}
