package memory

import (
	"fmt"

	cmap "github.com/orcaman/concurrent-map/v2"
)

// LearnKey identifies a learned drive level by the operating frequency
// and the target power it was captured for.
type LearnKey struct {
	FrequencyKhz int
	TargetPower  int
}

func (k LearnKey) String() string {
	return fmt.Sprintf("%d:%d", k.FrequencyKhz, k.TargetPower)
}

// DriveMemory remembers the last drive level that held power close to
// the target for a given (frequency, target power) pair. Entries are
// overwritten unconditionally and never evicted; the cache only lives
// for the duration of one operating session.
type DriveMemory struct {
	entries cmap.ConcurrentMap[LearnKey, int]
}

func NewDriveMemory() *DriveMemory {
	return &DriveMemory{
		entries: cmap.NewStringer[LearnKey, int](),
	}
}

// Get returns the learned drive level for the given key, if any.
func (m *DriveMemory) Get(key LearnKey) (int, bool) {
	return m.entries.Get(key)
}

// Put stores the given drive level for the given key, replacing any
// existing entry.
func (m *DriveMemory) Put(key LearnKey, driveLevel int) {
	m.entries.Set(key, driveLevel)
}

// Len returns the number of learned entries.
func (m *DriveMemory) Len() int {
	return m.entries.Count()
}
