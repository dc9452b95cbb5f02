package vestbook

import (
	"iter"
	"slices"

	"cosmossdk.io/math"
)

// ScheduleStore is the exclusive owner of schedule records.
//
// A schedule is created exactly once per key and lives indefinitely; it is
// mutated solely through claim operations that monotonically increase its
// Released counter. No other component mutates schedules directly.
type ScheduleStore struct {
	schedules map[ScheduleKey]*Schedule
}

// NewScheduleStore creates an empty store.
func NewScheduleStore() *ScheduleStore {
	return &ScheduleStore{schedules: make(map[ScheduleKey]*Schedule)}
}

// Len returns the number of recorded schedules.
func (st *ScheduleStore) Len() int { return len(st.schedules) }

// Has reports whether a schedule exists for key.
func (st *ScheduleStore) Has(key ScheduleKey) bool {
	_, ok := st.schedules[key]
	return ok
}

// Get returns a copy of the schedule for key. Callers never receive a
// reference into the store.
func (st *ScheduleStore) Get(key ScheduleKey) (Schedule, bool) {
	s, ok := st.schedules[key]
	if !ok {
		return Schedule{}, false
	}
	return *s, true
}

// Create records a new schedule. It fails with ErrDuplicateSchedule if one
// already exists for the same key, leaving the existing record untouched.
func (st *ScheduleStore) Create(s Schedule) error {
	if err := s.Validate(); err != nil {
		return err
	}
	key := s.Key()
	if _, ok := st.schedules[key]; ok {
		return ErrDuplicateSchedule.Wrapf("asset %s beneficiary %s", key.Asset, key.Beneficiary)
	}
	record := s
	st.schedules[key] = &record
	return nil
}

// addReleased increases the released counter of an existing schedule. The
// bound against the matured amount is checked by the engine before any
// mutation; this accessor only preserves store ownership.
func (st *ScheduleStore) addReleased(key ScheduleKey, amount math.Int) {
	s, ok := st.schedules[key]
	if !ok {
		panic("vestbook: addReleased on missing schedule")
	}
	s.Released = s.Released.Add(amount)
}

// Keys returns all schedule keys in deterministic order (asset, then
// beneficiary).
func (st *ScheduleStore) Keys() []ScheduleKey {
	keys := make([]ScheduleKey, 0, len(st.schedules))
	for key := range st.schedules {
		keys = append(keys, key)
	}
	slices.SortFunc(keys, func(a, b ScheduleKey) int {
		if a.Asset != b.Asset {
			if a.Asset < b.Asset {
				return -1
			}
			return 1
		}
		if a.Beneficiary < b.Beneficiary {
			return -1
		}
		if a.Beneficiary > b.Beneficiary {
			return 1
		}
		return 0
	})
	return keys
}

// All returns an iterator over copies of all schedules in deterministic
// order.
func (st *ScheduleStore) All() iter.Seq[Schedule] {
	return func(yield func(Schedule) bool) {
		for _, key := range st.Keys() {
			if !yield(*st.schedules[key]) {
				return
			}
		}
	}
}
