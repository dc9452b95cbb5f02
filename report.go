package vestbook

import (
	"cosmossdk.io/math"
)

// ScheduleStatus summarizes where a schedule stands at a given marker.
type ScheduleStatus string

const (
	// StatusPending means the schedule has not started maturing yet.
	StatusPending ScheduleStatus = "pending"
	// StatusVesting means the schedule is partway through its duration.
	StatusVesting ScheduleStatus = "vesting"
	// StatusMatured means everything has matured but not all is claimed.
	StatusMatured ScheduleStatus = "matured"
	// StatusClosed means the full total has been released.
	StatusClosed ScheduleStatus = "closed"
)

// ScheduleReview is the derived view of one schedule at a marker.
type ScheduleReview struct {
	Asset       string
	Beneficiary string
	Total       math.Int
	Released    math.Int
	Matured     math.Int
	Releasable  math.Int
	Status      ScheduleStatus
}

// Review is a deterministic, at-a-glance derivation of every aggregate the
// ledger exposes, computed in one pass over canonical state for a given
// marker. It replaces any network of interdependent reactive observers: all
// derived values come from the same snapshot in a fixed evaluation order.
type Review struct {
	Marker          uint64
	Schedules       []ScheduleReview
	TotalCommitted  math.Int
	TotalReleased   math.Int
	TotalReleasable math.Int
}

// NewReview recomputes all derived schedule aggregates from state at now.
func NewReview(state *State, now uint64) *Review {
	r := &Review{
		Marker:          now,
		TotalCommitted:  math.ZeroInt(),
		TotalReleased:   math.ZeroInt(),
		TotalReleasable: math.ZeroInt(),
	}
	for sched := range state.Schedules.All() {
		matured := sched.MaturedAt(now)
		releasable := matured.Sub(sched.Released)

		status := StatusVesting
		switch {
		case sched.Released.Equal(sched.Total):
			status = StatusClosed
		case sched.FullyMaturedAt(now):
			status = StatusMatured
		case now < sched.Start:
			status = StatusPending
		}

		r.Schedules = append(r.Schedules, ScheduleReview{
			Asset:       sched.Asset,
			Beneficiary: sched.Beneficiary,
			Total:       sched.Total,
			Released:    sched.Released,
			Matured:     matured,
			Releasable:  releasable,
			Status:      status,
		})
		r.TotalCommitted = r.TotalCommitted.Add(sched.Total)
		r.TotalReleased = r.TotalReleased.Add(sched.Released)
		r.TotalReleasable = r.TotalReleasable.Add(releasable)
	}
	return r
}
