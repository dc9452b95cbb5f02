package vestbook

import (
	"cosmossdk.io/math"
)

// ScheduleKey uniquely identifies at most one live schedule.
type ScheduleKey struct {
	Asset       string
	Beneficiary string
}

// Schedule is a single beneficiary's linear release record for one asset.
//
// Total, Start and Duration never change after creation; Released is mutated
// solely by claim operations and only ever increases, bounded by the amount
// matured at claim time.
type Schedule struct {
	Asset       string   `json:"asset"`
	Beneficiary string   `json:"beneficiary"`
	Total       math.Int `json:"total"`
	Released    math.Int `json:"released"`
	Start       uint64   `json:"start"`
	Duration    uint64   `json:"duration"`
}

// Key returns the (asset, beneficiary) key of the schedule.
func (s Schedule) Key() ScheduleKey {
	return ScheduleKey{Asset: s.Asset, Beneficiary: s.Beneficiary}
}

// Validate checks the schedule creation invariants.
func (s Schedule) Validate() error {
	if s.Asset == "" {
		return ErrZeroAddress.Wrap("asset identifier is empty")
	}
	if s.Beneficiary == "" {
		return ErrZeroAddress.Wrap("beneficiary identifier is empty")
	}
	if s.Total.IsNil() || !s.Total.IsPositive() {
		return ErrZeroAmount.Wrap("schedule total must be positive")
	}
	if s.Duration == 0 {
		return ErrZeroDuration
	}
	if s.Released.IsNil() || s.Released.IsNegative() {
		return ErrZeroAmount.Wrap("released amount cannot be negative")
	}
	return nil
}

// MaturedAt returns the cumulative amount the schedule entitles its
// beneficiary to as of marker now:
//
//	floor(Total * clamp(now-Start, 0, Duration) / Duration)
//
// The amount is computed freshly from the immutable Total, Start and
// Duration on every call, which makes it monotonic non-decreasing in now by
// construction: the numerator never changes and the elapsed fraction never
// decreases.
func (s Schedule) MaturedAt(now uint64) math.Int {
	if now < s.Start {
		return math.ZeroInt()
	}
	elapsed := now - s.Start
	if elapsed >= s.Duration {
		return s.Total
	}
	return s.Total.
		Mul(math.NewIntFromUint64(elapsed)).
		Quo(math.NewIntFromUint64(s.Duration))
}

// ReleasableAt returns the amount matured at now that has not been released
// yet. It is never negative: Released only ever increases up to a bound
// checked against MaturedAt at claim time.
func (s Schedule) ReleasableAt(now uint64) math.Int {
	return s.MaturedAt(now).Sub(s.Released)
}

// FullyMaturedAt reports whether the whole Total has matured at now.
func (s Schedule) FullyMaturedAt(now uint64) bool {
	return now >= s.Start && now-s.Start >= s.Duration
}
