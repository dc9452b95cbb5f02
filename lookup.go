package vestbook

import (
	"cosmossdk.io/math"
)

// This file is the read path over checkpoint series: current values and
// binary-search historical lookups bounded by the book clock.

// lookupAt returns the value that was current at timepoint: the value of the
// greatest entry whose marker is <= timepoint, or zero if timepoint precedes
// the first entry. An entry takes effect "at" its marker, not after it.
//
// For longer series the search first partitions near the tail, since recent
// history is the common query. The partition only narrows the plain binary
// search bounds, so the result is identical to a linear scan; the
// equivalence is locked in by tests.
func (s *Series) lookupAt(timepoint uint64) math.Int {
	n := len(s.marks)
	lo, hi := 0, n
	if n > 5 {
		mid := n - intSqrt(n)
		if s.marks[mid] > timepoint {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	for lo < hi {
		mid := (lo + hi) / 2
		if s.marks[mid] > timepoint {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	if lo == 0 {
		return math.ZeroInt()
	}
	return s.values[lo-1]
}

// intSqrt returns floor(sqrt(n)) for small positive n.
func intSqrt(n int) int {
	r := 0
	for (r+1)*(r+1) <= n {
		r++
	}
	return r
}

// NumCheckpoints returns the number of checkpoints recorded for an account.
func (b *CheckpointBook) NumCheckpoints(asset, account string) int {
	s, ok := b.accounts[accountKey{asset: asset, account: account}]
	if !ok {
		return 0
	}
	return s.Len()
}

// CheckpointAt returns the checkpoint at position pos for an account.
func (b *CheckpointBook) CheckpointAt(asset, account string, pos int) (Checkpoint, error) {
	s, ok := b.accounts[accountKey{asset: asset, account: account}]
	if !ok || pos < 0 || pos >= s.Len() {
		return Checkpoint{}, ErrNoTokensDue.Wrapf("no checkpoint at position %d", pos)
	}
	return s.At(pos), nil
}

// Votes returns the current value of an account, or zero if it has no
// checkpoints.
func (b *CheckpointBook) Votes(asset, account string) math.Int {
	s, ok := b.accounts[accountKey{asset: asset, account: account}]
	if !ok {
		return math.ZeroInt()
	}
	return s.Latest().Value
}

// PastVotes returns the value an account held at timepoint.
//
// Only fully settled history may be queried: timepoint must be strictly less
// than the book's current marker, else ErrFutureLookup.
func (b *CheckpointBook) PastVotes(asset, account string, timepoint uint64) (math.Int, error) {
	if timepoint >= b.current {
		return math.Int{}, ErrFutureLookup.Wrapf("timepoint %d, current marker %d", timepoint, b.current)
	}
	s, ok := b.accounts[accountKey{asset: asset, account: account}]
	if !ok {
		return math.ZeroInt(), nil
	}
	return s.lookupAt(timepoint), nil
}

// TotalSupply returns the current aggregate supply of an asset.
func (b *CheckpointBook) TotalSupply(asset string) math.Int {
	s, ok := b.supply[asset]
	if !ok {
		return math.ZeroInt()
	}
	return s.Latest().Value
}

// PastTotalSupply returns the aggregate supply of an asset at timepoint,
// with the same settlement bound as PastVotes.
func (b *CheckpointBook) PastTotalSupply(asset string, timepoint uint64) (math.Int, error) {
	if timepoint >= b.current {
		return math.Int{}, ErrFutureLookup.Wrapf("timepoint %d, current marker %d", timepoint, b.current)
	}
	s, ok := b.supply[asset]
	if !ok {
		return math.ZeroInt(), nil
	}
	return s.lookupAt(timepoint), nil
}

// SupplyHistory returns a copy of the aggregate supply checkpoints of an
// asset, in marker order.
func (b *CheckpointBook) SupplyHistory(asset string) []Checkpoint {
	s, ok := b.supply[asset]
	if !ok {
		return nil
	}
	cps := make([]Checkpoint, s.Len())
	for i := range cps {
		cps[i] = s.At(i)
	}
	return cps
}

// History returns a copy of the checkpoints of an account, in marker order.
func (b *CheckpointBook) History(asset, account string) []Checkpoint {
	s, ok := b.accounts[accountKey{asset: asset, account: account}]
	if !ok {
		return nil
	}
	cps := make([]Checkpoint, s.Len())
	for i := range cps {
		cps[i] = s.At(i)
	}
	return cps
}
