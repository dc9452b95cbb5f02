package vestbook

import (
	"iter"
	"slices"

	"cosmossdk.io/math"
)

// Checkpoint is a (marker, value) snapshot recording a balance after a
// change.
type Checkpoint struct {
	Marker uint64   `json:"marker"`
	Value  math.Int `json:"value"`
}

// Series is an append-only, marker-ordered sequence of checkpoints.
//
// Markers strictly increase, except that a write at the same marker as the
// last entry coalesces into it rather than appending. Values are never
// retroactively altered except for that same-marker coalescing.
type Series struct {
	marks  []uint64
	values []math.Int
}

// Len returns the number of checkpoints in the series.
func (s *Series) Len() int { return len(s.marks) }

// At returns the checkpoint at position pos.
func (s *Series) At(pos int) Checkpoint {
	return Checkpoint{Marker: s.marks[pos], Value: s.values[pos]}
}

// Latest returns the last checkpoint, or a zero-valued one if the series is
// empty.
func (s *Series) Latest() Checkpoint {
	last := len(s.marks) - 1
	if last < 0 {
		return Checkpoint{Value: math.ZeroInt()}
	}
	return Checkpoint{Marker: s.marks[last], Value: s.values[last]}
}

// All returns an iterator over all (marker, value) pairs in marker order.
func (s *Series) All() iter.Seq2[uint64, math.Int] {
	return func(yield func(uint64, math.Int) bool) {
		for i, m := range s.marks {
			if !yield(m, s.values[i]) {
				return
			}
		}
	}
}

// AppendDelta applies a signed effect on the series value at the given
// marker.
//
// Writes must be presented in non-decreasing marker order, matching a
// single-writer, sequentially ordered execution model; an older marker fails
// with ErrOutOfOrderWrite. A write at the last entry's marker coalesces into
// it. A delta that would take the value below zero fails with
// ErrNegativeBalance and mutates nothing.
func (s *Series) AppendDelta(marker uint64, delta math.Int) error {
	last := len(s.marks) - 1
	value := math.ZeroInt()
	if last >= 0 {
		if marker < s.marks[last] {
			return ErrOutOfOrderWrite.Wrapf("marker %d is older than %d", marker, s.marks[last])
		}
		value = s.values[last]
	}
	value = value.Add(delta)
	if value.IsNegative() {
		return ErrNegativeBalance.Wrapf("delta %s at marker %d", delta, marker)
	}
	if last >= 0 && s.marks[last] == marker {
		s.values[last] = value
		return nil
	}
	s.marks = append(s.marks, marker)
	s.values = append(s.values, value)
	return nil
}

// canApply reports whether AppendDelta would succeed, without mutating.
func (s *Series) canApply(marker uint64, delta math.Int) error {
	last := len(s.marks) - 1
	value := math.ZeroInt()
	if last >= 0 {
		if marker < s.marks[last] {
			return ErrOutOfOrderWrite.Wrapf("marker %d is older than %d", marker, s.marks[last])
		}
		value = s.values[last]
	}
	if value.Add(delta).IsNegative() {
		return ErrNegativeBalance.Wrapf("delta %s at marker %d", delta, marker)
	}
	return nil
}

// accountKey identifies one per-account series within a book.
type accountKey struct {
	asset   string
	account string
}

// CheckpointBook is the exclusive owner of checkpoint series, keyed by
// (asset, account), with one aggregate supply series per asset.
//
// The book also tracks the current marker: the highest marker ever presented
// to it, by a write or an explicit Advance. Historical queries are only
// served strictly below that marker, so readers never observe a marker still
// in progress.
type CheckpointBook struct {
	accounts map[accountKey]*Series
	supply   map[string]*Series
	current  uint64
}

// NewCheckpointBook creates an empty book.
func NewCheckpointBook() *CheckpointBook {
	return &CheckpointBook{
		accounts: make(map[accountKey]*Series),
		supply:   make(map[string]*Series),
	}
}

// Current returns the book clock: the highest marker presented so far.
func (b *CheckpointBook) Current() uint64 { return b.current }

// Advance moves the book clock to marker without recording a balance change.
// The clock never moves backwards.
func (b *CheckpointBook) Advance(marker uint64) error {
	if marker < b.current {
		return ErrOutOfOrderWrite.Wrapf("marker %d is older than current %d", marker, b.current)
	}
	b.current = marker
	return nil
}

func (b *CheckpointBook) account(asset, account string) *Series {
	key := accountKey{asset: asset, account: account}
	s, ok := b.accounts[key]
	if !ok {
		s = new(Series)
		b.accounts[key] = s
	}
	return s
}

func (b *CheckpointBook) assetSupply(asset string) *Series {
	s, ok := b.supply[asset]
	if !ok {
		s = new(Series)
		b.supply[asset] = s
	}
	return s
}

// Mint credits amount to account and to the asset's aggregate supply at the
// given marker.
func (b *CheckpointBook) Mint(asset, account string, amount math.Int, marker uint64) error {
	if asset == "" || account == "" {
		return ErrZeroAddress
	}
	if amount.IsNil() || !amount.IsPositive() {
		return ErrZeroAmount
	}
	acc, sup := b.account(asset, account), b.assetSupply(asset)
	if err := acc.canApply(marker, amount); err != nil {
		return err
	}
	if err := sup.canApply(marker, amount); err != nil {
		return err
	}
	if err := acc.AppendDelta(marker, amount); err != nil {
		return err
	}
	if err := sup.AppendDelta(marker, amount); err != nil {
		return err
	}
	if marker > b.current {
		b.current = marker
	}
	return nil
}

// Burn debits amount from account and from the asset's aggregate supply at
// the given marker. If the account would underflow the whole burn is
// rejected before any series is mutated.
func (b *CheckpointBook) Burn(asset, account string, amount math.Int, marker uint64) error {
	if asset == "" || account == "" {
		return ErrZeroAddress
	}
	if amount.IsNil() || !amount.IsPositive() {
		return ErrZeroAmount
	}
	acc, sup := b.account(asset, account), b.assetSupply(asset)
	neg := amount.Neg()
	if err := acc.canApply(marker, neg); err != nil {
		return err
	}
	if err := sup.canApply(marker, neg); err != nil {
		return err
	}
	if err := acc.AppendDelta(marker, neg); err != nil {
		return err
	}
	if err := sup.AppendDelta(marker, neg); err != nil {
		return err
	}
	if marker > b.current {
		b.current = marker
	}
	return nil
}

// Transfer moves amount from one account to another at the same marker,
// both-or-neither: if either account check fails, no series is mutated. The
// aggregate supply is unchanged.
func (b *CheckpointBook) Transfer(asset, from, to string, amount math.Int, marker uint64) error {
	if asset == "" || from == "" || to == "" {
		return ErrZeroAddress
	}
	if amount.IsNil() || !amount.IsPositive() {
		return ErrZeroAmount
	}
	sender, recipient := b.account(asset, from), b.account(asset, to)
	if sender.Latest().Value.LT(amount) {
		return ErrInsufficientBalance.Wrapf("account %s holds %s, needs %s", from, sender.Latest().Value, amount)
	}
	if err := sender.canApply(marker, amount.Neg()); err != nil {
		return err
	}
	if err := recipient.canApply(marker, amount); err != nil {
		return err
	}
	if err := sender.AppendDelta(marker, amount.Neg()); err != nil {
		return err
	}
	if err := recipient.AppendDelta(marker, amount); err != nil {
		return err
	}
	if marker > b.current {
		b.current = marker
	}
	return nil
}

// Accounts returns all (asset, account) pairs with a series, in
// deterministic order.
func (b *CheckpointBook) Accounts() [][2]string {
	keys := make([][2]string, 0, len(b.accounts))
	for key := range b.accounts {
		keys = append(keys, [2]string{key.asset, key.account})
	}
	slices.SortFunc(keys, func(a, c [2]string) int {
		if a[0] != c[0] {
			if a[0] < c[0] {
				return -1
			}
			return 1
		}
		if a[1] < c[1] {
			return -1
		}
		if a[1] > c[1] {
			return 1
		}
		return 0
	})
	return keys
}

// Assets returns all assets with an aggregate supply series, sorted.
func (b *CheckpointBook) Assets() []string {
	assets := make([]string, 0, len(b.supply))
	for asset := range b.supply {
		assets = append(assets, asset)
	}
	slices.Sort(assets)
	return assets
}
