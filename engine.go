package vestbook

import (
	"cosmossdk.io/log"
	"cosmossdk.io/math"
)

// TransferAgent is the external asset-transfer collaborator consumed by the
// engine.
//
// TransferIn pulls amount from payer and returns the amount actually
// received, which may be less than requested for fee-on-transfer assets.
// TransferOut pushes amount to recipient. Both are all-or-nothing
// boundaries: on error, the enclosing engine operation aborts with no
// visible state change. The ledger imposes no timeout of its own; callers
// that need one impose it around the engine call.
type TransferAgent interface {
	TransferIn(asset, payer string, amount math.Int, marker uint64) (math.Int, error)
	TransferOut(asset, recipient string, amount math.Int, marker uint64) error
}

// Engine orchestrates schedule creation, maturity computation and claim
// execution against a ScheduleStore, calling out to the transfer
// collaborator and publishing domain events.
type Engine struct {
	store  *ScheduleStore
	agent  TransferAgent
	events *EventLog
	logger log.Logger
}

// NewEngine wires an engine over its exclusively owned store.
func NewEngine(store *ScheduleStore, agent TransferAgent, events *EventLog, logger log.Logger) *Engine {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Engine{
		store:  store,
		agent:  agent,
		events: events,
		logger: logger.With("module", ModuleName),
	}
}

// Store returns the engine's schedule store, for read-only queries.
func (e *Engine) Store() *ScheduleStore { return e.store }

// CreateSchedule records a new linear release schedule funded by payer.
//
// The schedule is recorded with the amount actually received from the
// collaborator, not the requested total, so short-transfer assets never
// over-credit the beneficiary. Any failure leaves no schedule recorded and
// no partial transfer accounting.
func (e *Engine) CreateSchedule(asset, beneficiary, payer string, total math.Int, start, duration, now uint64) (Schedule, error) {
	if asset == "" {
		return Schedule{}, ErrZeroAddress.Wrap("asset identifier is empty")
	}
	if beneficiary == "" {
		return Schedule{}, ErrZeroAddress.Wrap("beneficiary identifier is empty")
	}
	if payer == "" {
		return Schedule{}, ErrZeroAddress.Wrap("payer identifier is empty")
	}
	if total.IsNil() || !total.IsPositive() {
		return Schedule{}, ErrZeroAmount.Wrap("schedule total must be positive")
	}
	if duration == 0 {
		return Schedule{}, ErrZeroDuration
	}
	key := ScheduleKey{Asset: asset, Beneficiary: beneficiary}
	if e.store.Has(key) {
		return Schedule{}, ErrDuplicateSchedule.Wrapf("asset %s beneficiary %s", asset, beneficiary)
	}

	received, err := e.agent.TransferIn(asset, payer, total, now)
	if err != nil {
		return Schedule{}, err
	}
	if received.IsNil() || !received.IsPositive() {
		return Schedule{}, ErrZeroAmount.Wrapf("collaborator delivered %s of requested %s", received, total)
	}

	schedule := Schedule{
		Asset:       asset,
		Beneficiary: beneficiary,
		Total:       received,
		Released:    math.ZeroInt(),
		Start:       start,
		Duration:    duration,
	}
	if err := e.store.Create(schedule); err != nil {
		return Schedule{}, err
	}

	e.events.Append(Event{
		Type:        EventScheduleStarted,
		Marker:      now,
		Asset:       asset,
		Beneficiary: beneficiary,
		Creator:     payer,
		Amount:      received,
	})
	e.logger.Info("schedule started",
		"asset", asset,
		"beneficiary", beneficiary,
		"total", received.String(),
		"start", start,
		"duration", duration,
	)
	return schedule, nil
}

// Release claims an explicit amount for the beneficiary, paid to the
// beneficiary itself.
func (e *Engine) Release(key ScheduleKey, amount math.Int, now uint64) error {
	return e.release(key, key.Beneficiary, key.Beneficiary, amount, now, false)
}

// ReleaseTo claims an explicit amount on behalf of the beneficiary, paid to
// a caller-supplied recipient. Who may release (the beneficiary) is
// separate from who receives (any account).
func (e *Engine) ReleaseTo(key ScheduleKey, recipient string, amount math.Int, now uint64) error {
	return e.release(key, recipient, key.Beneficiary, amount, now, false)
}

// ReleaseAll claims everything releasable at now, paid to recipient, and
// returns the claimed amount.
func (e *Engine) ReleaseAll(key ScheduleKey, recipient string, now uint64) (math.Int, error) {
	sched, ok := e.store.Get(key)
	if !ok {
		return math.Int{}, ErrNoTokensDue.Wrapf("no schedule for asset %s beneficiary %s", key.Asset, key.Beneficiary)
	}
	releasable := sched.ReleasableAt(now)
	if err := e.release(key, recipient, key.Beneficiary, releasable, now, true); err != nil {
		return math.Int{}, err
	}
	return releasable, nil
}

// release is the atomic claim operation. Validation happens entirely before
// the external transfer, and the released counter is mutated only after the
// transfer succeeds, so a collaborator failure leaves no observable state
// change.
func (e *Engine) release(key ScheduleKey, recipient, releasor string, amount math.Int, now uint64, claimAll bool) error {
	if recipient == "" {
		return ErrZeroAddress.Wrap("recipient identifier is empty")
	}
	sched, ok := e.store.Get(key)
	if !ok {
		return ErrNoTokensDue.Wrapf("no schedule for asset %s beneficiary %s", key.Asset, key.Beneficiary)
	}
	releasable := sched.ReleasableAt(now)
	if !releasable.IsPositive() {
		return ErrNoTokensDue.Wrapf("nothing releasable at marker %d", now)
	}
	if amount.IsNil() || !amount.IsPositive() {
		return ErrZeroClaim
	}
	if amount.GT(releasable) {
		return ErrOverClaim.Wrapf("claim %s exceeds releasable %s", amount, releasable)
	}

	if err := e.agent.TransferOut(key.Asset, recipient, amount, now); err != nil {
		return err
	}
	e.store.addReleased(key, amount)

	e.events.Append(Event{
		Type:        EventTokensReleased,
		Marker:      now,
		Asset:       key.Asset,
		Beneficiary: key.Beneficiary,
		Recipient:   recipient,
		Releasor:    releasor,
		Amount:      amount,
	})
	e.logger.Info("tokens released",
		"asset", key.Asset,
		"beneficiary", key.Beneficiary,
		"recipient", recipient,
		"amount", amount.String(),
		"claim_all", claimAll,
	)
	return nil
}

// EscrowAccount holds schedule funds on the checkpoint book between
// creation and release.
const EscrowAccount = "vesting"

// BookAgent is a TransferAgent backed by a CheckpointBook: schedule funds
// move from the payer into the escrow account at creation and from escrow
// to the recipient at release, so claims show up in checkpoint histories.
// It always delivers exactly the requested amount.
type BookAgent struct {
	Book *CheckpointBook
}

// TransferIn moves amount from payer to the escrow account.
func (a BookAgent) TransferIn(asset, payer string, amount math.Int, marker uint64) (math.Int, error) {
	if err := a.Book.Transfer(asset, payer, EscrowAccount, amount, marker); err != nil {
		return math.Int{}, err
	}
	return amount, nil
}

// TransferOut moves amount from the escrow account to recipient.
func (a BookAgent) TransferOut(asset, recipient string, amount math.Int, marker uint64) error {
	return a.Book.Transfer(asset, EscrowAccount, recipient, amount, marker)
}
