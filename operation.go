package vestbook

import (
	"fmt"
	"iter"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
)

// CommandType is a typed string identifying ledger operations.
type CommandType string

// Command types used to identify operations in the ledger.
const (
	CmdCreate   CommandType = "create"
	CmdRelease  CommandType = "release"
	CmdMint     CommandType = "mint"
	CmdBurn     CommandType = "burn"
	CmdTransfer CommandType = "transfer"
	CmdAdvance  CommandType = "advance"
)

// Operation is one entry of the ordered mutation stream. Every operation
// carries the marker it executes at; the ledger is single-writer and totally
// ordered by marker.
type Operation interface {
	What() CommandType // What returns the command type of the operation.
	When() uint64      // When returns the marker the operation executes at.
}

type baseOp struct {
	Command CommandType `json:"command"`        // Command specifies the type of operation.
	Marker  uint64      `json:"marker"`         // Marker is the ordering position the operation executes at.
	Memo    string      `json:"memo,omitempty"` // Memo provides an optional note for the operation.
}

// What returns the command name of the operation.
func (t baseOp) What() CommandType { return t.Command }

// When returns the marker of the operation.
func (t baseOp) When() uint64 { return t.Marker }

// CreateOp starts a linear release schedule. Total is the requested funding;
// Received is what the transfer collaborator actually delivered and is what
// replay credits, so a ledger re-execution never depends on the collaborator
// again.
type CreateOp struct {
	baseOp
	Asset       string   `json:"asset"`
	Beneficiary string   `json:"beneficiary"`
	Payer       string   `json:"payer"`
	Total       math.Int `json:"total"`
	Received    math.Int `json:"received"`
	Start       uint64   `json:"start"`
	Duration    uint64   `json:"duration"`
}

// NewCreateOp creates a schedule creation operation.
func NewCreateOp(marker uint64, asset, beneficiary, payer string, total math.Int, start, duration uint64) CreateOp {
	return CreateOp{
		baseOp:      baseOp{Command: CmdCreate, Marker: marker},
		Asset:       asset,
		Beneficiary: beneficiary,
		Payer:       payer,
		Total:       total,
		Received:    total,
		Start:       start,
		Duration:    duration,
	}
}

// ReleaseOp claims released tokens from a schedule. If All is set the
// amount is computed as everything releasable at the operation marker.
type ReleaseOp struct {
	baseOp
	Asset       string   `json:"asset"`
	Beneficiary string   `json:"beneficiary"`
	Recipient   string   `json:"recipient"`
	Amount      math.Int `json:"amount"`
	All         bool     `json:"all,omitempty"`
}

// NewReleaseOp creates a claim operation for an explicit amount.
func NewReleaseOp(marker uint64, asset, beneficiary, recipient string, amount math.Int) ReleaseOp {
	return ReleaseOp{
		baseOp:      baseOp{Command: CmdRelease, Marker: marker},
		Asset:       asset,
		Beneficiary: beneficiary,
		Recipient:   recipient,
		Amount:      amount,
	}
}

// NewReleaseAllOp creates a claim-everything operation.
func NewReleaseAllOp(marker uint64, asset, beneficiary, recipient string) ReleaseOp {
	return ReleaseOp{
		baseOp:      baseOp{Command: CmdRelease, Marker: marker},
		Asset:       asset,
		Beneficiary: beneficiary,
		Recipient:   recipient,
		Amount:      math.ZeroInt(),
		All:         true,
	}
}

// MintOp credits new units to an account on the checkpoint book.
type MintOp struct {
	baseOp
	Asset   string   `json:"asset"`
	Account string   `json:"account"`
	Amount  math.Int `json:"amount"`
}

// NewMintOp creates a mint operation.
func NewMintOp(marker uint64, asset, account string, amount math.Int) MintOp {
	return MintOp{baseOp: baseOp{Command: CmdMint, Marker: marker}, Asset: asset, Account: account, Amount: amount}
}

// BurnOp debits units from an account on the checkpoint book.
type BurnOp struct {
	baseOp
	Asset   string   `json:"asset"`
	Account string   `json:"account"`
	Amount  math.Int `json:"amount"`
}

// NewBurnOp creates a burn operation.
func NewBurnOp(marker uint64, asset, account string, amount math.Int) BurnOp {
	return BurnOp{baseOp: baseOp{Command: CmdBurn, Marker: marker}, Asset: asset, Account: account, Amount: amount}
}

// TransferOp moves units between two accounts on the checkpoint book.
type TransferOp struct {
	baseOp
	Asset  string   `json:"asset"`
	From   string   `json:"from"`
	To     string   `json:"to"`
	Amount math.Int `json:"amount"`
}

// NewTransferOp creates a transfer operation.
func NewTransferOp(marker uint64, asset, from, to string, amount math.Int) TransferOp {
	return TransferOp{baseOp: baseOp{Command: CmdTransfer, Marker: marker}, Asset: asset, From: from, To: to, Amount: amount}
}

// AdvanceOp moves the book clock without a balance change, settling all
// history strictly below its marker.
type AdvanceOp struct {
	baseOp
}

// NewAdvanceOp creates a clock advance operation.
func NewAdvanceOp(marker uint64) AdvanceOp {
	return AdvanceOp{baseOp: baseOp{Command: CmdAdvance, Marker: marker}}
}

// Ledger is the ordered, append-only sequence of operations. Operations are
// always in non-decreasing marker order.
type Ledger struct {
	ops []Operation
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{ops: make([]Operation, 0)}
}

// Len returns the number of operations.
func (l *Ledger) Len() int { return len(l.ops) }

// LastMarker returns the marker of the last operation, or 0 if empty.
func (l *Ledger) LastMarker() uint64 {
	if len(l.ops) == 0 {
		return 0
	}
	return l.ops[len(l.ops)-1].When()
}

// Append adds an operation to the ledger. Operations must be presented in
// non-decreasing marker order.
func (l *Ledger) Append(op Operation) error {
	if len(l.ops) > 0 && op.When() < l.LastMarker() {
		return ErrOutOfOrderWrite.Wrapf("operation marker %d is older than %d", op.When(), l.LastMarker())
	}
	l.ops = append(l.ops, op)
	return nil
}

// All returns an iterator over all operations in order.
func (l *Ledger) All() iter.Seq[Operation] {
	return func(yield func(Operation) bool) {
		for _, op := range l.ops {
			if !yield(op) {
				return
			}
		}
	}
}

// State is the canonical state derived from a ledger: the schedule store and
// checkpoint book with their engine and event log. Reads against a State
// always observe the last fully applied operation, never one in progress.
type State struct {
	Schedules *ScheduleStore
	Book      *CheckpointBook
	Events    *EventLog
	Engine    *Engine
}

// NewState creates empty canonical state whose engine settles transfers on
// the checkpoint book through the escrow account.
func NewState(logger log.Logger) *State {
	store := NewScheduleStore()
	book := NewCheckpointBook()
	events := NewEventLog()
	return &State{
		Schedules: store,
		Book:      book,
		Events:    events,
		Engine:    NewEngine(store, BookAgent{Book: book}, events, logger),
	}
}

// Apply executes one operation against the state. Any error leaves the
// state exactly as it was.
func (st *State) Apply(op Operation) error {
	switch v := op.(type) {
	case CreateOp:
		// Book-settled transfers always deliver exactly; a recorded received
		// amount that differs from the request cannot be reproduced here.
		if !v.Received.IsNil() && !v.Received.Equal(v.Total) {
			return fmt.Errorf("cannot replay create: recorded received %s differs from requested %s", v.Received, v.Total)
		}
		_, err := st.Engine.CreateSchedule(v.Asset, v.Beneficiary, v.Payer, v.Total, v.Start, v.Duration, v.Marker)
		return err
	case ReleaseOp:
		key := ScheduleKey{Asset: v.Asset, Beneficiary: v.Beneficiary}
		recipient := v.Recipient
		if recipient == "" {
			recipient = v.Beneficiary
		}
		if v.All {
			_, err := st.Engine.ReleaseAll(key, recipient, v.Marker)
			return err
		}
		if recipient == v.Beneficiary {
			return st.Engine.Release(key, v.Amount, v.Marker)
		}
		return st.Engine.ReleaseTo(key, recipient, v.Amount, v.Marker)
	case MintOp:
		return st.Book.Mint(v.Asset, v.Account, v.Amount, v.Marker)
	case BurnOp:
		return st.Book.Burn(v.Asset, v.Account, v.Amount, v.Marker)
	case TransferOp:
		return st.Book.Transfer(v.Asset, v.From, v.To, v.Amount, v.Marker)
	case AdvanceOp:
		return st.Book.Advance(v.Marker)
	default:
		return fmt.Errorf("unknown operation type %T", op)
	}
}

// Replay rebuilds canonical state by re-executing every ledger operation in
// order. Replay is deterministic: transfers settle on the checkpoint book,
// never against an external collaborator, and any divergence from the
// recorded operations aborts the whole replay.
func Replay(l *Ledger, logger log.Logger) (*State, error) {
	st := NewState(logger)
	i := 0
	for op := range l.All() {
		if err := st.Apply(op); err != nil {
			return nil, fmt.Errorf("replaying operation %d (%s at marker %d): %w", i, op.What(), op.When(), err)
		}
		i++
	}
	return st, nil
}
