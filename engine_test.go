package vestbook

import (
	"errors"
	"testing"

	"cosmossdk.io/math"
)

// stubAgent is a TransferAgent with programmable behavior: a fee withheld on
// the way in, or a hard failure on the way out.
type stubAgent struct {
	feeIn       math.Int
	failOut     error
	inCalls     int
	outCalls    int
	lastOutAcct string
}

func (a *stubAgent) TransferIn(asset, payer string, amount math.Int, marker uint64) (math.Int, error) {
	a.inCalls++
	if !a.feeIn.IsNil() {
		return amount.Sub(a.feeIn), nil
	}
	return amount, nil
}

func (a *stubAgent) TransferOut(asset, recipient string, amount math.Int, marker uint64) error {
	a.outCalls++
	a.lastOutAcct = recipient
	return a.failOut
}

func newTestEngine(agent TransferAgent) *Engine {
	return NewEngine(NewScheduleStore(), agent, NewEventLog(), nil)
}

func TestEngine_CreateSchedule(t *testing.T) {
	e := newTestEngine(&stubAgent{})
	s, err := e.CreateSchedule("TKN", "bob", "treasury", math.NewInt(1000), 10, 100, 10)
	if err != nil {
		t.Fatal(err)
	}
	if !s.Total.Equal(math.NewInt(1000)) || !s.Released.IsZero() {
		t.Errorf("created schedule = %+v, want total 1000 released 0", s)
	}
	evs := e.events.All()
	if len(evs) != 1 || evs[0].Type != EventScheduleStarted {
		t.Fatalf("events = %+v, want one schedule_started", evs)
	}
	if evs[0].Creator != "treasury" || !evs[0].Amount.Equal(math.NewInt(1000)) {
		t.Errorf("event = %+v, want creator treasury amount 1000", evs[0])
	}
}

func TestEngine_CreateScheduleValidation(t *testing.T) {
	testCases := []struct {
		name                     string
		asset, beneficiary, payer string
		total                    math.Int
		duration                 uint64
		wantErr                  error
	}{
		{name: "empty asset", beneficiary: "bob", payer: "treasury", total: math.NewInt(1), duration: 1, wantErr: ErrZeroAddress},
		{name: "empty beneficiary", asset: "TKN", payer: "treasury", total: math.NewInt(1), duration: 1, wantErr: ErrZeroAddress},
		{name: "empty payer", asset: "TKN", beneficiary: "bob", total: math.NewInt(1), duration: 1, wantErr: ErrZeroAddress},
		{name: "zero total", asset: "TKN", beneficiary: "bob", payer: "treasury", total: math.ZeroInt(), duration: 1, wantErr: ErrZeroAmount},
		{name: "zero duration", asset: "TKN", beneficiary: "bob", payer: "treasury", total: math.NewInt(1), duration: 0, wantErr: ErrZeroDuration},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			agent := &stubAgent{}
			e := newTestEngine(agent)
			_, err := e.CreateSchedule(tc.asset, tc.beneficiary, tc.payer, tc.total, 0, tc.duration, 0)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("CreateSchedule() = %v, want %v", err, tc.wantErr)
			}
			// Validation happens entirely before the external transfer.
			if agent.inCalls != 0 {
				t.Errorf("collaborator called %d times on invalid input, want 0", agent.inCalls)
			}
		})
	}
}

func TestEngine_CreateScheduleRejectsDuplicate(t *testing.T) {
	e := newTestEngine(&stubAgent{})
	if _, err := e.CreateSchedule("TKN", "bob", "treasury", math.NewInt(1000), 10, 100, 10); err != nil {
		t.Fatal(err)
	}
	_, err := e.CreateSchedule("TKN", "bob", "other", math.NewInt(5), 0, 1, 10)
	if !errors.Is(err, ErrDuplicateSchedule) {
		t.Fatalf("second CreateSchedule = %v, want ErrDuplicateSchedule", err)
	}
	// Another beneficiary or another asset is fine.
	if _, err := e.CreateSchedule("TKN", "carol", "treasury", math.NewInt(5), 0, 1, 10); err != nil {
		t.Errorf("CreateSchedule(other beneficiary) = %v, want nil", err)
	}
	if _, err := e.CreateSchedule("OTH", "bob", "treasury", math.NewInt(5), 0, 1, 10); err != nil {
		t.Errorf("CreateSchedule(other asset) = %v, want nil", err)
	}
}

func TestEngine_CreateScheduleRecordsReceivedAmount(t *testing.T) {
	// A fee-on-transfer asset delivers less than requested; the schedule must
	// be recorded with what actually arrived.
	e := newTestEngine(&stubAgent{feeIn: math.NewInt(30)})
	s, err := e.CreateSchedule("TKN", "bob", "treasury", math.NewInt(1000), 0, 100, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !s.Total.Equal(math.NewInt(970)) {
		t.Fatalf("schedule total = %s, want the received 970", s.Total)
	}
	if got := s.MaturedAt(100); !got.Equal(math.NewInt(970)) {
		t.Errorf("MaturedAt(end) = %s, want 970", got)
	}
}

func TestEngine_Release(t *testing.T) {
	e := newTestEngine(&stubAgent{})
	if _, err := e.CreateSchedule("TKN", "bob", "treasury", math.NewInt(1000), 10, 100, 10); err != nil {
		t.Fatal(err)
	}
	key := ScheduleKey{Asset: "TKN", Beneficiary: "bob"}

	// Halfway through, 500 have matured.
	if err := e.Release(key, math.NewInt(300), 60); err != nil {
		t.Fatal(err)
	}
	s, _ := e.Store().Get(key)
	if !s.Released.Equal(math.NewInt(300)) {
		t.Fatalf("Released = %s, want 300", s.Released)
	}
	if got := s.ReleasableAt(60); !got.Equal(math.NewInt(200)) {
		t.Errorf("ReleasableAt(60) = %s, want 200", got)
	}

	// Claiming more than remains due is rejected, state unchanged.
	err := e.Release(key, math.NewInt(201), 60)
	if !errors.Is(err, ErrOverClaim) {
		t.Fatalf("over-claim = %v, want ErrOverClaim", err)
	}
	s, _ = e.Store().Get(key)
	if !s.Released.Equal(math.NewInt(300)) {
		t.Errorf("Released = %s after rejected claim, want 300", s.Released)
	}
}

func TestEngine_ReleaseValidation(t *testing.T) {
	e := newTestEngine(&stubAgent{})
	if _, err := e.CreateSchedule("TKN", "bob", "treasury", math.NewInt(1000), 10, 100, 10); err != nil {
		t.Fatal(err)
	}
	key := ScheduleKey{Asset: "TKN", Beneficiary: "bob"}

	if err := e.Release(ScheduleKey{Asset: "TKN", Beneficiary: "nobody"}, math.NewInt(1), 60); !errors.Is(err, ErrNoTokensDue) {
		t.Errorf("Release(no schedule) = %v, want ErrNoTokensDue", err)
	}
	if err := e.Release(key, math.NewInt(1), 10); !errors.Is(err, ErrNoTokensDue) {
		t.Errorf("Release(nothing matured) = %v, want ErrNoTokensDue", err)
	}
	if err := e.Release(key, math.ZeroInt(), 60); !errors.Is(err, ErrZeroClaim) {
		t.Errorf("Release(zero amount) = %v, want ErrZeroClaim", err)
	}
}

func TestEngine_ReleaseToSeparatesReleasorAndRecipient(t *testing.T) {
	agent := &stubAgent{}
	e := newTestEngine(agent)
	if _, err := e.CreateSchedule("TKN", "bob", "treasury", math.NewInt(1000), 10, 100, 10); err != nil {
		t.Fatal(err)
	}
	key := ScheduleKey{Asset: "TKN", Beneficiary: "bob"}
	if err := e.ReleaseTo(key, "carol", math.NewInt(100), 60); err != nil {
		t.Fatal(err)
	}
	if agent.lastOutAcct != "carol" {
		t.Errorf("paid out to %q, want carol", agent.lastOutAcct)
	}
	evs := e.events.All()
	last := evs[len(evs)-1]
	if last.Releasor != "bob" || last.Recipient != "carol" {
		t.Errorf("event = %+v, want releasor bob recipient carol", last)
	}
}

func TestEngine_ReleaseAll(t *testing.T) {
	e := newTestEngine(&stubAgent{})
	if _, err := e.CreateSchedule("TKN", "bob", "treasury", math.NewInt(1000), 10, 100, 10); err != nil {
		t.Fatal(err)
	}
	key := ScheduleKey{Asset: "TKN", Beneficiary: "bob"}

	got, err := e.ReleaseAll(key, "bob", 60)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(math.NewInt(500)) {
		t.Fatalf("ReleaseAll at 60 = %s, want 500", got)
	}

	// After the end, the remainder comes out and the schedule closes.
	got, err = e.ReleaseAll(key, "bob", 110)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(math.NewInt(500)) {
		t.Fatalf("ReleaseAll at 110 = %s, want the remaining 500", got)
	}
	s, _ := e.Store().Get(key)
	if !s.Released.Equal(s.Total) {
		t.Errorf("Released = %s, want the full total %s", s.Released, s.Total)
	}
	if _, err := e.ReleaseAll(key, "bob", 120); !errors.Is(err, ErrNoTokensDue) {
		t.Errorf("ReleaseAll on a closed schedule = %v, want ErrNoTokensDue", err)
	}
}

func TestEngine_ReleaseAbortsOnTransferFailure(t *testing.T) {
	agent := &stubAgent{}
	e := newTestEngine(agent)
	if _, err := e.CreateSchedule("TKN", "bob", "treasury", math.NewInt(1000), 10, 100, 10); err != nil {
		t.Fatal(err)
	}
	key := ScheduleKey{Asset: "TKN", Beneficiary: "bob"}

	agent.failOut = ErrTransferRejected
	err := e.Release(key, math.NewInt(100), 60)
	if !errors.Is(err, ErrTransferRejected) {
		t.Fatalf("Release = %v, want ErrTransferRejected", err)
	}
	// The collaborator failed after validation: no released counter mutation,
	// no release event.
	s, _ := e.Store().Get(key)
	if !s.Released.IsZero() {
		t.Errorf("Released = %s after failed transfer, want 0", s.Released)
	}
	for _, ev := range e.events.All() {
		if ev.Type == EventTokensReleased {
			t.Errorf("release event emitted despite failed transfer: %+v", ev)
		}
	}
}

func TestBookAgent_SettlesThroughEscrow(t *testing.T) {
	book := NewCheckpointBook()
	if err := book.Mint("TKN", "treasury", math.NewInt(5000), 1); err != nil {
		t.Fatal(err)
	}
	store := NewScheduleStore()
	e := NewEngine(store, BookAgent{Book: book}, NewEventLog(), nil)

	if _, err := e.CreateSchedule("TKN", "bob", "treasury", math.NewInt(1000), 10, 100, 10); err != nil {
		t.Fatal(err)
	}
	if got := book.Votes("TKN", "treasury"); !got.Equal(math.NewInt(4000)) {
		t.Errorf("treasury = %s after funding, want 4000", got)
	}
	if got := book.Votes("TKN", EscrowAccount); !got.Equal(math.NewInt(1000)) {
		t.Errorf("escrow = %s after funding, want 1000", got)
	}

	key := ScheduleKey{Asset: "TKN", Beneficiary: "bob"}
	if err := e.Release(key, math.NewInt(300), 60); err != nil {
		t.Fatal(err)
	}
	if got := book.Votes("TKN", "bob"); !got.Equal(math.NewInt(300)) {
		t.Errorf("bob = %s after claim, want 300", got)
	}
	if got := book.Votes("TKN", EscrowAccount); !got.Equal(math.NewInt(700)) {
		t.Errorf("escrow = %s after claim, want 700", got)
	}
	// Supply is conserved throughout.
	if got := book.TotalSupply("TKN"); !got.Equal(math.NewInt(5000)) {
		t.Errorf("TotalSupply = %s, want 5000", got)
	}
}
