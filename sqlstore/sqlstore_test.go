package sqlstore

import (
	"context"
	"path/filepath"
	"testing"

	"cosmossdk.io/math"

	"github.com/openvest/vestbook"
)

func testState(t *testing.T) *vestbook.State {
	t.Helper()
	state := vestbook.NewState(nil)
	ops := []vestbook.Operation{
		vestbook.NewMintOp(1, "TKN", "treasury", math.NewInt(5000)),
		vestbook.NewCreateOp(10, "TKN", "bob", "treasury", math.NewInt(1000), 10, 100),
		vestbook.NewReleaseOp(60, "TKN", "bob", "bob", math.NewInt(300)),
		vestbook.NewAdvanceOp(90),
	}
	for _, op := range ops {
		if err := state.Apply(op); err != nil {
			t.Fatal(err)
		}
	}
	return state
}

func TestStore_IndexRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := Open(filepath.Join(t.TempDir(), "vestbook.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	state := testState(t)
	if err := store.Index(ctx, state); err != nil {
		t.Fatal(err)
	}

	marker, err := store.CurrentMarker(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if marker != 90 {
		t.Errorf("CurrentMarker = %d, want 90", marker)
	}

	schedules, err := store.Schedules(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(schedules) != 1 {
		t.Fatalf("got %d schedules, want 1", len(schedules))
	}
	s := schedules[0]
	if s.Asset != "TKN" || s.Beneficiary != "bob" {
		t.Errorf("schedule = %+v, want TKN/bob", s)
	}
	if !s.Total.Equal(math.NewInt(1000)) || !s.Released.Equal(math.NewInt(300)) {
		t.Errorf("schedule amounts = total %s released %s, want 1000/300", s.Total, s.Released)
	}

	cps, err := store.Checkpoints(ctx, "TKN", "bob")
	if err != nil {
		t.Fatal(err)
	}
	want := state.Book.History("TKN", "bob")
	if len(cps) != len(want) {
		t.Fatalf("got %d checkpoints, want %d", len(cps), len(want))
	}
	for i := range want {
		if cps[i].Marker != want[i].Marker || !cps[i].Value.Equal(want[i].Value) {
			t.Errorf("checkpoint[%d] = %+v, want %+v", i, cps[i], want[i])
		}
	}

	supply, err := store.Supply(ctx, "TKN")
	if err != nil {
		t.Fatal(err)
	}
	if len(supply) != 1 || !supply[0].Value.Equal(math.NewInt(5000)) {
		t.Errorf("supply = %+v, want one checkpoint of 5000", supply)
	}

	events, err := store.Events(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[0].Type != vestbook.EventScheduleStarted || events[1].Type != vestbook.EventTokensReleased {
		t.Errorf("event types = %s, %s", events[0].Type, events[1].Type)
	}
}

func TestStore_IndexIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store, err := Open(filepath.Join(t.TempDir(), "vestbook.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	state := testState(t)
	// Indexing twice replaces the snapshot rather than duplicating rows.
	if err := store.Index(ctx, state); err != nil {
		t.Fatal(err)
	}
	if err := store.Index(ctx, state); err != nil {
		t.Fatal(err)
	}
	events, err := store.Events(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 2 {
		t.Errorf("got %d events after reindexing, want 2", len(events))
	}
}
