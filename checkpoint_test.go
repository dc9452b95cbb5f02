package vestbook

import (
	"errors"
	"testing"

	"cosmossdk.io/math"
)

func TestSeries_AppendDelta(t *testing.T) {
	var s Series
	if err := s.AppendDelta(10, math.NewInt(100)); err != nil {
		t.Fatal(err)
	}
	if err := s.AppendDelta(20, math.NewInt(-30)); err != nil {
		t.Fatal(err)
	}
	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}
	if got := s.Latest(); got.Marker != 20 || !got.Value.Equal(math.NewInt(70)) {
		t.Errorf("Latest() = %+v, want marker 20 value 70", got)
	}
}

func TestSeries_AppendDeltaCoalescesSameMarker(t *testing.T) {
	var s Series
	if err := s.AppendDelta(10, math.NewInt(100)); err != nil {
		t.Fatal(err)
	}
	// A second write at the same marker folds into the last entry instead of
	// appending.
	if err := s.AppendDelta(10, math.NewInt(50)); err != nil {
		t.Fatal(err)
	}
	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1 after coalescing", s.Len())
	}
	if got := s.Latest(); got.Marker != 10 || !got.Value.Equal(math.NewInt(150)) {
		t.Errorf("Latest() = %+v, want marker 10 value 150", got)
	}
}

func TestSeries_AppendDeltaRejectsOlderMarker(t *testing.T) {
	var s Series
	if err := s.AppendDelta(20, math.NewInt(100)); err != nil {
		t.Fatal(err)
	}
	err := s.AppendDelta(10, math.NewInt(1))
	if !errors.Is(err, ErrOutOfOrderWrite) {
		t.Fatalf("AppendDelta(older marker) = %v, want ErrOutOfOrderWrite", err)
	}
	if s.Len() != 1 || !s.Latest().Value.Equal(math.NewInt(100)) {
		t.Errorf("series mutated by a rejected write: %+v", s.Latest())
	}
}

func TestSeries_AppendDeltaRejectsNegativeValue(t *testing.T) {
	var s Series
	if err := s.AppendDelta(10, math.NewInt(100)); err != nil {
		t.Fatal(err)
	}
	err := s.AppendDelta(20, math.NewInt(-101))
	if !errors.Is(err, ErrNegativeBalance) {
		t.Fatalf("AppendDelta(overdraw) = %v, want ErrNegativeBalance", err)
	}
	if s.Len() != 1 || !s.Latest().Value.Equal(math.NewInt(100)) {
		t.Errorf("series mutated by a rejected write: %+v", s.Latest())
	}
}

func TestCheckpointBook_MintBurn(t *testing.T) {
	b := NewCheckpointBook()
	if err := b.Mint("TKN", "alice", math.NewInt(100), 10); err != nil {
		t.Fatal(err)
	}
	if err := b.Burn("TKN", "alice", math.NewInt(30), 20); err != nil {
		t.Fatal(err)
	}
	if got := b.Votes("TKN", "alice"); !got.Equal(math.NewInt(70)) {
		t.Errorf("Votes = %s, want 70", got)
	}
	if got := b.TotalSupply("TKN"); !got.Equal(math.NewInt(70)) {
		t.Errorf("TotalSupply = %s, want 70", got)
	}
	if got := b.Current(); got != 20 {
		t.Errorf("Current = %d, want 20", got)
	}
}

func TestCheckpointBook_BurnOverdrawRejectedWhole(t *testing.T) {
	b := NewCheckpointBook()
	if err := b.Mint("TKN", "alice", math.NewInt(100), 10); err != nil {
		t.Fatal(err)
	}
	err := b.Burn("TKN", "alice", math.NewInt(150), 20)
	if !errors.Is(err, ErrNegativeBalance) {
		t.Fatalf("Burn(overdraw) = %v, want ErrNegativeBalance", err)
	}
	// Neither the account nor the supply series recorded anything.
	if n := b.NumCheckpoints("TKN", "alice"); n != 1 {
		t.Errorf("account has %d checkpoints, want 1", n)
	}
	if got := b.TotalSupply("TKN"); !got.Equal(math.NewInt(100)) {
		t.Errorf("TotalSupply = %s, want 100", got)
	}
}

func TestCheckpointBook_TransferBothOrNeither(t *testing.T) {
	b := NewCheckpointBook()
	if err := b.Mint("TKN", "alice", math.NewInt(100), 10); err != nil {
		t.Fatal(err)
	}

	err := b.Transfer("TKN", "alice", "bob", math.NewInt(150), 20)
	if !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("Transfer(overdraw) = %v, want ErrInsufficientBalance", err)
	}
	if n := b.NumCheckpoints("TKN", "alice"); n != 1 {
		t.Errorf("sender has %d checkpoints, want 1", n)
	}
	if n := b.NumCheckpoints("TKN", "bob"); n != 0 {
		t.Errorf("recipient has %d checkpoints, want 0", n)
	}

	if err := b.Transfer("TKN", "alice", "bob", math.NewInt(40), 20); err != nil {
		t.Fatal(err)
	}
	if got := b.Votes("TKN", "alice"); !got.Equal(math.NewInt(60)) {
		t.Errorf("sender Votes = %s, want 60", got)
	}
	if got := b.Votes("TKN", "bob"); !got.Equal(math.NewInt(40)) {
		t.Errorf("recipient Votes = %s, want 40", got)
	}
	// Supply is unchanged by transfers.
	if got := b.TotalSupply("TKN"); !got.Equal(math.NewInt(100)) {
		t.Errorf("TotalSupply = %s, want 100", got)
	}
}

func TestCheckpointBook_Advance(t *testing.T) {
	b := NewCheckpointBook()
	if err := b.Advance(50); err != nil {
		t.Fatal(err)
	}
	if got := b.Current(); got != 50 {
		t.Fatalf("Current = %d, want 50", got)
	}
	// Re-presenting the same marker is fine, moving backwards is not.
	if err := b.Advance(50); err != nil {
		t.Errorf("Advance(same marker) = %v, want nil", err)
	}
	if err := b.Advance(49); !errors.Is(err, ErrOutOfOrderWrite) {
		t.Errorf("Advance(older marker) = %v, want ErrOutOfOrderWrite", err)
	}
}

func TestCheckpointBook_AccountsAndAssetsSorted(t *testing.T) {
	b := NewCheckpointBook()
	for _, w := range []struct {
		asset, account string
	}{
		{"ZZZ", "bob"}, {"AAA", "zoe"}, {"AAA", "ann"},
	} {
		if err := b.Mint(w.asset, w.account, math.NewInt(1), 1); err != nil {
			t.Fatal(err)
		}
	}
	accounts := b.Accounts()
	want := [][2]string{{"AAA", "ann"}, {"AAA", "zoe"}, {"ZZZ", "bob"}}
	if len(accounts) != len(want) {
		t.Fatalf("Accounts() = %v, want %v", accounts, want)
	}
	for i := range want {
		if accounts[i] != want[i] {
			t.Errorf("Accounts()[%d] = %v, want %v", i, accounts[i], want[i])
		}
	}
	assets := b.Assets()
	if len(assets) != 2 || assets[0] != "AAA" || assets[1] != "ZZZ" {
		t.Errorf("Assets() = %v, want [AAA ZZZ]", assets)
	}
}
