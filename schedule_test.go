package vestbook

import (
	"errors"
	"testing"

	"cosmossdk.io/math"
)

func TestSchedule_MaturedAt(t *testing.T) {
	// 1000 units maturing linearly from marker 10 over 100 units of time.
	s := Schedule{
		Asset:       "TKN",
		Beneficiary: "bob",
		Total:       math.NewInt(1000),
		Released:    math.ZeroInt(),
		Start:       10,
		Duration:    100,
	}

	testCases := []struct {
		name string
		now  uint64
		want int64
	}{
		{name: "before start", now: 9, want: 0},
		{name: "at start", now: 10, want: 0},
		{name: "one tick in", now: 11, want: 10},
		{name: "halfway", now: 60, want: 500},
		{name: "one tick before end", now: 109, want: 990},
		{name: "at end", now: 110, want: 1000},
		{name: "long after end", now: 10_000, want: 1000},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := s.MaturedAt(tc.now)
			if !got.Equal(math.NewInt(tc.want)) {
				t.Errorf("MaturedAt(%d) = %s, want %d", tc.now, got, tc.want)
			}
		})
	}
}

func TestSchedule_MaturedAtRoundsDown(t *testing.T) {
	// 100 units over 3 ticks: fractions truncate, never round up.
	s := Schedule{
		Asset:       "TKN",
		Beneficiary: "bob",
		Total:       math.NewInt(100),
		Released:    math.ZeroInt(),
		Start:       0,
		Duration:    3,
	}
	wants := []int64{0, 33, 66, 100}
	for now, want := range wants {
		got := s.MaturedAt(uint64(now))
		if !got.Equal(math.NewInt(want)) {
			t.Errorf("MaturedAt(%d) = %s, want %d", now, got, want)
		}
	}
}

func TestSchedule_MaturedAtIsMonotonic(t *testing.T) {
	s := Schedule{
		Asset:       "TKN",
		Beneficiary: "bob",
		Total:       math.NewInt(997), // prime, exercises uneven divisions
		Released:    math.ZeroInt(),
		Start:       7,
		Duration:    31,
	}
	prev := math.ZeroInt()
	for now := uint64(0); now <= s.Start+s.Duration+5; now++ {
		got := s.MaturedAt(now)
		if got.LT(prev) {
			t.Fatalf("MaturedAt(%d) = %s decreased from %s", now, got, prev)
		}
		if got.IsNegative() || got.GT(s.Total) {
			t.Fatalf("MaturedAt(%d) = %s outside [0, %s]", now, got, s.Total)
		}
		prev = got
	}
	if !prev.Equal(s.Total) {
		t.Errorf("MaturedAt past the end = %s, want the full total %s", prev, s.Total)
	}
}

func TestSchedule_ReleasableAt(t *testing.T) {
	s := Schedule{
		Asset:       "TKN",
		Beneficiary: "bob",
		Total:       math.NewInt(1000),
		Released:    math.NewInt(300),
		Start:       10,
		Duration:    100,
	}
	if got := s.ReleasableAt(60); !got.Equal(math.NewInt(200)) {
		t.Errorf("ReleasableAt(60) = %s, want 200", got)
	}
	if got := s.ReleasableAt(110); !got.Equal(math.NewInt(700)) {
		t.Errorf("ReleasableAt(110) = %s, want 700", got)
	}
}

func TestSchedule_Validate(t *testing.T) {
	valid := Schedule{
		Asset:       "TKN",
		Beneficiary: "bob",
		Total:       math.NewInt(1000),
		Released:    math.ZeroInt(),
		Start:       10,
		Duration:    100,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid schedule rejected: %v", err)
	}

	testCases := []struct {
		name    string
		mutate  func(*Schedule)
		wantErr error
	}{
		{name: "empty asset", mutate: func(s *Schedule) { s.Asset = "" }, wantErr: ErrZeroAddress},
		{name: "empty beneficiary", mutate: func(s *Schedule) { s.Beneficiary = "" }, wantErr: ErrZeroAddress},
		{name: "zero total", mutate: func(s *Schedule) { s.Total = math.ZeroInt() }, wantErr: ErrZeroAmount},
		{name: "negative total", mutate: func(s *Schedule) { s.Total = math.NewInt(-1) }, wantErr: ErrZeroAmount},
		{name: "zero duration", mutate: func(s *Schedule) { s.Duration = 0 }, wantErr: ErrZeroDuration},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := valid
			tc.mutate(&s)
			if err := s.Validate(); !errors.Is(err, tc.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tc.wantErr)
			}
		})
	}
}
