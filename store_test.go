package vestbook

import (
	"errors"
	"testing"

	"cosmossdk.io/math"
)

func testSchedule(asset, beneficiary string) Schedule {
	return Schedule{
		Asset:       asset,
		Beneficiary: beneficiary,
		Total:       math.NewInt(1000),
		Released:    math.ZeroInt(),
		Start:       10,
		Duration:    100,
	}
}

func TestScheduleStore_Create(t *testing.T) {
	st := NewScheduleStore()
	if err := st.Create(testSchedule("TKN", "bob")); err != nil {
		t.Fatal(err)
	}
	if err := st.Create(testSchedule("TKN", "bob")); !errors.Is(err, ErrDuplicateSchedule) {
		t.Fatalf("Create(duplicate) = %v, want ErrDuplicateSchedule", err)
	}
	if err := st.Create(testSchedule("TKN", "carol")); err != nil {
		t.Errorf("Create(other beneficiary) = %v, want nil", err)
	}
	if st.Len() != 2 {
		t.Errorf("Len() = %d, want 2", st.Len())
	}
}

func TestScheduleStore_GetReturnsCopy(t *testing.T) {
	st := NewScheduleStore()
	if err := st.Create(testSchedule("TKN", "bob")); err != nil {
		t.Fatal(err)
	}
	key := ScheduleKey{Asset: "TKN", Beneficiary: "bob"}
	s, ok := st.Get(key)
	if !ok {
		t.Fatal("Get() reported missing schedule")
	}
	s.Released = math.NewInt(999)

	again, _ := st.Get(key)
	if !again.Released.IsZero() {
		t.Errorf("store mutated through a Get copy: Released = %s", again.Released)
	}
}

func TestScheduleStore_KeysSorted(t *testing.T) {
	st := NewScheduleStore()
	for _, s := range []Schedule{
		testSchedule("ZZZ", "ann"),
		testSchedule("AAA", "zoe"),
		testSchedule("AAA", "ann"),
	} {
		if err := st.Create(s); err != nil {
			t.Fatal(err)
		}
	}
	keys := st.Keys()
	want := []ScheduleKey{
		{Asset: "AAA", Beneficiary: "ann"},
		{Asset: "AAA", Beneficiary: "zoe"},
		{Asset: "ZZZ", Beneficiary: "ann"},
	}
	if len(keys) != len(want) {
		t.Fatalf("Keys() = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("Keys()[%d] = %v, want %v", i, keys[i], want[i])
		}
	}
}

func TestEventLog_AppendAndSince(t *testing.T) {
	l := NewEventLog()
	for i := 0; i < 3; i++ {
		ev := l.Append(Event{Type: EventTokensReleased, Amount: math.NewInt(int64(i))})
		if ev.Seq != uint64(i) {
			t.Errorf("Append assigned seq %d, want %d", ev.Seq, i)
		}
	}
	if got := l.Since(1); len(got) != 2 || got[0].Seq != 1 {
		t.Errorf("Since(1) = %+v, want seqs 1 and 2", got)
	}
	if got := l.Since(3); got != nil {
		t.Errorf("Since(past end) = %+v, want nil", got)
	}
}
