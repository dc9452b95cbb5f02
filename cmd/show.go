package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/openvest/vestbook"
)

type showCmd struct {
	asset       string
	beneficiary string
	marker      int64
}

func (*showCmd) Name() string     { return "show" }
func (*showCmd) Synopsis() string { return "show one vesting schedule" }
func (*showCmd) Usage() string {
	return `vbk show -asset <asset> -beneficiary <account> [-t <marker>]

  Shows a schedule with its matured and releasable amounts computed at the
  given marker (defaults to the current clock).
`
}

func (c *showCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.asset, "asset", "", "asset identifier")
	f.StringVar(&c.beneficiary, "beneficiary", "", "beneficiary account")
	f.Int64Var(&c.marker, "t", -1, "marker to evaluate the schedule at (defaults to the current clock)")
}

func (c *showCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	_, state, err := loadState()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	key := vestbook.ScheduleKey{Asset: c.asset, Beneficiary: c.beneficiary}
	s, ok := state.Schedules.Get(key)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: no schedule of %s for %s\n", c.asset, c.beneficiary)
		return subcommands.ExitFailure
	}
	now := resolveMarker(c.marker, state.Book.Current())

	fmt.Printf("Schedule of %s for %s\n", s.Asset, s.Beneficiary)
	fmt.Printf("  Total:      %s\n", s.Total)
	fmt.Printf("  Released:   %s\n", s.Released)
	fmt.Printf("  Start:      %d\n", s.Start)
	fmt.Printf("  Duration:   %d\n", s.Duration)
	fmt.Printf("  Matured:    %s (at marker %d)\n", s.MaturedAt(now), now)
	fmt.Printf("  Releasable: %s\n", s.ReleasableAt(now))
	return subcommands.ExitSuccess
}
