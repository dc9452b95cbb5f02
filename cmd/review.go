package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/openvest/vestbook"
	"github.com/openvest/vestbook/renderer"
)

type reviewCmd struct {
	marker int64
}

func (*reviewCmd) Name() string     { return "review" }
func (*reviewCmd) Synopsis() string { return "report all schedules at a marker" }
func (*reviewCmd) Usage() string {
	return `vbk review [-t <marker>]

  Derives a report of every schedule, with matured and releasable amounts
  computed at the given marker (defaults to the current clock).
`
}

func (c *reviewCmd) SetFlags(f *flag.FlagSet) {
	f.Int64Var(&c.marker, "t", -1, "marker to evaluate the schedules at (defaults to the current clock)")
}

func (c *reviewCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	_, state, err := loadState()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	now := resolveMarker(c.marker, state.Book.Current())
	review := vestbook.NewReview(state, now)
	printMarkdown(renderer.Review(review))
	return subcommands.ExitSuccess
}
