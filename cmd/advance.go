package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/openvest/vestbook"
)

type advanceCmd struct {
	marker int64
}

func (*advanceCmd) Name() string     { return "advance" }
func (*advanceCmd) Synopsis() string { return "move the clock forward without a balance change" }
func (*advanceCmd) Usage() string {
	return `vbk advance -m <marker>

  Moves the current marker forward, settling all history strictly below it
  for historical queries. The clock never moves backwards.
`
}

func (c *advanceCmd) SetFlags(f *flag.FlagSet) {
	f.Int64Var(&c.marker, "m", -1, "marker to advance the clock to")
}

func (c *advanceCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.marker < 0 {
		fmt.Fprintln(os.Stderr, "Error: -m is required")
		return subcommands.ExitUsageError
	}
	return encodeOperation(vestbook.NewAdvanceOp(uint64(c.marker)))
}
