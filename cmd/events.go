package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/openvest/vestbook/renderer"
)

type eventsCmd struct {
	since uint64
}

func (*eventsCmd) Name() string     { return "events" }
func (*eventsCmd) Synopsis() string { return "list emitted domain events" }
func (*eventsCmd) Usage() string {
	return `vbk events [-since <seq>]

  Lists the domain events emitted by the replayed ledger, in emission order.
  -since skips events with a lower sequence number.
`
}

func (c *eventsCmd) SetFlags(f *flag.FlagSet) {
	f.Uint64Var(&c.since, "since", 0, "first sequence number to include")
}

func (c *eventsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	_, state, err := loadState()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.Events(state.Events.Since(c.since)))
	return subcommands.ExitSuccess
}
