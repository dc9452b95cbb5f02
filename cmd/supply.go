package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/openvest/vestbook/renderer"
)

type supplyCmd struct {
	asset     string
	timepoint int64
	history   bool
}

func (*supplyCmd) Name() string     { return "supply" }
func (*supplyCmd) Synopsis() string { return "query an asset's aggregate supply" }
func (*supplyCmd) Usage() string {
	return `vbk supply -asset <asset> [-t <marker>] [-history]

  Prints the asset's latest aggregate supply. With -t, prints the supply as
  it stood at that past marker. With -history, lists every supply checkpoint.
`
}

func (c *supplyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.asset, "asset", "", "asset identifier")
	f.Int64Var(&c.timepoint, "t", -1, "past marker to evaluate at (defaults to the latest supply)")
	f.BoolVar(&c.history, "history", false, "list every supply checkpoint")
}

func (c *supplyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	_, state, err := loadState()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	if c.history {
		cps := state.Book.SupplyHistory(c.asset)
		printMarkdown(renderer.History(c.asset, "supply", cps))
		return subcommands.ExitSuccess
	}
	if c.timepoint < 0 {
		fmt.Println(state.Book.TotalSupply(c.asset))
		return subcommands.ExitSuccess
	}
	v, err := state.Book.PastTotalSupply(c.asset, uint64(c.timepoint))
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	fmt.Println(v)
	return subcommands.ExitSuccess
}
