package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type votesCmd struct {
	asset     string
	account   string
	timepoint int64
}

func (*votesCmd) Name() string     { return "votes" }
func (*votesCmd) Synopsis() string { return "query an account's balance, now or in the past" }
func (*votesCmd) Usage() string {
	return `vbk votes -asset <asset> -account <account> [-t <marker>]

  Prints the account's latest checkpointed balance. With -t, prints the
  balance as it stood at that past marker; markers at or after the current
  clock are rejected as not yet settled.
`
}

func (c *votesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.asset, "asset", "", "asset identifier")
	f.StringVar(&c.account, "account", "", "account to inspect")
	f.Int64Var(&c.timepoint, "t", -1, "past marker to evaluate at (defaults to the latest balance)")
}

func (c *votesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	_, state, err := loadState()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	if c.timepoint < 0 {
		fmt.Println(state.Book.Votes(c.asset, c.account))
		return subcommands.ExitSuccess
	}
	v, err := state.Book.PastVotes(c.asset, c.account, uint64(c.timepoint))
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	fmt.Println(v)
	return subcommands.ExitSuccess
}
