package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/openvest/vestbook/renderer"
)

type historyCmd struct {
	asset   string
	account string
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "list an account's checkpoints" }
func (*historyCmd) Usage() string {
	return `vbk history -asset <asset> -account <account>

  Lists every checkpoint recorded for the account, oldest first.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.asset, "asset", "", "asset identifier")
	f.StringVar(&c.account, "account", "", "account to inspect")
}

func (c *historyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	_, state, err := loadState()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	cps := state.Book.History(c.asset, c.account)
	printMarkdown(renderer.History(c.asset, c.account, cps))
	return subcommands.ExitSuccess
}
