package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/openvest/vestbook"
)

type transferCmd struct {
	asset  string
	from   string
	to     string
	amount string
	marker int64
}

func (*transferCmd) Name() string     { return "transfer" }
func (*transferCmd) Synopsis() string { return "move units between two accounts" }
func (*transferCmd) Usage() string {
	return `vbk transfer -asset <asset> -from <account> -to <account> -amount <amount> [-m <marker>]

  Debits the sender and credits the recipient at the same marker,
  both-or-neither. The aggregate supply is unchanged.
`
}

func (c *transferCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.asset, "asset", "", "asset identifier")
	f.StringVar(&c.from, "from", "", "account to debit")
	f.StringVar(&c.to, "to", "", "account to credit")
	f.StringVar(&c.amount, "amount", "", "amount to move, in base units")
	f.Int64Var(&c.marker, "m", -1, "marker the operation executes at (defaults to the last ledger marker)")
}

func (c *transferCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	amount, err := parseAmount(c.amount)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}
	ledger, err := decodeLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	marker := resolveMarker(c.marker, ledger.LastMarker())
	return encodeOperation(vestbook.NewTransferOp(marker, c.asset, c.from, c.to, amount))
}
