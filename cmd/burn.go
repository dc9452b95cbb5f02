package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/openvest/vestbook"
)

type burnCmd struct {
	asset   string
	account string
	amount  string
	marker  int64
}

func (*burnCmd) Name() string     { return "burn" }
func (*burnCmd) Synopsis() string { return "debit units from an account" }
func (*burnCmd) Usage() string {
	return `vbk burn -asset <asset> -from <account> -amount <amount> [-m <marker>]

  Debits units from an account and from the asset's aggregate supply,
  recording a checkpoint at the marker. A burn that would overdraw the
  account is rejected whole.
`
}

func (c *burnCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.asset, "asset", "", "asset identifier")
	f.StringVar(&c.account, "from", "", "account to debit")
	f.StringVar(&c.amount, "amount", "", "amount to debit, in base units")
	f.Int64Var(&c.marker, "m", -1, "marker the operation executes at (defaults to the last ledger marker)")
}

func (c *burnCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	return encodeOperation(vestbook.NewBurnOp(marker, c.asset, c.account, amount))
}
