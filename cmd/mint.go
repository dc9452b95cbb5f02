package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/openvest/vestbook"
)

type mintCmd struct {
	asset   string
	account string
	amount  string
	marker  int64
}

func (*mintCmd) Name() string     { return "mint" }
func (*mintCmd) Synopsis() string { return "credit new units to an account" }
func (*mintCmd) Usage() string {
	return `vbk mint -asset <asset> -to <account> -amount <amount> [-m <marker>]

  Credits new units to an account and to the asset's aggregate supply,
  recording a checkpoint at the marker.
`
}

func (c *mintCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.asset, "asset", "", "asset identifier")
	f.StringVar(&c.account, "to", "", "account to credit")
	f.StringVar(&c.amount, "amount", "", "amount to credit, in base units")
	f.Int64Var(&c.marker, "m", -1, "marker the operation executes at (defaults to the last ledger marker)")
}

func (c *mintCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	return encodeOperation(vestbook.NewMintOp(marker, c.asset, c.account, amount))
}
