package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/openvest/vestbook"
)

type releaseCmd struct {
	asset       string
	beneficiary string
	recipient   string
	amount      string
	all         bool
	marker      int64
}

func (*releaseCmd) Name() string     { return "release" }
func (*releaseCmd) Synopsis() string { return "claim matured tokens from a schedule" }
func (*releaseCmd) Usage() string {
	return `vbk release -asset <asset> -beneficiary <account> (-amount <amount> | -all) [-to <account>] [-m <marker>]

  Claims tokens that have matured but not been released yet. By default the
  beneficiary receives them; -to pays any other account instead. -all claims
  everything releasable at the marker.

Usage Examples:
# claim 300 at marker 60
$ vbk release -asset TKN -beneficiary bob -amount 300 -m 60

# claim everything due, paid to carol
$ vbk release -asset TKN -beneficiary bob -all -to carol -m 80
`
}

func (c *releaseCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.asset, "asset", "", "asset identifier")
	f.StringVar(&c.beneficiary, "beneficiary", "", "beneficiary account")
	f.StringVar(&c.recipient, "to", "", "recipient account (defaults to the beneficiary)")
	f.StringVar(&c.amount, "amount", "", "amount to claim, in base units")
	f.BoolVar(&c.all, "all", false, "claim everything releasable")
	f.Int64Var(&c.marker, "m", -1, "marker the operation executes at (defaults to the last ledger marker)")
}

func (c *releaseCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.all == (c.amount != "") {
		fmt.Fprintln(os.Stderr, "Error: exactly one of -amount and -all must be provided")
		return subcommands.ExitUsageError
	}
	ledger, err := decodeLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	marker := resolveMarker(c.marker, ledger.LastMarker())
	recipient := c.recipient
	if recipient == "" {
		recipient = c.beneficiary
	}

	var op vestbook.ReleaseOp
	if c.all {
		op = vestbook.NewReleaseAllOp(marker, c.asset, c.beneficiary, recipient)
	} else {
		amount, err := parseAmount(c.amount)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return subcommands.ExitUsageError
		}
		op = vestbook.NewReleaseOp(marker, c.asset, c.beneficiary, recipient, amount)
	}
	return encodeOperation(op)
}
