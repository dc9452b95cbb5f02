package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/openvest/vestbook"
)

type createCmd struct {
	asset       string
	beneficiary string
	payer       string
	total       string
	start       uint64
	duration    uint64
	marker      int64
}

func (*createCmd) Name() string     { return "create" }
func (*createCmd) Synopsis() string { return "start a linear release schedule for a beneficiary" }
func (*createCmd) Usage() string {
	return `vbk create -asset <asset> -beneficiary <account> -payer <account> -total <amount> -start <marker> -duration <markers> [-m <marker>]

  Commits an amount of an asset to a beneficiary, maturing linearly from
  start over duration. The total is pulled from the payer's balance into the
  vesting escrow account. A beneficiary can have at most one schedule per
  asset.

Usage Examples:
# commit 1000 TKN from alice to bob, maturing over markers 10..110
$ vbk create -asset TKN -beneficiary bob -payer alice -total 1000 -start 10 -duration 100 -m 5
`
}

func (c *createCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.asset, "asset", "", "asset identifier")
	f.StringVar(&c.beneficiary, "beneficiary", "", "beneficiary account")
	f.StringVar(&c.payer, "payer", "", "account funding the schedule")
	f.StringVar(&c.total, "total", "", "total amount to commit, in base units")
	f.Uint64Var(&c.start, "start", 0, "marker at which maturing starts")
	f.Uint64Var(&c.duration, "duration", 0, "number of markers until fully matured")
	f.Int64Var(&c.marker, "m", -1, "marker the operation executes at (defaults to the last ledger marker)")
}

func (c *createCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	total, err := parseAmount(c.total)
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

	op := vestbook.NewCreateOp(marker, c.asset, c.beneficiary, c.payer, total, c.start, c.duration)
	return encodeOperation(op)
}
