package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/openvest/vestbook"
	"github.com/openvest/vestbook/feed"
)

type valueCmd struct {
	asset    string
	account  string
	symbol   string
	url      string
	path     string
	decimals int64
	currency string
}

func (*valueCmd) Name() string     { return "value" }
func (*valueCmd) Synopsis() string { return "value a balance at the current spot price" }
func (*valueCmd) Usage() string {
	return `vbk value -asset <asset> -url <url> -path <jsonpath> [-account <account>] [-symbol <symbol>] [-decimals <n>] [-currency <code>]

  Fetches the asset's spot price from a JSON HTTP endpoint and prints the
  market value of an account's latest balance, or of the whole supply when
  no account is given. -decimals converts base units to display units.

Usage Examples:
# value bob's TKN balance with a coingecko-style endpoint
$ vbk value -asset TKN -account bob -decimals 6 \
    -url 'https://api.example.com/price?symbol={symbol}' -path '$.price'
`
}

func (c *valueCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.asset, "asset", "", "asset identifier")
	f.StringVar(&c.account, "account", "", "account to value (defaults to the whole supply)")
	f.StringVar(&c.symbol, "symbol", "", "symbol to query the feed with (defaults to the asset)")
	f.StringVar(&c.url, "url", "", "price endpoint, with an optional {symbol} placeholder")
	f.StringVar(&c.path, "path", "", "jsonpath of the price inside the response")
	f.Int64Var(&c.decimals, "decimals", 0, "base-unit decimals of the asset")
	f.StringVar(&c.currency, "currency", "USD", "currency the feed quotes in")
}

func (c *valueCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.url == "" || c.path == "" {
		fmt.Fprintln(os.Stderr, "Error: -url and -path are required")
		return subcommands.ExitUsageError
	}
	_, state, err := loadState()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	balance := state.Book.TotalSupply(c.asset)
	holder := "supply"
	if c.account != "" {
		balance = state.Book.Votes(c.asset, c.account)
		holder = c.account
	}

	symbol := c.symbol
	if symbol == "" {
		symbol = c.asset
	}
	source := feed.Source{URL: c.url, Path: c.path}
	price, err := source.Price(symbol)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error fetching price:", err)
		return subcommands.ExitFailure
	}

	value := vestbook.Value(balance, int32(c.decimals), price, c.currency)
	fmt.Printf("%s of %s: %s units at %s = %s\n",
		holder, c.asset, vestbook.Units(balance, int32(c.decimals)), price, value)
	return subcommands.ExitSuccess
}
