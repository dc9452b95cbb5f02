package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/openvest/vestbook/sqlstore"
)

type indexCmd struct {
	dbFile string
}

func (*indexCmd) Name() string     { return "index" }
func (*indexCmd) Synopsis() string { return "index the replayed ledger into a SQLite database" }
func (*indexCmd) Usage() string {
	return `vbk index [-db <file>]

  Replays the ledger and writes the resulting schedules, checkpoints, supply
  series and events into a SQLite database, replacing any previous snapshot.
  The database is a queryable derivative; the JSONL ledger stays the source
  of truth.
`
}

func (c *indexCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.dbFile, "db", "vestbook.db", "SQLite database file to write")
}

func (c *indexCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	_, state, err := loadState()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	db, err := sqlstore.Open(c.dbFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening %q: %v\n", c.dbFile, err)
		return subcommands.ExitFailure
	}
	defer db.Close()

	if err := db.Index(ctx, state); err != nil {
		fmt.Fprintf(os.Stderr, "Error indexing into %q: %v\n", c.dbFile, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Successfully indexed ledger into %s\n", c.dbFile)
	return subcommands.ExitSuccess
}
