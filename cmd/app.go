// Package cmd implements the CLI application to manage a vesting ledger.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"

	cosmoslog "cosmossdk.io/log"
	"cosmossdk.io/math"
	"github.com/google/subcommands"

	"github.com/openvest/vestbook"
)

// Commands lists the subcommands of the application.
// A main package registers each of them on a commander and executes the
// user-selected one.
var Commands = []subcommands.Command{
	&createCmd{},
	&releaseCmd{},
	&mintCmd{},
	&burnCmd{},
	&transferCmd{},
	&advanceCmd{},
	&showCmd{},
	&reviewCmd{},
	&historyCmd{},
	&votesCmd{},
	&supplyCmd{},
	&eventsCmd{},
	&fmtCmd{},
	&indexCmd{},
	&valueCmd{},
	&topicCmd{},
	&assistCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to
// use global variables.

var ledgerFile = flag.String("ledger-file", "vestbook.jsonl", "Path to the ledger file containing operations (JSONL format)")
var verbose = flag.Bool("v", false, "Log engine activity to stderr")

func engineLogger() cosmoslog.Logger {
	if *verbose {
		return cosmoslog.NewLogger(os.Stderr)
	}
	return cosmoslog.NewNopLogger()
}

// decodeLedger loads the operation ledger from the app ledger file. A
// missing file yields an empty ledger.
func decodeLedger() (*vestbook.Ledger, error) {
	f, err := os.Open(*ledgerFile)
	if errors.Is(err, fs.ErrNotExist) {
		log.Println("warning, ledger file does not exist, starting from an empty ledger")
		return vestbook.NewLedger(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not open ledger file %q: %w", *ledgerFile, err)
	}
	defer f.Close()
	return vestbook.DecodeLedger(f)
}

// loadState loads the ledger and replays it into canonical state.
func loadState() (*vestbook.Ledger, *vestbook.State, error) {
	ledger, err := decodeLedger()
	if err != nil {
		return nil, nil, err
	}
	state, err := vestbook.Replay(ledger, engineLogger())
	if err != nil {
		return nil, nil, err
	}
	return ledger, state, nil
}

// encodeOperation validates op against the replayed state and appends it to
// the app ledger file.
func encodeOperation(op vestbook.Operation) subcommands.ExitStatus {
	ledger, state, err := loadState()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	if err := ledger.Append(op); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	if err := state.Apply(op); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	// Open the file in append mode, creating it if it doesn't exist.
	f, err := os.OpenFile(*ledgerFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening ledger file %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}
	defer f.Close()

	if err := vestbook.EncodeOperation(f, op); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing to ledger file %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Successfully appended operation to %s\n", *ledgerFile)
	return subcommands.ExitSuccess
}

// parseAmount parses an exact integer amount in base units.
func parseAmount(raw string) (math.Int, error) {
	v, ok := math.NewIntFromString(raw)
	if !ok {
		return math.Int{}, fmt.Errorf("invalid amount %q: want an integer in base units", raw)
	}
	return v, nil
}

// resolveMarker turns the -m / -t flag value into a marker, defaulting to
// fallback when the flag was left negative.
func resolveMarker(flagValue int64, fallback uint64) uint64 {
	if flagValue < 0 {
		return fallback
	}
	return uint64(flagValue)
}
