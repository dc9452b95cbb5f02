// Package renderer turns ledger reports into markdown strings for the CLI.
package renderer

import (
	"fmt"
	"strings"

	"github.com/openvest/vestbook"
)

// Review renders the derived schedule report to a markdown string.
func Review(r *vestbook.Review) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Schedules at marker %d\n\n", r.Marker)
	if len(r.Schedules) == 0 {
		b.WriteString("No schedules recorded.\n")
		return b.String()
	}
	b.WriteString("| Asset | Beneficiary | Total | Released | Matured | Releasable | Status |\n")
	b.WriteString("|---|---|--:|--:|--:|--:|---|\n")
	for _, s := range r.Schedules {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s |\n",
			s.Asset, s.Beneficiary, s.Total, s.Released, s.Matured, s.Releasable, s.Status)
	}
	fmt.Fprintf(&b, "\nCommitted %s, released %s, releasable %s.\n",
		r.TotalCommitted, r.TotalReleased, r.TotalReleasable)
	return b.String()
}

// History renders an account's checkpoint history to a markdown string.
func History(asset, account string, cps []vestbook.Checkpoint) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Checkpoints of %s for asset %s\n\n", account, asset)
	if len(cps) == 0 {
		b.WriteString("No checkpoints recorded.\n")
		return b.String()
	}
	b.WriteString("| Marker | Value |\n|--:|--:|\n")
	for _, cp := range cps {
		fmt.Fprintf(&b, "| %d | %s |\n", cp.Marker, cp.Value)
	}
	return b.String()
}

// Events renders domain events to a markdown string, one line per event.
func Events(events []vestbook.Event) string {
	var b strings.Builder
	b.WriteString("# Events\n\n")
	if len(events) == 0 {
		b.WriteString("No events recorded.\n")
		return b.String()
	}
	for _, ev := range events {
		fmt.Fprintf(&b, "- %s\n", Event(ev))
	}
	return b.String()
}

// Event renders one domain event to a single line.
func Event(ev vestbook.Event) string {
	switch ev.Type {
	case vestbook.EventScheduleStarted:
		return fmt.Sprintf("[%d] schedule started: %s of %s for %s, funded by %s",
			ev.Marker, ev.Amount, ev.Asset, ev.Beneficiary, ev.Creator)
	case vestbook.EventTokensReleased:
		return fmt.Sprintf("[%d] tokens released: %s of %s from %s's schedule to %s",
			ev.Marker, ev.Amount, ev.Asset, ev.Beneficiary, ev.Recipient)
	default:
		return fmt.Sprintf("[%d] %s", ev.Marker, ev.Type)
	}
}

// Operation renders one ledger operation to a single line.
func Operation(op vestbook.Operation) string {
	switch v := op.(type) {
	case vestbook.CreateOp:
		return fmt.Sprintf("Created schedule of %s %s for %s, funded by %s, start %d duration %d",
			v.Received, v.Asset, v.Beneficiary, v.Payer, v.Start, v.Duration)
	case vestbook.ReleaseOp:
		if v.All {
			return fmt.Sprintf("Released all due %s to %s", v.Asset, v.Recipient)
		}
		return fmt.Sprintf("Released %s %s to %s", v.Amount, v.Asset, v.Recipient)
	case vestbook.MintOp:
		return fmt.Sprintf("Minted %s %s to %s", v.Amount, v.Asset, v.Account)
	case vestbook.BurnOp:
		return fmt.Sprintf("Burned %s %s from %s", v.Amount, v.Asset, v.Account)
	case vestbook.TransferOp:
		return fmt.Sprintf("Transferred %s %s from %s to %s", v.Amount, v.Asset, v.From, v.To)
	case vestbook.AdvanceOp:
		return fmt.Sprintf("Advanced clock to %d", v.Marker)
	default:
		return string(op.What())
	}
}
