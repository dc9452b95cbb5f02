package vestbook

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
)

// EncodeOperation writes a single operation as one JSONL line.
func EncodeOperation(w io.Writer, op Operation) error {
	data, err := json.Marshal(op)
	if err != nil {
		return fmt.Errorf("could not encode %s operation: %w", op.What(), err)
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	_, err = w.Write([]byte("\n"))
	return err
}

// EncodeLedger writes every ledger operation in order, one JSONL line each.
func EncodeLedger(w io.Writer, l *Ledger) error {
	for op := range l.All() {
		if err := EncodeOperation(w, op); err != nil {
			return err
		}
	}
	return nil
}

// DecodeLedger reads a stream of JSONL operations, decodes each line into
// the appropriate operation struct, and returns the ordered ledger.
func DecodeLedger(r io.Reader) (*Ledger, error) {
	ledger := NewLedger()
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue // Skip empty lines
		}

		var identifier struct {
			Command CommandType `json:"command"`
		}
		if err := json.Unmarshal(lineBytes, &identifier); err != nil {
			return nil, fmt.Errorf("could not identify command in line %q: %w", string(lineBytes), err)
		}

		var op Operation
		switch identifier.Command {
		case CmdCreate:
			var v CreateOp
			if err := json.Unmarshal(lineBytes, &v); err != nil {
				return nil, err
			}
			if v.Received.IsNil() {
				// Older lines omit the received amount; exact delivery assumed.
				v.Received = v.Total
			}
			op = v
		case CmdRelease:
			var v ReleaseOp
			if err := json.Unmarshal(lineBytes, &v); err != nil {
				return nil, err
			}
			op = v
		case CmdMint:
			var v MintOp
			if err := json.Unmarshal(lineBytes, &v); err != nil {
				return nil, err
			}
			op = v
		case CmdBurn:
			var v BurnOp
			if err := json.Unmarshal(lineBytes, &v); err != nil {
				return nil, err
			}
			op = v
		case CmdTransfer:
			var v TransferOp
			if err := json.Unmarshal(lineBytes, &v); err != nil {
				return nil, err
			}
			op = v
		case CmdAdvance:
			var v AdvanceOp
			if err := json.Unmarshal(lineBytes, &v); err != nil {
				return nil, err
			}
			op = v
		default:
			return nil, fmt.Errorf("unknown command %q in line %q", identifier.Command, string(lineBytes))
		}

		if err := ledger.Append(op); err != nil {
			return nil, fmt.Errorf("line %q: %w", string(lineBytes), err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return ledger, nil
}
