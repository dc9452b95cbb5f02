// Package vestbook provides a ledger for linear token-release schedules with
// point-in-time historical lookup. It is designed to be local-first,
// auditable, and deterministic: every mutation is an operation in an ordered,
// append-only ledger, and all derived state can be recomputed from it.
//
// The core functionalities include:
//   - Schedule Management: Recording, per (asset, beneficiary) pair, how many
//     units have been committed, how much has matured over a fixed linear
//     schedule, and how much has actually been claimed.
//   - Checkpoint Accounting: An append-only per-account value history that
//     answers exact "what was the balance at marker T" queries by binary
//     search over settled checkpoints.
//   - Engine: Atomic validate-then-mutate claim operations against an
//     external asset-transfer collaborator, with domain events for external
//     observers.
//   - Data Persistence: Encoding and decoding the operation ledger to and
//     from a human-readable, version-controllable JSONL format, plus an
//     optional SQLite index.
//
// This package serves as the foundational logic for the `vbk` command-line
// tool, ensuring that all operations are consistent and based on a single
// source of truth.
package vestbook
