// Package sqlstore maintains a SQLite index of the replayed ledger state,
// for external tools that prefer SQL over replaying the JSONL ledger.
package sqlstore

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"strconv"

	"cosmossdk.io/math"
	_ "modernc.org/sqlite"

	"github.com/openvest/vestbook"
)

//go:embed migrations.sql
var migrationsFS embed.FS

// Store is a SQLite-backed index of ledger state.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the index database at path and applies the
// schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// SQLite prefers a small number of concurrent writers.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	_, _ = db.Exec("PRAGMA journal_mode = WAL")
	_, _ = db.Exec("PRAGMA synchronous = NORMAL")

	s := &Store{db: db}
	if err := s.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) migrate(ctx context.Context) error {
	b, err := migrationsFS.ReadFile("migrations.sql")
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, string(b))
	return err
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Index rewrites the whole index from state, atomically. The index is
// derived data; it can always be rebuilt from the ledger.
func (s *Store) Index(ctx context.Context, state *vestbook.State) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"meta", "schedules", "checkpoints", "supply", "events"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO meta(key, value) VALUES('current_marker', ?)`,
		strconv.FormatUint(state.Book.Current(), 10),
	); err != nil {
		return err
	}

	for sched := range state.Schedules.All() {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO schedules(asset, beneficiary, total, released, start, duration)
			 VALUES(?,?,?,?,?,?)`,
			sched.Asset, sched.Beneficiary, sched.Total.String(), sched.Released.String(),
			sched.Start, sched.Duration,
		); err != nil {
			return err
		}
	}

	for _, key := range state.Book.Accounts() {
		asset, account := key[0], key[1]
		for _, cp := range state.Book.History(asset, account) {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO checkpoints(asset, account, marker, value) VALUES(?,?,?,?)`,
				asset, account, cp.Marker, cp.Value.String(),
			); err != nil {
				return err
			}
		}
	}

	for _, asset := range state.Book.Assets() {
		for _, cp := range state.Book.SupplyHistory(asset) {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO supply(asset, marker, value) VALUES(?,?,?)`,
				asset, cp.Marker, cp.Value.String(),
			); err != nil {
				return err
			}
		}
	}

	for _, ev := range state.Events.All() {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO events(seq, type, marker, asset, beneficiary, creator, recipient, releasor, amount)
			 VALUES(?,?,?,?,?,?,?,?,?)`,
			ev.Seq, string(ev.Type), ev.Marker, ev.Asset, ev.Beneficiary,
			ev.Creator, ev.Recipient, ev.Releasor, ev.Amount.String(),
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// CurrentMarker returns the indexed book clock.
func (s *Store) CurrentMarker(ctx context.Context) (uint64, error) {
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM meta WHERE key = 'current_marker'`).Scan(&raw)
	if err != nil {
		return 0, err
	}
	return strconv.ParseUint(raw, 10, 64)
}

// Schedules returns all indexed schedules in (asset, beneficiary) order.
func (s *Store) Schedules(ctx context.Context) ([]vestbook.Schedule, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT asset, beneficiary, total, released, start, duration
		 FROM schedules ORDER BY asset, beneficiary`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []vestbook.Schedule
	for rows.Next() {
		var sched vestbook.Schedule
		var total, released string
		if err := rows.Scan(&sched.Asset, &sched.Beneficiary, &total, &released,
			&sched.Start, &sched.Duration); err != nil {
			return nil, err
		}
		if sched.Total, err = parseInt(total); err != nil {
			return nil, err
		}
		if sched.Released, err = parseInt(released); err != nil {
			return nil, err
		}
		out = append(out, sched)
	}
	return out, rows.Err()
}

// Checkpoints returns the indexed checkpoint series of one account, in
// marker order.
func (s *Store) Checkpoints(ctx context.Context, asset, account string) ([]vestbook.Checkpoint, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT marker, value FROM checkpoints
		 WHERE asset = ? AND account = ? ORDER BY marker`, asset, account)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCheckpoints(rows)
}

// Supply returns the indexed aggregate supply series of one asset, in
// marker order.
func (s *Store) Supply(ctx context.Context, asset string) ([]vestbook.Checkpoint, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT marker, value FROM supply WHERE asset = ? ORDER BY marker`, asset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCheckpoints(rows)
}

// Events returns all indexed domain events in sequence order.
func (s *Store) Events(ctx context.Context) ([]vestbook.Event, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT seq, type, marker, asset, beneficiary, creator, recipient, releasor, amount
		 FROM events ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []vestbook.Event
	for rows.Next() {
		var ev vestbook.Event
		var typ, amount string
		if err := rows.Scan(&ev.Seq, &typ, &ev.Marker, &ev.Asset, &ev.Beneficiary,
			&ev.Creator, &ev.Recipient, &ev.Releasor, &amount); err != nil {
			return nil, err
		}
		ev.Type = vestbook.EventType(typ)
		if ev.Amount, err = parseInt(amount); err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}

func scanCheckpoints(rows *sql.Rows) ([]vestbook.Checkpoint, error) {
	var out []vestbook.Checkpoint
	for rows.Next() {
		var cp vestbook.Checkpoint
		var value string
		if err := rows.Scan(&cp.Marker, &value); err != nil {
			return nil, err
		}
		var err error
		if cp.Value, err = parseInt(value); err != nil {
			return nil, err
		}
		out = append(out, cp)
	}
	return out, rows.Err()
}

func parseInt(raw string) (math.Int, error) {
	v, ok := math.NewIntFromString(raw)
	if !ok {
		return math.Int{}, fmt.Errorf("invalid integer amount %q", raw)
	}
	return v, nil
}
