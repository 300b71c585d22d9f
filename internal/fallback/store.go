// Package fallback is the locally-persisted overlay for records the
// upstream refused to accept. It is the single source of truth for
// locally-originated data: entries only ever change through explicit
// Upsert/Remove calls, and every change is logged.
package fallback

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"

	"roomstay-admin/internal/domain/resource"
	"roomstay-admin/internal/fallback/migrations"
	"roomstay-admin/internal/pkg/errs"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// Local ids start above any id the upstream plausibly assigns, so an
// overlay entry never shadows an upstream record by accident.
const localIDSeed = 999000

type Origin string

const (
	OriginLocalCreate Origin = "local-create"
	OriginLocalEdit   Origin = "local-edit"
)

// Entry is one overlaid record: the raw payload plus where it came
// from. Position preserves insertion order across restarts.
type Entry struct {
	Resource resource.Kind
	ID       int64
	Origin   Origin
	Payload  json.RawMessage
	Position int64
}

// Decode unmarshals the entry payload into a concrete record type.
func Decode[T any](e Entry) (T, error) {
	var rec T
	if err := json.Unmarshal(e.Payload, &rec); err != nil {
		return rec, errs.Wrapf(err, "failed to decode fallback entry %s/%d", e.Resource, e.ID)
	}
	return rec, nil
}

type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

func Open(ctx context.Context, dsn string, logger *slog.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errs.Wrap(err, "failed to open fallback store")
	}
	// modernc sqlite serializes writes itself; a single connection
	// avoids SQLITE_BUSY on concurrent mutations.
	db.SetMaxOpenConns(1)

	if err := runMigrations(ctx, db); err != nil {
		return nil, err
	}
	return &Store{db: db, logger: logger}, nil
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return errs.Wrap(err, "failed to set goose dialect")
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return errs.Wrap(err, "failed to run fallback store migrations")
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// ReadAll returns every entry for a resource in insertion order. Safe
// to call repeatedly; it never mutates anything.
func (s *Store) ReadAll(ctx context.Context, kind resource.Kind) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT resource, id, origin, payload, position
		   FROM fallback_entries WHERE resource = ? ORDER BY position`,
		kind.String())
	if err != nil {
		return nil, errs.Wrap(err, "failed to read fallback entries")
	}
	defer rows.Close()

	var result []Entry
	for rows.Next() {
		var e Entry
		var res string
		var payload []byte
		if err := rows.Scan(&res, &e.ID, &e.Origin, &payload, &e.Position); err != nil {
			return nil, errs.Wrap(err, "failed to scan fallback entry")
		}
		e.Resource = resource.Kind(res)
		e.Payload = json.RawMessage(payload)
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Wrap(err, "failed to iterate fallback entries")
	}
	return result, nil
}

// Get returns the entry with the given id, or nil when absent.
func (s *Store) Get(ctx context.Context, kind resource.Kind, id int64) (*Entry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT resource, id, origin, payload, position
		   FROM fallback_entries WHERE resource = ? AND id = ?`,
		kind.String(), id)

	var e Entry
	var res string
	var payload []byte
	if err := row.Scan(&res, &e.ID, &e.Origin, &payload, &e.Position); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, errs.Wrap(err, "failed to read fallback entry")
	}
	e.Resource = resource.Kind(res)
	e.Payload = json.RawMessage(payload)
	return &e, nil
}

// Upsert inserts or replaces the entry with that id. A replaced entry
// keeps its original position so merge order stays stable.
func (s *Store) Upsert(ctx context.Context, kind resource.Kind, id int64, origin Origin, payload json.RawMessage) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO fallback_entries (resource, id, origin, payload) VALUES (?, ?, ?, ?)
		 ON CONFLICT (resource, id) DO UPDATE SET origin = excluded.origin, payload = excluded.payload`,
		kind.String(), id, string(origin), string(payload))
	if err != nil {
		return errs.Wrapf(err, "failed to upsert fallback entry %s/%d", kind, id)
	}
	s.logger.Info("fallback entry upserted",
		slog.String("resource", kind.String()),
		slog.Int64("id", id),
		slog.String("origin", string(origin)))
	return nil
}

// Remove deletes the entry if present; removing an absent entry is a
// no-op, not an error.
func (s *Store) Remove(ctx context.Context, kind resource.Kind, id int64) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM fallback_entries WHERE resource = ? AND id = ?`,
		kind.String(), id)
	if err != nil {
		return errs.Wrapf(err, "failed to remove fallback entry %s/%d", kind, id)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		s.logger.Info("fallback entry removed",
			slog.String("resource", kind.String()),
			slog.Int64("id", id))
	}
	return nil
}

// NextLocalID hands out a fresh id for a locally-created record:
// strictly increasing per resource, never reused, always above the
// upstream's id range.
func (s *Store) NextLocalID(ctx context.Context, kind resource.Kind) (int64, error) {
	row := s.db.QueryRowContext(ctx,
		`INSERT INTO local_ids (resource, next_id) VALUES (?, ?)
		 ON CONFLICT (resource) DO UPDATE SET next_id = next_id + 1
		 RETURNING next_id`,
		kind.String(), localIDSeed+1)

	var id int64
	if err := row.Scan(&id); err != nil {
		return 0, errs.Wrapf(err, "failed to assign local id for %s", kind)
	}
	return id, nil
}
