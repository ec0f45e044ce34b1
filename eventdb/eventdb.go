// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package eventdb stores the activity log of committed ledger operations in sqlite.
package eventdb

import (
	"context"
	"database/sql"

	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

// EventDB manages the activity log.
type EventDB struct {
	path          string
	db            *sql.DB
	driverVersion string
}

// New creates or opens an event db at the given path.
func New(path string) (edb *EventDB, err error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrap(err, "open event db")
	}
	defer func() {
		if edb == nil {
			db.Close()
		}
	}()
	// a single connection keeps ":memory:" databases alive and serializes writers
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(eventTableSchema); err != nil {
		return nil, errors.Wrap(err, "create event table")
	}

	driverVer, _, _ := sqlite3.Version()
	return &EventDB{path, db, driverVer}, nil
}

// NewMem creates an event db in ram.
func NewMem() (*EventDB, error) {
	return New(":memory:")
}

func (db *EventDB) Close() error {
	return db.db.Close()
}

func (db *EventDB) Path() string {
	return db.path
}

func (db *EventDB) DriverVersion() string {
	return db.driverVersion
}

// Write appends events in one transaction and assigns their Seq.
func (db *EventDB) Write(ctx context.Context, events []*Event) error {
	if len(events) == 0 {
		return nil
	}
	tx, err := db.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin")
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO event(time, period, kind, caller, record, receipt, asset, amount) VALUES(?, ?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return errors.Wrap(err, "prepare")
	}
	defer stmt.Close()

	for _, ev := range events {
		res, err := stmt.ExecContext(ctx, ev.Time, ev.Period, ev.Kind, ev.Caller, ev.Record, ev.Receipt, ev.Asset, ev.Amount)
		if err != nil {
			return errors.Wrap(err, "insert event")
		}
		seq, err := res.LastInsertId()
		if err != nil {
			return err
		}
		ev.Seq = uint64(seq)
	}
	return tx.Commit()
}

// Filter returns the events matching filter, ordered by sequence.
func (db *EventDB) Filter(ctx context.Context, filter *Filter) ([]*Event, error) {
	stmt := "SELECT seq, time, period, kind, caller, record, receipt, asset, amount FROM event WHERE 1"
	var args []any

	if filter == nil {
		filter = &Filter{}
	}
	if filter.Record != nil {
		stmt += " AND record = ?"
		args = append(args, *filter.Record)
	}
	if filter.Asset != "" {
		stmt += " AND asset = ?"
		args = append(args, filter.Asset)
	}
	if filter.Kind != "" {
		stmt += " AND kind = ?"
		args = append(args, filter.Kind)
	}
	if filter.Caller != "" {
		stmt += " AND caller = ?"
		args = append(args, filter.Caller)
	}
	if filter.Range != nil {
		stmt += " AND time >= ?"
		args = append(args, filter.Range.From)
		if filter.Range.To >= filter.Range.From {
			stmt += " AND time <= ?"
			args = append(args, filter.Range.To)
		}
	}
	if filter.Order == DESC {
		stmt += " ORDER BY seq DESC"
	} else {
		stmt += " ORDER BY seq ASC"
	}
	if filter.Options != nil {
		stmt += " LIMIT ?, ?"
		args = append(args, filter.Options.Offset, filter.Options.Limit)
	}
	return db.query(ctx, stmt, args...)
}

func (db *EventDB) query(ctx context.Context, stmt string, args ...any) ([]*Event, error) {
	rows, err := db.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*Event, 0)
	for rows.Next() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		var ev Event
		if err := rows.Scan(
			&ev.Seq,
			&ev.Time,
			&ev.Period,
			&ev.Kind,
			&ev.Caller,
			&ev.Record,
			&ev.Receipt,
			&ev.Asset,
			&ev.Amount,
		); err != nil {
			return nil, err
		}
		events = append(events, &ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}
