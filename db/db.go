// Package db persists the watcher's baseline: which seats were purchasable
// at the last completed check, per (trip, wagon class). It owns the Trip,
// Wagon and Seat records; everything else only borrows snapshots.
package db

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"monks.co/uzwatch/model"
)

//go:embed schema.sql
var ddl string

// ErrUnavailable marks any persistence-layer failure. Callers treat it as
// transient and retry the whole cycle.
var ErrUnavailable = errors.New("store unavailable")

type DB struct {
	db *sql.DB
}

func Open(filename string) (*DB, error) {
	ctx := context.Background()

	db, err := sql.Open("sqlite3", filename)
	if err != nil {
		return nil, unavailable(err)
	}

	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return nil, unavailable(err)
	}

	return &DB{db}, nil
}

func (db *DB) Close() error {
	return db.db.Close()
}

func unavailable(err error) error {
	return fmt.Errorf("%w: %w", ErrUnavailable, err)
}

// EnsureTrip returns the trip with the given train number, creating it on
// first observation. The train number is immutable once recorded.
func (db *DB) EnsureTrip(ctx context.Context, id int, trainNumber string) (model.Trip, error) {
	var trip model.Trip
	err := db.db.QueryRowContext(ctx,
		`SELECT id, train_number FROM trips WHERE train_number = ?`,
		trainNumber).Scan(&trip.ID, &trip.TrainNumber)
	if err == nil {
		return trip, nil
	} else if !errors.Is(err, sql.ErrNoRows) {
		return model.Trip{}, unavailable(err)
	}

	if _, err := db.db.ExecContext(ctx,
		`INSERT INTO trips (id, train_number) VALUES (?, ?)`,
		id, trainNumber); err != nil {
		return model.Trip{}, unavailable(err)
	}
	return model.Trip{ID: id, TrainNumber: trainNumber}, nil
}

// EnsureWagon returns the wagon class with the given id, creating it on
// first observation.
func (db *DB) EnsureWagon(ctx context.Context, id, name string) (model.WagonClass, error) {
	var wc model.WagonClass
	err := db.db.QueryRowContext(ctx,
		`SELECT id, name FROM wagons WHERE id = ?`,
		id).Scan(&wc.ID, &wc.Name)
	if err == nil {
		return wc, nil
	} else if !errors.Is(err, sql.ErrNoRows) {
		return model.WagonClass{}, unavailable(err)
	}

	if _, err := db.db.ExecContext(ctx,
		`INSERT INTO wagons (id, name) VALUES (?, ?)`,
		id, name); err != nil {
		return model.WagonClass{}, unavailable(err)
	}
	return model.WagonClass{ID: id, Name: name}, nil
}

// PreviousSnapshot returns the stored seat set for the pair, empty on the
// first observation.
func (db *DB) PreviousSnapshot(ctx context.Context, tripID int, wagonID string) (*model.Snapshot, error) {
	rows, err := db.db.QueryContext(ctx,
		`SELECT wagon_number, seat_number FROM seats WHERE trip_id = ? AND wagon_id = ?`,
		tripID, wagonID)
	if err != nil {
		return nil, unavailable(err)
	}
	defer rows.Close()

	snap := model.NewSet[model.SeatKey]()
	for rows.Next() {
		var key model.SeatKey
		if err := rows.Scan(&key.WagonNumber, &key.SeatNumber); err != nil {
			return nil, unavailable(err)
		}
		snap.Add(key)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable(err)
	}
	return snap, nil
}

// ReplaceSnapshot makes cur the stored baseline for the pair in one
// transaction: seats absent from cur are deleted, seats newly present are
// inserted, unchanged rows stay untouched. Applying the same snapshot twice
// writes nothing the second time. External readers never observe a
// half-updated set.
func (db *DB) ReplaceSnapshot(ctx context.Context, tripID int, wagonID string, cur *model.Snapshot) error {
	tx, err := db.db.BeginTx(ctx, nil)
	if err != nil {
		return unavailable(err)
	}
	defer tx.Rollback()

	stored := model.NewSet[model.SeatKey]()
	rows, err := tx.QueryContext(ctx,
		`SELECT wagon_number, seat_number FROM seats WHERE trip_id = ? AND wagon_id = ?`,
		tripID, wagonID)
	if err != nil {
		return unavailable(err)
	}
	for rows.Next() {
		var key model.SeatKey
		if err := rows.Scan(&key.WagonNumber, &key.SeatNumber); err != nil {
			rows.Close()
			return unavailable(err)
		}
		stored.Add(key)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return unavailable(err)
	}
	rows.Close()

	for key := range stored.Difference(cur).All() {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM seats WHERE trip_id = ? AND wagon_id = ? AND wagon_number = ? AND seat_number = ?`,
			tripID, wagonID, key.WagonNumber, key.SeatNumber); err != nil {
			return unavailable(err)
		}
	}
	for key := range cur.Difference(stored).All() {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO seats (trip_id, wagon_id, wagon_number, seat_number) VALUES (?, ?, ?, ?)`,
			tripID, wagonID, key.WagonNumber, key.SeatNumber); err != nil {
			return unavailable(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return unavailable(err)
	}
	return nil
}
