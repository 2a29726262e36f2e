// Package offlinequeue keeps the timing client's submissions that could not
// reach the service and replays them once it is reachable again.
package offlinequeue

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Kind names the API operation an item replays.
type Kind string

const (
	KindTime Kind = "time"
	KindDQ   Kind = "dq"
)

var (
	ErrUnknownKind  = errors.New("unknown submission kind")
	ErrItemNotFound = errors.New("queued submission not found")
)

// Item is one queued submission.
type Item struct {
	ID       string
	Kind     Kind
	Payload  json.RawMessage
	QueuedAt time.Time
	Attempts int
}

// ParkedItem is a submission the service refused during a flush. It leaves
// the FIFO so later items can go out, and stays listed until an operator deals
// with it.
type ParkedItem struct {
	Item
	ParkedAt time.Time
	Reason   string
}

// Queue is a durable FIFO of submissions backed by SQLite.
type Queue struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the queue database at path. Use ":memory:" in tests.
func Open(path string) (*Queue, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf(ErrContextOpen, err)
	}

	// one writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, pragma := range []string{"PRAGMA journal_mode = WAL", "PRAGMA busy_timeout = 5000"} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf(ErrContextPragma, pragma, err)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf(ErrContextSchema, err)
	}

	return &Queue{db: db, now: time.Now}, nil
}

// Close closes the database.
func (q *Queue) Close() error {
	return q.db.Close()
}

// Enqueue appends item, filling in the id and queued-at time when unset.
func (q *Queue) Enqueue(ctx context.Context, item Item) (Item, error) {
	switch item.Kind {
	case KindTime, KindDQ:
	default:
		return Item{}, fmt.Errorf("%w: %q", ErrUnknownKind, item.Kind)
	}
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if item.QueuedAt.IsZero() {
		item.QueuedAt = q.now()
	}

	_, err := q.db.ExecContext(ctx,
		`INSERT INTO queued_submissions (id, kind, payload, queued_at, attempts) VALUES (?, ?, ?, ?, ?)`,
		item.ID, string(item.Kind), string(item.Payload), item.QueuedAt.Format(timeLayout), item.Attempts)
	if err != nil {
		return Item{}, fmt.Errorf(ErrContextEnqueue, err)
	}
	return item, nil
}

// List returns every queued item in insertion order.
func (q *Queue) List(ctx context.Context) ([]Item, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT id, kind, payload, queued_at, attempts FROM queued_submissions ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf(ErrContextList, err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var (
			it       Item
			kind     string
			payload  string
			queuedAt string
		)
		if err := rows.Scan(&it.ID, &kind, &payload, &queuedAt, &it.Attempts); err != nil {
			return nil, fmt.Errorf(ErrContextList, err)
		}
		it.Kind = Kind(kind)
		it.Payload = json.RawMessage(payload)
		if it.QueuedAt, err = time.Parse(timeLayout, queuedAt); err != nil {
			return nil, fmt.Errorf(ErrContextList, err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf(ErrContextList, err)
	}
	return items, nil
}

// Remove deletes the item with id.
func (q *Queue) Remove(ctx context.Context, id string) error {
	res, err := q.db.ExecContext(ctx, `DELETE FROM queued_submissions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf(ErrContextRemove, id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf(ErrContextRemove, id, ErrItemNotFound)
	}
	return nil
}

// Park moves the item with id out of the FIFO into the parked list.
func (q *Queue) Park(ctx context.Context, id, reason string) error {
	tx, err := q.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf(ErrContextPark, id, err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO parked_submissions (id, kind, payload, queued_at, attempts, parked_at, reason)
		SELECT id, kind, payload, queued_at, attempts + 1, ?, ?
		FROM queued_submissions WHERE id = ?`,
		q.now().Format(timeLayout), reason, id)
	if err != nil {
		return fmt.Errorf(ErrContextPark, id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf(ErrContextPark, id, ErrItemNotFound)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM queued_submissions WHERE id = ?`, id); err != nil {
		return fmt.Errorf(ErrContextPark, id, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf(ErrContextPark, id, err)
	}
	return nil
}

// Parked returns every parked item, oldest first.
func (q *Queue) Parked(ctx context.Context) ([]ParkedItem, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT id, kind, payload, queued_at, attempts, parked_at, reason FROM parked_submissions ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf(ErrContextListParked, err)
	}
	defer rows.Close()

	var items []ParkedItem
	for rows.Next() {
		var (
			it                 ParkedItem
			kind, payload      string
			queuedAt, parkedAt string
		)
		if err := rows.Scan(&it.ID, &kind, &payload, &queuedAt, &it.Attempts, &parkedAt, &it.Reason); err != nil {
			return nil, fmt.Errorf(ErrContextListParked, err)
		}
		it.Kind = Kind(kind)
		it.Payload = json.RawMessage(payload)
		if it.QueuedAt, err = time.Parse(timeLayout, queuedAt); err != nil {
			return nil, fmt.Errorf(ErrContextListParked, err)
		}
		if it.ParkedAt, err = time.Parse(timeLayout, parkedAt); err != nil {
			return nil, fmt.Errorf(ErrContextListParked, err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf(ErrContextListParked, err)
	}
	return items, nil
}

// MarkAttempt increments the item's attempt counter.
func (q *Queue) MarkAttempt(ctx context.Context, id string) error {
	if _, err := q.db.ExecContext(ctx, `UPDATE queued_submissions SET attempts = attempts + 1 WHERE id = ?`, id); err != nil {
		return fmt.Errorf(ErrContextMarkAttempt, id, err)
	}
	return nil
}

// Len returns the number of queued items.
func (q *Queue) Len(ctx context.Context) (int, error) {
	var n int
	if err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM queued_submissions`).Scan(&n); err != nil {
		return 0, fmt.Errorf(ErrContextCount, err)
	}
	return n, nil
}
