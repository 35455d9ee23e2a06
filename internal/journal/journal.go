// Package journal keeps a local sqlite record of every checkout attempt and
// per-line order outcome. Checkouts are not transactional across lines, so a
// failed attempt can leave a partial order set on the backend; the journal is
// what an administrator reconciles that set against.
package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

type Journal struct {
	db *sql.DB
}

func Open(dbPath string) (*Journal, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping journal database: %w", err)
	}

	return &Journal{db: db}, nil
}

func (j *Journal) RunMigrations(migrationsPath string) error {
	driver, err := sqlite.WithInstance(j.db, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", migrationsPath),
		"sqlite",
		driver,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

func (j *Journal) Close() error {
	return j.db.Close()
}

func (j *Journal) AttemptStarted(ctx context.Context, attemptID, buyerEmail string, lineCount int) error {
	query := `INSERT INTO checkout_attempts (id, buyer_email, line_count, status, started_at)
	          VALUES ($1, $2, $3, 'in_progress', $4)`
	if _, err := j.db.ExecContext(ctx, query, attemptID, buyerEmail, lineCount, time.Now()); err != nil {
		return fmt.Errorf("insert attempt: %w", err)
	}
	return nil
}

func (j *Journal) BuyerResolved(ctx context.Context, attemptID string, buyerID int64, source string) error {
	query := `UPDATE checkout_attempts SET buyer_id = $1, buyer_source = $2 WHERE id = $3`
	if _, err := j.db.ExecContext(ctx, query, buyerID, source, attemptID); err != nil {
		return fmt.Errorf("update attempt buyer: %w", err)
	}
	return nil
}

func (j *Journal) LineResult(ctx context.Context, attemptID string, productID, orderID int64, lineErr error) error {
	var errText sql.NullString
	if lineErr != nil {
		errText = sql.NullString{String: lineErr.Error(), Valid: true}
	}
	var order sql.NullInt64
	if orderID != 0 {
		order = sql.NullInt64{Int64: orderID, Valid: true}
	}

	query := `INSERT INTO checkout_lines (id, attempt_id, product_id, order_id, error, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := j.db.ExecContext(ctx, query, uuid.NewString(), attemptID, productID, order, errText, time.Now()); err != nil {
		return fmt.Errorf("insert line result: %w", err)
	}
	return nil
}

func (j *Journal) AttemptFinished(ctx context.Context, attemptID, status string) error {
	query := `UPDATE checkout_attempts SET status = $1, finished_at = $2 WHERE id = $3`
	if _, err := j.db.ExecContext(ctx, query, status, time.Now(), attemptID); err != nil {
		return fmt.Errorf("update attempt status: %w", err)
	}
	return nil
}

// Attempt is a journal row for admin reconciliation.
type Attempt struct {
	ID          string
	BuyerEmail  string
	LineCount   int
	BuyerID     int64
	BuyerSource string
	Status      string
	StartedAt   time.Time
}

// Line is one per-line outcome within an attempt.
type Line struct {
	ProductID int64
	OrderID   int64
	Error     string
}

// Attempts lists attempts newest first.
func (j *Journal) Attempts(ctx context.Context) ([]Attempt, error) {
	query := `SELECT id, buyer_email, line_count, buyer_id, buyer_source, status, started_at
	          FROM checkout_attempts ORDER BY started_at DESC`

	rows, err := j.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query attempts: %w", err)
	}
	defer rows.Close()

	var attempts []Attempt
	for rows.Next() {
		var a Attempt
		var buyerID sql.NullInt64
		var source sql.NullString
		if err := rows.Scan(&a.ID, &a.BuyerEmail, &a.LineCount, &buyerID, &source, &a.Status, &a.StartedAt); err != nil {
			return nil, fmt.Errorf("failed to scan attempt: %w", err)
		}
		a.BuyerID = buyerID.Int64
		a.BuyerSource = source.String
		attempts = append(attempts, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return attempts, nil
}

// Lines lists the per-line outcomes of one attempt in creation order.
func (j *Journal) Lines(ctx context.Context, attemptID string) ([]Line, error) {
	query := `SELECT product_id, order_id, error FROM checkout_lines
	          WHERE attempt_id = $1 ORDER BY created_at, id`

	rows, err := j.db.QueryContext(ctx, query, attemptID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines: %w", err)
	}
	defer rows.Close()

	var lines []Line
	for rows.Next() {
		var l Line
		var orderID sql.NullInt64
		var errText sql.NullString
		if err := rows.Scan(&l.ProductID, &orderID, &errText); err != nil {
			return nil, fmt.Errorf("failed to scan line: %w", err)
		}
		l.OrderID = orderID.Int64
		l.Error = errText.String
		lines = append(lines, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return lines, nil
}
