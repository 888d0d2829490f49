// Package repo contains session storage for tzplanner.
// Each backend implements SessionRepo; the service layer never sees SQL.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/tzplanner/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Integration tests pass a transaction that is rolled back after each test.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// SessionRepo stores sessions in insertion order.
// Sessions are built by domain.Registry; the repo only persists them.
type SessionRepo interface {
	// Append stores s after every existing session and returns it as stored.
	Append(ctx context.Context, s domain.Session) (domain.Session, error)

	// List returns every session in insertion order.
	List(ctx context.Context) ([]domain.Session, error)

	// Delete removes the session with the given key.
	// Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, key uuid.UUID) error
}

// pgSessionRepo is the Postgres implementation of SessionRepo.
// Insertion order is the bigserial seq column.
type pgSessionRepo struct {
	db db
}

// NewSessionRepo constructs a SessionRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewSessionRepo(db db) SessionRepo {
	return &pgSessionRepo{db: db}
}

const sessionColumns = `key, display_id, mode, course_name, schedule_name,
	start_date, end_date, dates, base_timezone, start_time, end_time`

func (r *pgSessionRepo) Append(ctx context.Context, s domain.Session) (domain.Session, error) {
	const q = `
		INSERT INTO sessions (key, display_id, mode, course_name, schedule_name,
		                      start_date, end_date, dates, base_timezone, start_time, end_time)
		VALUES (@key, @display_id, @mode, @course_name, @schedule_name,
		        @start_date, @end_date, @dates, @base_timezone, @start_time, @end_time)
		RETURNING ` + sessionColumns

	args := pgx.NamedArgs{
		"key":           s.Key,
		"display_id":    s.ID,
		"mode":          string(s.Mode),
		"course_name":   s.CourseName,
		"schedule_name": s.ScheduleName,
		"start_date":    pgtype.Date{Time: s.StartDate, Valid: true},
		"end_date":      pgtype.Date{Time: s.EndDate, Valid: true},
		"dates":         s.Dates,
		"base_timezone": s.BaseTimezone,
		"start_time":    s.StartTime,
		"end_time":      s.EndTime,
	}

	result, err := scanSession(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Session{}, fmt.Errorf("repo.SessionRepo.Append: %w", err)
	}
	return result, nil
}

func (r *pgSessionRepo) List(ctx context.Context) ([]domain.Session, error) {
	const q = `SELECT ` + sessionColumns + ` FROM sessions ORDER BY seq`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.SessionRepo.List: %w", err)
	}
	defer rows.Close()

	sessions := []domain.Session{}
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.SessionRepo.List: scan: %w", err)
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.SessionRepo.List: rows: %w", err)
	}
	return sessions, nil
}

func (r *pgSessionRepo) Delete(ctx context.Context, key uuid.UUID) error {
	const q = `DELETE FROM sessions WHERE key = @key`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"key": key})
	if err != nil {
		return fmt.Errorf("repo.SessionRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.SessionRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanSession(sc scanner) (domain.Session, error) {
	var (
		s          domain.Session
		key        pgtype.UUID
		mode       string
		start, end pgtype.Date
	)
	err := sc.Scan(&key, &s.ID, &mode, &s.CourseName, &s.ScheduleName,
		&start, &end, &s.Dates, &s.BaseTimezone, &s.StartTime, &s.EndTime)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Session{}, domain.ErrNotFound
		}
		return domain.Session{}, err
	}
	s.Key = uuid.UUID(key.Bytes)
	s.Mode = domain.Mode(mode)
	s.StartDate = domain.CalendarDate(start.Time)
	s.EndDate = domain.CalendarDate(end.Time)
	return s, nil
}
