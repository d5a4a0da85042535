package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"launchplane/internal/store"

	"github.com/lib/pq"
)

const launchColumns = "flight_number, mission, rocket, launch_date, target, upcoming, success, customers, utc_offset"

// uniqueViolation is the PostgreSQL error code for unique_violation.
const uniqueViolation = "23505"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLaunch(row rowScanner) (*store.Launch, error) {
	var (
		l      store.Launch
		offset int
	)
	err := row.Scan(
		&l.FlightNumber,
		&l.Mission,
		&l.Rocket,
		&l.LaunchDate,
		&l.Target,
		&l.Upcoming,
		&l.Success,
		pq.Array(&l.Customers),
		&offset,
	)
	if err != nil {
		return nil, err
	}
	l.LaunchDate = inOffset(l.LaunchDate, offset)
	if l.Customers == nil {
		l.Customers = []string{}
	}
	return &l, nil
}

// FindLaunch returns the first launch matching the filter, or nil if none does.
func (s *Store) FindLaunch(ctx context.Context, filter store.LaunchFilter) (*store.Launch, error) {
	var (
		conds []string
		args  []any
	)
	if filter.FlightNumber != 0 {
		args = append(args, filter.FlightNumber)
		conds = append(conds, fmt.Sprintf("flight_number = $%d", len(args)))
	}
	if filter.Rocket != "" {
		args = append(args, filter.Rocket)
		conds = append(conds, fmt.Sprintf("rocket = $%d", len(args)))
	}
	if filter.Mission != "" {
		args = append(args, filter.Mission)
		conds = append(conds, fmt.Sprintf("mission = $%d", len(args)))
	}

	query := "SELECT " + launchColumns + " FROM launches"
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY flight_number ASC LIMIT 1"

	launch, err := scanLaunch(s.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find launch: %w", err)
	}
	return launch, nil
}

// LatestFlightNumber returns the highest flight number in the table.
func (s *Store) LatestFlightNumber(ctx context.Context) (int, bool, error) {
	var latest sql.NullInt64
	if err := s.db.QueryRowContext(ctx, "SELECT MAX(flight_number) FROM launches").Scan(&latest); err != nil {
		return 0, false, fmt.Errorf("failed to read latest flight number: %w", err)
	}
	if !latest.Valid {
		return 0, false, nil
	}
	return int(latest.Int64), true, nil
}

// ListLaunches returns a page of launches ordered by flight number.
// NULLIF turns a zero limit into LIMIT NULL, which PostgreSQL treats as no limit.
func (s *Store) ListLaunches(ctx context.Context, skip, limit int) ([]store.Launch, error) {
	query := `
		SELECT ` + launchColumns + `
		FROM launches
		ORDER BY flight_number ASC
		OFFSET $1
		LIMIT NULLIF($2, 0)
	`

	rows, err := s.db.QueryContext(ctx, query, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list launches: %w", err)
	}
	defer rows.Close()

	launches := []store.Launch{}
	for rows.Next() {
		launch, err := scanLaunch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan launch: %w", err)
		}
		launches = append(launches, *launch)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list launches rows error: %w", err)
	}

	return launches, nil
}

// SaveLaunch upserts a launch keyed by flight number. The conflict update is
// guarded on an empty target, so a scheduled row matches nothing and the
// statement affects zero rows.
func (s *Store) SaveLaunch(ctx context.Context, launch *store.Launch) error {
	query := `
		INSERT INTO launches (` + launchColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (flight_number) DO UPDATE SET
			mission = EXCLUDED.mission,
			rocket = EXCLUDED.rocket,
			launch_date = EXCLUDED.launch_date,
			target = EXCLUDED.target,
			upcoming = EXCLUDED.upcoming,
			success = EXCLUDED.success,
			customers = EXCLUDED.customers,
			utc_offset = EXCLUDED.utc_offset,
			updated_at = NOW()
		WHERE launches.target = ''
	`

	res, err := s.db.ExecContext(ctx, query, launchArgs(launch)...)
	if err != nil {
		return fmt.Errorf("failed to save launch %d: %w", launch.FlightNumber, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrScheduledLaunch
	}
	return nil
}

// InsertLaunch inserts a new launch. It never replaces an existing row.
func (s *Store) InsertLaunch(ctx context.Context, launch *store.Launch) error {
	query := `
		INSERT INTO launches (` + launchColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := s.db.ExecContext(ctx, query, launchArgs(launch)...)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return store.ErrDuplicateFlightNumber
		}
		return fmt.Errorf("failed to insert launch %d: %w", launch.FlightNumber, err)
	}
	return nil
}

// AbortLaunch flips upcoming and success to false.
// Launches that are already aborted are left untouched and report false.
func (s *Store) AbortLaunch(ctx context.Context, flightNumber int) (bool, error) {
	query := `
		UPDATE launches
		SET upcoming = FALSE, success = FALSE, updated_at = NOW()
		WHERE flight_number = $1 AND (upcoming OR success)
	`

	res, err := s.db.ExecContext(ctx, query, flightNumber)
	if err != nil {
		return false, fmt.Errorf("failed to abort launch %d: %w", flightNumber, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// CountLaunches returns the number of rows in the launches table.
func (s *Store) CountLaunches(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM launches").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count launches: %w", err)
	}
	return count, nil
}

func launchArgs(l *store.Launch) []any {
	customers := l.Customers
	if customers == nil {
		customers = []string{}
	}
	_, offset := l.LaunchDate.Zone()
	return []any{
		l.FlightNumber,
		l.Mission,
		l.Rocket,
		l.LaunchDate,
		l.Target,
		l.Upcoming,
		l.Success,
		pq.Array(customers),
		offset,
	}
}

// inOffset moves t into the fixed zone it was written with. TIMESTAMPTZ keeps
// only the instant.
func inOffset(t time.Time, offset int) time.Time {
	if offset == 0 {
		return t.UTC()
	}
	return t.In(time.FixedZone("", offset))
}
