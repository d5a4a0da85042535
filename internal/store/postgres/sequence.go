package postgres

import (
	"context"
	"fmt"
)

// NextFlightNumber atomically allocates the next flight number.
// The counter is first lifted to the current table maximum so imported
// launches are never collided with. Concurrent callers serialize on the
// counter row lock.
func (s *Store) NextFlightNumber(ctx context.Context) (int, error) {
	query := `
		UPDATE flight_sequence
		SET value = GREATEST(value, COALESCE((SELECT MAX(flight_number) FROM launches), 0)) + 1
		WHERE name = 'launches'
		RETURNING value
	`

	var next int
	if err := s.db.QueryRowContext(ctx, query).Scan(&next); err != nil {
		return 0, fmt.Errorf("failed to allocate flight number: %w", err)
	}
	return next, nil
}
