package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"launchplane/internal/store"
)

// FindPlanet looks up a planet by its exact kepler name.
func (s *Store) FindPlanet(ctx context.Context, keplerName string) (*store.Planet, error) {
	var p store.Planet
	err := s.db.QueryRowContext(ctx, "SELECT kepler_name FROM planets WHERE kepler_name = $1", keplerName).Scan(&p.KeplerName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find planet: %w", err)
	}
	return &p, nil
}

func (s *Store) ListPlanets(ctx context.Context) ([]store.Planet, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT kepler_name FROM planets ORDER BY kepler_name ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to list planets: %w", err)
	}
	defer rows.Close()

	planets := []store.Planet{}
	for rows.Next() {
		var p store.Planet
		if err := rows.Scan(&p.KeplerName); err != nil {
			return nil, err
		}
		planets = append(planets, p)
	}
	return planets, rows.Err()
}

// SavePlanet inserts the planet; existing names are left as they are.
func (s *Store) SavePlanet(ctx context.Context, planet *store.Planet) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO planets (kepler_name) VALUES ($1) ON CONFLICT (kepler_name) DO NOTHING",
		planet.KeplerName,
	)
	if err != nil {
		return fmt.Errorf("failed to save planet %q: %w", planet.KeplerName, err)
	}
	return nil
}
