// Package planets loads the habitable-planet catalog from the NASA Kepler
// exoplanet archive CSV export.
package planets

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"launchplane/internal/store"
)

// Habitability bounds: stellar flux (Earth = 1) and planetary radius (Earth radii).
const (
	minInsolation = 0.36
	maxInsolation = 1.11
	maxRadius     = 1.6
)

var requiredColumns = []string{"kepler_name", "koi_disposition", "koi_insol", "koi_prad"}

// IsHabitable reports whether a confirmed planet receives Earth-like flux and
// is small enough to be rocky.
func IsHabitable(disposition string, insolation, radius float64) bool {
	return disposition == "CONFIRMED" &&
		insolation > minInsolation &&
		insolation < maxInsolation &&
		radius < maxRadius
}

// Load parses the CSV from r and saves every habitable planet to w.
// Lines starting with '#' are archive comments. It returns the number of
// planets saved.
func Load(ctx context.Context, r io.Reader, w store.PlanetWriter) (int, error) {
	reader := csv.NewReader(r)
	reader.Comment = '#'
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("failed to read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return 0, fmt.Errorf("missing column %q", col)
		}
	}

	saved := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return saved, fmt.Errorf("failed to read record: %w", err)
		}

		field := func(col string) string {
			if i := index[col]; i < len(record) {
				return record[i]
			}
			return ""
		}

		// Rows with blank numeric columns are unmeasured and never habitable.
		insol, err1 := strconv.ParseFloat(field("koi_insol"), 64)
		prad, err2 := strconv.ParseFloat(field("koi_prad"), 64)
		name := field("kepler_name")
		if err1 != nil || err2 != nil || name == "" || !IsHabitable(field("koi_disposition"), insol, prad) {
			continue
		}

		if err := w.SavePlanet(ctx, &store.Planet{KeplerName: name}); err != nil {
			return saved, err
		}
		saved++
	}

	return saved, nil
}

// LoadFile opens path and calls Load.
func LoadFile(ctx context.Context, path string, w store.PlanetWriter) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open planets file: %w", err)
	}
	defer f.Close()

	return Load(ctx, f, w)
}
