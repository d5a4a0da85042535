package launches

import (
	"fmt"
	"time"

	"launchplane/internal/spacex"
	"launchplane/internal/store"
)

// Normalize converts a provider launch document into a stored launch.
// Customers from every payload are concatenated in provider order; duplicates
// are kept. A null success flag (not yet flown) becomes false.
func Normalize(doc spacex.Launch) (store.Launch, error) {
	launchDate, err := time.Parse(time.RFC3339, doc.DateLocal)
	if err != nil {
		return store.Launch{}, fmt.Errorf("launch %d: invalid date_local %q: %w", doc.FlightNumber, doc.DateLocal, err)
	}

	customers := []string{}
	for _, payload := range doc.Payloads {
		customers = append(customers, payload.Customers...)
	}

	success := false
	if doc.Success != nil {
		success = *doc.Success
	}

	return store.Launch{
		FlightNumber: doc.FlightNumber,
		Mission:      doc.Name,
		Rocket:       doc.Rocket.Name,
		LaunchDate:   launchDate,
		Upcoming:     doc.Upcoming,
		Success:      success,
		Customers:    customers,
	}, nil
}
