// Package store contains the database layer for launchplane.
package store

import "time"

// Launch is a single spaceflight launch, either imported from the launch
// data provider or scheduled by a user.
// FlightNumber is the unique key and never changes after creation.
type Launch struct {
	FlightNumber int       `json:"flightNumber"`
	Mission      string    `json:"mission"`
	Rocket       string    `json:"rocket"`
	LaunchDate   time.Time `json:"launchDate"`
	Target       string    `json:"target,omitempty"` // Empty for imported launches
	Upcoming     bool      `json:"upcoming"`
	Success      bool      `json:"success"`
	Customers    []string  `json:"customers"`
}

// LaunchFilter is an exact-match filter over launches.
// Zero-valued fields are unconstrained.
type LaunchFilter struct {
	FlightNumber int
	Mission      string
	Rocket       string
}

// IsEmpty reports whether the filter constrains nothing.
func (f LaunchFilter) IsEmpty() bool {
	return f.FlightNumber == 0 && f.Mission == "" && f.Rocket == ""
}

// Matches reports whether l satisfies every constrained field of f.
func (f LaunchFilter) Matches(l *Launch) bool {
	if f.FlightNumber != 0 && l.FlightNumber != f.FlightNumber {
		return false
	}
	if f.Mission != "" && l.Mission != f.Mission {
		return false
	}
	if f.Rocket != "" && l.Rocket != f.Rocket {
		return false
	}
	return true
}

// Planet is a valid scheduling target.
type Planet struct {
	KeplerName string `json:"keplerName"`
}
