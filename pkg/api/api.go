// Package api contains shared JSON request/response structs.
// This package is shared between the CLI and Controller.
package api

import "time"

// ScheduleLaunchRequest is the request body for scheduling a new launch.
// LaunchDate accepts RFC 3339, YYYY-MM-DD or "January 2, 2006".
type ScheduleLaunchRequest struct {
	Mission    string `json:"mission"`
	Rocket     string `json:"rocket"`
	Target     string `json:"target"`
	LaunchDate string `json:"launchDate"`
}

// Launch represents a launch in API responses.
type Launch struct {
	FlightNumber int       `json:"flightNumber"`
	Mission      string    `json:"mission"`
	Rocket       string    `json:"rocket"`
	LaunchDate   time.Time `json:"launchDate"`
	Target       string    `json:"target,omitempty"`
	Upcoming     bool      `json:"upcoming"`
	Success      bool      `json:"success"`
	Customers    []string  `json:"customers"`
}

// Planet represents a habitable planet in API responses.
type Planet struct {
	KeplerName string `json:"keplerName"`
}

// AbortResponse is the response body after aborting an existing launch.
// OK is false when the launch was already aborted.
type AbortResponse struct {
	OK bool `json:"ok"`
}

// ImportResponse is the response body after a manual re-import.
type ImportResponse struct {
	Imported int `json:"imported"`
}

// ErrorResponse is the standard error response body.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}
