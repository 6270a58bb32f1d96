// Package services provides the two collaborators the entry form depends on:
// the location list source and the name availability check. Both an in-memory
// mock and an HTTP client against the dev server are available.
package services

import (
	"context"
	"errors"
)

// ErrUnavailable reports that a provider could not produce an answer.
var ErrUnavailable = errors.New("service unavailable")

// LocationProvider yields the ordered list of selectable locations.
type LocationProvider interface {
	Locations(ctx context.Context) ([]string, error)
}

// NameValidator reports whether a name is still available (true) or already taken (false).
type NameValidator interface {
	IsNameValid(ctx context.Context, name string) (bool, error)
}

// LocationsResponse is the JSON body of GET /api/locations.
type LocationsResponse struct {
	Locations []string `json:"locations"`
}

// NameCheckResponse is the JSON body of GET /api/names/valid.
type NameCheckResponse struct {
	Name  string `json:"name"`
	Valid bool   `json:"valid"`
}

// ErrorResponse is the JSON body of any non-2xx API response.
type ErrorResponse struct {
	Error string `json:"error"`
}
