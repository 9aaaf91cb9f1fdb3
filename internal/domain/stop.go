package domain

import (
	"strings"

	"github.com/google/uuid"
)

// MaxStops bounds the stop sequence managed by the application.
// The engine itself handles any length.
const MaxStops = 25

// Stop is a named, addressed point the route must visit.
// Its position in the containing sequence is the visiting order.
type Stop struct {
	ID       string
	Name     string
	Address  string
	Location Coordinates
}

// NewStop creates a stop with a fresh identity.
func NewStop(name, address string, loc Coordinates) Stop {
	return Stop{
		ID:       uuid.NewString(),
		Name:     strings.TrimSpace(name),
		Address:  strings.TrimSpace(address),
		Location: loc,
	}
}

// Move updates the location and address in place (e.g. after a drag).
// Identity is never changed.
func (s *Stop) Move(loc Coordinates, address string) {
	s.Location = loc
	if a := strings.TrimSpace(address); a != "" {
		s.Address = a
	}
}

// Locations returns the coordinates of the stops in sequence order.
func Locations(stops []Stop) []Coordinates {
	out := make([]Coordinates, len(stops))
	for i, s := range stops {
		out[i] = s.Location
	}
	return out
}
