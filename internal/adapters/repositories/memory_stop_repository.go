package repositories

import (
	"context"
	"fmt"
	"route-planner-service/internal/domain"
	"sync"
)

// In-memory implementation of the StopRepository port, used when no
// database is configured.
type MemoryStopRepository struct {
	mu    sync.RWMutex
	stops []domain.Stop
}

func NewMemoryStopRepository() *MemoryStopRepository {
	return &MemoryStopRepository{}
}

func (m *MemoryStopRepository) ListStops(ctx context.Context) ([]domain.Stop, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]domain.Stop, len(m.stops))
	copy(out, m.stops)
	return out, nil
}

func (m *MemoryStopRepository) ReplaceStops(ctx context.Context, stops []domain.Stop) error {
	if len(stops) > domain.MaxStops {
		return fmt.Errorf("replace stops: %w: %d > %d", domain.ErrTooManyStops, len(stops), domain.MaxStops)
	}

	seen := make(map[string]struct{}, len(stops))
	for _, st := range stops {
		if _, ok := seen[st.ID]; ok {
			return fmt.Errorf("replace stops: duplicate id %q", st.ID)
		}
		seen[st.ID] = struct{}{}
	}

	next := make([]domain.Stop, len(stops))
	copy(next, stops)

	m.mu.Lock()
	m.stops = next
	m.mu.Unlock()
	return nil
}

func (m *MemoryStopRepository) MoveStop(
	ctx context.Context,
	id string,
	loc domain.Coordinates,
	address string,
) (domain.Stop, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.stops {
		if m.stops[i].ID == id {
			m.stops[i].Move(loc, address)
			return m.stops[i], nil
		}
	}
	return domain.Stop{}, fmt.Errorf("move stop %q: %w", id, domain.ErrStopNotFound)
}
