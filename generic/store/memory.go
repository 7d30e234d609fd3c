// Package store provides CalculationStore implementations.
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/warp/shift-rates/generic"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu           sync.RWMutex
	calculations []generic.Calculation // ordered by CreatedAt
	byID         map[generic.CalculationID]int
}

func NewMemory() *Memory {
	return &Memory{byID: make(map[generic.CalculationID]int)}
}

// Save adds a calculation. Append-only.
func (m *Memory) Save(_ context.Context, c generic.Calculation) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byID[c.ID]; ok {
		return generic.ErrDuplicateCalculation
	}

	i := sort.Search(len(m.calculations), func(i int) bool {
		return m.calculations[i].CreatedAt.After(c.CreatedAt)
	})
	m.calculations = append(m.calculations, generic.Calculation{})
	copy(m.calculations[i+1:], m.calculations[i:])
	m.calculations[i] = c

	for j := i; j < len(m.calculations); j++ {
		m.byID[m.calculations[j].ID] = j
	}
	return nil
}

func (m *Memory) Get(_ context.Context, id generic.CalculationID) (*generic.Calculation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	i, ok := m.byID[id]
	if !ok {
		return nil, generic.ErrCalculationNotFound
	}
	c := m.calculations[i]
	return &c, nil
}

// List returns newest first.
func (m *Memory) List(_ context.Context, limit int) ([]generic.Calculation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	n := len(m.calculations)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]generic.Calculation, 0, n)
	for i := len(m.calculations) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, m.calculations[i])
	}
	return out, nil
}
