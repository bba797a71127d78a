// Package catalogtest provides an in-memory catalog.Collection for tests of
// packages built on the catalog.
package catalogtest

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/realty/internal/catalog"
	"github.com/dmitrijs2005/realty/internal/common"
)

// Memory is a goroutine-safe catalog.Collection. Errors set with Fail are
// returned by the named operation until cleared with Fail(op, nil).
type Memory struct {
	mu     sync.Mutex
	items  map[int64]catalog.Property
	nextID int64
	clock  time.Time
	fail   map[string]error
	calls  map[string]int
}

// Operation names accepted by Fail and Calls.
const (
	OpList      = "list"
	OpInsert    = "insert"
	OpUpdate    = "update"
	OpSetActive = "set_active"
	OpDelete    = "delete"
)

func NewMemory(drafts ...catalog.Draft) *Memory {
	m := &Memory{
		items: make(map[int64]catalog.Property),
		clock: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC),
		fail:  make(map[string]error),
		calls: make(map[string]int),
	}
	for _, d := range drafts {
		m.add(d)
	}
	return m
}

func (m *Memory) Fail(op string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fail[op] = err
}

// Calls returns how many times op was invoked.
func (m *Memory) Calls(op string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[op]
}

func (m *Memory) begin(op string) error {
	m.calls[op]++
	return m.fail[op]
}

func (m *Memory) add(d catalog.Draft) catalog.Property {
	m.nextID++
	m.clock = m.clock.Add(time.Minute)
	p := catalog.Property{ID: m.nextID, Draft: d, CreatedAt: m.clock, UpdatedAt: m.clock}
	m.items[p.ID] = p
	return p
}

// List returns every listing, newest first.
func (m *Memory) List(ctx context.Context) ([]catalog.Property, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin(OpList); err != nil {
		return nil, err
	}

	out := make([]catalog.Property, 0, len(m.items))
	for _, p := range m.items {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (m *Memory) Insert(ctx context.Context, d catalog.Draft) (catalog.Property, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin(OpInsert); err != nil {
		return catalog.Property{}, err
	}
	return m.add(d), nil
}

// Update replaces every mutable field, the active flag included.
func (m *Memory) Update(ctx context.Context, id int64, d catalog.Draft) (catalog.Property, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin(OpUpdate); err != nil {
		return catalog.Property{}, err
	}
	p, ok := m.items[id]
	if !ok {
		return catalog.Property{}, fmt.Errorf("listing %d: %w", id, common.ErrorNotFound)
	}
	p.Draft = d
	m.clock = m.clock.Add(time.Second)
	p.UpdatedAt = m.clock
	m.items[id] = p
	return p, nil
}

func (m *Memory) SetActive(ctx context.Context, id int64, active bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin(OpSetActive); err != nil {
		return err
	}
	p, ok := m.items[id]
	if !ok {
		return fmt.Errorf("listing %d: %w", id, common.ErrorNotFound)
	}
	p.Active = active
	m.items[id] = p
	return nil
}

func (m *Memory) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin(OpDelete); err != nil {
		return err
	}
	if _, ok := m.items[id]; !ok {
		return fmt.Errorf("listing %d: %w", id, common.ErrorNotFound)
	}
	delete(m.items, id)
	return nil
}

// Get returns a stored listing directly, bypassing failure injection.
func (m *Memory) Get(id int64) (catalog.Property, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.items[id]
	return p, ok
}
