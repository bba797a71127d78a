package catalog

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/realty/internal/common"
)

// fakeCollection is an in-memory Collection with injectable failures.
type fakeCollection struct {
	mu     sync.Mutex
	items  map[int64]Property
	nextID int64
	clock  time.Time

	listCalls int
	listFn    func(call int) ([]Property, error)

	listErr, insertErr, updateErr, setActiveErr, deleteErr error
}

func newFakeCollection(drafts ...Draft) *fakeCollection {
	f := &fakeCollection{
		items: make(map[int64]Property),
		clock: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC),
	}
	for _, d := range drafts {
		f.add(d)
	}
	return f
}

func (f *fakeCollection) add(d Draft) Property {
	f.nextID++
	f.clock = f.clock.Add(time.Minute)
	p := Property{ID: f.nextID, Draft: d, CreatedAt: f.clock, UpdatedAt: f.clock}
	f.items[p.ID] = p
	return p
}

func (f *fakeCollection) snapshot() []Property {
	out := make([]Property, 0, len(f.items))
	for _, p := range f.items {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (f *fakeCollection) List(ctx context.Context) ([]Property, error) {
	f.mu.Lock()
	f.listCalls++
	call := f.listCalls
	fn := f.listFn
	f.mu.Unlock()

	if fn != nil {
		return fn(call)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.snapshot(), nil
}

func (f *fakeCollection) Insert(ctx context.Context, d Draft) (Property, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return Property{}, f.insertErr
	}
	return f.add(d), nil
}

func (f *fakeCollection) Update(ctx context.Context, id int64, d Draft) (Property, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return Property{}, f.updateErr
	}
	p, ok := f.items[id]
	if !ok {
		return Property{}, common.ErrorNotFound
	}
	p.Draft = d
	f.clock = f.clock.Add(time.Minute)
	p.UpdatedAt = f.clock
	f.items[id] = p
	return p, nil
}

func (f *fakeCollection) SetActive(ctx context.Context, id int64, active bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.setActiveErr != nil {
		return f.setActiveErr
	}
	p, ok := f.items[id]
	if !ok {
		return common.ErrorNotFound
	}
	p.Active = active
	f.items[id] = p
	return nil
}

func (f *fakeCollection) Delete(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.items[id]; !ok {
		return common.ErrorNotFound
	}
	delete(f.items, id)
	return nil
}

func (f *fakeCollection) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls
}

func draft(title string, category Category, price float64, location string, active bool) Draft {
	d := NewDraft()
	d.Title = title
	d.Category = category
	d.Price = price
	d.Location = location
	d.Active = active
	return d
}

func ids(props []Property) []int64 {
	out := make([]int64, 0, len(props))
	for _, p := range props {
		out = append(out, p.ID)
	}
	return out
}

func prices(props []Property) []float64 {
	out := make([]float64, 0, len(props))
	for _, p := range props {
		out = append(out, p.Price)
	}
	return out
}
