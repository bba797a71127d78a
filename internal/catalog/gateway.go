package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/realty/internal/common"
	"github.com/dmitrijs2005/realty/internal/logging"
)

var (
	// ErrMutationFailed wraps every remote failure of a Gateway operation.
	// Callers surface it to the user as a blocking alert.
	ErrMutationFailed = errors.New("could not save changes")

	// ErrNotConfirmed is returned by Delete when the user did not confirm.
	ErrNotConfirmed = errors.New("deletion not confirmed")
)

// DeletePrompt is the question asked before a listing is removed.
const DeletePrompt = "Are you sure you want to delete this listing?"

// Operation names reported to a MutationObserver.
const (
	OpInsert    = "insert"
	OpUpdate    = "update"
	OpSetActive = "set_active"
	OpDelete    = "delete"
)

type MutationObserver interface {
	ObserveMutation(op string, err error)
}

// Gateway forwards listing mutations to the collection. Every call that
// reaches the collection is followed by a store reload, successful or not;
// the store is never patched locally.
type Gateway struct {
	collection Collection
	store      *Store
	logger     logging.Logger
	observer   MutationObserver
}

type GatewayOption func(*Gateway)

func WithMutationObserver(o MutationObserver) GatewayOption {
	return func(g *Gateway) { g.observer = o }
}

func NewGateway(c Collection, s *Store, l logging.Logger, opts ...GatewayOption) *Gateway {
	g := &Gateway{
		collection: c,
		store:      s,
		logger:     l.With("module", "catalog_gateway"),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Gateway) Insert(ctx context.Context, d Draft) (Property, error) {
	if err := d.Validate(); err != nil {
		return Property{}, err
	}
	p, err := g.collection.Insert(ctx, d)
	if err = g.finish(ctx, OpInsert, 0, err); err != nil {
		return Property{}, err
	}
	return p, nil
}

func (g *Gateway) Update(ctx context.Context, id int64, d Draft) (Property, error) {
	if err := d.Validate(); err != nil {
		return Property{}, err
	}
	p, err := g.collection.Update(ctx, id, d)
	if err = g.finish(ctx, OpUpdate, id, err); err != nil {
		return Property{}, err
	}
	return p, nil
}

func (g *Gateway) SetActive(ctx context.Context, id int64, active bool) error {
	err := g.collection.SetActive(ctx, id, active)
	return g.finish(ctx, OpSetActive, id, err)
}

// Toggle flips the active flag of a listing as currently known to the store
// and returns the new value.
func (g *Gateway) Toggle(ctx context.Context, id int64) (bool, error) {
	p, ok := g.store.Lookup(id)
	if !ok {
		return false, fmt.Errorf("listing %d: %w", id, common.ErrorNotFound)
	}
	active := !p.Active
	if err := g.SetActive(ctx, id, active); err != nil {
		return p.Active, err
	}
	return active, nil
}

// Delete removes a listing. confirmed must carry the user's answer to
// DeletePrompt; nothing is sent without it.
func (g *Gateway) Delete(ctx context.Context, id int64, confirmed bool) error {
	if !confirmed {
		return ErrNotConfirmed
	}
	err := g.collection.Delete(ctx, id)
	return g.finish(ctx, OpDelete, id, err)
}

func (g *Gateway) finish(ctx context.Context, op string, id int64, err error) error {
	// reload failures are logged by the store and never mask the mutation result
	_ = g.store.Reload(ctx)

	if g.observer != nil {
		g.observer.ObserveMutation(op, err)
	}

	if err != nil {
		g.logger.Error(ctx, "mutation failed", "op", op, "id", id, "error", err)
		return fmt.Errorf("%w: %w", ErrMutationFailed, err)
	}

	g.logger.Info(ctx, "mutation applied", "op", op, "id", id)
	return nil
}
