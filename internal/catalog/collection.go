package catalog

import "context"

// Collection is the remote source of truth for listings. The server backs
// it with Postgres, the CLI with the server's REST collection endpoint.
type Collection interface {
	// List returns every listing, most recently created first.
	List(ctx context.Context) ([]Property, error)
	Insert(ctx context.Context, d Draft) (Property, error)
	// Update replaces every mutable field of listing id, the active flag
	// included.
	Update(ctx context.Context, id int64, d Draft) (Property, error)
	SetActive(ctx context.Context, id int64, active bool) error
	Delete(ctx context.Context, id int64) error
}
