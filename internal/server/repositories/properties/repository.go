// Package properties stores listings in PostgreSQL and serves them as a
// catalog.Collection.
package properties

import (
	"context"

	"github.com/dmitrijs2005/realty/internal/catalog"
)

type Repository interface {
	catalog.Collection
	Count(ctx context.Context) (int, error)
}
