package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/realty/internal/catalog"
	"github.com/dmitrijs2005/realty/internal/dbx"
	"github.com/dmitrijs2005/realty/internal/server/repositories/properties"
)

// RepositoryManager vends repositories bound to a DB handle (pool or
// transaction) and owns schema setup.
type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	Properties(db dbx.DBTX) properties.Repository
	SeedDemo(ctx context.Context, db *sql.DB, drafts []catalog.Draft) (int, error)
}
