package properties

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/realty/internal/catalog"
	"github.com/dmitrijs2005/realty/internal/dbx"
)

// SeedIfEmpty inserts drafts in one transaction when the table has no rows
// yet and reports how many were inserted.
func SeedIfEmpty(ctx context.Context, db *sql.DB, drafts []catalog.Draft) (int, error) {
	inserted := 0
	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := NewPostgresRepository(tx)

		n, err := repo.Count(ctx)
		if err != nil {
			return err
		}
		if n > 0 {
			return nil
		}

		// reverse order so that List, newest first, returns drafts as given
		for i := len(drafts) - 1; i >= 0; i-- {
			if _, err := repo.Insert(ctx, drafts[i]); err != nil {
				return err
			}
			inserted++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}
