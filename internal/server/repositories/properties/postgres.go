package properties

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/realty/internal/catalog"
	"github.com/dmitrijs2005/realty/internal/common"
	"github.com/dmitrijs2005/realty/internal/dbx"
)

const selectColumns = `id, title, type, price, location, bedrooms, bathrooms, area, image, description, active, created_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProperty(row rowScanner) (catalog.Property, error) {
	var p catalog.Property
	var category string
	err := row.Scan(&p.ID, &p.Title, &category, &p.Price, &p.Location, &p.Bedrooms, &p.Bathrooms,
		&p.Area, &p.Image, &p.Description, &p.Active, &p.CreatedAt, &p.UpdatedAt)
	p.Category = catalog.Category(category)
	return p, err
}

func (r *PostgresRepository) List(ctx context.Context) ([]catalog.Property, error) {
	query := `SELECT ` + selectColumns + ` FROM properties
		 ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]catalog.Property, 0)
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM properties`).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) Insert(ctx context.Context, d catalog.Draft) (catalog.Property, error) {
	query :=
		`INSERT INTO properties (title, type, price, location, bedrooms, bathrooms, area, image, description, active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id, created_at, updated_at`

	p := catalog.Property{Draft: d}
	err := r.db.QueryRowContext(ctx, query,
		d.Title, string(d.Category), d.Price, d.Location, d.Bedrooms, d.Bathrooms, d.Area, d.Image, d.Description, d.Active,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return catalog.Property{}, fmt.Errorf("db error: %w", err)
	}

	return p, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id int64, d catalog.Draft) (catalog.Property, error) {
	query :=
		`UPDATE properties
		 SET title = $2, type = $3, price = $4, location = $5, bedrooms = $6, bathrooms = $7,
		     area = $8, image = $9, description = $10, active = $11, updated_at = now()
		 WHERE id = $1
		 RETURNING ` + selectColumns

	p, err := scanProperty(r.db.QueryRowContext(ctx, query,
		id, d.Title, string(d.Category), d.Price, d.Location, d.Bedrooms, d.Bathrooms, d.Area, d.Image, d.Description, d.Active,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return catalog.Property{}, common.ErrorNotFound
		}
		return catalog.Property{}, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) SetActive(ctx context.Context, id int64, active bool) error {
	query := `UPDATE properties SET active = $2, updated_at = now() WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id, active)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOneRow(res)
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM properties WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOneRow(res)
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
