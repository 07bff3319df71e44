package repository

import (
	"context"
	"errors"

	"github.com/deppfellow/go-catalog/internal/model"
	"github.com/deppfellow/go-catalog/internal/sqlerr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pkgerrors "github.com/pkg/errors"
)

// DBTX is the subset of *pgxpool.Pool the repository needs.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ProductRepository stores products in the products table.
type ProductRepository struct {
	db DBTX
}

func NewProductRepository(db DBTX) *ProductRepository {
	return &ProductRepository{db: db}
}

const productColumns = `id, name, description, price, created_at, updated_at`

// List returns every product, oldest first.
func (r *ProductRepository) List(ctx context.Context) ([]model.Product, error) {
	rows, err := r.db.Query(ctx, `SELECT `+productColumns+` FROM products ORDER BY created_at, id`)
	if err != nil {
		return nil, wrap(err, "list products")
	}

	products, err := pgx.CollectRows(rows, pgx.RowToStructByPos[model.Product])
	if err != nil {
		return nil, wrap(err, "scan products")
	}

	// An empty table serializes as [] rather than null.
	if products == nil {
		products = []model.Product{}
	}
	return products, nil
}

// GetByID returns model.ErrProductNotFound when no row has this id.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*model.Product, error) {
	rows, err := r.db.Query(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	if err != nil {
		return nil, wrap(err, "get product")
	}

	product, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByPos[model.Product])
	if err != nil {
		return nil, wrap(err, "get product")
	}
	return product, nil
}

// Insert stores p and returns the stored row.
func (r *ProductRepository) Insert(ctx context.Context, p model.Product) (*model.Product, error) {
	rows, err := r.db.Query(ctx, `
		INSERT INTO products (id, name, description, price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		RETURNING `+productColumns,
		p.ID, p.Name, p.Description, p.Price, p.CreatedAt,
	)
	if err != nil {
		return nil, wrap(err, "insert product")
	}

	product, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByPos[model.Product])
	if err != nil {
		return nil, wrap(err, "insert product")
	}
	return product, nil
}

// Update replaces the mutable fields of the product with p.ID.
func (r *ProductRepository) Update(ctx context.Context, p model.Product) (*model.Product, error) {
	rows, err := r.db.Query(ctx, `
		UPDATE products
		SET name = $2, description = $3, price = $4, updated_at = $5
		WHERE id = $1
		RETURNING `+productColumns,
		p.ID, p.Name, p.Description, p.Price, p.UpdatedAt,
	)
	if err != nil {
		return nil, wrap(err, "update product")
	}

	product, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByPos[model.Product])
	if err != nil {
		return nil, wrap(err, "update product")
	}
	return product, nil
}

// Delete removes the product and reports whether a row existed.
func (r *ProductRepository) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return false, wrap(err, "delete product")
	}
	return tag.RowsAffected() > 0, nil
}

// wrap maps pgx.ErrNoRows to model.ErrProductNotFound and classifies
// driver errors through sqlerr, attaching a stack trace.
func wrap(err error, op string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return model.ErrProductNotFound
	}
	return pkgerrors.Wrap(sqlerr.HandleError(err), op)
}
