package postgres

import (
	"context"
	"database/sql"
	"time"

	"roofbox-backend/internal/domain"
	"roofbox-backend/internal/logger"
	"roofbox-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type productRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) repository.ProductRepository {
	return &productRepository{db: db}
}

const productColumns = `id, slug, name, volume, dimensions, max_load, price_per_day, image_url, is_active`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	p := &domain.Product{}
	if err := row.Scan(&p.ID, &p.Slug, &p.Name, &p.Volume, &p.Dimensions, &p.MaxLoad, &p.PricePerDay, &p.ImageURL, &p.IsActive); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, wrapErr("get product", err)
	}
	return p, nil
}

func (r *productRepository) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE slug = $1`
	p, err := scanProduct(r.db.QueryRowContext(ctx, query, slug))
	if err != nil {
		return nil, wrapErr("get product by slug", err)
	}
	return p, nil
}

func (r *productRepository) ListActive(ctx context.Context) ([]domain.Product, error) {
	return r.list(ctx, `SELECT `+productColumns+` FROM products WHERE is_active ORDER BY price_per_day`)
}

func (r *productRepository) ListAll(ctx context.Context) ([]domain.Product, error) {
	return r.list(ctx, `SELECT `+productColumns+` FROM products ORDER BY name`)
}

func (r *productRepository) list(ctx context.Context, query string) ([]domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, wrapErr("list products", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, wrapErr("scan product", err)
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("list products", err)
	}
	return products, nil
}

func (r *productRepository) UpdatePrice(ctx context.Context, id uuid.UUID, pricePerDay decimal.Decimal) error {
	logger.DatabaseCall("UPDATE", "products.price_per_day", "productID", id)
	query := `UPDATE products SET price_per_day = $1, updated_at = $2 WHERE id = $3`
	res, err := r.db.ExecContext(ctx, query, pricePerDay, time.Now(), id)
	return checkAffected("update product price", res, err)
}

func (r *productRepository) UpdateImageURL(ctx context.Context, id uuid.UUID, imageURL string) error {
	query := `UPDATE products SET image_url = $1, updated_at = $2 WHERE id = $3`
	res, err := r.db.ExecContext(ctx, query, imageURL, time.Now(), id)
	return checkAffected("update product image", res, err)
}

// checkAffected turns a zero-row update into ErrNotFound.
func checkAffected(op string, res sql.Result, err error) error {
	if err != nil {
		logger.DatabaseResult("UPDATE", 0, err, "op", op)
		return wrapErr(op, err)
	}
	rows, err := res.RowsAffected()
	logger.DatabaseResult("UPDATE", rows, err, "op", op)
	if err != nil {
		return wrapErr(op, err)
	}
	if rows == 0 {
		return wrapErr(op, sql.ErrNoRows)
	}
	return nil
}
