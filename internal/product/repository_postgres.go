package product

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	createProductsTable = `
		CREATE TABLE IF NOT EXISTS products (
			id UUID PRIMARY KEY,
			image TEXT NOT NULL,
			name TEXT NOT NULL,
			rating_stars DOUBLE PRECISION NOT NULL,
			rating_count INT NOT NULL,
			price_cents INT NOT NULL,
			keywords TEXT[] NOT NULL DEFAULT '{}',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`
	listProductsQuery = `
		SELECT id, image, name, rating_stars, rating_count, price_cents, keywords, created_at, updated_at
		FROM products
		ORDER BY created_at, name
	`
	getProductByIDQuery = `
		SELECT id, image, name, rating_stars, rating_count, price_cents, keywords, created_at, updated_at
		FROM products
		WHERE id = $1
	`
	countProductsQuery = `SELECT COUNT(*) FROM products`
	insertProductQuery = `
		INSERT INTO products (id, image, name, rating_stars, rating_count, price_cents, keywords, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7::text[], $8, $9)
	`
	deleteProductQuery = `DELETE FROM products WHERE id = $1`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// EnsureSchema creates the products table when it does not exist yet.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, createProductsTable)
	return err
}

func (r *PostgresRepository) List(ctx context.Context) ([]Product, error) {
	rows, err := r.db.QueryContext(ctx, listProductsQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (Product, error) {
	// a malformed id can never match a UUID primary key
	if _, err := uuid.Parse(id); err != nil {
		return Product{}, ErrNotFound
	}
	p, err := scanProduct(r.db.QueryRowContext(ctx, getProductByIDQuery, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Product{}, ErrNotFound
		}
		return Product{}, err
	}
	return p, nil
}

func (r *PostgresRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, countProductsQuery).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// BulkInsert writes all products in a single transaction.
func (r *PostgresRepository) BulkInsert(ctx context.Context, products []Product) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, p := range products {
		keywords := p.Keywords
		if keywords == nil {
			keywords = []string{}
		}
		if _, err := tx.ExecContext(ctx, insertProductQuery,
			p.ID,
			p.Image,
			p.Name,
			p.RatingStars,
			p.RatingCount,
			p.PriceCents,
			pq.Array(keywords),
			p.CreatedAt,
			p.UpdatedAt,
		); err != nil {
			if isUniqueViolation(err) {
				return 0, ErrDuplicateID
			}
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(products), nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}
	result, err := r.db.ExecContext(ctx, deleteProductQuery, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(scanner rowScanner) (Product, error) {
	p := Product{}
	var keywords pq.StringArray
	if err := scanner.Scan(
		&p.ID,
		&p.Image,
		&p.Name,
		&p.RatingStars,
		&p.RatingCount,
		&p.PriceCents,
		&keywords,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return Product{}, err
	}
	p.Keywords = []string(keywords)
	if p.Keywords == nil {
		p.Keywords = []string{}
	}
	return p, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}
