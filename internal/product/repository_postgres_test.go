package product

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

var productColumns = []string{"id", "image", "name", "rating_stars", "rating_count", "price_cents", "keywords", "created_at", "updated_at"}

const socksID = "e43638ce-6aa0-4b85-b27f-e1d07eb678c6"

func TestPostgresList(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	rows := sqlmock.NewRows(productColumns).
		AddRow(socksID, "img/socks.jpg", "Socks", 4.5, 87, 1090, "{socks,sports}", now, now).
		AddRow("15b6fc6f-327a-4ec4-896f-486349e85a3d", "img/ball.jpg", "Ball", 4.0, 127, 2095, "{}", now, now)
	mock.ExpectQuery("FROM products").WillReturnRows(rows)

	all, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 products, got %d", len(all))
	}
	if all[0].Name != "Socks" || len(all[0].Keywords) != 2 || all[0].Keywords[1] != "sports" {
		t.Fatalf("unexpected first product %+v", all[0])
	}
	if all[1].Keywords == nil || len(all[1].Keywords) != 0 {
		t.Fatalf("expected empty keywords slice, got %#v", all[1].Keywords)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresGetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	now := time.Now().UTC()
	mock.ExpectQuery("WHERE id = \\$1").WithArgs(socksID).
		WillReturnRows(sqlmock.NewRows(productColumns).AddRow(socksID, "img", "Socks", 4.5, 87, 1090, "{socks}", now, now))

	p, err := repo.GetByID(context.Background(), socksID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID != socksID || p.PriceCents != 1090 {
		t.Fatalf("unexpected product %+v", p)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresGetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("WHERE id = \\$1").WithArgs(socksID).WillReturnRows(sqlmock.NewRows(productColumns))

	if _, err := repo.GetByID(context.Background(), socksID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	// malformed ids never reach the database
	if _, err := repo.GetByID(context.Background(), "not-a-uuid"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for malformed id, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresGetByID_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	boom := errors.New("connection reset")
	mock.ExpectQuery("WHERE id = \\$1").WithArgs(socksID).WillReturnError(boom)

	_, err = repo.GetByID(context.Background(), socksID)
	if !errors.Is(err, boom) {
		t.Fatalf("expected driver error to surface, got %v", err)
	}
}

func TestPostgresCount(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("SELECT COUNT").WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	n, err := repo.Count(context.Background())
	if err != nil || n != 4 {
		t.Fatalf("expected 4, got %d (%v)", n, err)
	}
}

func TestPostgresBulkInsert_Commits(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	products := DefaultProducts()[:2]
	mock.ExpectBegin()
	for _, p := range products {
		mock.ExpectExec("INSERT INTO products").
			WithArgs(p.ID, p.Image, p.Name, p.RatingStars, p.RatingCount, p.PriceCents, sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))
	}
	mock.ExpectCommit()

	n, err := repo.BulkInsert(context.Background(), products)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 inserted, got %d", n)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresBulkInsert_RollsBackOnDuplicate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO products").
		WillReturnError(errors.New(`duplicate key value violates unique constraint "products_pkey"`))
	mock.ExpectRollback()

	_, err = repo.BulkInsert(context.Background(), DefaultProducts()[:1])
	if !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresDelete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectExec("DELETE FROM products").WithArgs(socksID).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM products").WithArgs(socksID).WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete(context.Background(), socksID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.Delete(context.Background(), socksID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresEnsureSchema(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS products").WillReturnResult(sqlmock.NewResult(0, 0))
	if err := NewPostgresRepository(db).EnsureSchema(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
