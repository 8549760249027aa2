package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/idrizp/magicify-backend/pkg/catalog"
)

// DBTX is an interface that allows us to use either a database connection or a transaction
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// Repository implements catalog.Repository using PostgreSQL. The items table
// carries a unique index on name; a violation surfaces as ErrDuplicateName,
// which is the authoritative duplicate signal for concurrent ingestions.
type Repository struct {
	db DBTX
}

// New creates a new PostgreSQL repository
func New(db DBTX) *Repository {
	return &Repository{db: db}
}

// NewWithPool creates a new PostgreSQL repository with connection pool
func NewWithPool(pool *pgxpool.Pool) *Repository {
	return &Repository{db: pool}
}

// handlePostgresError maps constraint violations to domain errors.
func handlePostgresError(operation string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return catalog.ErrDuplicateName
		case "42P01": // undefined_table
			return fmt.Errorf("table does not exist - database migration required")
		default:
			return fmt.Errorf("database error in %s: %s (code: %s)", operation, pgErr.Message, pgErr.Code)
		}
	}

	return fmt.Errorf("database error in %s: %w", operation, err)
}

func (r *Repository) Insert(ctx context.Context, item *catalog.Item) error {
	query := `
		INSERT INTO items (id, name, model_path, icon_path, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.Exec(ctx, query,
		item.ID, item.Name, item.ModelPath, item.IconPath, item.CreatedAt)

	if err != nil {
		return handlePostgresError("insert item", err)
	}

	return nil
}

func (r *Repository) FindByName(ctx context.Context, name string) (*catalog.Item, error) {
	query := `
		SELECT id, name, model_path, icon_path, created_at
		FROM items WHERE name = $1`

	var item catalog.Item
	err := r.db.QueryRow(ctx, query, name).Scan(
		&item.ID, &item.Name, &item.ModelPath, &item.IconPath, &item.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, catalog.ErrItemNotFound
		}
		return nil, handlePostgresError("find item by name", err)
	}

	return &item, nil
}

func (r *Repository) ListPage(ctx context.Context, page, size int) ([]*catalog.Item, error) {
	if page < 1 {
		page = 1
	}

	query := `
		SELECT id, name, model_path, icon_path, created_at
		FROM items
		ORDER BY created_at, id
		LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, size, (page-1)*size)
	if err != nil {
		return nil, handlePostgresError("list items", err)
	}
	defer rows.Close()

	var items []*catalog.Item
	for rows.Next() {
		var item catalog.Item
		if err := rows.Scan(
			&item.ID, &item.Name, &item.ModelPath, &item.IconPath, &item.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, &item)
	}

	return items, rows.Err()
}

func (r *Repository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return handlePostgresError("delete item", err)
	}
	if tag.RowsAffected() == 0 {
		return catalog.ErrItemNotFound
	}
	return nil
}
