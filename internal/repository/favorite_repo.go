package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"bibliotec/internal/db"
	apperrors "bibliotec/internal/errors"
)

const foreignKeyViolation = "23503"

type FavoriteRepository interface {
	Exists(ctx context.Context, userID, bookID int) (bool, error)
	Add(ctx context.Context, userID, bookID int) error
	Remove(ctx context.Context, userID, bookID int) error
	ListBooks(ctx context.Context, userID int) ([]db.Book, error)
}

type favoriteRepository struct {
	db *sql.DB
}

func NewFavoriteRepository(database *sql.DB) FavoriteRepository {
	return &favoriteRepository{db: database}
}

func (r *favoriteRepository) Exists(ctx context.Context, userID, bookID int) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM favorites WHERE user_id = $1 AND book_id = $2)`,
		userID, bookID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking favorite: %w", err)
	}
	return exists, nil
}

func (r *favoriteRepository) Add(ctx context.Context, userID, bookID int) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO favorites (user_id, book_id) VALUES ($1, $2)`, userID, bookID)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == foreignKeyViolation {
		return apperrors.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("error inserting favorite: %w", err)
	}
	return nil
}

func (r *favoriteRepository) Remove(ctx context.Context, userID, bookID int) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM favorites WHERE user_id = $1 AND book_id = $2`, userID, bookID)
	if err != nil {
		return fmt.Errorf("error deleting favorite: %w", err)
	}
	return nil
}

func (r *favoriteRepository) ListBooks(ctx context.Context, userID int) ([]db.Book, error) {
	query := `
	SELECT b.id, b.title, b.author, b.category, b.total_copies, b.available_copies
	FROM books b
	INNER JOIN favorites f ON b.id = f.book_id
	WHERE f.user_id = $1`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error querying favorites: %w", err)
	}
	defer rows.Close()

	books := []db.Book{}
	for rows.Next() {
		var b db.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.Category, &b.TotalCopies, &b.AvailableCopies); err != nil {
			return nil, fmt.Errorf("error scanning favorite book: %w", err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating favorites: %w", err)
	}
	return books, nil
}
