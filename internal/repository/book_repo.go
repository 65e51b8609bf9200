package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"bibliotec/internal/db"
	apperrors "bibliotec/internal/errors"
)

type BookRepository interface {
	List(ctx context.Context, search, category string) ([]db.Book, error)
	GetByID(ctx context.Context, id int) (*db.Book, error)
}

type bookRepository struct {
	db *sql.DB
}

func NewBookRepository(database *sql.DB) BookRepository {
	return &bookRepository{db: database}
}

// List returns books matching the optional filters, ordered by title.
// The search term is a case-insensitive substring match against title,
// author or category; category "all" (or empty) means no category filter.
func (r *bookRepository) List(ctx context.Context, search, category string) ([]db.Book, error) {
	query := `
	SELECT id, title, author, category, total_copies, available_copies
	FROM books
	WHERE 1=1`
	args := []interface{}{}
	idx := 1

	if search != "" {
		query += " AND (title ILIKE $" + strconv.Itoa(idx) +
			" OR author ILIKE $" + strconv.Itoa(idx) +
			" OR category ILIKE $" + strconv.Itoa(idx) + ")"
		args = append(args, "%"+search+"%")
		idx++
	}
	if category != "" && category != "all" {
		query += " AND category = $" + strconv.Itoa(idx)
		args = append(args, category)
		idx++
	}
	query += " ORDER BY title"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying books: %w", err)
	}
	defer rows.Close()

	books := []db.Book{}
	for rows.Next() {
		var b db.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.Category, &b.TotalCopies, &b.AvailableCopies); err != nil {
			return nil, fmt.Errorf("error scanning book: %w", err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating books: %w", err)
	}
	return books, nil
}

func (r *bookRepository) GetByID(ctx context.Context, id int) (*db.Book, error) {
	var b db.Book
	query := `
		SELECT id, title, author, category, total_copies, available_copies
		FROM books WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&b.ID, &b.Title, &b.Author, &b.Category, &b.TotalCopies, &b.AvailableCopies)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error querying book: %w", err)
	}
	return &b, nil
}
