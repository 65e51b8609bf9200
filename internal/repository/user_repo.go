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

const uniqueViolation = "23505"

type UserRepository interface {
	Create(ctx context.Context, u *db.User) error
	GetByEmail(ctx context.Context, email string) (*db.User, error)
	GetByID(ctx context.Context, id int) (*db.User, error)
	UpdateProfile(ctx context.Context, id int, name string, phone *string) error
	Delete(ctx context.Context, id int) error
}

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(database *sql.DB) UserRepository {
	return &userRepository{db: database}
}

func (r *userRepository) Create(ctx context.Context, u *db.User) error {
	query := `
		INSERT INTO users (name, email, password_hash, phone)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query, u.Name, u.Email, u.PasswordHash, u.Phone).
		Scan(&u.ID, &u.CreatedAt)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return apperrors.ErrEmailTaken
	}
	if err != nil {
		return fmt.Errorf("error inserting user: %w", err)
	}
	return nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*db.User, error) {
	var u db.User
	query := `
		SELECT id, name, email, password_hash, phone, created_at
		FROM users WHERE email = $1`
	err := r.db.QueryRowContext(ctx, query, email).
		Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Phone, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error querying user by email: %w", err)
	}
	return &u, nil
}

func (r *userRepository) GetByID(ctx context.Context, id int) (*db.User, error) {
	var u db.User
	query := `
		SELECT id, name, email, password_hash, phone, created_at
		FROM users WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Phone, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error querying user by id: %w", err)
	}
	return &u, nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, id int, name string, phone *string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE users SET name = $1, phone = $2 WHERE id = $3`, name, phone, id)
	if err != nil {
		return fmt.Errorf("error updating profile: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Delete removes the account in one transaction: copies held by the
// user's active reservations go back to stock, then the row deletion
// cascades over favorites and reservations.
func (r *userRepository) Delete(ctx context.Context, id int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting delete transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		UPDATE books b
		SET available_copies = available_copies + 1
		FROM reservations res
		WHERE res.book_id = b.id
		  AND res.user_id = $1
		  AND res.status IN ('reserved', 'picked_up')`, id)
	if err != nil {
		return fmt.Errorf("error restoring copies on account deletion: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting user: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return apperrors.ErrNotFound
	}

	return tx.Commit()
}
