package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"bibliotec/internal/db"
	apperrors "bibliotec/internal/errors"
)

// MaxActiveReservations is the per-user limit on reservations in the
// reserved or picked_up state.
const MaxActiveReservations = 3

type ReservationRepository interface {
	ListForUser(ctx context.Context, userID int) ([]db.UserReservation, error)
	// Create runs the whole check-then-reserve sequence in one
	// transaction and returns the new reservation id.
	Create(ctx context.Context, userID, bookID int) (int, error)
	// Cancel marks an active reservation cancelled and restores one copy,
	// returning the affected book id.
	Cancel(ctx context.Context, userID, reservationID int) (int, error)
	// ExpireUnclaimed cancels reservations still in reserved state older
	// than the cutoff and restores their copies. Returns how many were
	// cancelled.
	ExpireUnclaimed(ctx context.Context, before time.Time) (int, error)
}

type reservationRepository struct {
	db *sql.DB
}

func NewReservationRepository(database *sql.DB) ReservationRepository {
	return &reservationRepository{db: database}
}

func (r *reservationRepository) ListForUser(ctx context.Context, userID int) ([]db.UserReservation, error) {
	query := `
	SELECT res.id, res.user_id, res.book_id, res.reserve_date, res.status,
	       b.title, b.author, b.category
	FROM reservations res
	INNER JOIN books b ON res.book_id = b.id
	WHERE res.user_id = $1
	ORDER BY res.reserve_date DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error querying reservations: %w", err)
	}
	defer rows.Close()

	reservations := []db.UserReservation{}
	for rows.Next() {
		var res db.UserReservation
		err := rows.Scan(
			&res.ID, &res.UserID, &res.BookID, &res.ReserveDate, &res.Status,
			&res.Title, &res.Author, &res.Category,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning reservation: %w", err)
		}
		reservations = append(reservations, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating reservations: %w", err)
	}
	return reservations, nil
}

func (r *reservationRepository) Create(ctx context.Context, userID, bookID int) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("error starting reservation transaction: %w", err)
	}
	defer tx.Rollback()

	var active int
	err = tx.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM reservations
		WHERE user_id = $1 AND status IN ('reserved', 'picked_up')`, userID).
		Scan(&active)
	if err != nil {
		return 0, fmt.Errorf("error counting active reservations: %w", err)
	}
	if active >= MaxActiveReservations {
		return 0, apperrors.ErrReservationLimit
	}

	var duplicate bool
	err = tx.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM reservations
			WHERE user_id = $1 AND book_id = $2 AND status IN ('reserved', 'picked_up')
		)`, userID, bookID).Scan(&duplicate)
	if err != nil {
		return 0, fmt.Errorf("error checking duplicate reservation: %w", err)
	}
	if duplicate {
		return 0, apperrors.ErrAlreadyReserved
	}

	// Conditional decrement: zero rows means no copies left or no such
	// book, and closes the oversell race without explicit locking.
	result, err := tx.ExecContext(ctx, `
		UPDATE books SET available_copies = available_copies - 1
		WHERE id = $1 AND available_copies > 0`, bookID)
	if err != nil {
		return 0, fmt.Errorf("error decrementing available copies: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	if rows == 0 {
		return 0, apperrors.ErrUnavailable
	}

	var id int
	err = tx.QueryRowContext(ctx, `
		INSERT INTO reservations (user_id, book_id, reserve_date, status)
		VALUES ($1, $2, NOW(), 'reserved')
		RETURNING id`, userID, bookID).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error inserting reservation: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("error committing reservation: %w", err)
	}
	return id, nil
}

func (r *reservationRepository) Cancel(ctx context.Context, userID, reservationID int) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("error starting cancel transaction: %w", err)
	}
	defer tx.Rollback()

	// Only active reservations match, so cancelling a cancelled or
	// foreign reservation reports not found.
	var bookID int
	err = tx.QueryRowContext(ctx, `
		UPDATE reservations SET status = 'cancelled'
		WHERE id = $1 AND user_id = $2 AND status IN ('reserved', 'picked_up')
		RETURNING book_id`, reservationID, userID).Scan(&bookID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, apperrors.ErrNotFound
		}
		return 0, fmt.Errorf("error cancelling reservation: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE books SET available_copies = available_copies + 1
		WHERE id = $1`, bookID)
	if err != nil {
		return 0, fmt.Errorf("error restoring available copies: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("error committing cancellation: %w", err)
	}
	return bookID, nil
}

func (r *reservationRepository) ExpireUnclaimed(ctx context.Context, before time.Time) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("error starting expiry transaction: %w", err)
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx, `
		SELECT id, book_id FROM reservations
		WHERE status = 'reserved' AND reserve_date < $1
		FOR UPDATE`, before)
	if err != nil {
		return 0, fmt.Errorf("error querying unclaimed reservations: %w", err)
	}

	var ids []int64
	perBook := map[int]int{}
	for rows.Next() {
		var id int64
		var bookID int
		if err := rows.Scan(&id, &bookID); err != nil {
			rows.Close()
			return 0, fmt.Errorf("error scanning unclaimed reservation: %w", err)
		}
		ids = append(ids, id)
		perBook[bookID]++
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return 0, fmt.Errorf("error after iterating unclaimed reservations: %w", err)
	}
	rows.Close()

	if len(ids) == 0 {
		return 0, tx.Commit()
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE reservations SET status = 'cancelled' WHERE id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return 0, fmt.Errorf("error expiring reservations: %w", err)
	}

	for bookID, n := range perBook {
		_, err = tx.ExecContext(ctx, `
			UPDATE books SET available_copies = available_copies + $1
			WHERE id = $2`, n, bookID)
		if err != nil {
			return 0, fmt.Errorf("error restoring copies for book %d: %w", bookID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("error committing expiry: %w", err)
	}
	return len(ids), nil
}
