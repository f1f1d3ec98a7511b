package pg

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/lib/pq"

	"github.com/crier-dev/crier/internal/domain"
	internal_errors "github.com/crier-dev/crier/internal/errors"
)

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation
}

func (s *Storage) SaveUser(user domain.User) (domain.UserId, error) {
	var id domain.UserId
	err := s.db.QueryRow(`
        INSERT INTO users (username, pass_hash, admin)
        VALUES ($1, $2, $3)
        RETURNING id
    `, user.Username, user.PassHash, user.Admin).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, &internal_errors.ErrorWithStatusCode{
				Message:    "A user with that username already exists",
				StatusCode: http.StatusConflict,
			}
		}
		return 0, fmt.Errorf("failed to insert user: %w", err)
	}
	return id, nil
}

func (s *Storage) User(username domain.Username) (domain.User, error) {
	var user domain.User
	err := s.db.QueryRow(`
        SELECT id, username, pass_hash, admin, created
        FROM users
        WHERE username = $1
    `, username).Scan(&user.Id, &user.Username, &user.PassHash, &user.Admin, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, &internal_errors.ErrorWithStatusCode{
				Message:    "User not found",
				StatusCode: http.StatusNotFound,
			}
		}
		return domain.User{}, fmt.Errorf("failed to fetch user: %w", err)
	}
	return user, nil
}

func (s *Storage) UserById(id domain.UserId) (domain.User, error) {
	var user domain.User
	err := s.db.QueryRow(`
        SELECT id, username, pass_hash, admin, created
        FROM users
        WHERE id = $1
    `, id).Scan(&user.Id, &user.Username, &user.PassHash, &user.Admin, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, &internal_errors.ErrorWithStatusCode{
				Message:    "User not found",
				StatusCode: http.StatusNotFound,
			}
		}
		return domain.User{}, fmt.Errorf("failed to fetch user: %w", err)
	}
	return user, nil
}

// DeleteUser removes the account. Board member counters are adjusted
// in the same transaction before the FK cascade drops the membership
// rows. Existing votes stay in place (see migrations/init.sql).
func (s *Storage) DeleteUser(id domain.UserId) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
        UPDATE boards SET member_count = member_count - 1
        WHERE id IN (SELECT board_id FROM board_members WHERE user_id = $1)
    `, id)
	if err != nil {
		return fmt.Errorf("failed to adjust member counts: %w", err)
	}

	res, err := tx.Exec(`DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &internal_errors.ErrorWithStatusCode{
			Message:    "User not found",
			StatusCode: http.StatusNotFound,
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
