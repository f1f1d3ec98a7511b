package pg

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/crier-dev/crier/internal/domain"
	internal_errors "github.com/crier-dev/crier/internal/errors"
)

func (s *Storage) CreateComment(data domain.CommentCreationData) (domain.CommentId, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Commenting counts as post activity for purge purposes.
	res, err := tx.Exec(`UPDATE posts SET last_activity = now() WHERE id = $1`, data.Post)
	if err != nil {
		return 0, fmt.Errorf("failed to bump post activity: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return 0, &internal_errors.ErrorWithStatusCode{
			Message:    "Post not found",
			StatusCode: http.StatusNotFound,
		}
	}

	var id domain.CommentId
	err = tx.QueryRow(`
        INSERT INTO comments (post_id, author_id, message)
        VALUES ($1, $2, $3)
        RETURNING id
    `, data.Post, data.Author, data.Message).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert comment: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return id, nil
}

func (s *Storage) Comment(id domain.CommentId) (domain.Comment, error) {
	var c domain.Comment
	err := s.db.QueryRow(`
        SELECT id, post_id, author_id, message, created, upvotes
        FROM comments
        WHERE id = $1
    `, id).Scan(&c.Id, &c.Post, &c.Author, &c.Message, &c.CreatedAt, &c.Upvotes)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Comment{}, &internal_errors.ErrorWithStatusCode{
				Message:    "Comment not found",
				StatusCode: http.StatusNotFound,
			}
		}
		return domain.Comment{}, fmt.Errorf("failed to fetch comment: %w", err)
	}
	return c, nil
}

func (s *Storage) DeleteComment(id domain.CommentId) error {
	res, err := s.db.Exec(`DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &internal_errors.ErrorWithStatusCode{
			Message:    "Comment not found",
			StatusCode: http.StatusNotFound,
		}
	}
	return nil
}
