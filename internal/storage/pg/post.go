package pg

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/crier-dev/crier/internal/domain"
	internal_errors "github.com/crier-dev/crier/internal/errors"
)

func (s *Storage) CreatePost(data domain.PostCreationData) (domain.PostId, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Verify board exists
	var boardId domain.BoardId
	err = tx.QueryRow(`SELECT id FROM boards WHERE id = $1`, data.Board).Scan(&boardId)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, &internal_errors.ErrorWithStatusCode{
				Message:    "Board not found",
				StatusCode: http.StatusNotFound,
			}
		}
		return 0, fmt.Errorf("failed to validate board: %w", err)
	}

	var id domain.PostId
	err = tx.QueryRow(`
        INSERT INTO posts (board_id, subject, description, author_id)
        VALUES ($1, $2, $3, $4)
        RETURNING id
    `, data.Board, data.Subject, data.Description, data.Author).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert post: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return id, nil
}

func (s *Storage) PostMeta(id domain.PostId) (domain.PostMetadata, error) {
	var m domain.PostMetadata
	err := s.db.QueryRow(`
        SELECT id, board_id, subject, description, author_id, created, upvotes, notified, last_activity
        FROM posts
        WHERE id = $1
    `, id).Scan(
		&m.Id, &m.Board, &m.Subject, &m.Description, &m.Author,
		&m.CreatedAt, &m.Upvotes, &m.Notified, &m.LastActivity,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.PostMetadata{}, &internal_errors.ErrorWithStatusCode{
				Message:    "Post not found",
				StatusCode: http.StatusNotFound,
			}
		}
		return domain.PostMetadata{}, fmt.Errorf("failed to fetch post: %w", err)
	}
	return m, nil
}

// GetPost returns the post and its comments, comments sorted by upvote
// count in decreasing order.
func (s *Storage) GetPost(id domain.PostId, viewer domain.UserId) (domain.Post, error) {
	m, err := s.PostMeta(id)
	if err != nil {
		return domain.Post{}, err
	}

	err = s.db.QueryRow(`
        SELECT EXISTS (SELECT 1 FROM post_votes WHERE post_id = $1 AND user_id = $2)
    `, id, viewer).Scan(&m.Upvoted)
	if err != nil {
		return domain.Post{}, fmt.Errorf("failed to resolve upvoted flag: %w", err)
	}

	rows, err := s.db.Query(`
        SELECT
            c.id, c.post_id, c.author_id, c.message, c.created, c.upvotes,
            EXISTS (SELECT 1 FROM comment_votes v WHERE v.comment_id = c.id AND v.user_id = $2) AS upvoted
        FROM comments c
        WHERE c.post_id = $1
        ORDER BY c.upvotes DESC, c.created
    `, id, viewer)
	if err != nil {
		return domain.Post{}, fmt.Errorf("failed to fetch comments: %w", err)
	}
	defer rows.Close()

	var comments []domain.Comment
	for rows.Next() {
		var c domain.Comment
		if err := rows.Scan(&c.Id, &c.Post, &c.Author, &c.Message, &c.CreatedAt, &c.Upvotes, &c.Upvoted); err != nil {
			return domain.Post{}, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return domain.Post{}, fmt.Errorf("rows iteration error: %w", err)
	}

	return domain.Post{PostMetadata: m, Comments: comments}, nil
}

func (s *Storage) DeletePost(id domain.PostId) error {
	// Comments and votes follow via FK cascades.
	res, err := s.db.Exec(`DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &internal_errors.ErrorWithStatusCode{
			Message:    "Post not found",
			StatusCode: http.StatusNotFound,
		}
	}
	return nil
}
