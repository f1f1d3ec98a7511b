package pg

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/crier-dev/crier/internal/domain"
	internal_errors "github.com/crier-dev/crier/internal/errors"
)

// TogglePostVote applies one symmetric vote toggle for userId on a
// post. The voter-set row and the cached counter move together inside
// a single transaction, with the post row locked for its duration, so
// upvotes always equals the number of post_votes rows no matter how
// toggles interleave.
//
// A cast bumps last_activity; a rescind leaves it alone.
//
// Fails with AlreadyFinalized once the post's notification fired: the
// notified flag is read under the same row lock that MarkPostNotified
// contends on, so a toggle can never slip in after the latch flips.
func (s *Storage) TogglePostVote(postId domain.PostId, userId domain.UserId) (domain.VoteResult, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return domain.VoteResult{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var notified bool
	err = tx.QueryRow(`SELECT notified FROM posts WHERE id = $1 FOR UPDATE`, postId).Scan(&notified)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.VoteResult{}, &internal_errors.ErrorWithStatusCode{
				Message:    "Post not found",
				StatusCode: http.StatusNotFound,
			}
		}
		return domain.VoteResult{}, fmt.Errorf("failed to lock post: %w", err)
	}
	if notified {
		return domain.VoteResult{}, internal_errors.AlreadyFinalized
	}

	res, err := tx.Exec(`DELETE FROM post_votes WHERE post_id = $1 AND user_id = $2`, postId, userId)
	if err != nil {
		return domain.VoteResult{}, fmt.Errorf("failed to remove vote: %w", err)
	}
	removed, _ := res.RowsAffected()

	var result domain.VoteResult
	if removed == 0 { // cast
		_, err = tx.Exec(`INSERT INTO post_votes (post_id, user_id) VALUES ($1, $2)`, postId, userId)
		if err != nil {
			return domain.VoteResult{}, fmt.Errorf("failed to insert vote: %w", err)
		}
		err = tx.QueryRow(`
            UPDATE posts SET upvotes = upvotes + 1, last_activity = now()
            WHERE id = $1
            RETURNING upvotes
        `, postId).Scan(&result.Upvotes)
		result.Voted = true
	} else { // rescind
		err = tx.QueryRow(`
            UPDATE posts SET upvotes = upvotes - 1
            WHERE id = $1
            RETURNING upvotes
        `, postId).Scan(&result.Upvotes)
	}
	if err != nil {
		return domain.VoteResult{}, fmt.Errorf("failed to update vote count: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return domain.VoteResult{}, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return result, nil
}

// ToggleCommentVote is the comment counterpart. Comments never get
// notified, so there is no frozen state to check.
func (s *Storage) ToggleCommentVote(commentId domain.CommentId, userId domain.UserId) (domain.VoteResult, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return domain.VoteResult{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists bool
	err = tx.QueryRow(`SELECT TRUE FROM comments WHERE id = $1 FOR UPDATE`, commentId).Scan(&exists)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.VoteResult{}, &internal_errors.ErrorWithStatusCode{
				Message:    "Comment not found",
				StatusCode: http.StatusNotFound,
			}
		}
		return domain.VoteResult{}, fmt.Errorf("failed to lock comment: %w", err)
	}

	res, err := tx.Exec(`DELETE FROM comment_votes WHERE comment_id = $1 AND user_id = $2`, commentId, userId)
	if err != nil {
		return domain.VoteResult{}, fmt.Errorf("failed to remove vote: %w", err)
	}
	removed, _ := res.RowsAffected()

	var result domain.VoteResult
	if removed == 0 {
		_, err = tx.Exec(`INSERT INTO comment_votes (comment_id, user_id) VALUES ($1, $2)`, commentId, userId)
		if err != nil {
			return domain.VoteResult{}, fmt.Errorf("failed to insert vote: %w", err)
		}
		err = tx.QueryRow(`
            UPDATE comments SET upvotes = upvotes + 1
            WHERE id = $1
            RETURNING upvotes
        `, commentId).Scan(&result.Upvotes)
		result.Voted = true
	} else {
		err = tx.QueryRow(`
            UPDATE comments SET upvotes = upvotes - 1
            WHERE id = $1
            RETURNING upvotes
        `, commentId).Scan(&result.Upvotes)
	}
	if err != nil {
		return domain.VoteResult{}, fmt.Errorf("failed to update vote count: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return domain.VoteResult{}, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return result, nil
}
