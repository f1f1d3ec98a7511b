package pg

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/crier-dev/crier/internal/domain"
	internal_errors "github.com/crier-dev/crier/internal/errors"
)

// MarkPostNotified flips the post's notified flag with a conditional
// write. The update only matches while the flag is still false, so of
// any number of concurrent callers exactly one sees won == true. The
// flag never goes back.
func (s *Storage) MarkPostNotified(postId domain.PostId) (bool, error) {
	res, err := s.db.Exec(`
        UPDATE posts SET notified = TRUE
        WHERE id = $1 AND notified = FALSE
    `, postId)
	if err != nil {
		return false, fmt.Errorf("failed to mark post notified: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 1 {
		return true, nil
	}

	// Lost the race, or the post is gone. Tell them apart.
	var exists bool
	err = s.db.QueryRow(`SELECT TRUE FROM posts WHERE id = $1`, postId).Scan(&exists)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, &internal_errors.ErrorWithStatusCode{
				Message:    "Post not found",
				StatusCode: http.StatusNotFound,
			}
		}
		return false, fmt.Errorf("failed to fetch post: %w", err)
	}
	return false, nil
}
