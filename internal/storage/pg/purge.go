package pg

import (
	"fmt"
	"time"

	"github.com/crier-dev/crier/internal/domain"
)

// PurgeBoards deletes boards whose newest post activity predates the
// cutoff (boards created after the cutoff survive even when empty).
// Posts, comments, votes and memberships cascade away with the board.
// Returns the number of boards removed.
func (s *Storage) PurgeBoards(cutoff time.Time) (int64, error) {
	res, err := s.db.Exec(`
        DELETE FROM boards b
        WHERE b.created < $1
          AND NOT EXISTS (
              SELECT 1 FROM posts p
              WHERE p.board_id = b.id AND p.last_activity >= $1
          )
    `, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to purge boards: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return n, nil
}

// PurgePosts deletes posts on one board with no activity since the
// cutoff. Comments and votes cascade.
func (s *Storage) PurgePosts(boardId domain.BoardId, cutoff time.Time) (int64, error) {
	res, err := s.db.Exec(`
        DELETE FROM posts WHERE board_id = $1 AND last_activity < $2
    `, boardId, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to purge posts: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return n, nil
}
