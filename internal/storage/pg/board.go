package pg

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/crier-dev/crier/internal/domain"
	internal_errors "github.com/crier-dev/crier/internal/errors"
)

func (s *Storage) CreateBoard(data domain.BoardCreationData) (domain.BoardId, error) {
	var id domain.BoardId
	err := s.db.QueryRow(`
        INSERT INTO boards (name, description, vote_threshold, created_by)
        VALUES ($1, $2, $3, $4)
        RETURNING id
    `, data.Name, data.Description, data.VoteThreshold, data.CreatedBy).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, &internal_errors.ErrorWithStatusCode{
				Message:    "A board with that name already exists",
				StatusCode: http.StatusConflict,
			}
		}
		return 0, fmt.Errorf("failed to insert board: %w", err)
	}
	return id, nil
}

func (s *Storage) BoardMeta(id domain.BoardId) (domain.BoardMetadata, error) {
	var m domain.BoardMetadata
	err := s.db.QueryRow(`
        SELECT id, name, description, vote_threshold, member_count, created_by, created
        FROM boards
        WHERE id = $1
    `, id).Scan(&m.Id, &m.Name, &m.Description, &m.VoteThreshold, &m.MemberCount, &m.CreatedBy, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.BoardMetadata{}, &internal_errors.ErrorWithStatusCode{
				Message:    "Board not found",
				StatusCode: http.StatusNotFound,
			}
		}
		return domain.BoardMetadata{}, fmt.Errorf("failed to fetch board: %w", err)
	}
	return m, nil
}

// GetBoard returns board metadata plus its posts. Notified posts sort
// first, then by upvote count, matching what subscribers expect to see
// at the top of a board. Viewer-specific flags are resolved for the
// given user id (0 means anonymous).
func (s *Storage) GetBoard(id domain.BoardId, viewer domain.UserId) (domain.Board, error) {
	m, err := s.BoardMeta(id)
	if err != nil {
		return domain.Board{}, err
	}

	err = s.db.QueryRow(`
        SELECT EXISTS (SELECT 1 FROM board_members WHERE board_id = $1 AND user_id = $2)
    `, id, viewer).Scan(&m.Subscribed)
	if err != nil {
		return domain.Board{}, fmt.Errorf("failed to resolve subscription flag: %w", err)
	}

	rows, err := s.db.Query(`
        SELECT
            p.id, p.board_id, p.subject, p.description, p.author_id, p.created,
            p.upvotes, p.notified, p.last_activity,
            EXISTS (SELECT 1 FROM post_votes v WHERE v.post_id = p.id AND v.user_id = $2) AS upvoted
        FROM posts p
        WHERE p.board_id = $1
        ORDER BY p.notified DESC, p.upvotes DESC, p.created DESC
    `, id, viewer)
	if err != nil {
		return domain.Board{}, fmt.Errorf("failed to fetch posts: %w", err)
	}
	defer rows.Close()

	var posts []domain.Post
	for rows.Next() {
		var p domain.Post
		if err := rows.Scan(
			&p.Id, &p.Board, &p.Subject, &p.Description, &p.Author, &p.CreatedAt,
			&p.Upvotes, &p.Notified, &p.LastActivity, &p.Upvoted,
		); err != nil {
			return domain.Board{}, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return domain.Board{}, fmt.Errorf("rows iteration error: %w", err)
	}

	return domain.Board{BoardMetadata: m, Posts: posts}, nil
}

func (s *Storage) Boards(search string, offset, limit int, viewer domain.UserId) ([]domain.BoardMetadata, error) {
	rows, err := s.db.Query(`
        SELECT
            b.id, b.name, b.description, b.vote_threshold, b.member_count, b.created_by, b.created,
            EXISTS (SELECT 1 FROM board_members m WHERE m.board_id = b.id AND m.user_id = $4) AS subscribed
        FROM boards b
        WHERE ($1 = '' OR b.name ILIKE '%' || $1 || '%')
        ORDER BY b.member_count DESC, b.id
        LIMIT $2 OFFSET $3
    `, search, limit, offset*limit, viewer)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch boards: %w", err)
	}
	defer rows.Close()

	return scanBoardMetas(rows)
}

func (s *Storage) UserBoards(viewer domain.UserId) ([]domain.BoardMetadata, error) {
	rows, err := s.db.Query(`
        SELECT
            b.id, b.name, b.description, b.vote_threshold, b.member_count, b.created_by, b.created,
            TRUE AS subscribed
        FROM boards b
        JOIN board_members m ON m.board_id = b.id
        WHERE m.user_id = $1
        ORDER BY b.name
    `, viewer)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user boards: %w", err)
	}
	defer rows.Close()

	return scanBoardMetas(rows)
}

func scanBoardMetas(rows *sql.Rows) ([]domain.BoardMetadata, error) {
	var boards []domain.BoardMetadata
	for rows.Next() {
		var m domain.BoardMetadata
		if err := rows.Scan(
			&m.Id, &m.Name, &m.Description, &m.VoteThreshold, &m.MemberCount,
			&m.CreatedBy, &m.CreatedAt, &m.Subscribed,
		); err != nil {
			return nil, fmt.Errorf("failed to scan board: %w", err)
		}
		boards = append(boards, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return boards, nil
}

func (s *Storage) DeleteBoard(id domain.BoardId) error {
	// Posts, comments, votes and memberships go with the board via FK
	// cascades.
	res, err := s.db.Exec(`DELETE FROM boards WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete board: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &internal_errors.ErrorWithStatusCode{
			Message:    "Board not found",
			StatusCode: http.StatusNotFound,
		}
	}
	return nil
}

// ToggleSubscription flips the viewer's membership on a board. The
// membership row and the denormalized member_count move together in
// one transaction; the board row lock keeps concurrent toggles from
// losing counter updates.
func (s *Storage) ToggleSubscription(boardId domain.BoardId, userId domain.UserId) (bool, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists bool
	err = tx.QueryRow(`SELECT TRUE FROM boards WHERE id = $1 FOR UPDATE`, boardId).Scan(&exists)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, &internal_errors.ErrorWithStatusCode{
				Message:    "Board not found",
				StatusCode: http.StatusNotFound,
			}
		}
		return false, fmt.Errorf("failed to lock board: %w", err)
	}

	res, err := tx.Exec(`
        DELETE FROM board_members WHERE board_id = $1 AND user_id = $2
    `, boardId, userId)
	if err != nil {
		return false, fmt.Errorf("failed to remove membership: %w", err)
	}

	removed, _ := res.RowsAffected()
	var subscribed bool
	if removed == 0 {
		_, err = tx.Exec(`
            INSERT INTO board_members (board_id, user_id) VALUES ($1, $2)
        `, boardId, userId)
		if err != nil {
			return false, fmt.Errorf("failed to insert membership: %w", err)
		}
		_, err = tx.Exec(`UPDATE boards SET member_count = member_count + 1 WHERE id = $1`, boardId)
		subscribed = true
	} else {
		_, err = tx.Exec(`UPDATE boards SET member_count = member_count - 1 WHERE id = $1`, boardId)
	}
	if err != nil {
		return false, fmt.Errorf("failed to adjust member count: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return subscribed, nil
}

// BoardMembers returns a snapshot of the member set. Fan-out iterates
// this snapshot without holding any lock.
func (s *Storage) BoardMembers(boardId domain.BoardId) ([]domain.UserId, error) {
	rows, err := s.db.Query(`
        SELECT user_id FROM board_members WHERE board_id = $1
    `, boardId)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch board members: %w", err)
	}
	defer rows.Close()

	var members []domain.UserId
	for rows.Next() {
		var id domain.UserId
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return members, nil
}
