package service

import (
	"github.com/crier-dev/crier/internal/domain"
)

type VoteService interface {
	TogglePostVote(postId domain.PostId, voterId domain.UserId) (domain.VoteResult, error)
	ToggleCommentVote(commentId domain.CommentId, voterId domain.UserId) (domain.VoteResult, error)
}

// Vote composes the vote ledger with the notification pipeline: a cast
// that pushes a post over its board's threshold wins the notify latch
// and schedules fan-out, everything else is just a counter move.
type Vote struct {
	storage  VoteStorage
	notifier PostNotifier
}

type VoteStorage interface {
	// Toggle operations must apply the voter-set change and the counter
	// change as one atomic unit per voter, and reject post toggles once
	// the post is notified (errors.AlreadyFinalized).
	TogglePostVote(postId domain.PostId, voterId domain.UserId) (domain.VoteResult, error)
	ToggleCommentVote(commentId domain.CommentId, voterId domain.UserId) (domain.VoteResult, error)

	PostMeta(id domain.PostId) (domain.PostMetadata, error)
	BoardMeta(id domain.BoardId) (domain.BoardMetadata, error)
}

// PostNotifier is the exactly-once latch plus the fan-out scheduler.
type PostNotifier interface {
	TryNotify(postId domain.PostId) (bool, error)
	Dispatch(boardId domain.BoardId, postId domain.PostId)
}

func NewVote(storage VoteStorage, notifier PostNotifier) VoteService {
	return &Vote{storage, notifier}
}

func (v *Vote) TogglePostVote(postId domain.PostId, voterId domain.UserId) (domain.VoteResult, error) {
	result, err := v.storage.TogglePostVote(postId, voterId)
	if err != nil {
		return domain.VoteResult{}, err
	}

	// Only a cast can cross the threshold; a rescind never triggers
	// notification evaluation.
	if !result.Voted {
		return result, nil
	}

	post, err := v.storage.PostMeta(postId)
	if err != nil {
		return domain.VoteResult{}, err
	}
	board, err := v.storage.BoardMeta(post.Board)
	if err != nil {
		return domain.VoteResult{}, err
	}

	if !domain.CrossesThreshold(result.Upvotes, board.MemberCount, board.VoteThreshold) {
		return result, nil
	}

	won, err := v.notifier.TryNotify(postId)
	if err != nil {
		return domain.VoteResult{}, err
	}
	if won {
		// Detached from this request; the HTTP response does not wait
		// for delivery.
		v.notifier.Dispatch(board.Id, postId)
	}
	return result, nil
}

func (v *Vote) ToggleCommentVote(commentId domain.CommentId, voterId domain.UserId) (domain.VoteResult, error) {
	return v.storage.ToggleCommentVote(commentId, voterId)
}
