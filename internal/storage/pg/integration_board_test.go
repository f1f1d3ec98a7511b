package pg

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crier-dev/crier/internal/domain"
	internal_errors "github.com/crier-dev/crier/internal/errors"
)

func TestCreateBoard(t *testing.T) {
	owner := createUser(t)

	t.Run("create and fetch", func(t *testing.T) {
		name := generateString(t)
		id, err := storage.CreateBoard(domain.BoardCreationData{Name: name, VoteThreshold: 30, CreatedBy: owner.Id})
		require.NoError(t, err)
		t.Cleanup(func() {
			require.NoError(t, storage.DeleteBoard(id))
		})

		meta, err := storage.BoardMeta(id)
		require.NoError(t, err)
		assert.Equal(t, name, meta.Name)
		assert.Equal(t, 30, meta.VoteThreshold)
		assert.Equal(t, 0, meta.MemberCount)
	})

	t.Run("duplicate name should fail", func(t *testing.T) {
		name := generateString(t)
		id, err := storage.CreateBoard(domain.BoardCreationData{Name: name, VoteThreshold: 30, CreatedBy: owner.Id})
		require.NoError(t, err)
		t.Cleanup(func() {
			require.NoError(t, storage.DeleteBoard(id))
		})

		_, err = storage.CreateBoard(domain.BoardCreationData{Name: name, VoteThreshold: 40, CreatedBy: owner.Id})
		require.Error(t, err)
	})

	t.Run("missing board is not found", func(t *testing.T) {
		_, err := storage.BoardMeta(999999)
		assert.True(t, internal_errors.IsNotFound(err))
	})
}

func TestToggleSubscription(t *testing.T) {
	owner := createUser(t)
	board := createBoard(t, owner.Id, 50)
	member := createUser(t)

	subscribed, err := storage.ToggleSubscription(board, member.Id)
	require.NoError(t, err)
	assert.True(t, subscribed)

	meta, err := storage.BoardMeta(board)
	require.NoError(t, err)
	assert.Equal(t, 1, meta.MemberCount)

	members, err := storage.BoardMembers(board)
	require.NoError(t, err)
	assert.Equal(t, []domain.UserId{member.Id}, members)

	subscribed, err = storage.ToggleSubscription(board, member.Id)
	require.NoError(t, err)
	assert.False(t, subscribed)

	meta, err = storage.BoardMeta(board)
	require.NoError(t, err)
	assert.Equal(t, 0, meta.MemberCount)
}

func TestBoardsListing(t *testing.T) {
	owner := createUser(t)
	name := generateString(t)
	id, err := storage.CreateBoard(domain.BoardCreationData{Name: name, VoteThreshold: 30, CreatedBy: owner.Id})
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, storage.DeleteBoard(id))
	})

	t.Run("search by name fragment", func(t *testing.T) {
		boards, err := storage.Boards(name[1:8], 0, 50, 0)
		require.NoError(t, err)
		require.Len(t, boards, 1)
		assert.Equal(t, id, boards[0].Id)
	})

	t.Run("subscribed flag tracks the viewer", func(t *testing.T) {
		viewer := createUser(t)
		_, err := storage.ToggleSubscription(id, viewer.Id)
		require.NoError(t, err)

		boards, err := storage.Boards(name, 0, 50, viewer.Id)
		require.NoError(t, err)
		require.Len(t, boards, 1)
		assert.True(t, boards[0].Subscribed)

		boards, err = storage.Boards(name, 0, 50, owner.Id)
		require.NoError(t, err)
		require.Len(t, boards, 1)
		assert.False(t, boards[0].Subscribed)
	})

	t.Run("user boards lists only subscriptions", func(t *testing.T) {
		viewer := createUser(t)
		_, err := storage.ToggleSubscription(id, viewer.Id)
		require.NoError(t, err)

		boards, err := storage.UserBoards(viewer.Id)
		require.NoError(t, err)
		require.Len(t, boards, 1)
		assert.Equal(t, id, boards[0].Id)
	})
}

func TestGetBoardPostOrdering(t *testing.T) {
	owner := createUser(t)
	board := createBoard(t, owner.Id, 50)

	first := createPost(t, board, owner.Id)
	second := createPost(t, board, owner.Id)
	third := createPost(t, board, owner.Id)

	// second gets a vote, third gets notified
	voter := createUser(t)
	_, err := storage.TogglePostVote(second, voter.Id)
	require.NoError(t, err)
	_, err = storage.MarkPostNotified(third)
	require.NoError(t, err)

	b, err := storage.GetBoard(board, 0)
	require.NoError(t, err)
	require.Len(t, b.Posts, 3)

	assert.Equal(t, third, b.Posts[0].Id, "notified posts come first")
	assert.Equal(t, second, b.Posts[1].Id, "then by upvotes")
	assert.Equal(t, first, b.Posts[2].Id)
}

func TestPurgeBoards(t *testing.T) {
	owner := createUser(t)

	id, err := storage.CreateBoard(domain.BoardCreationData{Name: generateString(t), VoteThreshold: 30, CreatedBy: owner.Id})
	require.NoError(t, err)

	t.Run("active boards survive", func(t *testing.T) {
		n, err := storage.PurgeBoards(time.Now().Add(-time.Hour))
		require.NoError(t, err)
		assert.Zero(t, n)

		_, err = storage.BoardMeta(id)
		assert.NoError(t, err)
	})

	t.Run("idle boards are removed", func(t *testing.T) {
		n, err := storage.PurgeBoards(time.Now().Add(time.Hour))
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, int64(1))

		_, err = storage.BoardMeta(id)
		assert.True(t, internal_errors.IsNotFound(err))
	})
}
