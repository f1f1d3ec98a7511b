package service

import (
	"net/http"

	"github.com/crier-dev/crier/internal/domain"
	"github.com/crier-dev/crier/internal/errors"
	"github.com/crier-dev/crier/internal/sanitize"
)

type BoardService interface {
	Create(data domain.BoardCreationData) (domain.BoardId, error)
	Get(id domain.BoardId, viewer domain.UserId) (domain.Board, error)
	List(search string, offset int, viewer domain.UserId) ([]domain.BoardMetadata, error)
	UserBoards(viewer domain.UserId) ([]domain.BoardMetadata, error)
	Delete(id domain.BoardId, caller *domain.User) error
	ToggleSubscription(id domain.BoardId, userId domain.UserId) (bool, error)
}

type Board struct {
	storage   BoardStorage
	validator BoardValidator
	pageSize  int
}

type BoardStorage interface {
	CreateBoard(data domain.BoardCreationData) (domain.BoardId, error)
	BoardMeta(id domain.BoardId) (domain.BoardMetadata, error)
	GetBoard(id domain.BoardId, viewer domain.UserId) (domain.Board, error)
	Boards(search string, offset, limit int, viewer domain.UserId) ([]domain.BoardMetadata, error)
	UserBoards(viewer domain.UserId) ([]domain.BoardMetadata, error)
	DeleteBoard(id domain.BoardId) error
	ToggleSubscription(boardId domain.BoardId, userId domain.UserId) (bool, error)
}

type BoardValidator interface {
	Name(name string) error
	Threshold(percent int) error
}

func NewBoard(storage BoardStorage, validator BoardValidator, pageSize int) BoardService {
	return &Board{storage, validator, pageSize}
}

func (b *Board) Create(data domain.BoardCreationData) (domain.BoardId, error) {
	data.Name = sanitize.Text(data.Name)
	data.Description = sanitize.Text(data.Description)

	if err := b.validator.Name(data.Name); err != nil {
		return 0, err
	}
	if err := b.validator.Threshold(data.VoteThreshold); err != nil {
		return 0, err
	}

	return b.storage.CreateBoard(data)
}

func (b *Board) Get(id domain.BoardId, viewer domain.UserId) (domain.Board, error) {
	return b.storage.GetBoard(id, viewer)
}

func (b *Board) List(search string, offset int, viewer domain.UserId) ([]domain.BoardMetadata, error) {
	offset = max(0, offset)
	return b.storage.Boards(search, offset, b.pageSize, viewer)
}

func (b *Board) UserBoards(viewer domain.UserId) ([]domain.BoardMetadata, error) {
	return b.storage.UserBoards(viewer)
}

// Delete is allowed for the board owner and for admins.
func (b *Board) Delete(id domain.BoardId, caller *domain.User) error {
	meta, err := b.storage.BoardMeta(id)
	if err != nil {
		return err
	}
	if meta.CreatedBy != caller.Id && !caller.Admin {
		return &errors.ErrorWithStatusCode{Message: "Only the board owner or an admin can delete a board", StatusCode: http.StatusForbidden}
	}
	return b.storage.DeleteBoard(id)
}

func (b *Board) ToggleSubscription(id domain.BoardId, userId domain.UserId) (bool, error) {
	return b.storage.ToggleSubscription(id, userId)
}
