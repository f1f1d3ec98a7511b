package service

import (
	"net/http"

	"github.com/crier-dev/crier/internal/domain"
	"github.com/crier-dev/crier/internal/errors"
	"github.com/crier-dev/crier/internal/sanitize"
)

type CommentService interface {
	Create(data domain.CommentCreationData) (domain.CommentId, error)
	Delete(id domain.CommentId, caller *domain.User) error
}

type Comment struct {
	storage   CommentStorage
	validator CommentValidator
}

type CommentStorage interface {
	CreateComment(data domain.CommentCreationData) (domain.CommentId, error)
	Comment(id domain.CommentId) (domain.Comment, error)
	DeleteComment(id domain.CommentId) error
}

type CommentValidator interface {
	Message(message string) error
}

func NewComment(storage CommentStorage, validator CommentValidator) CommentService {
	return &Comment{storage, validator}
}

func (c *Comment) Create(data domain.CommentCreationData) (domain.CommentId, error) {
	data.Message = sanitize.Text(data.Message)

	if err := c.validator.Message(data.Message); err != nil {
		return 0, err
	}

	return c.storage.CreateComment(data)
}

func (c *Comment) Delete(id domain.CommentId, caller *domain.User) error {
	comment, err := c.storage.Comment(id)
	if err != nil {
		return err
	}
	if comment.Author != caller.Id && !caller.Admin {
		return &errors.ErrorWithStatusCode{Message: "Only the comment author or an admin can delete a comment", StatusCode: http.StatusForbidden}
	}
	return c.storage.DeleteComment(id)
}
