package service

import (
	"net/http"

	"github.com/crier-dev/crier/internal/domain"
	"github.com/crier-dev/crier/internal/errors"
	"github.com/crier-dev/crier/internal/sanitize"
)

type PostService interface {
	Create(data domain.PostCreationData) (domain.PostId, error)
	Get(id domain.PostId, viewer domain.UserId) (domain.Post, error)
	Delete(id domain.PostId, caller *domain.User) error
}

type Post struct {
	storage   PostStorage
	validator PostValidator
}

type PostStorage interface {
	CreatePost(data domain.PostCreationData) (domain.PostId, error)
	GetPost(id domain.PostId, viewer domain.UserId) (domain.Post, error)
	PostMeta(id domain.PostId) (domain.PostMetadata, error)
	DeletePost(id domain.PostId) error
}

type PostValidator interface {
	Subject(subject string) error
	Description(description string) error
}

func NewPost(storage PostStorage, validator PostValidator) PostService {
	return &Post{storage, validator}
}

func (p *Post) Create(data domain.PostCreationData) (domain.PostId, error) {
	data.Subject = sanitize.Text(data.Subject)
	data.Description = sanitize.Text(data.Description)

	if err := p.validator.Subject(data.Subject); err != nil {
		return 0, err
	}
	if err := p.validator.Description(data.Description); err != nil {
		return 0, err
	}

	return p.storage.CreatePost(data)
}

func (p *Post) Get(id domain.PostId, viewer domain.UserId) (domain.Post, error) {
	return p.storage.GetPost(id, viewer)
}

func (p *Post) Delete(id domain.PostId, caller *domain.User) error {
	meta, err := p.storage.PostMeta(id)
	if err != nil {
		return err
	}
	if meta.Author != caller.Id && !caller.Admin {
		return &errors.ErrorWithStatusCode{Message: "Only the post author or an admin can delete a post", StatusCode: http.StatusForbidden}
	}
	return p.storage.DeletePost(id)
}
