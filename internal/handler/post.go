package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/crier-dev/crier/internal/domain"
	mw "github.com/crier-dev/crier/internal/middleware"
	"github.com/crier-dev/crier/internal/utils"
)

type postCreationRequest struct {
	Subject     string `validate:"required" json:"subject"`
	Description string `json:"description"`
}

func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	user := mw.GetUserFromContext(r)

	boardId, err := parseIntParam(mux.Vars(r)["board"], "board id")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	var req postCreationRequest
	if err := utils.DecodeValidate(r.Body, &req); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	id, err := h.post.Create(domain.PostCreationData{
		Board:       boardId,
		Subject:     req.Subject,
		Description: req.Description,
		Author:      user.Id,
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	writeJSON(w, map[string]domain.PostId{"post_id": id})
}

func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	postId, err := parseIntParam(mux.Vars(r)["post"], "post id")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	post, err := h.post.Get(postId, viewerId(r))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, post)
}

func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	user := mw.GetUserFromContext(r)

	postId, err := parseIntParam(mux.Vars(r)["post"], "post id")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if err := h.post.Delete(postId, user); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}
