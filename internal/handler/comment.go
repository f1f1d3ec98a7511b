package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/crier-dev/crier/internal/domain"
	mw "github.com/crier-dev/crier/internal/middleware"
	"github.com/crier-dev/crier/internal/utils"
)

type commentCreationRequest struct {
	Message string `validate:"required" json:"message"`
}

func (h *Handler) CreateComment(w http.ResponseWriter, r *http.Request) {
	user := mw.GetUserFromContext(r)

	postId, err := parseIntParam(mux.Vars(r)["post"], "post id")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	var req commentCreationRequest
	if err := utils.DecodeValidate(r.Body, &req); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	id, err := h.comment.Create(domain.CommentCreationData{
		Post:    postId,
		Author:  user.Id,
		Message: req.Message,
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	writeJSON(w, map[string]domain.CommentId{"comment_id": id})
}

func (h *Handler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	user := mw.GetUserFromContext(r)

	commentId, err := parseIntParam(mux.Vars(r)["comment"], "comment id")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if err := h.comment.Delete(commentId, user); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}
