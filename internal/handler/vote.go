package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	mw "github.com/crier-dev/crier/internal/middleware"
	"github.com/crier-dev/crier/internal/utils"
)

func (h *Handler) VotePost(w http.ResponseWriter, r *http.Request) {
	user := mw.GetUserFromContext(r)

	postId, err := parseIntParam(mux.Vars(r)["post"], "post id")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	result, err := h.vote.TogglePostVote(postId, user.Id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, result)
}

func (h *Handler) VoteComment(w http.ResponseWriter, r *http.Request) {
	user := mw.GetUserFromContext(r)

	commentId, err := parseIntParam(mux.Vars(r)["comment"], "comment id")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	result, err := h.vote.ToggleCommentVote(commentId, user.Id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, result)
}
