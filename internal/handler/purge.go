package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/crier-dev/crier/internal/utils"
)

type purgeRequest struct {
	Days int `validate:"required,gt=0" json:"days"`
}

// PurgeBoardPosts deletes posts on one board with no activity for the
// requested number of days. Admin-only, runs synchronously.
func (h *Handler) PurgeBoardPosts(w http.ResponseWriter, r *http.Request) {
	boardId, err := parseIntParam(mux.Vars(r)["board"], "board id")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	var req purgeRequest
	if err := utils.DecodeValidate(r.Body, &req); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	deleted, err := h.purger.PurgeBoardPosts(boardId, req.Days)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, map[string]int64{"deleted": deleted})
}
