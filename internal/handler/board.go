package handler

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/crier-dev/crier/internal/domain"
	mw "github.com/crier-dev/crier/internal/middleware"
	"github.com/crier-dev/crier/internal/utils"
)

type boardCreationRequest struct {
	Name          string `validate:"required" json:"name"`
	Description   string `json:"description"`
	VoteThreshold int    `validate:"required" json:"vote_threshold"`
}

func (h *Handler) CreateBoard(w http.ResponseWriter, r *http.Request) {
	user := mw.GetUserFromContext(r)

	var req boardCreationRequest
	if err := utils.DecodeValidate(r.Body, &req); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	id, err := h.board.Create(domain.BoardCreationData{
		Name:          req.Name,
		Description:   req.Description,
		VoteThreshold: req.VoteThreshold,
		CreatedBy:     user.Id,
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	writeJSON(w, map[string]domain.BoardId{"board_id": id})
}

func (h *Handler) GetBoards(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	boards, err := h.board.List(search, offset, viewerId(r))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, boards)
}

func (h *Handler) GetUserBoards(w http.ResponseWriter, r *http.Request) {
	user := mw.GetUserFromContext(r)

	boards, err := h.board.UserBoards(user.Id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, boards)
}

func (h *Handler) GetBoard(w http.ResponseWriter, r *http.Request) {
	boardId, err := parseIntParam(mux.Vars(r)["board"], "board id")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	board, err := h.board.Get(boardId, viewerId(r))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, board)
}

func (h *Handler) DeleteBoard(w http.ResponseWriter, r *http.Request) {
	user := mw.GetUserFromContext(r)

	boardId, err := parseIntParam(mux.Vars(r)["board"], "board id")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if err := h.board.Delete(boardId, user); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) ToggleSubscription(w http.ResponseWriter, r *http.Request) {
	user := mw.GetUserFromContext(r)

	boardId, err := parseIntParam(mux.Vars(r)["board"], "board id")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	subscribed, err := h.board.ToggleSubscription(boardId, user.Id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, map[string]bool{"subscribed": subscribed})
}
