package handler

import (
	"net/http"

	"github.com/crier-dev/crier/internal/domain"
	mw "github.com/crier-dev/crier/internal/middleware"
	"github.com/crier-dev/crier/internal/utils"
)

func (h *Handler) GetPushKey(w http.ResponseWriter, r *http.Request) {
	key, err := h.push.PublicKey()
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, map[string]string{"public_key": key})
}

type pushSubscriptionRequest struct {
	Endpoint string `validate:"required" json:"endpoint"`
	Keys     struct {
		P256dh string `json:"p256dh"`
		Auth   string `json:"auth"`
	} `json:"keys"`
	Subscribe bool `json:"subscribe"`
}

func (h *Handler) PushSubscription(w http.ResponseWriter, r *http.Request) {
	user := mw.GetUserFromContext(r)

	var req pushSubscriptionRequest
	if err := utils.DecodeValidate(r.Body, &req); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	sub := domain.PushSubscription{
		Endpoint: req.Endpoint,
		P256dh:   req.Keys.P256dh,
		Auth:     req.Keys.Auth,
	}
	if err := h.push.Subscribe(user.Id, sub, req.Subscribe); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, map[string]bool{"subscribed": req.Subscribe})
}

type pushTestRequest struct {
	BoardId domain.BoardId `validate:"required" json:"board_id"`
	PostId  domain.PostId  `validate:"required" json:"post_id"`
}

// PushTest lets an admin trigger a fan-out for a post by hand,
// bypassing the threshold check. Useful for verifying delivery
// end to end against real browser endpoints.
func (h *Handler) PushTest(w http.ResponseWriter, r *http.Request) {
	var req pushTestRequest
	if err := utils.DecodeValidate(r.Body, &req); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	h.notifier.Dispatch(req.BoardId, req.PostId)

	w.WriteHeader(http.StatusAccepted)
}
