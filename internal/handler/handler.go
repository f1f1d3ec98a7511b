package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/crier-dev/crier/internal/config"
	"github.com/crier-dev/crier/internal/logger"
	"github.com/crier-dev/crier/internal/service"
)

type HealthChecker interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	auth     service.AuthService
	board    service.BoardService
	post     service.PostService
	comment  service.CommentService
	vote     service.VoteService
	push     service.PushService
	notifier *service.Notifier
	purger   *service.Purger
	health   HealthChecker
	cfg      *config.Config
}

func New(
	auth service.AuthService,
	board service.BoardService,
	post service.PostService,
	comment service.CommentService,
	vote service.VoteService,
	push service.PushService,
	notifier *service.Notifier,
	purger *service.Purger,
	health HealthChecker,
	cfg *config.Config,
) *Handler {
	return &Handler{auth, board, post, comment, vote, push, notifier, purger, health, cfg}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Error("failed to encode response", "error", err)
	}
}
