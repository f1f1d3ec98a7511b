package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/crier-dev/crier/internal/domain"
	internal_errors "github.com/crier-dev/crier/internal/errors"
	"github.com/crier-dev/crier/internal/logger"
	"github.com/crier-dev/crier/internal/push"
)

var (
	fanoutsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "crier_fanouts_total",
		Help: "Number of notification fan-outs started",
	})
	pushSentTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "crier_push_sent_total",
		Help: "Push deliveries that were accepted by the push service",
	})
	pushFailedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "crier_push_failed_total",
		Help: "Push deliveries that failed transiently",
	})
	endpointsPrunedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "crier_push_endpoints_pruned_total",
		Help: "Push registrations removed because the endpoint was gone",
	})
)

// Notifier owns the exactly-once notification latch and the
// best-effort fan-out to board subscribers.
type Notifier struct {
	storage   NotifierStorage
	transport push.Transport

	// Tracks in-flight fan-outs so tests can await completion. Not part
	// of the production contract; production callers fire and forget.
	wg sync.WaitGroup
}

type NotifierStorage interface {
	// MarkPostNotified must be a conditional write: set notified only
	// while it is still false, reporting whether this caller won.
	MarkPostNotified(postId domain.PostId) (bool, error)

	PostMeta(id domain.PostId) (domain.PostMetadata, error)
	BoardMeta(id domain.BoardId) (domain.BoardMetadata, error)
	BoardMembers(boardId domain.BoardId) ([]domain.UserId, error)
	UserById(id domain.UserId) (domain.User, error)
	UserPushSubscriptions(userId domain.UserId) ([]domain.PushSubscription, error)
	DeletePushSubscription(userId domain.UserId, endpoint string) error
}

func NewNotifier(storage NotifierStorage, transport push.Transport) *Notifier {
	return &Notifier{storage: storage, transport: transport}
}

// TryNotify attempts the not-notified -> notified transition. Exactly
// one concurrent caller gets true; everyone else gets false with no
// error, which simply means a rival already fired the notification.
func (n *Notifier) TryNotify(postId domain.PostId) (bool, error) {
	return n.storage.MarkPostNotified(postId)
}

// Dispatch schedules fan-out for a post on a background goroutine and
// returns immediately. The goroutine runs on its own context so it
// outlives the request that triggered it; if the process dies mid
// fan-out the remaining deliveries are lost, which is accepted.
func (n *Notifier) Dispatch(boardId domain.BoardId, postId domain.PostId) {
	fanoutsTotal.Inc()
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		n.fanout(context.Background(), boardId, postId)
	}()
}

// Wait blocks until all scheduled fan-outs finish. Test hook only.
func (n *Notifier) Wait() {
	n.wg.Wait()
}

func (n *Notifier) fanout(ctx context.Context, boardId domain.BoardId, postId domain.PostId) {
	post, err := n.storage.PostMeta(postId)
	if err != nil {
		logger.Log.Error("fanout: failed to fetch post", "postId", postId, "error", err)
		return
	}
	board, err := n.storage.BoardMeta(boardId)
	if err != nil {
		logger.Log.Error("fanout: failed to fetch board", "boardId", boardId, "error", err)
		return
	}
	// Snapshot of the member set; voting and membership keep moving
	// while we deliver, and that is fine.
	members, err := n.storage.BoardMembers(boardId)
	if err != nil {
		logger.Log.Error("fanout: failed to fetch members", "boardId", boardId, "error", err)
		return
	}

	logger.Log.Info("fanout started", "boardId", boardId, "postId", postId, "members", len(members))

	for _, memberId := range members {
		member, err := n.storage.UserById(memberId)
		if err != nil {
			logger.Log.Warn("fanout: skipping member", "userId", memberId, "error", err)
			continue
		}
		subs, err := n.storage.UserPushSubscriptions(memberId)
		if err != nil {
			logger.Log.Warn("fanout: failed to fetch subscriptions", "userId", memberId, "error", err)
			continue
		}

		payload, err := json.Marshal(domain.PushPayload{
			Username:  member.Username,
			BoardName: board.Name,
			Message:   post.Subject,
		})
		if err != nil {
			logger.Log.Error("fanout: failed to marshal payload", "userId", memberId, "error", err)
			continue
		}

		for _, sub := range subs {
			n.deliver(ctx, sub, payload)
		}
	}
}

// deliver pushes to one endpoint. Failures stay inside this method:
// one dead or flaky endpoint never aborts the rest of the fan-out.
func (n *Notifier) deliver(ctx context.Context, sub domain.PushSubscription, payload []byte) {
	err := n.transport.Send(ctx, sub, payload)
	switch {
	case err == nil:
		pushSentTotal.Inc()
	case errors.Is(err, internal_errors.EndpointGone):
		endpointsPrunedTotal.Inc()
		if err := n.storage.DeletePushSubscription(sub.UserId, sub.Endpoint); err != nil {
			logger.Log.Warn("fanout: failed to prune endpoint", "userId", sub.UserId, "error", err)
		}
	default:
		pushFailedTotal.Inc()
		logger.Log.Warn("fanout: delivery failed", "userId", sub.UserId, "error", err)
	}
}
