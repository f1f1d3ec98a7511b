package service

import (
	"context"
	"time"

	"github.com/crier-dev/crier/internal/domain"
	"github.com/crier-dev/crier/internal/logger"
)

// Purger removes boards that have seen no post activity for a
// configured number of days. It runs on a ticker in the background,
// the same shape as the rest of the periodic maintenance here.
type Purger struct {
	storage   PurgeStorage
	olderThan time.Duration
}

type PurgeStorage interface {
	PurgeBoards(cutoff time.Time) (int64, error)
	PurgePosts(boardId domain.BoardId, cutoff time.Time) (int64, error)
}

// NewPurger builds a purger that deletes boards idle for more than
// `days` days. days == 0 disables periodic purging.
func NewPurger(storage PurgeStorage, days int) *Purger {
	return &Purger{storage: storage, olderThan: time.Duration(days) * 24 * time.Hour}
}

func (p *Purger) Enabled() bool {
	return p.olderThan > 0
}

// StartBackground launches the periodic sweep. Stops when ctx is done.
func (p *Purger) StartBackground(ctx context.Context, interval time.Duration) {
	if !p.Enabled() {
		return
	}
	logger.Log.Info("Started board purger", "interval", interval, "olderThan", p.olderThan)

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if n, err := p.RunOnce(); err != nil {
					logger.Log.Error("board purge failed", "error", err)
				} else if n > 0 {
					logger.Log.Info("board purge completed", "deleted", n)
				}
			case <-ctx.Done():
				return
			}
		}
	}()
}

func (p *Purger) RunOnce() (int64, error) {
	return p.storage.PurgeBoards(time.Now().Add(-p.olderThan))
}

// PurgeBoardPosts deletes posts on one board idle for more than the
// given number of days. Admin-triggered, expensive.
func (p *Purger) PurgeBoardPosts(boardId domain.BoardId, days int) (int64, error) {
	cutoff := time.Now().Add(-time.Duration(days) * 24 * time.Hour)
	return p.storage.PurgePosts(boardId, cutoff)
}
