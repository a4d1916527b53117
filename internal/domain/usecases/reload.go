package usecases

import (
	"context"

	"go.uber.org/zap"

	"github.com/0xcro3dile/memurbot-go/internal/domain/ports"
)

// Reloader replaces the held knowledge base when its file changes.
// A reload that fails keeps the previous base.
type Reloader struct {
	store   *KnowledgeStore
	holder  *KnowledgeHolder
	watcher ports.FileWatcher
	path    string
	logger  *zap.Logger
}

// NewReloader creates a Reloader for path.
func NewReloader(store *KnowledgeStore, holder *KnowledgeHolder, watcher ports.FileWatcher, path string, logger *zap.Logger) *Reloader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reloader{
		store:   store,
		holder:  holder,
		watcher: watcher,
		path:    path,
		logger:  logger,
	}
}

// Run blocks until ctx is done or the watcher closes its channel.
func (r *Reloader) Run(ctx context.Context) error {
	events, err := r.watcher.Watch(ctx, r.path)
	if err != nil {
		return err
	}
	r.logger.Info("watching knowledge file", zap.String("path", r.path))

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if ev.Operation == ports.FileDeleted {
				r.logger.Warn("knowledge file removed, keeping loaded entries", zap.String("path", ev.Path))
				continue
			}
			r.reload(ctx)
		}
	}
}

func (r *Reloader) reload(ctx context.Context) {
	base, warning := r.store.Load(ctx, r.path)
	if warning != nil {
		r.logger.Warn("reload rejected, keeping previous knowledge base",
			zap.Int("entries", r.holder.Load().Len()))
		return
	}
	r.holder.Store(base)
	r.logger.Info("knowledge base reloaded", zap.Int("entries", base.Len()))
}
