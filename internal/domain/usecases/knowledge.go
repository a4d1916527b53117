package usecases

import (
	"context"
	"errors"
	"io/fs"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/0xcro3dile/memurbot-go/internal/domain/entities"
	"github.com/0xcro3dile/memurbot-go/internal/domain/ports"
)

// KnowledgeStore loads the knowledge base and never fails hard.
type KnowledgeStore struct {
	loader ports.KnowledgeLoader
	logger *zap.Logger
}

// NewKnowledgeStore creates a KnowledgeStore with an injected loader.
func NewKnowledgeStore(loader ports.KnowledgeLoader, logger *zap.Logger) *KnowledgeStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &KnowledgeStore{loader: loader, logger: logger}
}

// Load reads path. On a missing or malformed file it logs a warning and
// returns an empty base together with the warning.
func (s *KnowledgeStore) Load(ctx context.Context, path string) (entities.KnowledgeBase, *entities.ConfigWarning) {
	base, err := s.loader.Load(ctx, path)
	if err == nil {
		s.logger.Info("knowledge base loaded",
			zap.String("path", path),
			zap.Int("entries", base.Len()))
		return base, nil
	}

	kind := entities.WarningMalformed
	if errors.Is(err, fs.ErrNotExist) {
		kind = entities.WarningMissing
	}
	warning := &entities.ConfigWarning{Kind: kind, Path: path, Err: err}
	s.logger.Warn("knowledge base unavailable, continuing with no local answers",
		zap.String("path", path),
		zap.Stringer("reason", kind),
		zap.Error(err))
	return entities.KnowledgeBase{}, warning
}

// KnowledgeHolder publishes the current base to concurrent readers.
// Every stored base is immutable; replacing one never mutates another.
type KnowledgeHolder struct {
	current atomic.Pointer[entities.KnowledgeBase]
}

// NewKnowledgeHolder creates a holder with an initial base.
func NewKnowledgeHolder(base entities.KnowledgeBase) *KnowledgeHolder {
	h := &KnowledgeHolder{}
	h.Store(base)
	return h
}

// Load returns the current base.
func (h *KnowledgeHolder) Load() entities.KnowledgeBase {
	if b := h.current.Load(); b != nil {
		return *b
	}
	return entities.KnowledgeBase{}
}

// Store replaces the current base.
func (h *KnowledgeHolder) Store(base entities.KnowledgeBase) {
	h.current.Store(&base)
}
