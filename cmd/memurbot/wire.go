package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/0xcro3dile/memurbot-go/internal/adapters/filewatcher"
	"github.com/0xcro3dile/memurbot-go/internal/adapters/llm"
	"github.com/0xcro3dile/memurbot-go/internal/adapters/loader"
	"github.com/0xcro3dile/memurbot-go/internal/config"
	"github.com/0xcro3dile/memurbot-go/internal/domain/ports"
	"github.com/0xcro3dile/memurbot-go/internal/domain/usecases"
)

// app holds the wired core.
type app struct {
	assistant *usecases.Assistant
	reloader  *usecases.Reloader // nil unless knowledge.watch is set
	watcher   ports.FileWatcher
}

func (a *app) close() {
	if a.watcher != nil {
		_ = a.watcher.Stop()
	}
}

// newLLM builds the configured model adapter.
func newLLM(ctx context.Context, cfg *config.Config) (ports.LLMService, error) {
	switch cfg.LLM.Provider {
	case "ollama":
		return llm.NewOllamaAdapter(cfg.LLM.BaseURL, cfg.LLM.Model, cfg.GetLLMTimeout()), nil
	default:
		return llm.NewGeminiAdapter(ctx, llm.GeminiOptions{
			APIKey:  cfg.LLM.APIKey,
			Model:   cfg.LLM.Model,
			BaseURL: cfg.LLM.BaseURL,
			Timeout: cfg.GetLLMTimeout(),
		})
	}
}

// buildApp loads the knowledge base once and wires the resolution pipeline.
// A missing model credential disables escalation instead of failing startup.
func buildApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*app, error) {
	store := usecases.NewKnowledgeStore(loader.NewMultiLoader(), logger)
	base, _ := store.Load(ctx, cfg.Knowledge.Path)
	holder := usecases.NewKnowledgeHolder(base)

	var escalator ports.Escalator
	model, err := newLLM(ctx, cfg)
	if err != nil {
		logger.Warn("model escalation disabled", zap.Error(err))
	} else {
		escalator = usecases.NewEscalationClient(model,
			usecases.Language(cfg.Prompt.Language), cfg.GetLLMTimeout(), logger.Named("escalation"))
	}

	resolver, err := usecases.NewAnswerResolver(usecases.NewSimilarityMatcher(), escalator, cfg.Matcher.Threshold, logger.Named("resolver"))
	if err != nil {
		return nil, fmt.Errorf("creating resolver: %w", err)
	}

	a := &app{assistant: usecases.NewAssistant(resolver, holder)}
	if cfg.Knowledge.Watch {
		w, err := filewatcher.NewFSNotifyWatcher(logger)
		if err != nil {
			return nil, err
		}
		a.watcher = w
		a.reloader = usecases.NewReloader(store, holder, w, cfg.Knowledge.Path, logger.Named("reload"))
	}
	return a, nil
}
