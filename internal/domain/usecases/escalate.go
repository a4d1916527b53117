package usecases

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/0xcro3dile/memurbot-go/internal/domain/entities"
	"github.com/0xcro3dile/memurbot-go/internal/domain/ports"
)

// DefaultEscalationTimeout bounds a single model call.
const DefaultEscalationTimeout = 30 * time.Second

// EscalationClient asks the generative model, grounding it on the whole base.
// It implements ports.Escalator and never returns an error: failures are
// logged and reported as ok=false.
type EscalationClient struct {
	llm      ports.LLMService
	language Language
	timeout  time.Duration
	logger   *zap.Logger
}

// NewEscalationClient creates an EscalationClient with injected dependencies.
func NewEscalationClient(llm ports.LLMService, language Language, timeout time.Duration, logger *zap.Logger) *EscalationClient {
	if language == "" {
		language = LanguageTurkish
	}
	if timeout <= 0 {
		timeout = DefaultEscalationTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EscalationClient{
		llm:      llm,
		language: language,
		timeout:  timeout,
		logger:   logger,
	}
}

// Ask builds the prompt and returns the model's trimmed answer.
func (c *EscalationClient) Ask(ctx context.Context, query string, base entities.KnowledgeBase) (string, bool) {
	if base.Empty() {
		c.logger.Debug("escalation skipped, knowledge base is empty")
		return "", false
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	prompt := BuildPrompt(c.language, query, base)
	start := time.Now()
	text, err := c.llm.Generate(ctx, prompt)
	if err != nil {
		c.logger.Warn("escalation failed",
			zap.Stringer("kind", ports.KindOf(err)),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return "", false
	}

	text = strings.TrimSpace(text)
	if text == "" {
		c.logger.Warn("escalation returned no text",
			zap.Stringer("kind", ports.ErrorEmpty),
			zap.Duration("elapsed", time.Since(start)))
		return "", false
	}

	c.logger.Debug("escalation answered",
		zap.Int("prompt_bytes", len(prompt)),
		zap.Duration("elapsed", time.Since(start)))
	return text, true
}
