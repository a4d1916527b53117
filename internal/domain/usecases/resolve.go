package usecases

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/0xcro3dile/memurbot-go/internal/domain/entities"
	"github.com/0xcro3dile/memurbot-go/internal/domain/ports"
)

// DefaultThreshold is the minimum similarity for a local answer.
const DefaultThreshold = 0.7

// AnswerResolver decides between a local match and escalation.
// It keeps no state between calls.
type AnswerResolver struct {
	matcher   *SimilarityMatcher
	escalator ports.Escalator
	threshold float64
	logger    *zap.Logger
}

// NewAnswerResolver creates an AnswerResolver. threshold must lie in [0,1].
func NewAnswerResolver(matcher *SimilarityMatcher, escalator ports.Escalator, threshold float64, logger *zap.Logger) (*AnswerResolver, error) {
	if threshold < 0 || threshold > 1 {
		return nil, fmt.Errorf("threshold %v outside [0,1]", threshold)
	}
	if matcher == nil {
		matcher = NewSimilarityMatcher()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnswerResolver{
		matcher:   matcher,
		escalator: escalator,
		threshold: threshold,
		logger:    logger,
	}, nil
}

// Threshold returns the configured similarity threshold.
func (r *AnswerResolver) Threshold() float64 { return r.threshold }

// Resolve returns an answer for query, or ok=false when there is none.
func (r *AnswerResolver) Resolve(ctx context.Context, query string, base entities.KnowledgeBase) (string, bool) {
	res := r.Answer(ctx, query, base)
	return res.Text, res.Found
}

// Answer is Resolve with the details of how the answer was found.
func (r *AnswerResolver) Answer(ctx context.Context, query string, base entities.KnowledgeBase) entities.Resolution {
	none := entities.Resolution{Source: entities.SourceNone}
	if strings.TrimSpace(query) == "" {
		return none
	}

	// 1. Local match
	match := r.matcher.BestMatch(query, base)
	none.Score = match.Score
	if match.Score >= r.threshold {
		if match.Pair == nil {
			// Threshold met with nothing to answer from.
			return none
		}
		r.logger.Debug("local match",
			zap.Float64("score", match.Score),
			zap.String("question", match.Pair.Question))
		return entities.Resolution{
			Text:     match.Pair.Answer,
			Found:    true,
			Source:   entities.SourceLocal,
			Score:    match.Score,
			Question: match.Pair.Question,
		}
	}

	// 2. Nothing to ground the model on
	if base.Empty() || r.escalator == nil {
		return none
	}

	// 3. Escalate
	r.logger.Debug("escalating",
		zap.Float64("score", match.Score),
		zap.Float64("threshold", r.threshold))
	text, ok := r.escalator.Ask(ctx, query, base)
	if !ok {
		return none
	}
	return entities.Resolution{
		Text:   text,
		Found:  true,
		Source: entities.SourceModel,
		Score:  match.Score,
	}
}

// Assistant binds a resolver to the current knowledge base. It is the single
// entry point presentation layers call.
type Assistant struct {
	resolver *AnswerResolver
	holder   *KnowledgeHolder
}

// NewAssistant creates an Assistant.
func NewAssistant(resolver *AnswerResolver, holder *KnowledgeHolder) *Assistant {
	return &Assistant{resolver: resolver, holder: holder}
}

// Submit resolves question against the current base.
func (a *Assistant) Submit(ctx context.Context, question string) (string, bool) {
	return a.resolver.Resolve(ctx, question, a.holder.Load())
}

// Explain resolves question and reports where the answer came from.
func (a *Assistant) Explain(ctx context.Context, question string) entities.Resolution {
	return a.resolver.Answer(ctx, question, a.holder.Load())
}

// KnowledgeSize returns the number of entries currently loaded.
func (a *Assistant) KnowledgeSize() int {
	return a.holder.Load().Len()
}

var _ ports.Submitter = (*Assistant)(nil)
