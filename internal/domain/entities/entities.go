// Package entities contains core business entities.
// These are the enterprise business rules - pure domain objects with no external dependencies.
package entities

import "fmt"

// QAPair is a known question with its answer.
// Immutable once loaded; duplicate questions are allowed.
type QAPair struct {
	Question string
	Answer   string
}

// KnowledgeBase is the ordered, read-only list of QAPairs loaded at startup.
// The zero value is an empty base, which is a valid state.
type KnowledgeBase struct {
	pairs []QAPair
}

// NewKnowledgeBase copies pairs into a new base so later changes to the
// caller's slice never leak into it.
func NewKnowledgeBase(pairs []QAPair) KnowledgeBase {
	if len(pairs) == 0 {
		return KnowledgeBase{}
	}
	cp := make([]QAPair, len(pairs))
	copy(cp, pairs)
	return KnowledgeBase{pairs: cp}
}

// Len returns the number of pairs.
func (kb KnowledgeBase) Len() int { return len(kb.pairs) }

// Empty reports whether the base holds no pairs.
func (kb KnowledgeBase) Empty() bool { return len(kb.pairs) == 0 }

// Pair returns the i-th pair in load order.
func (kb KnowledgeBase) Pair(i int) QAPair { return kb.pairs[i] }

// Pairs returns a copy of all pairs in load order.
func (kb KnowledgeBase) Pairs() []QAPair {
	cp := make([]QAPair, len(kb.pairs))
	copy(cp, kb.pairs)
	return cp
}

// MatchResult is the best local candidate for a query.
// Pair is nil when the base was empty.
type MatchResult struct {
	Pair  *QAPair
	Score float64 // in [0,1]
}

// Source tells where an answer came from.
type Source string

const (
	SourceNone  Source = "none"
	SourceLocal Source = "local"
	SourceModel Source = "model"
)

// Resolution is the outcome of resolving one question.
type Resolution struct {
	Text     string
	Found    bool
	Source   Source
	Score    float64 // best local similarity, even when escalated
	Question string  // matched stored question, if any
}

// WarningKind classifies a non-fatal knowledge loading problem.
type WarningKind int

const (
	WarningMissing WarningKind = iota
	WarningMalformed
)

func (k WarningKind) String() string {
	switch k {
	case WarningMissing:
		return "missing"
	case WarningMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// ConfigWarning reports that the knowledge file could not be used.
// The system keeps running with an empty base.
type ConfigWarning struct {
	Kind WarningKind
	Path string
	Err  error
}

func (w *ConfigWarning) Error() string {
	return fmt.Sprintf("knowledge file %s is %s: %v", w.Path, w.Kind, w.Err)
}

func (w *ConfigWarning) Unwrap() error { return w.Err }
