package usecases

import (
	"context"
	"os"
	"sync"

	"github.com/0xcro3dile/memurbot-go/internal/domain/entities"
	"github.com/0xcro3dile/memurbot-go/internal/domain/ports"
)

// mockLLM implements ports.LLMService for testing
type mockLLM struct {
	mu       sync.Mutex
	response string
	err      error
	prompts  []string
}

func (m *mockLLM) Generate(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prompts = append(m.prompts, prompt)
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

func (m *mockLLM) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.prompts)
}

// mockEscalator implements ports.Escalator for testing
type mockEscalator struct {
	answer string
	ok     bool
	calls  int
}

func (m *mockEscalator) Ask(ctx context.Context, query string, base entities.KnowledgeBase) (string, bool) {
	m.calls++
	return m.answer, m.ok
}

// mockLoader implements ports.KnowledgeLoader for testing
type mockLoader struct {
	mu    sync.Mutex
	bases []entities.KnowledgeBase
	errs  []error
	calls int
}

func (m *mockLoader) Load(ctx context.Context, path string) (entities.KnowledgeBase, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.calls
	m.calls++
	if i < len(m.errs) && m.errs[i] != nil {
		return entities.KnowledgeBase{}, m.errs[i]
	}
	if i < len(m.bases) {
		return m.bases[i], nil
	}
	return entities.KnowledgeBase{}, &os.PathError{Op: "open", Path: path, Err: os.ErrNotExist}
}

func (m *mockLoader) SupportedExtensions() []string { return []string{".json"} }

var (
	_ ports.LLMService      = (*mockLLM)(nil)
	_ ports.Escalator       = (*mockEscalator)(nil)
	_ ports.KnowledgeLoader = (*mockLoader)(nil)
)
