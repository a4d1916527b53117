package usecases

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/0xcro3dile/memurbot-go/internal/domain/entities"
)

func TestKnowledgeStore_Loaded(t *testing.T) {
	want := entities.NewKnowledgeBase([]entities.QAPair{{Question: "q", Answer: "a"}})
	store := NewKnowledgeStore(&mockLoader{bases: []entities.KnowledgeBase{want}}, zaptest.NewLogger(t))

	got, warning := store.Load(context.Background(), "kb.json")

	assert.Nil(t, warning)
	if diff := cmp.Diff(want.Pairs(), got.Pairs()); diff != "" {
		t.Errorf("base mismatch (-want +got):\n%s", diff)
	}
}

func TestKnowledgeStore_MissingFile(t *testing.T) {
	store := NewKnowledgeStore(&mockLoader{}, zaptest.NewLogger(t))

	got, warning := store.Load(context.Background(), "/nonexistent/kb.json")

	assert.True(t, got.Empty())
	require.NotNil(t, warning)
	assert.Equal(t, entities.WarningMissing, warning.Kind)
	assert.True(t, errors.Is(warning, os.ErrNotExist))
}

func TestKnowledgeStore_MalformedFile(t *testing.T) {
	loader := &mockLoader{errs: []error{errors.New("invalid character '}'")}}
	store := NewKnowledgeStore(loader, nil)

	got, warning := store.Load(context.Background(), "kb.json")

	assert.True(t, got.Empty())
	require.NotNil(t, warning)
	assert.Equal(t, entities.WarningMalformed, warning.Kind)
}

func TestKnowledgeHolder_Swap(t *testing.T) {
	first := entities.NewKnowledgeBase([]entities.QAPair{{Question: "1", Answer: "1"}})
	second := entities.NewKnowledgeBase([]entities.QAPair{{Question: "2", Answer: "2"}, {Question: "3", Answer: "3"}})

	h := NewKnowledgeHolder(first)
	held := h.Load()
	h.Store(second)

	assert.Equal(t, 1, held.Len(), "previously read base must not change")
	assert.Equal(t, 2, h.Load().Len())
}

func TestKnowledgeHolder_ZeroValue(t *testing.T) {
	var h KnowledgeHolder
	assert.True(t, h.Load().Empty())
}
