// Package loader provides knowledge file loading adapters.
// Clean Architecture: Adapter implementing ports.KnowledgeLoader.
package loader

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/0xcro3dile/memurbot-go/internal/domain/entities"
)

// ErrMalformed is wrapped by every parse or shape error.
var ErrMalformed = errors.New("malformed knowledge file")

// entry is one object of the knowledge file. The key names are shared with
// existing data files and must not change.
type entry struct {
	Question *string `json:"soru" yaml:"soru"`
	Answer   *string `json:"cevap" yaml:"cevap"`
}

// JSONLoader loads knowledge files of the form [{"soru": ..., "cevap": ...}].
type JSONLoader struct{}

// NewJSONLoader creates a new JSON knowledge loader.
func NewJSONLoader() *JSONLoader {
	return &JSONLoader{}
}

// Load reads a JSON knowledge file from the given path.
func (l *JSONLoader) Load(ctx context.Context, path string) (entities.KnowledgeBase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return entities.KnowledgeBase{}, err
	}

	var entries []entry
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&entries); err != nil {
		return entities.KnowledgeBase{}, fmt.Errorf("%w: decoding %s: %v", ErrMalformed, filepath.Base(path), err)
	}
	if dec.More() {
		return entities.KnowledgeBase{}, fmt.Errorf("%w: trailing data in %s", ErrMalformed, filepath.Base(path))
	}
	return toBase(entries)
}

// SupportedExtensions returns file extensions this loader handles.
func (l *JSONLoader) SupportedExtensions() []string {
	return []string{".json"}
}

// YAMLLoader loads knowledge files written as a YAML sequence.
type YAMLLoader struct{}

// NewYAMLLoader creates a new YAML knowledge loader.
func NewYAMLLoader() *YAMLLoader {
	return &YAMLLoader{}
}

// Load reads a YAML knowledge file from the given path.
func (l *YAMLLoader) Load(ctx context.Context, path string) (entities.KnowledgeBase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return entities.KnowledgeBase{}, err
	}

	var entries []entry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return entities.KnowledgeBase{}, fmt.Errorf("%w: decoding %s: %v", ErrMalformed, filepath.Base(path), err)
	}
	return toBase(entries)
}

// SupportedExtensions returns file extensions this loader handles.
func (l *YAMLLoader) SupportedExtensions() []string {
	return []string{".yaml", ".yml"}
}

// toBase rejects the whole file if any entry lacks a key.
func toBase(entries []entry) (entities.KnowledgeBase, error) {
	pairs := make([]entities.QAPair, 0, len(entries))
	for i, e := range entries {
		if e.Question == nil || e.Answer == nil {
			return entities.KnowledgeBase{}, fmt.Errorf("%w: entry %d needs both soru and cevap", ErrMalformed, i)
		}
		pairs = append(pairs, entities.QAPair{Question: *e.Question, Answer: *e.Answer})
	}
	return entities.NewKnowledgeBase(pairs), nil
}

type knowledgeLoader interface {
	Load(context.Context, string) (entities.KnowledgeBase, error)
}

// MultiLoader combines multiple loaders.
type MultiLoader struct {
	loaders map[string]knowledgeLoader
}

// NewMultiLoader creates a loader that handles multiple file types.
func NewMultiLoader() *MultiLoader {
	yamlLoader := NewYAMLLoader()
	return &MultiLoader{
		loaders: map[string]knowledgeLoader{
			".json": NewJSONLoader(),
			".yaml": yamlLoader,
			".yml":  yamlLoader,
		},
	}
}

// Load dispatches to the appropriate loader based on extension.
func (m *MultiLoader) Load(ctx context.Context, path string) (entities.KnowledgeBase, error) {
	ext := strings.ToLower(filepath.Ext(path))
	loader, ok := m.loaders[ext]
	if !ok {
		// Default to JSON
		loader = m.loaders[".json"]
	}
	return loader.Load(ctx, path)
}

// SupportedExtensions returns all supported extensions.
func (m *MultiLoader) SupportedExtensions() []string {
	exts := make([]string, 0, len(m.loaders))
	for ext := range m.loaders {
		exts = append(exts, ext)
	}
	return exts
}
