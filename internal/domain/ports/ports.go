// Package ports defines interfaces for external dependencies.
// Clean Architecture: These are the boundaries - usecases depend on these abstractions,
// not concrete implementations. Adapters implement these interfaces.
package ports

import (
	"context"
	"errors"
	"fmt"

	"github.com/0xcro3dile/memurbot-go/internal/domain/entities"
)

// LLMService sends one prompt to a generative model and returns its text.
// Failures are reported as *LLMError so callers never see the client's shape.
type LLMService interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// KnowledgeLoader reads question/answer pairs from a file.
type KnowledgeLoader interface {
	// Load reads the file at path. Missing files return an error wrapping os.ErrNotExist.
	Load(ctx context.Context, path string) (entities.KnowledgeBase, error)

	// SupportedExtensions returns file extensions this loader handles.
	SupportedExtensions() []string
}

// Escalator asks the model when no local answer is close enough.
// ok is false when the call failed or produced nothing.
type Escalator interface {
	Ask(ctx context.Context, query string, base entities.KnowledgeBase) (answer string, ok bool)
}

// Submitter is what a presentation layer needs from the core.
type Submitter interface {
	Submit(ctx context.Context, question string) (answer string, ok bool)
}

// ErrorKind classifies a failed model call.
type ErrorKind int

const (
	ErrorTransport ErrorKind = iota
	ErrorAuth
	ErrorQuota
	ErrorModel
	ErrorEmpty
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorTransport:
		return "transport"
	case ErrorAuth:
		return "auth"
	case ErrorQuota:
		return "quota"
	case ErrorModel:
		return "model"
	case ErrorEmpty:
		return "empty"
	default:
		return "unknown"
	}
}

// LLMError wraps an adapter failure with its kind.
type LLMError struct {
	Kind ErrorKind
	Err  error
}

func (e *LLMError) Error() string {
	return fmt.Sprintf("llm %s error: %v", e.Kind, e.Err)
}

func (e *LLMError) Unwrap() error { return e.Err }

// KindOf returns the kind of err, defaulting to ErrorTransport for
// errors an adapter did not classify.
func KindOf(err error) ErrorKind {
	var le *LLMError
	if errors.As(err, &le) {
		return le.Kind
	}
	return ErrorTransport
}

// KindForStatus maps an HTTP status code to an ErrorKind.
func KindForStatus(code int) ErrorKind {
	switch {
	case code == 401 || code == 403:
		return ErrorAuth
	case code == 429:
		return ErrorQuota
	case code >= 400:
		return ErrorModel
	default:
		return ErrorTransport
	}
}

// FileWatcher monitors a file for changes.
type FileWatcher interface {
	// Watch starts monitoring path and emits events for it.
	Watch(ctx context.Context, path string) (<-chan FileEvent, error)

	// Stop stops the watcher.
	Stop() error
}

// FileEvent represents a file system change.
type FileEvent struct {
	Path      string
	Operation FileOperation
}

// FileOperation is the type of file change.
type FileOperation int

const (
	FileCreated FileOperation = iota
	FileModified
	FileDeleted
)
