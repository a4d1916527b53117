package filewatcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/0xcro3dile/memurbot-go/internal/domain/ports"
)

func TestFSNotifyWatcher_Creation(t *testing.T) {
	watcher, err := NewFSNotifyWatcher(nil)
	require.NoError(t, err)
	require.NoError(t, watcher.Stop())
}

func TestFSNotifyWatcher_SeesTargetFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "soru_cevaplar.json")

	watcher, err := NewFSNotifyWatcher(zaptest.NewLogger(t))
	require.NoError(t, err)
	defer watcher.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	events, err := watcher.Watch(ctx, path)
	require.NoError(t, err)

	go func() {
		time.Sleep(100 * time.Millisecond)
		os.WriteFile(path, []byte("[]"), 0644)
	}()

	select {
	case event := <-events:
		if event.Operation != ports.FileCreated && event.Operation != ports.FileModified {
			t.Errorf("expected create or write event, got %v", event.Operation)
		}
	case <-ctx.Done():
		t.Error("timeout waiting for event")
	}
}

func TestFSNotifyWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()

	watcher, err := NewFSNotifyWatcher(nil)
	require.NoError(t, err)
	defer watcher.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	events, err := watcher.Watch(ctx, filepath.Join(dir, "soru_cevaplar.json"))
	require.NoError(t, err)

	os.WriteFile(filepath.Join(dir, "other.json"), []byte("{}"), 0644)

	select {
	case <-events:
		t.Error("should not receive event for other.json")
	case <-time.After(300 * time.Millisecond):
		// Expected - no event
	}
}

func TestFSNotifyWatcher_MissingDirectory(t *testing.T) {
	watcher, err := NewFSNotifyWatcher(nil)
	require.NoError(t, err)
	defer watcher.Stop()

	_, err = watcher.Watch(context.Background(), "/nonexistent/dir/kb.json")
	require.Error(t, err)
}
