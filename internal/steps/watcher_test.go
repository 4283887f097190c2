package steps

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// Not parallel: goleak needs a quiet goroutine baseline.
func TestWatcherReloadsOnWrite(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	dir := t.TempDir()
	path := filepath.Join(dir, "flow.json")
	require.NoError(t, os.WriteFile(path, testDocumentJSON(t), 0644))

	reloaded := make(chan int, 4)
	w, err := WatchFile(path, func(seq *Sequence, initial map[string]any) {
		reloaded <- seq.Len()
	})
	require.NoError(t, err)
	defer func() { require.NoError(t, w.Close()) }()

	// Shrink the flow to two steps and rewrite the file.
	doc := Document{Steps: []Step{
		{ID: "hello", Type: TypeMessages, Messages: []string{"hi"}, NextStep: "focus"},
		{ID: "focus", Type: TypeInput, Question: "Focus?", Field: "currentFocus"},
	}}
	data, err := json.Marshal(doc)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0644))

	select {
	case n := <-reloaded:
		assert.Equal(t, 2, n)
	case <-time.After(3 * time.Second):
		t.Fatal("watcher never fired")
	}
}

func TestWatcherRejectsInvalidRewrite(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	dir := t.TempDir()
	path := filepath.Join(dir, "flow.json")
	require.NoError(t, os.WriteFile(path, testDocumentJSON(t), 0644))

	reloaded := make(chan struct{}, 4)
	w, err := WatchFile(path, func(*Sequence, map[string]any) {
		reloaded <- struct{}{}
	})
	require.NoError(t, err)
	defer func() { require.NoError(t, w.Close()) }()

	// A broken rewrite must not reach the callback.
	require.NoError(t, os.WriteFile(path, []byte("{ not json"), 0644))

	select {
	case <-reloaded:
		t.Fatal("invalid document must not trigger a reload")
	case <-time.After(800 * time.Millisecond):
	}
}

func TestWatcherIgnoresSiblingFiles(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	dir := t.TempDir()
	path := filepath.Join(dir, "flow.json")
	require.NoError(t, os.WriteFile(path, testDocumentJSON(t), 0644))

	reloaded := make(chan struct{}, 4)
	w, err := WatchFile(path, func(*Sequence, map[string]any) {
		reloaded <- struct{}{}
	})
	require.NoError(t, err)
	defer func() { require.NoError(t, w.Close()) }()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.json"), []byte("{}"), 0644))

	select {
	case <-reloaded:
		t.Fatal("sibling file write must not trigger a reload")
	case <-time.After(800 * time.Millisecond):
	}
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	dir := t.TempDir()
	path := filepath.Join(dir, "flow.json")
	require.NoError(t, os.WriteFile(path, testDocumentJSON(t), 0644))

	w, err := WatchFile(path, func(*Sequence, map[string]any) {})
	require.NoError(t, err)

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
}
