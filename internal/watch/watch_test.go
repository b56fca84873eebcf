package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDebounce = 50 * time.Millisecond

func startWatcher(t *testing.T, root string, ignore ...string) *Watcher {
	t.Helper()
	w, err := New(root, testDebounce, nil)
	require.NoError(t, err)
	w.Ignore(ignore...)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(func() {
		cancel()
		w.Stop()
	})
	require.NoError(t, w.Start(ctx))
	return w
}

func waitChange(t *testing.T, w *Watcher) {
	t.Helper()
	select {
	case <-w.Changes():
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for change signal")
	}
}

func TestNew_DefaultDebounce(t *testing.T) {
	w, err := New(t.TempDir(), 0, nil)
	require.NoError(t, err)
	defer w.Stop()
	assert.Equal(t, DefaultDebounce, w.debounce)
}

func TestWatcher_FileWrite(t *testing.T) {
	root := t.TempDir()
	w := startWatcher(t, root)

	require.NoError(t, os.WriteFile(filepath.Join(root, "a.md"), []byte("a"), 0644))
	waitChange(t, w)
}

func TestWatcher_ExistingSubdirectory(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "nested", "deep")
	require.NoError(t, os.MkdirAll(sub, 0755))
	w := startWatcher(t, root)

	require.NoError(t, os.WriteFile(filepath.Join(sub, "b.md"), []byte("b"), 0644))
	waitChange(t, w)
}

func TestWatcher_NewSubdirectory(t *testing.T) {
	root := t.TempDir()
	w := startWatcher(t, root)

	sub := filepath.Join(root, "later")
	require.NoError(t, os.Mkdir(sub, 0755))
	waitChange(t, w)

	require.NoError(t, os.WriteFile(filepath.Join(sub, "c.md"), []byte("c"), 0644))
	waitChange(t, w)
}

func TestWatcher_BurstCoalesced(t *testing.T) {
	root := t.TempDir()
	w := startWatcher(t, root)

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(root, "burst.md"), []byte{byte('0' + i)}, 0644))
	}
	waitChange(t, w)

	select {
	case <-w.Changes():
		t.Fatal("burst should produce a single signal")
	case <-time.After(4 * testDebounce):
	}
}

func TestWatcher_IgnoredFiles(t *testing.T) {
	root := t.TempDir()
	ignored := filepath.Join(root, "AGENTS.md")
	w := startWatcher(t, root, ignored)

	require.NoError(t, os.WriteFile(ignored, []byte("generated"), 0644))
	select {
	case <-w.Changes():
		t.Fatal("write to an ignored file should not signal")
	case <-time.After(4 * testDebounce):
	}

	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.md"), []byte("n"), 0644))
	waitChange(t, w)
}

func TestWatcher_IgnoreMatchesRelativePaths(t *testing.T) {
	root := t.TempDir()
	t.Chdir(root)
	require.NoError(t, os.Mkdir("ctx", 0755))

	w, err := New("ctx", testDebounce, nil)
	require.NoError(t, err)
	w.Ignore("./ctx/../ctx/AGENTS.md")

	assert.True(t, w.isIgnored(filepath.Join("ctx", "AGENTS.md")))
	assert.True(t, w.isIgnored(filepath.Join(root, "ctx", "AGENTS.md")))
	assert.False(t, w.isIgnored(filepath.Join("ctx", "CLAUDE.md")))
	w.Stop()
}

func TestWatcher_StopIdempotent(t *testing.T) {
	w, err := New(t.TempDir(), testDebounce, nil)
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))

	w.Stop()
	w.Stop()
}

func TestWatcher_StartMissingRoot(t *testing.T) {
	w, err := New(filepath.Join(t.TempDir(), "missing"), testDebounce, nil)
	require.NoError(t, err)
	defer w.Stop()

	assert.Error(t, w.Start(context.Background()))
}
