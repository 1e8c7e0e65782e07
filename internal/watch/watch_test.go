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

func TestRunTriggersOnChange(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "src"), 0o755))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	calls := make(chan struct{}, 8)
	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, Options{Root: dir, Debounce: 20 * time.Millisecond}, func(context.Context) {
			calls <- struct{}{}
		})
	}()

	waitCall(t, calls)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "src", "lib.rs"), []byte("unsafe {}\n"), 0o644))
	waitCall(t, calls)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRunIgnoresFilteredPaths(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	calls := make(chan struct{}, 8)
	go func() {
		_ = Run(ctx, Options{
			Root:     dir,
			Debounce: 20 * time.Millisecond,
			Ignore:   func(p string) bool { return filepath.Ext(p) == ".log" },
		}, func(context.Context) { calls <- struct{}{} })
	}()

	waitCall(t, calls)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "out.log"), []byte("x"), 0o644))
	select {
	case <-calls:
		t.Fatal("ignored path triggered a run")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestRunMissingRoot(t *testing.T) {
	err := Run(context.Background(), Options{Root: filepath.Join(t.TempDir(), "nope")}, func(context.Context) {})
	assert.Error(t, err)
}

func TestRunIgnoresNewlyCreatedSkippedDirs(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	calls := make(chan struct{}, 8)
	go func() {
		_ = Run(ctx, Options{Root: dir, Debounce: 20 * time.Millisecond}, func(context.Context) {
			calls <- struct{}{}
		})
	}()

	waitCall(t, calls)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "target", "debug"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "target", "build.o"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "target", "debug", "app"), []byte("x"), 0o644))
	select {
	case <-calls:
		t.Fatal("build output under target/ triggered a run")
	case <-time.After(200 * time.Millisecond):
	}

	// 通常のディレクトリは引き続き監視される
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "src"), 0o755))
	waitCall(t, calls)
}

func TestSkipPath(t *testing.T) {
	assert.True(t, skipPath("/repo", "/repo/.git/index"))
	assert.False(t, skipPath("/repo", "/repo/src/git.go"))
	assert.True(t, skipPath("/repo", "/repo/target"))
	assert.True(t, skipPath("/repo", "/repo/web/node_modules/x/index.js"))
	assert.False(t, skipPath("/work/target/repo", "/work/target/repo/src/lib.rs"))
	assert.True(t, skipDir("node_modules"))
	assert.False(t, skipDir("src"))
}

func waitCall(t *testing.T, calls <-chan struct{}) {
	t.Helper()
	select {
	case <-calls:
	case <-time.After(5 * time.Second):
		t.Fatal("callback was not invoked")
	}
}
