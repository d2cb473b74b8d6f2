package perltidy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeScript drops an executable stand-in for perltidy into dir. The
// scripts ignore the perltidy arguments, which is all the tests need.
func writeScript(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755))
	return path
}

func testRoot(t *testing.T) (Root, string) {
	t.Helper()
	dir := t.TempDir()
	return Root{URI: "file://" + dir, Path: dir}, dir
}

func TestAcquireCachesHandlePerRoot(t *testing.T) {
	root, dir := testRoot(t)
	writeScript(t, dir, "tidy.sh", "cat")
	pool := NewPool(Settings{Executable: "tidy.sh"})
	t.Cleanup(pool.Shutdown)

	h1, err := pool.Acquire(root)
	require.NoError(t, err)
	h2, err := pool.Acquire(root)
	require.NoError(t, err)
	require.Same(t, h1, h2)

	other, otherDir := testRoot(t)
	writeScript(t, otherDir, "tidy.sh", "cat")
	h3, err := pool.Acquire(other)
	require.NoError(t, err)
	require.NotSame(t, h1, h3)
}

func TestResolveCommand(t *testing.T) {
	root, dir := testRoot(t)
	writeScript(t, dir, "tidy.sh", "cat")

	t.Run("relative executable under root", func(t *testing.T) {
		pool := NewPool(Settings{Executable: "tidy.sh"})
		execPath, workDir := pool.resolveCommand(root)
		require.Equal(t, filepath.Join(dir, "tidy.sh"), execPath)
		require.Equal(t, dir, workDir)
	})

	t.Run("unresolved name passes through", func(t *testing.T) {
		pool := NewPool(Settings{Executable: "sometool"})
		execPath, workDir := pool.resolveCommand(root)
		require.Equal(t, "sometool", execPath)
		require.Equal(t, dir, workDir)
	})

	t.Run("empty setting defaults to perltidy", func(t *testing.T) {
		pool := NewPool(Settings{})
		execPath, _ := pool.resolveCommand(root)
		require.Equal(t, DefaultExecutable, execPath)
	})

	t.Run("virtual root defaults to dot", func(t *testing.T) {
		pool := NewPool(Settings{Executable: "sometool"})
		_, workDir := pool.resolveCommand(Root{URI: "untitled:workspace"})
		require.Equal(t, ".", workDir)
	})
}

func TestAcquireAutoDisable(t *testing.T) {
	root, dir := testRoot(t)
	writeScript(t, dir, "tidy.sh", "cat")
	pool := NewPool(Settings{Executable: "tidy.sh", AutoDisable: true})
	t.Cleanup(pool.Shutdown)

	_, err := pool.Acquire(root)
	var confErr *ConfigurationError
	require.ErrorAs(t, err, &confErr)

	require.NoError(t, os.WriteFile(filepath.Join(dir, RCFile), nil, 0o644))
	_, err = pool.Acquire(root)
	require.NoError(t, err)
}

func TestReleaseEvictsAndPrewarms(t *testing.T) {
	root, dir := testRoot(t)
	writeScript(t, dir, "tidy.sh", "cat")
	pool := NewPool(Settings{Executable: "tidy.sh"})
	t.Cleanup(pool.Shutdown)

	h1, err := pool.Acquire(root)
	require.NoError(t, err)
	out, err := h1.Run("foo\n")
	require.NoError(t, err)
	require.Equal(t, "foo\n", out)

	pool.Release(root, h1)

	// The consumed process must not be handed out again.
	h2, err := pool.Acquire(root)
	require.NoError(t, err)
	require.NotSame(t, h1, h2)
}

func TestRunPreservesTrailingNewlinePresence(t *testing.T) {
	root, dir := testRoot(t)
	writeScript(t, dir, "tidy.sh", "cat")
	pool := NewPool(Settings{Executable: "tidy.sh"})
	t.Cleanup(pool.Shutdown)

	h, err := pool.Acquire(root)
	require.NoError(t, err)
	out, err := h.Run("foo\n")
	require.NoError(t, err)
	require.Equal(t, "foo\n", out)
	pool.Release(root, h)

	h, err = pool.Acquire(root)
	require.NoError(t, err)
	out, err = h.Run("foo")
	require.NoError(t, err)
	require.Equal(t, "foo", out)
	pool.Release(root, h)
}

func TestRunNonzeroExit(t *testing.T) {
	root, dir := testRoot(t)
	writeScript(t, dir, "fail.sh", "echo 'syntax error at line 2' >&2\nexit 2")
	pool := NewPool(Settings{Executable: "fail.sh"})
	t.Cleanup(pool.Shutdown)

	h, err := pool.Acquire(root)
	require.NoError(t, err)
	_, err = h.Run("my $x=1;\n")
	var formatErr *FormatError
	require.ErrorAs(t, err, &formatErr)
	require.Contains(t, formatErr.Message, "status 2")
	require.Contains(t, formatErr.Message, "syntax error at line 2")
}

func TestRunNonzeroExitWithoutStderr(t *testing.T) {
	root, dir := testRoot(t)
	writeScript(t, dir, "fail.sh", "exit 3")
	pool := NewPool(Settings{Executable: "fail.sh"})
	t.Cleanup(pool.Shutdown)

	h, err := pool.Acquire(root)
	require.NoError(t, err)
	_, err = h.Run("my $x=1;\n")
	require.EqualError(t, err, "perltidy exited with status 3")
}

func TestStartErrorHint(t *testing.T) {
	root, dir := testRoot(t)

	pool := NewPool(Settings{Executable: filepath.Join(dir, "missing", DefaultExecutable)})
	_, err := pool.Acquire(root)
	var formatErr *FormatError
	require.ErrorAs(t, err, &formatErr)
	require.Contains(t, formatErr.Message, "installed")

	pool = NewPool(Settings{Executable: filepath.Join(dir, "missing", "sometool")})
	_, err = pool.Acquire(root)
	require.ErrorAs(t, err, &formatErr)
	require.NotContains(t, formatErr.Message, "installed")
}
