package perltidy

import (
	"bytes"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
)

// DefaultExecutable is looked up on PATH when no executable is configured.
const DefaultExecutable = "perltidy"

// RCFile is the project-local configuration file perltidy reads. When
// auto-disable is active, its absence from the workspace root turns
// formatting off for that workspace.
const RCFile = ".perltidyrc"

// Settings is a read-only snapshot of the formatter configuration.
type Settings struct {
	Executable  string
	Profile     string
	AutoDisable bool
}

// Root identifies the workspace that owns a document. Path is empty when the
// root is not on a real filesystem.
type Root struct {
	URI  string
	Path string
}

// Handle wraps one started perltidy process together with the executable
// path used to start it. A process is a one-shot pipe: it reads source until
// stdin closes, writes the result once, and exits.
type Handle struct {
	ExecPath string
	cmd      *exec.Cmd
	stdin    io.WriteCloser
	stdout   bytes.Buffer
	stderr   bytes.Buffer
}

// Run feeds input to the process, closes its stdin to signal end of source,
// and waits for it to exit. On exit status zero it returns the accumulated
// stdout verbatim.
func (h *Handle) Run(input string) (string, error) {
	_, werr := io.WriteString(h.stdin, input)
	if cerr := h.stdin.Close(); werr == nil {
		werr = cerr
	}
	if err := h.cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", newExitError(exitErr.ExitCode(), h.stderr.String())
		}
		return "", err
	}
	if werr != nil {
		return "", werr
	}
	return h.stdout.String(), nil
}

// Pool keeps at most one started perltidy process per workspace root so a
// format request does not pay the start cost of the interpreter.
type Pool struct {
	mu       sync.Mutex
	handles  map[string]*Handle
	settings Settings
}

func NewPool(settings Settings) *Pool {
	return &Pool{
		handles:  make(map[string]*Handle),
		settings: settings,
	}
}

func (p *Pool) Settings() Settings {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.settings
}

func (p *Pool) SetSettings(settings Settings) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.settings = settings
}

// Disabled reports whether formatting is administratively off for root: the
// auto-disable setting is active and root has no .perltidyrc.
func (p *Pool) Disabled(root Root) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.disabledLocked(root)
}

func (p *Pool) disabledLocked(root Root) bool {
	if !p.settings.AutoDisable {
		return false
	}
	if root.Path == "" {
		return true
	}
	_, err := os.Stat(filepath.Join(root.Path, RCFile))
	return err != nil
}

// Acquire returns the cached handle for root, starting a fresh process when
// none is cached.
func (p *Pool) Acquire(root Root) (*Handle, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.disabledLocked(root) {
		return nil, &ConfigurationError{Reason: "formatting is disabled, no " + RCFile + " in workspace root"}
	}
	if handle, ok := p.handles[root.URI]; ok {
		return handle, nil
	}
	handle, err := p.start(root)
	if err != nil {
		return nil, err
	}
	p.handles[root.URI] = handle
	return handle, nil
}

// Release evicts handle after its process has terminated and pre-warms a
// replacement so the next request for root finds a started process. The
// warm start is best effort, a failure surfaces on the next Acquire instead.
func (p *Pool) Release(root Root, handle *Handle) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.handles[root.URI] == handle {
		delete(p.handles, root.URI)
	}
	if _, ok := p.handles[root.URI]; ok {
		return
	}
	if p.disabledLocked(root) {
		return
	}
	if fresh, err := p.start(root); err == nil {
		p.handles[root.URI] = fresh
	}
}

// Shutdown kills every cached process and empties the pool.
func (p *Pool) Shutdown() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for uri, handle := range p.handles {
		handle.stdin.Close()
		handle.cmd.Process.Kill()
		handle.cmd.Wait()
		delete(p.handles, uri)
	}
}

func (p *Pool) start(root Root) (*Handle, error) {
	execPath, dir := p.resolveCommand(root)

	// Complete output on stdout, and no trailing newline added by the tool
	// itself: newline presence in the input range must survive verbatim.
	args := []string{"--standard-output", "-no-add-terminal-newline"}
	if p.settings.Profile != "" {
		args = append(args, "--profile="+p.settings.Profile)
	}

	cmd := exec.Command(execPath, args...)
	cmd.Dir = dir
	handle := &Handle{ExecPath: execPath, cmd: cmd}
	cmd.Stdout = &handle.stdout
	cmd.Stderr = &handle.stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, err
	}
	handle.stdin = stdin

	if err := cmd.Start(); err != nil {
		return nil, newStartError(execPath, err)
	}
	return handle, nil
}

// resolveCommand resolves the configured executable and the working
// directory for the process. A relative executable that exists under the
// workspace root wins, anything else is left to the PATH lookup of the
// process launcher. The working directory is the workspace root so perltidy
// finds a project-local .perltidyrc, or "." for roots without a filesystem
// path.
func (p *Pool) resolveCommand(root Root) (string, string) {
	executable := p.settings.Executable
	if executable == "" {
		executable = DefaultExecutable
	}
	if !filepath.IsAbs(executable) && root.Path != "" {
		local := filepath.Join(root.Path, executable)
		if _, err := os.Stat(local); err == nil {
			return local, root.Path
		}
	}
	if root.Path == "" {
		return executable, "."
	}
	return executable, root.Path
}
