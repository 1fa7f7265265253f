package mpv

import (
	"fmt"
	"io"
	"os/exec"
	"time"
)

// SpawnMode selects how the stream URL reaches the engine.
type SpawnMode int

const (
	// DirectMode passes the URL on the command line; playback starts
	// immediately and the connect loop races the engine's own startup.
	DirectMode SpawnMode = iota
	// IdleLoadMode starts the engine idle and loads the URL over the
	// channel once connected. Required where the engine would exit before
	// creating the endpoint when not fed a persistent input.
	IdleLoadMode
)

// DefaultSpawnMode returns the mode the current platform needs.
func DefaultSpawnMode() SpawnMode {
	return platformSpawnMode()
}

// ErrEngineNotFound means no mpv binary is on PATH.
var ErrEngineNotFound = fmt.Errorf("mpv not found on PATH (install mpv and make sure it is reachable)")

// FindEngine locates the mpv executable, preferring an explicit override.
func FindEngine(override string) (string, error) {
	if override != "" {
		return override, nil
	}
	for _, name := range []string{"mpv", "mpv.exe"} {
		if path, err := exec.LookPath(name); err == nil {
			return path, nil
		}
	}
	return "", ErrEngineNotFound
}

// BuildArgs assembles the engine command line: audio-only, quiet, terminal
// input disabled, IPC endpoint at socketPath, then the caller's extra
// playback args. In DirectMode the URL goes last; in IdleLoadMode the
// engine starts idle and stdin stays untouched.
func BuildArgs(url, socketPath string, mode SpawnMode, extra []string) []string {
	args := []string{
		"--no-video", "--vid=no",
		"--really-quiet", "--quiet",
		"--input-terminal=no",
		"--input-ipc-server=" + socketPath,
	}
	if mode == IdleLoadMode {
		args = append(args, "--idle")
	} else {
		args = append(args, "--input-file=-")
	}
	args = append(args, extra...)
	if mode == DirectMode {
		args = append(args, url)
	}
	return args
}

// Engine is a spawned mpv process. A goroutine reaps it as soon as it
// exits so Running never needs a blocking wait.
type Engine struct {
	cmd   *exec.Cmd
	stdin io.WriteCloser
	done  chan struct{}
	mode  SpawnMode
}

// Spawn launches the engine for url with the control endpoint at
// socketPath.
func Spawn(bin, url, socketPath string, mode SpawnMode, extra []string) (*Engine, error) {
	return start(bin, BuildArgs(url, socketPath, mode, extra), mode)
}

func start(bin string, args []string, mode SpawnMode) (*Engine, error) {
	cmd := exec.Command(bin, args...)
	var stdin io.WriteCloser
	if mode == DirectMode {
		pipe, err := cmd.StdinPipe()
		if err != nil {
			return nil, fmt.Errorf("engine stdin: %w", err)
		}
		stdin = pipe
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start engine: %w", err)
	}
	e := &Engine{cmd: cmd, stdin: stdin, done: make(chan struct{}), mode: mode}
	go func() {
		_ = cmd.Wait()
		close(e.done)
	}()
	return e, nil
}

// Mode returns the spawn mode the engine was started with.
func (e *Engine) Mode() SpawnMode { return e.mode }

// Running reports whether the process is still alive.
func (e *Engine) Running() bool {
	select {
	case <-e.done:
		return false
	default:
		return true
	}
}

// ExitCode returns the reaped exit code, or -1 while still running.
func (e *Engine) ExitCode() int {
	select {
	case <-e.done:
		if e.cmd.ProcessState == nil {
			return -1
		}
		return e.cmd.ProcessState.ExitCode()
	default:
		return -1
	}
}

// SendInput writes a plain-text command line to the engine's stdin. This is
// the reduced control path used when the IPC channel never came up.
func (e *Engine) SendInput(line string) bool {
	if e.stdin == nil {
		return false
	}
	if _, err := io.WriteString(e.stdin, line+"\n"); err != nil {
		return false
	}
	return true
}

// WaitExit blocks until the process exits or grace elapses.
func (e *Engine) WaitExit(grace time.Duration) bool {
	select {
	case <-e.done:
		return true
	case <-time.After(grace):
		return false
	}
}

// Kill force-terminates the process and reaps it.
func (e *Engine) Kill() {
	if e.Running() {
		_ = e.cmd.Process.Kill()
	}
	<-e.done
}

// Shutdown escalates from the polite quit the caller already issued: wait a
// short grace window, then kill. The reaped exit code is returned, with
// forced kills reported as 0 since the stop was ours.
func (e *Engine) Shutdown(grace time.Duration) int {
	if e.WaitExit(grace) {
		code := e.ExitCode()
		if code < 0 {
			return 0
		}
		return code
	}
	e.Kill()
	return 0
}
