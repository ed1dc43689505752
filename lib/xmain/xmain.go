// Package xmain runs a command: it wires stdio, env, logging and flags into a State,
// stops the command on SIGINT/SIGTERM and maps its error to an exit code.
package xmain

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"oss.terrastruct.com/cmdlog"
	"oss.terrastruct.com/xos"

	ctxlog "oss.terrastruct.com/flowchart/lib/log"
)

// StopTimeout bounds how long a command may take to return once it has been signaled.
const StopTimeout = 10 * time.Second

type RunFunc func(context.Context, *State) error

func Main(run RunFunc) {
	ms := NewState(os.Args, os.Stdin, os.Stdout, os.Stderr, xos.NewEnv(os.Environ()))

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)

	err := ms.Main(ctxlog.Stderr(context.Background()), sigs, run)
	code, msg := ExitCode(err)
	if msg != "" {
		ms.Log.Error.Print(msg)
	}
	os.Exit(code)
}

type State struct {
	Name string

	Stdin  io.Reader
	Stdout io.WriteCloser
	Stderr io.WriteCloser

	Log  *cmdlog.Logger
	Env  *xos.Env
	Opts *Opts
}

// NewState builds a State from a full argv, program name first.
func NewState(argv []string, stdin io.Reader, stdout, stderr io.WriteCloser, env *xos.Env) *State {
	ms := &State{
		Stdin:  stdin,
		Stdout: stdout,
		Stderr: stderr,
		Env:    env,
	}
	var args []string
	if len(argv) > 0 {
		ms.Name = argv[0]
		args = argv[1:]
	}
	ms.Log = cmdlog.Log(env, stderr)
	ms.Opts = NewOpts(env, args)
	return ms
}

// Main calls run and cancels its context on the first signal. A command that returns
// context.Canceled after a signal has stopped cleanly.
func (ms *State) Main(ctx context.Context, sigs <-chan os.Signal, run RunFunc) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- run(ctx, ms)
	}()

	var sig os.Signal
	select {
	case err := <-done:
		return err
	case sig = <-sigs:
	}

	ms.Log.Warn.Printf("received %v: stopping", sig)
	cancel()

	timer := time.NewTimer(StopTimeout)
	defer timer.Stop()
	select {
	case err := <-done:
		if err == nil || errors.Is(err, context.Canceled) {
			return nil
		}
		return fmt.Errorf("failed to stop after %v: %w", sig, err)
	case <-timer.C:
		return ExitErrorf(1, "did not stop within %v of %v", StopTimeout, sig)
	}
}

// ExitCode maps the error returned by a command to its process exit code and the
// message to log. Usage errors exit with 2, like pflag does.
func ExitCode(err error) (int, string) {
	if err == nil {
		return 0, ""
	}
	var eerr ExitError
	if errors.As(err, &eerr) {
		return eerr.Code, eerr.Message
	}
	var uerr UsageError
	if errors.As(err, &uerr) {
		return 2, err.Error() + "\nRun with --help to see usage."
	}
	return 1, err.Error()
}

type ExitError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func ExitErrorf(code int, msg string, v ...interface{}) ExitError {
	return ExitError{
		Code:    code,
		Message: fmt.Sprintf(msg, v...),
	}
}

func (ee ExitError) Error() string {
	s := fmt.Sprintf("exiting with code %d", ee.Code)
	if ee.Message != "" {
		s += ": " + ee.Message
	}
	return s
}

type UsageError struct {
	Message string `json:"message"`
}

func UsageErrorf(msg string, v ...interface{}) UsageError {
	return UsageError{
		Message: fmt.Sprintf(msg, v...),
	}
}

func (ue UsageError) Error() string {
	return fmt.Sprintf("bad usage: %s", ue.Message)
}

// ReadPath reads fp, or stdin when fp is "-".
func (ms *State) ReadPath(fp string) ([]byte, error) {
	if fp == "-" {
		return io.ReadAll(ms.Stdin)
	}
	return os.ReadFile(fp)
}

// WritePath writes p to fp, creating missing parent directories, or to stdout when fp
// is "-".
func (ms *State) WritePath(fp string, p []byte) error {
	if fp == "-" {
		_, err := ms.Stdout.Write(p)
		return err
	}
	if err := os.MkdirAll(filepath.Dir(fp), 0755); err != nil {
		return err
	}
	return os.WriteFile(fp, p, 0644)
}

// HumanPath shortens fp relative to the working directory for log messages.
func (ms *State) HumanPath(fp string) string {
	if fp == "-" {
		return fp
	}
	wd, err := os.Getwd()
	if err != nil {
		return fp
	}
	rel, err := filepath.Rel(wd, fp)
	if err != nil {
		return fp
	}
	return rel
}
