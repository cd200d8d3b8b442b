// Package engines invokes external simulation engines as subprocesses. Each
// engine reads a JSON request on stdin and writes a JSON result on stdout;
// stderr is forwarded to the logger line by line.
package engines

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"go.trai.ch/matsim/internal/core/domain"
	"go.trai.ch/matsim/internal/core/ports"
	"go.trai.ch/zerr"
)

// request is the JSON envelope written to an engine's stdin.
type request struct {
	Task      string                  `json:"task"`
	Mode      string                  `json:"mode,omitempty"`
	Structure *domain.StructureRecord `json:"structure"`
}

// runner executes one configured engine command.
type runner struct {
	task   string
	cmd    domain.EngineCommand
	logger ports.Logger
}

// configured reports whether the runner has a command to execute.
func (r *runner) configured() bool {
	return r.cmd.Configured()
}

// invoke runs the engine once and decodes its stdout into response.
func (r *runner) invoke(ctx context.Context, req request, response any) error {
	if !r.configured() {
		return zerr.With(domain.ErrEngineNotConfigured, "task", r.task)
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return zerr.Wrap(err, "failed to encode engine request")
	}

	//nolint:gosec // command comes from the user's own configuration
	cmd := exec.CommandContext(ctx, r.cmd.Command[0], r.cmd.Command[1:]...)
	cmd.Env = resolveEnvironment(os.Environ(), r.cmd.Environment)
	cmd.Stdin = bytes.NewReader(payload)

	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	stderrLog := &logWriter{logger: r.logger, prefix: r.task}
	cmd.Stderr = stderrLog

	runErr := cmd.Run()
	_ = stderrLog.Close()

	if runErr != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			exitCode = exitErr.ExitCode()
		}

		wrapped := zerr.Wrap(runErr, domain.ErrComputation.Error())
		wrapped = zerr.With(wrapped, "task", r.task)
		return zerr.With(wrapped, "exit_code", exitCode)
	}

	if err := json.Unmarshal(stdout.Bytes(), response); err != nil {
		wrapped := zerr.Wrap(err, domain.ErrEngineOutputInvalid.Error())
		return zerr.With(wrapped, "task", r.task)
	}

	return nil
}

// resolveEnvironment appends the configured engine environment to the process
// environment, overriding inherited values.
func resolveEnvironment(sysEnv []string, engineEnv map[string]string) []string {
	if len(engineEnv) == 0 {
		return sysEnv
	}

	env := make([]string, len(sysEnv), len(sysEnv)+len(engineEnv))
	copy(env, sysEnv)
	for k, v := range engineEnv {
		env = append(env, fmt.Sprintf("%s=%s", k, v))
	}
	return env
}

// logWriter forwards engine stderr lines to the logger.
type logWriter struct {
	logger ports.Logger
	prefix string
	buf    []byte
}

func (w *logWriter) Write(p []byte) (n int, err error) {
	w.buf = append(w.buf, p...)

	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		w.logLine(w.buf[:i])
		w.buf = w.buf[i+1:]
	}

	return len(p), nil
}

func (w *logWriter) Close() error {
	if len(w.buf) > 0 {
		w.logLine(w.buf)
		w.buf = nil
	}
	return nil
}

func (w *logWriter) logLine(line []byte) {
	msg := strings.TrimSuffix(string(line), "\r")
	if msg == "" {
		return
	}
	w.logger.Warn(w.prefix + ": " + msg)
}
