package runner

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"
)

// waitDelay bounds how long Wait blocks on pipes after the process was killed
const waitDelay = 500 * time.Millisecond

type processSpec struct {
	argv    []string
	dir     string
	stdin   string
	timeout time.Duration
	limit   int
}

type processOutcome struct {
	stdout   string
	stderr   string
	exitCode int
	timedOut bool
	startErr error
}

// runProcess starts argv, feeds stdin then closes it, and waits at most spec.timeout.
// Output is trimmed.
func runProcess(ctx context.Context, spec processSpec) processOutcome {
	runCtx, cancel := context.WithTimeout(ctx, spec.timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, spec.argv[0], spec.argv[1:]...)
	cmd.Dir = spec.dir
	cmd.Stdin = strings.NewReader(spec.stdin)
	stdout := &cappedBuffer{limit: spec.limit}
	stderr := &cappedBuffer{limit: spec.limit}
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	cmd.WaitDelay = waitDelay
	killProcessGroup(cmd)

	err := cmd.Run()
	out := processOutcome{
		stdout: strings.TrimSpace(stdout.String()),
		stderr: strings.TrimSpace(stderr.String()),
	}
	if err == nil {
		return out
	}
	if runCtx.Err() != nil {
		out.timedOut = true
		out.stdout = ""
		return out
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		out.exitCode = exitErr.ExitCode()
		if out.exitCode == 0 {
			out.exitCode = -1
		}
		return out
	}
	out.startErr = err
	return out
}

// cappedBuffer keeps the first limit bytes and silently drops the rest so the
// child never blocks or fails on a full pipe
type cappedBuffer struct {
	buf   bytes.Buffer
	limit int
}

func (b *cappedBuffer) Write(p []byte) (int, error) {
	if b.limit <= 0 {
		return b.buf.Write(p)
	}
	if room := b.limit - b.buf.Len(); room > 0 {
		if len(p) > room {
			b.buf.Write(p[:room])
		} else {
			b.buf.Write(p)
		}
	}
	return len(p), nil
}

func (b *cappedBuffer) String() string {
	return b.buf.String()
}
