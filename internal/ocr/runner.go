package ocr

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"time"
)

// Runner is the seam between the engine and the external extraction
// binaries; tests substitute a canned implementation.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	var out, errb bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &out
	cmd.Stderr = &errb

	start := time.Now()
	err := cmd.Run()
	slog.Debug("ocr.exec", "cmd", name, "duration_ms", time.Since(start).Milliseconds(), "error", err)

	if err != nil {
		return out.Bytes(), errb.Bytes(), fmt.Errorf("%s: %w: %s", name, err, stderrTail(errb.String()))
	}
	return out.Bytes(), errb.Bytes(), nil
}

// stderrTail keeps the last lines of stderr, where the binaries put
// the actionable message.
func stderrTail(s string) string {
	const keep = 512
	if len(s) <= keep {
		return s
	}
	return "..." + s[len(s)-keep:]
}
