package ocr

import (
	"bytes"
	"context"
	"log/slog"
	"os/exec"
	"strings"
	"time"
)

// Runner abstracts the external tool invocations (pdftotext, pdftoppm,
// tesseract) so tests can stub them.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
}

// execRunner shells out through exec.CommandContext and logs every
// invocation through the extractor's logger.
type execRunner struct {
	logger *slog.Logger
}

func (r execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	start := time.Now()

	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	elapsed := time.Since(start)

	if err != nil {
		r.logger.Error("tool failed",
			"tool", name,
			"args", strings.Join(args, " "),
			"duration_ms", elapsed.Milliseconds(),
			"error", err,
			"stderr", truncateStderr(stderr.String()),
		)
		return stdout.Bytes(), stderr.Bytes(), err
	}

	r.logger.Debug("tool ok",
		"tool", name,
		"args", strings.Join(args, " "),
		"duration_ms", elapsed.Milliseconds(),
		"stdout_bytes", stdout.Len(),
		"stderr_bytes", stderr.Len(),
	)
	return stdout.Bytes(), stderr.Bytes(), nil
}

// maxLoggedStderr caps how much tool stderr ends up in a log record;
// tesseract can dump pages of diagnostics on a bad image.
const maxLoggedStderr = 8 << 10

func truncateStderr(s string) string {
	if len(s) <= maxLoggedStderr {
		return s
	}
	return s[:maxLoggedStderr] + "...(truncated)"
}
