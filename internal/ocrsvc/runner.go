// Package ocrsvc converts scanned or outlined PDFs into per-page
// searchable text, either through Google Document AI or local OCR
// tooling.
package ocrsvc

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
)

// Runner executes external commands. Tests substitute a stub so the
// local converter can be exercised without poppler or tesseract
// installed.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands on the host.
type ExecRunner struct{}

const maxStderrBytes = 8 * 1024

// Run executes the command and returns stdout. On failure the error
// carries the tail of stderr, truncated so a page of OCR garbage does
// not flood the logs.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := stderr.Bytes()
		if len(msg) > maxStderrBytes {
			msg = msg[len(msg)-maxStderrBytes:]
		}
		return nil, fmt.Errorf("%s failed: %w: %s", name, err, bytes.TrimSpace(msg))
	}
	return stdout.Bytes(), nil
}
