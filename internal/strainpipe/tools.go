package strainpipe

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

// Task is a single external tool invocation. A Task carries no shared
// state, so a driver can run, retry, or cancel invocations independently.
type Task struct {
	// Tool is the executable name or path.
	Tool string

	// Args are passed to the tool in order.
	Args []string

	// StdoutPath, when set, receives the tool's standard output verbatim.
	StdoutPath string

	// Timeout bounds the invocation. Zero means no limit.
	Timeout time.Duration
}

// Run executes the task and waits for it to finish. The tool's stderr
// is captured and folded into the returned error on a non-zero exit.
func (t Task) Run(ctx context.Context) error {
	if t.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, t.Tool, t.Args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if t.StdoutPath != "" {
		out, err := os.Create(t.StdoutPath)
		if err != nil {
			return fmt.Errorf("failed to create output file %s: %v", t.StdoutPath, err)
		}
		defer out.Close()
		cmd.Stdout = out
	}

	if err := cmd.Run(); err != nil {
		if t.StdoutPath != "" {
			// a failed run must not leave a partial output file behind
			os.Remove(t.StdoutPath)
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%s failed: %v: %s", t.Tool, err, msg)
		}
		return fmt.Errorf("%s failed: %v", t.Tool, err)
	}

	return nil
}

// String renders the full command line, for logging.
func (t Task) String() string {
	return strings.Join(append([]string{t.Tool}, t.Args...), " ")
}

// lookupTool checks that an executable can be found before a batch run
// starts, so a missing install fails up front rather than per sample.
func lookupTool(tool string) error {
	if _, err := exec.LookPath(tool); err != nil {
		return fmt.Errorf("%s not found in PATH, ensure it is installed: %v", tool, err)
	}

	return nil
}
