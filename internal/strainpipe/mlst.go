package strainpipe

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mcr-cvu/strainpipe/config"
)

// Typer runs the external MLST typing tool over every sample under
// Root. The tool is given the sample's contigs file as its only
// argument and its standard output is saved verbatim to
// "<sample>_mlst.tsv" in the sample directory. The output is not
// interpreted here; grouping by sequence type happens downstream.
type Typer struct {
	// Root is the directory whose immediate children are sample directories.
	Root string

	// ContigsName is the input filename looked up inside each sample.
	ContigsName string

	// Tool is the mlst executable.
	Tool string

	Timeout time.Duration

	logger *log.Logger
}

// NewTyper returns a Typer over root configured from c.
func NewTyper(root string, c *config.Config, logger *log.Logger) *Typer {
	return &Typer{
		Root:        root,
		ContigsName: c.Filter.ContigsName,
		Tool:        c.Tools.MLST,
		Timeout:     c.Tools.Timeout,
		logger:      logger,
	}
}

// Run types every sample under Root. Samples without a contigs file are
// skipped, and a failed invocation in one sample never stops the walk.
// A missing tool is a per-sample failure like any other exec error, so
// the run still exits cleanly.
func (t *Typer) Run(ctx context.Context) (typed, skipped, failed int, err error) {
	entries, err := os.ReadDir(t.Root)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("failed to read root directory %s: %v", t.Root, err)
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		sample := entry.Name()

		in := filepath.Join(t.Root, sample, t.ContigsName)
		if _, statErr := os.Stat(in); os.IsNotExist(statErr) {
			skipped++
			continue
		}

		task := Task{
			Tool:       t.Tool,
			Args:       []string{in},
			StdoutPath: filepath.Join(t.Root, sample, sample+"_mlst.tsv"),
			Timeout:    t.Timeout,
		}

		t.logger.Info("typing sample", "sample", sample, "cmd", task.String())
		if runErr := task.Run(ctx); runErr != nil {
			t.logger.Error("typing failed", "sample", sample, "err", runErr)
			failed++
			continue
		}
		typed++
	}

	return typed, skipped, failed, nil
}
