package strainpipe

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mcr-cvu/strainpipe/config"
)

// Assembler batch-runs SPAdes over every sample found under an input
// root. Reads arrive gzipped from trimming, so each pair is
// decompressed before assembly. Results land in
// "<OutputRoot>/<sample>_assembly".
type Assembler struct {
	// InputRoot is the directory whose children are sample directories.
	InputRoot string

	// OutputRoot receives one assembly directory per sample.
	OutputRoot string

	// Cores is passed to the assembler's --threads flag.
	Cores int

	// Tool is the SPAdes executable.
	Tool string

	// ContigsName is the assembly output checked for after a run.
	ContigsName string

	Reads   config.ReadsConfig
	Timeout time.Duration

	logger *log.Logger
}

// NewAssembler returns an Assembler reading samples under in and
// writing assemblies under out, configured from c.
func NewAssembler(in, out string, c *config.Config, logger *log.Logger) *Assembler {
	return &Assembler{
		InputRoot:   in,
		OutputRoot:  out,
		Cores:       c.Cores,
		Tool:        c.Tools.Spades,
		ContigsName: c.Filter.ContigsName,
		Reads:       c.Reads,
		Timeout:     c.Tools.Timeout,
		logger:      logger,
	}
}

// Run assembles every discovered sample in turn. A failure in one
// sample is logged and counted; the remaining samples still run.
func (a *Assembler) Run(ctx context.Context) (assembled, failed int, err error) {
	if err := lookupTool(a.Tool); err != nil {
		return 0, 0, err
	}
	if err := os.MkdirAll(a.OutputRoot, 0755); err != nil {
		return 0, 0, fmt.Errorf("failed to create output directory %s: %v", a.OutputRoot, err)
	}

	// trimmed reads are stored gzipped
	samples, err := findSamples(a.InputRoot, a.Reads.Subdir, a.Reads.R1Suffix+".gz", a.Reads.R2Suffix+".gz", a.logger)
	if err != nil {
		return 0, 0, err
	}

	for _, s := range samples {
		if runErr := a.assemble(ctx, s); runErr != nil {
			a.logger.Error("assembly failed", "sample", s.Name, "err", runErr)
			failed++
			continue
		}
		assembled++
	}

	a.logger.Info("assembly workflow complete",
		"assembled", assembled, "failed", failed, "total", len(samples), "out", a.OutputRoot)

	return assembled, failed, nil
}

// assemble decompresses one sample's read pair and runs SPAdes on it.
func (a *Assembler) assemble(ctx context.Context, s Sample) error {
	a.logger.Info("decompressing reads", "sample", s.Name)

	r1, err := decompress(s.R1)
	if err != nil {
		return err
	}
	r2, err := decompress(s.R2)
	if err != nil {
		return err
	}

	outDir := filepath.Join(a.OutputRoot, s.Name+"_assembly")
	task := Task{
		Tool: a.Tool,
		Args: []string{
			"--threads", strconv.Itoa(a.Cores),
			"-o", outDir,
			"-1", r1,
			"-2", r2,
		},
		Timeout: a.Timeout,
	}

	a.logger.Info("starting assembly", "sample", s.Name, "cmd", task.String())
	if err := task.Run(ctx); err != nil {
		return err
	}

	// the downstream filter and typing passes need this file
	contigs := filepath.Join(outDir, a.ContigsName)
	if _, err := os.Stat(contigs); os.IsNotExist(err) {
		a.logger.Warn("assembler exited cleanly but produced no contigs", "want", contigs)
	}

	return nil
}
