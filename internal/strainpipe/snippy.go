package strainpipe

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mcr-cvu/strainpipe/config"
)

// SnpCaller batch-runs Snippy against a reference genome. Samples are
// grouped by strain on disk: "<Root>/<strain>/<sample>/<reads subdir>"
// holds the decompressed read pairs, and results are written to
// "<OutputRoot>/<strain>/<sample>_mysnps".
type SnpCaller struct {
	// Root is the base path holding one directory per strain.
	Root string

	// OutputRoot receives per-strain result directories.
	OutputRoot string

	// Reference is the reference genome given to the caller.
	Reference string

	// Cores is passed to the caller's --cpu flag.
	Cores int

	// Tool is the snippy executable.
	Tool string

	// Strains are the strain directory names scanned under Root.
	Strains []string

	// SamplePrefix selects sample directories inside a strain, eg "MCR_CVU_".
	SamplePrefix string

	Reads   config.ReadsConfig
	Timeout time.Duration

	logger *log.Logger
}

// NewSnpCaller returns a SnpCaller reading samples under root, calling
// variants against ref, and writing results under out.
func NewSnpCaller(root, out, ref string, c *config.Config, logger *log.Logger) *SnpCaller {
	return &SnpCaller{
		Root:         root,
		OutputRoot:   out,
		Reference:    ref,
		Cores:        c.Cores,
		Tool:         c.Tools.Snippy,
		Strains:      c.Strains,
		SamplePrefix: c.SamplePrefix,
		Reads:        c.Reads,
		Timeout:      c.Tools.Timeout,
		logger:       logger,
	}
}

// Run calls variants for every sample of every known strain. A failure
// in one sample is logged and counted; the walk continues.
func (s *SnpCaller) Run(ctx context.Context) (called, failed int, err error) {
	if err := lookupTool(s.Tool); err != nil {
		return 0, 0, err
	}
	if _, err := os.Stat(s.Reference); err != nil {
		return 0, 0, fmt.Errorf("failed to find reference genome %s: %v", s.Reference, err)
	}
	if err := os.MkdirAll(s.OutputRoot, 0755); err != nil {
		return 0, 0, fmt.Errorf("failed to create output directory %s: %v", s.OutputRoot, err)
	}

	for _, strain := range s.Strains {
		strainDir := filepath.Join(s.Root, strain)
		entries, readErr := os.ReadDir(strainDir)
		if readErr != nil {
			s.logger.Warn("strain path does not exist", "strain", strain, "dir", strainDir)
			continue
		}

		for _, entry := range entries {
			if !entry.IsDir() || !strings.HasPrefix(entry.Name(), s.SamplePrefix) {
				continue
			}
			sample := entry.Name()

			if runErr := s.call(ctx, strain, sample); runErr != nil {
				s.logger.Error("snp calling failed", "strain", strain, "sample", sample, "err", runErr)
				failed++
				continue
			}
			called++
		}
	}

	s.logger.Info("snp workflow complete",
		"called", called, "failed", failed, "out", s.OutputRoot)

	return called, failed, nil
}

// call runs the variant caller for a single sample.
func (s *SnpCaller) call(ctx context.Context, strain, sample string) error {
	r1, r2, err := s.readPair(filepath.Join(s.Root, strain, sample))
	if err != nil {
		return err
	}

	outDir := filepath.Join(s.OutputRoot, strain, sample+"_mysnps")
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %v", outDir, err)
	}

	task := Task{
		Tool: s.Tool,
		Args: []string{
			"--cpu", strconv.Itoa(s.Cores),
			"--outdir", outDir,
			"--ref", s.Reference,
			"--R1", r1,
			"--R2", r2,
		},
		Timeout: s.Timeout,
	}

	s.logger.Info("starting snp calling", "strain", strain, "sample", sample, "cmd", task.String())

	return task.Run(ctx)
}

// readPair returns the first forward/reverse read pair, in name order,
// inside a sample's reads subdirectory.
func (s *SnpCaller) readPair(sampleDir string) (r1, r2 string, err error) {
	readsDir := filepath.Join(sampleDir, s.Reads.Subdir)
	files, err := os.ReadDir(readsDir)
	if err != nil {
		return "", "", fmt.Errorf("failed to read %s: %v", readsDir, err)
	}

	// os.ReadDir returns entries sorted by name
	var r1s, r2s []string
	for _, f := range files {
		switch {
		case strings.HasSuffix(f.Name(), s.Reads.R1Suffix):
			r1s = append(r1s, filepath.Join(readsDir, f.Name()))
		case strings.HasSuffix(f.Name(), s.Reads.R2Suffix):
			r2s = append(r2s, filepath.Join(readsDir, f.Name()))
		}
	}

	if len(r1s) == 0 || len(r2s) == 0 {
		return "", "", fmt.Errorf("no matching read pair found under %s", readsDir)
	}

	return r1s[0], r2s[0], nil
}
