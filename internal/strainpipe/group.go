package strainpipe

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/charmbracelet/log"

	"github.com/mcr-cvu/strainpipe/config"
)

// Grouper sorts per-sample variant outputs into folders by typing
// result. It scans every file in SourceDir for lines naming a sample,
// pulls out the sample id and its type number, and moves the sample's
// "<sample>_mysnps" directory from BaseDir into "<BaseDir>/<number>/".
type Grouper struct {
	// SourceDir holds the typing result files to scan.
	SourceDir string

	// BaseDir holds the "<sample>_mysnps" directories to regroup.
	BaseDir string

	// SamplePrefix identifies sample ids in result lines, eg "MCR_CVU_".
	SamplePrefix string

	logger *log.Logger
}

// NewGrouper returns a Grouper scanning source and regrouping outputs
// under base.
func NewGrouper(source, base string, c *config.Config, logger *log.Logger) *Grouper {
	return &Grouper{
		SourceDir:    source,
		BaseDir:      base,
		SamplePrefix: c.SamplePrefix,
		logger:       logger,
	}
}

// Run scans every result file and regroups the samples it names. A
// sample that cannot be moved is logged and counted; scanning goes on.
func (g *Grouper) Run() (moved, failed int, err error) {
	// sample id, then the first number after it on the line (the type)
	re, err := regexp.Compile("(" + regexp.QuoteMeta(g.SamplePrefix) + `\d+).*?(\d+)`)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to build sample pattern: %v", err)
	}

	entries, err := os.ReadDir(g.SourceDir)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read source directory %s: %v", g.SourceDir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		m, f := g.groupFile(filepath.Join(g.SourceDir, entry.Name()), re)
		moved += m
		failed += f
	}

	g.logger.Info("grouping complete", "moved", moved, "failed", failed)

	return moved, failed, nil
}

// groupFile scans one result file and moves every sample it names.
func (g *Grouper) groupFile(path string, re *regexp.Regexp) (moved, failed int) {
	f, err := os.Open(path)
	if err != nil {
		g.logger.Error("failed to open result file", "path", path, "err", err)
		return 0, 1
	}
	defer f.Close()

	lines := bufio.NewScanner(f)
	for lines.Scan() {
		m := re.FindStringSubmatch(lines.Text())
		if m == nil {
			continue
		}
		sample, number := m[1], m[2]

		targetDir := filepath.Join(g.BaseDir, number)
		if err := os.MkdirAll(targetDir, 0755); err != nil {
			g.logger.Error("failed to create type folder", "type", number, "err", err)
			failed++
			continue
		}

		src := filepath.Join(g.BaseDir, sample+"_mysnps")
		dst := filepath.Join(targetDir, sample+"_mysnps")
		if err := os.Rename(src, dst); err != nil {
			g.logger.Error("failed to move sample output", "sample", sample, "err", err)
			failed++
			continue
		}

		g.logger.Info("grouped sample", "sample", sample, "type", number)
		moved++
	}
	if err := lines.Err(); err != nil {
		g.logger.Error("failed reading result file", "path", path, "err", err)
		failed++
	}

	return moved, failed
}
