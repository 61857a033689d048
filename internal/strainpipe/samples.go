package strainpipe

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// Sample is one sequencing sample: a pair of read files found under a
// sample directory.
type Sample struct {
	// Name is the shared basename of the read pair, eg "MCR_CVU_0042_S12".
	Name string

	// Dir is the directory holding the read files.
	Dir string

	// R1 and R2 are the paths of the forward and reverse reads.
	R1 string
	R2 string
}

// findSamples enumerates the immediate child directories of root and
// pairs forward/reverse read files inside each child's reads
// subdirectory. Children without a reads subdirectory, and forward
// reads without a matching reverse file, are logged and skipped.
func findSamples(root, subdir, r1Suffix, r2Suffix string, logger *log.Logger) ([]Sample, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory %s: %v", root, err)
	}

	var samples []Sample
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		readsDir := filepath.Join(root, entry.Name(), subdir)
		files, err := os.ReadDir(readsDir)
		if err != nil {
			logger.Warn("reads directory not found", "dir", readsDir)
			continue
		}

		for _, f := range files {
			if f.IsDir() || !strings.HasSuffix(f.Name(), r1Suffix) {
				continue
			}

			name := strings.TrimSuffix(f.Name(), r1Suffix)
			r2 := filepath.Join(readsDir, name+r2Suffix)
			if _, statErr := os.Stat(r2); os.IsNotExist(statErr) {
				logger.Warn("missing reverse reads", "sample", name, "want", r2)
				continue
			}

			samples = append(samples, Sample{
				Name: name,
				Dir:  readsDir,
				R1:   filepath.Join(readsDir, f.Name()),
				R2:   r2,
			})
			logger.Info("found sample", "sample", name)
		}
	}

	logger.Info("sample discovery done", "total", len(samples))

	return samples, nil
}
