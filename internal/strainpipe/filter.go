package strainpipe

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/shenwei356/xopen"

	"github.com/mcr-cvu/strainpipe/config"
)

// Filter drops short contigs from each sample's assembly output. It
// walks the immediate child directories of Root and, for every one that
// holds a contigs file, writes a sibling filtered file containing only
// the records whose sequence is at least MinLength characters.
type Filter struct {
	// Root is the directory whose immediate children are sample directories.
	Root string

	// MinLength is the smallest sequence length that is kept.
	MinLength int

	// ContigsName is the input filename looked up inside each sample.
	ContigsName string

	// FilteredName is the output filename written next to the input.
	FilteredName string

	logger *log.Logger
}

// NewFilter returns a Filter over root configured from c.
func NewFilter(root string, c *config.Config, logger *log.Logger) *Filter {
	return &Filter{
		Root:         root,
		MinLength:    c.Filter.MinLength,
		ContigsName:  c.Filter.ContigsName,
		FilteredName: c.Filter.FilteredName,
		logger:       logger,
	}
}

// Run filters every sample under Root. Samples without a contigs file
// are skipped silently and a failure in one sample never stops the
// walk; only the loss of Root itself is fatal. The returned counts are
// samples filtered, skipped, and failed.
func (f *Filter) Run() (filtered, skipped, failed int, err error) {
	entries, err := os.ReadDir(f.Root)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("failed to read root directory %s: %v", f.Root, err)
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		sample := entry.Name()

		in := filepath.Join(f.Root, sample, f.ContigsName)
		if _, statErr := os.Stat(in); os.IsNotExist(statErr) {
			// no assembly output for this sample, not an error
			skipped++
			continue
		}

		out := filepath.Join(f.Root, sample, f.FilteredName)
		kept, total, sampleErr := f.filterFile(in, out)
		if sampleErr != nil {
			f.logger.Error("failed to filter sample", "sample", sample, "err", sampleErr)
			failed++
			continue
		}

		f.logger.Info("filtered contigs", "sample", sample, "kept", kept, "dropped", total-kept)
		filtered++
	}

	return filtered, skipped, failed, nil
}

// filterFile streams records from in to out, keeping only those that
// meet the length cutoff. Records go to a temp file that is renamed
// into place at the end, so a re-run fully replaces a previous result
// and a failed sample never carries a plausible-looking output.
func (f *Filter) filterFile(in, out string) (kept, total int, err error) {
	r, err := xopen.Ropen(in)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to open %s: %v", in, err)
	}
	defer r.Close()

	tmp := out + ".tmp"
	w, err := os.Create(tmp)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to create %s: %v", tmp, err)
	}
	defer func() {
		w.Close()
		if err != nil {
			os.Remove(tmp)
		}
	}()

	fw := NewWriter(w)
	sc := NewScanner(r)
	for sc.Scan() {
		rec := sc.Record()
		total++

		if rec.Length() < f.MinLength {
			continue
		}
		if err = fw.Write(rec); err != nil {
			return kept, total, err
		}
		kept++
	}
	if err = sc.Err(); err != nil {
		return kept, total, fmt.Errorf("failed reading %s: %v", in, err)
	}
	if err = fw.Flush(); err != nil {
		return kept, total, fmt.Errorf("failed to flush %s: %v", tmp, err)
	}
	if err = os.Rename(tmp, out); err != nil {
		return kept, total, fmt.Errorf("failed to move %s into place: %v", tmp, err)
	}

	return kept, total, nil
}
