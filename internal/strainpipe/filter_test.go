package strainpipe

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func testFilter(root string) *Filter {
	return &Filter{
		Root:         root,
		MinLength:    1000,
		ContigsName:  "contigs.fasta",
		FilteredName: "contigs_filtered.fasta",
		logger:       log.New(io.Discard),
	}
}

// writeSample creates a sample directory with a contigs file under root.
func writeSample(t *testing.T, root, sample, contigs string) {
	t.Helper()

	dir := filepath.Join(root, sample)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "contigs.fasta"), []byte(contigs), 0644); err != nil {
		t.Fatal(err)
	}
}

func Test_Filter_Run(t *testing.T) {
	root := t.TempDir()

	// seq1 is one base short, seq2 meets the cutoff wrapped across two lines
	short := strings.Repeat("A", 998)
	long1 := strings.Repeat("C", 600)
	long2 := strings.Repeat("G", 400)
	writeSample(t, root, "sampleA", ">seq1\n"+short+"\n>seq2\n"+long1+"\n"+long2+"\n")

	// no contigs file at all
	if err := os.MkdirAll(filepath.Join(root, "sampleB"), 0755); err != nil {
		t.Fatal(err)
	}

	// a stray file in the root is not a sample
	if err := os.WriteFile(filepath.Join(root, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	filtered, skipped, failed, err := testFilter(root).Run()
	if err != nil {
		t.Fatalf("Filter.Run() error = %v", err)
	}
	if filtered != 1 || skipped != 1 || failed != 0 {
		t.Errorf("Filter.Run() = (%d, %d, %d), want (1, 1, 0)", filtered, skipped, failed)
	}

	out, err := os.ReadFile(filepath.Join(root, "sampleA", "contigs_filtered.fasta"))
	if err != nil {
		t.Fatalf("missing filtered output: %v", err)
	}
	want := ">seq2\n" + long1 + long2 + "\n"
	if string(out) != want {
		t.Errorf("filtered output = %q, want %q", out, want)
	}

	// the skipped sample got no output file
	if _, err := os.Stat(filepath.Join(root, "sampleB", "contigs_filtered.fasta")); !os.IsNotExist(err) {
		t.Errorf("sampleB should have no filtered output, stat err = %v", err)
	}
}

func Test_Filter_boundary(t *testing.T) {
	tests := []struct {
		name     string
		length   int
		wantKept bool
	}{
		{"at the cutoff is kept", 1000, true},
		{"one below is dropped", 999, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			writeSample(t, root, "s", ">seq1\n"+strings.Repeat("T", tt.length)+"\n")

			if _, _, _, err := testFilter(root).Run(); err != nil {
				t.Fatalf("Filter.Run() error = %v", err)
			}

			out, err := os.ReadFile(filepath.Join(root, "s", "contigs_filtered.fasta"))
			if err != nil {
				t.Fatal(err)
			}
			if kept := strings.Contains(string(out), "seq1"); kept != tt.wantKept {
				t.Errorf("record kept = %v, want %v", kept, tt.wantKept)
			}
		})
	}
}

func Test_Filter_idempotent(t *testing.T) {
	root := t.TempDir()
	writeSample(t, root, "s",
		">keep1\n"+strings.Repeat("A", 1200)+"\n>drop\nACGT\n>keep2\n"+strings.Repeat("C", 1000)+"\n")

	f := testFilter(root)
	if _, _, _, err := f.Run(); err != nil {
		t.Fatal(err)
	}

	first, err := os.ReadFile(filepath.Join(root, "s", "contigs_filtered.fasta"))
	if err != nil {
		t.Fatal(err)
	}

	// re-filter the filtered output with the same threshold
	root2 := t.TempDir()
	writeSample(t, root2, "s", string(first))
	if _, _, _, err := testFilter(root2).Run(); err != nil {
		t.Fatal(err)
	}

	second, err := os.ReadFile(filepath.Join(root2, "s", "contigs_filtered.fasta"))
	if err != nil {
		t.Fatal(err)
	}
	if string(first) != string(second) {
		t.Errorf("re-filtering changed the file:\nfirst  = %q\nsecond = %q", first, second)
	}
}

func Test_Filter_failureIsolation(t *testing.T) {
	root := t.TempDir()

	// a directory where the contigs file should be makes this sample unreadable
	if err := os.MkdirAll(filepath.Join(root, "a_broken", "contigs.fasta"), 0755); err != nil {
		t.Fatal(err)
	}
	writeSample(t, root, "b_good", ">seq1\n"+strings.Repeat("G", 1500)+"\n")

	filtered, _, failed, err := testFilter(root).Run()
	if err != nil {
		t.Fatalf("Filter.Run() error = %v", err)
	}
	if failed != 1 {
		t.Errorf("failed = %d, want 1", failed)
	}
	if filtered != 1 {
		t.Errorf("filtered = %d, want 1: a broken sample must not stop the walk", filtered)
	}
	if _, err := os.Stat(filepath.Join(root, "b_good", "contigs_filtered.fasta")); err != nil {
		t.Errorf("good sample was not filtered: %v", err)
	}

	// the failed sample carries no filtered output, not even a partial one
	for _, name := range []string{"contigs_filtered.fasta", "contigs_filtered.fasta.tmp"} {
		if _, err := os.Stat(filepath.Join(root, "a_broken", name)); !os.IsNotExist(err) {
			t.Errorf("broken sample should have no %s, stat err = %v", name, err)
		}
	}
}

func Test_Filter_overwritesPriorRun(t *testing.T) {
	root := t.TempDir()
	writeSample(t, root, "s", ">seq1\n"+strings.Repeat("A", 1000)+"\n")

	// leftover output from an earlier, different run
	stale := strings.Repeat(">old\n"+strings.Repeat("T", 2000)+"\n", 3)
	if err := os.WriteFile(filepath.Join(root, "s", "contigs_filtered.fasta"), []byte(stale), 0644); err != nil {
		t.Fatal(err)
	}

	if _, _, _, err := testFilter(root).Run(); err != nil {
		t.Fatal(err)
	}

	out, err := os.ReadFile(filepath.Join(root, "s", "contigs_filtered.fasta"))
	if err != nil {
		t.Fatal(err)
	}
	want := ">seq1\n" + strings.Repeat("A", 1000) + "\n"
	if string(out) != want {
		t.Errorf("output was not fully overwritten, got %q", out)
	}
}
