package strainpipe

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// maxLineBytes is the largest single line the scanner accepts. Assemblers
// sometimes emit a whole contig on one line, so this is far above the
// bufio default.
const maxLineBytes = 64 * 1024 * 1024

// Record is a single FASTA record: the header line without the leading
// '>' (kept verbatim, description and all) and the sequence with every
// line break removed.
type Record struct {
	Header   string
	Sequence string
}

// Length returns the number of characters in the record's sequence.
func (r Record) Length() int {
	return utf8.RuneCountInString(r.Sequence)
}

// Scanner reads FASTA records one at a time from an underlying reader,
// in the style of bufio.Scanner:
//
//	sc := NewScanner(r)
//	for sc.Scan() {
//		rec := sc.Record()
//		...
//	}
//	if err := sc.Err(); err != nil { ... }
//
// A fresh Scanner over the same bytes yields the same records, so a
// file can be re-parsed by simply reopening it.
//
// Text before the first '>' marker is discarded. A trailing '\r' is
// stripped from every line, so CRLF and LF files parse identically.
// Blank lines inside a record contribute nothing to the sequence. A
// marker line directly followed by another marker, or by EOF, yields a
// record with an empty sequence.
type Scanner struct {
	lines *bufio.Scanner

	rec      Record
	header   string // header of the record currently being accumulated
	inRecord bool
	done     bool
}

// NewScanner returns a Scanner reading FASTA records from r.
func NewScanner(r io.Reader) *Scanner {
	lines := bufio.NewScanner(r)
	lines.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	return &Scanner{lines: lines}
}

// Scan advances to the next record. It returns false when the input is
// exhausted or an underlying read error occurred; call Err to tell the
// two apart.
func (s *Scanner) Scan() bool {
	if s.done {
		return false
	}

	var seq strings.Builder
	for s.lines.Scan() {
		line := strings.TrimSuffix(s.lines.Text(), "\r")

		if strings.HasPrefix(line, ">") {
			if s.inRecord {
				// the marker closes the record being accumulated
				s.rec = Record{Header: s.header, Sequence: seq.String()}
				s.header = line[1:]
				return true
			}

			// anything before the first marker is not a record
			s.header = line[1:]
			s.inRecord = true
			continue
		}

		if !s.inRecord || line == "" {
			continue
		}
		seq.WriteString(line)
	}

	s.done = true
	if s.inRecord {
		s.rec = Record{Header: s.header, Sequence: seq.String()}
		s.inRecord = false
		return true
	}

	return false
}

// Record returns the record produced by the last successful Scan.
func (s *Scanner) Record() Record {
	return s.rec
}

// Err returns the first error hit while reading the input, if any.
func (s *Scanner) Err() error {
	return s.lines.Err()
}

// Writer serializes records back to FASTA: a marker line and a single
// unwrapped sequence line per record, in the order written.
type Writer struct {
	w *bufio.Writer
}

// NewWriter returns a Writer emitting FASTA records to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// Write emits one record.
func (w *Writer) Write(rec Record) error {
	if _, err := fmt.Fprintf(w.w, ">%s\n%s\n", rec.Header, rec.Sequence); err != nil {
		return fmt.Errorf("failed to write record %q: %v", rec.Header, err)
	}

	return nil
}

// Flush writes any buffered records to the underlying writer.
func (w *Writer) Flush() error {
	return w.w.Flush()
}
