package strainpipe

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
)

func Test_Scanner(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []Record
	}{
		{
			"two records",
			">seq1\nACGT\n>seq2\nGGCC\n",
			[]Record{
				{Header: "seq1", Sequence: "ACGT"},
				{Header: "seq2", Sequence: "GGCC"},
			},
		},
		{
			"wrapped sequence is unwrapped",
			">seq1\nACGT\nACGT\nAC\n",
			[]Record{
				{Header: "seq1", Sequence: "ACGTACGTAC"},
			},
		},
		{
			"crlf line endings",
			">seq1\r\nACGT\r\nACGT\r\n",
			[]Record{
				{Header: "seq1", Sequence: "ACGTACGT"},
			},
		},
		{
			"blank lines contribute nothing",
			">seq1\nACGT\n\n\nACGT\n",
			[]Record{
				{Header: "seq1", Sequence: "ACGTACGT"},
			},
		},
		{
			"content before the first marker is dropped",
			"; stray comment\nACGT\n>seq1\nTTTT\n",
			[]Record{
				{Header: "seq1", Sequence: "TTTT"},
			},
		},
		{
			"header description kept verbatim",
			">NODE_1_length_898_cov_12.7 whole genome shotgun\nACGT\n",
			[]Record{
				{Header: "NODE_1_length_898_cov_12.7 whole genome shotgun", Sequence: "ACGT"},
			},
		},
		{
			"marker followed by marker yields empty sequence",
			">seq1\n>seq2\nACGT\n",
			[]Record{
				{Header: "seq1", Sequence: ""},
				{Header: "seq2", Sequence: "ACGT"},
			},
		},
		{
			"marker at eof yields empty sequence",
			">seq1\nACGT\n>seq2\n",
			[]Record{
				{Header: "seq1", Sequence: "ACGT"},
				{Header: "seq2", Sequence: ""},
			},
		},
		{
			"no trailing newline",
			">seq1\nACGT",
			[]Record{
				{Header: "seq1", Sequence: "ACGT"},
			},
		},
		{
			"empty input",
			"",
			nil,
		},
		{
			"no records at all",
			"just some text\n",
			nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scanAll(t, tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Scanner = %v, want %v", got, tt.want)
			}

			// a fresh scan of the same bytes yields the same records
			again := scanAll(t, tt.in)
			if !reflect.DeepEqual(again, got) {
				t.Errorf("restarted Scanner = %v, want %v", again, got)
			}
		})
	}
}

func scanAll(t *testing.T, in string) (recs []Record) {
	t.Helper()

	sc := NewScanner(strings.NewReader(in))
	for sc.Scan() {
		recs = append(recs, sc.Record())
	}
	if err := sc.Err(); err != nil {
		t.Fatalf("Scanner.Err() = %v", err)
	}

	return recs
}

func Test_Record_Length(t *testing.T) {
	tests := []struct {
		name string
		rec  Record
		want int
	}{
		{"empty", Record{Header: "seq1"}, 0},
		{"counts characters", Record{Header: "seq1", Sequence: strings.Repeat("A", 1000)}, 1000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rec.Length(); got != tt.want {
				t.Errorf("Record.Length() = %v, want %v", got, tt.want)
			}
		})
	}
}

func Test_Writer_roundTrip(t *testing.T) {
	recs := []Record{
		{Header: "NODE_1_length_1000_cov_44.1", Sequence: strings.Repeat("ACGT", 250)},
		{Header: "NODE_2 with a description", Sequence: "TTTT"},
	}

	var buf bytes.Buffer
	w := NewWriter(&buf)
	for _, rec := range recs {
		if err := w.Write(rec); err != nil {
			t.Fatalf("Writer.Write() = %v", err)
		}
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Writer.Flush() = %v", err)
	}

	want := ">NODE_1_length_1000_cov_44.1\n" + strings.Repeat("ACGT", 250) + "\n>NODE_2 with a description\nTTTT\n"
	if buf.String() != want {
		t.Errorf("Writer output = %q, want %q", buf.String(), want)
	}

	// parsing what was written reproduces the records
	got := scanAll(t, buf.String())
	if !reflect.DeepEqual(got, recs) {
		t.Errorf("round trip = %v, want %v", got, recs)
	}
}
