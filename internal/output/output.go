// Package output writes alignment results as MUMmer delta files, coordinate
// tables or JSON.
package output

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aria-lang/nucmer-go/internal/mum"
	"github.com/aria-lang/nucmer-go/internal/nucmer"
	"github.com/aria-lang/nucmer-go/internal/sequence"
)

// Output formats.
const (
	FormatDelta  = "delta"
	FormatCoords = "coords"
	FormatJSON   = "json"
)

// Run is everything a writer needs about one alignment run.
type Run struct {
	ReferencePath string
	QueryPath     string
	Results       []*nucmer.PairwiseAlignment
}

var writers = map[string]func(io.Writer, *Run) error{
	FormatDelta:  WriteDelta,
	FormatCoords: WriteCoords,
	FormatJSON:   WriteJSON,
}

// Formats lists the registered format names.
func Formats() []string {
	names := make([]string, 0, len(writers))
	for name := range writers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FormatForPath returns the format named by the extension of path, so that
// "out.json" selects JSON.
func FormatForPath(path string) (string, bool) {
	name := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if _, ok := writers[name]; !ok {
		return "", false
	}
	return name, true
}

// Write dispatches run to the writer registered for format.
func Write(format string, w io.Writer, run *Run) error {
	fn, ok := writers[format]
	if !ok {
		return fmt.Errorf("unknown output format %q", format)
	}
	return fn(w, run)
}

// QueryCoords returns the 1-based start and end of seg on the forward query.
// Reverse segments run backward, so start is greater than end.
func QueryCoords(seg *nucmer.Segment, queryLen int) (start, end int) {
	if seg.Direction == mum.Reverse {
		return queryLen - seg.SecondStart, queryLen - seg.SecondEnd
	}
	return seg.SecondStart + 1, seg.SecondEnd + 1
}

// WriteDelta writes the MUMmer delta format: a header with the input paths,
// then for each reference and query pair a ">" line followed by one record
// per alignment. A record holds the 1-based coordinates, the error counts
// and the indel deltas, terminated by 0.
func WriteDelta(w io.Writer, run *Run) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s %s\nNUCMER\n", run.ReferencePath, run.QueryPath)

	for _, res := range run.Results {
		var current *sequence.Sequence
		for _, seg := range res.Segments {
			ref := seg.Reference()
			if ref != current {
				fmt.Fprintf(bw, ">%s %s %d %d\n", ref.ID, res.Query.ID, ref.Len(), res.Query.Len())
				current = ref
			}

			s2, e2 := QueryCoords(seg, res.Query.Len())
			errs := seg.Errors()
			fmt.Fprintf(bw, "%d %d %d %d %d %d 0\n", seg.FirstStart+1, seg.FirstEnd+1, s2, e2, errs, errs)
			for _, d := range seg.Delta.Deltas {
				fmt.Fprintf(bw, "%d\n", d)
			}
			fmt.Fprintln(bw, "0")
		}
	}

	return bw.Flush()
}

// WriteCoords writes one tab separated line per alignment, in the column
// order of show-coords.
func WriteCoords(w io.Writer, run *Run) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "[S1]\t[E1]\t[S2]\t[E2]\t[LEN 1]\t[LEN 2]\t[% IDY]\t[TAGS]")

	for _, res := range run.Results {
		for _, seg := range res.Segments {
			s2, e2 := QueryCoords(seg, res.Query.Len())
			fmt.Fprintf(bw, "%d\t%d\t%d\t%d\t%d\t%d\t%.2f\t%s\t%s\n",
				seg.FirstStart+1, seg.FirstEnd+1, s2, e2,
				seg.FirstEnd-seg.FirstStart+1, seg.SecondEnd-seg.SecondStart+1,
				seg.Identity*100, seg.Reference().ID, res.Query.ID)
		}
	}

	return bw.Flush()
}

// Record is the JSON form of one alignment. Coordinates are 1-based.
type Record struct {
	Query      string        `json:"query"`
	Reference  string        `json:"reference"`
	RefStart   int           `json:"ref_start"`
	RefEnd     int           `json:"ref_end"`
	QueryStart int           `json:"query_start"`
	QueryEnd   int           `json:"query_end"`
	Strand     mum.Direction `json:"strand"`
	Score      int           `json:"score"`
	Identity   float64       `json:"identity"`
	Errors     int           `json:"errors"`
	CIGAR      string        `json:"cigar"`
	Deltas     []int         `json:"deltas"`
}

// Records flattens results into one record per alignment.
func Records(results []*nucmer.PairwiseAlignment) []Record {
	records := make([]Record, 0)
	for _, res := range results {
		for _, seg := range res.Segments {
			s2, e2 := QueryCoords(seg, res.Query.Len())
			records = append(records, Record{
				Query:      res.Query.ID,
				Reference:  seg.Reference().ID,
				RefStart:   seg.FirstStart + 1,
				RefEnd:     seg.FirstEnd + 1,
				QueryStart: s2,
				QueryEnd:   e2,
				Strand:     seg.Direction,
				Score:      seg.Score,
				Identity:   seg.Identity,
				Errors:     seg.Errors(),
				CIGAR:      seg.ToCIGAR(),
				Deltas:     append([]int{}, seg.Delta.Deltas...),
			})
		}
	}
	return records
}

// WriteJSON writes all records as one indented JSON array.
func WriteJSON(w io.Writer, run *Run) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Records(run.Results))
}
