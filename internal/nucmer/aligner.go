// Package nucmer aligns whole nucleotide sequences against a set of
// references.
//
// A run validates its inputs, concatenates the references and indexes them
// once. Every query is then searched for maximal unique matches, which are
// clustered, grouped per reference into syntenies and extended into gapped
// alignments. Queries are independent and are aligned concurrently against
// the shared read-only index.
package nucmer

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/aria-lang/nucmer-go/internal/alignment"
	"github.com/aria-lang/nucmer-go/internal/cluster"
	"github.com/aria-lang/nucmer-go/internal/mum"
	"github.com/aria-lang/nucmer-go/internal/sequence"
)

// Segment is one scored alignment between a query and a reference.
type Segment struct {
	*alignment.Alignment
	Delta *DeltaAlignment
}

// Reference returns the reference sequence of the segment.
func (s *Segment) Reference() *sequence.Sequence {
	return s.Delta.Reference
}

// PairwiseAlignment holds the segments found for one query.
type PairwiseAlignment struct {
	Query    *sequence.Sequence
	Segments []*Segment
}

// References returns the IDs of the references hit, in segment order
// without repeats.
func (p *PairwiseAlignment) References() []string {
	seen := make(map[string]bool)
	var ids []string
	for _, s := range p.Segments {
		id := s.Reference().ID
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids
}

// Aligner runs alignments with a fixed configuration.
type Aligner struct {
	opts Options
	log  logrus.FieldLogger
}

// New creates an Aligner. Options are validated when a run starts.
func New(opts Options) *Aligner {
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Aligner{opts: opts, log: log}
}

// Options returns the configuration of the aligner.
func (al *Aligner) Options() Options {
	return al.opts
}

// run is the read-only state shared by the queries of one Align call.
type run struct {
	refs    *sequence.Concatenated
	index   *mum.Index
	builder *cluster.Builder
	chain   *ChainExtender
	scorer  *alignment.Scorer
}

// AlignSingle aligns seqs[1:] against seqs[0].
func (al *Aligner) AlignSingle(ctx context.Context, seqs []*sequence.Sequence) ([]*PairwiseAlignment, error) {
	if len(seqs) < 2 {
		return nil, &ValidationError{
			Field:  "sequences",
			Reason: fmt.Sprintf("need a reference and at least one query, got %d sequences", len(seqs)),
		}
	}
	return al.Align(ctx, seqs[:1], seqs[1:])
}

// Align aligns every query against refs. One result is returned per query,
// in query order; a query without any alignment has no segments.
func (al *Aligner) Align(ctx context.Context, refs, queries []*sequence.Sequence) ([]*PairwiseAlignment, error) {
	if err := Validate(al.opts, refs, queries); err != nil {
		return nil, err
	}

	start := time.Now()

	concatenated, err := sequence.Concatenate(refs)
	if err != nil {
		return nil, fmt.Errorf("concatenate references: %w", err)
	}
	builder, err := newBuilder(al.opts)
	if err != nil {
		return nil, err
	}

	r := &run{
		refs:    concatenated,
		index:   mum.Build(concatenated.Bases),
		builder: builder,
		chain:   NewChainExtender(al.opts),
		scorer: &alignment.Scorer{
			Matrix:           al.opts.SimilarityMatrix,
			GapOpenCost:      al.opts.GapOpenCost,
			GapExtensionCost: al.opts.GapExtensionCost,
			IsAlign:          al.opts.IsAlign,
		},
	}
	al.log.Debugf("indexed %d references (%d bases) in %s", len(refs), concatenated.Len(), time.Since(start))

	results := make([]*PairwiseAlignment, len(queries))

	g, ctx := errgroup.WithContext(ctx)
	workers := al.opts.Workers
	if workers < 1 {
		workers = 1
	}
	g.SetLimit(workers)

	for i, q := range queries {
		i, q := i, q
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			res, err := al.alignQuery(ctx, r, q)
			if err != nil {
				return err
			}
			results[i] = res

			if al.opts.OnQueryDone != nil {
				al.opts.OnQueryDone(i, res)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	segments := 0
	for _, res := range results {
		segments += len(res.Segments)
	}
	al.log.Infof("aligned %d queries against %d references: %d segments in %s",
		len(queries), len(refs), segments, time.Since(start))

	return results, nil
}

func (al *Aligner) alignQuery(ctx context.Context, r *run, q *sequence.Sequence) (*PairwiseAlignment, error) {
	result := &PairwiseAlignment{Query: q}
	log := al.log.WithField("query", q.ID)

	if isSelfMatch(r.refs.Sequences, q) {
		log.Debug("query is identical to the reference, skipped")
		return result, nil
	}

	matches := r.index.FindMatches([]byte(q.Bases), al.opts.LengthOfMUM, mum.Forward)
	if al.opts.IncludeReverse {
		rc, err := q.ReverseComplement()
		if err != nil {
			return nil, fmt.Errorf("query %s: %w", q.ID, err)
		}
		matches = append(matches, r.index.FindMatches([]byte(rc.Bases), al.opts.LengthOfMUM, mum.Reverse)...)
	}
	log.Debugf("%d seed matches", len(matches))
	if len(matches) == 0 {
		return result, nil
	}

	clusters := r.builder.BuildClusters(matches)
	log.Debugf("%d clusters", len(clusters))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	deltas := r.chain.ProcessClusters(r.refs, q, clusters)
	for _, d := range deltas {
		a := ConvertDeltaToAlignment(d)
		first, second := []byte(a.FirstSeq), []byte(a.SecondSeq)
		a.Score = r.scorer.CalculateScore(first, second)
		a.Consensus = string(alignment.MakeConsensus(first, second, al.opts.Consensus))
		result.Segments = append(result.Segments, &Segment{Alignment: a, Delta: d})
	}
	log.Debugf("%d alignments", len(result.Segments))

	return result, nil
}

// isSelfMatch reports whether q is the single reference itself.
func isSelfMatch(refs []*sequence.Sequence, q *sequence.Sequence) bool {
	if len(refs) != 1 {
		return false
	}
	ref := refs[0]
	return ref == q || (ref.SameID(q) && ref.Equal(q))
}
