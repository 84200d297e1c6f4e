package nucmer

import (
	"context"
	"errors"
	"math/rand"
	"sync/atomic"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aria-lang/nucmer-go/internal/mum"
	"github.com/aria-lang/nucmer-go/internal/sequence"
)

func randomBases(seed int64, n int) []byte {
	r := rand.New(rand.NewSource(seed))
	const alphabet = "ACGT"
	b := make([]byte, n)
	for i := range b {
		b[i] = alphabet[r.Intn(4)]
	}
	return b
}

func newSeq(t testing.TB, id string, bases []byte) *sequence.Sequence {
	t.Helper()
	s, err := sequence.WithID(string(bases), id)
	require.NoError(t, err)
	return s
}

func testOptions() (Options, *test.Hook) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	opts := DefaultOptions()
	opts.Logger = logger
	opts.Workers = 2
	return opts, hook
}

func TestAlignIdentical(t *testing.T) {
	bases := randomBases(1, 500)
	ref := newSeq(t, "ref", bases)
	query := newSeq(t, "qry", bases)

	opts, _ := testOptions()
	results, err := New(opts).Align(context.Background(),
		[]*sequence.Sequence{ref}, []*sequence.Sequence{query})
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Len(t, results[0].Segments, 1)

	seg := results[0].Segments[0]
	assert.Equal(t, 0, seg.FirstStart)
	assert.Equal(t, 499, seg.FirstEnd)
	assert.Equal(t, 0, seg.SecondStart)
	assert.Equal(t, 499, seg.SecondEnd)
	assert.Empty(t, seg.Delta.Deltas)
	assert.Equal(t, 500, seg.Score)
	assert.Equal(t, 1.0, seg.Identity)
	assert.Equal(t, string(bases), seg.Consensus)
	assert.Equal(t, "ref", seg.Reference().ID)
}

func TestAlignWithDeletion(t *testing.T) {
	bases := randomBases(2, 1000)
	bases[499], bases[500], bases[501] = 'A', 'C', 'G'

	queryBases := append(append([]byte{}, bases[:500]...), bases[501:]...)
	ref := newSeq(t, "ref", bases)
	query := newSeq(t, "qry", queryBases)

	opts, _ := testOptions()
	results, err := New(opts).Align(context.Background(),
		[]*sequence.Sequence{ref}, []*sequence.Sequence{query})
	require.NoError(t, err)
	require.Len(t, results[0].Segments, 1)

	seg := results[0].Segments[0]
	assert.Equal(t, []int{501}, seg.Delta.Deltas)
	assert.Equal(t, 501, seg.Delta.DeltaReferencePosition)
	assert.Equal(t, 999, seg.FirstEnd)
	assert.Equal(t, 998, seg.SecondEnd)
	assert.Equal(t, string(bases), seg.FirstSeq)
	assert.Equal(t, string(bases[:500])+"-"+string(bases[501:]), seg.SecondSeq)
	assert.Equal(t, 999-13-8, seg.Score)
	assert.Equal(t, "500M1D499M", seg.ToCIGAR())
	assert.Equal(t, string(bases), seg.Consensus)
}

func TestAlignReverseStrand(t *testing.T) {
	bases := randomBases(3, 600)
	forward := newSeq(t, "qry", bases[100:400])
	rc, err := forward.ReverseComplement()
	require.NoError(t, err)

	ref := newSeq(t, "ref", bases)
	query := newSeq(t, "qry", []byte(rc.Bases))

	opts, _ := testOptions()
	opts.IncludeReverse = true
	results, err := New(opts).Align(context.Background(),
		[]*sequence.Sequence{ref}, []*sequence.Sequence{query})
	require.NoError(t, err)
	require.Len(t, results[0].Segments, 1)

	seg := results[0].Segments[0]
	assert.Equal(t, mum.Reverse, seg.Direction)
	assert.Equal(t, 100, seg.FirstStart)
	assert.Equal(t, 399, seg.FirstEnd)
	assert.Equal(t, 0, seg.SecondStart)
	assert.Equal(t, 299, seg.SecondEnd)
}

func TestAlignMultipleReferences(t *testing.T) {
	a := randomBases(4, 600)
	b := randomBases(5, 600)
	queryBases := append(append([]byte{}, a[:300]...), b[:300]...)

	refs := []*sequence.Sequence{newSeq(t, "chrA", a), newSeq(t, "chrB", b)}
	query := newSeq(t, "qry", queryBases)

	opts, _ := testOptions()
	results, err := New(opts).Align(context.Background(), refs, []*sequence.Sequence{query})
	require.NoError(t, err)
	require.Len(t, results[0].Segments, 2)

	assert.Equal(t, []string{"chrA", "chrB"}, results[0].References())
	assert.Equal(t, 0, results[0].Segments[1].FirstStart)
	assert.Equal(t, 300, results[0].Segments[1].SecondStart)
}

func TestAlignSelfMatchSkipped(t *testing.T) {
	bases := randomBases(6, 300)
	s := newSeq(t, "chr1", bases)
	sameID := newSeq(t, "CHR1", bases)

	opts, _ := testOptions()
	results, err := New(opts).Align(context.Background(),
		[]*sequence.Sequence{s}, []*sequence.Sequence{s, sameID})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Empty(t, results[0].Segments)
	assert.Empty(t, results[1].Segments)
}

func TestAlignNoSeeds(t *testing.T) {
	ref := newSeq(t, "ref", randomBases(7, 1000))
	query := newSeq(t, "qry", randomBases(8, 200))

	opts, _ := testOptions()
	results, err := New(opts).Align(context.Background(),
		[]*sequence.Sequence{ref}, []*sequence.Sequence{query})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Same(t, query, results[0].Query)
	assert.Empty(t, results[0].Segments)
}

func TestAlignProteinFailsBeforeIndexing(t *testing.T) {
	protein, err := sequence.WithMetadata("MKVLAAGIVGLLLAQPAMAEEW", "prot", "", sequence.Protein)
	require.NoError(t, err)
	query := newSeq(t, "qry", randomBases(9, 100))

	opts, hook := testOptions()
	calls := int32(0)
	opts.OnQueryDone = func(int, *PairwiseAlignment) { atomic.AddInt32(&calls, 1) }

	results, err := New(opts).Align(context.Background(),
		[]*sequence.Sequence{protein}, []*sequence.Sequence{query})
	require.Error(t, err)
	assert.Nil(t, results)

	var alphabetErr *AlphabetError
	require.True(t, errors.As(err, &alphabetErr))
	assert.Equal(t, sequence.Protein, alphabetErr.Found)

	assert.Empty(t, hook.AllEntries(), "nothing is indexed or logged")
	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestAlignSingle(t *testing.T) {
	bases := randomBases(10, 400)
	opts, _ := testOptions()
	al := New(opts)

	_, err := al.AlignSingle(context.Background(), []*sequence.Sequence{newSeq(t, "only", bases)})
	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))

	results, err := al.AlignSingle(context.Background(), []*sequence.Sequence{
		newSeq(t, "ref", bases), newSeq(t, "q1", bases[50:350]), newSeq(t, "q2", bases[:200]),
	})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "q1", results[0].Query.ID)
	assert.Equal(t, "q2", results[1].Query.ID)
	require.Len(t, results[0].Segments, 1)
	assert.Equal(t, 50, results[0].Segments[0].FirstStart)
}

func TestAlignProgressAndLogging(t *testing.T) {
	bases := randomBases(11, 800)
	ref := newSeq(t, "ref", bases)
	queries := []*sequence.Sequence{
		newSeq(t, "q1", bases[:300]),
		newSeq(t, "q2", bases[300:700]),
		newSeq(t, "q3", randomBases(12, 100)),
	}

	opts, hook := testOptions()
	calls := int32(0)
	opts.OnQueryDone = func(int, *PairwiseAlignment) { atomic.AddInt32(&calls, 1) }

	results, err := New(opts).Align(context.Background(), []*sequence.Sequence{ref}, queries)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.InfoLevel, hook.LastEntry().Level)
	assert.Contains(t, hook.LastEntry().Message, "aligned 3 queries")
}

func TestAlignCancelled(t *testing.T) {
	bases := randomBases(13, 400)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	opts, _ := testOptions()
	_, err := New(opts).Align(ctx, []*sequence.Sequence{newSeq(t, "ref", bases)},
		[]*sequence.Sequence{newSeq(t, "qry", bases[:200])})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func BenchmarkAlign(b *testing.B) {
	bases := randomBases(14, 50000)
	ref := newSeq(b, "ref", bases)
	query := newSeq(b, "qry", bases[10000:30000])

	opts, _ := testOptions()
	al := New(opts)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = al.Align(context.Background(), []*sequence.Sequence{ref}, []*sequence.Sequence{query})
	}
}
