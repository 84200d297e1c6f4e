package stats

import (
	"context"
	"math/rand"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aria-lang/nucmer-go/internal/nucmer"
	"github.com/aria-lang/nucmer-go/internal/sequence"
)

func TestFromSequences(t *testing.T) {
	sequences := make([]*sequence.Sequence, 0)

	s1, _ := sequence.New("ATGC")     // len=4, GC=0.5
	s2, _ := sequence.New("ATGCATGN") // len=8, one ambiguous
	s3, _ := sequence.New("GGCC")     // len=4, GC=1.0

	sequences = append(sequences, s1, s2, s3)

	stats, err := FromSequences(sequences)
	require.NoError(t, err)

	assert.Equal(t, 3, stats.Count)
	assert.Equal(t, 16, stats.TotalBases)
	assert.Equal(t, 4, stats.MinLength)
	assert.Equal(t, 8, stats.MaxLength)
	assert.InDelta(t, 16.0/3.0, stats.MeanLength, 0.0001)
	assert.Equal(t, 4, stats.MedianLength) // sorted: 4, 4, 8; middle = 4
	assert.Equal(t, 1, stats.TotalAmbiguous)
}

func TestFromSequencesEmpty(t *testing.T) {
	_, err := FromSequences([]*sequence.Sequence{})
	require.Error(t, err)
}

func TestN50Calculation(t *testing.T) {
	sequences := make([]*sequence.Sequence, 0)

	// Lengths 100, 80, 60, 40, 20: total 300, half 150, 100 + 80 >= 150
	for _, n := range []int{100, 80, 60, 40, 20} {
		s, err := sequence.New(generateSeq(n))
		require.NoError(t, err)
		sequences = append(sequences, s)
	}

	stats, err := FromSequences(sequences)
	require.NoError(t, err)

	assert.Equal(t, 80, stats.N50)
}

func generateSeq(length int) string {
	bases := []byte{'A', 'T', 'G', 'C'}
	result := make([]byte, length)
	for i := 0; i < length; i++ {
		result[i] = bases[i%4]
	}
	return string(result)
}

func randomSeq(t testing.TB, id string, seed int64, n int) *sequence.Sequence {
	r := rand.New(rand.NewSource(seed))
	b := make([]byte, n)
	for i := range b {
		b[i] = "ACGT"[r.Intn(4)]
	}
	s, err := sequence.WithID(string(b), id)
	require.NoError(t, err)
	return s
}

func TestFromAlignments(t *testing.T) {
	ref := randomSeq(t, "ref", 1, 1000)
	hit, err := sequence.WithID(ref.Bases[100:400], "hit")
	require.NoError(t, err)
	miss := randomSeq(t, "miss", 2, 100)

	logger, _ := test.NewNullLogger()
	opts := nucmer.DefaultOptions()
	opts.Logger = logger

	refs := []*sequence.Sequence{ref}
	results, err := nucmer.New(opts).Align(context.Background(), refs, []*sequence.Sequence{hit, miss})
	require.NoError(t, err)

	stats := FromAlignments(refs, results)
	assert.Equal(t, 2, stats.Queries)
	assert.Equal(t, 1, stats.AlignedQueries)
	assert.Equal(t, 1, stats.Segments)
	assert.Equal(t, 1, stats.ForwardCount)
	assert.Equal(t, 300, stats.AlignedBases)
	assert.InDelta(t, 1.0, stats.MeanIdentity, 0.0001)
	assert.InDelta(t, 0.3, stats.ReferenceCoverage, 0.0001)
	assert.InDelta(t, 0.75, stats.QueryCoverage, 0.0001)
	assert.Contains(t, stats.String(), "queries aligned: 1 / 2")
}

func TestFromAlignmentsEmpty(t *testing.T) {
	stats := FromAlignments(nil, nil)
	assert.Zero(t, stats.Segments)
	assert.Zero(t, stats.MeanIdentity)
	assert.Zero(t, stats.ReferenceCoverage)
}

func TestCoveredLength(t *testing.T) {
	tests := []struct {
		name      string
		intervals []interval
		want      int
	}{
		{"none", nil, 0},
		{"single", []interval{{0, 9}}, 10},
		{"disjoint", []interval{{20, 29}, {0, 9}}, 20},
		{"overlapping", []interval{{0, 9}, {5, 14}}, 15},
		{"adjacent", []interval{{0, 9}, {10, 19}}, 20},
		{"contained", []interval{{0, 99}, {10, 19}}, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, coveredLength(tt.intervals))
		})
	}
}

func BenchmarkFromSequences(b *testing.B) {
	sequences := make([]*sequence.Sequence, 100)
	for i := 0; i < 100; i++ {
		sequences[i], _ = sequence.New(generateSeq(1000))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = FromSequences(sequences)
	}
}
