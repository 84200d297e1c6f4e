package nucmer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aria-lang/nucmer-go/internal/mum"
)

func TestReferencePosition(t *testing.T) {
	tests := []struct {
		name   string
		deltas []int
		want   int
	}{
		{"empty", nil, 0},
		{"single deletion", []int{501}, 501},
		{"single insertion", []int{-4}, 3},
		{"mixed", []int{3, -2, -1}, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ReferencePosition(tt.deltas))
		})
	}
}

func TestConvertDeltaToAlignment(t *testing.T) {
	tests := []struct {
		name       string
		ref, query string
		deltas     []int
		wantFirst  string
		wantSecond string
	}{
		{
			name: "ungapped",
			ref:  "ACGTACGT", query: "ACGTACGT",
			wantFirst: "ACGTACGT", wantSecond: "ACGTACGT",
		},
		{
			name: "reference symbol against gap",
			ref:  "ACGTACGT", query: "ACGACGT",
			deltas:    []int{4},
			wantFirst: "ACGTACGT", wantSecond: "ACG-ACGT",
		},
		{
			name: "gap against query symbol",
			ref:  "ACGT", query: "AGCGT",
			deltas:    []int{-2},
			wantFirst: "A-CGT", wantSecond: "AGCGT",
		},
		{
			name: "adjacent indels",
			ref:  "AACCG", query: "AATCG",
			deltas:    []int{3, -1},
			wantFirst: "AAC-CG", wantSecond: "AA-TCG",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &DeltaAlignment{
				FirstEnd:   len(tt.ref) - 1,
				SecondEnd:  len(tt.query) - 1,
				Deltas:     tt.deltas,
				refBases:   []byte(tt.ref),
				queryBases: []byte(tt.query),
			}

			a := ConvertDeltaToAlignment(d)
			assert.Equal(t, tt.wantFirst, a.FirstSeq)
			assert.Equal(t, tt.wantSecond, a.SecondSeq)
			assert.Equal(t, len(a.FirstSeq), len(a.SecondSeq))
			assert.Equal(t, d.FirstEnd, a.FirstEnd)
			assert.Equal(t, d.SecondEnd, a.SecondEnd)
		})
	}
}

func TestConvertDeltaToAlignmentOffsets(t *testing.T) {
	ref := []byte("TTTTTACGTA")
	query := []byte("GGACGTA")

	d := NewDeltaAlignment(nil, nil, ref, query, mum.Match{RefStart: 5, QueryStart: 2, Length: 5})
	a := ConvertDeltaToAlignment(d)
	assert.Equal(t, "ACGTA", a.FirstSeq)
	assert.Equal(t, 0, a.FirstOffset)
	assert.Equal(t, 3, a.SecondOffset)
	assert.Equal(t, mum.Forward, a.Direction)

	d = NewDeltaAlignment(nil, nil, query, ref, mum.Match{RefStart: 2, QueryStart: 5, Length: 5, Direction: mum.Reverse})
	a = ConvertDeltaToAlignment(d)
	assert.Equal(t, 3, a.FirstOffset)
	assert.Equal(t, 0, a.SecondOffset)
	assert.Equal(t, mum.Reverse, a.Direction)
}

func TestAppendDeltas(t *testing.T) {
	d := &DeltaAlignment{FirstEnd: 5, Deltas: []int{4}, DeltaReferencePosition: 4}

	d.appendDeltas(nil)
	assert.Equal(t, []int{4}, d.Deltas)

	d.appendDeltas([]int{6, -1})
	assert.Equal(t, []int{4, 8, -1}, d.Deltas)
	assert.Equal(t, 12, d.DeltaReferencePosition)

	neg := &DeltaAlignment{FirstEnd: 9}
	neg.appendDeltas([]int{-3})
	assert.Equal(t, []int{-13}, neg.Deltas)
	assert.Equal(t, 12, neg.DeltaReferencePosition)
}

func TestJoin(t *testing.T) {
	ref := []byte("ACGTACGTACGTAC")
	query := []byte("ACGTACGACGTAC")

	head := &DeltaAlignment{FirstEnd: 5, SecondEnd: 5, refBases: ref, queryBases: query}
	tail := &DeltaAlignment{
		FirstStart: 6, FirstEnd: 13, SecondStart: 6, SecondEnd: 12,
		Deltas: []int{2}, DeltaReferencePosition: 2,
	}
	head.join(tail)

	assert.Equal(t, 13, head.FirstEnd)
	assert.Equal(t, 12, head.SecondEnd)
	require.Equal(t, []int{8}, head.Deltas)

	a := ConvertDeltaToAlignment(head)
	assert.Equal(t, string(ref), a.FirstSeq)
	assert.Equal(t, "ACGTACG-ACGTAC", a.SecondSeq)
	assert.Equal(t, 1, head.Errors())
}
