package sequence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustSeqs(t *testing.T, bases ...string) []*Sequence {
	t.Helper()
	seqs := make([]*Sequence, len(bases))
	for i, b := range bases {
		s, err := New(b)
		require.NoError(t, err)
		seqs[i] = s
	}
	return seqs
}

func TestConcatenate(t *testing.T) {
	c, err := Concatenate(mustSeqs(t, "ACGT", "GG", "TTTAA"))
	require.NoError(t, err)

	assert.Equal(t, "ACGT+GG+TTTAA", string(c.Bases))
	assert.Equal(t, 13, c.Len())
	assert.Equal(t, 0, c.Offset(0))
	assert.Equal(t, 5, c.Offset(1))
	assert.Equal(t, 8, c.Offset(2))
}

func TestConcatenateSingle(t *testing.T) {
	c, err := Concatenate(mustSeqs(t, "ACGT"))
	require.NoError(t, err)
	assert.Equal(t, "ACGT", string(c.Bases))
}

func TestConcatenateErrors(t *testing.T) {
	_, err := Concatenate(nil)
	require.Error(t, err)

	_, err = Concatenate([]*Sequence{nil})
	require.Error(t, err)

	bad := &Sequence{Bases: "AC+GT", ID: "bad", SeqType: DNA}
	_, err = Concatenate([]*Sequence{bad})
	require.Error(t, err)
	assert.IsType(t, &SeparatorError{}, err)
}

func TestLocateRoundTrip(t *testing.T) {
	seqs := mustSeqs(t, "ACGTACGT", "G", "TTTAACCGG", "AC")
	c, err := Concatenate(seqs)
	require.NoError(t, err)

	for i, s := range seqs {
		for k := 0; k < s.Len(); k++ {
			idx, local, ok := c.Locate(c.Offset(i) + k)
			require.True(t, ok, "sequence %d offset %d", i, k)
			assert.Equal(t, i, idx)
			assert.Equal(t, k, local)
		}
	}
}

func TestLocateSeparatorAndRange(t *testing.T) {
	c, err := Concatenate(mustSeqs(t, "ACGT", "GG"))
	require.NoError(t, err)

	_, _, ok := c.Locate(4)
	assert.False(t, ok, "separator")

	_, _, ok = c.Locate(-1)
	assert.False(t, ok)

	_, _, ok = c.Locate(c.Len())
	assert.False(t, ok)
}
