package nucmer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aria-lang/nucmer-go/internal/cluster"
	"github.com/aria-lang/nucmer-go/internal/mum"
	"github.com/aria-lang/nucmer-go/internal/sequence"
)

func twoReferences(t *testing.T) (*sequence.Concatenated, []byte, []byte) {
	a := randomBases(30, 100)
	b := randomBases(31, 100)
	refs, err := sequence.Concatenate([]*sequence.Sequence{newSeq(t, "a", a), newSeq(t, "b", b)})
	require.NoError(t, err)
	return refs, a, b
}

func TestBuildSyntenies(t *testing.T) {
	refs, a, b := twoReferences(t)
	queryBases := append(append([]byte{}, a[:50]...), b[:50]...)
	query := newSeq(t, "qry", queryBases)

	clusters := []*cluster.Cluster{
		newCluster(match(0, 0, 50), match(101, 50, 50)),
		newCluster(match(121, 70, 20)),
	}

	syntenies := BuildSyntenies(refs, query, clusters)
	require.Len(t, syntenies, 2)

	assert.Equal(t, "a", syntenies[0].Reference.ID)
	assert.Equal(t, "b", syntenies[1].Reference.ID)
	require.Len(t, syntenies[0].Clusters, 1)
	require.Len(t, syntenies[1].Clusters, 2, "split cluster plus the later one")

	assert.Equal(t, match(0, 50, 50), syntenies[1].Clusters[0].First())
	assert.Equal(t, match(20, 70, 20), syntenies[1].Clusters[1].First())

	for _, s := range syntenies {
		assert.Same(t, query, s.Query)
		assert.Equal(t, s.Reference.Len(), len(s.ref))
		for _, c := range s.Clusters {
			for _, m := range c.Matches {
				assert.Equal(t,
					string(s.ref[m.RefStart:m.RefEnd()]),
					string(s.queryBases(m.Direction)[m.QueryStart:m.QueryEnd()]))
			}
		}
	}
}

func TestBuildSyntenyDropsInvalidMatches(t *testing.T) {
	refs, a, _ := twoReferences(t)
	query := newSeq(t, "qry", a)

	clusters := []*cluster.Cluster{
		newCluster(match(100, 0, 5)),
		newCluster(match(80, 80, 30)),
		newCluster(match(10, 10, 1)),
		newCluster(match(500, 0, 20)),
	}

	assert.Empty(t, BuildSyntenies(refs, query, clusters))
}

func TestBuildSyntenyCaseDistinctReferences(t *testing.T) {
	a := randomBases(32, 100)
	refs, err := sequence.Concatenate([]*sequence.Sequence{newSeq(t, "chrA", a), newSeq(t, "chra", a)})
	require.NoError(t, err)
	query := newSeq(t, "qry", a)

	clusters := []*cluster.Cluster{
		newCluster(match(0, 0, 50)),
		newCluster(match(101, 0, 50)),
	}

	syntenies := BuildSyntenies(refs, query, clusters)
	require.Len(t, syntenies, 2)
	assert.Equal(t, "chrA", syntenies[0].Reference.ID)
	assert.Equal(t, "chra", syntenies[1].Reference.ID)
	assert.Equal(t, match(0, 0, 50), syntenies[1].Clusters[0].First())
}

func TestQueryStrands(t *testing.T) {
	query := newSeq(t, "qry", []byte("AACGTT"+"GGGC"))

	strands := queryStrands(query, []*cluster.Cluster{newCluster(match(0, 0, 5))})
	assert.Equal(t, "AACGTTGGGC", string(strands[mum.Forward]))
	assert.Nil(t, strands[mum.Reverse])

	rev := newCluster(mum.Match{Length: 5, Direction: mum.Reverse})
	strands = queryStrands(query, []*cluster.Cluster{rev})
	assert.Equal(t, "GCCCAACGTT", string(strands[mum.Reverse]))
}
