package nucmer

import (
	"github.com/aria-lang/nucmer-go/internal/cluster"
	"github.com/aria-lang/nucmer-go/internal/mum"
	"github.com/aria-lang/nucmer-go/internal/sequence"
)

// Synteny holds the clusters shared by one reference and one query, with
// match coordinates local to the reference.
type Synteny struct {
	Reference *sequence.Sequence
	Query     *sequence.Sequence
	Clusters  []*cluster.Cluster

	ref     []byte
	strands [2][]byte
}

func (s *Synteny) queryBases(dir mum.Direction) []byte {
	return s.strands[dir]
}

// BuildSyntenies remaps clusters found against the concatenated references
// onto the individual references and groups them per reference, in order of
// first appearance. Matches that land on a separator, cross into the next
// reference or are shorter than two symbols are dropped. A cluster whose
// matches fall on several references is split.
func BuildSyntenies(refs *sequence.Concatenated, query *sequence.Sequence, clusters []*cluster.Cluster) []*Synteny {
	strands := queryStrands(query, clusters)

	// Keyed by reference index, not ID: references whose IDs differ only by
	// case stay separate.
	byRef := make(map[int]*Synteny)
	var syntenies []*Synteny

	for _, c := range clusters {
		current := -1
		var out *cluster.Cluster

		for _, m := range c.Matches {
			if m.Length <= 1 {
				continue
			}
			idx, local, ok := refs.Locate(m.RefStart)
			if !ok || local+m.Length > refs.Sequences[idx].Len() {
				continue
			}

			if out == nil || idx != current {
				s, found := byRef[idx]
				if !found {
					ref := refs.Sequences[idx]
					s = &Synteny{
						Reference: ref,
						Query:     query,
						ref:       refs.Bases[refs.Offset(idx) : refs.Offset(idx)+ref.Len()],
						strands:   strands,
					}
					byRef[idx] = s
					syntenies = append(syntenies, s)
				}
				out = &cluster.Cluster{Direction: c.Direction}
				s.Clusters = append(s.Clusters, out)
				current = idx
			}

			remapped := m
			remapped.RefStart = local
			out.Matches = append(out.Matches, remapped)
		}
	}

	return syntenies
}

func queryStrands(query *sequence.Sequence, clusters []*cluster.Cluster) [2][]byte {
	var strands [2][]byte
	strands[mum.Forward] = []byte(query.Bases)

	for _, c := range clusters {
		if c.Direction != mum.Reverse {
			continue
		}
		if rc, err := query.ReverseComplement(); err == nil {
			strands[mum.Reverse] = []byte(rc.Bases)
		}
		break
	}

	return strands
}

// ProcessClusters builds the syntenies of one query and extends each of them,
// returning the alignments in synteny order.
func (x *ChainExtender) ProcessClusters(refs *sequence.Concatenated, query *sequence.Sequence,
	clusters []*cluster.Cluster) []*DeltaAlignment {
	var alignments []*DeltaAlignment
	for _, s := range BuildSyntenies(refs, query, clusters) {
		alignments = append(alignments, x.ExtendClusters(s)...)
	}
	return alignments
}
