// Package cluster groups seed matches that lie on a consistent diagonal into
// collinear clusters.
//
// Matches are first linked with a union-find over pairs that are close on
// both sequences and whose diagonals differ by at most the allowed indel
// slack. Every linked group is then chained by dynamic programming, trimming
// overlapping matches, and chains scoring below MinimumScore are dropped.
package cluster

import (
	"fmt"
	"sort"

	"github.com/aria-lang/nucmer-go/internal/mum"
)

// Builder defaults.
const (
	DefaultFixedSeparation   = 5
	DefaultMaximumSeparation = 90
	DefaultMinimumScore      = 65
	DefaultSeparationFactor  = 0.12

	// UseDefault selects the default for a Builder parameter.
	UseDefault = -1
)

// Cluster is an ordered run of matches on one diagonal band.
type Cluster struct {
	Matches   []mum.Match
	Direction mum.Direction

	// IsFused is set once the cluster has been consumed by chain extension.
	IsFused bool
}

// Score returns the total length of the cluster's matches.
func (c *Cluster) Score() int {
	total := 0
	for _, m := range c.Matches {
		total += m.Length
	}
	return total
}

// First returns the first match of the cluster.
func (c *Cluster) First() mum.Match {
	return c.Matches[0]
}

// Last returns the last match of the cluster.
func (c *Cluster) Last() mum.Match {
	return c.Matches[len(c.Matches)-1]
}

func (c *Cluster) String() string {
	return fmt.Sprintf("Cluster { matches: %d, score: %d, %s, fused: %v }",
		len(c.Matches), c.Score(), c.Direction, c.IsFused)
}

// Builder holds the clustering tolerances.
type Builder struct {
	// FixedSeparation is the diagonal difference always tolerated.
	FixedSeparation int
	// MaximumSeparation is the largest gap allowed between chained matches.
	MaximumSeparation int
	// MinimumScore is the smallest total match length kept as a cluster.
	MinimumScore int
	// SeparationFactor scales the gap into additional diagonal slack.
	SeparationFactor float64
}

// DefaultBuilder returns a Builder with the default tolerances.
func DefaultBuilder() *Builder {
	return &Builder{
		FixedSeparation:   DefaultFixedSeparation,
		MaximumSeparation: DefaultMaximumSeparation,
		MinimumScore:      DefaultMinimumScore,
		SeparationFactor:  DefaultSeparationFactor,
	}
}

// NewBuilder creates a Builder. UseDefault (-1) selects the default for a
// parameter; any other negative value is rejected.
func NewBuilder(fixedSeparation, maximumSeparation, minimumScore int, separationFactor float64) (*Builder, error) {
	b := DefaultBuilder()

	pick := func(name string, v int, dst *int) error {
		switch {
		case v == UseDefault:
		case v < 0:
			return fmt.Errorf("%s must be non-negative, got %d", name, v)
		default:
			*dst = v
		}
		return nil
	}

	if err := pick("fixed separation", fixedSeparation, &b.FixedSeparation); err != nil {
		return nil, err
	}
	if err := pick("maximum separation", maximumSeparation, &b.MaximumSeparation); err != nil {
		return nil, err
	}
	if err := pick("minimum score", minimumScore, &b.MinimumScore); err != nil {
		return nil, err
	}

	switch {
	case separationFactor == UseDefault:
	case separationFactor < 0:
		return nil, fmt.Errorf("separation factor must be non-negative, got %g", separationFactor)
	default:
		b.SeparationFactor = separationFactor
	}

	return b, nil
}

// BuildClusters groups matches into clusters. The input slice is not
// modified. Clusters are returned ordered by their first reference position,
// each with matches ascending by reference position.
func (b *Builder) BuildClusters(matches []mum.Match) []*Cluster {
	var forward, reverse []mum.Match
	for _, m := range matches {
		if m.Direction == mum.Reverse {
			reverse = append(reverse, m)
		} else {
			forward = append(forward, m)
		}
	}

	clusters := b.buildDirection(forward, mum.Forward)
	clusters = append(clusters, b.buildDirection(reverse, mum.Reverse)...)

	sort.SliceStable(clusters, func(i, j int) bool {
		a, c := clusters[i].First(), clusters[j].First()
		if a.RefStart != c.RefStart {
			return a.RefStart < c.RefStart
		}
		return a.QueryStart < c.QueryStart
	})

	return clusters
}

func (b *Builder) buildDirection(matches []mum.Match, dir mum.Direction) []*Cluster {
	if len(matches) == 0 {
		return nil
	}

	ms := make([]mum.Match, len(matches))
	copy(ms, matches)
	mum.SortByReference(ms)

	uf := newUnionFind(len(ms))
	for i := range ms {
		for j := i + 1; j < len(ms); j++ {
			if ms[j].RefStart-ms[i].RefEnd() > b.MaximumSeparation {
				break
			}
			if b.compatible(ms[i], ms[j]) {
				uf.union(i, j)
			}
		}
	}

	var clusters []*Cluster
	for _, group := range uf.groups() {
		members := make([]mum.Match, len(group))
		for k, idx := range group {
			members[k] = ms[idx]
		}
		clusters = append(clusters, b.chain(members, dir)...)
	}

	return clusters
}

// compatible reports whether c may follow a in one cluster.
func (b *Builder) compatible(a, c mum.Match) bool {
	if c.QueryStart <= a.QueryStart || c.RefStart <= a.RefStart {
		return false
	}

	gapRef := c.RefStart - a.RefEnd()
	gapQuery := c.QueryStart - a.QueryEnd()
	separation := max(gapRef, gapQuery)
	if separation > b.MaximumSeparation {
		return false
	}
	if separation < 0 {
		separation = 0
	}

	diff := abs(c.Diagonal() - a.Diagonal())
	return diff <= max(b.FixedSeparation, int(b.SeparationFactor*float64(separation)))
}

// chain repeatedly extracts the best scoring chain from members until no
// match is left.
func (b *Builder) chain(members []mum.Match, dir mum.Direction) []*Cluster {
	var clusters []*Cluster

	for len(members) > 0 {
		n := len(members)
		score := make([]int, n)
		from := make([]int, n)
		adjust := make([]int, n)

		best := 0
		for k := 0; k < n; k++ {
			score[k] = members[k].Length
			from[k] = -1

			for l := 0; l < k; l++ {
				if !b.compatible(members[l], members[k]) {
					continue
				}
				olap := max(0, max(members[l].RefEnd()-members[k].RefStart,
					members[l].QueryEnd()-members[k].QueryStart))
				// Trimming must leave at least two symbols.
				if members[k].Length-olap < 2 {
					continue
				}
				if s := score[l] + members[k].Length - olap; s > score[k] {
					score[k] = s
					from[k] = l
					adjust[k] = olap
				}
			}

			if score[k] > score[best] {
				best = k
			}
		}

		used := make([]bool, n)
		var chained []mum.Match
		for k := best; k >= 0; k = from[k] {
			used[k] = true
			chained = append(chained, members[k].Trim(adjust[k]))
		}
		for i, j := 0, len(chained)-1; i < j; i, j = i+1, j-1 {
			chained[i], chained[j] = chained[j], chained[i]
		}

		if score[best] >= b.MinimumScore {
			clusters = append(clusters, &Cluster{Matches: chained, Direction: dir})
		}

		var rest []mum.Match
		for k, m := range members {
			if !used[k] {
				rest = append(rest, m)
			}
		}
		members = rest
	}

	return clusters
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// SortKey selects the ordering applied by SortClusters.
type SortKey int

const (
	// ByFirstSequenceStart orders clusters by the reference start of their
	// first match.
	ByFirstSequenceStart SortKey = iota
)

// SortClusters orders clusters in place. It panics on an unknown key.
func SortClusters(clusters []*Cluster, key SortKey) {
	switch key {
	case ByFirstSequenceStart:
		sort.SliceStable(clusters, func(i, j int) bool {
			return clusters[i].First().RefStart < clusters[j].First().RefStart
		})
	default:
		panic(fmt.Sprintf("cluster: unknown sort key %d", key))
	}
}
