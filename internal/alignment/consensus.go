package alignment

// ConsensusResolver returns one consensus symbol for the symbols aligned at a
// column.
type ConsensusResolver func(symbols []byte) byte

// 4-bit mask per nucleotide, U folded onto T.
var iupacMask = map[byte]uint8{
	'A': 1 << 0,
	'C': 1 << 1,
	'G': 1 << 2,
	'T': 1 << 3,
	'U': 1 << 3,
	'R': (1 << 0) | (1 << 2),
	'Y': (1 << 1) | (1 << 3),
	'S': (1 << 1) | (1 << 2),
	'W': (1 << 0) | (1 << 3),
	'K': (1 << 2) | (1 << 3),
	'M': (1 << 0) | (1 << 1),
	'B': (1 << 1) | (1 << 2) | (1 << 3),
	'D': (1 << 0) | (1 << 2) | (1 << 3),
	'H': (1 << 0) | (1 << 1) | (1 << 3),
	'V': (1 << 0) | (1 << 1) | (1 << 2),
	'N': (1 << 0) | (1 << 1) | (1 << 2) | (1 << 3),
}

var iupacCode = func() [16]byte {
	var codes [16]byte
	for _, c := range []byte("ACGTRYSWKMBDHVN") {
		codes[iupacMask[c]] = c
	}
	return codes
}()

// IUPACConsensus resolves a column to its IUPAC ambiguity code. Gaps are
// ignored unless every symbol is a gap; symbols outside the IUPAC alphabet
// resolve to N.
func IUPACConsensus(symbols []byte) byte {
	var mask uint8
	rna := false
	for _, s := range symbols {
		if s == Gap {
			continue
		}
		s = upper(s)
		if s == 'U' {
			rna = true
		}
		m, ok := iupacMask[s]
		if !ok {
			return 'N'
		}
		mask |= m
	}

	if mask == 0 {
		return Gap
	}
	c := iupacCode[mask]
	if rna && c == 'T' {
		return 'U'
	}
	return c
}

// MakeConsensus builds the column-wise consensus of two gapped sequences
// using resolve, or IUPACConsensus when resolve is nil.
func MakeConsensus(ref, query []byte, resolve ConsensusResolver) []byte {
	if resolve == nil {
		resolve = IUPACConsensus
	}

	n := len(ref)
	if len(query) < n {
		n = len(query)
	}

	out := make([]byte, n)
	column := make([]byte, 2)
	for i := 0; i < n; i++ {
		column[0], column[1] = ref[i], query[i]
		out[i] = resolve(column)
	}
	return out
}
