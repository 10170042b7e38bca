package matcher

import "strings"

// Score combines a character-sequence ratio with two token-set measures.
// The weights were tuned for short topic-vs-question strings. Contract:
// identical strings score exactly 1.0, strings sharing no tokens score 0.0,
// and the score grows with the proportion of shared tokens.
func Score(a, b string) float64 {
	if a == b {
		if a == "" {
			return 0.0
		}
		return 1.0
	}
	aToks, bToks := tokens(a), tokens(b)
	inter := intersection(aToks, bToks)
	if inter == 0 {
		return 0.0
	}
	j := jaccard(aToks, bToks, inter)
	o := overlap(aToks, bToks, inter)
	c := seqRatio(a, b)
	return 0.40*c + 0.30*j + 0.30*o
}

func tokens(s string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(s) {
		set[w] = true
	}
	return set
}

func intersection(a, b map[string]bool) int {
	n := 0
	for w := range a {
		if b[w] {
			n++
		}
	}
	return n
}

func jaccard(a, b map[string]bool, inter int) float64 {
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0.0
	}
	return float64(inter) / float64(union)
}

func overlap(a, b map[string]bool, inter int) float64 {
	denom := len(a)
	if len(b) < denom {
		denom = len(b)
	}
	if denom == 0 {
		return 0.0
	}
	return float64(inter) / float64(denom)
}

// seqRatio is the classic matching-blocks ratio: 2*M/T where M is the total
// length of the longest matching blocks and T the combined length.
func seqRatio(a, b string) float64 {
	ar, br := []rune(a), []rune(b)
	total := len(ar) + len(br)
	if total == 0 {
		return 0.0
	}
	return 2.0 * float64(matchLen(ar, br)) / float64(total)
}

func matchLen(a, b []rune) int {
	i, j, k := longestMatch(a, b)
	if k == 0 {
		return 0
	}
	return k + matchLen(a[:i], b[:j]) + matchLen(a[i+k:], b[j+k:])
}

// longestMatch finds the longest common substring, preferring the earliest
// occurrence in a, then in b, so repeated runs resolve deterministically.
func longestMatch(a, b []rune) (bestI, bestJ, bestK int) {
	b2j := make(map[rune][]int)
	for j, r := range b {
		b2j[r] = append(b2j[r], j)
	}
	runs := make(map[int]int)
	for i, r := range a {
		next := make(map[int]int)
		for _, j := range b2j[r] {
			k := runs[j-1] + 1
			next[j] = k
			if k > bestK {
				bestI, bestJ, bestK = i-k+1, j-k+1, k
			}
		}
		runs = next
	}
	return bestI, bestJ, bestK
}
