package matcher

import "testing"

func TestScoreIdenticalStrings(t *testing.T) {
	cases := []string{
		"decision tree induction",
		"k means clustering",
		"x",
	}
	for _, s := range cases {
		if got := Score(s, s); got != 1.0 {
			t.Errorf("Score(%q, %q) = %v, want 1.0", s, s, got)
		}
	}
}

func TestScoreDisjointTokens(t *testing.T) {
	cases := [][2]string{
		{"decision tree induction", "what is k means"},
		{"alpha beta", "gamma delta"},
		{"abc", "abd"}, // similar characters but no shared token
	}
	for _, c := range cases {
		if got := Score(c[0], c[1]); got != 0.0 {
			t.Errorf("Score(%q, %q) = %v, want 0.0", c[0], c[1], got)
		}
	}
}

func TestScoreEmptyStrings(t *testing.T) {
	if got := Score("", ""); got != 0.0 {
		t.Errorf("Score of two empty strings = %v, want 0.0", got)
	}
	if got := Score("topic", ""); got != 0.0 {
		t.Errorf("Score against empty string = %v, want 0.0", got)
	}
}

func TestScoreMonotonicInSharedTokens(t *testing.T) {
	base := "alpha beta gamma delta"
	moreShared := Score(base, "alpha beta gamma zeta")
	lessShared := Score(base, "alpha zeta eta theta")
	if moreShared <= lessShared {
		t.Errorf("score not monotonic in shared tokens: %v <= %v", moreShared, lessShared)
	}
}

func TestScoreAliasConvergedStrings(t *testing.T) {
	// The normalized forms of "K Means clustering" and "kmeans algorithm"
	// after alias expansion; they must clear a sensible threshold.
	got := Score("k means clustering", "k means algorithm")
	if got < 0.55 {
		t.Errorf("Score = %v, want >= 0.55", got)
	}
	if got >= 1.0 {
		t.Errorf("Score = %v, want < 1.0 for different strings", got)
	}
}

func TestSeqRatioBounds(t *testing.T) {
	if got := seqRatio("abcd", "abcd"); got != 1.0 {
		t.Errorf("seqRatio of identical strings = %v, want 1.0", got)
	}
	if got := seqRatio("abcd", "wxyz"); got != 0.0 {
		t.Errorf("seqRatio with no common characters = %v, want 0.0", got)
	}
	mid := seqRatio("abcdef", "abcxyz")
	if mid <= 0.0 || mid >= 1.0 {
		t.Errorf("seqRatio = %v, want in (0, 1)", mid)
	}
}
