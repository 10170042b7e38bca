package normalizer

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNormalizeIdempotent(t *testing.T) {
	aliases := NewAliasTable(DefaultAliases())
	inputs := []string{
		"1. Decision Tree Induction",
		"K Means clustering",
		"  What   is   PCA?  ",
		"• Outlier Detection — methods & pitfalls",
		"Naïve Bayes classifiers",
	}
	for _, in := range inputs {
		once := Normalize(in, aliases)
		twice := Normalize(once, aliases)
		if once != twice {
			t.Errorf("normalize not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestNormalizeBasics(t *testing.T) {
	aliases := NewAliasTable(nil)
	cases := []struct {
		in   string
		want string
	}{
		{"  Data   Mining  ", "data mining"},
		{"1. Clustering basics", "clustering basics"},
		{"a) Define entropy", "define entropy"},
		{"• Bullet point topic", "bullet point topic"},
		{"The role of the classifier", "role classifier"},
		{"", ""},
		{"   ", ""},
		{"•", ""},
	}
	for _, c := range cases {
		if got := Normalize(c.in, aliases); got != c.want {
			t.Errorf("Normalize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestAliasExpansionSharesTokens(t *testing.T) {
	aliases := NewAliasTable(map[string][]string{
		"k-means": {"kmeans", "k means"},
	})
	a := Normalize("K Means clustering", aliases)
	b := Normalize("kmeans algorithm", aliases)
	if a != "k means clustering" {
		t.Errorf("unexpected normalization: %q", a)
	}
	if b != "k means algorithm" {
		t.Errorf("unexpected normalization: %q", b)
	}
}

func TestAliasLongestMatchFirst(t *testing.T) {
	// The short alias "k" must not fire inside "k-means".
	aliases := NewAliasTable(map[string][]string{
		"thousand": {"k"},
		"k-means":  {"k-means clustering"},
	})
	got := Normalize("k-means clustering", aliases)
	if got != "k means" {
		t.Errorf("short alias shadowed a longer one: %q", got)
	}
}

func TestLoadAliasTableMergesUserFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aliases.json")
	if err := os.WriteFile(path, []byte(`{"decision tree": ["gini index"]}`), 0644); err != nil {
		t.Fatalf("failed to write alias file: %v", err)
	}
	aliases, err := LoadAliasTable(path)
	if err != nil {
		t.Fatalf("failed to load alias table: %v", err)
	}
	if got := Normalize("Gini Index pruning", aliases); got != "decision tree pruning" {
		t.Errorf("user alias not applied: %q", got)
	}
	// Defaults for other keys survive the merge.
	if got := Normalize("PCA overview", aliases); got != "principal component analysis overview" {
		t.Errorf("default alias lost after merge: %q", got)
	}
}

func TestLoadAliasTableMalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aliases.json")
	if err := os.WriteFile(path, []byte(`{"broken":`), 0644); err != nil {
		t.Fatalf("failed to write alias file: %v", err)
	}
	if _, err := LoadAliasTable(path); err == nil {
		t.Fatal("expected error for malformed alias JSON")
	}
}

func TestLoadAliasTableMissingPathUsesDefaults(t *testing.T) {
	aliases, err := LoadAliasTable("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := Normalize("SVM kernels", aliases); got != "support vector machine kernels" {
		t.Errorf("default alias not applied: %q", got)
	}
}
