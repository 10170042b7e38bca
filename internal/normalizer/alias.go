package normalizer

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
)

// AliasTable rewrites synonyms to their canonical terms so that slide topics
// and exam questions written with different terminology still compare equal.
// All synonyms are compiled into one alternation ordered longest first, and
// expansion is a single pass: a short alias like "k" can neither shadow a
// longer one like "k-means" nor re-fire inside an already-expanded span.
type AliasTable struct {
	re        *regexp.Regexp
	canonical map[string]string
}

// DefaultAliases returns the built-in synonym map for data-mining and
// machine-learning course material. User-supplied tables are merged on top.
func DefaultAliases() map[string][]string {
	return map[string][]string{
		"naive bayes":                  {"nb", "naïve bayes"},
		"k-means":                      {"kmeans", "k means", "k-means clustering"},
		"k-medoids":                    {"kmedoids", "k medoids"},
		"hierarchical clustering":      {"agglomerative clustering", "divisive clustering"},
		"principal component analysis": {"pca"},
		"support vector machine":       {"svm", "support vector machines", "support vector classifier"},
		"decision tree":                {"dt", "id3", "c4.5", "cart"},
		"association rules":            {"apriori", "fp growth", "frequent pattern", "market basket"},
		"outlier detection":            {"anomaly detection"},
		"feature selection":            {"attribute selection"},
		"data preprocessing":           {"data preparation", "data cleaning", "data cleansing"},
		"distance measures":            {"similarity measures", "dissimilarity", "proximity"},
		"logistic regression":          {"logit"},
		"linear regression":            {"ols"},
		"neural networks":              {"ann", "mlp"},
		"k-nearest neighbors":          {"knn", "k nn", "k-nn"},
		"dimensionality reduction":     {"feature extraction"},
		"cross validation":             {"k-fold", "k fold"},
	}
}

// NewAliasTable compiles a canonical→synonyms map into a replacement table.
func NewAliasTable(aliases map[string][]string) *AliasTable {
	type pair struct {
		syn   string
		canon string
	}
	var pairs []pair
	for canon, syns := range aliases {
		canon = strings.ToLower(strings.TrimSpace(canon))
		for _, syn := range syns {
			syn = strings.ToLower(strings.TrimSpace(syn))
			if syn == "" || canon == "" {
				continue
			}
			pairs = append(pairs, pair{syn: syn, canon: canon})
		}
	}
	// Longest synonym first; lexicographic order breaks ties so two tables
	// with the same entries always expand identically. A synonym claimed by
	// several canonical terms resolves to the lexicographically smallest one.
	sort.Slice(pairs, func(i, j int) bool {
		if len(pairs[i].syn) != len(pairs[j].syn) {
			return len(pairs[i].syn) > len(pairs[j].syn)
		}
		if pairs[i].syn != pairs[j].syn {
			return pairs[i].syn < pairs[j].syn
		}
		return pairs[i].canon < pairs[j].canon
	})

	t := &AliasTable{canonical: make(map[string]string, len(pairs))}
	if len(pairs) == 0 {
		return t
	}
	alts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		if _, dup := t.canonical[p.syn]; dup {
			continue
		}
		t.canonical[p.syn] = p.canon
		alts = append(alts, regexp.QuoteMeta(p.syn))
	}
	t.re = regexp.MustCompile(`\b(?:` + strings.Join(alts, "|") + `)\b`)
	return t
}

// LoadAliasTable builds the alias table from the defaults, merged with an
// optional user JSON file mapping canonical term → list of synonyms. A
// missing path means defaults only; a malformed file is a hard error.
func LoadAliasTable(path string) (*AliasTable, error) {
	merged := DefaultAliases()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read alias file: %w", err)
		}
		var user map[string][]string
		if err := json.Unmarshal(data, &user); err != nil {
			return nil, fmt.Errorf("malformed alias file %s: %w", path, err)
		}
		for canon, syns := range user {
			lowered := make([]string, 0, len(syns))
			for _, s := range syns {
				lowered = append(lowered, strings.ToLower(s))
			}
			merged[strings.ToLower(canon)] = lowered
		}
	}
	return NewAliasTable(merged), nil
}

// Expand rewrites every whole-word synonym occurrence to its canonical term.
func (t *AliasTable) Expand(s string) string {
	if t.re == nil {
		return s
	}
	return t.re.ReplaceAllStringFunc(s, func(m string) string {
		if canon, ok := t.canonical[m]; ok {
			return canon
		}
		return m
	})
}
