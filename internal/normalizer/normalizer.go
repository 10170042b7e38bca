package normalizer

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	enumRe  = regexp.MustCompile(`^(?:[-•∙◦·]|\(?\d{1,3}\)?[.)]?|[a-z][.)])\s+`)
	punctRe = regexp.MustCompile(`[^a-z0-9\s]`)
)

var stopwords = map[string]bool{
	"the": true, "a": true, "an": true, "of": true, "and": true,
	"or": true, "to": true, "for": true, "from": true, "in": true,
	"on": true, "with": true, "without": true, "by": true, "as": true,
	"at": true, "into": true, "over": true, "under": true,
	"between": true, "among": true, "against": true,
}

// Normalize canonicalizes raw extracted text for similarity comparison:
// NFKC fold, lower-case, leading enumeration markers stripped, synonyms
// expanded to canonical terms, punctuation and stopwords removed, whitespace
// collapsed. An empty result means the record carries no content and should
// be dropped by the caller.
func Normalize(text string, aliases *AliasTable) string {
	t := strings.ToLower(strings.TrimSpace(norm.NFKC.String(text)))
	t = enumRe.ReplaceAllString(t, "")
	if aliases != nil {
		t = aliases.Expand(t)
	}
	t = punctRe.ReplaceAllString(t, " ")

	fields := strings.Fields(t)
	kept := fields[:0]
	for _, w := range fields {
		if !stopwords[w] {
			kept = append(kept, w)
		}
	}
	return strings.Join(kept, " ")
}
