package extractor

import (
	"regexp"
	"strings"
)

var (
	bulletRe = regexp.MustCompile(`^(?:[-•∙◦·]|\d{1,3}[.)]|\(?\d{1,3}\)?[.)]?|[a-zA-Z][.)])\s+`)
	headerRe = regexp.MustCompile(`(?i)^(?:page\s*\d+|\d{4}|section|part|final|midterm|exam)\b`)
)

// minQuestionLen filters out fragments that are almost certainly stray
// headers rather than questions.
const minQuestionLen = 4

// ExamQuestions segments the document's lines into one question per entry.
// A new item starts at a bullet/number marker or after a large vertical gap;
// an item closes on a trailing question mark. Likely headers and footers
// (page numbers, bare years, "Section"/"Part"/"Exam" lines) are skipped, and
// duplicates are removed while preserving first-seen order.
func ExamQuestions(doc *Document) []string {
	var items []string
	var buf []string
	lastY := 0.0
	lastSize := 0.0
	lastPage := 0
	havePrev := false

	flush := func() {
		if len(buf) == 0 {
			return
		}
		s := strings.Join(strings.Fields(strings.Join(buf, " ")), " ")
		if s != "" {
			items = append(items, s)
		}
		buf = buf[:0]
	}

	for _, ln := range doc.Lines {
		text := ln.Text
		if headerRe.MatchString(strings.ToLower(text)) {
			continue
		}

		// A page change or a large vertical gap starts a new item.
		if havePrev {
			if ln.Page != lastPage || lastY-ln.Y > maxf(20.0, 2.2*lastSize) {
				flush()
			}
		}

		if bulletRe.MatchString(text) {
			flush()
			text = bulletRe.ReplaceAllString(text, "")
		}

		buf = append(buf, text)

		if strings.HasSuffix(strings.TrimRight(text, " "), "?") {
			flush()
		}

		lastY = ln.Y
		lastPage = ln.Page
		if ln.Size > 0 {
			lastSize = ln.Size
		}
		havePrev = true
	}
	flush()

	seen := make(map[string]bool)
	out := make([]string, 0, len(items))
	for _, s := range items {
		if len(s) < minQuestionLen || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
