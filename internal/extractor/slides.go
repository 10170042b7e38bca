package extractor

import "sort"

// PageTitle is the heading picked for one slide page. Title may be empty
// when the page has no text at all; such records are dropped downstream.
type PageTitle struct {
	Page  int
	Title string
}

// SlideTitles picks one title per page: the largest-font line in the top
// topRatio of the page, merging an immediately-adjacent second line when its
// font size is within mergeThreshold of the title's. Pages outside the top
// band fall back to the largest-font line anywhere on the page, which copes
// with decks that draw headings lower than usual.
func SlideTitles(doc *Document, topRatio, mergeThreshold float64) []PageTitle {
	out := make([]PageTitle, 0, doc.NumPages)
	for page := 1; page <= doc.NumPages; page++ {
		lines := doc.pageLines(page)
		if len(lines) == 0 {
			out = append(out, PageTitle{Page: page})
			continue
		}
		height := doc.pageHeightOr(page, defaultPageHeight)
		out = append(out, PageTitle{
			Page:  page,
			Title: pickTitle(lines, height, topRatio, mergeThreshold),
		})
	}
	return out
}

func pickTitle(lines []Line, pageHeight, topRatio, mergeThreshold float64) string {
	topCut := pageHeight * (1 - topRatio)
	var top []Line
	for _, ln := range lines {
		if ln.Y >= topCut {
			top = append(top, ln)
		}
	}
	if len(top) == 0 {
		top = lines
	}

	// Largest average font size wins; ties go to the higher line.
	sort.SliceStable(top, func(i, j int) bool {
		if top[i].Size != top[j].Size {
			return top[i].Size > top[j].Size
		}
		return top[i].Y > top[j].Y
	})
	title := top[0]

	// Two-line headings: merge the closest line below when it looks like a
	// continuation (similar size, vertically adjacent, left-aligned).
	var below []Line
	for _, ln := range lines {
		if ln.Y < title.Y {
			below = append(below, ln)
		}
	}
	sort.SliceStable(below, func(i, j int) bool {
		return title.Y-below[i].Y < title.Y-below[j].Y
	})
	for _, ln := range below {
		sizeSim := minf(title.Size, ln.Size) / maxf(maxf(title.Size, ln.Size), 1e-6)
		adjacent := title.Y-ln.Y <= 2.0*maxf(title.Size, 1.0)
		aligned := absf(ln.X-title.X) <= maxf(10.0, title.Size*0.8)
		if sizeSim >= mergeThreshold && adjacent && aligned {
			return title.Text + " " + ln.Text
		}
	}
	return title.Text
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func absf(a float64) float64 {
	if a < 0 {
		return -a
	}
	return a
}
