// Package extractor pulls text lines out of slide and exam PDFs and applies
// the layout heuristics that turn them into topic and question candidates.
// PDF parsing itself is delegated to github.com/ledongthuc/pdf; this package
// only works with the positioned text the library reports.
package extractor

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// defaultPageHeight is used when a page carries no usable MediaBox (A4).
const defaultPageHeight = 842.0

// Line is one visual text line with its position and average font size.
// Y is the baseline of the line in PDF coordinates (origin bottom-left).
type Line struct {
	Page int
	Text string
	X    float64
	Y    float64
	Size float64
}

// Document holds the extracted lines of a PDF in visual order: page
// ascending, then top to bottom, then left to right.
type Document struct {
	Path     string
	NumPages int
	Lines    []Line
	Heights  map[int]float64
}

// Extract opens the PDF at path and collects its text lines. An unreadable
// file is an error; a page whose content stream cannot be decoded is skipped
// so one broken page does not abort the whole document.
func Extract(path string) (*Document, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF %s: %w", path, err)
	}
	defer f.Close()

	doc := &Document{
		Path:     path,
		NumPages: r.NumPage(),
		Heights:  make(map[int]float64),
	}
	for i := 1; i <= doc.NumPages; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		doc.Heights[i] = pageHeight(p)
		rows, err := p.GetTextByRow()
		if err != nil {
			continue
		}
		for _, row := range rows {
			line := buildLine(i, row)
			if line.Text == "" {
				continue
			}
			doc.Lines = append(doc.Lines, line)
		}
	}
	sortLines(doc.Lines)
	return doc, nil
}

// buildLine joins the row's fragments left to right, inserting a space only
// where the horizontal gap suggests a word break rather than a split glyph.
func buildLine(page int, row *pdf.Row) Line {
	frags := make([]pdf.Text, len(row.Content))
	copy(frags, row.Content)
	sort.SliceStable(frags, func(i, j int) bool { return frags[i].X < frags[j].X })

	var b strings.Builder
	var sizeSum float64
	var prevEnd float64
	for fi, t := range frags {
		if t.S == "" {
			continue
		}
		if fi > 0 {
			gap := t.X - prevEnd
			if gap > 0.3*maxf(t.FontSize, 1.0) && !strings.HasSuffix(b.String(), " ") {
				b.WriteString(" ")
			}
		}
		b.WriteString(t.S)
		prevEnd = t.X + t.W
		sizeSum += t.FontSize
	}

	line := Line{
		Page: page,
		Text: strings.Join(strings.Fields(b.String()), " "),
		Y:    float64(row.Position),
	}
	if len(frags) > 0 {
		line.X = frags[0].X
		line.Size = sizeSum / float64(len(frags))
	}
	return line
}

func sortLines(lines []Line) {
	sort.SliceStable(lines, func(i, j int) bool {
		if lines[i].Page != lines[j].Page {
			return lines[i].Page < lines[j].Page
		}
		if lines[i].Y != lines[j].Y {
			return lines[i].Y > lines[j].Y
		}
		return lines[i].X < lines[j].X
	})
}

func pageHeight(p pdf.Page) float64 {
	mb := p.V.Key("MediaBox")
	if mb.Kind() == pdf.Array && mb.Len() == 4 {
		if h := mb.Index(3).Float64() - mb.Index(1).Float64(); h > 0 {
			return h
		}
	}
	return defaultPageHeight
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// pageLines returns the lines belonging to one page, preserving order.
func (d *Document) pageLines(page int) []Line {
	var out []Line
	for _, ln := range d.Lines {
		if ln.Page == page {
			out = append(out, ln)
		}
	}
	return out
}

func (d *Document) pageHeightOr(page int, fallback float64) float64 {
	if h, ok := d.Heights[page]; ok && h > 0 {
		return h
	}
	return fallback
}
