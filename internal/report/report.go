// Package report reads and writes the pipeline's file formats: the
// intermediate one-record-per-line text files and the final match CSV.
package report

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/muneebdotahmed/data-mining/internal/matcher"
)

// TopicLine is one slide-topic intermediate record, serialized as
// "page|topic". Page 0 means the page was missing or unparseable.
type TopicLine struct {
	Page int
	Text string
}

// WriteTopics writes slide topics one per line in "page|topic" form,
// creating the parent directory when needed.
func WriteTopics(path string, topics []TopicLine) error {
	f, err := createFile(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, t := range topics {
		if _, err := fmt.Fprintf(w, "%d|%s\n", t.Page, t.Text); err != nil {
			return fmt.Errorf("failed to write topics file: %w", err)
		}
	}
	return w.Flush()
}

// ReadTopics parses a topics file. Lines may be "page|topic" or a bare
// topic; a non-numeric left side falls back to the whole line as the topic.
// Blank lines and lines with an empty topic are skipped.
func ReadTopics(path string) ([]TopicLine, error) {
	lines, err := readLines(path)
	if err != nil {
		return nil, err
	}
	var out []TopicLine
	for _, raw := range lines {
		s := strings.TrimSpace(raw)
		if s == "" {
			continue
		}
		if left, right, found := strings.Cut(s, "|"); found {
			page, err := strconv.Atoi(strings.TrimSpace(left))
			if err != nil {
				page = 0
				right = s
			}
			topic := strings.TrimSpace(right)
			if topic == "" {
				continue
			}
			out = append(out, TopicLine{Page: page, Text: topic})
		} else {
			out = append(out, TopicLine{Text: s})
		}
	}
	return out, nil
}

// WriteQuestions writes exam questions one per line.
func WriteQuestions(path string, questions []string) error {
	f, err := createFile(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, q := range questions {
		if _, err := fmt.Fprintln(w, q); err != nil {
			return fmt.Errorf("failed to write questions file: %w", err)
		}
	}
	return w.Flush()
}

// ReadQuestions reads one question per line, dropping blanks and fragments
// too short to be real questions.
func ReadQuestions(path string) ([]string, error) {
	lines, err := readLines(path)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, raw := range lines {
		s := strings.TrimSpace(raw)
		if len(s) < 4 {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

var csvHeader = []string{"source", "page", "slide_topic", "exam_question", "score", "confidence"}

// WriteMatchCSV serializes matches in their given order. Scores are fixed to
// three decimals so re-running on unchanged inputs is byte-identical.
func WriteMatchCSV(path string, matches []matcher.Match) error {
	f, err := createFile(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, m := range matches {
		page := ""
		if m.Topic.Page > 0 {
			page = strconv.Itoa(m.Topic.Page)
		}
		row := []string{
			m.Topic.Source,
			page,
			m.Topic.Raw,
			m.Question.Raw,
			strconv.FormatFloat(m.Score, 'f', 3, 64),
			m.Confidence,
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

// WriteUnmatched writes the leftover topics and questions as plain text so a
// reviewer can spot coverage gaps at a glance.
func WriteUnmatched(path string, topics, questions []matcher.Record) error {
	f, err := createFile(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "# unmatched slide topics (%d)\n", len(topics))
	for _, t := range topics {
		fmt.Fprintf(w, "%d|%s\n", t.Page, t.Raw)
	}
	fmt.Fprintf(w, "\n# unmatched exam questions (%d)\n", len(questions))
	for _, q := range questions {
		fmt.Fprintln(w, q.Raw)
	}
	return w.Flush()
}

func createFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", path, err)
	}
	return f, nil
}

func readLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return strings.Split(string(data), "\n"), nil
}
