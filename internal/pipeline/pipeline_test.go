package pipeline

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/muneebdotahmed/data-mining/config"
	"github.com/muneebdotahmed/data-mining/pkg/logging"
)

func testConfig(dir string) *config.AppConfig {
	return &config.AppConfig{
		DataDir:        dir,
		ResultsDir:     dir,
		MinScore:       0.5,
		MaxMatches:     0,
		TopRatio:       0.35,
		MergeThreshold: 0.9,
	}
}

func newTestPipeline(t *testing.T, cfg *config.AppConfig) *Pipeline {
	t.Helper()
	logging.InitLogger(false)
	logging.Log.Out = io.Discard
	p, err := New(cfg)
	if err != nil {
		t.Fatalf("failed to build pipeline: %v", err)
	}
	t.Cleanup(func() { p.Close() })
	return p
}

func TestMatchFromIntermediateFiles(t *testing.T) {
	dir := t.TempDir()
	slides := filepath.Join(dir, "slides_topics.txt")
	exam := filepath.Join(dir, "exam_questions.txt")
	out := filepath.Join(dir, "mapped_topics.csv")

	topics := "4|Decision Tree Induction\n5|\n"
	questions := "Explain ID3 algorithm\nWhat is k-means?\n"
	if err := os.WriteFile(slides, []byte(topics), 0644); err != nil {
		t.Fatalf("failed to write slides file: %v", err)
	}
	if err := os.WriteFile(exam, []byte(questions), 0644); err != nil {
		t.Fatalf("failed to write exam file: %v", err)
	}

	p := newTestPipeline(t, testConfig(dir))
	n, err := p.Match(slides, exam, out)
	if err != nil {
		t.Fatalf("match failed: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 match, got %d", n)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("failed to read CSV: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header plus 1 row, got %d lines", len(lines))
	}
	if !strings.Contains(lines[1], "Explain ID3 algorithm") {
		t.Errorf("row should pair the topic with the ID3 question: %q", lines[1])
	}
	if strings.Contains(string(data), "k-means") {
		t.Errorf("the k-means question must not be matched:\n%s", data)
	}

	unmatched, err := os.ReadFile(filepath.Join(dir, "mapped_topics_unmatched.txt"))
	if err != nil {
		t.Fatalf("failed to read unmatched report: %v", err)
	}
	if !bytes.Contains(unmatched, []byte("What is k-means?")) {
		t.Errorf("unmatched report should list the k-means question:\n%s", unmatched)
	}
}

func TestMatchDeterministicOutput(t *testing.T) {
	dir := t.TempDir()
	slides := filepath.Join(dir, "slides_topics.txt")
	exam := filepath.Join(dir, "exam_questions.txt")

	topics := "1|Clustering Methods\n2|Association Rules\n3|Neural Network Basics\n"
	questions := "Describe k-means clustering?\nExplain the apriori algorithm\nCompare clustering methods\n"
	if err := os.WriteFile(slides, []byte(topics), 0644); err != nil {
		t.Fatalf("failed to write slides file: %v", err)
	}
	if err := os.WriteFile(exam, []byte(questions), 0644); err != nil {
		t.Fatalf("failed to write exam file: %v", err)
	}

	p := newTestPipeline(t, testConfig(dir))
	first := filepath.Join(dir, "first.csv")
	second := filepath.Join(dir, "second.csv")
	if _, err := p.Match(slides, exam, first); err != nil {
		t.Fatalf("first match failed: %v", err)
	}
	if _, err := p.Match(slides, exam, second); err != nil {
		t.Fatalf("second match failed: %v", err)
	}

	a, _ := os.ReadFile(first)
	b, _ := os.ReadFile(second)
	if !bytes.Equal(a, b) {
		t.Error("re-running on unchanged inputs must produce byte-identical CSV")
	}
}

func TestMatchMissingInputIsFatal(t *testing.T) {
	dir := t.TempDir()
	p := newTestPipeline(t, testConfig(dir))
	_, err := p.Match(filepath.Join(dir, "missing.txt"), filepath.Join(dir, "missing2.txt"),
		filepath.Join(dir, "out.csv"))
	if err == nil {
		t.Fatal("expected error for missing intermediate file")
	}
}

func TestMatchMalformedAliasesIsFatal(t *testing.T) {
	dir := t.TempDir()
	slides := filepath.Join(dir, "s.txt")
	exam := filepath.Join(dir, "e.txt")
	os.WriteFile(slides, []byte("1|topic one\n"), 0644)
	os.WriteFile(exam, []byte("a question about topics\n"), 0644)
	aliasPath := filepath.Join(dir, "aliases.json")
	os.WriteFile(aliasPath, []byte("{not json"), 0644)

	cfg := testConfig(dir)
	cfg.AliasesPath = aliasPath
	p := newTestPipeline(t, cfg)
	if _, err := p.Match(slides, exam, filepath.Join(dir, "out.csv")); err == nil {
		t.Fatal("expected error for malformed alias JSON")
	}
}
