// Package pipeline runs the end-to-end batch: extract slide topics, extract
// exam questions, match them, and write the reports. Stages run strictly in
// sequence and the first error aborts the run.
package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/muneebdotahmed/data-mining/config"
	"github.com/muneebdotahmed/data-mining/internal/extractor"
	"github.com/muneebdotahmed/data-mining/internal/matcher"
	"github.com/muneebdotahmed/data-mining/internal/normalizer"
	"github.com/muneebdotahmed/data-mining/internal/report"
	"github.com/muneebdotahmed/data-mining/internal/textcache"
	"github.com/muneebdotahmed/data-mining/pkg/logging"
)

// Pipeline holds one run's configuration, logger, and optional cache.
type Pipeline struct {
	cfg   *config.AppConfig
	log   *logrus.Entry
	cache *textcache.Cache
	runID string
}

// New builds a pipeline for one invocation, opening the extraction cache
// when it is enabled in the config.
func New(cfg *config.AppConfig) (*Pipeline, error) {
	runID := uuid.NewString()
	p := &Pipeline{
		cfg:   cfg,
		log:   logging.WithRun(runID),
		runID: runID,
	}
	if cfg.Cache.Enabled {
		cache, err := textcache.Open(cfg.Cache.Path)
		if err != nil {
			return nil, err
		}
		p.cache = cache
	}
	return p, nil
}

// Close releases the cache, if one was opened.
func (p *Pipeline) Close() error {
	if p.cache != nil {
		return p.cache.Close()
	}
	return nil
}

// ExtractSlides pulls per-page titles out of the slides PDF and writes the
// "page|topic" intermediate file.
func (p *Pipeline) ExtractSlides(pdfPath, outPath string) ([]report.TopicLine, error) {
	params := fmt.Sprintf("%.3f:%.3f", p.cfg.TopRatio, p.cfg.MergeThreshold)

	var topics []report.TopicLine
	hit, key, err := p.cacheLookup("slides", pdfPath, params, &topics)
	if err != nil {
		return nil, err
	}
	if !hit {
		doc, err := extractor.Extract(pdfPath)
		if err != nil {
			return nil, err
		}
		for _, t := range extractor.SlideTitles(doc, p.cfg.TopRatio, p.cfg.MergeThreshold) {
			topics = append(topics, report.TopicLine{Page: t.Page, Text: t.Title})
		}
		p.cacheStore(key, topics)
	}

	if err := report.WriteTopics(outPath, topics); err != nil {
		return nil, err
	}
	p.log.WithFields(logrus.Fields{"pdf": pdfPath, "pages": len(topics), "out": outPath, "cached": hit}).
		Info("extracted slide topics")
	return topics, nil
}

// ExtractExam pulls the question list out of the exam PDF and writes the
// one-question-per-line intermediate file.
func (p *Pipeline) ExtractExam(pdfPath, outPath string) ([]string, error) {
	var questions []string
	hit, key, err := p.cacheLookup("exam", pdfPath, "", &questions)
	if err != nil {
		return nil, err
	}
	if !hit {
		doc, err := extractor.Extract(pdfPath)
		if err != nil {
			return nil, err
		}
		questions = extractor.ExamQuestions(doc)
		p.cacheStore(key, questions)
	}

	if err := report.WriteQuestions(outPath, questions); err != nil {
		return nil, err
	}
	p.log.WithFields(logrus.Fields{"pdf": pdfPath, "questions": len(questions), "out": outPath, "cached": hit}).
		Info("extracted exam questions")
	return questions, nil
}

// Match reads the two intermediate files, normalizes them with the alias
// table, scores every pair, and writes the CSV plus the unmatched report.
// It returns the number of matched pairs.
func (p *Pipeline) Match(slidesPath, examPath, outCSV string) (int, error) {
	aliases, err := normalizer.LoadAliasTable(p.cfg.AliasesPath)
	if err != nil {
		return 0, err
	}

	topicLines, err := report.ReadTopics(slidesPath)
	if err != nil {
		return 0, err
	}
	questionLines, err := report.ReadQuestions(examPath)
	if err != nil {
		return 0, err
	}

	topics := buildTopicRecords(filepath.Base(slidesPath), topicLines, aliases)
	questions := buildQuestionRecords(filepath.Base(examPath), questionLines, aliases)

	matches, unmatchedTopics, unmatchedQuestions := matcher.MatchTopics(topics, questions, matcher.Options{
		MinScore:   p.cfg.MinScore,
		MaxMatches: p.cfg.MaxMatches,
	})

	if err := report.WriteMatchCSV(outCSV, matches); err != nil {
		return 0, err
	}
	unmatchedPath := strings.TrimSuffix(outCSV, filepath.Ext(outCSV)) + "_unmatched.txt"
	if err := report.WriteUnmatched(unmatchedPath, unmatchedTopics, unmatchedQuestions); err != nil {
		return 0, err
	}

	p.log.WithFields(logrus.Fields{
		"matches":             len(matches),
		"unmatched_topics":    len(unmatchedTopics),
		"unmatched_questions": len(unmatchedQuestions),
		"out":                 outCSV,
	}).Info("matching complete")
	p.logLowConfidence(matches)
	return len(matches), nil
}

// Run executes the whole batch for one slides/exam pair.
func (p *Pipeline) Run(slidesPDF, examPDF, outCSV string) error {
	p.log.WithFields(logrus.Fields{"slides": slidesPDF, "exam": examPDF}).Info("🚀 pipeline started")

	slidesOut := filepath.Join(p.cfg.DataDir, "slides_topics.txt")
	examOut := filepath.Join(p.cfg.DataDir, "exam_questions.txt")

	if _, err := p.ExtractSlides(slidesPDF, slidesOut); err != nil {
		return err
	}
	if _, err := p.ExtractExam(examPDF, examOut); err != nil {
		return err
	}
	if _, err := p.Match(slidesOut, examOut, outCSV); err != nil {
		return err
	}
	p.log.WithField("out", outCSV).Info("✅ pipeline finished")
	return nil
}

func buildTopicRecords(source string, lines []report.TopicLine, aliases *normalizer.AliasTable) []matcher.Record {
	var out []matcher.Record
	for _, t := range lines {
		norm := normalizer.Normalize(t.Text, aliases)
		if norm == "" {
			continue
		}
		out = append(out, matcher.Record{Source: source, Page: t.Page, Raw: t.Text, Norm: norm})
	}
	return out
}

func buildQuestionRecords(source string, lines []string, aliases *normalizer.AliasTable) []matcher.Record {
	var out []matcher.Record
	for i, q := range lines {
		norm := normalizer.Normalize(q, aliases)
		if norm == "" {
			continue
		}
		out = append(out, matcher.Record{Source: source, Page: i + 1, Raw: q, Norm: norm})
	}
	return out
}

// cacheLookup returns (hit, key, err). The key is empty when the cache is
// disabled, and cacheStore ignores empty keys.
func (p *Pipeline) cacheLookup(kind, pdfPath, params string, out interface{}) (bool, string, error) {
	if p.cache == nil {
		return false, "", nil
	}
	data, err := os.ReadFile(pdfPath)
	if err != nil {
		return false, "", fmt.Errorf("failed to read PDF %s: %w", pdfPath, err)
	}
	key := textcache.Key(kind, data, params)
	hit, err := p.cache.Get(key, out)
	if err != nil {
		// A corrupt entry falls back to re-extraction.
		p.log.WithError(err).Warn("cache read failed, re-extracting")
		return false, key, nil
	}
	return hit, key, nil
}

func (p *Pipeline) cacheStore(key string, val interface{}) {
	if p.cache == nil || key == "" {
		return
	}
	if err := p.cache.Put(key, val); err != nil {
		p.log.WithError(err).Warn("cache write failed")
	}
}

func (p *Pipeline) logLowConfidence(matches []matcher.Match) {
	shown := 0
	for _, m := range matches {
		if m.Confidence != "low" {
			continue
		}
		if shown == 10 {
			break
		}
		p.log.WithFields(logrus.Fields{
			"score":    fmt.Sprintf("%.3f", m.Score),
			"page":     m.Topic.Page,
			"topic":    m.Topic.Raw,
			"question": m.Question.Raw,
		}).Debug("low-confidence match, review suggested")
		shown++
	}
}
