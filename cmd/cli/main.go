package main

import (
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/muneebdotahmed/data-mining/config"
	"github.com/muneebdotahmed/data-mining/internal/pipeline"
	"github.com/muneebdotahmed/data-mining/pkg/env"
	"github.com/muneebdotahmed/data-mining/pkg/logging"
)

var cfg *config.AppConfig

func main() {
	env.LoadEnv()
	logging.InitLogger(false)

	app := &cli.App{
		Name:  "topicmatch",
		Usage: "Extract slide topics and exam questions from PDFs and fuzzy-match them",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Value: ".", Usage: "directory containing config.yaml"},
			&cli.BoolFlag{Name: "debug", Usage: "verbose text logging"},
		},
		Before: func(c *cli.Context) error {
			logging.InitLogger(c.Bool("debug"))
			loaded, err := config.LoadConfig(c.String("config"))
			if err != nil {
				return err
			}
			cfg = loaded
			return nil
		},
		Commands: []*cli.Command{
			slidesCommand(),
			examCommand(),
			matchCommand(),
			pipelineCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		logging.Log.Fatal(err)
	}
}

func slidesCommand() *cli.Command {
	return &cli.Command{
		Name:  "slides",
		Usage: "Extract per-page slide titles from a PDF into a 'page|topic' text file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "pdf", Required: true, Usage: "slides PDF path"},
			&cli.StringFlag{Name: "out", Usage: "output .txt path (default: <data_dir>/slides_topics.txt)"},
			&cli.Float64Flag{Name: "top-ratio", Usage: "top-of-page ratio searched for titles"},
			&cli.Float64Flag{Name: "merge-threshold", Usage: "font-size similarity for merging two-line titles"},
		},
		Action: func(c *cli.Context) error {
			applyOverrides(c)
			p, err := pipeline.New(cfg)
			if err != nil {
				return err
			}
			defer p.Close()
			out := c.String("out")
			if out == "" {
				out = filepath.Join(cfg.DataDir, "slides_topics.txt")
			}
			_, err = p.ExtractSlides(c.String("pdf"), out)
			return err
		},
	}
}

func examCommand() *cli.Command {
	return &cli.Command{
		Name:  "exam",
		Usage: "Extract exam questions from a PDF into a one-per-line text file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "pdf", Required: true, Usage: "exam PDF path"},
			&cli.StringFlag{Name: "out", Usage: "output .txt path (default: <data_dir>/exam_questions.txt)"},
		},
		Action: func(c *cli.Context) error {
			p, err := pipeline.New(cfg)
			if err != nil {
				return err
			}
			defer p.Close()
			out := c.String("out")
			if out == "" {
				out = filepath.Join(cfg.DataDir, "exam_questions.txt")
			}
			_, err = p.ExtractExam(c.String("pdf"), out)
			return err
		},
	}
}

func matchCommand() *cli.Command {
	return &cli.Command{
		Name:  "match",
		Usage: "Fuzzy-match extracted slide topics to exam questions and write the CSV report",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "slides", Usage: "topics .txt (default: <data_dir>/slides_topics.txt)"},
			&cli.StringFlag{Name: "exam", Usage: "questions .txt (default: <data_dir>/exam_questions.txt)"},
			&cli.StringFlag{Name: "out", Usage: "output CSV (default: <results_dir>/mapped_topics.csv)"},
			&cli.StringFlag{Name: "aliases", Usage: "JSON file mapping canonical term to synonyms"},
			&cli.Float64Flag{Name: "min-score", Usage: "minimum combined score for a match (0-1)"},
			&cli.IntFlag{Name: "max-matches", Usage: "max questions per topic (0 = unlimited)"},
		},
		Action: func(c *cli.Context) error {
			applyOverrides(c)
			p, err := pipeline.New(cfg)
			if err != nil {
				return err
			}
			defer p.Close()
			slides := c.String("slides")
			if slides == "" {
				slides = filepath.Join(cfg.DataDir, "slides_topics.txt")
			}
			exam := c.String("exam")
			if exam == "" {
				exam = filepath.Join(cfg.DataDir, "exam_questions.txt")
			}
			out := c.String("out")
			if out == "" {
				out = filepath.Join(cfg.ResultsDir, "mapped_topics.csv")
			}
			_, err = p.Match(slides, exam, out)
			return err
		},
	}
}

func pipelineCommand() *cli.Command {
	return &cli.Command{
		Name:  "pipeline",
		Usage: "Run extraction and matching end to end",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "slides-pdf", Required: true, Usage: "slides PDF path"},
			&cli.StringFlag{Name: "exam-pdf", Required: true, Usage: "exam PDF path"},
			&cli.StringFlag{Name: "out", Usage: "output CSV (default: <results_dir>/mapped_topics.csv)"},
			&cli.StringFlag{Name: "aliases", Usage: "JSON file mapping canonical term to synonyms"},
			&cli.Float64Flag{Name: "min-score", Usage: "minimum combined score for a match (0-1)"},
			&cli.IntFlag{Name: "max-matches", Usage: "max questions per topic (0 = unlimited)"},
			&cli.Float64Flag{Name: "top-ratio", Usage: "top-of-page ratio searched for titles"},
			&cli.Float64Flag{Name: "merge-threshold", Usage: "font-size similarity for merging two-line titles"},
		},
		Action: func(c *cli.Context) error {
			applyOverrides(c)
			p, err := pipeline.New(cfg)
			if err != nil {
				return err
			}
			defer p.Close()
			out := c.String("out")
			if out == "" {
				out = filepath.Join(cfg.ResultsDir, "mapped_topics.csv")
			}
			return p.Run(c.String("slides-pdf"), c.String("exam-pdf"), out)
		},
	}
}

// applyOverrides layers command-line flags over config-file values.
func applyOverrides(c *cli.Context) {
	if c.IsSet("aliases") {
		cfg.AliasesPath = c.String("aliases")
	}
	if c.IsSet("min-score") {
		cfg.MinScore = c.Float64("min-score")
	}
	if c.IsSet("max-matches") {
		cfg.MaxMatches = c.Int("max-matches")
	}
	if c.IsSet("top-ratio") {
		cfg.TopRatio = c.Float64("top-ratio")
	}
	if c.IsSet("merge-threshold") {
		cfg.MergeThreshold = c.Float64("merge-threshold")
	}
}
