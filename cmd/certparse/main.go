package main

import (
	"encoding/json"
	"flag"
	"io"
	"log/slog"
	"os"

	"github.com/certkit/copyright-extractor/internal/cleaner"
	"github.com/certkit/copyright-extractor/internal/common"
	"github.com/certkit/copyright-extractor/internal/parser"
	"github.com/certkit/copyright-extractor/internal/rules"
)

// certparse reads page-delimited certificate text (a file argument or
// stdin) and prints the cleaned records as a JSON array. It is the parsing
// half of the pipeline with OCR taken out of the loop, which makes regex
// changes testable against saved OCR dumps.
func main() {
	var (
		rulesPath = flag.String("rules", "", "JSON cleaning-rules file, overrides CERT_RULES_PATH")
		raw       = flag.Bool("raw", false, "emit raw parsed records without cleaning")
	)
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
	slog.SetDefault(logger)

	var (
		data []byte
		err  error
	)
	switch flag.NArg() {
	case 0:
		data, err = io.ReadAll(os.Stdin)
	case 1:
		data, err = os.ReadFile(flag.Arg(0))
	default:
		logger.Error("usage", "cmd", "certparse [flags] [text-file]")
		os.Exit(common.ExitFailure)
	}
	if err != nil {
		logger.Error("failed to read input", "error", err)
		os.Exit(common.ExitFailure)
	}

	cfg := common.LoadConfig()
	if *rulesPath != "" {
		cfg.Rules.Path = *rulesPath
	}
	r, err := rules.Load(cfg.Rules.Path)
	if err != nil {
		logger.Error("failed to load cleaning rules", "path", cfg.Rules.Path, "error", err)
		os.Exit(common.ExitCode(err))
	}

	records, err := parser.NewParser(logger).ParseText(string(data))
	if err != nil {
		logger.Error("parse failed", "error", err)
		os.Exit(common.ExitCode(err))
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)

	if *raw {
		if err := enc.Encode(records); err != nil {
			logger.Error("failed to encode records", "error", err)
			os.Exit(common.ExitFailure)
		}
		return
	}

	cleaned := cleaner.New(r, logger).CleanAll(records)
	if err := enc.Encode(cleaned); err != nil {
		logger.Error("failed to encode records", "error", err)
		os.Exit(common.ExitFailure)
	}
}
