package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"subtok/internal/pkg/subtok/charclass"
	"subtok/internal/pkg/subtok/codec"
	"subtok/internal/pkg/subtok/config"
	"subtok/internal/pkg/subtok/corpus"
	"subtok/internal/pkg/subtok/preprocess"
	"subtok/internal/pkg/subtok/tokenizer"
	"subtok/internal/pkg/subtok/trainer"
	"subtok/internal/pkg/subtok/vocab"
)

func main() {
	fmt.Fprintf(os.Stderr, "subtok %s\n", Version)

	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.LoadAndParse()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to parse configuration")
	}

	if err := setupLogging(cfg); err != nil {
		log.Fatal().Err(err).Msg("Failed to setup logging")
	}

	log.Debug().
		Str("mode", cfg.Mode).
		Str("corpus", cfg.CorpusPath).
		Str("vocab", cfg.VocabPath).
		Str("word_class", cfg.WordClass).
		Int("vocab_size", cfg.VocabSize).
		Int("merges_per_iter", cfg.MergesPerIter).
		Msg("Configuration loaded")

	if cfg.ShowVocab {
		showVocab(cfg)
		return
	}

	switch cfg.Mode {
	case config.ModeTrain:
		runTrain(cfg)
	case config.ModeTokenize:
		runTokenize(cfg)
	case config.ModeEncode:
		runEncode(cfg)
	case config.ModeDecode:
		runDecode(cfg)
	}
}

func runTrain(cfg *config.Config) {
	pairable, err := charclass.New(cfg.WordClass)
	if err != nil {
		log.Fatal().Err(err).Msg("Unknown word class")
	}

	text, err := readCorpus(cfg.CorpusPath)
	if err != nil {
		log.Fatal().Err(err).Str("corpus", cfg.CorpusPath).Msg("Failed to read corpus")
	}
	if cfg.Normalize {
		text = preprocess.NewPreprocessor().Process(text)
	}

	index := corpus.Scan(text, pairable)
	log.Info().
		Int("distinct_words", index.Len()).
		Int("distinct_runes", len(index.Runes())).
		Msg("Corpus scanned")

	lo, hi, err := cfg.BaseRange()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid seed range")
	}
	table := vocab.New(vocab.Options{
		BaseLo:      lo,
		BaseHi:      hi,
		CorpusRunes: index.Runes(),
		Unk:         cfg.Unk,
	})
	log.Debug().Int("seed_size", table.Size()).Msg("Vocabulary seeded")

	tr, err := trainer.New(table, index, trainer.Config{
		TargetSize: cfg.VocabSize,
		BatchSize:  cfg.MergesPerIter,
	}, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid training configuration")
	}

	log.Info().Int("target_size", cfg.VocabSize).Msg("Training vocabulary...")
	startTime := time.Now()
	if err := tr.Train(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Training failed")
	}
	log.Info().
		Dur("elapsed", time.Since(startTime)).
		Int("iterations", tr.Iterations()).
		Int("vocab_size", table.Size()).
		Msg("Vocabulary trained")

	if err := table.Save(cfg.VocabPath); err != nil {
		log.Fatal().Err(err).Str("vocab", cfg.VocabPath).Msg("Failed to save vocabulary")
	}
	log.Info().Str("vocab", cfg.VocabPath).Msg("Vocabulary saved")
}

func runTokenize(cfg *config.Config) {
	table := loadVocab(cfg)
	tokens := tokenizer.New(table).Tokenize(cfg.Text)
	writeOutput(cfg, strings.Join(tokens, "\n"))
}

func runEncode(cfg *config.Config) {
	table := loadVocab(cfg)
	ids := codec.New(table).Encode(cfg.Text)
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	writeOutput(cfg, strings.Join(parts, " "))
}

func runDecode(cfg *config.Config) {
	table := loadVocab(cfg)
	fields := strings.Fields(cfg.Text)
	ids := make([]int, len(fields))
	for i, f := range fields {
		id, err := strconv.Atoi(f)
		if err != nil {
			log.Fatal().Str("id", f).Msg("Ids must be integers")
		}
		ids[i] = id
	}
	text, err := codec.New(table).Decode(ids)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to decode")
	}
	writeOutput(cfg, text)
}

func showVocab(cfg *config.Config) {
	table := loadVocab(cfg)
	symbols := table.Symbols()
	fmt.Fprintf(os.Stderr, "Vocabulary: %s (%d symbols)\n", cfg.VocabPath, len(symbols))
	for id, s := range symbols {
		fmt.Fprintf(os.Stderr, "  %4d %q\n", id, s)
	}
}

func loadVocab(cfg *config.Config) *vocab.Table {
	table, err := vocab.Load(cfg.VocabPath)
	if err != nil {
		log.Fatal().Err(err).Str("vocab", cfg.VocabPath).Msg("Failed to load vocabulary")
	}
	log.Debug().Int("vocab_size", table.Size()).Msg("Vocabulary loaded")
	return table
}

func readCorpus(path string) (string, error) {
	if path == "-" {
		content, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read from stdin: %w", err)
		}
		return string(content), nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read corpus file: %w", err)
	}
	return string(content), nil
}

func writeOutput(cfg *config.Config, s string) {
	if cfg.Output == "" {
		fmt.Println(s)
		return
	}
	if err := os.WriteFile(cfg.Output, []byte(s+"\n"), 0644); err != nil {
		log.Fatal().Err(err).Str("output", cfg.Output).Msg("Failed to write output")
	}
	log.Info().Str("output", cfg.Output).Msg("Output written")
}

func setupLogging(cfg *config.Config) error {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		log.Logger = zerolog.New(f).With().Timestamp().Logger()
	}

	return nil
}
