package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	Mode          string `mapstructure:"mode"`
	CorpusPath    string `mapstructure:"corpus_path"`
	VocabPath     string `mapstructure:"vocab_path"`
	Text          string `mapstructure:"text"`
	Output        string `mapstructure:"output"`
	VocabSize     int    `mapstructure:"vocab_size"`
	MergesPerIter int    `mapstructure:"merges_per_iter"`
	BaseLo        string `mapstructure:"base_lo"`
	BaseHi        string `mapstructure:"base_hi"`
	WordClass     string `mapstructure:"word_class"`
	Unk           string `mapstructure:"unk"`
	Normalize     bool   `mapstructure:"normalize"`
	ShowVocab     bool   `mapstructure:"show_vocab"`
	LogLevel      string `mapstructure:"log_level"`
	LogFile       string `mapstructure:"log_file"`
}

// Modes the CLI dispatches on.
const (
	ModeTrain    = "train"
	ModeTokenize = "tokenize"
	ModeEncode   = "encode"
	ModeDecode   = "decode"
)

func LoadAndParse() (*Config, error) {
	viper.SetDefault("mode", ModeTrain)
	viper.SetDefault("vocab_path", "vocab.json")
	viper.SetDefault("output", "")
	viper.SetDefault("vocab_size", 512)
	viper.SetDefault("merges_per_iter", 1)
	viper.SetDefault("base_lo", "a")
	viper.SetDefault("base_hi", "z")
	viper.SetDefault("word_class", "letter")
	viper.SetDefault("unk", "<unk>")
	viper.SetDefault("log_level", "info")
	viper.SetDefault("log_file", "")

	flagSet := pflag.NewFlagSet("subtok", pflag.ContinueOnError)
	configFile := flagSet.StringP("config", "c", "", "Path to config file")
	flagSet.StringP("mode", "M", "", "Mode: train, tokenize, encode, decode")
	flagSet.StringP("corpus", "i", "", "Path to corpus file (use '-' to read from stdin)")
	flagSet.StringP("vocab", "V", "", "Path to vocabulary JSON file")
	flagSet.StringP("text", "t", "", "Text to process (use '-' to read from stdin)")
	flagSet.StringP("file", "f", "", "Read text from file")
	flagSet.StringP("output", "o", "", "Output file (default: stdout)")
	flagSet.IntP("vocab-size", "n", 512, "Target vocabulary size")
	flagSet.IntP("merges-per-iter", "m", 1, "Merges applied per training iteration")
	flagSet.String("base-lo", "", "Low end of the inclusive seed character range")
	flagSet.String("base-hi", "", "High end of the inclusive seed character range")
	flagSet.StringP("word-class", "w", "", "Pairable character class (letter, letter-digit, ascii-letter)")
	flagSet.String("unk", "", "Placeholder text for the out-of-vocabulary marker")
	flagSet.Bool("normalize", false, "Normalize the corpus (NFC, quotes, whitespace) before training")
	flagSet.Bool("show-vocab", false, "Print the vocabulary and exit")
	flagSet.StringP("log-level", "l", "", "Log level (debug, info, warn, error)")
	flagSet.String("log-file", "", "Log file path")
	helpFlag := flagSet.BoolP("help", "h", false, "Show help message")

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		return nil, fmt.Errorf("failed to parse flags: %w", err)
	}

	if *helpFlag {
		fmt.Fprintf(os.Stderr, "Usage: subtok [options] [text]\n\nOptions:\n")
		flagSet.PrintDefaults()
		os.Exit(0)
	}

	bindings := map[string]string{
		"mode":            "mode",
		"corpus_path":     "corpus",
		"vocab_path":      "vocab",
		"text":            "text",
		"output":          "output",
		"vocab_size":      "vocab-size",
		"merges_per_iter": "merges-per-iter",
		"base_lo":         "base-lo",
		"base_hi":         "base-hi",
		"word_class":      "word-class",
		"unk":             "unk",
		"normalize":       "normalize",
		"show_vocab":      "show-vocab",
		"log_level":       "log-level",
		"log_file":        "log-file",
	}
	for key, flag := range bindings {
		if err := viper.BindPFlag(key, flagSet.Lookup(flag)); err != nil {
			return nil, err
		}
	}

	if *configFile != "" {
		viper.SetConfigFile(*configFile)
	} else {
		viper.SetConfigName("subtok.cfg")
		viper.SetConfigType("toml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("configs")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "subtok"))
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	viper.SetEnvPrefix("SUBTOK")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	textFile, _ := flagSet.GetString("file")
	if textFile != "" {
		content, err := os.ReadFile(textFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read text file: %w", err)
		}
		cfg.Text = strings.TrimSpace(string(content))
	} else if cfg.Text == "-" {
		content, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read from stdin: %w", err)
		}
		cfg.Text = strings.TrimSpace(string(content))
	} else if cfg.Text == "" {
		args := flagSet.Args()
		if len(args) > 0 {
			cfg.Text = strings.Join(args, " ")
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Mode {
	case ModeTrain, ModeTokenize, ModeEncode, ModeDecode:
	default:
		return fmt.Errorf("unknown mode %q (want train, tokenize, encode, or decode)", c.Mode)
	}

	if c.MergesPerIter < 1 {
		return fmt.Errorf("merges-per-iter must be at least 1, got %d", c.MergesPerIter)
	}
	if c.VocabSize < 2 {
		return fmt.Errorf("vocab-size must be at least 2, got %d", c.VocabSize)
	}
	if _, _, err := c.BaseRange(); err != nil {
		return err
	}
	if c.Unk == "" {
		return fmt.Errorf("unk placeholder must not be empty")
	}

	if c.Mode == ModeTrain && c.CorpusPath == "" && !c.ShowVocab {
		return fmt.Errorf("corpus is required in train mode (use -i)")
	}
	if c.Mode != ModeTrain && !c.ShowVocab && c.Text == "" {
		return fmt.Errorf("text is required (use -t, -f, or provide as argument)")
	}

	return nil
}

// BaseRange decodes the configured seed range bounds. Each bound must be a
// single rune; an empty BaseHi with empty BaseLo disables the range.
func (c *Config) BaseRange() (lo, hi rune, err error) {
	if c.BaseLo == "" && c.BaseHi == "" {
		// No seed range: the vocabulary seeds from corpus runes alone.
		return 1, 0, nil
	}
	lo, err = singleRune("base-lo", c.BaseLo)
	if err != nil {
		return 0, 0, err
	}
	hi, err = singleRune("base-hi", c.BaseHi)
	if err != nil {
		return 0, 0, err
	}
	if hi < lo {
		return 0, 0, fmt.Errorf("base-hi %q is below base-lo %q", c.BaseHi, c.BaseLo)
	}
	return lo, hi, nil
}

func singleRune(name, s string) (rune, error) {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || size != len(s) {
		return 0, fmt.Errorf("%s must be exactly one character, got %q", name, s)
	}
	return r, nil
}
