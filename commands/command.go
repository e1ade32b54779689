package commands

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/quiniela-ai/quiniela-web/config"
	"github.com/quiniela-ai/quiniela-web/quiniela"
)

const APP = "quiniela-web"

var VERSION = "v0.1.0"

type Options struct {
	Debug  bool
	Config string
}

// Command is implemented by all the CLI commands so that main can assemble the cobra command tree.
type Command interface {
	Command(options *Options) *cobra.Command
}

// command holds the options shared by the commands that read from the spreadsheet.
type command struct {
	url string
}

func (cmd *command) flags(c *cobra.Command) {
	c.Flags().StringVar(&cmd.url, "url", cmd.url, "Spreadsheet URL (overrides "+config.SPREADSHEET_ID+")")
}

// newSource returns the data source for a configuration. Replaced in tests.
var newSource = func(c *config.Config, log *zap.Logger) quiniela.Source {
	return quiniela.NewClient(c.QuinielaSettings(), log)
}

func (cmd *command) load(options *Options) (*config.Config, *zap.Logger, error) {
	conf, err := config.Load(options.Config)
	if err != nil {
		return nil, nil, fmt.Errorf("could not load configuration (%v)", err)
	}

	if strings.TrimSpace(cmd.url) != "" {
		id, err := spreadsheetID(cmd.url)
		if err != nil {
			return nil, nil, err
		}

		conf.Sheets.SpreadsheetID = id
	}

	log, err := newLogger(conf.Log, options.Debug)
	if err != nil {
		return nil, nil, err
	}

	return conf, log, nil
}

func spreadsheetID(url string) (string, error) {
	match := regexp.MustCompile(`^https://docs.google.com/spreadsheets/d/(.*?)(?:/.*)?$`).FindStringSubmatch(strings.TrimSpace(url))
	if len(match) < 2 || match[1] == "" {
		return "", fmt.Errorf("invalid spreadsheet URL - expected something like 'https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms'")
	}

	return match[1], nil
}

func newLogger(c config.Log, debug bool) (*zap.Logger, error) {
	conf := zap.NewProductionConfig()

	if c.Format != "json" {
		conf.Encoding = "console"
		conf.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	conf.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	if level, err := zapcore.ParseLevel(c.Level); err != nil {
		return nil, fmt.Errorf("invalid log level '%v' (%v)", c.Level, err)
	} else {
		conf.Level = zap.NewAtomicLevelAt(level)
	}

	if debug {
		conf.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	logger, err := conf.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger (%w)", err)
	}

	return logger.Named(APP), nil
}
