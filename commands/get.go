package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/quiniela-ai/quiniela-web/config"
)

var GetCmd = Get{
	file:    time.Now().Format("2006-01-02T150405.tsv"),
	history: false,
}

// Get retrieves the current predictions (or the results history) and stores them to a TSV file.
type Get struct {
	command
	file    string
	history bool
}

func (cmd *Get) Command(options *Options) *cobra.Command {
	c := &cobra.Command{
		Use:   "get",
		Short: "Retrieves the current predictions from the Google Sheets spreadsheet and stores them to a local file",
		Long:  "Downloads the predictions (or, with --history, the results history) worksheet to a TSV file",
		Example: `  quiniela-web --debug get --url "https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms" \
                         --file "jornada.tsv"`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			return cmd.Execute(c.Context(), options)
		},
	}

	cmd.flags(c)
	c.Flags().StringVar(&cmd.file, "file", cmd.file, "TSV file name. Defaults to '<yyyy-mm-ddTHHmmss>.tsv'")
	c.Flags().BoolVar(&cmd.history, "history", cmd.history, "Retrieves the results history instead of the current predictions")

	return c
}

func (cmd *Get) Execute(ctx context.Context, options *Options) error {
	conf, log, err := cmd.load(options)
	if err != nil {
		return err
	}

	defer log.Sync()

	// ... check parameters
	if strings.TrimSpace(conf.Sheets.Credentials) == "" {
		return fmt.Errorf("%v is a required environment variable", config.CREDENTIALS)
	}

	if strings.TrimSpace(conf.Sheets.SpreadsheetID) == "" {
		return fmt.Errorf("--url (or %v) is a required option", config.SPREADSHEET_ID)
	}

	if strings.TrimSpace(cmd.file) == "" {
		return fmt.Errorf("--file is a required option")
	}

	log.Debug("spreadsheet",
		zap.Int("id-length", len(conf.Sheets.SpreadsheetID)),
		zap.String("predictions", conf.Sheets.Predictions),
		zap.String("statistics", conf.Sheets.Statistics))

	data := newSource(conf, log).Fetch(ctx)
	if data.Failed {
		return fmt.Errorf("unable to retrieve data from sheet")
	}

	var write func(io.Writer) error
	var count int

	if cmd.history {
		count = len(data.Statistics)
		write = func(f io.Writer) error { return statisticsToTSV(f, data.Statistics) }
	} else {
		count = len(data.Predictions)
		write = func(f io.Writer) error { return predictionsToTSV(f, data.Predictions) }
	}

	if count == 0 {
		return fmt.Errorf("no data in spreadsheet/range")
	}

	tmp, err := os.CreateTemp(os.TempDir(), "quiniela")
	if err != nil {
		return err
	}

	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	if err := write(tmp); err != nil {
		return fmt.Errorf("error creating TSV file (%v)", err)
	}

	tmp.Close()

	dir := filepath.Dir(cmd.file)
	if err := os.MkdirAll(dir, 0770); err != nil {
		return err
	}

	if err := rename(tmp.Name(), cmd.file); err != nil {
		return err
	}

	log.Info("retrieved quiniela", zap.Int("rows", count), zap.String("file", cmd.file))

	return nil
}

// rename falls back to a copy when the temporary directory is on a different device.
func rename(from, to string) error {
	if err := os.Rename(from, to); err == nil {
		return nil
	}

	b, err := os.ReadFile(from)
	if err != nil {
		return err
	}

	return os.WriteFile(to, b, 0660)
}
