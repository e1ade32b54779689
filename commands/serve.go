package commands

import (
	"context"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/quiniela-ai/quiniela-web/config"
	"github.com/quiniela-ai/quiniela-web/quiniela"
	"github.com/quiniela-ai/quiniela-web/web"
)

var ServeCmd = Serve{}

// Serve runs the quiniela web page until interrupted.
type Serve struct {
	command
}

func (cmd *Serve) Command(options *Options) *cobra.Command {
	c := &cobra.Command{
		Use:   "serve",
		Short: "Serves the quiniela predictions page",
		Long: `Serves the quiniela predictions page, refreshing the predictions from the Google Sheets
spreadsheet at most once per revalidation interval. The server runs until interrupted.`,
		Example: `  quiniela-web serve
  PORT=3000 quiniela-web --config quiniela-web.yaml serve`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			return cmd.Execute(c.Context(), options)
		},
	}

	cmd.flags(c)

	return c
}

func (cmd *Serve) Execute(ctx context.Context, options *Options) error {
	conf, log, err := cmd.load(options)
	if err != nil {
		return err
	}

	defer log.Sync()

	deadline, err := conf.Deadline.Parse()
	if err != nil {
		return err
	}

	// The page degrades to the 'processing' state without credentials so this is only a warning.
	if strings.TrimSpace(conf.Sheets.Credentials) == "" {
		log.Warn("missing credentials", zap.String("variable", config.CREDENTIALS))
	}

	if strings.TrimSpace(conf.Sheets.SpreadsheetID) == "" {
		log.Warn("missing spreadsheet ID", zap.String("variable", config.SPREADSHEET_ID))
	}

	source := quiniela.NewCache(newSource(conf, log), conf.Revalidate, conf.Sheets.Timeout, log)

	server, err := web.NewServer(source, deadline, web.Options{
		Bind:              conf.Server.Bind,
		ReadHeaderTimeout: conf.Server.ReadHeaderTimeout,
		MaxConnections:    conf.Server.MaxConnections,
	}, log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, shutdown...)
	defer stop()

	log.Info("starting",
		zap.String("version", VERSION),
		zap.String("bind", conf.Server.Bind),
		zap.Duration("revalidate", conf.Revalidate),
		zap.String("deadline", deadline.Label()))

	return server.Run(ctx)
}
