package main

import (
	"context"
	"fmt"
	"os"
	_ "time/tzdata"

	"github.com/spf13/cobra"

	"github.com/quiniela-ai/quiniela-web/commands"
)

var cli = []commands.Command{
	&commands.ServeCmd,
	&commands.GetCmd,
	&commands.CountdownCmd,
	&commands.CheckCmd,
	&commands.VersionCmd,
}

func main() {
	options := commands.Options{}

	root := &cobra.Command{
		Use:           commands.APP,
		Short:         "Quiniela predictions web page backed by a Google Sheets spreadsheet",
		Version:       commands.VERSION,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().BoolVar(&options.Debug, "debug", options.Debug, "Enables debug logging")
	root.PersistentFlags().StringVar(&options.Config, "config", commands.DEFAULT_CONFIG, "YAML configuration file")

	for _, c := range cli {
		root.AddCommand(c.Command(&options))
	}

	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "\n   ERROR: %v\n\n", err)
		os.Exit(1)
	}
}
