package commands

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/quiniela-ai/quiniela-web/countdown"
)

var CountdownCmd = Countdown{
	interval: time.Second,
}

// Countdown prints the time remaining until the next prediction deadline.
type Countdown struct {
	command
	interval time.Duration
	once     bool
	now      func() time.Time
}

func (cmd *Countdown) Command(options *Options) *cobra.Command {
	c := &cobra.Command{
		Use:   "countdown",
		Short: "Displays the time remaining until the next prediction deadline",
		Long:  "Displays the time remaining until the next prediction deadline as DD:HH:MM:SS, updated every second until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			return cmd.Execute(c, options)
		},
	}

	c.Flags().BoolVar(&cmd.once, "once", cmd.once, "Displays the remaining time once and exits")

	return c
}

func (cmd *Countdown) Execute(c *cobra.Command, options *Options) error {
	conf, log, err := cmd.load(options)
	if err != nil {
		return err
	}

	defer log.Sync()

	deadline, err := conf.Deadline.Parse()
	if err != nil {
		return err
	}

	out := c.OutOrStdout()
	label := deadline.Label()

	if cmd.once {
		now := time.Now
		if cmd.now != nil {
			now = cmd.now
		}

		t := now()
		target := deadline.Next(t)

		_, err := fmt.Fprintf(out, "Próximo cierre (%s): %s\n", label, countdown.Until(t, target).Clock())
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context(), shutdown...)
	defer stop()

	timer := countdown.Countdown{
		Deadline: deadline,
		Interval: cmd.interval,
		Now:      cmd.now,
	}

	err = timer.Run(ctx, func(target time.Time, remaining countdown.Remaining) {
		fmt.Fprintf(out, "\rPróximo cierre (%s): %s", label, remaining.Clock())
	})

	fmt.Fprintln(out)

	if errors.Is(err, context.Canceled) {
		return nil
	}

	return err
}
