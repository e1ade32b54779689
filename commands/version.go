package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// VersionCmd is an initialized Version command for the command tree.
var VersionCmd = Version{}

// Version displays the application version.
type Version struct {
}

func (cmd *Version) Command(options *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Displays the current version",
		Long:  "Displays the " + APP + " version in the format v<major>.<minor>.<build> e.g. v0.1.0",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(c.OutOrStdout(), "%s\n", VERSION)
			return err
		},
	}
}
