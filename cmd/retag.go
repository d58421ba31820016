package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdaderko/stepsync/internal/retag"
)

func init() {
	cmdRoot.AddCommand(cmdRetag())
}

func cmdRetag() *cobra.Command {
	return &cobra.Command{
		Use:          "retag <songs-root>",
		Short:        "Rewrite OGG/MP3 tags from the .ssc or .sm files next to them",
		SilenceUsage: true,
		Args:         cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			runner := retag.NewRunner(nil)
			err := runner.Run(args[0])
			if errors.Is(err, retag.ErrInvalidRoot) {
				// Bad path is reported, not treated as a crash
				fmt.Printf("Error: '%s' is not a valid directory.\n", args[0])
				return nil
			}
			return err
		},
	}
}
