package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdaderko/stepsync/internal/audiomuse"
	"github.com/pdaderko/stepsync/internal/config"
	"github.com/pdaderko/stepsync/internal/export"
)

func init() {
	cmdRoot.AddCommand(cmdSimilarity())
}

func cmdSimilarity() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "similarity",
		Short:        "Consolidate AudioMuse-AI similarities into a single master CSV",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			server, _ := cmd.Flags().GetString("server")
			masterCSV, _ := cmd.Flags().GetString("master-csv")
			output, _ := cmd.Flags().GetString("output")
			count, _ := cmd.Flags().GetInt("count")

			// Config file supplies defaults; flags win
			if server == "" {
				server = cfg.Similarity.Server
			}
			if server == "" {
				return fmt.Errorf("no server given (use --server or the config file)")
			}
			if count <= 0 {
				count = cfg.Similarity.Count
			}

			manifest, err := os.Open(masterCSV)
			if err != nil {
				return fmt.Errorf("open master CSV: %w", err)
			}
			defer manifest.Close()

			out, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("create output: %w", err)
			}
			defer out.Close()

			consolidator := export.NewConsolidator(audiomuse.New(server), count, nil)
			if err := consolidator.Run(cmd.Context(), manifest, out); err != nil {
				return err
			}
			if err := out.Close(); err != nil {
				return fmt.Errorf("close output: %w", err)
			}

			fmt.Printf("Success! All similarities output to: %s\n", output)
			return nil
		},
	}

	cmd.Flags().String("server", "", "AudioMuse-AI server (e.g., 192.168.1.10:8000)")
	cmd.Flags().String("master-csv", "", "path to the input master CSV")
	cmd.Flags().String("output", "", "path for the generated output CSV")
	cmd.Flags().Int("count", 0, "number of similar tracks to retrieve per song")
	_ = cmd.MarkFlagRequired("master-csv")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}
