package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mcr-cvu/strainpipe/config"
	"github.com/mcr-cvu/strainpipe/internal/strainpipe"
)

// mlstCmd represents the mlst command
var mlstCmd = &cobra.Command{
	Use:   "mlst",
	Short: "Type each sample's contigs with the external mlst tool",
	Long: `Walks the immediate subdirectories of the root directory and, for every
one containing a contigs file, runs the external mlst tool on it. The
tool's standard output is saved verbatim to <sample>_mlst.tsv inside the
sample directory; the typing result is not interpreted here.

A failed invocation for one sample is logged and the remaining samples are
still typed.`,
	Run: runMLST,
}

func init() {
	rootCmd.AddCommand(mlstCmd)

	mlstCmd.Flags().StringP("root", "r", ".", "Directory whose subdirectories are samples")
}

func runMLST(cmd *cobra.Command, args []string) {
	root, _ := cmd.Flags().GetString("root")
	c := config.New()

	typed, skipped, failed, err := strainpipe.NewTyper(root, c, logger).Run(context.Background())
	if err != nil {
		logger.Fatal(err)
	}

	logger.Info("typing complete", "typed", typed, "skipped", skipped, "failed", failed)
}
