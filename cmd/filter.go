package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mcr-cvu/strainpipe/config"
	"github.com/mcr-cvu/strainpipe/internal/strainpipe"
)

// filterCmd represents the filter command
var filterCmd = &cobra.Command{
	Use:   "filter",
	Short: "Drop short contigs from each sample's assembly",
	Long: `Walks the immediate subdirectories of the root directory and, for every
one containing a contigs.fasta, writes a contigs_filtered.fasta next to it
holding only the contigs whose sequence is at least the minimum length.

Directories without a contigs file are skipped. A failure in one sample is
logged and the remaining samples are still processed; the command always
exits 0.`,
	Run: runFilter,
}

func init() {
	rootCmd.AddCommand(filterCmd)

	filterCmd.Flags().StringP("root", "r", ".", "Directory whose subdirectories are samples")
	filterCmd.Flags().IntP("min-length", "l", 1000, "Minimum contig length to keep")

	viper.BindPFlag("filter.min-length", filterCmd.Flags().Lookup("min-length"))
}

func runFilter(cmd *cobra.Command, args []string) {
	root, _ := cmd.Flags().GetString("root")
	c := config.New()

	filtered, skipped, failed, err := strainpipe.NewFilter(root, c, logger).Run()
	if err != nil {
		// only the loss of the root directory itself is fatal
		logger.Fatal(err)
	}

	logger.Info("contig filtering complete",
		"min-length", c.Filter.MinLength, "filtered", filtered, "skipped", skipped, "failed", failed)
}
