package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mcr-cvu/strainpipe/config"
	"github.com/mcr-cvu/strainpipe/internal/strainpipe"
)

// assembleCmd represents the assemble command
var assembleCmd = &cobra.Command{
	Use:   "assemble",
	Short: "Batch-assemble genomes from trimmed paired reads with SPAdes",
	Long: `Enumerates sample directories under the input root, pairs the gzipped
trimmed reads inside each sample's ILLUMINA_DATA subdirectory,
decompresses them, and runs SPAdes per sample:

  spades.py --threads N -o <out>/<sample>_assembly -1 <R1> -2 <R2>

A failed assembly for one sample is logged and the remaining samples are
still assembled. A summary is printed at the end.`,
	Run: runAssemble,
}

func init() {
	rootCmd.AddCommand(assembleCmd)

	assembleCmd.Flags().StringP("in", "i", "", "Base path of the input sample directories")
	assembleCmd.Flags().StringP("out", "o", "./spades_assemblies", "Output directory for assembly results")
	assembleCmd.Flags().IntP("cores", "c", 16, "CPU cores to use")
	assembleCmd.MarkFlagRequired("in")
}

func runAssemble(cmd *cobra.Command, args []string) {
	in, _ := cmd.Flags().GetString("in")
	out, _ := cmd.Flags().GetString("out")
	c := config.New()

	if cmd.Flags().Changed("cores") {
		c.Cores, _ = cmd.Flags().GetInt("cores")
	}

	if _, _, err := strainpipe.NewAssembler(in, out, c, logger).Run(context.Background()); err != nil {
		logger.Fatal(err)
	}
}
