package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mcr-cvu/strainpipe/config"
	"github.com/mcr-cvu/strainpipe/internal/strainpipe"
)

// snpsCmd represents the snps command
var snpsCmd = &cobra.Command{
	Use:   "snps",
	Short: "Batch-call variants against a reference genome with Snippy",
	Long: `For each known strain directory under the input root, enumerates the
sample directories matching the sample prefix, pairs the trimmed reads
inside each sample's ILLUMINA_DATA subdirectory, and runs Snippy per
sample:

  snippy --cpu N --outdir <out>/<strain>/<sample>_mysnps --ref <ref> --R1 <R1> --R2 <R2>

A failed run for one sample is logged and the remaining samples are still
processed.`,
	Run: runSnps,
}

func init() {
	rootCmd.AddCommand(snpsCmd)

	snpsCmd.Flags().StringP("in", "i", "", "Base path holding the strain directories")
	snpsCmd.Flags().StringP("out", "o", "./snippy_results", "Output directory for variant results")
	snpsCmd.Flags().StringP("ref", "R", "", "Reference genome file")
	snpsCmd.Flags().IntP("cores", "c", 16, "CPU cores to use")
	snpsCmd.MarkFlagRequired("in")
	snpsCmd.MarkFlagRequired("ref")
}

func runSnps(cmd *cobra.Command, args []string) {
	in, _ := cmd.Flags().GetString("in")
	out, _ := cmd.Flags().GetString("out")
	ref, _ := cmd.Flags().GetString("ref")
	c := config.New()

	if cmd.Flags().Changed("cores") {
		c.Cores, _ = cmd.Flags().GetInt("cores")
	}

	if _, _, err := strainpipe.NewSnpCaller(in, out, ref, c, logger).Run(context.Background()); err != nil {
		logger.Fatal(err)
	}
}
