package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mcr-cvu/strainpipe/config"
	"github.com/mcr-cvu/strainpipe/internal/strainpipe"
)

// groupCmd represents the group command
var groupCmd = &cobra.Command{
	Use:   "group",
	Short: "Group per-sample variant outputs by typing result",
	Long: `Scans the typing result files in the source directory for lines naming a
sample, extracts the sample id and its sequence type number, and moves the
sample's <sample>_mysnps output directory into a per-type folder under the
results base directory.`,
	Run: runGroup,
}

func init() {
	rootCmd.AddCommand(groupCmd)

	groupCmd.Flags().String("source", "", "Directory holding the typing result files")
	groupCmd.Flags().String("base", "", "Directory holding the per-sample variant outputs")
	groupCmd.MarkFlagRequired("source")
	groupCmd.MarkFlagRequired("base")
}

func runGroup(cmd *cobra.Command, args []string) {
	source, _ := cmd.Flags().GetString("source")
	base, _ := cmd.Flags().GetString("base")
	c := config.New()

	if _, _, err := strainpipe.NewGrouper(source, base, c, logger).Run(); err != nil {
		logger.Fatal(err)
	}
}
