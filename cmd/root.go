// Package cmd is for command line interactions with the strainpipe application
package cmd

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var logger = log.New(os.Stderr)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use: "strainpipe",
	Short: `Assemble bacterial genomes and type strains with external tools.
Filter assembled contigs by length before downstream typing`,
	Version:          "0.1.0",
	PersistentPreRun: setupLogging,
	SilenceUsage:     true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logger.Fatal(err)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("settings", "s", "", "Path to a YAML settings file")
	rootCmd.PersistentFlags().String("log-file", "", "Append logs to this file as well as stderr")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	viper.BindPFlag("settings", rootCmd.PersistentFlags().Lookup("settings"))
	viper.BindPFlag("log-file", rootCmd.PersistentFlags().Lookup("log-file"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// setupLogging applies the log level and, if requested, tees logs to a
// file so batch runs keep a record of what happened.
func setupLogging(cmd *cobra.Command, args []string) {
	if viper.GetBool("verbose") {
		logger.SetLevel(log.DebugLevel)
	}

	if path := viper.GetString("log-file"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			logger.Warn("could not open log file, logging to stderr only", "path", path, "err", err)
			return
		}
		// write to both so interactive runs still show progress
		logger.SetOutput(io.MultiWriter(os.Stderr, f))
	}
}
