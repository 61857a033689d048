// Package config is for app wide settings that are unmarshalled
// from Viper (see: /cmd)
package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// FilterConfig holds settings for the contig length filter.
type FilterConfig struct {
	// the minimum sequence length for a contig to be kept
	MinLength int `mapstructure:"min-length"`

	// the name of the assembly output file inside each sample directory
	ContigsName string `mapstructure:"contigs-name"`

	// the name of the filtered file written next to the input
	FilteredName string `mapstructure:"filtered-name"`
}

// ReadsConfig describes how paired sequencing reads are laid out
// inside a sample directory.
type ReadsConfig struct {
	// the subdirectory of a sample that holds the read files
	Subdir string `mapstructure:"subdir"`

	// filename suffix of the forward reads
	R1Suffix string `mapstructure:"r1-suffix"`

	// filename suffix of the reverse reads
	R2Suffix string `mapstructure:"r2-suffix"`
}

// ToolsConfig names the external executables the pipeline shells out to.
type ToolsConfig struct {
	Spades string `mapstructure:"spades"`
	Snippy string `mapstructure:"snippy"`
	MLST   string `mapstructure:"mlst"`

	// maximum wall time for a single invocation, zero means unbounded
	Timeout time.Duration `mapstructure:"timeout"`
}

// Config is the root-level settings struct and is a mix of settings
// available in settings.yaml and those from the command line.
type Config struct {
	// CPU cores passed to the external tools
	Cores int `mapstructure:"cores"`

	// sample directory name prefix, eg "MCR_CVU_"
	SamplePrefix string `mapstructure:"sample-prefix"`

	// strain directories scanned by the snps command
	Strains []string `mapstructure:"strains"`

	Filter FilterConfig `mapstructure:"filter"`
	Reads  ReadsConfig  `mapstructure:"reads"`
	Tools  ToolsConfig  `mapstructure:"tools"`
}

// setDefaults registers the default for every setting so a run without
// a settings file or flags behaves like the original pipeline.
func setDefaults() {
	viper.SetDefault("cores", 16)
	viper.SetDefault("sample-prefix", "MCR_CVU_")
	viper.SetDefault("strains", []string{
		"Acinetobacterbaumannii",
		"Pseudomonasaeruginosa",
		"Staphylococcusaureus",
		"Klebsiellapneumoniae",
	})

	viper.SetDefault("filter.min-length", 1000)
	viper.SetDefault("filter.contigs-name", "contigs.fasta")
	viper.SetDefault("filter.filtered-name", "contigs_filtered.fasta")

	viper.SetDefault("reads.subdir", "ILLUMINA_DATA")
	viper.SetDefault("reads.r1-suffix", "_R1_trimmed.fastq")
	viper.SetDefault("reads.r2-suffix", "_R2_trimmed.fastq")

	viper.SetDefault("tools.spades", "spades.py")
	viper.SetDefault("tools.snippy", "snippy")
	viper.SetDefault("tools.mlst", "mlst")
	viper.SetDefault("tools.timeout", time.Duration(0))
}

// New returns a new Config struct populated by Viper settings (either
// from a local settings.yaml) and/or command line arguments.
func New() *Config {
	setDefaults()

	if settings := viper.GetString("settings"); settings != "" {
		viper.SetConfigFile(settings)
		if err := viper.ReadInConfig(); err != nil {
			log.Fatalf("failed to read settings file %s: %v", settings, err)
		}
	}

	c := &Config{}
	if err := viper.Unmarshal(c); err != nil {
		log.Fatalf("unable to decode settings into struct, %v", err)
	}

	return c
}
