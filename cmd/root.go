package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "codescan",
	Short: "Embedding-based source code plagiarism detection",
	Long: `CodeScan detects near-duplicate source files by comparing learned
vector representations of each file's content. Uploaded files are
embedded, every unordered file pair is scored, and the ranked results
highlight likely plagiarism with line-level match explanations.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".codescan.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
