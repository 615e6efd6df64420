package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/codescanhq/codescan/internal/progress"
	"github.com/codescanhq/codescan/internal/report"
)

var (
	checkUser     string
	checkMaxFiles int
	checkCSVPath  string
	checkPDFPath  string
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run a plagiarism comparison over a user's uploaded files",
	Long: `Embeds every uploaded source file for the user, scores all file
pairs, and prints the ranked similarity results. Optionally writes a
CSV or PDF report.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		eng, store, closeEngine, err := buildEngine(cfg)
		if err != nil {
			return err
		}
		defer closeEngine()

		store.Reporter = progress.NewReporter()

		results, err := eng.RunComparison(context.Background(), checkUser, checkMaxFiles)
		if err != nil {
			return err
		}

		fmt.Printf("%-30s %-30s %10s  %s\n", "FILE 1", "FILE 2", "SIMILARITY", "RISK")
		for _, r := range results {
			fmt.Printf("%-30s %-30s %9.2f%%  %s\n",
				r.FileA, r.FileB, r.Score, report.Classify(r.Score))
		}

		if checkCSVPath != "" {
			f, err := os.Create(checkCSVPath)
			if err != nil {
				return fmt.Errorf("creating %s: %w", checkCSVPath, err)
			}
			defer f.Close()
			if err := report.WriteCSV(f, results); err != nil {
				return err
			}
			fmt.Printf("\nCSV report written to %s\n", checkCSVPath)
		}

		if checkPDFPath != "" {
			f, err := os.Create(checkPDFPath)
			if err != nil {
				return fmt.Errorf("creating %s: %w", checkPDFPath, err)
			}
			defer f.Close()
			if err := report.WritePDF(f, results); err != nil {
				return err
			}
			fmt.Printf("PDF report written to %s\n", checkPDFPath)
		}

		return nil
	},
}

func init() {
	checkCmd.Flags().StringVarP(&checkUser, "user", "u", "", "user id whose files to compare")
	checkCmd.Flags().IntVar(&checkMaxFiles, "max-files", 0, "cap the number of files considered (0 = config default)")
	checkCmd.Flags().StringVar(&checkCSVPath, "csv", "", "write a CSV report to this path")
	checkCmd.Flags().StringVar(&checkPDFPath, "pdf", "", "write a PDF report to this path")
	checkCmd.MarkFlagRequired("user")
	rootCmd.AddCommand(checkCmd)
}
