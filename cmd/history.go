package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	historyUser  string
	historyLimit int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past comparison runs for a user",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		eng, _, closeEngine, err := buildEngine(cfg)
		if err != nil {
			return err
		}
		defer closeEngine()

		runs, err := eng.History(context.Background(), historyUser, historyLimit)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Println("No comparison runs recorded.")
			return nil
		}

		fmt.Printf("%-20s  %5s  %5s  %9s  %8s\n", "When", "Files", "Pairs", "Top Score", "Duration")
		for _, r := range runs {
			fmt.Printf("%-20s  %5d  %5d  %8.2f%%  %6dms\n",
				r.CreatedAt.Local().Format("2006-01-02 15:04:05"),
				r.FileCount, r.PairCount, r.TopScore, r.DurationMS)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().StringVarP(&historyUser, "user", "u", "", "user id")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "maximum runs to show")
	historyCmd.MarkFlagRequired("user")
	rootCmd.AddCommand(historyCmd)
}
