package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var detailUser string

var detailCmd = &cobra.Command{
	Use:   "detail <rank>",
	Short: "Show the line-level matches behind one ranked result",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rank, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("rank must be an integer: %q", args[0])
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		eng, _, closeEngine, err := buildEngine(cfg)
		if err != nil {
			return err
		}
		defer closeEngine()

		detail, err := eng.GetDetail(context.Background(), detailUser, rank)
		if err != nil {
			return err
		}

		fmt.Printf("%s vs %s: %.2f%% similar\n\n", detail.FileA, detail.FileB, detail.Score)
		if len(detail.Matches) == 0 {
			fmt.Println("No exactly matching lines found.")
			return nil
		}
		for _, m := range detail.Matches {
			fmt.Printf("  A:%-4d B:%-4d  %s\n", m.LineA+1, m.LineB+1, m.Text)
		}
		return nil
	},
}

func init() {
	detailCmd.Flags().StringVarP(&detailUser, "user", "u", "", "user id")
	detailCmd.MarkFlagRequired("user")
	rootCmd.AddCommand(detailCmd)
}
