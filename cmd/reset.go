package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var resetUser string

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete a user's uploaded files, snapshot, and run history",
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

		if err := eng.Reset(context.Background(), resetUser); err != nil {
			return err
		}
		fmt.Printf("All data for user %s removed.\n", resetUser)
		return nil
	},
}

func init() {
	resetCmd.Flags().StringVarP(&resetUser, "user", "u", "", "user id to reset")
	resetCmd.MarkFlagRequired("user")
	rootCmd.AddCommand(resetCmd)
}
