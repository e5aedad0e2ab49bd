package main

import (
	"errors"
	"fmt"
	"gilmoremanor/cmd/cli/game"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func init() {
	// A missing .env is fine, the environment may be set another way.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	rootCmd.AddGroup(game.Group)
	rootCmd.AddCommand(game.Play, game.Saves, game.Achievements)
}

var rootCmd = &cobra.Command{
	Use:  "gilmoremanor",
	Long: `The Gilmore Manor murder investigation, played from the terminal.`,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}
