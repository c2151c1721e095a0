// willyou pops the question in the terminal: a typewritten intro, three
// keepsakes to find in a field of stars, one big question, and a No button
// that refuses to be caught.
//
// Usage:
//
//	willyou                  - Ask with the classic script
//	willyou play [script]    - Ask with a specific script
//	willyou list             - List built-in scripts
//	willyou serve            - Start SSH server for asking remotely
//	willyou moments          - Browse the journal of celebrated answers
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible runs
//	--db <path>     - Set journal path (default: ~/.willyou/moments.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "willyou",
	Short: "Will you? - Pop the question in your terminal",
	Long: `willyou turns a proposal into a small interactive terminal piece:
a typewritten intro, three keepsakes hidden among the stars, one
question, and a No button that dodges every attempt to press it.

Available commands:
  play     - Ask the question locally (also what bare 'willyou' does)
  list     - Show the built-in scripts
  serve    - Start SSH server for asking remotely
  moments  - Browse the journal of celebrated answers

Examples:
  willyou
  willyou play valentine
  willyou play --config ./ours.yaml
  willyou serve --ssh :2222
  willyou moments`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.willyou/moments.db", "Path to moments journal database")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(momentsCmd)
}
