package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mapetit/willyou/internal/platform/tui"
	"github.com/mapetit/willyou/internal/storage"
)

var flagClear bool

var momentsCmd = &cobra.Command{
	Use:   "moments",
	Short: "Browse the journal of celebrated answers",
	Long: `Open the moments journal: every run that reached the celebration,
with when it happened, which script was asked, and how long it took.

Examples:
  willyou moments
  willyou moments --clear`,
	Run: runMoments,
}

func init() {
	momentsCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every journal entry")
}

func runMoments(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening moments database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClear {
		count, _ := store.CountMoments()
		if err := store.ClearMoments(); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing moments: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Cleared %d moment(s).\n", count)
		return
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	if err := tui.RunMoments(store, width, height); err != nil {
		fmt.Fprintf(os.Stderr, "Error running journal viewer: %v\n", err)
		os.Exit(1)
	}
}
