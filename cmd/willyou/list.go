package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mapetit/willyou/internal/story"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all built-in scripts",
	Long:  `Shows a list of all registered script presets.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	scripts := story.List()

	if len(scripts) == 0 {
		fmt.Println("No scripts available.")
		return
	}

	fmt.Println("Available scripts:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, s := range scripts {
		if len(s.ID) > maxIDLen {
			maxIDLen = len(s.ID)
		}
	}

	// Print header
	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")

	// Print scripts
	for _, s := range scripts {
		fmt.Printf("  %-*s  %s\n", maxIDLen, s.ID, s.Title)
	}

	fmt.Println()
	fmt.Println("Run 'willyou play <id>' to ask with a script.")
}
