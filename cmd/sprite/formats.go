package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-sprite/internal/registry"
)

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List export formats",
	Long:  `Shows every export format registered with the exporter registry.`,
	Args:  cobra.NoArgs,
	Run:   runFormats,
}

func runFormats(_ *cobra.Command, _ []string) {
	formats := registry.List()

	if len(formats) == 0 {
		fmt.Println("No formats available.")
		return
	}

	fmt.Println("Export formats:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, f := range formats {
		if len(f.ID) > maxIDLen {
			maxIDLen = len(f.ID)
		}
	}

	// Print header
	fmt.Printf("  %-*s  %-4s  %s\n", maxIDLen, "ID", "Ext", "Title")
	fmt.Printf("  %-*s  %-4s  %s\n", maxIDLen, "--", "---", "-----")

	// Print formats
	for _, f := range formats {
		fmt.Printf("  %-*s  %-4s  %s\n", maxIDLen, f.ID, f.Extension, f.Title)
	}

	fmt.Println()
	fmt.Println("Run 'sprite export <name> --format <id>' to export a sprite.")
}
