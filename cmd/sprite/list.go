package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-sprite/internal/platform/tui"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved sprites",
	Long:  `Shows every sprite in the database, most recently edited first.`,
	Args:  cobra.NoArgs,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	store := openStore()
	sprites, err := store.ListSprites()
	store.Close()
	if err != nil {
		fail("listing sprites: %v", err)
	}

	if len(sprites) == 0 {
		fmt.Println("No sprites saved yet.")
		fmt.Println()
		fmt.Println("Run 'sprite edit <name>' to draw one.")
		return
	}

	headers := []string{"Name", "Size", "Frames", "FPS", "Updated"}
	rows := tui.SpriteRows(sprites)

	// Calculate column widths
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	printRow := func(cells []string) {
		fmt.Print(" ")
		for i, cell := range cells {
			fmt.Printf(" %-*s", widths[i], cell)
		}
		fmt.Println()
	}

	// Print header
	printRow(headers)
	dashes := make([]string, len(headers))
	for i, h := range headers {
		dashes[i] = strings.Repeat("-", len(h))
	}
	printRow(dashes)

	// Print sprites
	for _, row := range rows {
		printRow(row)
	}

	fmt.Println()
	fmt.Println("Run 'sprite edit <name>' to open a sprite.")
}
