package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-sprite/internal/storage"
)

var rmCmd = &cobra.Command{
	Use:   "rm <name>",
	Short: "Delete a saved sprite",
	Long: `Delete a sprite and all of its frames from the database.

Examples:
  sprite rm hero`,
	Args: cobra.ExactArgs(1),
	Run:  runRm,
}

func runRm(_ *cobra.Command, args []string) {
	name := args[0]

	store := openStore()
	err := store.DeleteSprite(name)
	store.Close()

	if errors.Is(err, storage.ErrNotFound) {
		fail("no sprite named %q", name)
	}
	if err != nil {
		fail("deleting sprite: %v", err)
	}
	fmt.Printf("Deleted %s\n", name)
}
