// sprite is a frame-based pixel art editor for the terminal.
//
// Usage:
//
//	sprite edit [name]             - Edit a sprite (gallery when no name)
//	sprite list                    - List saved sprites
//	sprite export <name>           - Write a sprite as PNG, sheet or GIF
//	sprite import <name> <image>   - Load an image into a sprite frame
//	sprite formats                 - List export formats
//	sprite rm <name>               - Delete a saved sprite
//	sprite serve                   - Start SSH server for remote editing
//
// Global flags:
//
//	--db <path>         - Set database path (default: ~/.sprite/sprites.db)
//	--config <path>     - Use a custom editor config YAML
//	--log-level <lvl>   - debug, info, warn or error (default: info)
//	--log-file <path>   - Log file used while the editor owns the terminal
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-sprite/internal/editor"
	"github.com/vovakirdan/tui-sprite/internal/storage"
)

var (
	// Global flags
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "sprite",
	Short: "Sprite - Draw and animate pixel art in your terminal",
	Long: `Sprite is a terminal pixel art editor with frames, onion skinning,
mirrored brushes, selections and animated previews.

Available commands:
  edit     - Open the editor on a sprite
  list     - Show saved sprites
  export   - Write a sprite as PNG, sprite sheet or animated GIF
  import   - Load an image file into a sprite frame
  formats  - Show export formats
  rm       - Delete a saved sprite
  serve    - Start SSH server for remote editing

Examples:
  sprite edit hero
  sprite export hero --format gif --scale 4
  sprite import hero ./reference.png
  sprite serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.sprite/sprites.db", "Path to sprite database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom editor config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "~/.sprite/sprite.log", "Log file used while the editor is open")

	// Add subcommands
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(formatsCmd)
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(serveCmd)
}

// fail prints err the way every command reports errors and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// newLogger builds the command logger. The editor owns the terminal, so
// interactive commands pass toFile to keep log lines out of the screen.
// The returned closer must be called before exit.
func newLogger(toFile bool) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	var w io.Writer = os.Stderr
	closer := func() {}
	if toFile {
		path, pathErr := expandHome(flagLogFile)
		if pathErr != nil {
			return nil, nil, pathErr
		}
		if mkErr := os.MkdirAll(filepath.Dir(path), 0o755); mkErr != nil {
			return nil, nil, fmt.Errorf("cannot create log directory: %w", mkErr)
		}
		f, openErr := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if openErr != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", openErr)
		}
		w = f
		closer = func() { f.Close() }
	}

	logger := log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		Prefix:          "sprite",
	})
	return logger, closer, nil
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot get home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

// openStore opens the sprite database or exits.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening sprite database: %v", err)
	}
	return store
}

// documentStore converts a possibly nil store to the editor interface
// without producing a non-nil interface around a nil pointer.
func documentStore(store *storage.Store) editor.DocumentStore {
	if store == nil {
		return nil
	}
	return store
}
