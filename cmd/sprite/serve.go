package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-sprite/internal/config"
	"github.com/vovakirdan/tui-sprite/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the sprite SSH server",
	Long: `Start an SSH server that gives every connection its own editor.

The SSH user name picks the sprite, so 'ssh hero@host' edits the sprite
named hero. All sessions share the server's database. When two sessions
edit the same sprite the last save wins.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.sprite/host_key

Examples:
  sprite serve                           # Listen on :23235 with auto-generated key
  sprite serve --ssh :2222               # Listen on port 2222
  sprite serve --host-key ./my_host_key  # Use specific host key
  sprite serve --db ./sprites.db         # Use specific database

Users can connect with:
  ssh hero@localhost -p 23235`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23235", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fail("%v", err)
	}

	logger, closeLog, err := newLogger(false)
	if err != nil {
		fail("%v", err)
	}
	defer closeLog()

	serverCfg := tui.DefaultSSHServerConfig()
	serverCfg.Address = flagSSHAddr
	serverCfg.HostKeyPath = flagHostKey
	serverCfg.DBPath = flagDBPath
	serverCfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	serverCfg.Editor = cfg.Options()
	serverCfg.Theme = tui.ThemeByName(cfg.View.Theme)
	serverCfg.Autosave = cfg.Autosave.Enabled
	serverCfg.Logger = logger.WithPrefix("sprite-ssh")

	server, err := tui.NewSSHServer(serverCfg)
	if err != nil {
		fail("creating server: %v", err)
	}

	fmt.Printf("Starting sprite SSH server on %s\n", server.Addr())
	fmt.Println("Connect with: ssh <sprite>@localhost -p <port>")
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fail("server: %v", err)
	}
}
