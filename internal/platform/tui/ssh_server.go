package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/tui-sprite/internal/editor"
	"github.com/vovakirdan/tui-sprite/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23235").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.sprite/host_key.
	HostKeyPath string

	// DBPath is the path to the sprite database shared by all sessions.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Editor configures every new session.
	Editor editor.Options

	// Theme is applied to every session.
	Theme Theme

	// Autosave controls persistence after each change.
	Autosave bool

	// Logger receives server events. Nil logs to stderr.
	Logger *log.Logger
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23235",
		DBPath:      "~/.sprite/sprites.db",
		IdleTimeout: 30 * time.Minute,
		Editor:      editor.DefaultOptions(),
		Theme:       DefaultTheme(),
		Autosave:    true,
	}
}

// SSHServer wraps a Wish SSH server that hands every user an editor on the
// sprite named after their SSH user.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger

	mu   sync.Mutex     // Guards store and open
	open map[string]int // Live sessions per sprite name
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "sprite-ssh",
		})
	}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open sprite database, sessions will not be saved", "error", err)
		// Continue without storage
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger,
		open:   make(map[string]int),
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".sprite", "host_key")
	}

	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// documentStore returns the shared store as an interface, nil when the
// database could not be opened.
func (s *SSHServer) documentStore() editor.DocumentStore {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.store == nil {
		return nil
	}
	return s.store
}

// teaHandler creates an editor for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	if _, _, ok := sshSession.Pty(); !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	name := sshSession.User()
	if n := s.acquire(name); n > 1 {
		s.logger.Warn("sprite opened by more than one session, last save wins", "sprite", name, "sessions", n)
	}
	go func() {
		<-sshSession.Context().Done()
		s.release(name)
	}()

	store := s.documentStore()
	session := LoadSession(store, name, s.config.Editor, s.logger)
	model := NewEditorModel(session, Options{
		Name:     name,
		Store:    store,
		Autosave: s.config.Autosave,
		Theme:    s.config.Theme,
		Logger:   s.logger.With("user", name),
	})

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	}
}

func (s *SSHServer) acquire(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open[name]++
	return s.open[name]
}

func (s *SSHServer) release(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.open[name] <= 1 {
		delete(s.open, name)
		return
	}
	s.open[name]--
}

// OpenSessions returns how many live sessions are editing name.
func (s *SSHServer) OpenSessions(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open[name]
}

// loggingMiddleware logs each connection with the sprite it opened and how
// long the session lasted.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		logger := s.logger.With(
			"sprite", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		started := time.Now()
		logger.Info("session started")
		next(sshSession)
		logger.Info("session ended", "duration", time.Since(started).Round(time.Second))
	}
}

// ListenAndServe serves until SIGINT or SIGTERM, then shuts down.
func (s *SSHServer) ListenAndServe() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return s.Serve(ctx)
}

// Serve accepts connections until ctx is cancelled or the listener fails.
// The shared store is closed on return.
func (s *SSHServer) Serve(ctx context.Context) error {
	s.logger.Info("starting SSH server", "address", s.config.Address, "db", s.config.DBPath)

	errc := make(chan error, 1)
	go func() {
		errc <- s.server.ListenAndServe()
	}()

	select {
	case err := <-errc:
		s.closeStore()
		if errors.Is(err, ssh.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("ssh: %w", err)
	case <-ctx.Done():
		s.logger.Info("shutting down", "open_sprites", s.openCount())
		return s.Shutdown()
	}
}

// Shutdown waits up to ten seconds for sessions to finish, then closes
// the store.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.server.Shutdown(ctx)
	s.closeStore()
	return err
}

func (s *SSHServer) closeStore() {
	s.mu.Lock()
	store := s.store
	s.store = nil
	s.mu.Unlock()

	if store == nil {
		return
	}
	if err := store.Close(); err != nil {
		s.logger.Warn("closing sprite database", "error", err)
	}
}

func (s *SSHServer) openCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.open)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
