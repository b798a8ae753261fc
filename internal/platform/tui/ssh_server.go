package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/termlink/internal/config"
	"github.com/vovakirdan/termlink/internal/core"
	"github.com/vovakirdan/termlink/internal/registry"
	"github.com/vovakirdan/termlink/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.termlink/host_key.
	HostKeyPath string

	// DBPath is the path to the rounds database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// GameID is the registered game each session plays.
	GameID string

	// Difficulties label the scoreboard tabs.
	Difficulties []config.DifficultySpec

	// TickRate is the per-session tick rate.
	TickRate int

	// LogLevel filters server log output.
	LogLevel log.Level
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.termlink/rounds.db",
		IdleTimeout: 30 * time.Minute,
		TickRate:    30,
		LogLevel:    log.InfoLevel,
	}
}

// SSHServer wraps a Wish SSH server hosting one game per session.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	if !registry.Exists(cfg.GameID) {
		return nil, fmt.Errorf("unknown game %q", cfg.GameID)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "termlink-ssh",
		Level:           cfg.LogLevel,
	})

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open rounds database", "error", err)
		// Continue without storage
		store = nil
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger,
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".termlink", "host_key")
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

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	game, err := registry.Create(s.config.GameID)
	if err != nil {
		s.logger.Error("cannot create game", "error", err)
		return nil, nil
	}

	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
		Seed:     time.Now().UnixNano(),
	}

	model := NewSessionModel(game, s.store, cfg, sshSession.User(), s.config.Difficulties).
		WithRoundHook(s.logRound(sshSession.User()))

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}
}

// logRound returns a hook logging each round recorded for user.
func (s *SSHServer) logRound(user string) RoundHook {
	return func(r storage.Round, err error) {
		if err != nil {
			s.logger.Warn("could not record round", "user", user, "error", err)
			return
		}
		outcome := "lost"
		if r.Won {
			outcome = "won"
		}
		s.logger.Info("round finished",
			"user", user,
			"difficulty", r.Mode,
			"outcome", outcome,
			"score", r.Score,
			"guesses", r.Moves,
		)
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address, "game", s.config.GameID)

	// Setup signal handling for graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if s.store != nil {
		s.store.Close()
	}

	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// SessionModel is the top-level model of an SSH session: the game, plus
// the scoreboard reachable with Tab from the title screen.
type SessionModel struct {
	game         Model
	store        *storage.Store
	gameID       string
	difficulties []config.DifficultySpec
	scoreboard   *ScoreboardModel
	width        int
	height       int
	quitting     bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, username string, difficulties []config.DifficultySpec) SessionModel {
	return SessionModel{
		game:         NewModel(game, store, cfg).WithPlayer(username),
		store:        store,
		gameID:       game.ID(),
		difficulties: difficulties,
		width:        cfg.ScreenW,
		height:       cfg.ScreenH,
	}
}

// WithRoundHook returns a copy of the session calling hook for each recorded round.
func (m SessionModel) WithRoundHook(hook RoundHook) SessionModel {
	m.game = m.game.WithRoundHook(hook)
	return m
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.game.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = wsm.Width, wsm.Height
		if m.scoreboard != nil {
			m.updateScoreboard(msg)
		}
		// The game keeps its screen in sync even while hidden.
		return m.updateGame(msg)
	}

	if m.scoreboard != nil {
		// Ticks keep the game loop alive while the scoreboard is up.
		if _, ok := msg.(TickMsg); ok {
			return m.updateGame(msg)
		}
		cmd := m.updateScoreboard(msg)
		switch {
		case m.scoreboard.IsQuitting():
			m.quitting = true
			return m, tea.Quit
		case m.scoreboard.IsGoingBack():
			m.scoreboard = nil
		}
		return m, cmd
	}

	if km, ok := msg.(tea.KeyMsg); ok && km.String() == "tab" && m.game.State().Idle {
		sb := NewScoreboardModel(m.store, m.gameID, m.difficulties, m.width, m.height).Embedded()
		m.scoreboard = &sb
		return m, nil
	}

	return m.updateGame(msg)
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gm, ok := newModel.(Model); ok {
		m.game = gm
	}
	if m.game.IsQuitting() {
		m.quitting = true
	}
	return m, cmd
}

func (m *SessionModel) updateScoreboard(msg tea.Msg) tea.Cmd {
	newModel, cmd := m.scoreboard.Update(msg)
	if sb, ok := newModel.(ScoreboardModel); ok {
		m.scoreboard = &sb
	}
	return cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	if m.scoreboard != nil {
		return m.scoreboard.View()
	}

	return m.game.View()
}
