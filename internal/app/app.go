package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/atomicstack/cli-launcher/internal/backend"
	"github.com/atomicstack/cli-launcher/internal/host"
	"github.com/atomicstack/cli-launcher/internal/kv"
	"github.com/atomicstack/cli-launcher/internal/layout"
	"github.com/atomicstack/cli-launcher/internal/logging"
	"github.com/atomicstack/cli-launcher/internal/settings"
	"github.com/atomicstack/cli-launcher/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

// Config describes user-provided application options.
type Config struct {
	StoreBackend string
	StorePath    string
	HostMode     string
	SocketPath   string
	Terminal     []string
	Commands     map[string]string
	TabSizes     map[layout.Tab]layout.Size
	StartTab     layout.Tab
	PollInterval time.Duration
	Width        int
	Height       int
	ShowFooter   bool
	Verbose      bool
}

// Services is the launcher core wired from a Config: the settings store and
// editor, the host and the tab coordinator.
type Services struct {
	Slots  kv.Store
	Store  *settings.Store
	Editor *settings.Editor
	Host   host.Host
	Layout *layout.Coordinator
	// LoadErr is set when the persisted settings could not be read. The
	// editor then holds the defaults.
	LoadErr error
}

// Open wires the launcher core. A persisted document that cannot be parsed
// is not fatal: it is logged and reported through LoadErr.
func Open(ctx context.Context, cfg Config) (*Services, error) {
	slots, err := kv.Open(cfg.StoreBackend, cfg.StorePath)
	if err != nil {
		return nil, fmt.Errorf("open settings store: %w", err)
	}
	commands, err := host.ParseCommands(cfg.Commands)
	if err != nil {
		slots.Close()
		return nil, err
	}
	h, err := host.New(host.Options{
		Mode:     cfg.HostMode,
		Socket:   cfg.SocketPath,
		Terminal: cfg.Terminal,
		Commands: commands,
	})
	if err != nil {
		slots.Close()
		return nil, fmt.Errorf("create host: %w", err)
	}
	store := settings.NewStore(slots)
	committed, loadErr := store.Load(ctx)
	if loadErr != nil {
		logging.Error(loadErr)
	}
	return &Services{
		Slots:   slots,
		Store:   store,
		Editor:  settings.NewEditor(store, committed),
		Host:    h,
		Layout:  layout.NewCoordinator(h, layout.WithSizes(cfg.TabSizes)),
		LoadErr: loadErr,
	}, nil
}

// Close releases the settings store.
func (s *Services) Close() error {
	if s == nil || s.Slots == nil {
		return nil
	}
	return s.Slots.Close()
}

// Run bootstraps and executes the Bubble Tea program.
func Run(ctx context.Context, cfg Config) error {
	svc, err := Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer svc.Close()

	var watcher *backend.Watcher
	if cfg.PollInterval > 0 {
		watcher = backend.NewWatcher(ui.WatchedRepos(svc.Editor.Committed()), host.RepoStatus, cfg.PollInterval)
		defer watcher.Stop()
	}
	model := ui.NewModel(ui.Options{
		Context:    ctx,
		Editor:     svc.Editor,
		Store:      svc.Store,
		Host:       svc.Host,
		Layout:     svc.Layout,
		Watcher:    watcher,
		Width:      cfg.Width,
		Height:     cfg.Height,
		ShowFooter: cfg.ShowFooter,
		Verbose:    cfg.Verbose,
		StartTab:   cfg.StartTab,
		StartupErr: startupError(svc.LoadErr),
	})
	defer model.Close()
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithContext(ctx))
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func startupError(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("saved settings unreadable, using defaults: %w", err)
}
