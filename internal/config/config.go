package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	shlex "github.com/anmitsu/go-shlex"
	"github.com/atomicstack/cli-launcher/internal/app"
	"github.com/atomicstack/cli-launcher/internal/host"
	"github.com/atomicstack/cli-launcher/internal/kv"
	"github.com/atomicstack/cli-launcher/internal/layout"
	"github.com/spf13/pflag"
)

// Config captures runtime configuration for the application.
type Config struct {
	App      app.Config
	Logging  Logging
	Features Features
	// File is the runtime config file that was read, if any.
	File  string
	Flags map[string]string
	// Args is the invocation without flags: subcommand names, then
	// positional arguments.
	Args []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

type Features struct {
	Verbose bool
}

const appName = "cli-launcher"

const (
	envConfigFile   = "CLI_LAUNCHER_CONFIG"
	envStoreBackend = "CLI_LAUNCHER_STORE"
	envStorePath    = "CLI_LAUNCHER_STORE_PATH"
	envHostMode     = "CLI_LAUNCHER_HOST"
	envSocketPath   = "CLI_LAUNCHER_TMUX_SOCKET"
	envTerminal     = "CLI_LAUNCHER_TERMINAL"
	envWidth        = "CLI_LAUNCHER_WIDTH"
	envHeight       = "CLI_LAUNCHER_HEIGHT"
	envShowFooter   = "CLI_LAUNCHER_FOOTER"
	envVerbose      = "CLI_LAUNCHER_VERBOSE"
	envTrace        = "CLI_LAUNCHER_TRACE"
	envLogFile      = "CLI_LAUNCHER_LOG_FILE"
	envPollInterval = "CLI_LAUNCHER_POLL_INTERVAL"
	envStartTab     = "CLI_LAUNCHER_TAB"
)

const defaultPollInterval = 3 * time.Second

// Loader owns the flags registered on a FlagSet and resolves them, together
// with the environment and the optional config file, into a Config.
type Loader struct {
	fs  *pflag.FlagSet
	env map[string]string

	configFile   *string
	storeBackend *string
	storePath    *string
	hostMode     *string
	socket       *string
	terminal     *string
	width        *int
	height       *int
	footer       *bool
	verbose      *bool
	trace        *bool
	logFile      *string
	pollInterval *time.Duration
	startTab     *string
}

// Bind registers the runtime flags on fs. Environment values become the
// flag defaults so an explicit flag always wins.
func Bind(fs *pflag.FlagSet, environ []string) *Loader {
	env := parseEnv(environ)
	return &Loader{
		fs:           fs,
		env:          env,
		configFile:   fs.String("config", envOrDefault(env, envConfigFile, ""), "path to the runtime config file (TOML)"),
		storeBackend: fs.String("store", envOrDefault(env, envStoreBackend, kv.BackendFile), "settings store backend: file or sqlite"),
		storePath:    fs.String("store-path", envOrDefault(env, envStorePath, ""), "path of the settings store"),
		hostMode:     fs.String("host", envOrDefault(env, envHostMode, host.ModeAuto), "how tools are opened: auto, exec or tmux"),
		socket:       fs.String("socket", envOrDefault(env, envSocketPath, ""), "path to the tmux socket (overrides environment detection)"),
		terminal:     fs.String("terminal", envOrDefault(env, envTerminal, ""), "terminal command line used to open tools in exec mode"),
		width:        fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)"),
		height:       fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)"),
		footer:       fs.Bool("footer", envOrBool(env, envShowFooter, true), "show the key hint footer"),
		verbose:      fs.Bool("verbose", envOrBool(env, envVerbose, false), "print success messages for actions"),
		trace:        fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging"),
		logFile:      fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file"),
		pollInterval: fs.Duration("poll-interval", envOrDuration(env, envPollInterval, defaultPollInterval), "how often git repo status is refreshed (0 disables)"),
		startTab:     fs.String("tab", envOrDefault(env, envStartTab, string(layout.TabLauncher)), "tab shown at startup: launcher or git"),
	}
}

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	fs := pflag.NewFlagSet(appName, pflag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))
	loader := Bind(fs, environ)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return loader.Resolve(fs.Args())
}

// Resolve builds the Config once the FlagSet has been parsed. Values from
// the config file apply only where neither a flag nor an environment
// variable was given.
func (l *Loader) Resolve(args []string) (Config, error) {
	path, explicit := l.configPath()
	file, err := readFile(path, explicit)
	if err != nil {
		return Config{}, err
	}
	if file.defined != nil {
		l.overlayString(l.storeBackend, "store", envStoreBackend, file.Store.Backend, file.has("store", "backend"))
		l.overlayString(l.storePath, "store-path", envStorePath, file.Store.Path, file.has("store", "path"))
		l.overlayString(l.hostMode, "host", envHostMode, file.Host.Mode, file.has("host", "mode"))
		l.overlayString(l.socket, "socket", envSocketPath, file.Host.Socket, file.has("host", "socket"))
		l.overlayString(l.logFile, "log-file", envLogFile, file.Logging.File, file.has("logging", "file"))
		l.overlayString(l.startTab, "tab", envStartTab, file.UI.StartTab, file.has("ui", "start_tab"))
		l.overlayBool(l.footer, "footer", envShowFooter, file.UI.Footer, file.has("ui", "footer"))
		l.overlayBool(l.verbose, "verbose", envVerbose, file.UI.Verbose, file.has("ui", "verbose"))
		l.overlayBool(l.trace, "trace", envTrace, file.Logging.Trace, file.has("logging", "trace"))
		if l.fromFile("terminal", envTerminal, file.has("host", "terminal")) {
			*l.terminal = strings.Join(file.Host.Terminal, " ")
		}
		if l.fromFile("poll-interval", envPollInterval, file.has("ui", "poll_interval")) {
			d, err := time.ParseDuration(file.UI.PollInterval)
			if err != nil {
				return Config{}, fmt.Errorf("%s: ui.poll_interval: %w", path, err)
			}
			*l.pollInterval = d
		}
	}

	if *l.width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *l.width)
	}
	if *l.height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *l.height)
	}

	terminal, err := splitTerminal(*l.terminal, file.Host.Terminal, l.fromFile("terminal", envTerminal, file.has("host", "terminal")))
	if err != nil {
		return Config{}, err
	}

	storePath := *l.storePath
	if storePath == "" {
		storePath = defaultStorePath(l.env, *l.storeBackend)
	}

	startTab, _ := layout.ParseTab(*l.startTab)
	cfg := Config{
		App: app.Config{
			StoreBackend: strings.ToLower(strings.TrimSpace(*l.storeBackend)),
			StorePath:    storePath,
			HostMode:     strings.ToLower(strings.TrimSpace(*l.hostMode)),
			SocketPath:   *l.socket,
			Terminal:     terminal,
			Commands:     file.Host.Commands,
			TabSizes:     file.sizes(),
			StartTab:     startTab,
			PollInterval: *l.pollInterval,
			Width:        *l.width,
			Height:       *l.height,
			ShowFooter:   *l.footer,
			Verbose:      *l.verbose,
		},
		Logging: Logging{
			FilePath: *l.logFile,
			Trace:    *l.trace,
		},
		Features: Features{
			Verbose: *l.verbose,
		},
		File: file.path,
		Flags: map[string]string{
			"config":       *l.configFile,
			"store":        *l.storeBackend,
			"storePath":    storePath,
			"host":         *l.hostMode,
			"socket":       *l.socket,
			"terminal":     *l.terminal,
			"width":        strconv.Itoa(*l.width),
			"height":       strconv.Itoa(*l.height),
			"footer":       strconv.FormatBool(*l.footer),
			"trace":        strconv.FormatBool(*l.trace),
			"verbose":      strconv.FormatBool(*l.verbose),
			"logFile":      *l.logFile,
			"pollInterval": l.pollInterval.String(),
			"tab":          *l.startTab,
		},
		Args: append([]string(nil), args...),
	}
	if startTab == "" {
		// Validate reports the raw value.
		cfg.App.StartTab = layout.Tab(*l.startTab)
	}
	return cfg, nil
}

func (l *Loader) configPath() (string, bool) {
	if l.fs.Changed("config") {
		return *l.configFile, true
	}
	if v, ok := l.env[envConfigFile]; ok && strings.TrimSpace(v) != "" {
		return v, true
	}
	return DefaultFile(l.env), false
}

func (l *Loader) fromFile(flagName, envKey string, defined bool) bool {
	if !defined || l.fs.Changed(flagName) {
		return false
	}
	if _, ok := l.env[envKey]; ok {
		return false
	}
	return true
}

func (l *Loader) overlayString(dst *string, flagName, envKey, value string, defined bool) {
	if l.fromFile(flagName, envKey, defined) {
		*dst = value
	}
}

func (l *Loader) overlayBool(dst *bool, flagName, envKey string, value, defined bool) {
	if l.fromFile(flagName, envKey, defined) {
		*dst = value
	}
}

func splitTerminal(line string, fromFile []string, useFile bool) ([]string, error) {
	if useFile {
		return append([]string(nil), fromFile...), nil
	}
	if strings.TrimSpace(line) == "" {
		return nil, nil
	}
	argv, err := shlex.Split(line, true)
	if err != nil {
		return nil, fmt.Errorf("terminal: %w", err)
	}
	return argv, nil
}

// Dir is the per-user configuration directory of the launcher.
func Dir(env map[string]string) string {
	if xdg := strings.TrimSpace(env["XDG_CONFIG_HOME"]); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	if base, err := os.UserConfigDir(); err == nil {
		return filepath.Join(base, appName)
	}
	return "." + appName
}

// DefaultFile is the runtime config file read when none is named.
func DefaultFile(env map[string]string) string {
	return filepath.Join(Dir(env), "config.toml")
}

func defaultStorePath(env map[string]string, backend string) string {
	name := "settings.json"
	if strings.EqualFold(strings.TrimSpace(backend), kv.BackendSQLite) {
		name = "settings.db"
	}
	return filepath.Join(Dir(env), name)
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate rejects values the application cannot start with.
func Validate(cfg Config) error {
	var errs []error
	switch cfg.App.StoreBackend {
	case "", kv.BackendFile, kv.BackendSQLite:
	default:
		errs = append(errs, fmt.Errorf("unknown store backend %q", cfg.App.StoreBackend))
	}
	switch cfg.App.HostMode {
	case "", host.ModeAuto, host.ModeExec, host.ModeTmux:
	default:
		errs = append(errs, fmt.Errorf("unknown host mode %q", cfg.App.HostMode))
	}
	if _, ok := layout.ParseTab(string(cfg.App.StartTab)); !ok && cfg.App.StartTab != "" {
		errs = append(errs, fmt.Errorf("unknown tab %q", cfg.App.StartTab))
	}
	for tab, size := range cfg.App.TabSizes {
		if _, ok := layout.ParseTab(string(tab)); !ok {
			errs = append(errs, fmt.Errorf("unknown tab %q in sizes", tab))
		}
		if size.Width < 0 || size.Height < 0 {
			errs = append(errs, fmt.Errorf("size for tab %s must be >= 0 (got %dx%d)", tab, size.Width, size.Height))
		}
	}
	if cfg.App.PollInterval < 0 {
		errs = append(errs, fmt.Errorf("poll interval must be >= 0 (got %s)", cfg.App.PollInterval))
	}
	if _, err := host.ParseCommands(cfg.App.Commands); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
