package ui

import (
	"context"
	"reflect"

	"github.com/atomicstack/cli-launcher/internal/backend"
	"github.com/atomicstack/cli-launcher/internal/binding"
	"github.com/atomicstack/cli-launcher/internal/data/dispatcher"
	"github.com/atomicstack/cli-launcher/internal/dispatch"
	"github.com/atomicstack/cli-launcher/internal/host"
	"github.com/atomicstack/cli-launcher/internal/layout"
	"github.com/atomicstack/cli-launcher/internal/settings"
	"github.com/atomicstack/cli-launcher/internal/state"
	"github.com/atomicstack/cli-launcher/internal/theme"
	"github.com/atomicstack/cli-launcher/internal/ui/command"
	uistate "github.com/atomicstack/cli-launcher/internal/ui/state"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
)

type Mode int

const (
	ModeMain Mode = iota
	ModeSettings
	ModeBrowse
	ModeGitPrompt
	ModeGitFilter
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Options wires the model to the launcher core. Store, Watcher and Repos may
// be nil.
type Options struct {
	Context    context.Context
	Editor     *settings.Editor
	Store      *settings.Store
	Host       host.Host
	Layout     *layout.Coordinator
	Selection  state.Selection
	Repos      state.RepoStatusStore
	Watcher    *backend.Watcher
	Width      int
	Height     int
	ShowFooter bool
	Verbose    bool
	StartTab   layout.Tab
	StartupErr error
}

// Model implements the Bubble Tea model for the launcher.
type Model struct {
	ctx        context.Context
	editor     *settings.Editor
	store      *settings.Store
	host       host.Host
	layout     *layout.Coordinator
	selection  state.Selection
	repos      state.RepoStatusStore
	resolver   *dispatch.Resolver
	bus        *command.Bus
	backend    *backend.Watcher
	dispatcher *dispatcher.Dispatcher
	backendErr string

	mode        Mode
	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool
	verbose     bool

	// elements is the committed configuration as projected by the binding
	// layer: slot labels, the git repository list and the background tint.
	elements binding.Elements

	startTab   layout.Tab
	focusTool  int
	hoverIndex int
	mouse      layout.Point
	haveMouse  bool
	targets    []layout.Rect

	palette      *uistate.Palette
	filter       textinput.Model
	gitPrompt    textinput.Model
	output       []string
	outputTitle  string
	outputOffset int

	form        *settingsForm
	picker      filepicker.Model
	browseField int

	zones   *zone.Manager
	regions regionFunc

	formGen int
	pending int
	errMsg  string
	infoMsg string

	handlers map[reflect.Type]msgHandler
}

// NewModel initialises the UI state from the committed configuration.
func NewModel(opts Options) *Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	editor := opts.Editor
	if editor == nil {
		editor = settings.NewEditor(opts.Store, settings.Default())
	}
	selection := opts.Selection
	if selection == nil {
		selection = state.NewSelection()
	}
	repos := opts.Repos
	if repos == nil {
		repos = state.NewRepoStatusStore()
	}
	coord := opts.Layout
	if coord == nil {
		coord = layout.NewCoordinator(nil)
	}
	zones := zone.New()
	m := &Model{
		ctx:        ctx,
		editor:     editor,
		store:      opts.Store,
		host:       opts.Host,
		layout:     coord,
		selection:  selection,
		repos:      repos,
		resolver:   dispatch.NewResolver(editor, selection, coord),
		bus:        command.New(),
		backend:    opts.Watcher,
		dispatcher: dispatcher.New(repos),
		showFooter: opts.ShowFooter,
		verbose:    opts.Verbose,
		elements:   binding.NewElements(),
		hoverIndex: -1,
		palette:    uistate.NewPalette("git", uistate.DefaultGitCommands()),
		filter:     newInput("filter commands", 64),
		gitPrompt:  newInput("status --short", 256),
		zones:      zones,
		regions:    zoneRegions(zones),
	}
	m.filter.Prompt = "/ "
	m.gitPrompt.Prompt = "git "
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	if opts.StartupErr != nil {
		m.errMsg = opts.StartupErr.Error()
	}
	m.startTab = coord.Active()
	if opts.StartTab != "" {
		m.startTab = opts.StartTab
	}
	m.renderCommitted()
	m.registerHandlers()
	return m
}

// Close releases the mouse zone tracker.
func (m *Model) Close() {
	if m.zones != nil {
		m.zones.Close()
	}
}

// Init activates the start tab, which also requests its window size, and
// starts listening for repository status events.
func (m *Model) Init() tea.Cmd {
	startupErr := m.errMsg
	m.activateTab(m.startTab)
	m.errMsg = startupErr
	if m.backend != nil {
		return waitForBackendEvent(m.backend)
	}
	return nil
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if handled, cmd := m.handleActiveMode(msg); handled {
		return m, cmd
	}
	if handler := m.handlerFor(msg); handler != nil {
		return m, handler(msg)
	}
	return m, nil
}

func (m *Model) handleActiveMode(msg tea.Msg) (bool, tea.Cmd) {
	switch m.mode {
	case ModeSettings:
		return m.handleSettingsMode(msg)
	case ModeBrowse:
		return m.handleBrowseMode(msg)
	case ModeGitPrompt:
		return m.handleGitPromptMode(msg)
	case ModeGitFilter:
		return m.handleGitFilterMode(msg)
	default:
		return false, nil
	}
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.MouseMsg{}):      m.handleMouseMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(launchResultMsg{}):   m.handleLaunchResultMsg,
		reflect.TypeOf(gitResultMsg{}):      m.handleGitResultMsg,
		reflect.TypeOf(settingsSavedMsg{}):  m.handleSettingsSavedMsg,
		reflect.TypeOf(backendEventMsg{}):   m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):    m.handleBackendDoneMsg,
		reflect.TypeOf(tea.BatchMsg{}):      m.handleBatchMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

// handleBatchMsg only matters to the test harness; the runtime unpacks
// batches itself.
func (m *Model) handleBatchMsg(msg tea.Msg) tea.Cmd {
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		return nil
	}
	return tea.Batch(batch...)
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	size, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = size.Width
	}
	if !m.fixedHeight {
		m.height = size.Height
	}
	if m.mode == ModeBrowse {
		m.picker.SetHeight(m.pickerHeight())
	}
	return nil
}

// renderCommitted projects the committed configuration onto the launcher's
// elements.
func (m *Model) renderCommitted() {
	binding.Render(m.editor.Committed(), m.elements)
}

func (m *Model) setError(err error) {
	if err == nil {
		m.errMsg = ""
		return
	}
	m.errMsg = dispatch.Message(err)
	m.infoMsg = ""
}

func (m *Model) setInfo(info string) {
	m.infoMsg = info
	m.errMsg = ""
}

func newInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Prompt = ""
	ti.Cursor.SetMode(cursor.CursorStatic)
	return ti
}
