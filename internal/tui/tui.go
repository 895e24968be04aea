// Package tui provides the Bubble Tea terminal user interface of vinyl-shuffle.
package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/term"

	"github.com/handiism/vinyl-shuffle/internal/collection"
	"github.com/handiism/vinyl-shuffle/internal/config"
	"github.com/handiism/vinyl-shuffle/internal/display"
	"github.com/handiism/vinyl-shuffle/internal/feedback"
	"github.com/handiism/vinyl-shuffle/internal/gesture"
	"github.com/handiism/vinyl-shuffle/internal/input"
	"github.com/handiism/vinyl-shuffle/internal/model"
	"github.com/handiism/vinyl-shuffle/internal/navigate"
)

const (
	marginLeft = 2
	maxLogs    = 10
)

var (
	vinylFrames = []string{"◐", "◓", "◑", "◒"}
	vinylFast   = time.Second / 8
	vinylSlow   = time.Second / 3
)

// State represents the current UI state.
type State int

const (
	StateInput State = iota
	StateLoading
	StateBrowsing
	StateError
)

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   collection.ProgressLevel
}

// session is shared by every copy of the Model. The gesture plumbing holds
// pointers into it: it is the feedback.Surface, and it owns the command
// queue the scheduler and the gate executor write to.
type session struct {
	offset    float64
	swiping   bool
	releasing bool

	queue   cmdQueue
	sched   *tickScheduler
	regions hitMap

	pressed     bool
	pressTarget gesture.Target
}

// SetDragOffset implements feedback.Surface.
func (s *session) SetDragOffset(px float64) { s.offset = px }

// SetSwiping implements feedback.Surface.
func (s *session) SetSwiping(on bool) { s.swiping = on }

// SetReleasing implements feedback.Surface.
func (s *session) SetReleasing(on bool) { s.releasing = on }

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state    State
	settings *config.Settings
	logger   *slog.Logger
	ctx      context.Context

	manager *collection.Manager
	gate    *navigate.Gate[*display.Card]
	adapter *feedback.Adapter
	binding *input.Binding
	s       *session

	textInput textinput.Model
	spinner   spinner.Model
	vinyl     spinner.Model
	meter     progress.Model
	help      help.Model
	keys      keyMap

	card     *display.Card
	logs     []LogEntry
	err      error
	navErr   error
	notice   string
	spinning bool
	showHint bool
	verbose  bool

	width  int
	height int
}

// Option configures a Model.
type Option func(*options)

type options struct {
	logger   *slog.Logger
	platform input.Platform
	manager  *collection.Manager
	executor navigate.Executor[*display.Card]
}

// WithLogger sets the logger. The TUI owns the terminal, so it should not
// write to stdout or stderr.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithPlatform sets the input platform.
func WithPlatform(p input.Platform) Option {
	return func(o *options) { o.platform = p }
}

// WithManager replaces the collection manager.
func WithManager(m *collection.Manager) Option {
	return func(o *options) { o.manager = m }
}

func withExecutor(e navigate.Executor[*display.Card]) Option {
	return func(o *options) { o.executor = e }
}

// NewModel creates a new TUI model. ctx bounds every navigation and catalog
// fetch.
func NewModel(ctx context.Context, settings *config.Settings, opts ...Option) Model {
	if settings == nil {
		settings = config.DefaultSettings()
	}
	o := options{
		logger:   slog.New(slog.DiscardHandler),
		platform: input.PlatformMouse,
	}
	for _, opt := range opts {
		opt(&o)
	}

	s := &session{}
	s.sched = newTickScheduler(&s.queue)

	mgr := o.manager
	if mgr == nil {
		mgr = collection.NewManager(settings,
			collection.WithLogger(o.logger),
			collection.WithTouch(o.platform == input.PlatformTouch),
		)
	}

	exec := o.executor
	if exec == nil {
		exec = cmdExecutor{queue: &s.queue}
	}

	gate := navigate.NewGate[*display.Card](ctx, mgr.Next, exec,
		navigate.WithTimeout(settings.NavigationTimeout),
		navigate.WithLogger(o.logger),
	)
	adapter := feedback.NewAdapter(s, s.sched,
		feedback.WithReleaseDuration(settings.ReleaseDuration),
		feedback.WithLogger(o.logger),
	)
	binding := input.NewBinding(o.platform, adapter, gate,
		input.WithCellSize(settings.CellWidthPx, settings.CellHeightPx),
		input.WithLogger(o.logger),
		input.WithGestureOptions(
			gesture.WithConfig(settings.ToGestureConfig()),
			gesture.WithLogger(o.logger),
		),
	)

	ti := textinput.New()
	ti.Placeholder = config.DefaultCatalogURL
	ti.Focus()
	ti.CharLimit = 2000
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	vinyl := spinner.New()
	vinyl.Spinner = spinner.Spinner{Frames: vinylFrames, FPS: vinylFast}
	vinyl.Style = vinylStyle

	meter := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	meter.Width = 30

	state := StateLoading
	if len(mgr.CatalogURLs()) == 0 {
		state = StateInput
	}

	keys := defaultKeyMap()
	keys.state = state

	return Model{
		state:     state,
		settings:  settings,
		logger:    o.logger,
		ctx:       ctx,
		manager:   mgr,
		gate:      gate,
		adapter:   adapter,
		binding:   binding,
		s:         s,
		textInput: ti,
		spinner:   sp,
		vinyl:     vinyl,
		meter:     meter,
		help:      help.New(),
		keys:      keys,
		spinning:  true,
		verbose:   strings.EqualFold(settings.LogLevel, "debug"),
	}
}

// Message types
type (
	// ProgressMsg is sent when the collection manager reports progress.
	ProgressMsg struct {
		Event collection.ProgressEvent
	}

	// catalogLoadedMsg is sent when the catalog fetch completes.
	catalogLoadedMsg struct {
		Err error
	}

	// exportedMsg is sent when the session playlist was written.
	exportedMsg struct {
		Path string
		Err  error
	}

	// hintExpiredMsg hides the swipe hint.
	hintExpiredMsg struct{}
)

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick, m.vinyl.Tick}
	switch m.state {
	case StateInput:
		cmds = append(cmds, textinput.Blink)
	case StateLoading:
		cmds = append(cmds, m.loadCatalog())
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.meter.Width = min(max(msg.Width-20, 20), 60)
		m.textInput.Width = min(max(msg.Width-10, 20), 100)

	case tea.KeyMsg:
		cmds = append(cmds, m.handleKey(msg))

	case tea.MouseMsg:
		if m.state == StateBrowsing {
			cmds = append(cmds, m.handleMouse(msg))
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		if msg.ID == m.vinyl.ID() {
			// A paused vinyl drops its tick; toggleSpin restarts the chain.
			if m.spinning {
				m.vinyl, cmd = m.vinyl.Update(msg)
			}
		} else {
			m.spinner, cmd = m.spinner.Update(msg)
		}
		cmds = append(cmds, cmd)

	case releaseTickMsg:
		m.s.sched.fire(msg.id)

	case ProgressMsg:
		if msg.Event.Level == collection.LevelVerbose && !m.verbose {
			break
		}
		m.logs = append(m.logs, LogEntry{
			Message: msg.Event.Message,
			Level:   msg.Event.Level,
		})
		if len(m.logs) > maxLogs {
			m.logs = m.logs[len(m.logs)-maxLogs:]
		}

	case catalogLoadedMsg:
		if msg.Err != nil {
			m.setState(StateError)
			m.err = msg.Err
			m.logger.Error("catalog load failed", "error", msg.Err)
			break
		}
		m.setState(StateBrowsing)
		m.err = nil
		m.gate.Request(navigate.TriggerStartup)

	case navigatedMsg:
		cmds = append(cmds, m.handleNavigated(msg.outcome))

	case exportedMsg:
		if msg.Err != nil {
			m.notice = ""
			m.navErr = fmt.Errorf("save playlist: %w", msg.Err)
		} else {
			m.navErr = nil
			m.notice = "Playlist saved: " + msg.Path
		}

	case hintExpiredMsg:
		m.showHint = false
	}

	// Update text input
	if m.state == StateInput {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	cmds = append(cmds, m.s.queue.drain()...)
	return m, tea.Batch(cmds...)
}

func (m *Model) setState(s State) {
	m.state = s
	m.keys.state = s
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		return tea.Quit
	}

	switch m.state {
	case StateInput:
		switch {
		case msg.String() == "esc":
			return tea.Quit
		case key.Matches(msg, m.keys.Submit):
			urls := collection.ParseInputURLs(m.textInput.Value())
			if len(urls) == 0 {
				m.err = errors.New("enter at least one http(s) URL")
				return nil
			}
			m.err = nil
			m.manager.SetCatalogURLs(urls)
			m.setState(StateLoading)
			return m.loadCatalog()
		}

	case StateLoading:
		if key.Matches(msg, m.keys.Quit) {
			return tea.Quit
		}

	case StateError:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return tea.Quit
		case key.Matches(msg, m.keys.Retry):
			m.logs = nil
			m.setState(StateLoading)
			return m.loadCatalog()
		case key.Matches(msg, m.keys.Edit):
			m.err = nil
			m.textInput.SetValue(strings.Join(m.manager.CatalogURLs(), " "))
			m.textInput.Focus()
			m.setState(StateInput)
			return textinput.Blink
		}

	case StateBrowsing:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.requestNavigation(navigate.TriggerKeyboard)
		case key.Matches(msg, m.keys.Spin):
			return m.toggleSpin()
		case key.Matches(msg, m.keys.Export):
			return m.exportPlaylist()
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
	}
	return nil
}

// handleMouse hit-tests a mouse message against the last render, feeds it
// to the input binding and falls back to click handling for events that
// were not part of a gesture.
func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if tea.MouseEvent(msg).IsWheel() {
		return nil
	}

	target, inside := m.s.regions.test(msg.X, msg.Y)
	ev := input.Event{
		Col:    msg.X,
		Row:    msg.Y,
		Target: target,
		Inside: inside,
	}
	switch msg.Action {
	case tea.MouseActionPress:
		ev.Action = input.ActionPress
	case tea.MouseActionRelease:
		ev.Action = input.ActionRelease
	default:
		ev.Action = input.ActionMotion
	}
	switch msg.Button {
	case tea.MouseButtonLeft:
		ev.Button = input.ButtonLeft
	case tea.MouseButtonNone:
		ev.Button = input.ButtonNone
	default:
		ev.Button = input.ButtonOther
	}

	res := m.binding.Handle(ev)
	if res.Outcome != nil {
		m.logger.Debug("gesture ended",
			"committed", res.Outcome.Committed,
			"direction", res.Outcome.Direction,
			"offset", res.Outcome.Offset)
	}

	if ev.Action == input.ActionPress {
		m.s.pressed = !res.Handled
		m.s.pressTarget = target
	}
	if res.Handled || res.Suppress {
		return nil
	}
	return m.defaultMouse(ev)
}

// defaultMouse handles clicks and hover outside of gestures. A click is a
// press and release on the same element.
func (m *Model) defaultMouse(ev input.Event) tea.Cmd {
	switch ev.Action {
	case input.ActionMotion:
		if ev.Button == input.ButtonNone {
			m.setHover(ev.Target == gesture.TargetVinyl)
		}
		return nil

	case input.ActionRelease:
		clicked := m.s.pressed && m.s.pressTarget == ev.Target
		m.s.pressed = false
		if !clicked {
			return nil
		}
		switch ev.Target {
		case gesture.TargetControl:
			m.requestNavigation(navigate.TriggerClick)
		case gesture.TargetVinyl:
			return m.toggleSpin()
		}
	}
	return nil
}

func (m *Model) requestNavigation(trigger navigate.Trigger) {
	if m.gate.Request(trigger) {
		m.notice = ""
	}
}

func (m *Model) handleNavigated(out navigate.Outcome[*display.Card]) tea.Cmd {
	if out.Err != nil {
		m.navErr = out.Err
		return nil
	}

	first := m.card == nil
	m.card = out.Value
	m.navErr = nil
	m.logger.Info("album shown", "album", out.Value.Album.String(), "trigger", out.Trigger)

	cmds := []tea.Cmd{tea.SetWindowTitle(windowTitle(out.Value.Album))}
	if first && m.binding.Platform() == input.PlatformTouch && m.settings.SwipeHintDuration > 0 {
		m.showHint = true
		cmds = append(cmds, tea.Tick(m.settings.SwipeHintDuration, func(time.Time) tea.Msg {
			return hintExpiredMsg{}
		}))
	}
	return tea.Batch(cmds...)
}

func windowTitle(album *model.Album) string {
	return fmt.Sprintf("Vinyl Shuffle - %s - %s", album.Artist, album.Title)
}

func (m *Model) toggleSpin() tea.Cmd {
	m.spinning = !m.spinning
	if m.spinning {
		return m.vinyl.Tick
	}
	return nil
}

func (m *Model) setHover(over bool) {
	if over {
		m.vinyl.Spinner.FPS = vinylSlow
	} else {
		m.vinyl.Spinner.FPS = vinylFast
	}
}

// loadCatalog fetches the catalog in the background.
func (m *Model) loadCatalog() tea.Cmd {
	mgr, ctx := m.manager, m.ctx
	return func() tea.Msg {
		return catalogLoadedMsg{Err: mgr.Initialize(ctx)}
	}
}

// exportPlaylist writes the session history in the background.
func (m *Model) exportPlaylist() tea.Cmd {
	mgr, ctx := m.manager, m.ctx
	return func() tea.Msg {
		path, err := mgr.ExportPlaylist(ctx)
		return exportedMsg{Path: path, Err: err}
	}
}

// View renders the UI.
func (m Model) View() string {
	var c canvas

	// Header
	c.add(titleStyle.Render("♫ Vinyl Shuffle"))
	c.add(dimStyle.Render(m.subtitle()))
	c.add("")

	m.s.regions.reset()
	switch m.state {
	case StateInput:
		c.add(m.viewInput())
	case StateLoading:
		c.add(m.viewLoading())
	case StateBrowsing:
		m.drawBrowsing(&c)
	case StateError:
		c.add(m.viewError())
	}

	// Footer
	c.add("")
	c.add(m.help.View(m.keys))

	// The renderer drops rows above the terminal height; drop them here
	// instead so the hit regions keep matching the screen.
	if over := len(c.rows) - m.height; m.height > 0 && over > 0 {
		c.rows = c.rows[over:]
		m.s.regions.shift(-over)
	}

	return c.String()
}

func (m Model) subtitle() string {
	if n := m.manager.Albums(); n > 0 {
		return fmt.Sprintf("A random record from a collection of %d", n)
	}
	return "A random record from the collection"
}

func (m Model) viewInput() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Enter catalog URL:"))
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n")
	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(`The endpoint must serve {"documents": [...]} JSON.`))

	return b.String()
}

func (m Model) viewLoading() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render("Fetching catalog..."))
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return strings.TrimRight(b.String(), "\n")
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("✗ Could not load the catalog:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(boxStyle.Render(m.err.Error()))
		b.WriteString("\n\n")
	}
	b.WriteString(m.renderLogs())

	return strings.TrimRight(b.String(), "\n")
}

// drawBrowsing renders the album card, registers its hit regions and draws
// the swipe meter and status line below it.
func (m Model) drawBrowsing(c *canvas) {
	if m.card == nil {
		c.add(strings.Repeat(" ", marginLeft) + m.statusLine())
		return
	}

	album := m.card.Album
	shift := marginLeft + m.shiftCols()
	put := func(block string) int {
		top := -1
		for _, line := range strings.Split(block, "\n") {
			row := c.add(shiftLine(line, shift))
			if top < 0 {
				top = row
			}
		}
		return top
	}

	// The cover links to the album page like the title does.
	albumURL := album.Link()
	cover := m.card.Cover
	if albumURL != "" {
		lines := strings.Split(cover, "\n")
		for i, line := range lines {
			lines[i] = display.Hyperlink(line, albumURL)
		}
		cover = strings.Join(lines, "\n")
	}
	top := put(cover)
	if albumURL != "" {
		m.s.regions.add(gesture.TargetLink, shift, top, lipgloss.Width(m.card.Cover), lipgloss.Height(m.card.Cover))
	}
	put("")

	link := func(style lipgloss.Style, text, target string) {
		row := put(display.Hyperlink(style.Render(text), target))
		if target != "" {
			m.s.regions.add(gesture.TargetLink, shift, row, ansi.StringWidth(text), 1)
		}
	}
	link(albumStyle, album.Title, albumURL)
	link(artistStyle, album.Artist, album.ArtistURI)

	for _, kv := range m.card.Metadata() {
		put(labelStyle.Render(kv[0]+": ") + kv[1])
	}
	if m.card.ListenURL != "" {
		link(subtitleStyle, "♪ Listen on Apple Music", m.card.ListenURL)
	}
	put("")

	vinyl := m.vinyl.View()
	button := buttonStyle.Render("↻ Another")
	gap := "   "
	controls := put(vinyl + gap + button)
	vinylWidth := ansi.StringWidth(vinyl)
	m.s.regions.add(gesture.TargetVinyl, shift, controls, vinylWidth, 1)
	m.s.regions.add(gesture.TargetControl, shift+vinylWidth+len(gap), controls, ansi.StringWidth(button), 1)

	m.s.regions.setArea(0, top, m.width, controls-top+1)

	c.add("")
	c.add(strings.Repeat(" ", marginLeft) + m.swipeMeter())
	c.add(strings.Repeat(" ", marginLeft) + m.statusLine())
}

// shiftCols converts the drag offset to whole terminal columns.
func (m Model) shiftCols() int {
	return int(math.Round(m.s.offset / m.settings.CellWidthPx))
}

func (m Model) swipeMeter() string {
	if !m.s.swiping && !m.s.releasing {
		return ""
	}
	threshold := m.settings.SwipeThreshold
	percent := 1.0
	if threshold > 0 {
		percent = min(math.Abs(m.s.offset)/threshold, 1)
	}

	label := "swipe"
	switch {
	case m.s.releasing:
		label = "released"
	case math.Abs(m.s.offset) > threshold:
		label = "let go for another"
	}
	return m.meter.ViewAs(percent) + " " + swipeStyle.Render(label)
}

func (m Model) statusLine() string {
	switch {
	case m.gate.InFlight():
		return m.spinner.View() + " " + infoStyle.Render("Finding another record...")
	case m.navErr != nil:
		return errorStyle.Render("✗ " + m.navErr.Error())
	case m.notice != "":
		return successStyle.Render("✓ " + m.notice)
	case m.showHint:
		return dimStyle.Render("← swipe the card to shuffle →")
	}
	return ""
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs {
		var style lipgloss.Style
		prefix := "•"
		switch log.Level {
		case collection.LevelError:
			style = errorStyle
			prefix = "✗"
		case collection.LevelWarning:
			style = warningStyle
			prefix = "!"
		case collection.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case collection.LevelInfo:
			style = infoStyle
			prefix = "›"
		default:
			style = dimStyle
		}
		b.WriteString(style.Render(prefix + " " + log.Message))
		b.WriteString("\n")
	}

	return b.String()
}

// Run starts the TUI application and blocks until it exits.
func Run(ctx context.Context, settings *config.Settings, logger *slog.Logger) error {
	if settings == nil {
		settings = config.DefaultSettings()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	width, _, err := term.GetSize(os.Stdout.Fd())
	if err != nil {
		width = 0
	}
	platform := input.DetectPlatform(settings.InputMode, width, os.LookupEnv)
	logger.Info("starting tui", "platform", platform, "width", width)

	var program *tea.Program
	manager := collection.NewManager(settings,
		collection.WithLogger(logger),
		collection.WithTouch(platform == input.PlatformTouch),
		collection.WithProgress(func(e collection.ProgressEvent) {
			program.Send(ProgressMsg{Event: e})
		}),
	)

	model := NewModel(ctx, settings,
		WithLogger(logger),
		WithPlatform(platform),
		WithManager(manager),
	)
	program = tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithContext(ctx),
	)
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
