package tui

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
	"github.com/tessro/spotbar/internal/core"
	"github.com/tessro/spotbar/internal/playback"
	"github.com/tessro/spotbar/internal/tui/components"
	"github.com/tessro/spotbar/internal/tui/styles"
)

const remoteTimeout = 5 * time.Second

// App holds what the bar needs from the rest of the program.
type App struct {
	controller *playback.Controller
	remote     core.Remote
	tokens     core.TokenProvider
	theme      string
	log        zerolog.Logger
}

// NewApp creates a new TUI application
func NewApp(controller *playback.Controller, remote core.Remote, tokens core.TokenProvider, theme string, logger zerolog.Logger) *App {
	return &App{
		controller: controller,
		remote:     remote,
		tokens:     tokens,
		theme:      theme,
		log:        logger.With().Str("component", "tui").Logger(),
	}
}

// Model is the bar's bubbletea model.
type Model struct {
	app   *App
	width int

	keys keyMap
	help help.Model

	state    core.PlaybackState
	track    *core.TrackInfo
	fetching string // track id being looked up
	syncing  bool

	trackView    *components.Track
	controlsView *components.Controls
	volumeView   *components.Volume

	quitting bool
}

// NewModel creates a new TUI model
func NewModel(app *App) Model {
	return Model{
		app:          app,
		keys:         defaultKeyMap(),
		help:         help.New(),
		state:        app.controller.Store().State(),
		syncing:      true,
		trackView:    components.NewTrack(),
		controlsView: components.NewControls(),
		volumeView:   components.NewVolume(),
	}
}

// Messages
type stateMsg core.PlaybackState
type syncedMsg struct{}
type toggledMsg bool
type volumeSettledMsg struct{}
type trackInfoMsg struct {
	id   string
	info *core.TrackInfo
	err  error
}

// Commands
func (m Model) sync() tea.Cmd {
	c := m.app.controller
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 2*remoteTimeout)
		defer cancel()

		c.Sync(ctx)
		return syncedMsg{}
	}
}

func (m Model) resync() tea.Cmd {
	c := m.app.controller
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 2*remoteTimeout)
		defer cancel()

		c.Resync(ctx)
		return syncedMsg{}
	}
}

func (m Model) togglePlayPause() tea.Cmd {
	c := m.app.controller
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 2*remoteTimeout)
		defer cancel()

		return toggledMsg(c.TogglePlayback(ctx))
	}
}

func (m Model) fetchTrack(id string) tea.Cmd {
	remote := m.app.remote
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), remoteTimeout)
		defer cancel()

		info, err := remote.Track(ctx, id)
		return trackInfoMsg{id: id, info: info, err: err}
	}
}

func (m Model) settleVolume() tea.Cmd {
	return tea.Tick(m.app.controller.VolumeDelay()+50*time.Millisecond, func(time.Time) tea.Msg {
		return volumeSettledMsg{}
	})
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return m.sync()
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case stateMsg:
		return m, m.applyState(core.PlaybackState(msg))

	case syncedMsg:
		m.syncing = false
		return m, m.applyState(m.app.controller.Store().State())

	case toggledMsg:
		return m, m.applyState(m.app.controller.Store().State())

	case trackInfoMsg:
		if msg.id == m.fetching {
			m.fetching = ""
		}
		if msg.id != m.state.TrackID {
			return m, nil
		}
		if msg.err != nil {
			m.app.log.Warn().Err(msg.err).Str("track_id", msg.id).Msg("fetch track info failed")
			return m, nil
		}
		m.track = msg.info
		return m, nil

	case volumeSettledMsg:
		return m, nil
	}

	return m, nil
}

// applyState adopts s and starts a track lookup when the track changed.
func (m *Model) applyState(s core.PlaybackState) tea.Cmd {
	prev := m.state.TrackID
	m.state = s
	if s.TrackID == prev && (m.track != nil || m.fetching == s.TrackID) {
		return nil
	}
	if s.TrackID != prev {
		m.track = nil
	}
	if s.TrackID == "" {
		return nil
	}
	m.fetching = s.TrackID
	return m.fetchTrack(s.TrackID)
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	c := m.app.controller

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Toggle):
		return m, m.togglePlayPause()

	case key.Matches(msg, m.keys.Resync):
		m.syncing = true
		return m, m.resync()

	case key.Matches(msg, m.keys.VolumeUp):
		m.state.Volume = c.VolumeUp()
		return m, m.settleVolume()

	case key.Matches(msg, m.keys.VolumeDown):
		m.state.Volume = c.VolumeDown()
		return m, m.settleVolume()

	case key.Matches(msg, m.keys.Nudge):
		m.state.Volume = c.SetVolume(m.state.Volume + 1)
		return m, m.settleVolume()

	case key.Matches(msg, m.keys.NudgeDown):
		m.state.Volume = c.SetVolume(m.state.Volume - 1)
		return m, m.settleVolume()
	}

	return m, nil
}

// View renders the UI
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.width == 0 {
		return "Loading..."
	}

	// the bar's horizontal padding takes two cells
	inner := m.width - 2
	leftWidth := inner * 35 / 100
	rightWidth := inner * 35 / 100
	centerWidth := inner - leftWidth - rightWidth

	var left string
	switch {
	case m.app.tokens != nil && !m.app.tokens.HasToken():
		left = lipgloss.NewStyle().Width(leftWidth).Render(
			styles.Paused.Render("Not logged in") + "\n" + styles.Dim.Render("no Spotify token found"),
		)
	case m.syncing && m.track == nil:
		left = lipgloss.NewStyle().Width(leftWidth).Render(styles.Muted.Render("Syncing..."))
	default:
		left = m.trackView.Render(m.track, leftWidth)
	}

	center := m.controlsView.Render(m.state.IsPlaying, centerWidth)
	right := m.volumeView.Render(m.state.Volume, m.app.controller.VolumePending(), rightWidth)

	bar := styles.Bar.Width(m.width).Render(
		lipgloss.JoinHorizontal(lipgloss.Center, left, center, right),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		bar,
		lipgloss.NewStyle().Padding(0, 1).Render(m.help.View(m.keys)),
	)
}

// Run starts the bar and blocks until the user quits. A pending volume
// change is sent before Run returns.
func Run(app *App) error {
	styles.Apply(app.theme)

	p, stop := newProgram(app, tea.WithAltScreen())
	defer stop()
	defer app.controller.Flush()

	_, err := p.Run()
	return err
}

// newProgram creates the bar's program and forwards store changes to it.
// Store changes can come from inside Update, which must never wait on the
// program's message loop, so the subscriber only marks the state dirty and
// a separate goroutine sends the latest state. The returned func stops
// forwarding.
func newProgram(app *App, opts ...tea.ProgramOption) (*tea.Program, func()) {
	p := tea.NewProgram(NewModel(app), opts...)
	store := app.controller.Store()

	dirty := make(chan struct{}, 1)
	done := make(chan struct{})

	unsubscribe := store.Subscribe(func(core.PlaybackState) {
		select {
		case dirty <- struct{}{}:
		default:
		}
	})

	go func() {
		for {
			select {
			case <-done:
				return
			case <-dirty:
				p.Send(stateMsg(store.State()))
			}
		}
	}()

	var once sync.Once
	return p, func() {
		once.Do(func() {
			unsubscribe()
			close(done)
		})
	}
}
