package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mia-z/spotty-api/internal/formatter"
	"github.com/mia-z/spotty-api/pkg/models"
	"github.com/mia-z/spotty-api/pkg/request"
)

// Player is the part of the player endpoints the remote drives. [*client.PlayerService] implements it.
type Player interface {
	PlaybackState(ctx context.Context) request.Result[models.Player]
	Devices(ctx context.Context) request.Result[models.Devices]
	TransferPlayback(ctx context.Context, deviceIDs []string) request.Result[any]
	Play(ctx context.Context, deviceID string) request.Result[any]
	Pause(ctx context.Context, deviceID string) request.Result[any]
	Next(ctx context.Context, deviceID string) request.Result[any]
	Previous(ctx context.Context, deviceID string) request.Result[any]
	Seek(ctx context.Context, positionMs int) request.Result[any]
	SetVolume(ctx context.Context, percent int) request.Result[any]
	SetShuffle(ctx context.Context, on bool) request.Result[any]
	RepeatTrack(ctx context.Context) request.Result[any]
	RepeatContext(ctx context.Context) request.Result[any]
	RepeatOff(ctx context.Context) request.Result[any]
}

// ViewState represents the current view in the TUI.
type ViewState int

const (
	NowPlayingView ViewState = iota
	DeviceListView
)

const (
	pollInterval = 5 * time.Second
	volumeStep   = 10
	seekStep     = 10_000
	barWidth     = 30
)

// Model represents the TUI application state.
type Model struct {
	ctx        context.Context
	view       ViewState
	player     Player
	width      int
	height     int
	state      *models.Player
	deviceList list.Model
	status     string
	err        error
	help       help.Model
	keys       keyMap
	poll       time.Duration
}

// NewModel creates a new TUI model driving player.
func NewModel(ctx context.Context, player Player) *Model {
	return &Model{
		ctx:    ctx,
		view:   NowPlayingView,
		player: player,
		help:   help.New(),
		keys:   newKeyMap(),
		poll:   pollInterval,
	}
}

// Init fetches the playback state and starts polling.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.fetchState(), m.tick())
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if m.view == DeviceListView {
			m.deviceList.SetSize(max(msg.Width-4, 0), max(msg.Height-6, 0))
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case NowPlayingView:
			return m.handleNowPlayingKeys(msg)
		case DeviceListView:
			return m.handleDeviceListKeys(msg)
		}

	case Msg:
		return m.handleMsg(msg)
	}

	return m.updateLists(msg)
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgStateFetched:
		data := msg.data.(stateFetched)
		if data.err != nil {
			m.err = data.err
			return m, nil
		}
		m.err = nil
		m.state = data.state
		return m, nil

	case MsgDevicesFetched:
		data := msg.data.(devicesFetched)
		if data.err != nil {
			m.err = data.err
			m.view = NowPlayingView
			return m, nil
		}
		items := make([]list.Item, len(data.devices))
		for i, d := range data.devices {
			items[i] = deviceItem{device: d}
		}
		m.deviceList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.deviceList.Title = "Devices"
		m.deviceList.SetSize(max(m.width-4, 0), max(m.height-6, 0))
		m.view = DeviceListView
		return m, nil

	case MsgCommandDone:
		data := msg.data.(commandDone)
		if data.err != nil {
			m.err = data.err
			m.status = ""
			return m, nil
		}
		m.err = nil
		m.status = data.action
		return m, m.fetchState()

	case MsgTick:
		return m, tea.Batch(m.fetchState(), m.tick())
	}
	return m, nil
}

func (m *Model) handleNowPlayingKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.refresh):
		return m, m.fetchState()
	case key.Matches(msg, m.keys.devices):
		return m, m.fetchDevices()
	case key.Matches(msg, m.keys.toggle):
		id := m.deviceID()
		if m.state != nil && m.state.IsPlaying {
			return m, m.command("paused", func(ctx context.Context) request.Result[any] {
				return m.player.Pause(ctx, id)
			})
		}
		return m, m.command("playing", func(ctx context.Context) request.Result[any] {
			return m.player.Play(ctx, id)
		})
	case key.Matches(msg, m.keys.next):
		id := m.deviceID()
		return m, m.command("skipped to next", func(ctx context.Context) request.Result[any] {
			return m.player.Next(ctx, id)
		})
	case key.Matches(msg, m.keys.previous):
		id := m.deviceID()
		return m, m.command("skipped to previous", func(ctx context.Context) request.Result[any] {
			return m.player.Previous(ctx, id)
		})
	case key.Matches(msg, m.keys.volUp):
		return m, m.setVolume(m.volume() + volumeStep)
	case key.Matches(msg, m.keys.volDown):
		return m, m.setVolume(m.volume() - volumeStep)
	case key.Matches(msg, m.keys.seekFwd):
		return m, m.seek(m.progress() + seekStep)
	case key.Matches(msg, m.keys.seekBack):
		return m, m.seek(m.progress() - seekStep)
	case key.Matches(msg, m.keys.shuffle):
		on := m.state == nil || !m.state.ShuffleState
		return m, m.command(fmt.Sprintf("shuffle %s", onOff(on)), func(ctx context.Context) request.Result[any] {
			return m.player.SetShuffle(ctx, on)
		})
	case key.Matches(msg, m.keys.repeat):
		return m, m.cycleRepeat()
	}
	return m, nil
}

func (m *Model) handleDeviceListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.deviceList.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.deviceList, cmd = m.deviceList.Update(msg)
		return m, cmd
	}

	switch {
	case msg.String() == "ctrl+c":
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.view = NowPlayingView
		return m, nil
	case key.Matches(msg, m.keys.enter):
		if item, ok := m.deviceList.SelectedItem().(deviceItem); ok && item.id() != "" {
			m.view = NowPlayingView
			name, id := item.device.Name, item.id()
			return m, m.command("playing on "+name, func(ctx context.Context) request.Result[any] {
				return m.player.TransferPlayback(ctx, []string{id})
			})
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.deviceList, cmd = m.deviceList.Update(msg)
	return m, cmd
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.view == DeviceListView {
		m.deviceList, cmd = m.deviceList.Update(msg)
	}
	return m, cmd
}

func (m *Model) fetchState() tea.Cmd {
	return func() tea.Msg {
		return stateFetchedMsg(m.player.PlaybackState(m.ctx))
	}
}

func (m *Model) fetchDevices() tea.Cmd {
	return func() tea.Msg {
		return devicesFetchedMsg(m.player.Devices(m.ctx))
	}
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.poll, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *Model) command(action string, fn func(context.Context) request.Result[any]) tea.Cmd {
	return func() tea.Msg {
		return commandDoneMsg(action, fn(m.ctx))
	}
}

func (m *Model) setVolume(percent int) tea.Cmd {
	percent = max(0, min(100, percent))
	return m.command(fmt.Sprintf("volume %d%%", percent), func(ctx context.Context) request.Result[any] {
		return m.player.SetVolume(ctx, percent)
	})
}

func (m *Model) seek(positionMs int) tea.Cmd {
	positionMs = max(0, positionMs)
	return m.command("seeked to "+formatter.FormatDuration(positionMs), func(ctx context.Context) request.Result[any] {
		return m.player.Seek(ctx, positionMs)
	})
}

// cycleRepeat steps off -> context -> track -> off.
func (m *Model) cycleRepeat() tea.Cmd {
	current := "off"
	if m.state != nil && m.state.RepeatState != "" {
		current = m.state.RepeatState
	}

	switch current {
	case "off":
		return m.command("repeat context", m.player.RepeatContext)
	case "context":
		return m.command("repeat track", m.player.RepeatTrack)
	default:
		return m.command("repeat off", m.player.RepeatOff)
	}
}

func (m *Model) deviceID() string {
	if m.state == nil || m.state.Device == nil || m.state.Device.ID == nil {
		return ""
	}
	return *m.state.Device.ID
}

func (m *Model) volume() int {
	if m.state == nil || m.state.Device == nil || m.state.Device.VolumePercent == nil {
		return 50
	}
	return *m.state.Device.VolumePercent
}

func (m *Model) progress() int {
	if m.state == nil || m.state.ProgressMS == nil {
		return 0
	}
	return *m.state.ProgressMS
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case DeviceListView:
		return m.renderDeviceList()
	default:
		return m.renderNowPlaying()
	}
}

func (m *Model) renderNowPlaying() string {
	var b strings.Builder
	b.WriteString(styles.title.Render("Now Playing"))
	b.WriteString("\n")

	switch {
	case m.state == nil:
		b.WriteString(styles.muted.Render("Nothing is playing. Press d to pick a device."))
		b.WriteString("\n")
	case m.state.Item == nil:
		b.WriteString(styles.muted.Render("Playing something that is not a track."))
		b.WriteString("\n")
	default:
		track := m.state.Item
		b.WriteString(styles.track.Render(track.Name))
		b.WriteString("\n")
		b.WriteString(formatter.ArtistNames(*track))
		if track.Album != nil && track.Album.Name != "" {
			b.WriteString(styles.muted.Render(" • " + track.Album.Name))
		}
		b.WriteString("\n\n")
		b.WriteString(renderProgress(m.progress(), track.DurationMS, m.state.IsPlaying))
		b.WriteString("\n")
	}

	if m.state != nil {
		b.WriteString("\n")
		b.WriteString(m.renderSettings())
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(styles.err.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	} else if m.status != "" {
		b.WriteString("\n")
		b.WriteString(styles.ok.Render("✓ " + m.status))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *Model) renderSettings() string {
	device := "no active device"
	if d := m.state.Device; d != nil {
		device = d.Name
		if d.VolumePercent != nil {
			device = fmt.Sprintf("%s (volume %d%%)", d.Name, *d.VolumePercent)
		}
	}

	repeat := m.state.RepeatState
	if repeat == "" {
		repeat = "off"
	}

	return styles.muted.Render(fmt.Sprintf("Device: %s • Shuffle: %s • Repeat: %s", device, onOff(m.state.ShuffleState), repeat))
}

// renderProgress draws "▶ 1:23 [=====-----] 3:45".
func renderProgress(progressMs, durationMs int, playing bool) string {
	icon := "⏸"
	if playing {
		icon = "▶"
	}

	filled := 0
	if durationMs > 0 {
		filled = min(barWidth, progressMs*barWidth/durationMs)
	}
	bar := styles.bar.Render(strings.Repeat("━", filled)) + styles.muted.Render(strings.Repeat("─", barWidth-filled))

	return fmt.Sprintf("%s %s %s %s", icon, formatter.FormatDuration(progressMs), bar, formatter.FormatDuration(durationMs))
}

func (m *Model) renderDeviceList() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.back}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.deviceList.View(), helpView)
}
