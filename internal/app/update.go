package app

import (
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/Gaurav-Gosain/deskfolio/internal/config"
	"github.com/Gaurav-Gosain/deskfolio/internal/tape"
)

// TickerMsg represents a periodic tick event. Each tick flushes the
// coalesced pointer frame into the desktop.
type TickerMsg time.Time

// ScriptCommandMsg carries a tape command to execute through the normal
// message flow.
type ScriptCommandMsg struct {
	Command *tape.Command
}

// ConfigReloadedMsg is sent when the config file changed on disk.
type ConfigReloadedMsg struct {
	Config *config.UserConfig
}

// NavigateMsg opens a deep link such as /blog/some-post.
type NavigateMsg struct {
	Path string
}

// Init starts the tick loop and the system sampler.
func (m *OS) Init() tea.Cmd {
	cmds := []tea.Cmd{TickCmd()}
	if !config.HideSysInfo {
		cmds = append(cmds, SampleSysInfoCmd())
	}
	return tea.Batch(cmds...)
}

// TickCmd creates a command that generates tick messages at 60 FPS.
func TickCmd() tea.Cmd {
	return tea.Tick(time.Second/config.NormalFPS, func(t time.Time) tea.Msg {
		return TickerMsg(t)
	})
}

// Update handles all incoming messages and updates the application state.
func (m *OS) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickerMsg:
		m.Desktop.Tick()
		m.UpdateAnimations()
		m.CleanupNotifications()

		cmds := []tea.Cmd{TickCmd()}
		if cmd := m.advanceScript(); cmd != nil {
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	case tea.KeyPressMsg:
		return m, m.handleKey(msg)

	case tea.MouseMsg:
		return m, m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.Desktop.SetViewport(msg.Width, msg.Height)
		if m.Recorder != nil && m.Recorder.IsRecording() {
			m.Recorder.RecordViewport(msg.Width, msg.Height)
		}
		return m, nil

	case SysInfoMsg:
		m.recordSysInfo(msg)
		if config.HideSysInfo {
			return m, nil
		}
		return m, SampleSysInfoCmd()

	case ConfigReloadedMsg:
		m.ApplyConfig(msg.Config)
		return m, nil

	case NavigateMsg:
		m.Desktop.Navigate(msg.Path)
		m.record(tape.CommandType_Navigate, msg.Path)
		return m, nil

	case ScriptCommandMsg:
		if m.scriptRunner == nil {
			return m, nil
		}
		m.scriptPending = max(0, m.scriptPending-1)
		if err := m.scriptRunner.Execute(msg.Command); err != nil {
			m.ShowNotification(fmt.Sprintf("Script error: %v", err), "error", NotificationDuration)
		}
		return m, nil

	case tea.FocusMsg, tea.BlurMsg:
		m.Desktop.CancelGestures()
		return m, nil
	}

	return m, nil
}

// advanceScript steps tape playback. Sleep waits in real time; every other
// command is queued as a ScriptCommandMsg.
func (m *OS) advanceScript() tea.Cmd {
	player := m.ScriptPlayer
	if player == nil || player.IsPaused() {
		return nil
	}
	if player.IsFinished() {
		if m.scriptPending == 0 && m.ScriptFinishedTime.IsZero() {
			m.ScriptFinishedTime = m.now()
			m.finishScript()
		}
		return nil
	}
	if !m.ScriptSleepUntil.IsZero() && m.now().Before(m.ScriptSleepUntil) {
		return nil
	}
	m.ScriptSleepUntil = time.Time{}

	next := player.NextCommand()
	if next == nil {
		return nil
	}
	player.Advance()
	if next.Type == tape.CommandType_Sleep {
		m.ScriptSleepUntil = m.now().Add(next.Delay)
		return nil
	}
	m.scriptPending++
	return func() tea.Msg { return ScriptCommandMsg{Command: next} }
}

func (m *OS) finishScript() {
	failures := m.scriptRunner.Failures()
	if len(failures) == 0 {
		m.ShowNotification("Script finished", "success", NotificationDuration)
		m.logger.Info("script finished")
		return
	}
	m.ShowNotification(fmt.Sprintf("Script finished: %d expectation(s) failed", len(failures)),
		"error", 2*NotificationDuration)
	for _, f := range failures {
		m.logger.Warn("script expectation failed", "detail", f)
	}
}
