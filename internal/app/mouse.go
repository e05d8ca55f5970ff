package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/Gaurav-Gosain/deskfolio/internal/desktop"
	"github.com/Gaurav-Gosain/deskfolio/internal/geom"
	"github.com/Gaurav-Gosain/deskfolio/internal/tape"
)

// wheelStep is how many lines one wheel notch scrolls.
const wheelStep = 3

// MouseFilter drops motion events while no gesture is in flight. With all
// motion reporting on, hovering would otherwise wake the update loop for
// every cell the pointer crosses.
func MouseFilter(model tea.Model, msg tea.Msg) tea.Msg {
	if _, ok := msg.(tea.MouseMotionMsg); !ok {
		return msg
	}
	if m, ok := model.(*OS); ok && !m.Desktop.Busy() {
		return nil
	}
	return msg
}

// handleMouse feeds pointer events to the desktop.
func (m *OS) handleMouse(msg tea.MouseMsg) tea.Cmd {
	mouse := msg.Mouse()
	p := geom.Point{X: mouse.X, Y: mouse.Y}

	switch msg.(type) {
	case tea.MouseClickMsg:
		if m.ShowHelp || m.ShowLogs {
			m.ShowHelp, m.ShowLogs = false, false
			return nil
		}
		if mouse.Button != tea.MouseLeft {
			return nil
		}
		if t := m.Desktop.HitTest(p); t.Kind == desktop.TargetMenuBar {
			m.clickMenuBar(p)
			return nil
		}
		m.Desktop.PointerDown(p)
		m.recordPointer(tape.CommandType_PointerDown, p)

	case tea.MouseMotionMsg:
		if !m.Desktop.Busy() {
			return nil
		}
		m.Desktop.PointerMove(p)
		m.recordPointer(tape.CommandType_PointerMove, p)

	case tea.MouseReleaseMsg:
		if !m.Desktop.Busy() {
			return nil
		}
		m.Desktop.PointerUp(p)
		m.recordPointer(tape.CommandType_PointerUp, p)

	case tea.MouseWheelMsg:
		delta := wheelStep
		if mouse.Button == tea.MouseWheelUp {
			delta = -wheelStep
		}
		if m.ShowLogs {
			m.LogScrollOffset = max(0, m.LogScrollOffset-delta)
			return nil
		}
		switch t := m.Desktop.HitTest(p); t.Kind {
		case desktop.TargetContent, desktop.TargetTitleBar:
			m.scrollWindow(t.ID, delta)
		}
	}
	return nil
}

// clickMenuBar handles presses on the menu bar. The logo opens help.
func (m *OS) clickMenuBar(p geom.Point) {
	if p.X < menuLogoWidth {
		m.ShowHelp = true
	}
}

func (m *OS) recordPointer(kind tape.CommandType, p geom.Point) {
	if m.Recorder != nil {
		m.Recorder.RecordPointer(kind, p)
	}
}

func (m *OS) record(kind tape.CommandType, args ...string) {
	if m.Recorder != nil {
		m.Recorder.RecordCommand(kind, args...)
	}
}
