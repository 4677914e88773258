// Package tui implements the interactive terminal front-end: a status
// line, a live temperature readout and a scrolling chart, with start/stop
// key bindings.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"TempMon/internal/model"
	"TempMon/internal/monitor"
	"TempMon/internal/util"
)

type keyMap struct {
	Start  key.Binding
	Stop   key.Binding
	Reveal key.Binding
	Quit   key.Binding
}

var keys = keyMap{
	Start:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start")),
	Stop:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "stop")),
	Reveal: key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open folder")),
	Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// eventMsg wraps one monitor event for the bubbletea update loop.
type eventMsg monitor.Event

// Model is the root bubbletea model.
type Model struct {
	mon *monitor.Monitor

	width  int
	height int

	recording bool
	status    string
	statusSt  lipgloss.Style
	last      *model.Sample
	outFile   string
	warnings  int
	quitting  bool
}

// New creates the TUI model around a monitor.
func New(mon *monitor.Monitor) Model {
	return Model{
		mon:      mon,
		status:   "Ready — press s to start recording",
		statusSt: statusInfoStyle,
	}
}

func (m Model) Init() tea.Cmd {
	return waitForEvent(m.mon.Events())
}

// waitForEvent forwards the next monitor event into the update loop.
func waitForEvent(ch <-chan monitor.Event) tea.Cmd {
	return func() tea.Msg {
		return eventMsg(<-ch)
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case eventMsg:
		return m.handleEvent(monitor.Event(msg))
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		if m.recording {
			if _, err := m.mon.StopSession(); err != nil {
				util.Error("[tui] stop on quit: %v", err)
			}
		}
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, keys.Start):
		path, err := m.mon.StartSession()
		if err != nil {
			m.status = fmt.Sprintf("Start failed: %v", err)
			m.statusSt = statusErrStyle
			return m, nil
		}
		m.recording = true
		m.last = nil
		m.warnings = 0
		m.outFile = path
		m.status = fmt.Sprintf("Recording -> %s", path)
		m.statusSt = statusOKStyle
		return m, nil

	case key.Matches(msg, keys.Stop):
		path, err := m.mon.StopSession()
		if err != nil {
			m.status = fmt.Sprintf("Stop failed: %v", err)
			m.statusSt = statusWarnStyle
			return m, nil
		}
		m.recording = false
		m.outFile = path
		return m, nil

	case key.Matches(msg, keys.Reveal):
		if err := util.Reveal(m.mon.Folder()); err != nil {
			m.status = fmt.Sprintf("Open folder failed: %v", err)
			m.statusSt = statusWarnStyle
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleEvent(e monitor.Event) (tea.Model, tea.Cmd) {
	switch e.Kind {
	case monitor.EventSample:
		s := e.Sample
		m.last = &s

	case monitor.EventWarning:
		m.warnings++

	case monitor.EventError:
		m.status = fmt.Sprintf("Session error: %v", e.Err)
		m.statusSt = statusErrStyle

	case monitor.EventStopped:
		m.recording = false
		m.outFile = e.File
		if e.Err == nil {
			m.status = fmt.Sprintf("Stopped — saved %s", e.File)
			m.statusSt = statusInfoStyle
		}
	}
	return m, waitForEvent(m.mon.Events())
}

func (m Model) View() string {
	if m.quitting {
		if m.outFile != "" {
			return fmt.Sprintf("Measurements saved to %s\n", m.outFile)
		}
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("TempMon — Thermocouple Monitor"))
	b.WriteString("\n\n")
	b.WriteString(m.statusSt.Render(m.status))
	b.WriteString("\n\n")
	b.WriteString(m.readout())
	b.WriteString("\n")
	b.WriteString(m.chart())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("s start · x stop · o open folder · q quit"))
	b.WriteString("\n")
	return b.String()
}

// readout shows the latest temperature and its rate of change.
func (m Model) readout() string {
	if m.last == nil {
		return readoutStyle.Render("--.- °C")
	}
	line := fmt.Sprintf("%.2f °C", m.last.Temperature)
	if m.last.Change != nil {
		line += fmt.Sprintf("   %+.3f °C/s", *m.last.Change)
	}
	if m.warnings > 0 {
		line += statusWarnStyle.Render(fmt.Sprintf("   (%d bad lines skipped)", m.warnings))
	}
	return readoutStyle.Render(line)
}

// chart renders the sliding window as a braille plot sized to the terminal.
func (m Model) chart() string {
	w := m.width - 12
	if w < 20 {
		w = 60
	}
	h := m.height - 10
	if h < 4 {
		h = 8
	}
	if h > 12 {
		h = 12
	}

	samples := m.mon.Snapshot()
	plot := renderChart(samples, w, h)
	if plot == "" {
		return chartStyle.Render("waiting for data…")
	}
	minT, maxT := chartBounds(samples)
	labelled := fmt.Sprintf("%s\n%s\n%s",
		axisStyle.Render(fmt.Sprintf("%.2f °C", maxT)),
		plot,
		axisStyle.Render(fmt.Sprintf("%.2f °C", minT)))
	return chartStyle.Render(labelled)
}
