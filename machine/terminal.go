package machine

import (
	"io"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-errors/errors"
	"github.com/juju/clock"
)

// check TerminalMachine compliance to its interface during compile time
var _ Machine = (*TerminalMachine)(nil)

const (
	defaultHold = 120 * time.Millisecond
	// releaseGap keeps the buttons up between two queued presses.
	releaseGap      = 40 * time.Millisecond
	maxPending      = 8
	startupWindow   = 250 * time.Millisecond
	refreshInterval = 30 * time.Millisecond
	logLines        = 8
)

var (
	lightOnColors = [NumChannels]lipgloss.Color{"#00d75f", "#ff0000", "#ffd700", "#0087ff"}
	lightOffColor = lipgloss.Color("#303030")
	lightStyle    = lipgloss.NewStyle().Width(9).Height(3).Align(lipgloss.Center, lipgloss.Center).MarginRight(2)
	labelStyle    = lipgloss.NewStyle().Width(9).Align(lipgloss.Center).MarginRight(2).Foreground(lipgloss.Color("#888"))
	pressedStyle  = labelStyle.Foreground(lipgloss.Color("#fff")).Bold(true)
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#555")).MarginTop(1)
	logStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#777")).MarginTop(1)
)

// keys maps a key to the button it presses.
var keys = map[string]Channel{
	"g": Green, "1": Green,
	"r": Red, "2": Red,
	"y": Yellow, "3": Yellow,
	"b": Blue, "4": Blue,
}

// Clock is the part of clock.Clock the terminal board reads time from.
type Clock interface {
	Now() time.Time
}

type TerminalMachineConfig struct {
	// Hold is how long a key press keeps its button down. Keys pressed while
	// a button is down are queued and pressed one after another.
	Hold  time.Duration
	Clock Clock
	// Input and Output default to the process terminal.
	Input  io.Reader
	Output io.Writer
	Logger Logger
}

// TerminalMachine simulates the board in the terminal. Lights are drawn as
// colored blocks and keys stand in for the buttons.
type TerminalMachine struct {
	log           Logger
	hold          time.Duration
	clock         Clock
	input         io.Reader
	output        io.Writer
	startupWindow time.Duration
	program       *tea.Program
	done          chan struct{}
	runErr        error

	mu        sync.Mutex
	lights    [NumChannels]bool
	pending   []Channel
	holding   bool
	heldUntil time.Time
	nextAt    time.Time
	lines     []string

	quit     chan struct{}
	quitOnce sync.Once
}

func NewTerminalMachine(config *TerminalMachineConfig) *TerminalMachine {
	m := &TerminalMachine{
		hold:          config.Hold,
		clock:         config.Clock,
		input:         config.Input,
		output:        config.Output,
		startupWindow: startupWindow,
		quit:          make(chan struct{}),
	}

	if m.hold <= 0 {
		m.hold = defaultHold
	}

	if m.clock == nil {
		m.clock = clock.WallClock
	}

	if config.Logger != nil {
		m.log = config.Logger
	} else {
		m.log = noopLogger{}
	}

	return m
}

func (m *TerminalMachine) Start() error {
	opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithoutSignalHandler()}
	if m.input != nil {
		opts = append(opts, tea.WithInput(m.input))
	}
	if m.output != nil {
		opts = append(opts, tea.WithOutput(m.output))
	}

	m.program = tea.NewProgram(terminalModel{m: m}, opts...)
	m.done = make(chan struct{})

	go func() {
		defer close(m.done)
		defer m.requestQuit()

		if _, err := m.program.Run(); err != nil {
			m.runErr = err
			m.log.Errorf("Terminal board stopped: %v", err)
		}
	}()

	// a terminal that can't be set up fails right away
	select {
	case <-m.done:
		if m.runErr != nil {
			return errors.Errorf("could not start terminal board: %v", m.runErr)
		}
		// quit before the window was over
		return nil
	case <-clock.WallClock.After(m.startupWindow):
		return nil
	}
}

func (m *TerminalMachine) Stop() error {
	if m.program == nil {
		return nil
	}

	m.program.Quit()
	<-m.done

	return nil
}

func (m *TerminalMachine) Read(ch Channel) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.advance(m.clock.Now())

	return m.heldLocked(ch)
}

func (m *TerminalMachine) Write(ch Channel, on bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lights[ch] = on
}

func (m *TerminalMachine) Quit() <-chan struct{} {
	return m.quit
}

// LogWriter returns a writer whose lines are shown underneath the board.
func (m *TerminalMachine) LogWriter() io.Writer {
	return logPane{m: m}
}

func (m *TerminalMachine) press(ch Channel) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.pending) >= maxPending {
		m.log.Debugf("Dropped press of %v, %d presses pending", ch, len(m.pending))
		return
	}

	m.pending = append(m.pending, ch)
	m.advance(m.clock.Now())
}

// advance releases the held press once its hold is over, and holds the next
// queued press once the release gap has passed. Callers hold mu.
func (m *TerminalMachine) advance(now time.Time) {
	if m.holding && !now.Before(m.heldUntil) {
		m.holding = false
		m.pending = m.pending[1:]
		m.nextAt = m.heldUntil.Add(releaseGap)
	}

	if !m.holding && len(m.pending) > 0 && !now.Before(m.nextAt) {
		m.holding = true
		m.heldUntil = now.Add(m.hold)
	}
}

func (m *TerminalMachine) heldLocked(ch Channel) bool {
	return m.holding && m.pending[0] == ch
}

func (m *TerminalMachine) requestQuit() {
	m.quitOnce.Do(func() {
		close(m.quit)
	})
}

func (m *TerminalMachine) appendLog(p []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, line := range strings.Split(strings.TrimRight(string(p), "\n"), "\n") {
		m.lines = append(m.lines, line)
	}

	if len(m.lines) > logLines {
		m.lines = m.lines[len(m.lines)-logLines:]
	}
}

type logPane struct {
	m *TerminalMachine
}

func (l logPane) Write(p []byte) (int, error) {
	l.m.appendLog(p)
	return len(p), nil
}

type refreshMsg struct{}

func refresh() tea.Cmd {
	return tea.Tick(refreshInterval, func(time.Time) tea.Msg {
		return refreshMsg{}
	})
}

type terminalModel struct {
	m *TerminalMachine
}

func (t terminalModel) Init() tea.Cmd {
	return refresh()
}

func (t terminalModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			t.m.requestQuit()
			return t, tea.Quit
		default:
			if ch, ok := keys[msg.String()]; ok {
				t.m.press(ch)
			}
		}

	case refreshMsg:
		return t, refresh()
	}

	return t, nil
}

func (t terminalModel) View() string {
	t.m.mu.Lock()
	defer t.m.mu.Unlock()

	t.m.advance(t.m.clock.Now())

	var lights, labels []string
	for _, ch := range Channels {
		color := lightOffColor
		if t.m.lights[ch] {
			color = lightOnColors[ch]
		}
		lights = append(lights, lightStyle.Background(color).Render(""))

		label := labelStyle
		if t.m.heldLocked(ch) {
			label = pressedStyle
		}
		labels = append(labels, label.Render(ch.String()))
	}

	var b strings.Builder
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, lights...))
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, labels...))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("g/1 green  r/2 red  y/3 yellow  b/4 blue  q quit"))
	b.WriteString("\n")
	b.WriteString(logStyle.Render(strings.Join(t.m.lines, "\n")))
	b.WriteString("\n")

	return b.String()
}
