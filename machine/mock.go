package machine

import (
	"sync"
)

// check MockMachine compliance to its interface during compile time
var _ Machine = (*MockMachine)(nil)

type MockMachineConfig struct {
	// Presses is the script of button presses, played in order.
	Presses []Channel
	// QuitWhenIdle closes Quit once a read finds the script empty.
	QuitWhenIdle bool
	// OnIdle is called whenever a read finds the script empty.
	OnIdle func()
	Logger Logger
}

// Write is a recorded LED change.
type Write struct {
	Channel Channel
	On      bool
}

// MockMachine is a scripted board. The press at the head of the script is held
// until a read has seen it, and is released by the read after that. The next
// press only shows up after a full scan of released buttons.
type MockMachine struct {
	mu       sync.Mutex
	log      Logger
	script   []Channel
	seen     bool
	idle     int
	consumed int
	lights   [NumChannels]bool
	writes   []Write
	onIdle   func()
	quitIdle bool
	quit     chan struct{}
	quitOnce sync.Once
}

func NewMockMachine(config *MockMachineConfig) *MockMachine {
	m := &MockMachine{
		script:   append([]Channel(nil), config.Presses...),
		onIdle:   config.OnIdle,
		quitIdle: config.QuitWhenIdle,
		quit:     make(chan struct{}),
	}

	if config.Logger != nil {
		m.log = config.Logger
	} else {
		m.log = noopLogger{}
	}

	return m
}

func (m *MockMachine) Start() error {
	m.log.Infof("Started mock machine with %d scripted presses", len(m.script))
	return nil
}

func (m *MockMachine) Stop() error {
	m.Close()
	return nil
}

func (m *MockMachine) Read(ch Channel) bool {
	m.mu.Lock()

	if m.idle > 0 {
		m.idle--
		m.mu.Unlock()
		return false
	}

	if len(m.script) == 0 {
		onIdle := m.onIdle
		quitIdle := m.quitIdle
		m.mu.Unlock()

		if onIdle != nil {
			onIdle()
		}
		if quitIdle {
			m.Close()
		}

		return false
	}

	defer m.mu.Unlock()

	if m.seen {
		m.log.Debugf("Released %v", m.script[0])

		m.script = m.script[1:]
		m.seen = false
		m.consumed++
		// this read is the first of a released scan
		m.idle = NumChannels - 1
		return false
	}

	if ch == m.script[0] {
		m.seen = true
		return true
	}

	return false
}

func (m *MockMachine) Write(ch Channel, on bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lights[ch] = on
	m.writes = append(m.writes, Write{Channel: ch, On: on})
}

func (m *MockMachine) Quit() <-chan struct{} {
	return m.quit
}

// Close closes the Quit channel.
func (m *MockMachine) Close() {
	m.quitOnce.Do(func() {
		close(m.quit)
	})
}

// Press appends presses to the end of the script.
func (m *MockMachine) Press(chs ...Channel) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.script = append(m.script, chs...)
}

// Consumed returns the number of presses that were pressed and released.
func (m *MockMachine) Consumed() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.consumed
}

// Remaining returns the number of presses still in the script.
func (m *MockMachine) Remaining() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.script)
}

func (m *MockMachine) Writes() []Write {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]Write(nil), m.writes...)
}

func (m *MockMachine) Light(ch Channel) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.lights[ch]
}
