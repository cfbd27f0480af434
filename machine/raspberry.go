package machine

import (
	"github.com/go-errors/errors"
	"periph.io/x/periph/conn/gpio"
	"periph.io/x/periph/conn/gpio/gpioreg"
	"periph.io/x/periph/host"
)

// check RaspberryMachine compliance to its interface during compile time
var _ Machine = (*RaspberryMachine)(nil)

type RaspberryMachineConfig struct {
	// LedPins and ButtonPins are periph pin names, indexed by channel.
	LedPins    [NumChannels]string
	ButtonPins [NumChannels]string
	Logger     Logger
}

// RaspberryMachine drives LEDs and reads buttons on the GPIO header. Buttons are
// expected to pull their pin high while pressed.
type RaspberryMachine struct {
	log        Logger
	ledPins    [NumChannels]string
	buttonPins [NumChannels]string
	leds       [NumChannels]gpio.PinIO
	buttons    [NumChannels]gpio.PinIO
	quit       chan struct{}
	initHost   func() error
	byName     func(name string) gpio.PinIO
}

func NewRaspberryMachine(config *RaspberryMachineConfig) *RaspberryMachine {
	m := &RaspberryMachine{
		ledPins:    config.LedPins,
		buttonPins: config.ButtonPins,
		quit:       make(chan struct{}),
		initHost: func() error {
			_, err := host.Init()
			return err
		},
		byName: gpioreg.ByName,
	}

	if config.Logger != nil {
		m.log = config.Logger
	} else {
		m.log = noopLogger{}
	}

	return m
}

func (m *RaspberryMachine) Start() error {
	if err := m.initHost(); err != nil {
		return errors.Errorf("could not initialize periph host: %v", err)
	}

	if err := m.setup(); err != nil {
		m.release()
		return err
	}

	return nil
}

func (m *RaspberryMachine) setup() error {
	for _, ch := range Channels {
		led := m.byName(m.ledPins[ch])
		if led == nil {
			return errors.Errorf("invalid %v led pin: %v", ch, m.ledPins[ch])
		}

		m.leds[ch] = led

		if err := led.Out(gpio.Low); err != nil {
			return errors.Errorf("could not set up %v led pin %v: %v", ch, m.ledPins[ch], err)
		}

		button := m.byName(m.buttonPins[ch])
		if button == nil {
			return errors.Errorf("invalid %v button pin: %v", ch, m.buttonPins[ch])
		}

		if err := button.In(gpio.PullDown, gpio.NoEdge); err != nil {
			return errors.Errorf("could not set up %v button pin %v: %v", ch, m.buttonPins[ch], err)
		}

		m.buttons[ch] = button

		m.log.Debugf("Set up %v on led pin %v and button pin %v", ch, led, button)
	}

	return nil
}

// release switches off and halts the pins of a half finished setup, so a failed
// Start leaves nothing configured behind.
func (m *RaspberryMachine) release() {
	for _, ch := range Channels {
		if led := m.leds[ch]; led != nil {
			if err := led.Out(gpio.Low); err != nil {
				m.log.Warnf("Could not switch off %v led: %v", ch, err)
			}
			if err := led.Halt(); err != nil {
				m.log.Warnf("Could not halt %v led pin: %v", ch, err)
			}
		}

		if button := m.buttons[ch]; button != nil {
			if err := button.Halt(); err != nil {
				m.log.Warnf("Could not halt %v button pin: %v", ch, err)
			}
		}

		m.leds[ch] = nil
		m.buttons[ch] = nil
	}
}

func (m *RaspberryMachine) Stop() error {
	for _, ch := range Channels {
		if m.leds[ch] == nil {
			continue
		}

		if err := m.leds[ch].Out(gpio.Low); err != nil {
			return errors.Errorf("could not switch off %v led: %v", ch, err)
		}
	}

	return nil
}

func (m *RaspberryMachine) Read(ch Channel) bool {
	return m.buttons[ch].Read() == gpio.High
}

func (m *RaspberryMachine) Write(ch Channel, on bool) {
	level := gpio.Low
	if on {
		level = gpio.High
	}

	if err := m.leds[ch].Out(level); err != nil {
		m.log.Errorf("Could not switch %v led: %v", ch, err)
	}
}

// Quit never closes, the board has no quit control of its own.
func (m *RaspberryMachine) Quit() <-chan struct{} {
	return m.quit
}
