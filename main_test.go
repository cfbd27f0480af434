package main

import (
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
	"github.com/the-lightning-land/simond/machine"
)

func TestParseConfigDefaults(t *testing.T) {
	c := qt.New(t)

	cfg, err := parseConfig(nil)
	c.Assert(err, qt.IsNil)
	c.Assert(cfg.Machine, qt.Equals, "terminal")
	c.Assert(cfg.Poll, qt.Equals, time.Millisecond)
	c.Assert(cfg.Terminal.Hold, qt.Equals, 120*time.Millisecond)
	c.Assert(cfg.Raspberry.LedGreen, qt.Equals, "GPIO17")
	c.Assert(cfg.Raspberry.ButtonBlue, qt.Equals, "GPIO19")
}

func TestParseConfigRejectsUnknownMachine(t *testing.T) {
	c := qt.New(t)

	_, err := parseConfig([]string{"--machine=abacus"})
	c.Assert(err, qt.Not(qt.IsNil))
}

func TestStartMachineUnknownType(t *testing.T) {
	c := qt.New(t)

	m, err := startMachine(&config{Machine: "abacus"})
	c.Assert(err, qt.ErrorMatches, "Unknown machine type abacus")
	c.Assert(m, qt.IsNil)
}

func TestStartMachineInvalidMockPress(t *testing.T) {
	c := qt.New(t)

	cfg, err := parseConfig([]string{"--machine=mock", "--mock.press=green", "--mock.press=purple"})
	c.Assert(err, qt.IsNil)

	_, err = startMachine(cfg)
	c.Assert(err, qt.ErrorMatches, `Invalid mock press: unknown channel "purple"`)
}

func TestStartMachineMock(t *testing.T) {
	c := qt.New(t)

	cfg, err := parseConfig([]string{"--machine=mock", "--mock.press=red", "--mock.press=b"})
	c.Assert(err, qt.IsNil)

	m, err := startMachine(cfg)
	c.Assert(err, qt.IsNil)

	mock, ok := m.(*machine.MockMachine)
	c.Assert(ok, qt.Equals, true)
	c.Assert(mock.Remaining(), qt.Equals, 2)
	c.Assert(m.Stop(), qt.IsNil)
}

func TestStartMachineFailsOnBoardStartup(t *testing.T) {
	c := qt.New(t)

	cfg, err := parseConfig([]string{
		"--machine=raspberry",
		"--raspberry.led-green=NO_SUCH_PIN",
		"--raspberry.button-green=NO_SUCH_PIN",
	})
	c.Assert(err, qt.IsNil)

	m, err := startMachine(cfg)
	c.Assert(err, qt.ErrorMatches, `Could not start machine: (could not initialize periph host|invalid GREEN led pin): .*`)
	c.Assert(m, qt.IsNil)
}
