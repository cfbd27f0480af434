package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/jessevdk/go-flags"
	"github.com/juju/clock"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/the-lightning-land/simond/game"
	"github.com/the-lightning-land/simond/machine"
)

var (
	// Commit stores the current commit hash of this build. This should be set using -ldflags during compilation.
	Commit string
	// Version stores the version string of this build. This should be set using -ldflags during compilation.
	Version string
	// Date stores the date of this build. This should be set using -ldflags during compilation.
	Date string
)

// simondMain is the true entry point for simond. This is required since defers
// created in the top-level scope of a main method aren't executed if os.Exit() is called.
func simondMain() error {
	log.SetOutput(os.Stdout)
	log.SetLevel(log.InfoLevel)

	// Load CLI configuration and defaults
	cfg, err := loadConfig()
	if e, ok := err.(*flags.Error); ok && e.Type == flags.ErrHelp {
		return nil
	} else if err != nil {
		return errors.Errorf("Failed parsing arguments: %v", err)
	}

	// Set logger into debug mode if called with --debug
	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
		log.Info("Setting debug mode.")
	}

	log.Debug("Loaded config.")

	// Print version of the daemon
	log.Infof("Version %s (commit %s)", Version, Commit)
	log.Infof("Built on %s", Date)

	// Stop here if only version was requested
	if cfg.ShowVersion {
		return nil
	}

	m, err := startMachine(cfg)
	if err != nil {
		return err
	}

	// the terminal board owns the terminal, so log lines go into its log pane
	if t, ok := m.(*machine.TerminalMachine); ok {
		log.SetOutput(t.LogWriter())
		defer log.SetOutput(os.Stdout)
	}

	defer func() {
		err := m.Stop()
		if err != nil {
			log.Errorf("Could not properly stop machine: %v", err)
		} else {
			log.Infof("Stopped machine.")
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals and quit requests of the board correctly
	go func() {
		signals := make(chan os.Signal, 1)
		signal.Notify(signals, os.Interrupt)
		defer signal.Stop(signals)

		select {
		case sig := <-signals:
			log.Info(sig)
			log.Info("Received an interrupt, stopping game...")
		case <-m.Quit():
			log.Info("Board asked to quit, stopping game...")
		case <-ctx.Done():
		}

		cancel()
	}()

	g, err := game.New(&game.Config{
		Machine:      m,
		Clock:        clock.WallClock,
		PollInterval: cfg.Poll,
		Logger:       log.WithField("system", "game"),
	})
	if err != nil {
		return errors.Errorf("Could not create game: %v", err)
	}

	log.Infof("Created game.")

	// blocks until the game is quit
	err = g.Run(ctx)
	if err != nil {
		return errors.Errorf("Failed running game: %v", err)
	}

	// finish with no error
	return nil
}

// newMachine creates the board selected by the config.
func newMachine(cfg *config) (machine.Machine, error) {
	switch cfg.Machine {
	case "raspberry":
		r := cfg.Raspberry
		m := machine.NewRaspberryMachine(&machine.RaspberryMachineConfig{
			LedPins:    [machine.NumChannels]string{r.LedGreen, r.LedRed, r.LedYellow, r.LedBlue},
			ButtonPins: [machine.NumChannels]string{r.ButtonGreen, r.ButtonRed, r.ButtonYellow, r.ButtonBlue},
			Logger:     log.WithField("system", "machine"),
		})

		log.Infof("Created Raspberry Pi machine on led pins %v and button pins %v.",
			[]string{r.LedGreen, r.LedRed, r.LedYellow, r.LedBlue},
			[]string{r.ButtonGreen, r.ButtonRed, r.ButtonYellow, r.ButtonBlue})

		return m, nil
	case "terminal":
		m := machine.NewTerminalMachine(&machine.TerminalMachineConfig{
			Hold:   cfg.Terminal.Hold,
			Logger: log.WithField("system", "machine"),
		})

		log.Info("Created a terminal machine.")

		return m, nil
	case "mock":
		var presses []machine.Channel
		for _, p := range cfg.Mock.Presses {
			ch, err := machine.ParseChannel(p)
			if err != nil {
				return nil, errors.Errorf("Invalid mock press: %v", err)
			}

			presses = append(presses, ch)
		}

		m := machine.NewMockMachine(&machine.MockMachineConfig{
			Presses:      presses,
			QuitWhenIdle: true,
			Logger:       log.WithField("system", "machine"),
		})

		log.Info("Created a mock machine.")

		return m, nil
	default:
		return nil, errors.Errorf("Unknown machine type %v", cfg.Machine)
	}
}

// startMachine creates and starts the board selected by the config. A board
// that fails to start is returned as an error.
func startMachine(cfg *config) (machine.Machine, error) {
	m, err := newMachine(cfg)
	if err != nil {
		return nil, err
	}

	if err := m.Start(); err != nil {
		return nil, errors.Errorf("Could not start machine: %v", err)
	}

	log.Info("Started machine.")

	return m, nil
}

func main() {
	// Call the "real" main in a nested manner so the defers will properly
	// be executed in the case of a graceful shutdown.
	if err := simondMain(); err != nil {
		log.WithError(err).Println("Failed running simond.")
		os.Exit(1)
	}
}
