package game

import (
	"context"
	"math/rand"
	"time"

	"github.com/go-errors/errors"
	"github.com/google/uuid"
	"github.com/juju/clock"
	"github.com/the-lightning-land/simond/machine"
)

const (
	// BlinkDuration is how long a light stays off and then on when a
	// pattern is shown.
	BlinkDuration = 500 * time.Millisecond
	// WinLoseBlinkDuration is the blink duration of the win and lose signals.
	WinLoseBlinkDuration = 800 * time.Millisecond
	// WinLoseBlinks is how often the win or lose signal blinks.
	WinLoseBlinks = 3
	// InterGameDelay is the pause between the end of a round and the next.
	InterGameDelay = 4 * time.Second
	// InterCycleDelay is the pause after a cycle was repeated correctly.
	InterCycleDelay = 1 * time.Second
	// StartupDelay is waited once before the first round.
	StartupDelay = 2 * time.Second
	// PatternLength is the number of channels in a round's pattern.
	PatternLength = 5
)

// Clock is the part of clock.Clock the game sleeps on.
type Clock interface {
	After(d time.Duration) <-chan time.Time
}

type Config struct {
	Machine machine.Machine
	// Clock defaults to the wall clock.
	Clock Clock
	// Source defaults to a source seeded from the wall clock.
	Source rand.Source
	// PollInterval is slept between two scans of the buttons. Zero polls
	// without pausing.
	PollInterval time.Duration
	Logger       Logger
}

// Game plays rounds of Simon on a machine until it is quit.
type Game struct {
	machine   machine.Machine
	clock     Clock
	generator *Generator
	poll      func()
	log       Logger
	wins      int
	losses    int
}

func New(config *Config) (*Game, error) {
	if config.Machine == nil {
		return nil, errors.New("no machine given")
	}

	g := &Game{
		machine:   config.Machine,
		clock:     config.Clock,
		generator: NewGenerator(config.Source),
	}

	if g.clock == nil {
		g.clock = clock.WallClock
	}

	if config.Logger != nil {
		g.log = config.Logger
	} else {
		g.log = noopLogger{}
	}

	g.poll = func() {}
	if config.PollInterval > 0 {
		interval := config.PollInterval
		g.poll = func() {
			g.sleep(interval)
		}
	}

	return g, nil
}

// Run plays games until ctx is done. A round that is interrupted by quitting is
// discarded without a win or lose signal.
func (g *Game) Run(ctx context.Context) error {
	g.log.Infof("Starting game in %v", StartupDelay)

	defer func() {
		g.log.Infof("Quit after %d won and %d lost rounds", g.wins, g.losses)
	}()

	g.sleep(StartupDelay)

	for !quit(ctx) {
		outcome := g.playGame(ctx)

		if outcome == Quit {
			break
		}

		g.WinLose(ctx, outcome == Win)

		// a quit is honored within a second of the delay
		for waited := time.Duration(0); waited < InterGameDelay; waited += time.Second {
			if quit(ctx) {
				return nil
			}

			g.sleep(time.Second)
		}
	}

	return nil
}

func (g *Game) playGame(ctx context.Context) Outcome {
	id := uuid.New()
	pattern := g.generator.Generate(PatternLength)

	g.log.Infof("Starting round %v", id)
	g.log.Debugf("Round %v pattern %v", id, pattern)

	result := g.PlayRound(ctx, pattern, len(pattern))

	if quit(ctx) {
		g.log.Infof("Round %v interrupted", id)
		return Quit
	}

	outcome := Lose
	if result {
		outcome = Win
		g.wins++
	} else {
		g.losses++
	}

	g.log.Infof("Round %v finished: %v", id, outcome)

	return outcome
}

// WinLose blinks green after a won round and red after a lost one.
func (g *Game) WinLose(ctx context.Context, won bool) {
	if won {
		g.Blink(ctx, machine.Green, WinLoseBlinks, WinLoseBlinkDuration)
	} else {
		g.Blink(ctx, machine.Red, WinLoseBlinks, WinLoseBlinkDuration)
	}
}

// Score returns the number of won and lost rounds.
func (g *Game) Score() (wins int, losses int) {
	return g.wins, g.losses
}

func (g *Game) sleep(d time.Duration) {
	<-g.clock.After(d)
}

func quit(ctx context.Context) bool {
	return ctx.Err() != nil
}
