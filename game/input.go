package game

import (
	"context"

	"github.com/the-lightning-land/simond/machine"
)

// pollOrder decides which button wins when several are held at once.
var pollOrder = [machine.NumChannels]machine.Channel{
	machine.Green,
	machine.Red,
	machine.Blue,
	machine.Yellow,
}

// WaitForPress polls the buttons until one is held and returns it. If the game
// is quit first it returns Green, so callers have to check for quitting before
// trusting the result.
func (g *Game) WaitForPress(ctx context.Context) machine.Channel {
	for {
		for _, ch := range pollOrder {
			if g.machine.Read(ch) {
				return ch
			}
		}

		if quit(ctx) {
			return machine.Green
		}

		g.poll()
	}
}

// WaitForRelease polls until no button is held or the game is quit.
func (g *Game) WaitForRelease(ctx context.Context) {
	for {
		held := 0

		// every button is read on each pass, no short circuit
		for _, ch := range machine.Channels {
			if g.machine.Read(ch) {
				held++
			}
		}

		if held == 0 || quit(ctx) {
			return
		}

		g.poll()
	}
}

// CheckNext reports whether pressed is the channel at index of the pattern.
func CheckNext(pattern Pattern, pressed machine.Channel, index int) bool {
	return pressed == pattern[index]
}
