package game

import (
	"context"
	"time"

	"github.com/the-lightning-land/simond/machine"
)

// Blink flashes a channel the given number of times. Quitting is checked after
// each repetition.
func (g *Game) Blink(ctx context.Context, ch machine.Channel, times int, d time.Duration) {
	for i := 0; i < times; i++ {
		g.sleep(d)
		g.machine.Write(ch, true)

		g.sleep(d)
		g.machine.Write(ch, false)

		if quit(ctx) {
			break
		}
	}
}

// PlayPattern flashes the first prefix channels of the pattern once each.
func (g *Game) PlayPattern(ctx context.Context, pattern Pattern, prefix int) {
	for i := 0; i < prefix; i++ {
		g.Blink(ctx, pattern[i], 1, BlinkDuration)

		if quit(ctx) {
			break
		}
	}
}
