package game

import (
	"context"
)

// ReadPattern reads one press per position of the first length channels of
// the pattern. It stops at the first wrong press or when the game is quit.
func (g *Game) ReadPattern(ctx context.Context, pattern Pattern, length int) bool {
	for i := 0; i < length; i++ {
		pressed := g.WaitForPress(ctx)
		g.WaitForRelease(ctx)

		if quit(ctx) {
			return false
		}

		g.log.Debugf("Pressed %v, expected %v", pressed, pattern[i])

		if !CheckNext(pattern, pressed, i) {
			return false
		}
	}

	return true
}

// PlayCycle shows the first cycle channels of the pattern and reads them back.
func (g *Game) PlayCycle(ctx context.Context, pattern Pattern, cycle int, length int) bool {
	g.log.Debugf("Playing cycle %d of %d", cycle, length)

	g.PlayPattern(ctx, pattern, cycle)

	if quit(ctx) {
		return false
	}

	return g.ReadPattern(ctx, pattern, cycle)
}

// PlayRound plays cycles of growing length until the whole pattern has been
// repeated, a cycle is lost or the game is quit. It returns the result of the
// last cycle played.
func (g *Game) PlayRound(ctx context.Context, pattern Pattern, length int) bool {
	result := false

	for cycle := 1; cycle <= length; cycle++ {
		result = g.PlayCycle(ctx, pattern, cycle, length)

		if quit(ctx) {
			break
		}

		if !result {
			g.log.Debugf("Lost at cycle %d", cycle)
			break
		}

		g.sleep(InterCycleDelay)
	}

	return result
}
