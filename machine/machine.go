package machine

import (
	"strings"

	"github.com/go-errors/errors"
)

// Channel identifies a paired LED output and button input on the board.
type Channel int

const (
	Green Channel = iota
	Red
	Yellow
	Blue
)

// NumChannels is the number of LED/button pairs on the board.
const NumChannels = 4

// Channels lists every channel in index order.
var Channels = [NumChannels]Channel{Green, Red, Yellow, Blue}

func (c Channel) Valid() bool {
	return c >= 0 && c < NumChannels
}

func (c Channel) String() string {
	switch c {
	case Green:
		return "GREEN"
	case Red:
		return "RED"
	case Yellow:
		return "YELLOW"
	case Blue:
		return "BLUE"
	default:
		return "INVALID CHANNEL"
	}
}

// ParseChannel accepts a channel name, its first letter or its index.
func ParseChannel(s string) (Channel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "green", "g", "0":
		return Green, nil
	case "red", "r", "1":
		return Red, nil
	case "yellow", "y", "2":
		return Yellow, nil
	case "blue", "b", "3":
		return Blue, nil
	default:
		return 0, errors.Errorf("unknown channel %q", s)
	}
}

// Machine is the digital I/O board the game is played on.
type Machine interface {
	Start() error
	Stop() error
	// Read reports whether the button on the channel is held down.
	Read(ch Channel) bool
	// Write switches the LED on the channel.
	Write(ch Channel, on bool)
	// Quit is closed once the user of the board asks to stop.
	Quit() <-chan struct{}
}
