package main

import (
	"os"
	"time"

	"github.com/jessevdk/go-flags"
)

type raspberryConfig struct {
	LedGreen     string `long:"led-green" description:"Pin of the green LED"`
	LedRed       string `long:"led-red" description:"Pin of the red LED"`
	LedYellow    string `long:"led-yellow" description:"Pin of the yellow LED"`
	LedBlue      string `long:"led-blue" description:"Pin of the blue LED"`
	ButtonGreen  string `long:"button-green" description:"Pin of the green button"`
	ButtonRed    string `long:"button-red" description:"Pin of the red button"`
	ButtonYellow string `long:"button-yellow" description:"Pin of the yellow button"`
	ButtonBlue   string `long:"button-blue" description:"Pin of the blue button"`
}

type terminalConfig struct {
	Hold time.Duration `long:"hold" description:"How long a key press holds its button down"`
}

type mockConfig struct {
	Presses []string `long:"press" description:"Button press to script, repeat in order of presses"`
}

type config struct {
	ShowVersion bool            `short:"V" long:"version" description:"Display version information and exit"`
	Debug       bool            `long:"debug" description:"Start in debug mode"`
	Machine     string          `long:"machine" description:"The board to play on" choice:"raspberry" choice:"terminal" choice:"mock"`
	Poll        time.Duration   `long:"poll" description:"Interval between two scans of the buttons"`
	Raspberry   raspberryConfig `group:"Raspberry Pi" namespace:"raspberry"`
	Terminal    terminalConfig  `group:"Terminal" namespace:"terminal"`
	Mock        mockConfig      `group:"Mock" namespace:"mock"`
}

func loadConfig() (*config, error) {
	return parseConfig(os.Args[1:])
}

// parseConfig applies the command line args over the defaults.
func parseConfig(args []string) (*config, error) {
	defaultCfg := config{
		Machine: "terminal",
		Poll:    time.Millisecond,
		Raspberry: raspberryConfig{
			LedGreen:     "GPIO17",
			LedRed:       "GPIO27",
			LedYellow:    "GPIO22",
			LedBlue:      "GPIO23",
			ButtonGreen:  "GPIO5",
			ButtonRed:    "GPIO6",
			ButtonYellow: "GPIO13",
			ButtonBlue:   "GPIO19",
		},
		Terminal: terminalConfig{
			Hold: 120 * time.Millisecond,
		},
	}

	cfg := defaultCfg
	if _, err := flags.ParseArgs(&cfg, args); err != nil {
		return nil, err
	}

	return &cfg, nil
}
