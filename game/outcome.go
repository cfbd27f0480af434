package game

type Outcome int

const (
	Lose Outcome = iota
	Win
	Quit
)

func (o Outcome) String() string {
	switch o {
	case Lose:
		return "LOSE"
	case Win:
		return "WIN"
	case Quit:
		return "QUIT"
	default:
		return "INVALID OUTCOME"
	}
}
