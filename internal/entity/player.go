package entity

const (
	KindHuman    = "human"
	KindComputer = "computer"
)

type Player struct {
	Name string `json:"name"`
	Mark Cell   `json:"mark,omitempty"`
	Odd  bool   `json:"odd"`
	Kind string `json:"kind"`
}

func (that Player) IsComputer() bool {
	return that.Kind == KindComputer
}

// NewPlayers - the two seats of a game. In ModeHumanVsComputer the second seat is the computer.
func NewPlayers(mode Mode, first, second Cell) [2]Player {
	players := [2]Player{
		{Name: "Player 1", Mark: first, Odd: true, Kind: KindHuman},
		{Name: "Player 2", Mark: second, Odd: false, Kind: KindHuman},
	}

	if mode == ModeHumanVsComputer {
		players[1].Name = "Computer"
		players[1].Kind = KindComputer
	}

	return players
}
