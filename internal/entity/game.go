package entity

import "fmt"

type Variant string

const (
	VariantNumeric Variant = "numeric"
	VariantNotakto Variant = "notakto"
	VariantGomoku  Variant = "gomoku"
)

type Mode string

const (
	ModeHumanVsHuman    Mode = "human-vs-human"
	ModeHumanVsComputer Mode = "human-vs-computer"
)

const (
	StatusOngoing = "ongoing"
	StatusWon     = "won"
	StatusDraw    = "draw"
)

type Reason string

const (
	ReasonLine     Reason = "completed a winning line"
	ReasonRun      Reason = "made five in a row"
	ReasonLastLine Reason = "opponent completed the last line"
	ReasonNoMoves  Reason = "opponent has no legal move"
	ReasonExhaust  Reason = "board exhausted"
)

// Verdict - what a single move means for the player who made it.
type Verdict int

const (
	VerdictNone Verdict = iota
	VerdictMoverWins
	VerdictMoverLoses
	VerdictDraw
)

// Move - a value placed on one cell of one grid. Player is the index of the mover.
type Move struct {
	Grid   int  `json:"grid"`
	Row    int  `json:"row"`
	Col    int  `json:"col"`
	Value  Cell `json:"value"`
	Player int  `json:"player"`
}

func (that Move) String() string {
	return fmt.Sprintf("%s at grid %d (%d, %d)", that.Value, that.Grid+1, that.Row, that.Col)
}

// Result - terminal classification of a game.
type Result struct {
	Status string `json:"status"`
	Winner string `json:"winner,omitempty"`
	Loser  string `json:"loser,omitempty"`
	Reason Reason `json:"reason,omitempty"`
}

func (that Result) IsFinished() bool {
	return that.Status == StatusWon || that.Status == StatusDraw
}

func (that Result) IsDraw() bool {
	return that.Status == StatusDraw
}
