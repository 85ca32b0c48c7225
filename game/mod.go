package game

// Player identifies a side. Player1 always moves first from the initial position.
type Player int8

const (
	None Player = iota
	Player1
	Player2
)

func (p Player) Other() Player {
	switch p {
	case Player1:
		return Player2
	case Player2:
		return Player1
	}
	return None
}

func (p Player) String() string {
	switch p {
	case Player1:
		return "player1"
	case Player2:
		return "player2"
	}
	return "none"
}

type Outcome int8

const (
	InProgress Outcome = iota
	Player1Win
	Player2Win
	Draw
)

// WinFor returns the outcome in which p has won.
func WinFor(p Player) Outcome {
	switch p {
	case Player1:
		return Player1Win
	case Player2:
		return Player2Win
	}
	return InProgress
}

// Winner returns the winning side, or None for draws and unfinished games.
func (o Outcome) Winner() Player {
	switch o {
	case Player1Win:
		return Player1
	case Player2Win:
		return Player2
	}
	return None
}

func (o Outcome) String() string {
	switch o {
	case Player1Win:
		return "player1 wins"
	case Player2Win:
		return "player2 wins"
	case Draw:
		return "draw"
	}
	return "in progress"
}

// Move is a game specific action. String must be unique among the legal moves
// of a position and round trip through the game's Codec.
type Move interface {
	String() string
}

// State should be immutable - operations on State always return a new copy
type State interface {
	Player() Player
	// LegalMoves lists moves in a stable order; the searcher breaks ties by it.
	LegalMoves() []Move
	Play(Move) State
	Outcome() Outcome
	// Evaluate scores a non-terminal position from perspective's point of view.
	// Positive values favour perspective.
	Evaluate(perspective Player) int
}

// Cacheable is implemented by states whose key leaves out history that a
// search of the given depth could still observe. Search results for such a
// state must not be read from or written to a cache unless Cacheable
// reports true.
type Cacheable interface {
	Cacheable(depth int) bool
}
