// Package games maps game names to their codecs and initial positions.
package games

import (
	"errors"
	"fmt"
	"slices"

	"boardteacher/game"
	"boardteacher/game/checkers"
	"boardteacher/game/connectfour"
	"boardteacher/game/tictactoe"
)

var ErrUnknownGame = errors.New("unknown game")

// Names lists the supported games in a stable order.
func Names() []string {
	return []string{"checkers", "connectfour", "tictactoe"}
}

func Known(name string) bool {
	return slices.Contains(Names(), name)
}

// Lookup returns the codec and the initial position of the named game. The
// draw limit only applies to checkers.
func Lookup(name string, drawLimit int) (game.Codec, game.State, error) {
	switch name {
	case "checkers":
		return checkers.NewCodec(drawLimit), checkers.New(checkers.WithDrawLimit(drawLimit)), nil
	case "connectfour":
		return connectfour.Codec{}, connectfour.New(), nil
	case "tictactoe":
		return tictactoe.Codec{}, tictactoe.New(), nil
	}
	return nil, nil, fmt.Errorf("%w: %q", ErrUnknownGame, name)
}
