package searcher

import (
	"strconv"

	"boardteacher/game"
)

type mockMove int

func (m mockMove) String() string {
	return strconv.Itoa(int(m))
}

// mockState is an explicit game tree. value is the static evaluation from
// Player1's point of view.
type mockState struct {
	player   game.Player
	value    int
	outcome  game.Outcome
	children []mockState
	played   []game.Move
}

func leaf(value int) mockState {
	return mockState{value: value}
}

func terminal(outcome game.Outcome) mockState {
	return mockState{outcome: outcome}
}

func node(player game.Player, children ...mockState) mockState {
	for i := range children {
		children[i] = children[i].withPlayer(player.Other())
	}
	return mockState{player: player, children: children}
}

func (m mockState) withPlayer(player game.Player) mockState {
	if m.player == game.None {
		m.player = player
	}
	return m
}

func (m mockState) Player() game.Player {
	return m.player
}

func (m mockState) LegalMoves() []game.Move {
	moves := make([]game.Move, len(m.children))
	for i := range m.children {
		moves[i] = mockMove(i)
	}
	return moves
}

func (m mockState) Play(move game.Move) game.State {
	child := m.children[move.(mockMove)]
	child.played = append(append([]game.Move{}, m.played...), move)
	return child
}

func (m mockState) Outcome() game.Outcome {
	return m.outcome
}

func (m mockState) Evaluate(perspective game.Player) int {
	if perspective == game.Player1 {
		return m.value
	}
	return -m.value
}
