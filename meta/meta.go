// meta/meta.go
package meta

// DEFAULT_DEPTH is the search horizon in plies when none is configured.
const DEFAULT_DEPTH = 4

// DEFAULT_SEED seeds the random number generators of agents.
const DEFAULT_SEED = 1

// DEFAULT_EXPLORATION is the probability that a teacher plays a random move.
const DEFAULT_EXPLORATION = 0.0

// MAX_TURNS caps the number of plies in a locally played game.
const MAX_TURNS = 300

// DRAW_LIMIT is the number of checkers plies without a capture before a draw.
const DRAW_LIMIT = 100

// GO_ROUTINES defines the number of goroutines used to expand move tables.
const GO_ROUTINES = 8

// SAVE_EVERY is the number of games between cache saves.
const SAVE_EVERY = 1000

// SERVER_ADDR is the default listen address of the move server.
const SERVER_ADDR = ":8080"
