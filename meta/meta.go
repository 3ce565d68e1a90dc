// meta/meta.go
package meta

// GO_ROUTINES defines the number of goroutines used by searching seats.
const GO_ROUTINES = 8

// EPISODES defines the number of simulations per MCTS move.
const EPISODES = 150

// WITH_CUTOFF defines the rollout depth after which MCTS evaluates instead.
const WITH_CUTOFF = 100

// MAX_TURNS guards the engine loop. Every turn fills a cell, so no built-in
// board can need more.
const MAX_TURNS = 300

// TRAIN_EPISODES defines the default length of a training run.
const TRAIN_EPISODES = 100000

// LOG_EVERY defines how many episodes pass between progress reports.
const LOG_EVERY = 1000
