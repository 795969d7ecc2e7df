package engine

import (
	"homeworlds/experiments/metrics"
	"homeworlds/game"
)

const MaxTurns = 500

type Runner interface {
	// Run plays a game till there's a winner or a max number of turns is reached
	Run() (winner int, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric)
}

// Recorder receives every applied turn, e.g. to keep a replay log.
type Recorder interface {
	Record(step, player int, actions []game.Action, state *game.Game) error
}
