package agent

import (
	"time"

	"homeworlds/experiments/metrics"
	"homeworlds/game"
	"homeworlds/searcher"

	"golang.org/x/exp/rand"
)

type randomAgent struct {
	rng *rand.Rand
}

// NewRandomAgent returns an agent that picks uniformly among the distinct
// turns, for baselines and self-play data. A zero seed is replaced by the
// current time.
func NewRandomAgent(seed uint64) Agent {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &randomAgent{rng: rand.New(rand.NewSource(seed))}
}

func (a *randomAgent) FindTurn(state *game.Game) ([]game.Action, metrics.SearchMetric) {
	start := time.Now()
	turns := searcher.Turns(state)
	metric := metrics.SearchMetric{Turns: len(turns)}
	if len(turns) == 0 {
		metric.Duration = time.Since(start)
		return []game.Action{game.Pass(state.CurrentPlayer())}, metric
	}
	turn := turns[a.rng.Intn(len(turns))]
	metric.Duration = time.Since(start)
	return turn.Actions, metric
}
