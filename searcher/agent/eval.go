package agent

import (
	"homeworlds/experiments/metrics"
	"homeworlds/game"
	"homeworlds/searcher"
)

type negamaxAgent struct {
	depth    int
	evaluate game.Evaluate
}

// NewNegamaxAgent returns an agent that searches depth turns ahead. Depths
// below one are raised to one so the agent always plays a real turn.
func NewNegamaxAgent(depth int, evaluate game.Evaluate) Agent {
	return negamaxAgent{depth: max(depth, 1), evaluate: evaluate}
}

func (a negamaxAgent) FindTurn(state *game.Game) ([]game.Action, metrics.SearchMetric) {
	n := searcher.NewNegamax(state, searcher.WithEvaluationFn(a.evaluate), searcher.WithMetrics())
	return n.Search(a.depth)
}
