package agent

import (
	"homeworlds/experiments/metrics"
	"homeworlds/game"
)

type Agent interface {
	// FindTurn returns the actions of a complete turn, ending with PASS, and
	// search metrics (if collected)
	FindTurn(state *game.Game) ([]game.Action, metrics.SearchMetric)
}

// New builds the agent an experiment configuration describes.
func New(config metrics.AgentConfig) (Agent, error) {
	if config.Random {
		return NewRandomAgent(config.Seed), nil
	}
	evaluate := game.EvaluateMaterial
	if config.Evaluation != "" {
		var err error
		evaluate, err = game.EvaluatorByName(config.Evaluation)
		if err != nil {
			return nil, err
		}
	}
	return NewNegamaxAgent(config.Depth, evaluate), nil
}
