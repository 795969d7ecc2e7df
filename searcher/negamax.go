package searcher

import (
	"homeworlds/experiments/metrics"
	"homeworlds/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
)

// Infinity bounds every evaluation, including decided games.
const Infinity = 10 * game.WinScore

type Option func(n *Negamax)

// Negamax searches whole turns with alpha-beta pruning and a transposition
// table. Only two-player games are supported: scores are zero-sum.
type Negamax struct {
	root     *game.Game
	evaluate game.Evaluate
	table    *Table
	metrics  metrics.Collector
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(n *Negamax) {
		if evaluate != nil {
			n.evaluate = evaluate
		}
	}
}

func WithMetrics() Option {
	return func(n *Negamax) {
		n.metrics = metrics.NewCollector()
	}
}

// WithTable shares a table between searches, e.g. across the turns of one
// player in a game.
func WithTable(table *Table) Option {
	return func(n *Negamax) {
		if table != nil {
			n.table = table
		}
	}
}

func NewNegamax(root *game.Game, options ...Option) *Negamax {
	if root.NumPlayers() != 2 {
		panic("negamax search supports exactly two players")
	}
	n := &Negamax{ // Default values
		root:     root.Clone(),
		evaluate: game.EvaluateMaterial,
		table:    NewTable(),
		metrics:  metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(n)
	}
	return n
}

// Search deepens iteratively up to maxDepth, reusing the table between
// iterations, and returns the best turn of the deepest iteration.
func (n *Negamax) Search(maxDepth int) ([]game.Action, metrics.SearchMetric) {
	n.metrics.Start(maxDepth)
	actions := []game.Action{game.Pass(n.root.CurrentPlayer())}
	for depth := 1; depth <= maxDepth; depth++ {
		var value int
		actions, value = n.Solve(depth)
		log.Debug().
			Int("depth", depth).
			Int("value", value).
			Int("table", n.table.Len()).
			Msg("deepening-iteratively")
	}
	return actions, n.metrics.Complete()
}

// GetActions returns the witness actions of the best turn at the given
// depth. A depth of 0 or a decided game yields a lone PASS.
func (n *Negamax) GetActions(depth int) []game.Action {
	actions, _ := n.Solve(depth)
	return actions
}

// Solve is GetActions that also reports the value of the chosen turn.
func (n *Negamax) Solve(depth int) ([]game.Action, int) {
	if depth <= 0 || n.root.Winner() != 0 {
		return []game.Action{game.Pass(n.root.CurrentPlayer())}, n.evaluate(n.root)
	}
	turns := Turns(n.root)
	if len(turns) == 0 {
		return []game.Action{game.Pass(n.root.CurrentPlayer())}, n.evaluate(n.root)
	}
	n.order(turns)

	alpha, beta := -Infinity, Infinity
	best, bestValue := 0, -Infinity-1
	for i, turn := range turns {
		value := -n.negamax(turn.State, turn.Key, depth-1, -beta, -alpha)
		if value > bestValue {
			best, bestValue = i, value
		}
		alpha = max(alpha, value)
	}
	n.metrics.SetRoot(len(turns), bestValue, n.table.Len())
	return turns[best].Actions, bestValue
}

func (n *Negamax) negamax(g *game.Game, key game.StateKey, depth, alpha, beta int) int {
	n.metrics.AddNode()
	alphaOrig := alpha

	if e, ok := n.table.Probe(key); ok && e.Depth >= depth {
		n.metrics.AddTableHit()
		switch e.Bound {
		case Exact:
			return e.Value
		case LowerBound:
			alpha = max(alpha, e.Value)
		case UpperBound:
			beta = min(beta, e.Value)
		}
		if alpha >= beta {
			return e.Value
		}
	}

	if depth == 0 || g.Winner() != 0 {
		n.metrics.AddEvaluation()
		return n.evaluate(g)
	}

	turns := Turns(g)
	if len(turns) == 0 {
		n.metrics.AddEvaluation()
		return n.evaluate(g)
	}
	n.order(turns)

	best := -Infinity - 1
	for _, turn := range turns {
		value := -n.negamax(turn.State, turn.Key, depth-1, -beta, -alpha)
		best = max(best, value)
		alpha = max(alpha, value)
		if alpha >= beta {
			n.metrics.AddCutoff()
			break
		}
	}

	bound := Exact
	if best <= alphaOrig {
		bound = UpperBound
	} else if best >= beta {
		bound = LowerBound
	}
	n.table.Store(key, Entry{Value: best, Depth: depth, Bound: bound})
	return best
}

// order puts the turns the opponent scored lowest first. Children are scored
// from the opponent's side, so this tries the mover's best guesses first.
func (n *Negamax) order(turns []Turn) {
	slices.SortStableFunc(turns, func(a, b Turn) int {
		return n.table.value(a.Key) - n.table.value(b.Key)
	})
}
