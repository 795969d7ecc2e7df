package searcher

import (
	"testing"

	"homeworlds/game"

	"github.com/stretchr/testify/require"
)

// minimax is the unpruned reference search over the same turns.
func minimax(g *game.Game, depth int, evaluate game.Evaluate) int {
	if depth == 0 || g.Winner() != 0 {
		return evaluate(g)
	}
	turns := Turns(g)
	if len(turns) == 0 {
		return evaluate(g)
	}
	best := -Infinity - 1
	for _, turn := range turns {
		best = max(best, -minimax(turn.State, depth-1, evaluate))
	}
	return best
}

// raidGame gives player 1 a large red ship in player 2's homeworld, next to
// its only defender.
func raidGame() *game.Game {
	g := game.NewGame(2, game.NewStandardRules())
	home1 := g.CreateSystem([]game.Piece{piece(game.Large, game.Green), piece(game.Small, game.Yellow)}, 1)
	g.AddShip(home1, ship(1, game.Large, game.Blue))
	home2 := g.CreateSystem([]game.Piece{piece(game.Large, game.Yellow), piece(game.Medium, game.Blue)}, 2)
	g.AddShip(home2, ship(2, game.Small, game.Green))
	g.AddShip(home2, ship(1, game.Large, game.Red))
	return g
}

// transposingGame lets player 1 build two different ships in either order
// around a trade by player 2.
func transposingGame() *game.Game {
	g := game.NewGame(2, game.NewStandardRules())
	home1 := g.CreateSystem([]game.Piece{piece(game.Large, game.Green), piece(game.Small, game.Yellow)}, 1)
	g.AddShip(home1, ship(1, game.Small, game.Blue))
	g.AddShip(home1, ship(1, game.Medium, game.Green))
	home2 := g.CreateSystem([]game.Piece{piece(game.Large, game.Yellow), piece(game.Medium, game.Blue)}, 2)
	g.AddShip(home2, ship(2, game.Small, game.Red))
	return g
}

func TestNegamax(t *testing.T) {
	t.Run("finds the winning attack", func(t *testing.T) {
		g := raidGame()
		n := NewNegamax(g)

		actions, value := n.Solve(1)
		require.Equal(t, game.WinScore, value)
		require.Equal(t, []game.Action{
			{Player: 1, Type: game.AttackAction, System: 2, Ship: piece(game.Small, game.Green)},
			game.Pass(1),
		}, actions)

		for _, a := range actions {
			require.NoError(t, g.Perform(&a))
		}
		require.Equal(t, 1, g.Winner())
	})

	t.Run("decided games and depth zero only pass", func(t *testing.T) {
		g := raidGame()
		require.Equal(t, []game.Action{game.Pass(1)}, NewNegamax(g).GetActions(0))

		g.DestroySystem(2)
		require.Equal(t, []game.Action{game.Pass(1)}, NewNegamax(g).GetActions(2))
	})

	t.Run("pruned values match exhaustive minimax", func(t *testing.T) {
		for name, g := range map[string]*game.Game{"opening": openingGame(), "raid": raidGame()} {
			for depth := 1; depth <= 2; depth++ {
				for _, evaluate := range []game.Evaluate{game.EvaluateMaterial, game.EvaluatePositional} {
					want := minimax(g, depth, evaluate)
					actions, got := NewNegamax(g, WithEvaluationFn(evaluate)).Solve(depth)
					require.Equal(t, want, got, "%s at depth %d", name, depth)

					// The chosen witness must achieve that value
					replay := g.Clone()
					for _, a := range actions {
						require.NoError(t, replay.Perform(&a))
					}
					require.Equal(t, want, -minimax(replay, depth-1, evaluate), "%s at depth %d", name, depth)
				}
			}
		}
	})

	t.Run("iterative deepening fills the table and reports metrics", func(t *testing.T) {
		g := openingGame()
		table := NewTable()
		n := NewNegamax(g, WithMetrics(), WithTable(table))

		actions, metric := n.Search(2)
		require.NotEmpty(t, actions)
		require.Equal(t, game.PassAction, actions[len(actions)-1].Type)
		require.Equal(t, 2, metric.Depth)
		require.Equal(t, 9, metric.Turns)
		require.Greater(t, metric.Nodes, 0)
		require.Greater(t, metric.Evaluations, 0)
		require.Greater(t, table.Len(), 0)
		require.Equal(t, table.Len(), metric.TableSize)
		require.Equal(t, minimax(g, 2, game.EvaluateMaterial), metric.Value)
	})

	t.Run("shallow table entries are searched again", func(t *testing.T) {
		g := openingGame()
		key := g.Key()
		n := NewNegamax(g, WithMetrics())
		n.table.Store(key, Entry{Value: 123, Depth: 0, Bound: Exact})

		n.metrics.Start(1)
		want := minimax(g, 1, game.EvaluateMaterial)
		require.Equal(t, want, n.negamax(g, key, 1, -Infinity, Infinity))
		require.Equal(t, 0, n.metrics.Complete().TableHits)

		e, ok := n.table.Probe(key)
		require.True(t, ok)
		require.Equal(t, Entry{Value: want, Depth: 1, Bound: Exact}, e)
	})

	t.Run("deep enough table entries end the search early", func(t *testing.T) {
		cases := []struct {
			name        string
			entry       Entry
			alpha, beta int
			want        int
		}{
			{"exact values are returned", Entry{Value: 123, Depth: 3, Bound: Exact}, -Infinity, Infinity, 123},
			{"lower bounds at or above beta", Entry{Value: 500, Depth: 2, Bound: LowerBound}, -Infinity, 400, 500},
			{"upper bounds at or below alpha", Entry{Value: -500, Depth: 2, Bound: UpperBound}, -400, Infinity, -500},
		}
		for _, c := range cases {
			g := openingGame()
			key := g.Key()
			n := NewNegamax(g, WithMetrics())
			n.table.Store(key, c.entry)

			n.metrics.Start(2)
			require.Equal(t, c.want, n.negamax(g, key, 2, c.alpha, c.beta), c.name)
			metric := n.metrics.Complete()
			require.Equal(t, 1, metric.Nodes, c.name)
			require.Equal(t, 1, metric.TableHits, c.name)
			require.Equal(t, 0, metric.Evaluations, c.name)
		}
	})

	t.Run("table bounds narrow the window", func(t *testing.T) {
		g := openingGame()
		key := g.Key()
		n := NewNegamax(g, WithMetrics())
		n.table.Store(key, Entry{Value: -Infinity + 1, Depth: 1, Bound: UpperBound})

		n.metrics.Start(1)
		value := n.negamax(g, key, 1, -Infinity, Infinity)
		metric := n.metrics.Complete()
		require.Greater(t, value, -Infinity+1)
		require.Equal(t, 1, metric.TableHits)
		require.Equal(t, 1, metric.Cutoffs, "The first turn already beats the stored upper bound")
		require.Equal(t, 1, metric.Evaluations)

		e, ok := n.table.Probe(key)
		require.True(t, ok)
		require.Equal(t, Entry{Value: value, Depth: 1, Bound: LowerBound}, e)
	})

	t.Run("transposed positions are looked up", func(t *testing.T) {
		buildGreen := game.Action{Player: 1, Type: game.BuildAction, System: 1, Ship: piece(game.Small, game.Green)}
		buildBlue := game.Action{Player: 1, Type: game.BuildAction, System: 1, Ship: piece(game.Small, game.Blue)}
		trade := game.Action{Player: 2, Type: game.TradeAction, System: 2, Ship: piece(game.Small, game.Red), Target: piece(game.Small, game.Yellow)}

		first, second := transposingGame(), transposingGame()
		for _, a := range []game.Action{buildGreen, game.Pass(1), trade, game.Pass(2), buildBlue, game.Pass(1)} {
			require.NoError(t, first.Perform(&a))
		}
		for _, a := range []game.Action{buildBlue, game.Pass(1), trade, game.Pass(2), buildGreen, game.Pass(1)} {
			require.NoError(t, second.Perform(&a))
		}
		require.Equal(t, first.Key(), second.Key())
		require.Equal(t, 0, first.Winner())

		n := NewNegamax(transposingGame(), WithMetrics())
		n.metrics.Start(1)
		want := n.negamax(first, first.Key(), 1, -Infinity, Infinity)
		require.Equal(t, 0, n.metrics.Complete().TableHits)

		n.metrics.Start(1)
		require.Equal(t, want, n.negamax(second, second.Key(), 1, -Infinity, Infinity))
		metric := n.metrics.Complete()
		require.Equal(t, 1, metric.TableHits)
		require.Equal(t, 1, metric.Nodes)
		require.Equal(t, minimax(second, 1, game.EvaluateMaterial), want)
	})

	t.Run("a shared table serves later searches", func(t *testing.T) {
		g := openingGame()
		table := NewTable()
		_, first := NewNegamax(g, WithMetrics(), WithTable(table)).Search(2)
		_, second := NewNegamax(g, WithMetrics(), WithTable(table)).Search(2)

		require.Greater(t, second.TableHits, 0)
		require.Less(t, second.Nodes, first.Nodes)
		require.Equal(t, minimax(g, 2, game.EvaluateMaterial), second.Value)
	})

	t.Run("search works on a copy of the root", func(t *testing.T) {
		g := openingGame()
		before := g.Key()
		n := NewNegamax(g)
		g.SetDoneMainAction(true)
		n.GetActions(1)
		g.SetDoneMainAction(false)
		require.Equal(t, before, g.Key())
	})

	t.Run("more than two players is rejected", func(t *testing.T) {
		require.Panics(t, func() { NewNegamax(game.NewGame(3, game.NewStandardRules())) })
	})
}

func TestTable(t *testing.T) {
	table := NewTable()
	key := openingGame().Key()

	_, ok := table.Probe(key)
	require.False(t, ok)
	require.Equal(t, 0, table.value(key), "Unknown positions order as zero")

	table.Store(key, Entry{Value: 5, Depth: 1, Bound: LowerBound})
	table.Store(key, Entry{Value: -3, Depth: 2, Bound: Exact})
	e, ok := table.Probe(key)
	require.True(t, ok)
	require.Equal(t, Entry{Value: -3, Depth: 2, Bound: Exact}, e, "Last write wins")
	require.Equal(t, 1, table.Len())
	require.Equal(t, "exact", e.Bound.String())
}
