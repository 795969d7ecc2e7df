package engine

import (
	"testing"

	"homeworlds/experiments/metrics"
	"homeworlds/game"
	"homeworlds/searcher"
	"homeworlds/searcher/agent"

	"github.com/stretchr/testify/require"
)

func openingGame() *game.Game {
	g := game.NewGame(2, game.NewStandardRules())
	home1 := g.CreateSystem([]game.Piece{{Size: game.Large, Colour: game.Green}, {Size: game.Small, Colour: game.Yellow}}, 1)
	g.AddShip(home1, game.Ship{Player: 1, Piece: game.Piece{Size: game.Large, Colour: game.Green}})
	home2 := g.CreateSystem([]game.Piece{{Size: game.Large, Colour: game.Yellow}, {Size: game.Medium, Colour: game.Blue}}, 2)
	g.AddShip(home2, game.Ship{Player: 2, Piece: game.Piece{Size: game.Large, Colour: game.Green}})
	return g
}

type turnRecord struct {
	step, player int
	actions      []game.Action
	key          game.StateKey
}

type memoryRecorder struct {
	turns []turnRecord
}

func (r *memoryRecorder) Record(step, player int, actions []game.Action, state *game.Game) error {
	r.turns = append(r.turns, turnRecord{step: step, player: player, actions: actions, key: state.Key()})
	return nil
}

// passer always tries to pass immediately, which is never legal at the start
// of a turn.
type passer struct{}

func (passer) FindTurn(state *game.Game) ([]game.Action, metrics.SearchMetric) {
	return []game.Action{game.Pass(state.CurrentPlayer())}, metrics.SearchMetric{}
}

func TestEngine(t *testing.T) {
	t.Run("random agents play a consistent game", func(t *testing.T) {
		recorder := &memoryRecorder{}
		agents := []agent.Agent{agent.NewRandomAgent(1), agent.NewRandomAgent(2)}
		e := LocalEngine(agents, openingGame(), WithMaxTurns(30), WithRecorder(recorder))

		winner, gameMetric, moveMetrics := e.Run()
		require.Equal(t, e.State.Winner(), winner)
		require.Equal(t, winner, gameMetric.Winner)
		require.Equal(t, 1, gameMetric.StartingPlayer)
		require.LessOrEqual(t, gameMetric.TotalTurns, 30)
		require.Len(t, moveMetrics, gameMetric.TotalTurns)
		require.Len(t, recorder.turns, gameMetric.TotalTurns)
		if winner == 0 {
			require.Equal(t, 30, gameMetric.TotalTurns)
		}

		// Replaying the recorded turns reaches the recorded positions
		replay := openingGame()
		total := 0
		for i, turn := range recorder.turns {
			require.Equal(t, i+1, turn.step)
			require.Equal(t, replay.CurrentPlayer(), turn.player)
			require.Equal(t, moveMetrics[i].Actions, len(turn.actions))
			for _, a := range turn.actions {
				require.NoError(t, replay.Perform(&a))
			}
			require.Equal(t, turn.key, replay.Key())
			total += len(turn.actions)
		}
		require.Equal(t, total, gameMetric.TotalActions)
	})

	t.Run("illegal turns fall back to the first enumerated turn", func(t *testing.T) {
		g := openingGame()
		want := searcher.Turns(g)[0]

		recorder := &memoryRecorder{}
		e := LocalEngine([]agent.Agent{passer{}, passer{}}, g, WithMaxTurns(1), WithRecorder(recorder))
		_, gameMetric, _ := e.Run()

		require.Equal(t, 1, gameMetric.TotalTurns)
		require.Equal(t, want.Actions, recorder.turns[0].actions)
		require.Equal(t, want.Key, e.State.Key())
	})

	t.Run("negamax beats a player that cannot defend", func(t *testing.T) {
		g := openingGame()
		g.AddShip(2, game.Ship{Player: 1, Piece: game.Piece{Size: game.Large, Colour: game.Red}})

		agents := []agent.Agent{agent.NewNegamaxAgent(1, game.EvaluateMaterial), agent.NewRandomAgent(3)}
		winner, gameMetric, moveMetrics := LocalEngine(agents, g).Run()
		require.Equal(t, 1, winner)
		require.Equal(t, 1, gameMetric.TotalTurns)
		require.Equal(t, 1, moveMetrics[0].Depth)
		require.Equal(t, game.WinScore, moveMetrics[0].Value)
	})

	t.Run("the engine plays on its own copy", func(t *testing.T) {
		g := openingGame()
		before := g.Key()
		LocalEngine([]agent.Agent{agent.NewRandomAgent(4), agent.NewRandomAgent(5)}, g, WithMaxTurns(2)).Run()
		require.Equal(t, before, g.Key())
	})

	t.Run("agent count must match the players", func(t *testing.T) {
		require.Panics(t, func() { LocalEngine([]agent.Agent{passer{}}, openingGame()) })
	})
}
