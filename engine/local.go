package engine

import (
	"time"

	"homeworlds/experiments/metrics"
	"homeworlds/game"
	"homeworlds/gamemaster"
	"homeworlds/searcher"
	"homeworlds/searcher/agent"

	"github.com/rs/zerolog/log"
)

type Option func(e *Engine)

var _ Runner = (*Engine)(nil)

// Engine plays agents against each other, one agent per player in order.
type Engine struct {
	State    *game.Game
	Agents   []agent.Agent
	maxTurns int
	recorder Recorder
}

func WithMaxTurns(maxTurns int) Option {
	return func(e *Engine) {
		if maxTurns > 0 {
			e.maxTurns = maxTurns
		}
	}
}

func WithRecorder(recorder Recorder) Option {
	return func(e *Engine) {
		e.recorder = recorder
	}
}

func LocalEngine(agents []agent.Agent, state *game.Game, options ...Option) *Engine {
	if len(agents) != state.NumPlayers() {
		panic("number of players does not match number of agents")
	}
	if len(agents) < 2 {
		panic("need at least two players")
	}

	e := &Engine{
		State:    state.Clone(),
		Agents:   agents,
		maxTurns: MaxTurns,
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Run executes the entire game loop until a winner is found.
func (e *Engine) Run() (int, metrics.GameMetric, []metrics.MoveMetric) {
	gameMetric := metrics.GameMetric{
		StartingPlayer: e.State.CurrentPlayer(),
		StartTime:      time.Now(),
	}
	moveMetrics := []metrics.MoveMetric{}

	log.Info().Msgf("player %d is starting", e.State.CurrentPlayer())

	step := 1
	for e.State.Winner() == 0 && step <= e.maxTurns {
		player := e.State.CurrentPlayer()
		actions, searchMetric := e.Agents[player-1].FindTurn(e.State.Clone())

		next, actions := e.play(player, actions)
		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         step,
			Player:       player,
			Actions:      len(actions),
			SearchMetric: searchMetric,
		})
		gameMetric.TotalActions += len(actions)

		if e.recorder != nil {
			if err := e.recorder.Record(step, player, actions, next); err != nil {
				log.Error().Err(err).Int("step", step).Msg("failed to record turn")
			}
		}

		e.State = next
		step++
	}

	winner := e.State.Winner()
	if winner != 0 {
		log.Info().Msgf("game ended after %d turns with winner: %d", step-1, winner)
	} else {
		log.Info().Msgf("stopped after %d turns (no winner yet)", e.maxTurns)
	}

	gameMetric.Winner = winner
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalTurns = step - 1
	return winner, gameMetric, moveMetrics
}

// play applies the agent's turn through the judge. An illegal or unfinished
// turn is replaced by the first enumerated turn.
func (e *Engine) play(player int, actions []game.Action) (*game.Game, []game.Action) {
	next := e.State.Clone()
	_, err := gamemaster.ApplyTurn(next, actions)
	if err == nil && next.CurrentPlayer() != player {
		return next, actions
	}
	if err == nil {
		log.Warn().Int("player", player).Msg("agent returned an unfinished turn, falling back")
	} else {
		log.Warn().Err(err).Int("player", player).Msg("agent returned an illegal turn, falling back")
	}

	turns := searcher.Turns(e.State)
	if len(turns) == 0 {
		panic("no legal turns at all")
	}
	return turns[0].State, turns[0].Actions
}
