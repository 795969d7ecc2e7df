package experiments

import (
	"fmt"
	"path/filepath"
	"strings"

	"homeworlds/config"
	"homeworlds/engine"
	"homeworlds/experiments/metrics"
	"homeworlds/game"
	"homeworlds/notation"
	"homeworlds/replay"
	"homeworlds/searcher/agent"

	"github.com/rs/zerolog/log"
)

// Result summarises a finished experiment.
type Result struct {
	Dir         string
	GameRecords []metrics.GameRecord
	MoveRecords []metrics.MoveRecord
}

// Run plays every matchup of the experiment and stores the records. The
// agents of a matchup swap seats between games so both get to start.
func Run(cfg config.Config) (result Result, err error) {
	e := cfg.Experiment
	opening, names, err := notation.ReadGame(strings.NewReader(e.Opening), game.NewStandardRules())
	if err != nil {
		return Result{}, fmt.Errorf("failed to read opening: %w", err)
	}

	configs := map[int]metrics.AgentConfig{}
	for _, c := range e.Agents {
		configs[c.ID] = c
	}
	matchUps := e.Matchups
	if len(matchUps) == 0 {
		for i := range e.Agents {
			for j := i + 1; j < len(e.Agents); j++ {
				matchUps = append(matchUps, [2]int{e.Agents[i].ID, e.Agents[j].ID})
			}
		}
	}

	writer, err := metrics.NewWriter(e.OutputDir, e.Name)
	if err != nil {
		return Result{}, fmt.Errorf("failed to create experiment writer: %w", err)
	}
	var recorder *replay.Writer
	if e.Replay {
		recorder = replay.NewWriter(writer.Dir(), "replay")
		defer func() {
			if cerr := recorder.Close(); err == nil && cerr != nil {
				err = fmt.Errorf("failed to close replay log: %w", cerr)
			}
		}()
	}

	result = Result{Dir: writer.Dir()}
	log.Info().Msgf("starting %s experiment...", e.Name)

	count := 0
	for mi, matchUp := range matchUps {
		config1, config2 := configs[matchUp[0]], configs[matchUp[1]]
		log.Info().Msgf("starting matchup %d of %d between agent1=%+v and agent2=%+v...", mi+1, len(matchUps), config1, config2)

		for i := 0; i < e.Games; i++ {
			seat1, seat2 := config1, config2
			if i%2 == 1 {
				seat1, seat2 = config2, config1
			}
			count++

			options := []engine.Option{engine.WithMaxTurns(e.MaxTurns)}
			if recorder != nil {
				recorder.StartGame(count, names)
				options = append(options, engine.WithRecorder(recorder))
			}
			winner, gameMetric, moveMetrics, err := runGame(seat1, seat2, opening, options)
			if err != nil {
				return result, err
			}

			result.GameRecords = append(result.GameRecords, metrics.GameRecord{
				ID:         count,
				Agent1:     seat1.ID,
				Agent2:     seat2.ID,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				result.MoveRecords = append(result.MoveRecords, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}

			log.Info().Msgf("completed matchup %d of %d game %d with winner: %d", mi+1, len(matchUps), i+1, winner)
		}
		log.Info().Msgf("completed matchup %d of %d", mi+1, len(matchUps))
	}

	log.Info().Msgf("completed %s experiment", e.Name)

	if err := store(writer, cfg, result); err != nil {
		return result, err
	}
	return result, nil
}

func store(writer *metrics.Writer, cfg config.Config, result Result) error {
	e := cfg.Experiment
	if err := writer.WriteAgentConfigs(e.Agents); err != nil {
		return fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	if err := writer.WriteGameRecords(result.GameRecords); err != nil {
		return fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(result.MoveRecords); err != nil {
		return fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")

	if !e.Index {
		return nil
	}
	index, err := metrics.OpenIndex(filepath.Join(e.OutputDir, "records.db"))
	if err != nil {
		return fmt.Errorf("failed to open record index: %w", err)
	}
	defer index.Close()

	run := e.Name + "/" + filepath.Base(writer.Dir())
	if err := index.WriteRun(run, e.Agents, result.GameRecords, result.MoveRecords); err != nil {
		return err
	}
	log.Info().Str("run", run).Msg("indexed records")

	wins, err := index.WinCounts(run)
	if err != nil {
		return fmt.Errorf("failed to count wins: %w", err)
	}
	for _, a := range e.Agents {
		log.Info().Int("agent", a.ID).Int("wins", wins[a.ID]).Int("games", len(result.GameRecords)).Msg("win count")
	}
	return nil
}

// runGame plays a single game between two agents and returns the winner
func runGame(config1, config2 metrics.AgentConfig, opening *game.Game, options []engine.Option) (int, metrics.GameMetric, []metrics.MoveMetric, error) {
	agent1, err := agent.New(config1)
	if err != nil {
		return 0, metrics.GameMetric{}, nil, fmt.Errorf("agent %d: %w", config1.ID, err)
	}
	agent2, err := agent.New(config2)
	if err != nil {
		return 0, metrics.GameMetric{}, nil, fmt.Errorf("agent %d: %w", config2.ID, err)
	}

	var runner engine.Runner = engine.LocalEngine([]agent.Agent{agent1, agent2}, opening, options...)
	winner, gameMetric, moveMetrics := runner.Run()
	return winner, gameMetric, moveMetrics, nil
}
