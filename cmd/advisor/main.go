// Command advisor reads a game from stdin and prints the turn the search
// recommends for the player to move, one action per line.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"homeworlds/config"
	"homeworlds/game"
	"homeworlds/notation"
	"homeworlds/searcher"

	"github.com/rs/zerolog/log"
)

func main() {
	depth := flag.Int("depth", 2, "Number of turns to search ahead")
	eval := flag.String("eval", "material", "Evaluation function (material or positional)")
	level := flag.String("log", "info", "Log level")
	flag.Parse()

	if err := config.SetupLogging(config.Log{Level: *level, Console: true}, os.Stderr); err != nil {
		log.Fatal().Err(err).Msg("failed to set up logging")
	}
	evaluate, err := game.EvaluatorByName(*eval)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid evaluation")
	}

	g, names, err := notation.ReadGame(os.Stdin, game.NewStandardRules())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to read game")
	}
	if g.NumPlayers() != 2 {
		log.Fatal().Int("players", g.NumPlayers()).Msg("search supports two players only")
	}

	n := searcher.NewNegamax(g, searcher.WithEvaluationFn(evaluate), searcher.WithMetrics())
	actions, metric := n.Search(*depth)
	log.Info().
		Int("depth", metric.Depth).
		Int("value", metric.Value).
		Int("nodes", metric.Nodes).
		Int("turns", metric.Turns).
		Dur("duration", metric.Duration).
		Msg("search complete")

	for i := range actions {
		a := &actions[i]
		// Replay to learn the ids of discovered systems
		if err := g.Perform(a); err != nil {
			log.Fatal().Err(err).Msg("search returned an unplayable action")
		}
		newName := ""
		if a.Type == game.DiscoverAction {
			newName = names.Fresh(a.To)
			names[a.To] = newName
		}
		fmt.Println(notation.FormatAction(*a, names, newName))
	}

	var b strings.Builder
	if err := notation.PrintGame(&b, g, names); err != nil {
		log.Fatal().Err(err).Msg("failed to print game")
	}
	log.Info().Msgf("resulting position:\n%s", b.String())
}
