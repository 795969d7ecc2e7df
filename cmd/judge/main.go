// Command judge reads a game and then one action per line from stdin,
// rejecting illegal actions, until the turn ends with PASS. The resulting
// game is printed to stdout, followed by the winner (-1 for a tie) once the
// game is decided.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"homeworlds/config"
	"homeworlds/game"
	"homeworlds/gamemaster"
	"homeworlds/notation"

	"github.com/rs/zerolog/log"
)

func main() {
	level := flag.String("log", "info", "Log level")
	flag.Parse()

	if err := config.SetupLogging(config.Log{Level: *level, Console: true}, os.Stderr); err != nil {
		log.Fatal().Err(err).Msg("failed to set up logging")
	}
	if err := judge(os.Stdin, os.Stdout); err != nil {
		log.Fatal().Err(err).Msg("judge failed")
	}
}

func judge(r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)

	// The game ends at the first blank line, actions follow
	var position strings.Builder
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			break
		}
		position.WriteString(line + "\n")
	}
	g, names, err := notation.ReadGame(strings.NewReader(position.String()), game.NewStandardRules())
	if err != nil {
		return fmt.Errorf("failed to read game: %w", err)
	}
	if g.Winner() != 0 {
		return fmt.Errorf("game is already decided: %w", gamemaster.ErrGameOver)
	}

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		a, newName, err := notation.ParseAction(line, g.CurrentPlayer(), names)
		if err != nil {
			return err
		}
		if err := gamemaster.Apply(g, &a); err != nil {
			return fmt.Errorf("rejected %q: %w", line, err)
		}
		if a.Type == game.DiscoverAction {
			names[a.To] = newName
		}
		log.Debug().Str("action", line).Msg("applied")
		if a.Ends() {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read actions: %w", err)
	}

	if err := notation.PrintGame(w, g, names); err != nil {
		return err
	}
	if winner := g.Winner(); winner != 0 {
		if _, err := fmt.Fprintln(w, strconv.Itoa(winner)); err != nil {
			return err
		}
	}
	return nil
}
