// Package notation reads and writes games and actions in the plain text
// format shared by the command line tools.
//
// A game is a header line "players homeworlds current" followed by one line
// per system and a blank line:
//
//	2 2 1
//	Home1 (1, g3y1) 1b3
//	Home2 (2, y3b2) 2g3
//	Sirius (r2) 1b1 2y1
package notation

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"homeworlds/game"
)

var ErrSyntax = errors.New("syntax error")

// ReadGame reads a game up to the first blank line or the end of input.
func ReadGame(r io.Reader, rules game.Rules) (*game.Game, Names, error) {
	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, nil, fmt.Errorf("failed to read header: %w", err)
		}
		return nil, nil, fmt.Errorf("missing header: %w", ErrSyntax)
	}
	numPlayers, homeworlds, current, err := parseHeader(scanner.Text())
	if err != nil {
		return nil, nil, err
	}

	g := game.NewGame(numPlayers, rules)
	g.SetHomeworldsBuilt(homeworlds)
	g.SetCurrentPlayer(current)

	names := NewNames()
	for lineNo := 2; scanner.Scan(); lineNo++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			break
		}
		name, system, err := parseSystem(line, numPlayers)
		if err != nil {
			return nil, nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		if _, taken := names.Lookup(name); taken {
			return nil, nil, fmt.Errorf("line %d: duplicate system %q: %w", lineNo, name, ErrSyntax)
		}
		id, err := g.AddSystem(system)
		if err != nil {
			return nil, nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		names[id] = name
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to read systems: %w", err)
	}
	return g, names, nil
}

func parseHeader(line string) (numPlayers, homeworlds, current int, err error) {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return 0, 0, 0, fmt.Errorf("header %q: %w", line, ErrSyntax)
	}
	values := make([]int, 3)
	for i, field := range fields {
		values[i], err = strconv.Atoi(field)
		if err != nil {
			return 0, 0, 0, fmt.Errorf("header %q: %w", line, ErrSyntax)
		}
	}
	numPlayers, homeworlds, current = values[0], values[1], values[2]
	if numPlayers < 2 || numPlayers > game.MaxPlayers {
		return 0, 0, 0, fmt.Errorf("header %q: unsupported number of players", line)
	}
	if homeworlds < 0 || homeworlds > numPlayers || current < 1 || current > numPlayers {
		return 0, 0, 0, fmt.Errorf("header %q: value out of range", line)
	}
	return numPlayers, homeworlds, current, nil
}

// parseSystem parses "name (owner, stars) ships...".
func parseSystem(line string, numPlayers int) (string, game.System, error) {
	system := game.System{}
	open := strings.IndexByte(line, '(')
	end := strings.IndexByte(line, ')')
	if open < 0 || end < open {
		return "", system, fmt.Errorf("system %q: %w", line, ErrSyntax)
	}
	name := strings.TrimSpace(line[:open])
	if name == "" || strings.ContainsAny(name, " \t") {
		return "", system, fmt.Errorf("system %q: bad name: %w", line, ErrSyntax)
	}

	inner := strings.TrimSpace(line[open+1 : end])
	if owner, rest, found := strings.Cut(inner, ","); found {
		n, err := strconv.Atoi(strings.TrimSpace(owner))
		if err != nil || n < 1 || n > numPlayers {
			return "", system, fmt.Errorf("system %q: bad owner: %w", line, ErrSyntax)
		}
		system.Owner = n
		inner = rest
	}
	stars := strings.Join(strings.Fields(inner), "")
	if stars == "" || len(stars)%2 != 0 {
		return "", system, fmt.Errorf("system %q: bad stars: %w", line, ErrSyntax)
	}
	for i := 0; i < len(stars); i += 2 {
		star, err := game.ParsePiece(strings.ToLower(stars[i : i+2]))
		if err != nil {
			return "", system, fmt.Errorf("system %q: %w", line, err)
		}
		system.Stars = append(system.Stars, star)
	}

	for _, field := range strings.Fields(line[end+1:]) {
		ship, err := game.ParseShip(strings.ToLower(field))
		if err != nil {
			return "", system, fmt.Errorf("system %q: %w", line, err)
		}
		if ship.Player < 1 || ship.Player > numPlayers {
			return "", system, fmt.Errorf("system %q: ship %s has no such player", line, field)
		}
		system.Ships = append(system.Ships, ship)
	}
	return name, system, nil
}

// PrintGame writes the game in the format ReadGame accepts, ending with a
// blank line.
func PrintGame(w io.Writer, g *game.Game, names Names) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d %d %d\n", g.NumPlayers(), g.HomeworldsBuilt(), g.CurrentPlayer())
	for _, s := range g.Systems() {
		sb.WriteString(names.Name(s.ID))
		sb.WriteString(" ")
		sb.WriteString(FormatSystem(s))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	if _, err := io.WriteString(w, sb.String()); err != nil {
		return fmt.Errorf("failed to write game: %w", err)
	}
	return nil
}

// FormatSystem renders a system without its name, e.g. "(1, g3y1) 1b3".
func FormatSystem(s *game.System) string {
	var sb strings.Builder
	sb.WriteString("(")
	if s.Owner != 0 {
		sb.WriteString(strconv.Itoa(s.Owner))
		sb.WriteString(", ")
	}
	for _, star := range s.Stars {
		sb.WriteString(star.String())
	}
	sb.WriteString(")")
	for _, ship := range s.Ships {
		sb.WriteString(" ")
		sb.WriteString(ship.String())
	}
	return sb.String()
}
