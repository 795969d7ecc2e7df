package notation

import (
	"fmt"
	"strings"

	"homeworlds/game"
)

// FormatAction renders an action. newName names the system created by a
// DiscoverAction and is ignored otherwise.
func FormatAction(a game.Action, names Names, newName string) string {
	switch a.Type {
	case game.PassAction:
		return "PASS"
	case game.AttackAction:
		return fmt.Sprintf("ATTACK %s %s", a.Ship, names.Name(a.System))
	case game.DiscoverAction:
		return fmt.Sprintf("DISCOVER %s %s %s %s", a.Ship, names.Name(a.System), a.Target, newName)
	case game.TravelAction:
		return fmt.Sprintf("MOVE %s %s %s", a.Ship, names.Name(a.System), names.Name(a.To))
	case game.BuildAction:
		return fmt.Sprintf("BUILD %s %s", a.Ship, names.Name(a.System))
	case game.TradeAction:
		return fmt.Sprintf("TRADE %s %s %s", a.Ship, a.Target, names.Name(a.System))
	case game.SacrificeAction:
		return fmt.Sprintf("SACRIFICE %s %s", a.Ship, names.Name(a.System))
	case game.CatastropheAction:
		return fmt.Sprintf("CATASTROPHE %s %s", names.Name(a.System), a.Ship.Colour)
	}
	panic(fmt.Sprintf("unknown action type %d", a.Type))
}

var arity = map[string]int{
	"PASS":        0,
	"ATTACK":      2,
	"DISCOVER":    4,
	"MOVE":        3,
	"BUILD":       2,
	"TRADE":       3,
	"SACRIFICE":   2,
	"CATASTROPHE": 2,
}

// ParseAction parses one action line for the given player. For DISCOVER the
// name of the new system is returned alongside the action.
func ParseAction(line string, player int, names Names) (game.Action, string, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return game.Action{}, "", fmt.Errorf("empty action: %w", ErrSyntax)
	}
	keyword := strings.ToUpper(fields[0])
	args := fields[1:]
	n, ok := arity[keyword]
	if !ok {
		return game.Action{}, "", fmt.Errorf("unknown action %q: %w", fields[0], ErrSyntax)
	}
	if len(args) != n {
		return game.Action{}, "", fmt.Errorf("%s takes %d arguments, got %d: %w", keyword, n, len(args), ErrSyntax)
	}

	p := parser{names: names}
	a := game.Action{Player: player}
	newName := ""
	switch keyword {
	case "PASS":
		a.Type = game.PassAction
	case "ATTACK":
		a.Type = game.AttackAction
		a.Ship, a.System = p.piece(args[0]), p.system(args[1])
	case "DISCOVER":
		a.Type = game.DiscoverAction
		a.Ship, a.System, a.Target = p.piece(args[0]), p.system(args[1]), p.piece(args[2])
		newName = args[3]
		if _, taken := names.Lookup(newName); taken && p.err == nil {
			p.err = fmt.Errorf("system %q already exists: %w", newName, ErrSyntax)
		}
	case "MOVE":
		a.Type = game.TravelAction
		a.Ship, a.System, a.To = p.piece(args[0]), p.system(args[1]), p.system(args[2])
	case "BUILD":
		a.Type = game.BuildAction
		a.Ship, a.System = p.piece(args[0]), p.system(args[1])
	case "TRADE":
		a.Type = game.TradeAction
		a.Ship, a.Target, a.System = p.piece(args[0]), p.piece(args[1]), p.system(args[2])
	case "SACRIFICE":
		a.Type = game.SacrificeAction
		a.Ship, a.System = p.piece(args[0]), p.system(args[1])
	case "CATASTROPHE":
		a.Type = game.CatastropheAction
		a.System = p.system(args[0])
		colour, err := game.ParseColour(strings.ToLower(args[1]))
		if err != nil && p.err == nil {
			p.err = err
		}
		a.Ship = game.Piece{Size: game.None, Colour: colour}
	}
	if p.err != nil {
		return game.Action{}, "", fmt.Errorf("%q: %w", line, p.err)
	}
	return a, newName, nil
}

// parser keeps the first error so the cases above read as plain assignments.
type parser struct {
	names Names
	err   error
}

func (p *parser) piece(s string) game.Piece {
	piece, err := game.ParsePiece(strings.ToLower(s))
	if err != nil && p.err == nil {
		p.err = err
	}
	return piece
}

func (p *parser) system(name string) int {
	id, ok := p.names.Lookup(name)
	if !ok && p.err == nil {
		p.err = fmt.Errorf("unknown system %q", name)
	}
	return id
}
