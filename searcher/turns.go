package searcher

import (
	"fmt"

	"homeworlds/game"

	"golang.org/x/exp/slices"
)

// Turn is a complete sequence of actions for the player to move, ending with
// PASS, together with the position it leads to.
type Turn struct {
	Actions []game.Action
	State   *game.Game
	Key     game.StateKey
}

// Turns enumerates one witness turn for every distinct position the current
// player can reach before handing over. Intermediate positions are expanded
// once each, so sequences that commute are explored a single time.
func Turns(g *game.Game) []Turn {
	type frame struct {
		state *game.Game
		path  []game.Action
	}

	turns := []Turn{}
	reached := map[game.StateKey]bool{}
	expanded := map[game.StateKey]bool{g.Key(): true}
	stack := []frame{{state: g}}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		children := []frame{}
		for _, a := range f.state.LegalActions() {
			next := f.state.Clone()
			if err := next.Perform(&a); err != nil {
				panic(fmt.Sprintf("legal action %+v failed: %v", a, err))
			}
			path := append(slices.Clip(f.path), a)
			key := next.Key()

			if a.Ends() {
				if !reached[key] {
					reached[key] = true
					turns = append(turns, Turn{Actions: path, State: next, Key: key})
				}
				continue
			}
			if expanded[key] {
				continue
			}
			expanded[key] = true
			children = append(children, frame{state: next, path: path})
		}

		// Reversed so that the first action is expanded first
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}
	return turns
}
