package game

type StandardRules struct {
	ExtraSupply int
	Threshold   int
}

func NewStandardRules() *StandardRules {
	return &StandardRules{
		ExtraSupply: 1,
		Threshold:   4,
	}
}

// Supply is one more than the number of players: three of every piece in a
// two-player game.
func (sr *StandardRules) Supply(numPlayers int) int {
	return sr.ExtraSupply + numPlayers
}

func (sr *StandardRules) CatastropheThreshold() int {
	return sr.Threshold
}
