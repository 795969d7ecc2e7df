package game

type Rules interface {
	// Supply is the initial stash count of every piece.
	Supply(numPlayers int) int
	// CatastropheThreshold is the number of same-coloured pieces in one
	// system that makes a catastrophe available.
	CatastropheThreshold() int
}
