package game

// ActionType represents the type of action a player can perform.
// The declaration order is the canonical action order.
type ActionType int

const (
	PassAction ActionType = iota
	AttackAction
	DiscoverAction
	TravelAction
	BuildAction
	TradeAction
	SacrificeAction
	CatastropheAction
)

var actionNames = [...]string{"PASS", "ATTACK", "DISCOVER", "TRAVEL", "BUILD", "TRADE", "SACRIFICE", "CATASTROPHE"}

func (t ActionType) String() string {
	if t < PassAction || t > CatastropheAction {
		return "UNKNOWN"
	}
	return actionNames[t]
}

// Action represents an action taken by a player.
//
// Ship is the acting ship's piece, the piece built for BuildAction and the
// colour for CatastropheAction (with Size None). To is the travel destination
// and, once a DiscoverAction has been performed, the discovered system.
// Target is the new star for DiscoverAction and the received piece for
// TradeAction.
type Action struct {
	Player int
	Type   ActionType
	System int
	Ship   Piece
	To     int
	Target Piece
}

func Pass(player int) Action {
	return Action{Player: player, Type: PassAction}
}

// CompareActions orders by type, system, ship, destination and target. The
// acting player is not part of the order.
func CompareActions(a, b Action) int {
	if a.Type != b.Type {
		return int(a.Type) - int(b.Type)
	}
	if a.System != b.System {
		return a.System - b.System
	}
	if c := ComparePieces(a.Ship, b.Ship); c != 0 {
		return c
	}
	if a.To != b.To {
		return a.To - b.To
	}
	return ComparePieces(a.Target, b.Target)
}

// Equal ignores the acting player.
func (a Action) Equal(other Action) bool {
	return CompareActions(a, other) == 0
}

// Equivalent is Equal, except that the system id assigned by a performed
// DiscoverAction is not compared.
func (a Action) Equivalent(other Action) bool {
	if a.Type == DiscoverAction && other.Type == DiscoverAction {
		a.To, other.To = 0, 0
	}
	return a.Equal(other)
}

// Ends reports whether the action ends the turn.
func (a Action) Ends() bool {
	return a.Type == PassAction
}
