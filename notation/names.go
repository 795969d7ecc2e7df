package notation

import "strconv"

// DiscoveryNames are handed out, in order, to systems discovered by the
// search before falling back to numbered names.
var DiscoveryNames = []string{"Sirius", "AlphaCentauri", "Mars", "Venus"}

// Names maps system ids to their display names. Names live outside the game
// state: the engine only knows ids.
type Names map[int]string

func NewNames() Names {
	return Names{}
}

// Name returns the system's name, or its id if it has none.
func (n Names) Name(id int) string {
	if name, ok := n[id]; ok {
		return name
	}
	return strconv.Itoa(id)
}

func (n Names) Lookup(name string) (int, bool) {
	for id, other := range n {
		if other == name {
			return id, true
		}
	}
	return 0, false
}

// Fresh returns an unused name for a newly discovered system.
func (n Names) Fresh(id int) string {
	for _, name := range DiscoveryNames {
		if _, taken := n.Lookup(name); !taken {
			return name
		}
	}
	name := "System" + strconv.Itoa(id)
	for i := 2; ; i++ {
		if _, taken := n.Lookup(name); !taken {
			return name
		}
		name = "System" + strconv.Itoa(id) + "_" + strconv.Itoa(i)
	}
}
