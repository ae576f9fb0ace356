package quadtree

// Quadrant identifies one of the four children of a divided node.
// North is toward smaller Y, east toward larger X.
type Quadrant int

const (
	NE Quadrant = iota
	NW
	SE
	SW
)

// Quadrants lists every quadrant in traversal order.
var Quadrants = [4]Quadrant{NE, NW, SE, SW}

func (q Quadrant) String() string {
	switch q {
	case NE:
		return "ne"
	case NW:
		return "nw"
	case SE:
		return "se"
	case SW:
		return "sw"
	}
	return "invalid"
}
