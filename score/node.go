package score

import "github.com/jsphweid/tabscore/model"

// Reserved keys recognized on any parallel node.
const (
	KeyRhythm          = "r"
	KeyLibrary         = "nLibrary"
	KeyVelocity        = "v"
	KeyVelocityLibrary = "vLibrary"
	// KeyClips places its value on the parent's track.
	KeyClips = "clips"
	// KeyStartTime is computed by the compiler and may never appear in a score.
	KeyStartTime = "startTime"
)

type Kind int

const (
	Sequence Kind = iota + 1
	Leaf
	Parallel
)

func (k Kind) String() string {
	switch k {
	case Sequence:
		return "Sequence"
	case Leaf:
		return "Leaf"
	case Parallel:
		return "Parallel"
	}
	return "Invalid"
}

// Node is one element of a score tree. Which fields are set depends on Kind:
// Children for Sequence, Pattern for Leaf, Entries and Overrides for Parallel.
type Node struct {
	Kind      Kind
	Children  []*Node
	Pattern   string
	Entries   []Entry
	Overrides Overrides
}

// Overrides shadow the inherited context for a parallel node's subtree.
// Nil fields inherit.
type Overrides struct {
	Rhythm          *string
	Library         model.SymbolTable
	Velocity        *string
	VelocityLibrary model.SymbolTable
}

// Entry is a named child of a parallel node. SameTrack entries come from the
// clips key and keep the parent's track name.
type Entry struct {
	Track     string
	SameTrack bool
	Node      *Node
}

func NewSequence(children ...*Node) *Node {
	return &Node{Kind: Sequence, Children: children}
}

func NewLeaf(pattern string) *Node {
	return &Node{Kind: Leaf, Pattern: pattern}
}

func NewParallel(entries ...Entry) *Node {
	return &Node{Kind: Parallel, Entries: entries}
}

// OnTrack names a child of a parallel node.
func OnTrack(track string, n *Node) Entry {
	return Entry{Track: track, Node: n}
}

// OnSameTrack is the clips escape: n stays on the parent's track.
func OnSameTrack(n *Node) Entry {
	return Entry{SameTrack: true, Node: n}
}

// WithRhythm sets the rhythm override and returns n.
func (n *Node) WithRhythm(r string) *Node {
	n.Overrides.Rhythm = &r
	return n
}

func (n *Node) WithLibrary(lib model.SymbolTable) *Node {
	n.Overrides.Library = lib
	return n
}

func (n *Node) WithVelocity(v string, lib model.SymbolTable) *Node {
	n.Overrides.Velocity = &v
	if lib != nil {
		n.Overrides.VelocityLibrary = lib
	}
	return n
}
