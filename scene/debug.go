package scene

import (
	"fmt"
	"os"
	"time"
)

// debugStats holds per-frame metrics. Only populated in debug mode.
type debugStats struct {
	frameTime time.Duration
	nodes     int
	draws     int
	pending   int
}

// debugEvery is how many frames pass between stats lines.
const debugEvery = 60

func (s *Scene) debugLog(stats debugStats) {
	if !s.debug || s.frame%debugEvery != 0 {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr,
		"[hearts] frame %d | draw: %v | nodes: %d | draws: %d | timers: %d\n",
		s.frame, stats.frameTime, stats.nodes, stats.draws, stats.pending)
}

// debugCheckDisposed panics when a disposed node is used in a tree
// operation. Only called in debug mode.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("scene debug: %s on disposed node %q", op, n.Name))
	}
}

const debugMaxChildCount = 1000

func debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		_, _ = fmt.Fprintf(os.Stderr, "[hearts] warning: node %q has %d children (threshold %d)\n",
			n.Name, len(n.children), debugMaxChildCount)
	}
}

func countNodes(n *Node) int {
	c := 1
	for _, child := range n.children {
		c += countNodes(child)
	}
	return c
}
