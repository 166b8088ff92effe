package drift

import (
	"fmt"

	"go.uber.org/zap"
)

// debugLog logs the frame statistics at debug level.
// Only called when Scene.debug is true.
func (s *Scene) debugLog(stats FrameStats) {
	if !s.debug {
		return
	}
	s.logger.Debug("frame",
		zap.Uint64("frame", stats.Frame),
		zap.Duration("update", stats.UpdateTime),
		zap.Duration("collision", stats.CollisionTime),
		zap.Int("visited", stats.Visited),
		zap.Int("integrated", stats.Integrated),
		zap.Int("expired", stats.Expired),
		zap.Int("collidable", stats.Collidable),
		zap.Int("pairs", stats.Pairs),
		zap.Int("hits", stats.Hits),
		zap.Int("recovered", stats.Recovered),
	)
}

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation. Only called in debug mode; in release mode callers
// skip this entirely.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("drift debug: %s on disposed node %q", op, n.Name))
	}
}

// debugCheckTreeDepth warns if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		debugLogger.Warn("tree depth exceeds threshold",
			zap.Int("depth", depth),
			zap.Int("threshold", debugMaxTreeDepth),
			zap.String("node", n.Name),
		)
	}
}

// debugCheckChildCount warns if a node has more than 1000 children.
const debugMaxChildCount = 1000

func debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		debugLogger.Warn("child count exceeds threshold",
			zap.String("node", n.Name),
			zap.Int("children", len(n.children)),
			zap.Int("threshold", debugMaxChildCount),
		)
	}
}

// CountNodes returns the number of nodes in the subtree rooted at n,
// including n.
func CountNodes(n *Node) int {
	if n == nil {
		return 0
	}
	count := 1
	for _, c := range n.children {
		count += CountNodes(c)
	}
	return count
}
