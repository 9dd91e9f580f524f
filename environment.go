package hearts

// Environment describes the host's capacity. It only scales how much work an
// effect does (counts, distances, durations); correctness never depends on it.
type Environment struct {
	// Constrained marks mobile-class or low-power hosts.
	Constrained bool
}

// Scaling applied on constrained hosts.
const (
	constrainedRiseScale     = 0.7 // 30% shorter travel
	constrainedDurationScale = 0.8 // 20% shorter lifetime
)

// rainCount returns how many rain particles to schedule for a requested
// count: 40% fewer on constrained hosts.
func (e Environment) rainCount(n int) int {
	if n <= 0 {
		return 0
	}
	if e.Constrained {
		return n * 3 / 5
	}
	return n
}
