package hearts

import "time"

// PlannedSpawn is one entry of a SpawnPlan.
type PlannedSpawn struct {
	Delay  time.Duration
	Params Params
}

// SpawnPlan is an ordered batch of spawns, each delayed relative to the
// start of the batch.
type SpawnPlan []PlannedSpawn

// Schedule queues every spawn in p. Each entry is admitted independently
// when it runs; a rejected entry does not affect the rest. Entries still
// pending when DestroyAll is called are dropped.
func (m *Manager) Schedule(p SpawnPlan) {
	gen := m.generation()
	for _, ps := range p {
		m.sched.After(ps.Delay, func() {
			if m.generation() != gen {
				return
			}
			m.SpawnOne(ps.Params)
		})
	}
}

// step returns delay i*interval.
func step(i int, interval time.Duration) time.Duration {
	return time.Duration(i) * interval
}
