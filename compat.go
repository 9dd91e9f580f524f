package hearts

// CreateHeart spawns one particle at (x, y).
//
// Deprecated: use SpawnOne.
func (m *Manager) CreateHeart(x, y float64) *Handle {
	return m.SpawnOne(Params{Pos: &Vec2{x, y}})
}

// HeartRain schedules a default rain of count particles.
//
// Deprecated: use SpawnRain.
func (m *Manager) HeartRain(count int) {
	m.SpawnRain(count, 0, RainOptions{})
}

// SetMaxHearts sets the particle cap.
//
// Deprecated: use SetMaxConcurrent.
func (m *Manager) SetMaxHearts(n int) {
	m.SetMaxConcurrent(n)
}
