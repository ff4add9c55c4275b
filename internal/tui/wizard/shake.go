package wizard

import (
	"time"

	tea "charm.land/bubbletea/v2"
)

// shakeOffsets are the horizontal offsets of one shake, one per frame.
var shakeOffsets = []int{3, -3, 2, -2, 1, -1, 0}

const shakeInterval = 40 * time.Millisecond

// shakeMsg advances the shake animation.
type shakeMsg struct{ id int }

// shake moves the form sideways for a moment when a step refuses to advance.
type shake struct {
	id     int
	frame  int
	active bool
}

// Start restarts the animation. Ticks from an earlier run are ignored.
func (s *shake) Start() tea.Cmd {
	s.id++
	s.frame = 0
	s.active = true
	return s.tick()
}

// Update advances the animation on its own ticks.
func (s *shake) Update(msg tea.Msg) tea.Cmd {
	m, ok := msg.(shakeMsg)
	if !ok || !s.active || m.id != s.id {
		return nil
	}
	s.frame++
	if s.frame >= len(shakeOffsets) {
		s.active = false
		s.frame = 0
		return nil
	}
	return s.tick()
}

// Offset returns the current horizontal offset.
func (s *shake) Offset() int {
	if !s.active {
		return 0
	}
	return shakeOffsets[s.frame]
}

func (s *shake) tick() tea.Cmd {
	id := s.id
	return tea.Tick(shakeInterval, func(time.Time) tea.Msg {
		return shakeMsg{id: id}
	})
}
