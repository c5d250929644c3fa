package navigation

// Service moves a cursor over a list of rows and keeps it inside a viewport
type Service struct {
	state   *State
	countFn func() int // number of rows currently shown
}

// NewService creates a navigation service over countFn rows
func NewService(countFn func() int) *Service {
	return &Service{
		state: &State{
			ViewportHeight: 20, // Default, will be updated
		},
		countFn: countFn,
	}
}

// GetCursor returns current cursor position
func (s *Service) GetCursor() int {
	s.sync()
	return s.state.Cursor
}

// GetViewportOffset returns current viewport offset
func (s *Service) GetViewportOffset() int {
	return s.state.ViewportOffset
}

// GetViewportHeight returns current viewport height
func (s *Service) GetViewportHeight() int {
	return s.state.ViewportHeight
}

// SetViewportHeight updates viewport height
func (s *Service) SetViewportHeight(height int) {
	if height < 1 {
		height = 1
	}
	s.state.ViewportHeight = height
	s.ensureVisible()
}

// Navigate handles navigation in a direction
func (s *Service) Navigate(direction Direction) {
	s.sync()

	switch direction {
	case DirectionUp:
		s.moveTo(s.state.Cursor - 1)
	case DirectionDown:
		s.moveTo(s.state.Cursor + 1)
	case DirectionPageUp:
		s.moveTo(s.state.Cursor - (s.state.ViewportHeight - 1))
	case DirectionPageDown:
		s.moveTo(s.state.Cursor + (s.state.ViewportHeight - 1))
	case DirectionHome:
		s.moveTo(0)
	case DirectionEnd:
		s.moveTo(s.state.MaxIndex)
	}
}

// MoveToIndex moves cursor to specific index
func (s *Service) MoveToIndex(index int) {
	s.sync()
	s.moveTo(index)
}

// Reset puts the cursor back on the first row
func (s *Service) Reset() {
	s.state.Cursor = 0
	s.state.ViewportOffset = 0
	s.sync()
}

func (s *Service) moveTo(index int) {
	s.state.Cursor = s.clampIndex(index)
	s.ensureVisible()
}

// sync refreshes the max index and pulls the cursor back when rows disappeared
func (s *Service) sync() {
	maxIndex := 0
	if s.countFn != nil {
		maxIndex = s.countFn() - 1
	}
	if maxIndex < 0 {
		maxIndex = 0
	}
	s.state.MaxIndex = maxIndex
	if s.state.Cursor > maxIndex {
		s.state.Cursor = maxIndex
		s.ensureVisible()
	}
}

func (s *Service) clampIndex(index int) int {
	if index < 0 {
		return 0
	}
	if index > s.state.MaxIndex {
		return s.state.MaxIndex
	}
	return index
}

func (s *Service) ensureVisible() {
	if s.state.Cursor < s.state.ViewportOffset {
		s.state.ViewportOffset = s.state.Cursor
	} else if s.state.Cursor >= s.state.ViewportOffset+s.state.ViewportHeight {
		s.state.ViewportOffset = s.state.Cursor - s.state.ViewportHeight + 1
	}
	if s.state.ViewportOffset < 0 {
		s.state.ViewportOffset = 0
	}
}
