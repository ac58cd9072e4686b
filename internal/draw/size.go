package draw

import "sync"

// SizeTracker remembers the latest window size reported by a remote
// terminal. Updates and reads may come from different goroutines.
type SizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

// NewSizeTracker starts with the given size.
func NewSizeTracker(width, height int) *SizeTracker {
	return &SizeTracker{width: width, height: height}
}

// Update records a window change.
func (s *SizeTracker) Update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

// Size returns the latest size. It satisfies TermSizeFunc.
func (s *SizeTracker) Size() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

var _ TermSizeFunc = (*SizeTracker)(nil).Size
