package filesystem

// MockScanner implements PathScanner from a script of paths and errors.
// Errors queued before a path are recorded when that path is pulled, the way
// a walker records failures met on the way to the next file.
type MockScanner struct {
	steps  []mockStep
	index  int
	errs   []WalkError
	closed bool
}

type mockStep struct {
	path string
	err  *WalkError
}

// NewMockScanner creates a scanner that yields paths in order.
func NewMockScanner(paths ...string) *MockScanner {
	s := &MockScanner{}
	for _, p := range paths {
		s.AddPath(p)
	}

	return s
}

// AddPath appends a path to the script.
func (s *MockScanner) AddPath(path string) *MockScanner {
	s.steps = append(s.steps, mockStep{path: path})
	return s
}

// AddError appends a recoverable error to the script.
func (s *MockScanner) AddError(err WalkError) *MockScanner {
	s.steps = append(s.steps, mockStep{err: &err})
	return s
}

// Closed reports whether Close was called.
func (s *MockScanner) Closed() bool {
	return s.closed
}

// Next advances to the next scripted path.
func (s *MockScanner) Next() (string, bool) {
	for !s.closed && s.index < len(s.steps) {
		step := s.steps[s.index]
		s.index++

		if step.err != nil {
			s.errs = append(s.errs, *step.err)
			continue
		}

		return step.path, true
	}

	return "", false
}

// Errors returns a copy of the errors recorded so far.
func (s *MockScanner) Errors() []WalkError {
	return append([]WalkError(nil), s.errs...)
}

// ErrorCount returns how many errors have been recorded so far.
func (s *MockScanner) ErrorCount() int {
	return len(s.errs)
}

// Close ends the scripted walk.
func (s *MockScanner) Close() error {
	s.closed = true
	return nil
}
