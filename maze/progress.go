package maze

// Progress is called synchronously on every cell an algorithm changes.
// step counts changes so far starting at 1, total is the expected number of changes for the
// full maze. It must not touch the grid. Panicking from it aborts generation and leaves the
// grid partially carved.
type Progress func(x, y, step, total int)

// NoProgress discards progress reports
func NoProgress(x, y, step, total int) {}

// stepper counts cell changes and forwards them
type stepper struct {
	fn    Progress
	step  int
	total int
}

func newStepper(fn Progress, total int) stepper {
	if fn == nil {
		fn = NoProgress
	}
	return stepper{fn: fn, total: total}
}

func (s *stepper) report(x, y int) {
	s.step++
	s.fn(x, y, s.step, s.total)
}
