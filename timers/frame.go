package timers

// # Frame
//
// Represents an active partition on a [TimersTree].
// Frames are handed out by value and the stack forgets a frame once it has
// been popped, so a stale start time can not be read back.
type Frame struct {
	Key   int
	Start float64

	// time spent in frames nested directly above this one
	childTime float64
}

// span returns the time elapsed since the frame started.
func (f Frame) span(now float64) float64 {
	return now - f.Start
}

// self returns the time the frame spent on top of the stack.
func (f Frame) self(now float64) float64 {
	return f.span(now) - f.childTime
}

type frameStack struct {
	frames []Frame
}

func newFrameStack() *frameStack {
	return &frameStack{frames: make([]Frame, 0, 8)}
}

func (s *frameStack) push(key int, start float64) {
	s.frames = append(s.frames, Frame{Key: key, Start: start})
}

func (s *frameStack) pop() (Frame, bool) {
	n := len(s.frames)
	if n == 0 {
		return Frame{}, false
	}
	f := s.frames[n-1]
	s.frames[n-1] = Frame{}
	s.frames = s.frames[:n-1]
	return f, true
}

func (s *frameStack) peek() (Frame, bool) {
	if len(s.frames) == 0 {
		return Frame{}, false
	}
	return s.frames[len(s.frames)-1], true
}

func (s *frameStack) bottom() (Frame, bool) {
	if len(s.frames) == 0 {
		return Frame{}, false
	}
	return s.frames[0], true
}

// chargeTop adds d to the child time of the topmost frame, if any.
func (s *frameStack) chargeTop(d float64) {
	if len(s.frames) == 0 {
		return
	}
	s.frames[len(s.frames)-1].childTime += d
}

func (s *frameStack) size() int {
	return len(s.frames)
}
