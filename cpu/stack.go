package cpu

// Stack is the processor's byte stack. It grows without limit.
type Stack struct {
	Data []uint8
}

func (s *Stack) Push(value uint8) {
	s.Data = append(s.Data, value)
}

func (s *Stack) Pop() (value uint8, ok bool) {
	value, ok = s.Peek()
	if ok {
		s.Data = s.Data[:len(s.Data)-1]
	}
	return
}

func (s *Stack) Empty() bool {
	return len(s.Data) == 0
}

func (s *Stack) Depth() int {
	return len(s.Data)
}

func (s *Stack) Peek() (value uint8, ok bool) {
	if s.Empty() {
		return
	}

	return s.Data[len(s.Data)-1], true
}

func (s *Stack) Reset() {
	if len(s.Data) > 0 {
		s.Data = s.Data[:0]
	}
}
