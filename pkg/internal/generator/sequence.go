package generator

// Sequence 从 1 开始的自增 id，零值可用.
type Sequence struct {
	last int64
}

// Next 返回下一个 id.
func (s *Sequence) Next() int64 {
	s.last++

	return s.last
}

// Last 返回最近一次分配的 id，未分配时为 0.
func (s *Sequence) Last() int64 {
	return s.last
}
