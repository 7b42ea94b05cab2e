package compact

// memSink is a growable in-memory Sink, used only by this package's own
// tests -- a reusable byte-buffer adapter is explicitly out of scope for
// the library itself (the writer only ever consumes the Sink interface).
type memSink struct {
	buf []byte
	pos int64
}

func (s *memSink) Write(p []byte) (int, error) {
	end := s.pos + int64(len(p))
	if end > int64(len(s.buf)) {
		grown := make([]byte, end)
		copy(grown, s.buf)
		s.buf = grown
	}
	copy(s.buf[s.pos:end], p)
	s.pos = end
	return len(p), nil
}

func (s *memSink) Seek(offset int64) error {
	s.pos = offset
	return nil
}

func (s *memSink) Pos() (int64, error) {
	return s.pos, nil
}
