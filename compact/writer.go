package compact

import (
	pathtrie "github.com/bbqsrc/pathtrie-go"
	"github.com/bbqsrc/pathtrie-go/value"
)

// Writer serializes a pathtrie.Trie into the compact on-disk format in a
// single forward pass over the sink, back-patching each branch record's
// next_offset field the moment its child run begins, one field written
// sequentially at a time rather than building the whole buffer up-front.
type Writer[V value.Integer] struct {
	sink Sink
	w    int
	pos  int64
	// pending maps a node's full key path to the file offset of the
	// next_offset field in the record written for it, awaiting the
	// offset of its own children's run once that run starts.
	pending map[string]int64
	log     Logger
}

// WriterOption configures a Writer at construction time.
type WriterOption func(*writerOptions)

type writerOptions struct {
	log Logger
}

// WithLogger attaches a diagnostic Logger. The default is NoopLogger.
func WithLogger(l Logger) WriterOption {
	return func(o *writerOptions) { o.log = l }
}

// NewWriter returns a Writer for value type V, whose byte width becomes
// this index's alignment W.
func NewWriter[V value.Integer](sink Sink, opts ...WriterOption) *Writer[V] {
	var zero V
	o := writerOptions{log: NoopLogger}
	for _, opt := range opts {
		opt(&o)
	}
	return &Writer[V]{sink: sink, w: zero.ByteWidth(), pending: make(map[string]int64), log: o.log}
}

// Write serializes t in full, writing the header followed by one
// contiguous sibling run per branching node, depth-first.
func (w *Writer[V]) Write(t *pathtrie.Trie[V]) error {
	if err := w.writeHeader(); err != nil {
		return err
	}

	var lastParent string
	first := true
	for e := range t.RawEntries() {
		parentKey := string(e.ParentPath)
		if first || parentKey != lastParent {
			if !first {
				if err := w.writeTerminator(); err != nil {
					return err
				}
			}
			if err := w.patchRunStart(parentKey); err != nil {
				return err
			}
			lastParent = parentKey
			first = false
		}
		if err := w.writeRecord(e); err != nil {
			return err
		}
	}
	// Closes the deepest run if the trie held any entries, or writes the
	// (empty) root run's sole terminator if it didn't.
	if err := w.writeTerminator(); err != nil {
		return err
	}

	w.log.Printf("compact: wrote index of %d bytes, alignment %d", w.pos, w.w)
	return nil
}

func (w *Writer[V]) writeHeader() error {
	if !validWidth(w.w) {
		return &UnsupportedWidthError{Width: w.w}
	}
	hdr := []byte{MagicByte0, MagicByte1, Version, byte(w.w)}
	if err := w.append(hdr); err != nil {
		return err
	}
	if pad := padLen(HeaderSize, w.w); pad > 0 {
		return w.append(make([]byte, pad))
	}
	return nil
}

func (w *Writer[V]) writeRecord(e pathtrie.RawEntry[V]) error {
	if len(e.Frag) > 255 {
		return &KeyTooLongError{Len: len(e.Frag)}
	}

	nextOffset := make([]byte, w.w)
	if e.IsBranch {
		fullPath := append(append([]byte(nil), e.ParentPath...), e.Frag...)
		w.pending[string(fullPath)] = w.pos
	} else {
		setAllOnes(nextOffset)
	}
	if err := w.append(nextOffset); err != nil {
		return err
	}
	written := w.w
	// The value field sits directly after next_offset, before the key,
	// and exists only on terminal records.
	if !e.IsBranch {
		valBuf := make([]byte, w.w)
		e.Value.PutLE(valBuf)
		if err := w.append(valBuf); err != nil {
			return err
		}
		written += w.w
	}
	if err := w.append([]byte{byte(len(e.Frag))}); err != nil {
		return err
	}
	written++
	if len(e.Frag) > 0 {
		if err := w.append(e.Frag); err != nil {
			return err
		}
		written += len(e.Frag)
	}
	if pad := padLen(written, w.w); pad > 0 {
		return w.append(make([]byte, pad))
	}
	return nil
}

// writeTerminator closes a sibling run with the empty-terminator
// sentinel: next_offset all zero, key_len zero.
func (w *Writer[V]) writeTerminator() error {
	if err := w.append(make([]byte, w.w)); err != nil {
		return err
	}
	if err := w.append([]byte{0}); err != nil {
		return err
	}
	if pad := padLen(w.w+1, w.w); pad > 0 {
		return w.append(make([]byte, pad))
	}
	return nil
}

// patchRunStart back-patches the pending record for parentKey, if any,
// with the current write position -- the offset its children's run is
// about to start at. The root's run (parentKey == "") has no preceding
// record to patch, since the root itself is never written.
func (w *Writer[V]) patchRunStart(parentKey string) error {
	patchOffset, ok := w.pending[parentKey]
	if !ok {
		return nil
	}
	delete(w.pending, parentKey)

	offset := uint64(w.pos)
	if offset >= maxOffsetFor(w.w) {
		return &OffsetOverflowError{Offset: offset, Width: w.w}
	}
	cur, err := w.sink.Pos()
	if err != nil {
		return errSinkIO(err)
	}
	buf := make([]byte, w.w)
	putOffsetLE(buf, offset)
	if err := w.sink.Seek(patchOffset); err != nil {
		return errSinkIO(err)
	}
	if _, err := w.sink.Write(buf); err != nil {
		return errSinkIO(err)
	}
	if err := w.sink.Seek(cur); err != nil {
		return errSinkIO(err)
	}
	return nil
}

func (w *Writer[V]) append(p []byte) error {
	n, err := w.sink.Write(p)
	w.pos += int64(n)
	if err != nil {
		return errSinkIO(err)
	}
	return nil
}

func maxOffsetFor(w int) uint64 {
	if w >= 8 {
		return ^uint64(0)
	}
	return (uint64(1) << (8 * uint(w))) - 1
}
