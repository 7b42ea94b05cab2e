package compact

import "github.com/bbqsrc/pathtrie-go/value"

// Reader walks a compact index directly against its backing byte slice.
// Opening one does no decoding beyond the four-byte header: every Get
// reads records straight out of buf, the zero-allocation trade chosen
// over an upfront parse into the mutable pathtrie.Trie.
type Reader[V value.Integer] struct {
	buf        []byte
	w          int
	rootOffset int
	log        Logger
}

// ReaderOption configures Open at construction time.
type ReaderOption func(*readerOptions)

type readerOptions struct {
	log Logger
}

// WithReaderLogger attaches a diagnostic Logger to Open, logged once
// against the header rather than per Get (Get stays zero-allocation).
// The default is NoopLogger.
func WithReaderLogger(l Logger) ReaderOption {
	return func(o *readerOptions) { o.log = l }
}

// Open validates buf's header and returns a Reader over it. buf is not
// copied; the caller must keep it alive and unmodified for the Reader's
// lifetime (a Trie serialized once and mmap'd is the expected use).
func Open[V value.Integer](buf []byte, opts ...ReaderOption) (*Reader[V], error) {
	o := readerOptions{log: NoopLogger}
	for _, opt := range opts {
		opt(&o)
	}

	if len(buf) < HeaderSize {
		return nil, &TooSmallError{Len: len(buf)}
	}
	if buf[0] != MagicByte0 || buf[1] != MagicByte1 {
		return nil, &InvalidMagicError{Got: [2]byte{buf[0], buf[1]}}
	}
	if buf[2] != Version {
		return nil, &InvalidVersionError{Got: buf[2]}
	}
	var zero V
	w := int(buf[3])
	if w != zero.ByteWidth() {
		return nil, &InvalidAlignmentError{Found: w, Expected: zero.ByteWidth()}
	}
	rootOffset := HeaderSize + padLen(HeaderSize, w)
	if rootOffset+w+1 > len(buf) {
		return nil, &TooSmallError{Len: len(buf)}
	}
	o.log.Printf("compact: opened %d-byte index, alignment %d", len(buf), w)
	return &Reader[V]{buf: buf, w: w, rootOffset: rootOffset, log: o.log}, nil
}

// Get looks up key and reports whether it was found. Get never returns
// an error: a corrupt or truncated buffer just fails to find entries, or
// some entries, rather than halting the walk; validating the buffer
// before trusting it that way is the caller's responsibility.
func (r *Reader[V]) Get(key []byte) (V, bool) {
	var zero V
	pos := r.rootOffset
	remaining := key

	for {
		rec, ok := readRecord(r.buf, pos, r.w)
		if !ok || rec.isTerminator {
			return zero, false
		}

		exact, descend, rest := fragMatch(rec.frag, remaining)
		switch {
		case exact:
			if rec.isBranch {
				return r.ownValue(int(rec.branchOffset))
			}
			return value.DecodeLE[V](r.buf[rec.valueStart : rec.valueStart+r.w]), true
		case descend:
			if !rec.isBranch {
				return zero, false
			}
			pos = int(rec.branchOffset)
			remaining = rest
		default:
			pos += rec.totalLen
		}
	}
}

// ownValue scans a node's own sibling run for the synthetic
// empty-fragment record that carries its interior value,
// used when a Get's key lands exactly on a branching node.
func (r *Reader[V]) ownValue(runOffset int) (V, bool) {
	var zero V
	pos := runOffset
	for {
		rec, ok := readRecord(r.buf, pos, r.w)
		if !ok || rec.isTerminator {
			return zero, false
		}
		if len(rec.frag) == 0 && !rec.isBranch {
			return value.DecodeLE[V](r.buf[rec.valueStart : rec.valueStart+r.w]), true
		}
		pos += rec.totalLen
	}
}

// Has reports whether key is present, without decoding its value.
func (r *Reader[V]) Has(key []byte) bool {
	_, ok := r.Get(key)
	return ok
}

type record struct {
	frag         []byte
	isBranch     bool
	branchOffset int64
	valueStart   int
	isTerminator bool
	totalLen     int
}

// readRecord decodes the record starting at pos. ok is false if pos does
// not have enough bytes behind it for even the fixed-size fields, which
// readRecord treats as "nothing more to read" rather than panicking.
func readRecord(buf []byte, pos, w int) (record, bool) {
	if pos < 0 || pos+w+1 > len(buf) {
		return record{}, false
	}
	nextOffsetBytes := buf[pos : pos+w]

	if isAllZero(nextOffsetBytes) {
		return record{isTerminator: true, totalLen: recordLen(w, 0, false)}, true
	}

	if isAllOnes(nextOffsetBytes) {
		// Terminal record: the value sits directly after next_offset,
		// then the key length and key bytes.
		valueStart := pos + w
		if valueStart+w+1 > len(buf) {
			return record{}, false
		}
		keyLen := int(buf[valueStart+w])
		fragStart := valueStart + w + 1
		if fragStart+keyLen > len(buf) {
			return record{}, false
		}
		return record{
			frag:       buf[fragStart : fragStart+keyLen],
			valueStart: valueStart,
			totalLen:   recordLen(w, keyLen, true),
		}, true
	}

	keyLen := int(buf[pos+w])
	fragStart := pos + w + 1
	if fragStart+keyLen > len(buf) {
		return record{}, false
	}
	return record{
		frag:         buf[fragStart : fragStart+keyLen],
		isBranch:     true,
		branchOffset: int64(readOffsetLE(nextOffsetBytes)),
		totalLen:     recordLen(w, keyLen, false),
	}, true
}

// fragMatch classifies frag (a sibling record's key fragment) against
// remaining (the unconsumed tail of the lookup key): exact if they're
// byte-identical, descend if frag is a proper, non-empty prefix of
// remaining (rest is what's left to match under that child), or neither
// if frag cannot lead to remaining at all.
func fragMatch(frag, remaining []byte) (exact, descend bool, rest []byte) {
	if len(frag) == 0 {
		return len(remaining) == 0, false, nil
	}
	if len(frag) > len(remaining) {
		return false, false, nil
	}
	for i := range frag {
		if frag[i] != remaining[i] {
			return false, false, nil
		}
	}
	if len(frag) == len(remaining) {
		return true, false, nil
	}
	return false, true, remaining[len(frag):]
}
