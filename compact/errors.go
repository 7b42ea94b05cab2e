package compact

import "fmt"

// The Open error types below are returned by Open when the supplied
// buffer cannot be a valid compact index. Lookups against an
// already-opened Reader never error: malformed bytes past the header
// just make Get fail to find anything, the caller's responsibility,
// per the Non-goals.

// TooSmallError reports a buffer shorter than the fixed header.
type TooSmallError struct {
	Len int
}

func (e *TooSmallError) Error() string {
	return fmt.Sprintf("compact: buffer of %d bytes is shorter than the header", e.Len)
}

// InvalidMagicError reports a buffer whose first two bytes are not the
// format's magic.
type InvalidMagicError struct {
	Got [2]byte
}

func (e *InvalidMagicError) Error() string {
	return fmt.Sprintf("compact: invalid magic bytes %#x %#x", e.Got[0], e.Got[1])
}

// InvalidVersionError reports an unsupported format version byte.
type InvalidVersionError struct {
	Got byte
}

func (e *InvalidVersionError) Error() string {
	return fmt.Sprintf("compact: unsupported version byte %#x", e.Got)
}

// InvalidAlignmentError reports a header alignment byte that does not
// match the value width the Reader was instantiated for.
type InvalidAlignmentError struct {
	Found    int
	Expected int
}

func (e *InvalidAlignmentError) Error() string {
	return fmt.Sprintf("compact: header alignment %d does not match value width %d", e.Found, e.Expected)
}

// The Write error types below abort a Write; the sink's partial
// contents are undefined and must be discarded.

// KeyTooLongError reports a key fragment too long for the one-byte
// length field.
type KeyTooLongError struct {
	Len int
}

func (e *KeyTooLongError) Error() string {
	return fmt.Sprintf("compact: key fragment of %d bytes exceeds the 255-byte limit", e.Len)
}

// OffsetOverflowError reports a child offset that collides with the
// all-ones terminal sentinel for the index's width. The fix is a wider
// value type.
type OffsetOverflowError struct {
	Offset uint64
	Width  int
}

func (e *OffsetOverflowError) Error() string {
	return fmt.Sprintf("compact: child offset %d exceeds the terminal sentinel for width %d", e.Offset, e.Width)
}

// UnsupportedWidthError reports a value type whose ByteWidth is not one
// of the widths the format allows.
type UnsupportedWidthError struct {
	Width int
}

func (e *UnsupportedWidthError) Error() string {
	return fmt.Sprintf("compact: unsupported value width %d", e.Width)
}

// SinkError wraps an error returned by the Writer's sink.
type SinkError struct {
	Err error
}

func (e *SinkError) Error() string { return "compact: sink: " + e.Err.Error() }

func (e *SinkError) Unwrap() error { return e.Err }

func errSinkIO(err error) error { return &SinkError{Err: err} }
