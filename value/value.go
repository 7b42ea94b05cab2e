// Package value defines the capability set a compact index's value type
// must satisfy, and the concrete unsigned integer widths that satisfy it:
// an interface plus one concrete type per width, rather than a single
// generic integer type, since 128-bit values have no native Go type and
// Uint128 has to carry its bits as two uint64 words.
package value

import (
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
)

// Integer is the capability set required of a compact index's value type:
// a default zero value (the zero value of each concrete type below), a
// fixed on-disk byte width, and little-endian encode/decode.
type Integer interface {
	comparable

	// ByteWidth returns W, the on-disk width in bytes: 1, 2, 4, 8, or 16.
	ByteWidth() int

	// PutLE writes the little-endian encoding of the value into buf, which
	// must be exactly ByteWidth() bytes long.
	PutLE(buf []byte)

	String() string
}

// Uint8 is an 8-bit value width (W=1).
type Uint8 uint8

func (v Uint8) ByteWidth() int   { return 1 }
func (v Uint8) PutLE(buf []byte) { buf[0] = byte(v) }
func (v Uint8) String() string   { return strconv.FormatUint(uint64(v), 10) }

// DecodeUint8 reads a Uint8 out of a 1-byte little-endian buffer.
func DecodeUint8(buf []byte) Uint8 { return Uint8(buf[0]) }

// Uint8FromUint64 converts x to a Uint8, reporting whether it fit.
func Uint8FromUint64(x uint64) (Uint8, bool) {
	if x > math.MaxUint8 {
		return 0, false
	}
	return Uint8(x), true
}

// Uint16 is a 16-bit value width (W=2).
type Uint16 uint16

func (v Uint16) ByteWidth() int { return 2 }
func (v Uint16) PutLE(buf []byte) {
	binary.LittleEndian.PutUint16(buf, uint16(v))
}
func (v Uint16) String() string { return strconv.FormatUint(uint64(v), 10) }

// DecodeUint16 reads a Uint16 out of a 2-byte little-endian buffer.
func DecodeUint16(buf []byte) Uint16 { return Uint16(binary.LittleEndian.Uint16(buf)) }

// Uint16FromUint64 converts x to a Uint16, reporting whether it fit.
func Uint16FromUint64(x uint64) (Uint16, bool) {
	if x > math.MaxUint16 {
		return 0, false
	}
	return Uint16(x), true
}

// Uint32 is a 32-bit value width (W=4).
type Uint32 uint32

func (v Uint32) ByteWidth() int { return 4 }
func (v Uint32) PutLE(buf []byte) {
	binary.LittleEndian.PutUint32(buf, uint32(v))
}
func (v Uint32) String() string { return strconv.FormatUint(uint64(v), 10) }

// DecodeUint32 reads a Uint32 out of a 4-byte little-endian buffer.
func DecodeUint32(buf []byte) Uint32 { return Uint32(binary.LittleEndian.Uint32(buf)) }

// Uint32FromUint64 converts x to a Uint32, reporting whether it fit.
func Uint32FromUint64(x uint64) (Uint32, bool) {
	if x > math.MaxUint32 {
		return 0, false
	}
	return Uint32(x), true
}

// Uint64 is a 64-bit value width (W=8).
type Uint64 uint64

func (v Uint64) ByteWidth() int { return 8 }
func (v Uint64) PutLE(buf []byte) {
	binary.LittleEndian.PutUint64(buf, uint64(v))
}
func (v Uint64) String() string { return strconv.FormatUint(uint64(v), 10) }

// DecodeUint64 reads a Uint64 out of an 8-byte little-endian buffer.
func DecodeUint64(buf []byte) Uint64 { return Uint64(binary.LittleEndian.Uint64(buf)) }

// Uint64FromUint64 always fits.
func Uint64FromUint64(x uint64) (Uint64, bool) { return Uint64(x), true }

// Uint128 is a 128-bit value width (W=16), stored as two little-endian
// 64-bit words (Lo holds bytes 0..8, Hi holds bytes 8..16).
type Uint128 struct {
	Lo, Hi uint64
}

func (v Uint128) ByteWidth() int { return 16 }
func (v Uint128) PutLE(buf []byte) {
	binary.LittleEndian.PutUint64(buf[0:8], v.Lo)
	binary.LittleEndian.PutUint64(buf[8:16], v.Hi)
}
func (v Uint128) String() string {
	if v.Hi == 0 {
		return strconv.FormatUint(v.Lo, 10)
	}
	// No 128-bit formatting in strconv; render in hex, most significant
	// word first, low word zero-padded to its full 16 digits.
	return "0x" + strconv.FormatUint(v.Hi, 16) + fmt.Sprintf("%016x", v.Lo)
}

// DecodeUint128 reads a Uint128 out of a 16-byte little-endian buffer.
func DecodeUint128(buf []byte) Uint128 {
	return Uint128{
		Lo: binary.LittleEndian.Uint64(buf[0:8]),
		Hi: binary.LittleEndian.Uint64(buf[8:16]),
	}
}

// Uint128FromUint64 always fits.
func Uint128FromUint64(x uint64) (Uint128, bool) { return Uint128{Lo: x}, true }

// DecodeLE reads a V out of a ByteWidth()-length little-endian buffer.
// A type switch on the zero value picks the decoder for each of the five
// concrete types above; there is no reflection on the hot path. Any other
// type implementing Integer decodes as its zero value.
func DecodeLE[V Integer](buf []byte) V {
	var zero V
	switch any(zero).(type) {
	case Uint8:
		return any(DecodeUint8(buf)).(V)
	case Uint16:
		return any(DecodeUint16(buf)).(V)
	case Uint32:
		return any(DecodeUint32(buf)).(V)
	case Uint64:
		return any(DecodeUint64(buf)).(V)
	case Uint128:
		return any(DecodeUint128(buf)).(V)
	default:
		return zero
	}
}
