package omegalz

import (
	"fmt"
	"strings"

	"github.com/chronos-tachyon/assert"
)

// Bits is an append-only sequence of bits.  Bits are packed most
// significant first; the unused low bits of the final byte are always zero.
//
// The zero value is an empty sequence ready to use.
type Bits struct {
	buf []byte
	n   int
}

// BitsFromBytes returns the sequence consisting of every bit of p, most
// significant bit of p[0] first.
func BitsFromBytes(p []byte) Bits {
	buf := make([]byte, len(p))
	copy(buf, p)
	return Bits{buf: buf, n: len(buf) * 8}
}

// ParseBits parses a string of '0' and '1' characters.
func ParseBits(str string) (Bits, error) {
	var b Bits
	b.Grow(len(str))
	for i := 0; i < len(str); i++ {
		switch str[i] {
		case '0':
			b.AppendBit(0)
		case '1':
			b.AppendBit(1)
		default:
			return Bits{}, fmt.Errorf("%w: character %q at offset %d is not a bit", ErrInvalidInput, str[i], i)
		}
	}
	return b, nil
}

// MustParseBits is like ParseBits but panics on error.
func MustParseBits(str string) Bits {
	b, err := ParseBits(str)
	if err != nil {
		panic(err)
	}
	return b
}

// Len returns the number of bits in the sequence.
func (b Bits) Len() int {
	return b.n
}

// Grow ensures room for another n bits without reallocating.
func (b *Bits) Grow(n int) {
	need := (b.n + n + 7) / 8
	if need > cap(b.buf) {
		buf := make([]byte, len(b.buf), need)
		copy(buf, b.buf)
		b.buf = buf
	}
}

// AppendBit appends a single bit.  Only the lowest bit of bit is used.
func (b *Bits) AppendBit(bit uint8) {
	if b.n&7 == 0 {
		b.buf = append(b.buf, 0)
	}
	if bit&1 != 0 {
		b.buf[b.n>>3] |= 0x80 >> uint(b.n&7)
	}
	b.n++
}

// AppendUint appends the low width bits of v, most significant first.
func (b *Bits) AppendUint(v uint64, width int) {
	assert.Assertf(width >= 0 && width <= 64, "width %d out of range [0, 64]", width)
	b.Grow(width)
	for i := width - 1; i >= 0; i-- {
		b.AppendBit(uint8(v >> uint(i)))
	}
}

// AppendCode appends every bit of hc.
func (b *Bits) AppendCode(hc Code) {
	b.AppendUint(hc.Bits, int(hc.Size))
}

// AppendBits appends every bit of other.
func (b *Bits) AppendBits(other Bits) {
	b.Grow(other.n)
	for i := 0; i < other.n; i++ {
		b.AppendBit(other.at(i))
	}
}

func (b Bits) at(i int) uint8 {
	return (b.buf[i>>3] >> (7 - uint(i&7))) & 1
}

// Bit returns the bit at position pos.
func (b Bits) Bit(pos int) (uint8, error) {
	if pos < 0 || pos >= b.n {
		return 0, fmt.Errorf("%w: bit %d of %d", ErrTruncated, pos, b.n)
	}
	return b.at(pos), nil
}

// Uint reads width bits starting at pos as an unsigned big-endian number.
func (b Bits) Uint(pos int, width int) (uint64, error) {
	if width < 0 || width > 64 {
		return 0, fmt.Errorf("%w: cannot read %d bits into a uint64", ErrBoundsExceeded, width)
	}
	if pos < 0 || pos > b.n-width {
		return 0, fmt.Errorf("%w: bits [%d, %d) of %d", ErrTruncated, pos, pos+width, b.n)
	}
	var v uint64
	for i := pos; i < pos+width; i++ {
		v = v<<1 | uint64(b.at(i))
	}
	return v, nil
}

// Slice returns a copy of the bits in [start, end).
func (b Bits) Slice(start, end int) Bits {
	assert.Assertf(start >= 0 && start <= end && end <= b.n, "slice [%d, %d) out of range [0, %d)", start, end, b.n)
	var out Bits
	out.Grow(end - start)
	for i := start; i < end; i++ {
		out.AppendBit(b.at(i))
	}
	return out
}

// Bytes returns the packed bits.  The final byte is zero-padded on the low
// side.
func (b Bits) Bytes() []byte {
	out := make([]byte, len(b.buf))
	copy(out, b.buf)
	return out
}

// Equal returns true iff both sequences hold the same bits.
func (b Bits) Equal(other Bits) bool {
	if b.n != other.n {
		return false
	}
	for i := range b.buf {
		if b.buf[i] != other.buf[i] {
			return false
		}
	}
	return true
}

// String returns the sequence as '0' and '1' characters.
func (b Bits) String() string {
	var sb strings.Builder
	sb.Grow(b.n)
	for i := 0; i < b.n; i++ {
		sb.WriteByte('0' + b.at(i))
	}
	return sb.String()
}

var _ fmt.Stringer = Bits{}
