package omegalz

import (
	"fmt"
	"strconv"

	"github.com/chronos-tachyon/assert"
)

// maxBitsPerCode is the longest codeword this package can represent.
const maxBitsPerCode = 64

// Code represents a Huffman codeword.
type Code struct {
	// Size holds the number of valid bits.
	Size byte

	// Bits holds the actual values of the bits.  The first bit of the
	// codeword is the most significant of the Size low bits.
	Bits uint64
}

// MakeCode is a convenience function that constructs a Code.
func MakeCode(size byte, bits uint64) Code {
	assert.Assertf(size <= maxBitsPerCode, "size %d > maxBitsPerCode %d", size, maxBitsPerCode)
	if size < maxBitsPerCode {
		bits &= (uint64(1) << size) - 1
	}
	return Code{Size: size, Bits: bits}
}

// ParseCode parses a string of '0' and '1' characters into a Code.
func ParseCode(str string) (Code, error) {
	if len(str) > maxBitsPerCode {
		return Code{}, fmt.Errorf("%w: codeword %q is longer than %d bits", ErrInvalidInput, str, maxBitsPerCode)
	}
	var hc Code
	for i := 0; i < len(str); i++ {
		switch str[i] {
		case '0':
			hc = hc.Append(0)
		case '1':
			hc = hc.Append(1)
		default:
			return Code{}, fmt.Errorf("%w: codeword %q contains %q", ErrInvalidInput, str, str[i])
		}
	}
	return hc, nil
}

// At returns the i'th bit of the codeword, counting from the first.
func (hc Code) At(i int) uint8 {
	return uint8(hc.Bits>>(int(hc.Size)-1-i)) & 1
}

// Append returns the Code extended by one more bit.
func (hc Code) Append(bit uint8) Code {
	assert.Assertf(hc.Size < maxBitsPerCode, "codeword already holds %d bits", hc.Size)
	return Code{Size: hc.Size + 1, Bits: hc.Bits<<1 | uint64(bit&1)}
}

// HasPrefix returns true iff prefix is a prefix of this Code.  Every Code
// has the empty Code as a prefix, including itself.
func (hc Code) HasPrefix(prefix Code) bool {
	if prefix.Size > hc.Size {
		return false
	}
	return hc.Bits>>(hc.Size-prefix.Size) == prefix.Bits
}

// String returns the string representation of this Code.
func (hc Code) String() string {
	if hc.Size == 0 {
		return "\"\""
	}
	format := "%0" + strconv.FormatUint(uint64(hc.Size), 10) + "b"
	return strconv.Quote(fmt.Sprintf(format, hc.Bits))
}

var _ fmt.Stringer = Code{}
