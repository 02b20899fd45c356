package omegalz

import (
	"fmt"
)

// maxOmegaGroups is enough groups to encode any uint64: the group widths
// for 2^64-1 are 64, 6, 3, 2 and 1.
const maxOmegaGroups = 8

// AppendOmega appends the Elias-omega encoding of n to b.
//
// The innermost group is the binary representation of n.  While the most
// recently added group is longer than one bit, its length minus one is
// prepended as a new group whose leading bit is flipped to 0.
//
func AppendOmega(b *Bits, n uint64) error {
	if n == 0 {
		return fmt.Errorf("%w: Elias-omega cannot encode 0", ErrInvalidInput)
	}

	var groups [maxOmegaGroups]Code
	numGroups := 0

	width := bitLen(n)
	groups[numGroups] = MakeCode(byte(width), n)
	numGroups++

	for length := width - 1; length > 0; length = width - 1 {
		width = bitLen(uint64(length))
		leading := uint64(1) << (width - 1)
		groups[numGroups] = MakeCode(byte(width), uint64(length)&^leading)
		numGroups++
	}

	for i := numGroups - 1; i >= 0; i-- {
		b.AppendCode(groups[i])
	}
	return nil
}

// OmegaLen returns the number of bits AppendOmega writes for n, or 0 if n
// cannot be encoded.
func OmegaLen(n uint64) int {
	if n == 0 {
		return 0
	}
	width := bitLen(n)
	total := width
	for width > 1 {
		width = bitLen(uint64(width - 1))
		total += width
	}
	return total
}

// ReadOmega decodes one Elias-omega integer from b starting at bit pos.  It
// returns the value and the number of bits consumed.
//
// A length group that would announce a next group longer than maxGroup bits
// fails with ErrBoundsExceeded, as does a final group too wide for a uint64.
// Values of maxGroup <= 0 select DefaultMaxGroupBits.
//
func ReadOmega(b Bits, pos int, maxGroup int) (uint64, int, error) {
	if maxGroup <= 0 {
		maxGroup = DefaultMaxGroupBits
	}

	cursor := pos
	read := 1
	for {
		bit, err := b.Bit(cursor)
		if err != nil {
			return 0, 0, fmt.Errorf("reading Elias-omega integer at bit %d: %w", pos, err)
		}
		if bit == 1 {
			break
		}

		// A length group: the leading 0 stands in for a 1.
		if read-1 > 63 {
			return 0, 0, fmt.Errorf("%w: Elias-omega integer at bit %d has a %d-bit length group", ErrBoundsExceeded, pos, read)
		}
		rest, err := b.Uint(cursor+1, read-1)
		if err != nil {
			return 0, 0, fmt.Errorf("reading Elias-omega integer at bit %d: %w", pos, err)
		}
		m := uint64(1)<<(read-1) | rest
		if m >= uint64(maxGroup) {
			return 0, 0, fmt.Errorf("%w: Elias-omega integer at bit %d announces a %d-bit group, max %d", ErrBoundsExceeded, pos, m+1, maxGroup)
		}
		cursor += read
		read = int(m) + 1
	}

	if read > 64 {
		return 0, 0, fmt.Errorf("%w: Elias-omega integer at bit %d has a %d-bit value, max 64", ErrBoundsExceeded, pos, read)
	}
	value, err := b.Uint(cursor, read)
	if err != nil {
		return 0, 0, fmt.Errorf("reading Elias-omega integer at bit %d: %w", pos, err)
	}
	cursor += read
	return value, cursor - pos, nil
}
