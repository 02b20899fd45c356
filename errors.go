package omegalz

import (
	"errors"
)

var (
	// ErrInvalidInput is returned when the caller hands the encoder
	// something it cannot represent: empty text, bytes outside the
	// alphabet, zero-valued integers, or tokens naming unknown symbols.
	ErrInvalidInput = errors.New("omegalz: invalid input")

	// ErrMalformedHeader is returned when the header's declared symbol
	// count is inconsistent with the available bits, or when a symbol or
	// codeword inside it is invalid.
	ErrMalformedHeader = errors.New("omegalz: malformed header")

	// ErrMalformedToken is returned when the token stream contains a
	// literal matching no codeword, a match reaching before the start of
	// the output, or a truncated integer.
	ErrMalformedToken = errors.New("omegalz: malformed token stream")

	// ErrBoundsExceeded is returned when an Elias-omega group is longer
	// than the configured maximum.  This almost always indicates corrupt
	// input.
	ErrBoundsExceeded = errors.New("omegalz: Elias-omega group length exceeds bound")

	// ErrTruncated is returned when a read runs past the end of the bit
	// sequence.
	ErrTruncated = errors.New("omegalz: unexpected end of bit sequence")
)
