package omegalz

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/icza/bitio"
)

// Format selects how a bit sequence is stored in a file.
type Format uint8

const (
	// TextFormat stores one ASCII '0' or '1' per bit.
	TextFormat Format = iota

	// PackedFormat stores eight bits per byte, most significant first.
	// The final byte is zero-padded; the token count bounds the body, so
	// the decoder never looks at the padding.
	PackedFormat
)

// ParseFormat parses "text" or "packed".
func ParseFormat(str string) (Format, error) {
	switch str {
	case "text":
		return TextFormat, nil
	case "packed":
		return PackedFormat, nil
	default:
		return 0, fmt.Errorf("%w: unknown format %q", ErrInvalidInput, str)
	}
}

// String returns the name of the format.
func (f Format) String() string {
	switch f {
	case TextFormat:
		return "text"
	case PackedFormat:
		return "packed"
	default:
		return fmt.Sprintf("Format(%d)", uint8(f))
	}
}

// WriteBits writes b to w in the given format.
func WriteBits(w io.Writer, b Bits, f Format) error {
	switch f {
	case TextFormat:
		return WriteText(w, b)
	case PackedFormat:
		return WritePacked(w, b)
	default:
		return fmt.Errorf("%w: unknown format %v", ErrInvalidInput, f)
	}
}

// ReadBits reads a bit sequence from r in the given format.
func ReadBits(r io.Reader, f Format) (Bits, error) {
	switch f {
	case TextFormat:
		return ReadText(r)
	case PackedFormat:
		return ReadPacked(r)
	default:
		return Bits{}, fmt.Errorf("%w: unknown format %v", ErrInvalidInput, f)
	}
}

// WriteText writes b as '0' and '1' characters.
func WriteText(w io.Writer, b Bits) error {
	_, err := io.WriteString(w, b.String())
	return err
}

// ReadText reads '0' and '1' characters from r.  ASCII whitespace is
// skipped; any other character is rejected with ErrInvalidInput.
func ReadText(r io.Reader) (Bits, error) {
	br := bufio.NewReader(r)
	var b Bits
	var offset int
	for {
		ch, err := br.ReadByte()
		if errors.Is(err, io.EOF) {
			return b, nil
		}
		if err != nil {
			return Bits{}, err
		}
		switch ch {
		case '0':
			b.AppendBit(0)
		case '1':
			b.AppendBit(1)
		case ' ', '\t', '\r', '\n':
			// pass
		default:
			return Bits{}, fmt.Errorf("%w: character %q at offset %d is not a bit", ErrInvalidInput, ch, offset)
		}
		offset++
	}
}

// WritePacked writes b packed eight bits per byte.
func WritePacked(w io.Writer, b Bits) error {
	bw := bitio.NewWriter(w)
	for pos := 0; pos < b.Len(); pos += 32 {
		width := min(32, b.Len()-pos)
		v, err := b.Uint(pos, width)
		if err != nil {
			return err
		}
		if err := bw.WriteBits(v, uint8(width)); err != nil {
			return err
		}
	}
	return bw.Close()
}

// ReadPacked reads every byte of r as eight bits.
func ReadPacked(r io.Reader) (Bits, error) {
	br := bitio.NewReader(r)
	var b Bits
	for {
		v, err := br.ReadBits(8)
		if errors.Is(err, io.EOF) {
			return b, nil
		}
		if err != nil {
			return Bits{}, err
		}
		b.AppendUint(v, 8)
	}
}
