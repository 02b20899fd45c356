package omegalz

import (
	"fmt"
	"strconv"
)

// Symbol represents one character of the printable ASCII alphabet.  Only
// symbols in [MinSymbol, MaxSymbol] are valid.
type Symbol byte

const (
	// MinSymbol is the first valid symbol (' ').
	MinSymbol = Symbol(32)

	// MaxSymbol is the last valid symbol ('~').
	MaxSymbol = Symbol(126)

	// NumSymbols is the size of the alphabet.
	NumSymbols = int(MaxSymbol-MinSymbol) + 1

	// SymbolBits is the fixed width of a symbol inside the header.
	SymbolBits = 7
)

// InvalidSymbol is returned by some functions to clearly indicate that no
// symbol is being returned.
const InvalidSymbol = Symbol(0xff)

// Valid returns true iff this symbol belongs to the alphabet.
func (s Symbol) Valid() bool {
	return s >= MinSymbol && s <= MaxSymbol
}

// String returns the quoted character for this symbol.
func (s Symbol) String() string {
	if !s.Valid() {
		return "Symbol(" + strconv.Itoa(int(s)) + ")"
	}
	return strconv.QuoteRune(rune(s))
}

func (s Symbol) index() int {
	return int(s - MinSymbol)
}

var _ fmt.Stringer = Symbol(0)

// Frequencies holds the number of occurrences of each symbol, indexed by
// Symbol - MinSymbol.
type Frequencies [NumSymbols]uint64

// CountFrequencies counts how often each symbol occurs in text.  Any byte
// outside the alphabet is rejected with ErrInvalidInput.
func CountFrequencies(text string) (Frequencies, error) {
	var freqs Frequencies
	for i := 0; i < len(text); i++ {
		sym := Symbol(text[i])
		if !sym.Valid() {
			return Frequencies{}, fmt.Errorf("%w: byte 0x%02x at offset %d is outside the printable alphabet", ErrInvalidInput, text[i], i)
		}
		freqs[sym.index()]++
	}
	return freqs, nil
}

// Of returns the count recorded for sym.
func (f *Frequencies) Of(sym Symbol) uint64 {
	if !sym.Valid() {
		return 0
	}
	return f[sym.index()]
}

// Add records n more occurrences of sym.
func (f *Frequencies) Add(sym Symbol, n uint64) {
	f[sym.index()] += n
}

// Distinct returns the number of symbols with a non-zero count.
func (f *Frequencies) Distinct() int {
	var n int
	for _, count := range f {
		if count != 0 {
			n++
		}
	}
	return n
}
