package omegalz

import (
	"fmt"
	"strconv"
)

// TokenKind distinguishes literals from matches.
type TokenKind uint8

const (
	// LiteralToken emits one symbol.
	LiteralToken TokenKind = iota

	// MatchToken copies Length symbols starting Offset symbols back.
	MatchToken
)

// String returns the name of the kind.
func (k TokenKind) String() string {
	switch k {
	case LiteralToken:
		return "literal"
	case MatchToken:
		return "match"
	default:
		return "TokenKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Token is one entry of the body: a literal symbol or an (offset, length)
// back-reference into output produced by earlier tokens.
type Token struct {
	Kind   TokenKind
	Symbol Symbol
	Offset uint64
	Length uint64
}

// Literal constructs a literal Token.
func Literal(sym Symbol) Token {
	return Token{Kind: LiteralToken, Symbol: sym}
}

// Match constructs a back-reference Token.
func Match(offset, length uint64) Token {
	return Token{Kind: MatchToken, Offset: offset, Length: length}
}

// String returns the string representation of this Token.
func (tok Token) String() string {
	if tok.Kind == MatchToken {
		return "(" + strconv.FormatUint(tok.Offset, 10) + "," + strconv.FormatUint(tok.Length, 10) + ")"
	}
	return tok.Symbol.String()
}

var _ fmt.Stringer = Token{}

// LiteralTokens returns one literal Token per byte of text.
func LiteralTokens(text string) ([]Token, error) {
	tokens := make([]Token, len(text))
	for i := 0; i < len(text); i++ {
		sym := Symbol(text[i])
		if !sym.Valid() {
			return nil, fmt.Errorf("%w: byte 0x%02x at offset %d is outside the printable alphabet", ErrInvalidInput, text[i], i)
		}
		tokens[i] = Literal(sym)
	}
	return tokens, nil
}

// AppendTokens serializes the body: the number of tokens, then for each
// token a flag bit followed by either the literal's codeword (flag 1) or the
// match offset and length (flag 0).
func AppendTokens(b *Bits, t Table, tokens []Token) error {
	if len(tokens) == 0 {
		return fmt.Errorf("%w: cannot serialize an empty token stream", ErrInvalidInput)
	}

	if err := AppendOmega(b, uint64(len(tokens))); err != nil {
		return err
	}
	for i, tok := range tokens {
		switch tok.Kind {
		case LiteralToken:
			hc, found := t.Lookup(tok.Symbol)
			if !found {
				return fmt.Errorf("%w: token %d: symbol %v is not in the code table", ErrInvalidInput, i, tok.Symbol)
			}
			b.AppendBit(1)
			b.AppendCode(hc)

		case MatchToken:
			if tok.Offset == 0 || tok.Length == 0 {
				return fmt.Errorf("%w: token %d: match %v must have non-zero offset and length", ErrInvalidInput, i, tok)
			}
			b.AppendBit(0)
			if err := AppendOmega(b, tok.Offset); err != nil {
				return err
			}
			if err := AppendOmega(b, tok.Length); err != nil {
				return err
			}

		default:
			return fmt.Errorf("%w: token %d: unknown kind %v", ErrInvalidInput, i, tok.Kind)
		}
	}
	return nil
}

// tokenReader walks the body one token at a time.
type tokenReader struct {
	bits      Bits
	start     int
	cursor    int
	decoder   *Decoder
	maxGroup  int
	count     uint64
	remaining uint64
}

func (tr *tokenReader) init(b Bits, pos int, d *Decoder) error {
	maxGroup := d.opts.maxGroupBits()
	count, n, err := ReadOmega(b, pos, maxGroup)
	if err != nil {
		return fmt.Errorf("%w: token count: %w", ErrMalformedToken, err)
	}
	*tr = tokenReader{
		bits:      b,
		start:     pos,
		cursor:    pos + n,
		decoder:   d,
		maxGroup:  maxGroup,
		count:     count,
		remaining: count,
	}
	return nil
}

// capacityHint bounds preallocation by what the remaining bits could hold.
func (tr *tokenReader) capacityHint() int {
	avail := uint64(tr.bits.Len() - tr.cursor)
	if tr.count < avail {
		return int(tr.count)
	}
	return int(avail)
}

func (tr *tokenReader) consumed() int {
	return tr.cursor - tr.start
}

func (tr *tokenReader) next() (Token, error) {
	index := tr.count - tr.remaining
	tokenPos := tr.cursor

	flag, err := tr.bits.Bit(tr.cursor)
	if err != nil {
		return Token{}, fmt.Errorf("%w: token %d of %d: flag: %w", ErrMalformedToken, index, tr.count, err)
	}
	tr.cursor++

	var tok Token
	if flag == 1 {
		sym, size, err := tr.decoder.Decode(tr.bits, tr.cursor)
		if err != nil {
			return Token{}, fmt.Errorf("%w: token %d of %d at bit %d: %w", ErrMalformedToken, index, tr.count, tokenPos, err)
		}
		tr.cursor += size
		tok = Literal(sym)
	} else {
		offset, n, err := ReadOmega(tr.bits, tr.cursor, tr.maxGroup)
		if err != nil {
			return Token{}, fmt.Errorf("%w: token %d of %d: match offset: %w", ErrMalformedToken, index, tr.count, err)
		}
		tr.cursor += n

		length, n, err := ReadOmega(tr.bits, tr.cursor, tr.maxGroup)
		if err != nil {
			return Token{}, fmt.Errorf("%w: token %d of %d: match length: %w", ErrMalformedToken, index, tr.count, err)
		}
		tr.cursor += n
		tok = Match(offset, length)
	}

	tr.remaining--
	return tok, nil
}

// ReadTokens parses the body starting at bit pos without resolving any
// back-references.  It returns the tokens and the number of bits consumed.
func ReadTokens(b Bits, pos int, t Table, opts Options) ([]Token, int, error) {
	var d Decoder
	if err := d.Init(t, opts); err != nil {
		return nil, 0, err
	}

	var tr tokenReader
	if err := tr.init(b, pos, &d); err != nil {
		return nil, 0, err
	}

	tokens := make([]Token, 0, tr.capacityHint())
	for tr.remaining != 0 {
		tok, err := tr.next()
		if err != nil {
			return nil, 0, err
		}
		tokens = append(tokens, tok)
	}
	return tokens, tr.consumed(), nil
}
