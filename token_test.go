package omegalz

import (
	"errors"
	"testing"
)

func TestReadTokens(t *testing.T) {
	b := MustParseBits(exampleStream)
	table, n, err := ReadHeader(b, 0, Options{})
	if err != nil {
		t.Fatalf("ReadHeader failed: %v", err)
	}

	tokens, consumed, err := ReadTokens(b, n, table, Options{})
	if err != nil {
		t.Fatalf("ReadTokens failed: %v", err)
	}
	if expect := b.Len() - n; consumed != expect {
		t.Errorf("expected %d bits consumed, got %d", expect, consumed)
	}

	expect := []Token{Literal('a'), Literal('a'), Literal('c'), Match(3, 4), Literal('b'), Match(3, 3), Literal('a')}
	if len(expect) != len(tokens) {
		t.Fatalf("wrong tokens:\n\texpect: %v\n\tactual: %v", expect, tokens)
	}
	for i := range expect {
		if expect[i] != tokens[i] {
			t.Errorf("wrong tokens:\n\texpect: %v\n\tactual: %v", expect, tokens)
			break
		}
	}

	var again Bits
	if err := AppendHeader(&again, table); err != nil {
		t.Fatalf("AppendHeader failed: %v", err)
	}
	if err := AppendTokens(&again, table, tokens); err != nil {
		t.Fatalf("AppendTokens failed: %v", err)
	}
	if !again.Equal(b) {
		t.Errorf("re-encoding differs:\n\texpect: %s\n\tactual: %s", b, again)
	}
}

func TestAppendTokens_Invalid(t *testing.T) {
	table := makeExampleTable(t)

	type testRow struct {
		name   string
		tokens []Token
	}

	testData := [...]testRow{
		{name: "empty", tokens: nil},
		{name: "unknown-symbol", tokens: []Token{Literal('z')}},
		{name: "zero-offset", tokens: []Token{Literal('a'), Match(0, 2)}},
		{name: "zero-length", tokens: []Token{Literal('a'), Match(1, 0)}},
		{name: "unknown-kind", tokens: []Token{{Kind: TokenKind(9)}}},
	}
	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			var b Bits
			if err := AppendTokens(&b, table, row.tokens); !errors.Is(err, ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestToken_String(t *testing.T) {
	type testRow struct {
		tok    Token
		expect string
	}

	testData := [...]testRow{
		{tok: Literal('a'), expect: "'a'"},
		{tok: Literal(' '), expect: "' '"},
		{tok: Match(3, 4), expect: "(3,4)"},
	}
	for _, row := range testData {
		if actual := row.tok.String(); row.expect != actual {
			t.Errorf("wrong output:\n\texpect: %s\n\tactual: %s", row.expect, actual)
		}
	}
}

func TestReconstructor_Overlap(t *testing.T) {
	var r Reconstructor
	r.Literal('a')
	r.Literal('b')
	if err := r.Copy(2, 5); err != nil {
		t.Fatalf("Copy failed: %v", err)
	}
	if expect, actual := "abababa", r.String(); expect != actual {
		t.Errorf("wrong output:\n\texpect: %s\n\tactual: %s", expect, actual)
	}

	if err := r.Apply(Match(1, 3)); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if expect, actual := "abababaaaa", r.String(); expect != actual {
		t.Errorf("wrong output:\n\texpect: %s\n\tactual: %s", expect, actual)
	}
}

func TestReconstructor_BadOffset(t *testing.T) {
	var r Reconstructor
	r.Literal('a')

	for _, offset := range []uint64{0, 2, 1 << 40} {
		if err := r.Copy(offset, 1); !errors.Is(err, ErrMalformedToken) {
			t.Errorf("offset %d: expected ErrMalformedToken, got %v", offset, err)
		}
	}
	if r.Len() != 1 {
		t.Errorf("failed copies must not change output, got %q", r.String())
	}
}

func TestDecode_MaxOutput(t *testing.T) {
	type testRow struct {
		name      string
		tokens    []Token
		maxOutput int
		expect    string
	}

	testData := [...]testRow{
		{name: "at-limit", tokens: []Token{Literal('a'), Match(1, 3)}, maxOutput: 4, expect: "aaaa"},
		{name: "match-past-limit", tokens: []Token{Literal('a'), Match(1, 4)}, maxOutput: 4},
		{name: "literal-past-limit", tokens: []Token{Literal('a'), Literal('b'), Literal('a'), Literal('b'), Literal('a')}, maxOutput: 4},
		{name: "default-limit", tokens: []Token{Literal('a'), Match(1, 1<<26)}},
		{name: "huge-length", tokens: []Token{Literal('b'), Match(1, 1<<63 - 1)}},
	}
	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			b, err := EncodeText("ab", row.tokens)
			if err != nil {
				t.Fatalf("EncodeText failed: %v", err)
			}

			actual, err := Decode(b, Options{MaxOutput: row.maxOutput})
			if row.expect != "" {
				if err != nil {
					t.Fatalf("Decode failed: %v", err)
				}
				if row.expect != actual {
					t.Errorf("wrong output:\n\texpect: %s\n\tactual: %s", row.expect, actual)
				}
				return
			}
			if !errors.Is(err, ErrMalformedToken) {
				t.Errorf("expected ErrMalformedToken, got %v", err)
			}
			if !errors.Is(err, ErrBoundsExceeded) {
				t.Errorf("expected ErrBoundsExceeded, got %v", err)
			}
		})
	}
}

func TestDecoder_DecodeBodyLeavesOutputOnLimit(t *testing.T) {
	var e Encoder
	if err := e.Init("ab"); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	var b Bits
	if err := AppendTokens(&b, e.Table(), []Token{Literal('a'), Literal('b'), Match(2, 10)}); err != nil {
		t.Fatalf("AppendTokens failed: %v", err)
	}

	var d Decoder
	if err := d.Init(e.Table(), Options{MaxOutput: 8}); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	var r Reconstructor
	if _, err := d.DecodeBody(b, 0, &r); !errors.Is(err, ErrBoundsExceeded) {
		t.Errorf("expected ErrBoundsExceeded, got %v", err)
	}
	if expect, actual := "ab", r.String(); expect != actual {
		t.Errorf("wrong output:\n\texpect: %s\n\tactual: %s", expect, actual)
	}
}
