package omegalz

import (
	"errors"
	"math/rand"
	"strings"
	"testing"
)

// exampleStream is "aacaacabcaba" encoded as [a a c (3,4) b (3,3) a].
const exampleStream = exampleHeader + "00011111111010011000100100001101111"

func makeTestDecoder(t *testing.T) Decoder {
	t.Helper()
	var d Decoder
	if err := d.Init(makeExampleTable(t), Options{}); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	return d
}

func TestDecoder_Decode(t *testing.T) {
	d := makeTestDecoder(t)

	type testRow struct {
		bits string
		sym  Symbol
		size int
	}

	testData := [...]testRow{
		{bits: "1", sym: 'a', size: 1},
		{bits: "10", sym: 'a', size: 1},
		{bits: "00", sym: 'b', size: 2},
		{bits: "011", sym: 'c', size: 2},
	}
	for _, row := range testData {
		t.Run(row.bits, func(t *testing.T) {
			sym, size, err := d.Decode(MustParseBits(row.bits), 0)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if sym != row.sym {
				t.Errorf("expected symbol %v, got %v", row.sym, sym)
			}
			if size != row.size {
				t.Errorf("expected size %d, got %d", row.size, size)
			}
		})
	}

	if _, _, err := d.Decode(MustParseBits("0"), 0); !errors.Is(err, ErrTruncated) {
		t.Errorf("expected ErrTruncated, got %v", err)
	}
}

func TestDecoder_Dump(t *testing.T) {
	d := makeTestDecoder(t)

	expectDump := strings.Join([]string{
		"Decoder{\n",
		"\tMaxSize() = 2\n",
		"\tNodes() = 5\n",
		"\tDecode(\"1\") = 'a'\n",
		"\tDecode(\"00\") = 'b'\n",
		"\tDecode(\"01\") = 'c'\n",
		"}\n",
	}, "")

	var buf strings.Builder
	_, _ = d.Dump(&buf)
	actualDump := buf.String()

	if expectDump != actualDump {
		t.Errorf("wrong output:\n\texpect: %s\n\tactual: %s", expectDump, actualDump)
	}
}

func TestDecoder_InitRejectsOverlap(t *testing.T) {
	var table Table
	table.set('a', MakeCode(1, 1))
	table.set('b', MakeCode(2, 2))

	var d Decoder
	if err := d.Init(table, Options{}); !errors.Is(err, ErrMalformedHeader) {
		t.Errorf("expected ErrMalformedHeader, got %v", err)
	}
}

func TestDecoder_SingleSymbolEmptyCode(t *testing.T) {
	table, err := BuildTable(makeTestFrequencies(map[Symbol]uint64{'q': 2}))
	if err != nil {
		t.Fatalf("BuildTable failed: %v", err)
	}

	var d Decoder
	if err := d.Init(table, Options{}); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	sym, size, err := d.Decode(Bits{}, 0)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if sym != 'q' || size != 0 {
		t.Errorf("expected ('q', 0), got (%v, %d)", sym, size)
	}
}

func TestDecode_Example(t *testing.T) {
	actual, err := Decode(MustParseBits(exampleStream), Options{})
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if exampleText != actual {
		t.Errorf("wrong output:\n\texpect: %s\n\tactual: %s", exampleText, actual)
	}
}

func TestDecode_ExampleTokens(t *testing.T) {
	tokens := []Token{
		Literal('a'), Literal('a'), Literal('c'), Match(3, 4),
		Literal('b'), Literal('c'), Literal('a'), Literal('b'), Literal('a'),
	}

	b, err := EncodeText(exampleText, tokens)
	if err != nil {
		t.Fatalf("EncodeText failed: %v", err)
	}

	expect := exampleHeader + "0011001111110100110001001001011110011"
	if actual := b.String(); expect != actual {
		t.Errorf("wrong encoding:\n\texpect: %s\n\tactual: %s", expect, actual)
	}

	actual, err := Decode(b, Options{})
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if exampleText != actual {
		t.Errorf("wrong output:\n\texpect: %s\n\tactual: %s", exampleText, actual)
	}
}

func TestDecode_MatchBeforeStart(t *testing.T) {
	b, err := EncodeText(exampleText, []Token{Literal('a'), Literal('c'), Match(5, 1)})
	if err != nil {
		t.Fatalf("EncodeText failed: %v", err)
	}
	_, err = Decode(b, Options{})
	if !errors.Is(err, ErrMalformedToken) {
		t.Errorf("expected ErrMalformedToken, got %v", err)
	}
}

func TestDecode_UnknownCodeword(t *testing.T) {
	table, err := MakeTable(map[Symbol]Code{'a': MakeCode(1, 1), 'b': MakeCode(2, 0)})
	if err != nil {
		t.Fatalf("MakeTable failed: %v", err)
	}

	var b Bits
	if err := AppendHeader(&b, table); err != nil {
		t.Fatalf("AppendHeader failed: %v", err)
	}
	b.AppendBits(MustParseBits("1" + "1" + "01"))

	_, err = Decode(b, Options{})
	if !errors.Is(err, ErrMalformedToken) {
		t.Errorf("expected ErrMalformedToken, got %v", err)
	}
}

func TestDecode_Truncated(t *testing.T) {
	for cut := len(exampleHeader); cut < len(exampleStream); cut++ {
		_, err := Decode(MustParseBits(exampleStream[:cut]), Options{})
		if !errors.Is(err, ErrMalformedToken) {
			t.Errorf("cut at %d: expected ErrMalformedToken, got %v", cut, err)
		}
	}
}

func TestDecode_BoundsExceeded(t *testing.T) {
	b := MustParseBits(exampleHeader + "1" + "0" + strings.Repeat("0", 200))
	_, err := Decode(b, Options{})
	if !errors.Is(err, ErrMalformedToken) {
		t.Errorf("expected ErrMalformedToken, got %v", err)
	}
	if !errors.Is(err, ErrBoundsExceeded) {
		t.Errorf("expected ErrBoundsExceeded, got %v", err)
	}
}

// greedyTokens is a naive match finder used to produce test streams with
// back-references, including overlapping ones.
func greedyTokens(text string) []Token {
	const minMatch = 3
	var tokens []Token
	for i := 0; i < len(text); {
		bestOffset, bestLength := 0, 0
		for start := 0; start < i; start++ {
			length := 0
			for i+length < len(text) && text[start+length] == text[i+length] {
				length++
			}
			if length > bestLength {
				bestOffset, bestLength = i-start, length
			}
		}
		if bestLength >= minMatch {
			tokens = append(tokens, Match(uint64(bestOffset), uint64(bestLength)))
			i += bestLength
			continue
		}
		tokens = append(tokens, Literal(Symbol(text[i])))
		i++
	}
	return tokens
}

func TestDecode_RoundTrip(t *testing.T) {
	texts := []string{
		exampleText,
		"z",
		"zzzzzzzzzzzzzzzzzzzz",
		"abababababababab",
		"gray and miserable",
		"It was the best of times, it was the worst of times, it was the age of wisdom, it was the age of foolishness",
	}

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		alphabet := 1 + rng.Intn(NumSymbols)
		var sb strings.Builder
		for j := 0; j < 1+rng.Intn(300); j++ {
			sb.WriteByte(byte(MinSymbol) + byte(rng.Intn(alphabet)))
		}
		texts = append(texts, sb.String())
	}

	for _, text := range texts {
		for _, tokenize := range []func(string) []Token{greedyTokens, mustLiteralTokens} {
			b, err := EncodeText(text, tokenize(text))
			if err != nil {
				t.Fatalf("EncodeText(%q) failed: %v", text, err)
			}
			actual, err := Decode(b, Options{})
			if err != nil {
				t.Fatalf("Decode(%q) failed: %v", text, err)
			}
			if text != actual {
				t.Errorf("wrong output:\n\texpect: %s\n\tactual: %s", text, actual)
			}
		}
	}
}

func mustLiteralTokens(text string) []Token {
	tokens, err := LiteralTokens(text)
	if err != nil {
		panic(err)
	}
	return tokens
}

func TestCompress(t *testing.T) {
	b, err := Compress("mississippi")
	if err != nil {
		t.Fatalf("Compress failed: %v", err)
	}
	actual, err := Decode(b, DefaultOptions())
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if actual != "mississippi" {
		t.Errorf("wrong output: expected mississippi, got %s", actual)
	}

	if _, err := Compress(""); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for empty text, got %v", err)
	}
}
