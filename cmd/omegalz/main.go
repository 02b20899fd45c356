// Command omegalz encodes printable text into the omegalz bit format and
// decodes it back.
//
//     omegalz [flags] header IN OUT   write only the code table header
//     omegalz [flags] encode IN OUT   write header + literal-only body
//     omegalz [flags] decode IN OUT   reconstruct text
//
// Input text may contain only printable ASCII (' ' through '~').  A single
// trailing newline ("\n" or "\r\n") is dropped before encoding, so decoding
// yields the text without it.
//
package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"

	"github.com/chronos-tachyon/omegalz"
)

var (
	flagFormat   = flag.String("format", "text", "bit sequence file format: text or packed")
	flagMaxGroup = flag.Int("max-group", omegalz.DefaultMaxGroupBits, "maximum Elias-omega group length accepted while decoding")
	flagMaxOut   = flag.Int("max-output", omegalz.DefaultMaxOutput, "maximum number of symbols a stream may decode to")
	flagVerbose  = flag.Bool("v", false, "log progress to stderr")
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: omegalz [flags] header|encode|decode IN OUT\n")
	fmt.Fprintf(os.Stderr, "\nIN for header and encode must be printable ASCII; one trailing newline is dropped.\n\n")
	flag.PrintDefaults()
	os.Exit(2)
}

func main() {
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) != 3 {
		usage()
	}

	logg := newLogger(os.Stderr, *flagVerbose)

	format, err := omegalz.ParseFormat(*flagFormat)
	if err != nil {
		logg.Errorf("%v", err)
		os.Exit(2)
	}
	opts := omegalz.Options{MaxGroupBits: *flagMaxGroup, MaxOutput: *flagMaxOut}

	cmd, in, out := args[0], args[1], args[2]
	switch cmd {
	case "header":
		err = runHeader(logg, in, out, format)
	case "encode":
		err = runEncode(logg, in, out, format)
	case "decode":
		err = runDecode(logg, in, out, format, opts)
	default:
		usage()
	}
	if err != nil {
		logg.Errorf("%s %s: %v", cmd, in, err)
		os.Exit(1)
	}
}

func runHeader(logg Logger, in, out string, format omegalz.Format) error {
	text, err := readTextFile(in)
	if err != nil {
		return err
	}

	var e omegalz.Encoder
	if err := e.Init(text); err != nil {
		return err
	}

	var b omegalz.Bits
	if err := omegalz.AppendHeader(&b, e.Table()); err != nil {
		return err
	}
	logg.Infof("header: %d symbols, %d bits", e.Table().Len(), b.Len())
	return writeBitsFile(out, b, format)
}

func runEncode(logg Logger, in, out string, format omegalz.Format) error {
	text, err := readTextFile(in)
	if err != nil {
		return err
	}

	b, err := omegalz.Compress(text)
	if err != nil {
		return err
	}
	logg.Infof("encode: %d symbols -> %d bits", len(text), b.Len())
	return writeBitsFile(out, b, format)
}

func runDecode(logg Logger, in, out string, format omegalz.Format, opts omegalz.Options) error {
	f, err := os.Open(in)
	if err != nil {
		return err
	}
	b, err := omegalz.ReadBits(f, format)
	_ = f.Close()
	if err != nil {
		return err
	}

	text, err := omegalz.Decode(b, opts)
	if err != nil {
		return err
	}
	logg.Infof("decode: %d bits -> %d symbols", b.Len(), len(text))
	return os.WriteFile(out, []byte(text), 0o666)
}

func writeBitsFile(path string, b omegalz.Bits, format omegalz.Format) error {
	var buf bytes.Buffer
	if err := omegalz.WriteBits(&buf, b, format); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o666)
}

func readTextFile(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(trimFinalNewline(raw)), nil
}

// trimFinalNewline drops one trailing "\n" or "\r\n".
func trimFinalNewline(raw []byte) []byte {
	if n := len(raw); n > 0 && raw[n-1] == '\n' {
		raw = raw[:n-1]
		if n := len(raw); n > 0 && raw[n-1] == '\r' {
			raw = raw[:n-1]
		}
	}
	return raw
}
