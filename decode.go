package koi

import (
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// ErrorStrategy controls how the decoding reader reacts to byte sequences
// that are invalid in the configured codec (spec.md §4.4).
type ErrorStrategy int

const (
	StrategyStrict ErrorStrategy = iota
	StrategyReplace
	StrategyIgnore
)

// DecodingReader streams an arbitrary-codec byte source into UTF-8, one
// read() call at a time, maintaining whatever partial-code-unit buffering
// the underlying transform needs across reads (spec.md §4.4, §9 "Encoding
// layer buffering"). It implements io.Reader so it composes with
// bufio.Reader/lineScanner exactly like a native UTF-8 file would.
//
// Grounded on other_examples/7f0c6322_cue-lang-cue__internal-encoding-
// encoding.go.go's `unicode.BOMOverride(unicode.UTF8.NewDecoder())` +
// `transform.NewReader` wiring; codec names are resolved the same
// name-to-encoding.Encoding way htmlindex (the WHATWG/HTML charset
// registry bundled with golang.org/x/text) resolves "utf-8", "utf-16",
// "gbk", and friends.
type DecodingReader struct {
	r        io.Reader
	strategy ErrorStrategy
	buf      []byte // pending decoded bytes not yet returned from Read
}

// NewDecodingReader wraps r, decoding bytes out of codec (e.g. "utf-8",
// "utf-16", "gbk") under strategy.
func NewDecodingReader(r io.Reader, codec string, strategy ErrorStrategy) (*DecodingReader, error) {
	enc, err := htmlindex.Get(codec)
	if err != nil {
		return nil, newError(ErrEncodingError, "unknown codec %q: %s", codec, err)
	}
	dec := transformDecoder(enc)
	return &DecodingReader{r: transform.NewReader(r, dec), strategy: strategy}, nil
}

func transformDecoder(enc encoding.Encoding) transform.Transformer {
	return enc.NewDecoder()
}

// Read implements io.Reader. Invalid byte sequences are, by construction of
// the underlying x/text decoder, already replaced with U+FFFD; Read then
// applies the configured strategy on top of that stream: Replace passes
// U+FFFD through unmodified, Ignore drops it, and Strict turns its
// presence into an EncodingError. This approximates "per sub-sequence"
// granularity (spec.md §8) at the level x/text already normalizes to.
func (d *DecodingReader) Read(p []byte) (int, error) {
	for len(d.buf) == 0 {
		raw := make([]byte, 4096)
		n, err := d.r.Read(raw)
		if n > 0 {
			chunk := raw[:n]
			switch d.strategy {
			case StrategyIgnore:
				chunk = stripReplacementChar(chunk)
			case StrategyStrict:
				if strings.ContainsRune(string(chunk), '�') {
					return 0, newError(ErrEncodingError, "invalid byte sequence for configured codec")
				}
			}
			d.buf = append(d.buf, chunk...)
		}
		if err != nil {
			if n == 0 {
				return 0, err
			}
			break
		}
		if len(d.buf) > 0 {
			break
		}
	}
	n := copy(p, d.buf)
	d.buf = d.buf[n:]
	return n, nil
}

func stripReplacementChar(b []byte) []byte {
	if !strings.ContainsRune(string(b), '�') {
		return b
	}
	return []byte(strings.ReplaceAll(string(b), "�", ""))
}
