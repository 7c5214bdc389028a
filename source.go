package koi

import (
	"bufio"
	"io"
	"os"
	"strings"
)

// InputSource is the single capability the parser needs from wherever its
// bytes come from: produce the next logical line, or signal end of input,
// plus a name for error tracebacks (spec.md §4.3, §9 "Input-source
// polymorphism").
type InputSource interface {
	// NextLine returns the next physical line (terminator stripped), ok=false
	// at end of input, or a non-nil err on a read failure.
	NextLine() (line string, ok bool, err error)
	SourceName() string
}

// splitLines breaks data on \n, \r\n, or a bare \r (spec.md §6: "a bare \r
// is treated as \n for classification"), returning lines without their
// terminators. The final line is included even without a trailing
// terminator, per spec.md §4.3.
func splitLines(data string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(data); i++ {
		switch data[i] {
		case '\n':
			lines = append(lines, data[start:i])
			start = i + 1
		case '\r':
			lines = append(lines, data[start:i])
			if i+1 < len(data) && data[i+1] == '\n' {
				i++
			}
			start = i + 1
		}
	}
	if start < len(data) || len(data) == 0 {
		lines = append(lines, data[start:])
	}
	return lines
}

// StringSource is an in-memory InputSource over a fixed buffer.
type StringSource struct {
	name  string
	lines []string
	i     int
}

// NewStringSource splits data into lines up front (spec.md §4.3).
func NewStringSource(name, data string) *StringSource {
	return &StringSource{name: name, lines: splitLines(data)}
}

func (s *StringSource) SourceName() string { return s.name }

func (s *StringSource) NextLine() (string, bool, error) {
	if s.i >= len(s.lines) {
		return "", false, nil
	}
	line := s.lines[s.i]
	s.i++
	return line, true, nil
}

// lineScanner adapts a bufio.Reader into line-at-a-time reads honoring the
// same \n / \r\n / bare-\r rule as splitLines, without reading the whole
// stream into memory (spec.md §8 "Streaming": O(max line length) memory).
type lineScanner struct {
	r   *bufio.Reader
	eof bool
}

func newLineScanner(r io.Reader) *lineScanner {
	return &lineScanner{r: bufio.NewReaderSize(r, 64*1024)}
}

// next reads one logical line, terminated by \n, \r\n, or a bare \r
// (spec.md §6), without requiring the terminator on the final line.
func (s *lineScanner) next() (string, bool, error) {
	if s.eof {
		return "", false, nil
	}
	var b strings.Builder
	for {
		c, err := s.r.ReadByte()
		if err != nil {
			s.eof = true
			if err == io.EOF {
				if b.Len() == 0 {
					return "", false, nil
				}
				return b.String(), true, nil
			}
			return "", false, newError(ErrIoError, "read error: %s", err)
		}
		switch c {
		case '\n':
			return b.String(), true, nil
		case '\r':
			if next, peekErr := s.r.Peek(1); peekErr == nil && len(next) == 1 && next[0] == '\n' {
				s.r.ReadByte()
			}
			return b.String(), true, nil
		default:
			b.WriteByte(c)
		}
	}
}

// FileSource reads a UTF-8-encoded file line by line (spec.md §4.3).
type FileSource struct {
	name string
	f    *os.File
	sc   *lineScanner
}

// NewFileSource opens path for reading; bytes are assumed UTF-8.
func NewFileSource(path string) (*FileSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, newError(ErrIoError, "open %q: %s", path, err)
	}
	return &FileSource{name: path, f: f, sc: newLineScanner(f)}, nil
}

func (s *FileSource) SourceName() string { return s.name }

func (s *FileSource) NextLine() (string, bool, error) {
	return s.sc.next()
}

// Close releases the underlying file handle.
func (s *FileSource) Close() error { return s.f.Close() }

// EncodedFileSource wraps a file with the decoding reader of decode.go,
// converting from a named codec to UTF-8 on the fly (spec.md §4.3, §4.4).
type EncodedFileSource struct {
	name string
	f    *os.File
	dec  *DecodingReader
	sc   *lineScanner
}

// NewEncodedFileSource opens path and decodes it from codec under strategy.
func NewEncodedFileSource(path, codec string, strategy ErrorStrategy) (*EncodedFileSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, newError(ErrIoError, "open %q: %s", path, err)
	}
	dec, err := NewDecodingReader(f, codec, strategy)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &EncodedFileSource{name: path, f: f, dec: dec, sc: newLineScanner(dec)}, nil
}

func (s *EncodedFileSource) SourceName() string { return s.name }

func (s *EncodedFileSource) NextLine() (string, bool, error) {
	return s.sc.next()
}

func (s *EncodedFileSource) Close() error { return s.f.Close() }

// CallbackSource forwards to externally supplied function values, the Go
// analogue of spec.md §4.3's "function pointers with opaque user data" (Go
// closures already carry their own captured state, so no separate userdata
// parameter is needed).
type CallbackSource struct {
	NextLineFunc func() (line string, ok bool, err error)
	NameFunc     func() string
}

func (s *CallbackSource) SourceName() string {
	if s.NameFunc == nil {
		return ""
	}
	return s.NameFunc()
}

func (s *CallbackSource) NextLine() (string, bool, error) {
	return s.NextLineFunc()
}
