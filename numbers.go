package koi

import (
	"regexp"
	"strconv"
	"strings"
)

// Regexes mirror spec.md §4.5's integer/float grammar directly. Grounded on
// the teacher's numRE/hexRE (ccl's lexer.go/ccl.go parseNum), split into one
// pattern per radix since KoiLang records which radix a literal used for
// round-trip (spec.md §4.5 "Numeric semantics"), which the teacher does not
// need to preserve.
var (
	intHexRE = regexp.MustCompile(`^-?0[xX][0-9a-fA-F]+$`)
	intOctRE = regexp.MustCompile(`^-?0[oO][0-7]+$`)
	intBinRE = regexp.MustCompile(`^-?0[bB][01]+$`)
	intDecRE = regexp.MustCompile(`^-?[0-9]+$`)
	floatRE  = regexp.MustCompile(`^-?(\d+\.\d*|\.\d+|\d+)([eE][-+]?\d+)?$`)

	identRE = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

var boolLiterals = map[string]bool{
	"true": true, "True": true, "TRUE": true,
	"false": false, "False": false, "FALSE": false,
}

// classifyWord turns a raw tokWord's text into a scalar Value, trying bool,
// then integer (by radix), then float, then falling back to a bare literal
// identifier. Order matches spec.md §4.5's scalar production list.
func classifyWord(text string) (*Value, error) {
	if b, ok := boolLiterals[text]; ok {
		return NewBool(b), nil
	}
	if v, ok, err := tryParseInt(text); ok || err != nil {
		return v, err
	}
	if isFloatLiteral(text) {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, newError(ErrInvalidNumber, "invalid float literal %q: %s", text, err)
		}
		return NewFloat(f), nil
	}
	if identRE.MatchString(text) {
		return NewLiteral(text), nil
	}
	return nil, newError(ErrInvalidNumber, "%q is not a valid literal, number, or bool", text)
}

// tryParseInt reports ok=true when text matches one of the integer
// productions; err is set (and ok stays true) on radix-specific overflow,
// distinguishing "not an integer at all" (ok=false, err=nil) from
// "integer but out of i64 range" (ok=true, err=NumberOverflow).
func tryParseInt(text string) (*Value, bool, error) {
	switch {
	case intHexRE.MatchString(text):
		return parseRadix(text, "0x", 16, RadixHex)
	case intOctRE.MatchString(text):
		return parseRadix(text, "0o", 8, RadixOctal)
	case intBinRE.MatchString(text):
		return parseRadix(text, "0b", 2, RadixBinary)
	case intDecRE.MatchString(text) && !isFloatLiteral(text):
		n, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return nil, true, newError(ErrNumberOverflow, "integer %q overflows 64 bits", text)
		}
		return NewInt(n, RadixDecimal), true, nil
	default:
		return nil, false, nil
	}
}

func parseRadix(text, prefix string, base int, radix Radix) (*Value, bool, error) {
	neg := strings.HasPrefix(text, "-")
	digits := text
	if neg {
		digits = digits[1:]
	}
	digits = digits[len(prefix):]
	n, err := strconv.ParseUint(digits, base, 64)
	if err != nil {
		return nil, true, newError(ErrNumberOverflow, "integer %q overflows 64 bits", text)
	}
	v := int64(n)
	if neg {
		if n > 1<<63 {
			return nil, true, newError(ErrNumberOverflow, "integer %q overflows 64 bits", text)
		}
		v = -v
	} else if n > 1<<63-1 {
		return nil, true, newError(ErrNumberOverflow, "integer %q overflows 64 bits", text)
	}
	return NewInt(v, radix), true, nil
}

// isFloatLiteral reports whether text is a number with a fractional part or
// an exponent — the spec.md §4.5 rule that a bare digit run is an integer,
// never a float.
func isFloatLiteral(text string) bool {
	if !floatRE.MatchString(text) {
		return false
	}
	return strings.ContainsAny(text, ".eE")
}
