package koi

import (
	"fmt"
	"strconv"
	"strings"
)

// Writer re-serializes Commands under a layered FormatterOptions
// configuration (spec.md §4.8). No teacher analogue exists (ccl.go only
// decodes); built in the teacher's overall idiom — small explicit structs,
// no reflection — informed by the layered-options shape spec.md itself
// specifies.
type Writer struct {
	sink        OutputSink
	cfg         WriterConfig
	indentLevel int
	// pendingSep tracks whether the next write should be preceded by a
	// blank-line separator, the Go shape of spec.md §3's "running
	// needs-newline-separator flag".
	pendingSep bool
}

func NewWriter(sink OutputSink, cfg WriterConfig) *Writer {
	return &Writer{sink: sink, cfg: cfg}
}

func (w *Writer) IncIndent() { w.indentLevel++ }
func (w *Writer) DecIndent() {
	if w.indentLevel > 0 {
		w.indentLevel--
	}
}

func (w *Writer) IndentLevel() int { return w.indentLevel }

// WriteCommand writes cmd using the layered default options for its name
// (global, overridden by any entry registered via WriterConfig.SetCommandOptions).
func (w *Writer) WriteCommand(cmd *Command) error {
	opts := w.cfg.GlobalOptions
	if o, ok := w.cfg.optionsFor(cmd.Name()); ok {
		opts = o.merge(w.cfg.GlobalOptions)
	}
	return w.WriteCommandWithOptions(cmd, &opts, nil)
}

// WriteCommandWithOptions writes cmd using an explicit override for the
// command as a whole and, optionally, one override per parameter index
// (spec.md §4.8's "highest priority wins" layering: per-parameter >
// per-command > global).
func (w *Writer) WriteCommandWithOptions(cmd *Command, cmdOpts *FormatterOptions, paramOpts []FormatterOptions) error {
	base := w.cfg.GlobalOptions
	opts := base
	if cmdOpts != nil {
		opts = cmdOpts.merge(base)
	}

	var b strings.Builder
	params := cmd.Params()
	switch {
	case (cmd.IsText() || cmd.IsAnnotation()) && len(params) > 0:
		// Text and annotation commands are written back as the line they carry.
		b.WriteString(params[0].s)
		params = nil
	case cmd.IsNumber() && len(params) > 0:
		b.WriteString(strings.Repeat("#", w.cfg.CommandThreshold) + strconv.FormatInt(params[0].i, 10))
		params = params[1:]
		if len(paramOpts) > 0 {
			paramOpts = paramOpts[1:]
		}
	default:
		b.WriteString(strings.Repeat("#", w.cfg.CommandThreshold) + cmd.Name())
	}

	indentStr := indentString(opts)
	for i, p := range params {
		pOpts := opts
		if paramOpts != nil && i < len(paramOpts) {
			pOpts = paramOpts[i].merge(opts)
		}
		if pOpts.NewlineBeforeParam {
			b.WriteString("\n")
			b.WriteString(indentStr)
		} else {
			b.WriteString(" ")
		}
		b.WriteString(formatValue(p, pOpts))
		if pOpts.NewlineAfterParam {
			b.WriteString("\n")
			b.WriteString(indentStr)
		}
	}

	if w.pendingSep {
		if _, err := w.sink.Write([]byte("\n")); err != nil {
			return newError(ErrIoError, "write: %s", err)
		}
	}
	if opts.NewlineBefore {
		if _, err := w.sink.Write([]byte("\n")); err != nil {
			return newError(ErrIoError, "write: %s", err)
		}
	}
	if _, err := w.sink.Write([]byte(b.String() + "\n")); err != nil {
		return newError(ErrIoError, "write: %s", err)
	}
	w.pendingSep = opts.NewlineAfter
	return nil
}

func indentString(opts FormatterOptions) string {
	ch := " "
	if opts.UseTabs {
		ch = "\t"
	}
	return strings.Repeat(ch, opts.Indent)
}

// formatValue renders a single Value per the per-kind rules of spec.md
// §4.8.
func formatValue(v *Value, opts FormatterOptions) string {
	switch v.Kind() {
	case KindInt:
		return formatInt(v.i, v.radix, opts.NumberFormat)
	case KindFloat:
		return formatFloat(v.f)
	case KindBool:
		if v.b {
			return "true"
		}
		return "false"
	case KindString:
		return formatString(v.s, opts)
	case KindLiteral:
		return v.s
	case KindSingle:
		return fmt.Sprintf("%s(%s)", v.s, formatValue(v.single, opts))
	case KindList:
		sep := ", "
		if opts.Compact {
			sep = ","
		}
		items := make([]string, len(v.list))
		for i, it := range v.list {
			items[i] = formatValue(it, opts)
		}
		return fmt.Sprintf("%s(%s)", v.s, strings.Join(items, sep))
	case KindDict:
		sep := ", "
		kvSep := ": "
		if opts.Compact {
			sep = ","
			kvSep = ":"
		}
		entries := make([]string, len(v.dict))
		for i, e := range v.dict {
			entries[i] = e.Key + kvSep + formatValue(e.Value, opts)
		}
		return fmt.Sprintf("%s(%s)", v.s, strings.Join(entries, sep))
	default:
		return ""
	}
}

// formatInt renders an integer in the radix it was parsed with, or a
// writer-forced NumberFormat override (spec.md §4.8).
func formatInt(v int64, stored Radix, format NumberFormat) string {
	radix := stored
	switch format {
	case NumberFormatDecimal:
		radix = RadixDecimal
	case NumberFormatHex:
		radix = RadixHex
	case NumberFormatOctal:
		radix = RadixOctal
	case NumberFormatBinary:
		radix = RadixBinary
	}
	switch radix {
	case RadixHex:
		return radixString(v, 16, "0x")
	case RadixOctal:
		return radixString(v, 8, "0o")
	case RadixBinary:
		return radixString(v, 2, "0b")
	default:
		return strconv.FormatInt(v, 10)
	}
}

func radixString(v int64, base int, prefix string) string {
	sign := ""
	u := uint64(v)
	if v < 0 {
		sign = "-"
		u = uint64(-v)
	}
	return sign + prefix + strconv.FormatUint(u, base)
}

// formatFloat renders the shortest decimal round-tripping f, ensuring at
// least a fractional part or exponent is present (spec.md §4.8, §8 "-0.0
// is preserved").
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if strings.ContainsAny(s, ".eE") {
		return s
	}
	return s + ".0"
}

// formatString renders a String value. When ForceQuotesForVars is unset, a
// value whose content already looks like a bare literal (and isn't a bool
// keyword) is emitted unquoted for more compact, literal-like round trips;
// setting ForceQuotesForVars always double-quotes (spec.md §4.8).
func formatString(s string, opts FormatterOptions) string {
	if !opts.ForceQuotesForVars && s != "" && identRE.MatchString(s) {
		if _, isBool := boolLiterals[s]; !isBool {
			return s
		}
	}
	return encodeString(s)
}

func encodeString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 {
				b.WriteString(fmt.Sprintf(`\x%02x`, r))
			} else {
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}
