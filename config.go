package koi

// ParserConfig controls the line classifier and driver (spec.md §4.10).
type ParserConfig struct {
	// CommandThreshold is the number of leading "#" characters required to
	// classify a line as a command; below it is text, above it is an
	// annotation.
	CommandThreshold int
	SkipAnnotations  bool
	// ConvertNumberCommand turns a command whose name parses as an integer
	// into a Number command (spec.md §4.5).
	ConvertNumberCommand bool
	PreserveIndent       bool
	PreserveEmptyLines   bool
	// JoinContinuations honors a trailing "\" on a trimmed physical line by
	// joining it with the next physical line (backslash removed, single
	// space substituted) before classification. Off by default; spec.md
	// §4.3 treats this as optional behavior to "reproduce only if the
	// source data requires it" (see DESIGN.md's open-question decision).
	JoinContinuations bool
}

// DefaultParserConfig returns the defaults listed in spec.md §4.10:
// CommandThreshold 1, ConvertNumberCommand on, every other flag off.
func DefaultParserConfig() ParserConfig {
	return ParserConfig{
		CommandThreshold:     1,
		ConvertNumberCommand: true,
	}
}

// NumberFormat selects how the writer renders an Int value, independent of
// the radix recorded on the value itself (spec.md §4.8).
type NumberFormat int

const (
	// NumberFormatUnknown inherits the radix recorded on the value (the
	// round-trip-preserving default).
	NumberFormatUnknown NumberFormat = iota
	NumberFormatDecimal
	NumberFormatHex
	NumberFormatOctal
	NumberFormatBinary
)

// FormatterOptions is one layer of writer formatting, one of (least to most
// specific) global/per-command/per-parameter (spec.md §4.8).
// Override decides how a layer combines with the one beneath it: an option
// bundle with Override=false
// inherits unset-looking zero values from the layer beneath it; with
// Override=true its zero values win outright (e.g. explicitly requesting
// compact=false even though the global default is compact=true).
type FormatterOptions struct {
	Indent             int
	UseTabs            bool
	NewlineBefore      bool
	NewlineAfter       bool
	Compact            bool
	ForceQuotesForVars bool
	NumberFormat       NumberFormat
	NewlineBeforeParam bool
	NewlineAfterParam  bool
	Override           bool
}

// merge layers o (more specific) over base, honoring Override.
func (o FormatterOptions) merge(base FormatterOptions) FormatterOptions {
	if o.Override {
		return o
	}
	out := base
	if o.Indent != 0 {
		out.Indent = o.Indent
	}
	if o.UseTabs {
		out.UseTabs = true
	}
	if o.NewlineBefore {
		out.NewlineBefore = true
	}
	if o.NewlineAfter {
		out.NewlineAfter = true
	}
	if o.Compact {
		out.Compact = true
	}
	if o.ForceQuotesForVars {
		out.ForceQuotesForVars = true
	}
	if o.NumberFormat != NumberFormatUnknown {
		out.NumberFormat = o.NumberFormat
	}
	if o.NewlineBeforeParam {
		out.NewlineBeforeParam = true
	}
	if o.NewlineAfterParam {
		out.NewlineAfterParam = true
	}
	return out
}

// namedOptions is one entry of WriterConfig.CommandOptions.
type namedOptions struct {
	Name    string
	Options FormatterOptions
}

// WriterConfig controls the writer (spec.md §4.10).
type WriterConfig struct {
	GlobalOptions    FormatterOptions
	CommandThreshold int
	commandOptions   []namedOptions
}

// DefaultWriterConfig mirrors spec.md §4.10's listed defaults.
func DefaultWriterConfig() WriterConfig {
	return WriterConfig{CommandThreshold: 1}
}

// SetCommandOptions registers a per-command override, looked up by exact
// name (spec.md §4.10).
func (c *WriterConfig) SetCommandOptions(name string, opts FormatterOptions) {
	for i, e := range c.commandOptions {
		if e.Name == name {
			c.commandOptions[i].Options = opts
			return
		}
	}
	c.commandOptions = append(c.commandOptions, namedOptions{Name: name, Options: opts})
}

func (c *WriterConfig) optionsFor(name string) (FormatterOptions, bool) {
	for _, e := range c.commandOptions {
		if e.Name == name {
			return e.Options, true
		}
	}
	return FormatterOptions{}, false
}
