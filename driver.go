package koi

import "strings"

// Parser is a cooperative single-step state machine over an InputSource: one
// call to NextCommand yields at most one Command (spec.md §4.6, §5). A
// Parser owns its InputSource for its entire lifetime (spec.md §3, §5).
//
// Grounded on the teacher's top-level parse() loop (ccl.go), restructured
// from "consume everything, return one aggregate map" into a resumable,
// line-at-a-time driver with a latched error, since spec.md's streaming
// and error-latching requirements have no teacher analogue.
type Parser struct {
	src  InputSource
	cfg  ParserConfig
	line int
	err  *Error
	eof  bool
}

// NewParser constructs a parser over src under cfg. src is owned by the
// parser for its entire lifetime (spec.md §5).
func NewParser(src InputSource, cfg ParserConfig) *Parser {
	return &Parser{src: src, cfg: cfg}
}

// Line returns the 1-based index of the last line read.
func (p *Parser) Line() int { return p.line }

// Error returns the currently latched error, if any, and clears the latch
// (spec.md's "Latched error" glossary entry: "consumed by the error
// accessor, then cleared").
func (p *Parser) Error() *Error {
	e := p.err
	p.err = nil
	return e
}

// readLogicalLine pulls one physical line from the source, optionally
// joining trailing-backslash continuations per
// ParserConfig.JoinContinuations (spec.md §4.3's open question).
func (p *Parser) readLogicalLine() (string, bool, error) {
	line, ok, err := p.src.NextLine()
	if err != nil || !ok {
		return "", ok, err
	}
	p.line++
	if !p.cfg.JoinContinuations {
		return line, true, nil
	}
	for strings.HasSuffix(strings.TrimRight(line, " \t"), `\`) {
		trimmed := strings.TrimRight(line, " \t")
		trimmed = trimmed[:len(trimmed)-1]
		next, ok, err := p.src.NextLine()
		if err != nil {
			return "", false, err
		}
		if !ok {
			return trimmed, true, nil
		}
		p.line++
		line = trimmed + " " + next
	}
	return line, true, nil
}

// countHashes returns the number of leading "#" characters and the index
// where the body begins, skipping any leading whitespace before the "#"
// run per spec.md §4.6 step 3.
func countHashes(line string) (count, bodyStart int) {
	i := 0
	for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		i++
	}
	n := 0
	for i+n < len(line) && line[i+n] == '#' {
		n++
	}
	return n, i + n
}

// NextCommand pulls and classifies the next logical line, returning the
// resulting Command, or (nil, false) at EOF or after latching a parse
// error. Once an error is latched, NextCommand keeps returning (nil, false)
// until the error is retrieved via Error() (spec.md §4.6 step 8, §7).
func (p *Parser) NextCommand() (*Command, bool) {
	for {
		if p.err != nil || p.eof {
			return nil, false
		}
		line, ok, err := p.readLogicalLine()
		if err != nil {
			p.latch(err)
			return nil, false
		}
		if !ok {
			p.eof = true
			return nil, false
		}

		hashes, bodyStart := countHashes(line)
		threshold := p.cfg.CommandThreshold

		switch {
		case hashes < threshold:
			text := line
			if !p.cfg.PreserveIndent {
				text = strings.TrimLeft(line, " \t")
			}
			if text == "" {
				if !p.cfg.PreserveEmptyLines {
					continue
				}
			}
			return NewTextCommand(text), true

		case hashes > threshold:
			if p.cfg.SkipAnnotations {
				continue
			}
			return NewAnnotationCommand(line), true

		default: // hashes == threshold: a command line
			body := line[bodyStart:]
			if strings.TrimSpace(body) == "" {
				p.latch(finalizeError(newPosError("", 1, columnAt(line, bodyStart), ErrEmptyCommandName, "missing command name"), p.src.SourceName(), p.line))
				return nil, false
			}
			parsed, perr := parseCommandBody(line, body, bodyStart)
			if perr != nil {
				p.latch(finalizeError(perr, p.src.SourceName(), p.line))
				return nil, false
			}
			cmd, cerr := p.buildCommand(parsed)
			if cerr != nil {
				p.latch(finalizeError(withCol(cerr, line, bodyStart), p.src.SourceName(), p.line))
				return nil, false
			}
			return cmd, true
		}
	}
}

// buildCommand turns a parsedLine into a Command, applying the
// convert_number_command rule of spec.md §4.5.
func (p *Parser) buildCommand(pl *parsedLine) (*Command, error) {
	if p.cfg.ConvertNumberCommand {
		if v, ok, err := tryParseInt(pl.name); ok {
			if err != nil {
				return nil, err
			}
			n, _ := v.Int()
			radix := v.Radix()
			cmd := &Command{name: numberCommandName, kind: KindNumberCommand, params: append([]*Value{NewInt(n, radix)}, pl.params...)}
			return cmd, nil
		}
	}
	if isReservedName(pl.name) {
		return nil, newError(ErrReservedName, "%q is a reserved command name", pl.name)
	}
	return &Command{name: pl.name, kind: KindRegular, params: pl.params}, nil
}

func (p *Parser) latch(err error) {
	if p.err != nil {
		// spec.md §7 open question: a second error while one is latched is
		// dropped, not chained.
		return
	}
	if e, ok := err.(*Error); ok {
		p.err = e
		return
	}
	p.err = &Error{Kind: ErrIoError, Message: err.Error(), Source: p.src.SourceName()}
}
