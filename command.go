package koi

import "strings"

// CommandKind distinguishes the three reserved command shapes from a
// regular, caller-defined command (spec.md §3).
type CommandKind int

const (
	KindRegular CommandKind = iota
	KindTextCommand
	KindAnnotationCommand
	KindNumberCommand
)

const (
	textCommandName       = "@text"
	annotationCommandName = "@annotation"
	numberCommandName     = "@number"
)

func isReservedName(name string) bool {
	switch name {
	case textCommandName, annotationCommandName, numberCommandName:
		return true
	default:
		return false
	}
}

// Command is a named, ordered sequence of parameter Values plus a kind tag.
// Parameter indices are 0-based and stable until a mutation method is
// called (spec.md §3). Text/Annotation commands carry one String parameter
// at index 0; a Number command carries its Int at index 0, followed by any
// further parameters its source line had.
type Command struct {
	name   string
	params []*Value
	kind   CommandKind
}

// NewCommand constructs a Regular command. name must be non-empty,
// whitespace-free, and not a reserved "@…" name.
func NewCommand(name string) (*Command, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	return &Command{name: name, kind: KindRegular}, nil
}

// NewTextCommand, NewAnnotationCommand, NewNumberCommand build the three
// reserved command shapes directly, bypassing the parser (spec.md §4.2).
func NewTextCommand(s string) *Command {
	return &Command{name: textCommandName, kind: KindTextCommand, params: []*Value{NewString(s)}}
}

func NewAnnotationCommand(s string) *Command {
	return &Command{name: annotationCommandName, kind: KindAnnotationCommand, params: []*Value{NewString(s)}}
}

func NewNumberCommand(v int64, radix Radix) *Command {
	return &Command{name: numberCommandName, kind: KindNumberCommand, params: []*Value{NewInt(v, radix)}}
}

func validateName(name string) error {
	if name == "" {
		return newError(ErrEmptyCommandName, "command name must not be empty")
	}
	if strings.IndexFunc(name, func(r rune) bool { return r == ' ' || r == '\t' }) >= 0 {
		return newError(ErrUnexpectedChar, "command name %q contains whitespace", name)
	}
	if isReservedName(name) {
		return newError(ErrReservedName, "%q is a reserved command name", name)
	}
	return nil
}

func (c *Command) Name() string { return c.name }

// SetName renames a command; fails on empty, whitespace-containing, or
// reserved names, same as construction.
func (c *Command) SetName(name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	c.name = name
	return nil
}

func (c *Command) Kind() CommandKind { return c.kind }
func (c *Command) IsText() bool      { return c.kind == KindTextCommand }
func (c *Command) IsAnnotation() bool { return c.kind == KindAnnotationCommand }
func (c *Command) IsNumber() bool    { return c.kind == KindNumberCommand }

func (c *Command) Params() []*Value { return c.params }
func (c *Command) ParamCount() int  { return len(c.params) }

func (c *Command) Param(i int) (*Value, error) {
	if i < 0 || i >= len(c.params) {
		return nil, newError(ErrIndexOutOfBounds, "param index %d out of bounds (len %d)", i, len(c.params))
	}
	return c.params[i], nil
}

func (c *Command) AddParam(v *Value) {
	c.params = append(c.params, v)
}

func (c *Command) InsertParam(i int, v *Value) error {
	if i < 0 || i > len(c.params) {
		return newError(ErrIndexOutOfBounds, "insert index %d out of bounds (len %d)", i, len(c.params))
	}
	c.params = append(c.params, nil)
	copy(c.params[i+1:], c.params[i:])
	c.params[i] = v
	return nil
}

func (c *Command) RemoveParam(i int) error {
	if i < 0 || i >= len(c.params) {
		return newError(ErrIndexOutOfBounds, "remove index %d out of bounds (len %d)", i, len(c.params))
	}
	c.params = append(c.params[:i], c.params[i+1:]...)
	return nil
}

func (c *Command) ClearParams() { c.params = nil }

// Typed convenience setters fail with TypeMismatch if the existing param at
// i is a different kind than requested (spec.md §4.2).
func (c *Command) SetInt(i int, v int64, radix Radix) error {
	return c.setTyped(i, KindInt, NewInt(v, radix))
}

func (c *Command) SetFloat(i int, v float64) error {
	return c.setTyped(i, KindFloat, NewFloat(v))
}

func (c *Command) SetString(i int, v string) error {
	return c.setTyped(i, KindString, NewString(v))
}

func (c *Command) SetBool(i int, v bool) error {
	return c.setTyped(i, KindBool, NewBool(v))
}

func (c *Command) setTyped(i int, want Kind, v *Value) error {
	cur, err := c.Param(i)
	if err != nil {
		return err
	}
	if cur.kind != want {
		return cur.mismatch(want)
	}
	c.params[i] = v
	return nil
}

// Clone returns a deep copy of c.
func (c *Command) Clone() *Command {
	params := make([]*Value, len(c.params))
	for i, p := range c.params {
		params[i] = p.Clone()
	}
	return &Command{name: c.name, kind: c.kind, params: params}
}

// Equal reports structural equality between c and other.
func (c *Command) Equal(other *Command) bool {
	if c == nil || other == nil {
		return c == other
	}
	if c.name != other.name || c.kind != other.kind || len(c.params) != len(other.params) {
		return false
	}
	for i := range c.params {
		if !c.params[i].Equal(other.params[i]) {
			return false
		}
	}
	return true
}
