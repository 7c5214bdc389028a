// Package koi implements the core engine of KoiLang, a line-oriented
// markup language that separates typed, parameterized commands from
// narrative text and ignorable annotations.
//
// # Commands
//
// A command is one logical line beginning with a run of "#" characters
// whose length matches the parser's configured threshold, followed by a
// name and a space-separated parameter list:
//
//	#character Alice "Hello, world!"
//	#draw Line 2 pos0(x: 0, y: 0) thickness(2) color(255, 255, 255)
//
// Lines with fewer "#" than the threshold are text; lines with more are
// annotations. Both round-trip through the same Command type as reserved
// "@text"/"@annotation" commands carrying their line as a single String
// parameter.
//
// # Values
//
// Parameters are a closed set of scalar and composite kinds: Int (with a
// recorded radix), Float, Bool, String, Literal, and the named composites
// Single, List, and Dict. See Value and Kind.
//
// # Streaming
//
// Parser.NextCommand returns at most one Command per call and never
// panics; parse failures are latched on the Parser and retrieved with
// Parser.Error. A Writer mirrors this for serialization, applying a
// layered FormatterOptions configuration per command and per parameter.
package koi
